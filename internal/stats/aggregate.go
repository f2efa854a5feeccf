package stats

import (
	"strconv"
	"time"

	"github.com/couchcryptid/crash-stats/internal/domain"
)

// Aggregator builds a Summary one record at a time. Records must be added in
// load order; the intersection ranking breaks ties by first appearance.
type Aggregator struct {
	summary *Summary
	done    bool
}

// NewAggregator returns an Aggregator with empty breakdowns.
func NewAggregator() *Aggregator {
	return &Aggregator{summary: newSummary()}
}

// Aggregate runs a full pass over records. Any record with an out-of-domain
// date, day or hour fails the whole pass with a *domain.ValidationError.
func Aggregate(records []domain.Record) (*Summary, error) {
	a := NewAggregator()
	for i, rec := range records {
		if err := a.Add(i, rec); err != nil {
			return nil, err
		}
	}
	return a.Summary(), nil
}

// Add folds one record into the running totals. index is the record's
// position and is only used in errors. The record is validated before any
// counter changes, so a rejected record leaves the totals untouched.
func (a *Aggregator) Add(index int, rec domain.Record) error {
	d, err := derive(index, rec)
	if err != nil {
		return err
	}

	s := a.summary
	s.TotalCrashes++

	if s.EarliestCrashDate.IsZero() || d.date.Before(s.EarliestCrashDate) {
		s.EarliestCrashDate = d.date
	}
	if s.LatestCrashDate.IsZero() || d.date.After(s.LatestCrashDate) {
		s.LatestCrashDate = d.date
	}

	s.Breakdowns[DimType].Inc(rec.Label(domain.FieldCrashType))
	s.Breakdowns[DimSeverity].Inc(rec.Label(domain.FieldCrashSeverity))
	s.Breakdowns[DimMonth].Inc(domain.MonthNames[d.date.Month()-1])
	s.Breakdowns[DimDayOfWeek].Inc(d.day)
	s.Breakdowns[DimHour].Inc(strconv.Itoa(d.hour))
	s.Breakdowns[DimIntersection].Inc(rec.Label(domain.FieldCrashLocation))

	for _, f := range domain.Flags {
		if rec.IsTrue(f.Field) {
			s.Flags[f.Flag]++
		}
	}
	return nil
}

// Summary finalizes the intersection ranking and returns the result. The
// Aggregator must not be used afterwards.
func (a *Aggregator) Summary() *Summary {
	if !a.done {
		a.summary.IntersectionTop10 = a.summary.Breakdowns[DimIntersection].Top(TopIntersections)
		a.done = true
	}
	return a.summary
}

type derived struct {
	date time.Time
	day  string
	hour int
}

func derive(index int, rec domain.Record) (derived, error) {
	invalid := func(field string, err error) error {
		return &domain.ValidationError{Index: index, Field: field, Value: rec.Label(field), Err: err}
	}

	date, err := domain.ParseCrashDate(rec.Label(domain.FieldCrashDate))
	if err != nil {
		return derived{}, invalid(domain.FieldCrashDate, err)
	}

	dayOrdinal, err := domain.Ordinal(rec.Values[domain.FieldDayOfWeek])
	if err != nil {
		return derived{}, invalid(domain.FieldDayOfWeek, err)
	}
	day, err := domain.DayName(dayOrdinal)
	if err != nil {
		return derived{}, invalid(domain.FieldDayOfWeek, err)
	}

	hourOrdinal, err := domain.Ordinal(rec.Values[domain.FieldHourOfDay])
	if err != nil {
		return derived{}, invalid(domain.FieldHourOfDay, err)
	}
	hour, err := domain.ShiftedHourBucket(hourOrdinal)
	if err != nil {
		return derived{}, invalid(domain.FieldHourOfDay, err)
	}

	return derived{date: date, day: day, hour: hour}, nil
}
