// Package stats folds normalized crash records into descriptive statistics.
package stats

import (
	"time"

	"github.com/couchcryptid/crash-stats/internal/domain"
)

// Dimension names a breakdown.
type Dimension string

const (
	DimType         Dimension = "type"
	DimSeverity     Dimension = "severity"
	DimMonth        Dimension = "month"
	DimDayOfWeek    Dimension = "dayOfWeek"
	DimHour         Dimension = "hour"
	DimIntersection Dimension = "intersection"
)

// Dimensions lists every breakdown the aggregator fills.
var Dimensions = []Dimension{DimType, DimSeverity, DimMonth, DimDayOfWeek, DimHour, DimIntersection}

// TopIntersections is the size of the intersection ranking.
const TopIntersections = 10

// Summary is the result of one aggregation pass. It is read-only once
// returned by Aggregator.Summary.
type Summary struct {
	TotalCrashes      int
	EarliestCrashDate time.Time
	LatestCrashDate   time.Time
	Breakdowns        map[Dimension]*Breakdown
	IntersectionTop10 []Entry

	// Flags holds involvement counters. A flag with no true records has no key.
	Flags map[domain.Flag]int
}

func newSummary() *Summary {
	s := &Summary{
		Breakdowns: make(map[Dimension]*Breakdown, len(Dimensions)),
		Flags:      make(map[domain.Flag]int),
	}
	for _, d := range Dimensions {
		s.Breakdowns[d] = NewBreakdown()
	}
	return s
}

// HasDates reports whether the crash date range is populated. It is false
// for an empty record set.
func (s *Summary) HasDates() bool {
	return s.TotalCrashes > 0 && !s.EarliestCrashDate.IsZero()
}

// Breakdown returns the breakdown for d, or an empty one if d is unknown.
func (s *Summary) Breakdown(d Dimension) *Breakdown {
	if b, ok := s.Breakdowns[d]; ok {
		return b
	}
	return NewBreakdown()
}

// Flag returns the counter for f; absent counters are zero.
func (s *Summary) Flag(f domain.Flag) int {
	return s.Flags[f]
}
