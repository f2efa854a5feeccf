// Package report renders a crash summary as plain text.
package report

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/couchcryptid/crash-stats/internal/domain"
	"github.com/couchcryptid/crash-stats/internal/stats"
)

// Divider separates report sections.
var Divider = strings.Repeat("=", 64)

// Provenance is printed in the disclaimer section.
const Provenance = "Source: municipal open-data crash export, refreshed manually. " +
	"Counts cover reported crashes only and may lag the official record."

const (
	dateLayout  = "January 2, 2006"
	blankLabel  = "(none)"
	hourCaption = "bucket 0 = 4 AM"
)

// Reporter writes the text report. It implements pipeline.Publisher.
type Reporter struct {
	out io.Writer
}

// New creates a Reporter that writes to out.
func New(out io.Writer) *Reporter {
	return &Reporter{out: out}
}

// Publish renders s to the Reporter's writer.
func (r *Reporter) Publish(_ context.Context, s *stats.Summary) error {
	return Render(r.out, s)
}

// Render writes every section of the report for s to w. Nothing is written
// if s is nil.
func Render(w io.Writer, s *stats.Summary) error {
	if s == nil {
		return fmt.Errorf("render report: nil summary")
	}

	var buf bytes.Buffer
	writeDisclaimer(&buf, s)
	writeSection(&buf, "TOP 10 INTERSECTIONS", Alphabetical(s.IntersectionTop10), s.TotalCrashes)
	writeSection(&buf, "CRASHES BY TYPE", Alphabetical(s.Breakdown(stats.DimType).Entries()), s.TotalCrashes)
	writeSection(&buf, "CRASHES BY SEVERITY", Alphabetical(s.Breakdown(stats.DimSeverity).Entries()), s.TotalCrashes)
	writeSection(&buf, "CRASHES BY MONTH", ByMonth(s.Breakdown(stats.DimMonth)), s.TotalCrashes)
	writeSection(&buf, "CRASHES BY DAY OF WEEK", ByWeekday(s.Breakdown(stats.DimDayOfWeek)), s.TotalCrashes)
	writeSection(&buf, "CRASHES BY HOUR ("+hourCaption+")", ByHour(s.Breakdown(stats.DimHour)), s.TotalCrashes)
	writeMisc(&buf, s)
	fmt.Fprintln(&buf, Divider)

	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

func writeDisclaimer(buf *bytes.Buffer, s *stats.Summary) {
	fmt.Fprintln(buf, Divider)
	fmt.Fprintln(buf, "DISCLAIMER")
	if s.HasDates() {
		fmt.Fprintf(buf, "Crash records from %s through %s (%d crashes).\n",
			s.EarliestCrashDate.Format(dateLayout), s.LatestCrashDate.Format(dateLayout), s.TotalCrashes)
	} else {
		fmt.Fprintln(buf, "No crash records were loaded.")
	}
	fmt.Fprintln(buf, Provenance)
	fmt.Fprintf(buf, "Report generated %s.\n", domain.Now().UTC().Format(time.RFC3339))
}

func writeSection(buf *bytes.Buffer, title string, entries []stats.Entry, total int) {
	fmt.Fprintln(buf, Divider)
	fmt.Fprintln(buf, title)
	for _, e := range entries {
		fmt.Fprintln(buf, Line(e.Label, e.Count, total))
	}
}

func writeMisc(buf *bytes.Buffer, s *stats.Summary) {
	fmt.Fprintln(buf, Divider)
	fmt.Fprintln(buf, "MISC")
	for _, f := range domain.Flags {
		fmt.Fprintln(buf, Line(f.Label, s.Flag(f.Flag), s.TotalCrashes))
	}
}

// Line formats one breakdown row: "label — count (pct%)".
func Line(label string, count, total int) string {
	if label == "" {
		label = blankLabel
	}
	return fmt.Sprintf("%s — %d (%s%%)", label, count, Percent(count, total))
}

// Percent returns 100*count/total with at most two fractional digits and no
// trailing zeros. A zero total yields "0".
func Percent(count, total int) string {
	if total == 0 {
		return "0"
	}
	p := 100 * float64(count) / float64(total)
	return strconv.FormatFloat(math.Round(p*100)/100, 'f', -1, 64)
}

// Alphabetical returns a copy of entries sorted by label.
func Alphabetical(entries []stats.Entry) []stats.Entry {
	out := make([]stats.Entry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out
}

// ByMonth returns the month breakdown in calendar order, skipping months
// with no crashes.
func ByMonth(b *stats.Breakdown) []stats.Entry {
	return fixedOrder(b, domain.MonthNames[:])
}

// ByWeekday returns the day-of-week breakdown from Sunday to Saturday.
func ByWeekday(b *stats.Breakdown) []stats.Entry {
	return fixedOrder(b, domain.DayNames[:])
}

func fixedOrder(b *stats.Breakdown, order []string) []stats.Entry {
	var out []stats.Entry
	for _, label := range order {
		if n := b.Count(label); n > 0 {
			out = append(out, stats.Entry{Label: label, Count: n})
		}
	}
	return out
}

// ByHour returns the hour breakdown in ascending bucket order.
func ByHour(b *stats.Breakdown) []stats.Entry {
	out := b.Entries()
	sort.SliceStable(out, func(i, j int) bool {
		hi, erri := strconv.Atoi(out[i].Label)
		hj, errj := strconv.Atoi(out[j].Label)
		if erri != nil || errj != nil {
			return erri == nil
		}
		return hi < hj
	})
	return out
}
