// Command validate checks a crash CSV export before it is analyzed. It runs
// the production loader and then verifies the schema, value domains and
// calendar consistency of every row, reporting PASS/FAIL per phase.
//
// Usage:
//
//	go run ./cmd/validate -csv data/crashes.csv
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"

	"github.com/couchcryptid/crash-stats/internal/adapter/csvfile"
	"github.com/couchcryptid/crash-stats/internal/domain"
)

// maxShown caps the detailed errors printed per phase.
const maxShown = 20

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	path := flag.String("csv", "", "path to the crash CSV export")
	delimiter := flag.String("delimiter", ",", "field delimiter")
	flag.Parse()

	if *path == "" || len([]rune(*delimiter)) != 1 {
		flag.Usage()
		os.Exit(1)
	}

	os.Exit(run(os.Stdout, *path, []rune(*delimiter)[0]))
}

func run(w io.Writer, path string, delimiter rune) int {
	fmt.Fprintln(w, "=== Crash Data Integrity Validation ===")
	fmt.Fprintln(w)

	loader := csvfile.NewLoader(delimiter, slog.New(slog.NewTextHandler(io.Discard, nil)))
	records, err := loader.Load(context.Background(), path)
	if err != nil {
		fmt.Fprintf(w, "FATAL: %v\n", err)
		return 1
	}

	phases := []*phase{
		validateSchema(records),
		validateDomains(records),
		validateCalendar(records),
	}

	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Fprintf(w, "  %-42s %s\n", p.name, status)
	}
	fmt.Fprintf(w, "\nRecords: %d\n", len(records))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Fprintf(w, "\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			if i == maxShown {
				fmt.Fprintf(w, "  ... %d more\n", len(p.errors)-maxShown)
				break
			}
			fmt.Fprintf(w, "  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Fprintln(w, "\nAll validations passed.")
		return 0
	}
	fmt.Fprintln(w, "\nValidation FAILED.")
	return 1
}

// ── Phase 1: Schema ──
// Every column the aggregator reads must be present.

func validateSchema(records []domain.Record) *phase {
	p := &phase{name: "Phase 1: Schema (required columns)"}
	if len(records) == 0 {
		return p
	}
	for _, field := range domain.RequiredFields {
		if !slices.Contains(records[0].Fields, field) {
			p.errorf("missing column %q", field)
		}
	}
	return p
}

// ── Phase 2: Domains ──
// Ordinals, dates and flags must hold values the aggregator accepts.

func validateDomains(records []domain.Record) *phase {
	p := &phase{name: "Phase 2: Domains (dates, ordinals, flags)"}
	for i, rec := range records {
		row := i + 2 // header is line 1
		if _, err := domain.ParseCrashDate(rec.Label(domain.FieldCrashDate)); err != nil {
			p.errorf("row %d: %s: %v", row, domain.FieldCrashDate, err)
		}
		if _, err := dayName(rec); err != nil {
			p.errorf("row %d: %s %q: %v", row, domain.FieldDayOfWeek, rec.Label(domain.FieldDayOfWeek), err)
		}
		if _, err := hourOf(rec); err != nil {
			p.errorf("row %d: %s %q: %v", row, domain.FieldHourOfDay, rec.Label(domain.FieldHourOfDay), err)
		}
		for _, f := range domain.Flags {
			v, ok := rec.Get(f.Field)
			if ok && v.Kind != domain.KindBool {
				p.errorf("row %d: %s %q: expected Yes/No", row, f.Field, v.Label())
			}
		}
	}
	return p
}

// ── Phase 3: Calendar ──
// DayOfWeek and HourOfDay should agree with CrashDate.

func validateCalendar(records []domain.Record) *phase {
	p := &phase{name: "Phase 3: Calendar (day/hour vs date)"}
	for i, rec := range records {
		row := i + 2
		date, err := domain.ParseCrashDate(rec.Label(domain.FieldCrashDate))
		if err != nil {
			continue
		}
		if day, err := dayName(rec); err == nil && day != date.Weekday().String() {
			p.errorf("row %d: %s is %s but %s says %s", row, domain.FieldCrashDate, date.Weekday(), domain.FieldDayOfWeek, day)
		}
		if hour, err := hourOf(rec); err == nil && hour != date.Hour() {
			p.errorf("row %d: %s hour is %d but %s says %d", row, domain.FieldCrashDate, date.Hour(), domain.FieldHourOfDay, hour)
		}
	}
	return p
}

func dayName(rec domain.Record) (string, error) {
	n, err := domain.Ordinal(rec.Values[domain.FieldDayOfWeek])
	if err != nil {
		return "", err
	}
	return domain.DayName(n)
}

func hourOf(rec domain.Record) (int, error) {
	n, err := domain.Ordinal(rec.Values[domain.FieldHourOfDay])
	if err != nil {
		return 0, err
	}
	if _, err := domain.ShiftedHourBucket(n); err != nil {
		return 0, err
	}
	return n, nil
}
