// Command genmock writes a synthetic crash CSV in the portal export schema.
// Output is deterministic for a given seed, so fixtures can be regenerated
// and diffed. The rows are run through the real loader and aggregator before
// exit to confirm they are accepted.
//
// Usage:
//
//	go run ./cmd/genmock -out testdata/crashes_mock.csv -rows 500 -seed 42
package main

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/couchcryptid/crash-stats/internal/adapter/csvfile"
	"github.com/couchcryptid/crash-stats/internal/stats"
)

// Header is the column order of the portal export.
var Header = []string{
	"Crash Date", "Day Of Week", "Hour Of Day", "Crash Type", "Crash Severity", "Crash Location",
	"Property Damage", "Alcohol Involved", "Aggressive Driving", "Bicycle Involved",
	"Cell Phone Involved", "Animal Involved", "Drug Involved",
}

var (
	crashTypes = []string{"Angle", "Rear End", "Sideswipe", "Head On", "Left Turn", "Pedestrian", "Fixed Object"}
	severities = []string{"No Injury", "Possible Injury", "Minor Injury", "Serious Injury", "Fatal"}
	streets    = []string{
		"MAIN ST", "ELM ST", "OAK AVE", "BROADWAY", "1ST ST", "2ND ST",
		"LINCOLN BLVD", "PARK AVE", "RIVER RD", "MILL ST", "CHURCH ST", "MARKET ST",
	}
	// flagOdds is the chance each involvement column reads "Yes", in Header order.
	flagOdds = []float64{0.55, 0.06, 0.12, 0.02, 0.04, 0.01, 0.03}
)

const portalLayout = "2006/01/02 15:04:05+00"

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "", "output path for the generated CSV")
	rows := flag.Int("rows", 500, "number of crash rows to generate")
	seed := flag.Uint64("seed", 42, "random seed")
	start := flag.String("start", "2023-01-01", "first crash date (YYYY-MM-DD)")
	flag.Parse()

	if err := checkFlags(*out, *rows); err != nil {
		flag.Usage()
		return err
	}
	startDate, err := time.Parse("2006-01-02", *start)
	if err != nil {
		return fmt.Errorf("parse -start: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(*out), 0o755); err != nil {
		return err
	}
	f, err := os.Create(*out)
	if err != nil {
		return err
	}
	rng := rand.New(rand.NewPCG(*seed, *seed^0x9e3779b97f4a7c15))
	if err := Write(f, Generate(rng, *rows, startDate)); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", *out, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	log.Printf("wrote %d rows: %s", *rows, *out)

	return check(*out)
}

func checkFlags(out string, rows int) error {
	if out == "" {
		return errors.New("missing required flag: -out")
	}
	if rows < 0 {
		return fmt.Errorf("-rows must not be negative, got %d", rows)
	}
	return nil
}

// Generate returns rows crash rows spread over one year from start.
func Generate(rng *rand.Rand, rows int, start time.Time) [][]string {
	out := make([][]string, 0, rows)
	for range rows {
		at := start.Add(time.Duration(rng.Int64N(int64(365 * 24 * time.Hour)))).Truncate(time.Minute)

		a := streets[rng.IntN(len(streets))]
		b := streets[rng.IntN(len(streets))]
		for b == a {
			b = streets[rng.IntN(len(streets))]
		}

		row := []string{
			at.Format(portalLayout),
			fmt.Sprint(int(at.Weekday()) + 1),
			fmt.Sprint(at.Hour()),
			crashTypes[rng.IntN(len(crashTypes))],
			severities[rng.IntN(len(severities))],
			a + " & " + b,
		}
		for _, odds := range flagOdds {
			row = append(row, yesNo(rng.Float64() < odds, rng))
		}
		out = append(out, row)
	}
	return out
}

// yesNo mixes letter case the way hand-edited exports do.
func yesNo(v bool, rng *rand.Rand) string {
	s := "No"
	if v {
		s = "Yes"
	}
	if rng.IntN(10) == 0 {
		s = strings.ToUpper(s)
	}
	return s
}

// Write encodes Header and rows as CSV.
func Write(w io.Writer, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	return cw.Error()
}

// check loads the written file and aggregates it with the production code.
func check(path string) error {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	records, err := csvfile.NewLoader(',', logger).Load(context.Background(), path)
	if err != nil {
		return err
	}
	s, err := stats.Aggregate(records)
	if err != nil {
		return err
	}

	fmt.Println("\n=== Generated fixture ===")
	fmt.Printf("Total: %d\n", s.TotalCrashes)
	if s.HasDates() {
		fmt.Printf("Range: %s .. %s\n", s.EarliestCrashDate.Format(time.RFC3339), s.LatestCrashDate.Format(time.RFC3339))
	}
	fmt.Printf("Intersections: %d distinct\n", s.Breakdown(stats.DimIntersection).Len())
	for _, e := range s.IntersectionTop10 {
		fmt.Printf("  %-28s %d\n", e.Label, e.Count)
	}
	return nil
}
