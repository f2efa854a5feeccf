// Package chart draws PNG bar charts of a crash summary with gonum/plot.
package chart

import (
	"context"
	"fmt"
	"image/color"
	"log/slog"
	"math"
	"os"
	"path/filepath"

	"github.com/couchcryptid/crash-stats/internal/report"
	"github.com/couchcryptid/crash-stats/internal/stats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

const (
	chartWidth  = 9 * vg.Inch
	chartHeight = 5 * vg.Inch
)

var chartBlue = color.RGBA{R: 31, G: 119, B: 180, A: 255}

// chartDef describes one breakdown chart. entries applies the same ordering
// as the text report.
type chartDef struct {
	file    string
	title   string
	entries func(s *stats.Summary) []stats.Entry
}

var charts = []chartDef{
	{"intersectionTop10.png", "Top 10 intersections", func(s *stats.Summary) []stats.Entry {
		return report.Alphabetical(s.IntersectionTop10)
	}},
	{"type.png", "Crashes by type", func(s *stats.Summary) []stats.Entry {
		return report.Alphabetical(s.Breakdown(stats.DimType).Entries())
	}},
	{"severity.png", "Crashes by severity", func(s *stats.Summary) []stats.Entry {
		return report.Alphabetical(s.Breakdown(stats.DimSeverity).Entries())
	}},
	{"month.png", "Crashes by month", func(s *stats.Summary) []stats.Entry {
		return report.ByMonth(s.Breakdown(stats.DimMonth))
	}},
	{"dayOfWeek.png", "Crashes by day of week", func(s *stats.Summary) []stats.Entry {
		return report.ByWeekday(s.Breakdown(stats.DimDayOfWeek))
	}},
	{"hour.png", "Crashes by hour (bucket 0 = 4 AM)", func(s *stats.Summary) []stats.Entry {
		return report.ByHour(s.Breakdown(stats.DimHour))
	}},
}

// Renderer writes one PNG per breakdown into a directory.
// It implements pipeline.Publisher.
type Renderer struct {
	dir    string
	logger *slog.Logger
}

// NewRenderer creates a Renderer that writes into dir.
func NewRenderer(dir string, logger *slog.Logger) *Renderer {
	return &Renderer{dir: dir, logger: logger}
}

// Publish draws every non-empty breakdown of s. Empty breakdowns are skipped.
func (r *Renderer) Publish(ctx context.Context, s *stats.Summary) error {
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return fmt.Errorf("create chart dir: %w", err)
	}

	written := 0
	for _, def := range charts {
		if err := ctx.Err(); err != nil {
			return err
		}

		entries := def.entries(s)
		if len(entries) == 0 {
			r.logger.Debug("skipping empty chart", "chart", def.file)
			continue
		}

		p, err := barChart(def.title, entries)
		if err != nil {
			return fmt.Errorf("build %s: %w", def.file, err)
		}
		path := filepath.Join(r.dir, def.file)
		if err := p.Save(chartWidth, chartHeight, path); err != nil {
			return fmt.Errorf("save %s: %w", def.file, err)
		}
		written++
	}

	r.logger.Info("charts written", "dir", r.dir, "count", written)
	return nil
}

func barChart(title string, entries []stats.Entry) (*plot.Plot, error) {
	values := make(plotter.Values, len(entries))
	labels := make([]string, len(entries))
	for i, e := range entries {
		values[i] = float64(e.Count)
		labels[i] = e.Label
		if labels[i] == "" {
			labels[i] = "(none)"
		}
	}

	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(12)
	p.BackgroundColor = color.White
	p.Y.Label.Text = "Crashes"
	p.Y.Min = 0

	barWidth := (chartWidth - vg.Inch) / vg.Length(2*len(entries)+1)
	bars, err := plotter.NewBarChart(values, barWidth)
	if err != nil {
		return nil, err
	}
	bars.Color = chartBlue
	bars.LineStyle.Width = 0

	p.Add(bars, plotter.NewGrid())
	p.NominalX(labels...)
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter

	return p, nil
}
