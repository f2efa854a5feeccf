// Command crashstats reads a traffic-crash CSV export and prints a
// descriptive-statistics report to stdout.
//
// Usage:
//
//	crashstats [path/to/crashes.csv]
//
// The path defaults to CRASH_DATA_PATH. Logs go to stderr. Set CHART_DIR to
// also draw PNG bar charts and METRICS_TEXTFILE to export run metrics.
package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/crash-stats/internal/adapter/chart"
	"github.com/couchcryptid/crash-stats/internal/adapter/csvfile"
	"github.com/couchcryptid/crash-stats/internal/config"
	"github.com/couchcryptid/crash-stats/internal/observability"
	"github.com/couchcryptid/crash-stats/internal/pipeline"
	"github.com/couchcryptid/crash-stats/internal/report"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		slog.New(slog.NewTextHandler(stderr, nil)).Error("failed to load config", "error", err)
		return 1
	}
	if len(args) > 0 {
		cfg.DataPath = args[0]
	}

	logger := observability.NewLogger(cfg, stderr)
	metrics := observability.NewMetrics()

	publishers := []pipeline.Publisher{report.New(stdout)}
	if cfg.ChartDir != "" {
		publishers = append(publishers, chart.NewRenderer(cfg.ChartDir, logger))
		logger.Info("chart output enabled", "dir", cfg.ChartDir)
	}

	loader := csvfile.NewLoader(cfg.Delimiter, logger)
	p := pipeline.New(loader, logger, metrics, publishers...)

	_, runErr := p.Run(ctx, cfg.DataPath)

	if cfg.MetricsTextfile != "" {
		if err := metrics.WriteTextfile(cfg.MetricsTextfile); err != nil {
			logger.Error("metrics export failed", "error", err)
		}
	}

	// The pipeline has already logged the failing phase.
	if runErr != nil {
		return 1
	}
	return 0
}
