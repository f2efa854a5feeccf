// Package observability provides the logger and Prometheus metrics for a
// crash-stats run.
package observability

import (
	"io"
	"log/slog"
	"strings"

	"github.com/couchcryptid/crash-stats/internal/config"
	"github.com/google/uuid"
)

// NewLogger builds a slog.Logger from the configured level and format.
// Every record carries a run_id so lines from one run can be correlated.
func NewLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}

	var handler slog.Handler
	if strings.EqualFold(cfg.LogFormat, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler).With("run_id", uuid.NewString())
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
