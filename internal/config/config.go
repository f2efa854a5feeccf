package config

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds all run settings, populated from environment variables.
type Config struct {
	DataPath  string
	Delimiter rune
	LogLevel  string
	LogFormat string

	// Optional outputs; empty disables them.
	ChartDir        string
	MetricsTextfile string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	delimiter, err := parseDelimiter(sharedcfg.EnvOrDefault("CSV_DELIMITER", ","))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		DataPath:        sharedcfg.EnvOrDefault("CRASH_DATA_PATH", "data/crashes.csv"),
		Delimiter:       delimiter,
		LogLevel:        strings.ToLower(sharedcfg.EnvOrDefault("LOG_LEVEL", "info")),
		LogFormat:       strings.ToLower(sharedcfg.EnvOrDefault("LOG_FORMAT", "text")),
		ChartDir:        sharedcfg.EnvOrDefault("CHART_DIR", ""),
		MetricsTextfile: sharedcfg.EnvOrDefault("METRICS_TEXTFILE", ""),
	}

	if strings.TrimSpace(cfg.DataPath) == "" {
		return nil, errors.New("CRASH_DATA_PATH is required")
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "warning", "error":
	default:
		return nil, fmt.Errorf("invalid LOG_LEVEL %q", cfg.LogLevel)
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("invalid LOG_FORMAT %q", cfg.LogFormat)
	}

	return cfg, nil
}

// parseDelimiter accepts a single rune, or the word "tab".
func parseDelimiter(s string) (rune, error) {
	if strings.EqualFold(s, "tab") || s == `\t` {
		return '\t', nil
	}
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || size != len(s) || r == utf8.RuneError {
		return 0, fmt.Errorf("invalid CSV_DELIMITER %q: must be a single character", s)
	}
	if r == '"' || r == '\r' || r == '\n' {
		return 0, fmt.Errorf("invalid CSV_DELIMITER %q", s)
	}
	return r, nil
}
