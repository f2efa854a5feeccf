package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "data/crashes.csv", cfg.DataPath)
	assert.Equal(t, ',', cfg.Delimiter)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Empty(t, cfg.ChartDir)
	assert.Empty(t, cfg.MetricsTextfile)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("CRASH_DATA_PATH", "/srv/crash/export.csv")
	t.Setenv("CSV_DELIMITER", ";")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("CHART_DIR", "/tmp/charts")
	t.Setenv("METRICS_TEXTFILE", "/var/lib/node_exporter/crash_stats.prom")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/srv/crash/export.csv", cfg.DataPath)
	assert.Equal(t, ';', cfg.Delimiter)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "/tmp/charts", cfg.ChartDir)
	assert.Equal(t, "/var/lib/node_exporter/crash_stats.prom", cfg.MetricsTextfile)
}

func TestLoad_TabDelimiter(t *testing.T) {
	t.Setenv("CSV_DELIMITER", "tab")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, '\t', cfg.Delimiter)
}

func TestLoad_InvalidDelimiter(t *testing.T) {
	for _, v := range []string{";;", `"`} {
		t.Run(v, func(t *testing.T) {
			t.Setenv("CSV_DELIMITER", v)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "CSV_DELIMITER")
		})
	}
}

func TestLoad_InvalidLogLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "verbose")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LOG_LEVEL")
}

func TestLoad_InvalidLogFormat(t *testing.T) {
	t.Setenv("LOG_FORMAT", "xml")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LOG_FORMAT")
}
