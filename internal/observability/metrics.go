package observability

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for one
// analysis run.
type Metrics struct {
	RecordsLoaded    prometheus.Counter
	DecodeErrors     *prometheus.CounterVec // labels: phase={open,row,close}
	ValidationErrors *prometheus.CounterVec // labels: field
	RunSuccess       prometheus.Gauge
	LastRunTimestamp prometheus.Gauge

	// Phase timing and breakdown shape.
	PhaseDuration       *prometheus.HistogramVec // labels: phase={load,aggregate,publish}
	BreakdownCategories *prometheus.GaugeVec     // labels: dimension
	TotalCrashes        prometheus.Gauge

	registry *prometheus.Registry
}

// NewMetrics creates all run metrics on a fresh registry. Each call is
// independent, so tests can build as many as they like.
func NewMetrics() *Metrics {
	m := &Metrics{
		RecordsLoaded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "crash_stats",
			Name:      "records_loaded_total",
			Help:      "Crash records decoded from the input file.",
		}),
		DecodeErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "crash_stats",
			Name:      "decode_errors_total",
			Help:      "Load failures by decode phase.",
		}, []string{"phase"}),
		ValidationErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "crash_stats",
			Name:      "validation_errors_total",
			Help:      "Records rejected during aggregation by field.",
		}, []string{"field"}),
		RunSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "crash_stats",
			Name:      "last_run_success",
			Help:      "1 when the last run produced a report, 0 otherwise.",
		}),
		LastRunTimestamp: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "crash_stats",
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last run finished.",
		}),
		PhaseDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "crash_stats",
			Name:      "phase_duration_seconds",
			Help:      "Duration of each pipeline phase.",
			Buckets:   []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}, []string{"phase"}),
		BreakdownCategories: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "crash_stats",
			Name:      "breakdown_categories",
			Help:      "Distinct labels per breakdown dimension.",
		}, []string{"dimension"}),
		TotalCrashes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "crash_stats",
			Name:      "total_crashes",
			Help:      "Crashes counted in the last summary.",
		}),
		registry: prometheus.NewRegistry(),
	}

	m.registry.MustRegister(
		m.RecordsLoaded,
		m.DecodeErrors,
		m.ValidationErrors,
		m.RunSuccess,
		m.LastRunTimestamp,
		m.PhaseDuration,
		m.BreakdownCategories,
		m.TotalCrashes,
	)

	return m
}

// Gatherer exposes the registry holding these metrics.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// WriteTextfile writes the metrics in Prometheus text format to path, for
// pickup by the node exporter textfile collector. The file is replaced
// atomically.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
