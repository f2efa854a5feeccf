package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/crash-stats/internal/domain"
	"github.com/couchcryptid/crash-stats/internal/observability"
	"github.com/couchcryptid/crash-stats/internal/stats"
)

// RecordLoader reads every normalized record from a source.
type RecordLoader interface {
	Load(ctx context.Context, path string) ([]domain.Record, error)
}

// Publisher renders or exports a finished summary.
type Publisher interface {
	Publish(ctx context.Context, s *stats.Summary) error
}

// Phase labels used for timing metrics.
const (
	phaseLoad      = "load"
	phaseAggregate = "aggregate"
	phasePublish   = "publish"
)

// Pipeline runs load, aggregate and publish strictly in sequence. Each phase
// completes before the next starts and any failure ends the run.
type Pipeline struct {
	loader     RecordLoader
	publishers []Publisher
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// New creates a Pipeline. Publishers run in the order given.
func New(l RecordLoader, logger *slog.Logger, metrics *observability.Metrics, publishers ...Publisher) *Pipeline {
	return &Pipeline{
		loader:     l,
		publishers: publishers,
		logger:     logger,
		metrics:    metrics,
	}
}

// Run loads path, aggregates it and hands the summary to every publisher.
// On a load or validation failure no summary is produced and nothing is
// published.
func (p *Pipeline) Run(ctx context.Context, path string) (*stats.Summary, error) {
	p.logger.Info("pipeline started", "path", path, "publishers", len(p.publishers))
	p.metrics.RunSuccess.Set(0)
	defer func() { p.metrics.LastRunTimestamp.Set(float64(domain.Now().Unix())) }()

	records, err := p.load(ctx, path)
	if err != nil {
		return nil, err
	}

	summary, err := p.aggregate(records)
	if err != nil {
		return nil, err
	}

	if err := p.publish(ctx, summary); err != nil {
		return nil, err
	}

	p.metrics.RunSuccess.Set(1)
	p.logger.Info("pipeline finished", "total_crashes", summary.TotalCrashes)
	return summary, nil
}

func (p *Pipeline) load(ctx context.Context, path string) ([]domain.Record, error) {
	defer p.observe(phaseLoad, domain.Now())

	records, err := p.loader.Load(ctx, path)
	if err != nil {
		phase := "unknown"
		var derr *domain.DecodeError
		if errors.As(err, &derr) {
			phase = string(derr.Phase)
		}
		p.metrics.DecodeErrors.WithLabelValues(phase).Inc()
		p.logger.Error("load failed", "error", err, "phase", phase, "path", path)
		return nil, fmt.Errorf("load crashes: %w", err)
	}

	p.metrics.RecordsLoaded.Add(float64(len(records)))
	return records, nil
}

func (p *Pipeline) aggregate(records []domain.Record) (*stats.Summary, error) {
	defer p.observe(phaseAggregate, domain.Now())

	summary, err := stats.Aggregate(records)
	if err != nil {
		field := "unknown"
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			field = verr.Field
		}
		p.metrics.ValidationErrors.WithLabelValues(field).Inc()
		p.logger.Error("aggregate failed", "error", err, "field", field)
		return nil, fmt.Errorf("aggregate crashes: %w", err)
	}

	p.metrics.TotalCrashes.Set(float64(summary.TotalCrashes))
	for _, d := range stats.Dimensions {
		p.metrics.BreakdownCategories.WithLabelValues(string(d)).Set(float64(summary.Breakdown(d).Len()))
	}
	if !summary.HasDates() {
		p.logger.Warn("no crash records in input")
	}
	return summary, nil
}

func (p *Pipeline) publish(ctx context.Context, summary *stats.Summary) error {
	defer p.observe(phasePublish, domain.Now())

	for i, pub := range p.publishers {
		if err := pub.Publish(ctx, summary); err != nil {
			p.logger.Error("publish failed", "error", err, "publisher", i)
			return fmt.Errorf("publish summary: %w", err)
		}
	}
	return nil
}

func (p *Pipeline) observe(phase string, start time.Time) {
	elapsed := domain.Since(start)
	p.metrics.PhaseDuration.WithLabelValues(phase).Observe(elapsed.Seconds())
	p.logger.Debug("phase complete", "phase", phase, "duration", elapsed)
}
