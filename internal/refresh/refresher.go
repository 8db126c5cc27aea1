// Package refresh keeps the latest engine report current by polling the
// snapshot sources on an interval.
package refresh

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"donormatch/internal/engine"
	"donormatch/internal/engine/metrics"
)

// DefaultInterval is the polling period when none is configured.
const DefaultInterval = 5 * time.Minute

// ErrNoReport is returned by Latest before the first successful refresh.
var ErrNoReport = errors.New("no report built yet")

type Loader interface {
	Load(ctx context.Context) (engine.Snapshot, error)
}

type Builder interface {
	BuildReport(ctx context.Context, snap engine.Snapshot, asOf time.Time) (*engine.Report, error)
}

type Publisher interface {
	Publish(ctx context.Context, report *engine.Report) error
}

// Refresher loads a snapshot, builds a report and swaps it in atomically.
// Readers always see either the previous complete report or the new one.
type Refresher struct {
	loader     Loader
	builder    Builder
	publishers []Publisher
	interval   time.Duration
	clock      func() time.Time
	logger     *slog.Logger
	metrics    *metrics.Metrics
	tracer     trace.Tracer

	latest atomic.Pointer[engine.Report]
}

type Option func(*Refresher)

func WithInterval(d time.Duration) Option {
	return func(r *Refresher) {
		if d > 0 {
			r.interval = d
		}
	}
}

func WithClock(clock func() time.Time) Option {
	return func(r *Refresher) {
		r.clock = clock
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(r *Refresher) {
		r.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Refresher) {
		r.metrics = m
	}
}

// WithPublisher adds a destination for every new report.
func WithPublisher(p Publisher) Option {
	return func(r *Refresher) {
		r.publishers = append(r.publishers, p)
	}
}

func New(loader Loader, builder Builder, opts ...Option) *Refresher {
	r := &Refresher{
		loader:   loader,
		builder:  builder,
		interval: DefaultInterval,
		clock:    time.Now,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		tracer:   otel.Tracer("donormatch/refresh"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Latest returns the most recent report.
func (r *Refresher) Latest() (*engine.Report, error) {
	report := r.latest.Load()
	if report == nil {
		return nil, ErrNoReport
	}
	return report, nil
}

// Refresh runs one load/build/publish cycle. On a load or build failure the
// previous report stays in place. Publish failures are logged but do not undo
// the swap: the report itself is valid.
func (r *Refresher) Refresh(ctx context.Context) (*engine.Report, error) {
	ctx, span := r.tracer.Start(ctx, "refresh.Refresh")
	defer span.End()
	start := time.Now()

	snap, err := r.loader.Load(ctx)
	if err != nil {
		return nil, r.fail(ctx, span, fmt.Errorf("load snapshot: %w", err))
	}
	asOf := r.clock()
	report, err := r.builder.BuildReport(ctx, snap, asOf)
	if err != nil {
		return nil, r.fail(ctx, span, fmt.Errorf("build report: %w", err))
	}

	r.latest.Store(report)
	r.metrics.MarkRefreshed(asOf)
	span.SetAttributes(
		attribute.Int("donor_count", len(snap.Donors)),
		attribute.Int("shortage_count", len(report.Shortages)),
	)

	for _, p := range r.publishers {
		if err := p.Publish(ctx, report); err != nil {
			r.logger.WarnContext(ctx, "shortage report not published", "error", err)
		}
	}

	r.logger.InfoContext(ctx, "report refreshed",
		"as_of", asOf.Format(time.RFC3339),
		"donor_count", len(snap.Donors),
		"shortage_count", len(report.Shortages),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return report, nil
}

func (r *Refresher) fail(ctx context.Context, span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	r.metrics.IncrementRefreshFailure()
	attrs := []any{"error", err}
	if prev := r.latest.Load(); prev != nil {
		attrs = append(attrs, "serving_as_of", prev.AsOf.Format(time.RFC3339))
	}
	r.logger.ErrorContext(ctx, "refresh failed, keeping previous report", attrs...)
	return err
}

// Run refreshes once immediately and then on every tick until ctx is
// cancelled. Individual failures do not stop the loop.
func (r *Refresher) Run(ctx context.Context) error {
	_, _ = r.Refresh(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			_, _ = r.Refresh(ctx)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
