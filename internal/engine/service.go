package engine

import (
	"context"
	"io"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"donormatch/internal/aggregate"
	"donormatch/internal/availability"
	"donormatch/internal/dashboard"
	"donormatch/internal/donor/models"
	"donormatch/internal/eligibility"
	"donormatch/internal/engine/metrics"
	"donormatch/internal/geo"
	"donormatch/internal/shortage"
	dErrors "donormatch/pkg/domain-errors"
)

// Service is the read-only query surface over donor snapshots. It holds only
// immutable configuration: every call works on its own copy of the input and
// returns a freshly built result, so a single Service is safe for concurrent
// use without locks.
type Service struct {
	index      *geo.Index
	policy     eligibility.Policy
	thresholds shortage.Thresholds
	sparse     *aggregate.Aggregator
	dense      *aggregate.Aggregator
	logger     *slog.Logger
	metrics    *metrics.Metrics
	tracer     trace.Tracer
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithTracer(t trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

// WithIndex replaces the default Bangladesh index.
func WithIndex(ix *geo.Index) Option {
	return func(s *Service) {
		s.index = ix
	}
}

// WithPolicy overrides the eligibility policy.
func WithPolicy(p eligibility.Policy) Option {
	return func(s *Service) {
		s.policy = p
	}
}

// WithThresholds sets the shortage thresholds used when a call does not
// supply its own.
func WithThresholds(t shortage.Thresholds) Option {
	return func(s *Service) {
		s.thresholds = t
	}
}

// New constructs the engine. Configured thresholds are validated here so a
// bad deployment fails at startup instead of on the first query.
func New(opts ...Option) (*Service, error) {
	s := &Service{
		index:      geo.Default(),
		policy:     eligibility.DefaultPolicy,
		thresholds: shortage.DefaultThresholds(),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		tracer:     otel.Tracer("donormatch/engine"),
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.thresholds.Validate(); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInvalidConfig, "invalid shortage thresholds")
	}
	s.sparse = aggregate.New(s.index, aggregate.WithPolicy(s.policy))
	s.dense = aggregate.New(s.index,
		aggregate.WithPolicy(s.policy),
		aggregate.WithDenseGrid(geo.LevelDivision, geo.LevelDistrict),
	)
	return s, nil
}

// Thresholds returns the configured default thresholds.
func (s *Service) Thresholds() shortage.Thresholds {
	return s.thresholds
}

// Index returns the geographic index the engine resolves against.
func (s *Service) Index() *geo.Index {
	return s.index
}

// Eligibility evaluates one donor as of asOf.
func (s *Service) Eligibility(donor models.Donor, asOf time.Time) eligibility.Result {
	return s.policy.Evaluate(donor, asOf)
}

// AvailabilityStatus derives one donor's operational status as of asOf.
func (s *Service) AvailabilityStatus(donor models.Donor, asOf time.Time) availability.Status {
	return availability.StatusOf(s.policy, donor, asOf)
}

// GeographicDistribution returns the cells of one level, sorted.
func (s *Service) GeographicDistribution(ctx context.Context, donors []models.Donor, asOf time.Time, level geo.Level) ([]aggregate.Cell, error) {
	if !level.IsValid() {
		return []aggregate.Cell{}, dErrors.New(dErrors.CodeInvalidInput, "unknown geographic level: "+string(level))
	}
	ctx, span := s.tracer.Start(ctx, "engine.GeographicDistribution", trace.WithAttributes(
		attribute.Int("donor_count", len(donors)),
		attribute.String("level", string(level)),
	))
	defer span.End()
	start := time.Now()
	defer s.metrics.ObservePass("distribution", start)

	cells := aggregate.Filter(s.sparse.Aggregate(models.CloneDonors(donors), asOf), level)
	aggregate.SortCells(cells)
	s.metrics.AddDonorsEvaluated(len(donors))

	s.logger.DebugContext(ctx, "geographic distribution computed",
		"level", level,
		"donor_count", len(donors),
		"cell_count", len(cells),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return cells, nil
}

// CriticalShortages flags division and district cells (dense: units without
// any donor of a group are included) and upazila cells that have donors.
// A nil thresholds argument uses the configured defaults.
func (s *Service) CriticalShortages(ctx context.Context, donors []models.Donor, asOf time.Time, thresholds *shortage.Thresholds) ([]shortage.Flag, error) {
	t := s.thresholds
	if thresholds != nil {
		t = *thresholds
	}
	if err := t.Validate(); err != nil {
		s.logger.WarnContext(ctx, "shortage detection rejected", "error", err)
		return []shortage.Flag{}, dErrors.Wrap(err, dErrors.CodeInvalidConfig, "invalid shortage threshold")
	}

	ctx, span := s.tracer.Start(ctx, "engine.CriticalShortages", trace.WithAttributes(
		attribute.Int("donor_count", len(donors)),
		attribute.Int("threshold_default", t.Default),
	))
	defer span.End()
	start := time.Now()
	defer s.metrics.ObservePass("shortages", start)

	flags, err := s.detect(s.dense.Aggregate(models.CloneDonors(donors), asOf), t)
	if err != nil {
		return []shortage.Flag{}, err
	}
	s.metrics.AddDonorsEvaluated(len(donors))

	s.logger.DebugContext(ctx, "critical shortages computed",
		"donor_count", len(donors),
		"flag_count", len(flags),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return flags, nil
}

func (s *Service) detect(cells []aggregate.Cell, t shortage.Thresholds) ([]shortage.Flag, error) {
	flags, err := shortage.Detect(cells, t)
	if err != nil {
		return []shortage.Flag{}, dErrors.Wrap(err, dErrors.CodeInvalidConfig, "invalid shortage threshold")
	}
	shortage.Sort(flags)
	return flags, nil
}

// FunnelMetrics builds the donor-journey funnel.
func (s *Service) FunnelMetrics(ctx context.Context, donors []models.Donor, requests []models.DonationRequest, asOf time.Time) ([]dashboard.FunnelStage, error) {
	ctx, span := s.tracer.Start(ctx, "engine.FunnelMetrics", trace.WithAttributes(
		attribute.Int("donor_count", len(donors)),
		attribute.Int("request_count", len(requests)),
	))
	defer span.End()
	defer s.metrics.ObservePass("funnel", time.Now())

	stages, err := dashboard.Funnel(s.policy, models.CloneDonors(donors), models.CloneRequests(requests), asOf)
	if err != nil {
		s.logger.ErrorContext(ctx, "funnel invariant violated", "error", err)
		return nil, dErrors.Wrap(err, dErrors.CodeInvariantViolation, "funnel stages out of order")
	}
	s.metrics.AddDonorsEvaluated(len(donors))
	return stages, nil
}

// BloodGroupDistribution returns each group's share of the donor base.
func (s *Service) BloodGroupDistribution(_ context.Context, donors []models.Donor) []dashboard.GroupShare {
	return dashboard.Distribution(donors)
}

// Trends buckets caller-supplied samples.
func (s *Service) Trends(_ context.Context, samples []dashboard.Sample, g dashboard.Granularity, from, to time.Time) ([]dashboard.TrendBucket, error) {
	buckets, err := dashboard.BucketTrends(samples, g, from, to)
	if err != nil {
		return []dashboard.TrendBucket{}, dErrors.Wrap(err, dErrors.CodeInvalidInput, "invalid trend query")
	}
	return buckets, nil
}
