package engine

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"donormatch/internal/aggregate"
	"donormatch/internal/dashboard"
	"donormatch/internal/donor/models"
	"donormatch/internal/geo"
	"donormatch/internal/shortage"
	id "donormatch/pkg/domain"
)

// trendMonths is how far back the report's completion trend reaches.
const trendMonths = 12

// Snapshot is the input to one report: donors with their active bookings
// already merged, plus requests. Loaders build it; the engine only reads it.
type Snapshot struct {
	Donors   []models.Donor
	Requests []models.DonationRequest
	LoadedAt time.Time
}

// Donor finds a donor in the snapshot by ID.
func (s *Snapshot) Donor(donorID id.DonorID) (models.Donor, bool) {
	for _, d := range s.Donors {
		if d.ID == donorID {
			return d, true
		}
	}
	return models.Donor{}, false
}

// Report bundles every dashboard read-model computed from one snapshot at one
// instant. A report is immutable once built.
type Report struct {
	AsOf        time.Time               `json:"as_of"`
	Totals      aggregate.Totals        `json:"totals"`
	Unmapped    int                     `json:"unmapped"`
	Cells       []aggregate.Cell        `json:"cells"`
	Shortages   []shortage.Flag         `json:"shortages"`
	Thresholds  shortage.Thresholds     `json:"thresholds"`
	Funnel      []dashboard.FunnelStage `json:"funnel"`
	BloodGroups []dashboard.GroupShare  `json:"blood_groups"`
	Supply      []dashboard.GroupSupply `json:"supply"`
	Completions []dashboard.TrendBucket `json:"completions"`
	Snapshot    *Snapshot               `json:"-"`
}

// Level returns the report's cells at one level.
func (r *Report) Level(level geo.Level) []aggregate.Cell {
	return aggregate.Filter(r.Cells, level)
}

// BuildReport computes every read-model from one snapshot in a single
// aggregation pass. The snapshot is copied first, so the caller may keep
// mutating its own slices.
func (s *Service) BuildReport(ctx context.Context, snap Snapshot, asOf time.Time) (*Report, error) {
	ctx, span := s.tracer.Start(ctx, "engine.BuildReport", trace.WithAttributes(
		attribute.Int("donor_count", len(snap.Donors)),
		attribute.Int("request_count", len(snap.Requests)),
	))
	defer span.End()
	start := time.Now()
	defer s.metrics.ObservePass("report", start)

	own := &Snapshot{
		Donors:   models.CloneDonors(snap.Donors),
		Requests: models.CloneRequests(snap.Requests),
		LoadedAt: snap.LoadedAt,
	}

	cells := s.dense.AggregateDemand(own.Donors, own.Requests, asOf)
	flags, err := s.detect(cells, s.thresholds)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	funnel, err := dashboard.Funnel(s.policy, own.Donors, own.Requests, asOf)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		s.logger.ErrorContext(ctx, "funnel invariant violated", "error", err)
		return nil, err
	}
	completions, err := dashboard.BucketTrends(
		dashboard.CompletionSamples(own.Requests),
		dashboard.GranularityMonth,
		dashboard.TrendStart(asOf, dashboard.GranularityMonth, trendMonths),
		asOf,
	)
	if err != nil {
		return nil, err
	}

	// Dense cells are only useful for shortage detection; the published
	// distribution keeps just the units that have donors or demand.
	populated := make([]aggregate.Cell, 0, len(cells))
	for _, c := range cells {
		if c.TotalCount > 0 || c.OpenRequestCount > 0 {
			populated = append(populated, c)
		}
	}
	aggregate.SortCells(populated)

	report := &Report{
		AsOf:        asOf,
		Totals:      aggregate.Sum(cells, geo.LevelDivision),
		Unmapped:    unmappedTotal(cells),
		Cells:       populated,
		Shortages:   flags,
		Thresholds:  s.thresholds,
		Funnel:      funnel,
		BloodGroups: dashboard.Distribution(own.Donors),
		Supply:      dashboard.CompatibleSupply(s.policy, own.Donors, own.Requests, asOf),
		Completions: completions,
		Snapshot:    own,
	}

	s.metrics.AddDonorsEvaluated(len(own.Donors))
	s.metrics.SetDataQuality(report.Unmapped, report.Totals.Incomplete)
	s.metrics.SetShortageFlags(flagCounts(flags))

	if report.Unmapped > 0 {
		s.logger.WarnContext(ctx, "donors with unmapped geography",
			"unmapped_count", report.Unmapped,
			"donor_count", len(own.Donors),
		)
	}
	s.logger.InfoContext(ctx, "report built",
		"as_of", asOf.Format(time.RFC3339),
		"donor_count", len(own.Donors),
		"request_count", len(own.Requests),
		"shortage_count", len(flags),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return report, nil
}

func unmappedTotal(cells []aggregate.Cell) int {
	n := 0
	for _, c := range cells {
		if c.Unit.Level == geo.LevelDivision && c.Unit.Division == geo.Unmapped {
			n += c.TotalCount
		}
	}
	return n
}

func flagCounts(flags []shortage.Flag) map[[2]string]int {
	out := make(map[[2]string]int)
	for _, f := range flags {
		out[[2]string{string(f.Unit.Level), string(f.BloodGroup)}]++
	}
	return out
}
