package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"donormatch/internal/availability"
	"donormatch/internal/dashboard"
	"donormatch/internal/donor/models"
	"donormatch/internal/eligibility"
	"donormatch/internal/engine"
	"donormatch/internal/geo"
	"donormatch/internal/refresh"
	id "donormatch/pkg/domain"
	dErrors "donormatch/pkg/domain-errors"
	"donormatch/pkg/platform/httputil"
	"donormatch/pkg/requestcontext"
)

// Reports yields the report the API serves.
type Reports interface {
	Latest() (*engine.Report, error)
}

// Engine is the slice of engine.Service used for per-request evaluation.
type Engine interface {
	Eligibility(donor models.Donor, asOf time.Time) eligibility.Result
	AvailabilityStatus(donor models.Donor, asOf time.Time) availability.Status
	Trends(ctx context.Context, samples []dashboard.Sample, g dashboard.Granularity, from, to time.Time) ([]dashboard.TrendBucket, error)
}

// Handler serves the inventory dashboard read API from the latest report.
type Handler struct {
	reports Reports
	engine  Engine
	clock   func() time.Time
	logger  *slog.Logger
}

type Option func(*Handler)

func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) {
		h.logger = logger
	}
}

func WithClock(clock func() time.Time) Option {
	return func(h *Handler) {
		h.clock = clock
	}
}

func New(reports Reports, eng Engine, opts ...Option) *Handler {
	h := &Handler{
		reports: reports,
		engine:  eng,
		clock:   time.Now,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register mounts the read endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/inventory", func(r chi.Router) {
		r.Get("/summary", h.HandleSummary)
		r.Get("/distribution", h.HandleDistribution)
		r.Get("/shortages", h.HandleShortages)
		r.Get("/funnel", h.HandleFunnel)
		r.Get("/blood-groups", h.HandleBloodGroups)
		r.Get("/trends", h.HandleTrends)
	})
	r.Get("/donors/{donorID}/eligibility", h.HandleDonorEligibility)
}

func (h *Handler) latest(w http.ResponseWriter, r *http.Request) (*engine.Report, bool) {
	report, err := h.reports.Latest()
	if err != nil {
		if errors.Is(err, refresh.ErrNoReport) {
			err = dErrors.Wrap(err, dErrors.CodeUnavailable, "inventory not loaded yet")
		}
		h.logger.WarnContext(r.Context(), "no report to serve",
			"request_id", requestcontext.RequestID(r.Context()),
			"path", r.URL.Path,
			"error", err,
		)
		httputil.WriteError(w, err)
		return nil, false
	}
	return report, true
}

// now prefers the request-scoped time so one request evaluates against a
// single instant.
func (h *Handler) now(ctx context.Context) time.Time {
	if t, ok := requestcontext.Time(ctx); ok {
		return t
	}
	return h.clock()
}

// HandleSummary handles GET /inventory/summary.
func (h *Handler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	report, ok := h.latest(w, r)
	if !ok {
		return
	}
	httputil.WriteJSON(w, http.StatusOK, SummaryResponse{
		AsOf:          report.AsOf,
		Totals:        report.Totals,
		Unmapped:      report.Unmapped,
		ShortageCount: len(report.Shortages),
	})
}

// HandleDistribution handles GET /inventory/distribution?level=district.
func (h *Handler) HandleDistribution(w http.ResponseWriter, r *http.Request) {
	level, err := parseLevel(r, geo.LevelDivision)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	report, ok := h.latest(w, r)
	if !ok {
		return
	}
	httputil.WriteJSON(w, http.StatusOK, DistributionResponse{
		AsOf:  report.AsOf,
		Level: level,
		Cells: report.Level(level),
	})
}

// HandleShortages handles GET /inventory/shortages with an optional level filter.
func (h *Handler) HandleShortages(w http.ResponseWriter, r *http.Request) {
	var level geo.Level
	if r.URL.Query().Get("level") != "" {
		var err error
		if level, err = parseLevel(r, ""); err != nil {
			httputil.WriteError(w, err)
			return
		}
	}
	report, ok := h.latest(w, r)
	if !ok {
		return
	}
	flags := report.Shortages
	if level != "" {
		flags = filterFlags(flags, level)
	}
	httputil.WriteJSON(w, http.StatusOK, ShortagesResponse{
		AsOf:       report.AsOf,
		Thresholds: report.Thresholds,
		Shortages:  flags,
	})
}

// HandleFunnel handles GET /inventory/funnel.
func (h *Handler) HandleFunnel(w http.ResponseWriter, r *http.Request) {
	report, ok := h.latest(w, r)
	if !ok {
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FunnelResponse{AsOf: report.AsOf, Stages: report.Funnel})
}

// HandleBloodGroups handles GET /inventory/blood-groups.
func (h *Handler) HandleBloodGroups(w http.ResponseWriter, r *http.Request) {
	report, ok := h.latest(w, r)
	if !ok {
		return
	}
	httputil.WriteJSON(w, http.StatusOK, BloodGroupsResponse{
		AsOf:   report.AsOf,
		Shares: report.BloodGroups,
		Supply: report.Supply,
	})
}

// HandleTrends handles GET /inventory/trends?granularity=week&series=requests&from=&to=.
func (h *Handler) HandleTrends(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q, err := parseTrendQuery(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	report, ok := h.latest(w, r)
	if !ok {
		return
	}
	q.defaults(report.AsOf)

	var samples []dashboard.Sample
	if report.Snapshot != nil {
		switch q.Series {
		case seriesRequests:
			samples = dashboard.RequestSamples(report.Snapshot.Requests)
		default:
			samples = dashboard.CompletionSamples(report.Snapshot.Requests)
		}
	}

	buckets, err := h.engine.Trends(ctx, samples, q.Granularity, q.From, q.To)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, TrendsResponse{
		AsOf:        report.AsOf,
		Series:      q.Series,
		Granularity: q.Granularity,
		Buckets:     buckets,
	})
}

// HandleDonorEligibility handles GET /donors/{donorID}/eligibility. The donor
// comes from the latest snapshot; eligibility is evaluated as of the request.
func (h *Handler) HandleDonorEligibility(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	donorID, err := id.ParseDonorID(chi.URLParam(r, "donorID"))
	if err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid donor id"))
		return
	}
	report, ok := h.latest(w, r)
	if !ok {
		return
	}
	var donor models.Donor
	found := false
	if report.Snapshot != nil {
		donor, found = report.Snapshot.Donor(donorID)
	}
	if !found {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "donor not found"))
		return
	}

	asOf := h.now(ctx)
	result := h.engine.Eligibility(donor, asOf)
	status := h.engine.AvailabilityStatus(donor, asOf)

	h.logger.DebugContext(ctx, "donor eligibility evaluated",
		"request_id", requestcontext.RequestID(ctx),
		"donor_id", donorID,
		"is_eligible", result.IsEligible,
		"reason", result.Reason,
		"status", status,
	)
	httputil.WriteJSON(w, http.StatusOK, EligibilityResponse{
		DonorID:          donorID,
		AsOf:             asOf,
		IsEligible:       result.IsEligible,
		Reason:           result.Reason,
		NextEligibleDate: result.NextEligibleDate,
		Status:           status,
		SnapshotAsOf:     report.AsOf,
	})
}
