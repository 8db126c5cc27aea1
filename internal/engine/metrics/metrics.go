package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the engine and its refresh loop.
type Metrics struct {
	// Engine pass latency by operation
	PassDuration *prometheus.HistogramVec

	// Donors fed through eligibility evaluation
	DonorsEvaluated prometheus.Counter

	// Current shortage flags by level and blood group
	ShortageFlags *prometheus.GaugeVec

	// Donors bucketed as Unmapped / incomplete in the latest report
	UnmappedDonors   prometheus.Gauge
	IncompleteDonors prometheus.Gauge

	// Refresh loop health
	RefreshFailures  prometheus.Counter
	LastRefreshEpoch prometheus.Gauge
}

// New registers the engine metrics on the default registry.
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry registers the engine metrics on reg. Tests pass a fresh
// prometheus.NewRegistry() so repeated construction does not collide.
func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		PassDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "donormatch_engine_pass_duration_seconds",
			Help:    "Duration of engine computations by operation",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"operation"}), // operation: "distribution", "shortages", "funnel", "report"

		DonorsEvaluated: f.NewCounter(prometheus.CounterOpts{
			Name: "donormatch_engine_donors_evaluated_total",
			Help: "Total donor records evaluated across all engine passes",
		}),

		ShortageFlags: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "donormatch_shortage_flags",
			Help: "Critical shortage flags in the latest report by level and blood group",
		}, []string{"level", "blood_group"}),

		UnmappedDonors: f.NewGauge(prometheus.GaugeOpts{
			Name: "donormatch_unmapped_donors",
			Help: "Donors whose location did not resolve in the latest report",
		}),

		IncompleteDonors: f.NewGauge(prometheus.GaugeOpts{
			Name: "donormatch_incomplete_donors",
			Help: "Donors missing date of birth, weight or blood group in the latest report",
		}),

		RefreshFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "donormatch_refresh_failures_total",
			Help: "Total failed snapshot refreshes",
		}),

		LastRefreshEpoch: f.NewGauge(prometheus.GaugeOpts{
			Name: "donormatch_last_refresh_timestamp_seconds",
			Help: "Unix time of the last successful refresh",
		}),
	}
}

// ObservePass records the duration of an engine operation.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObservePass(operation string, start time.Time) {
	if m != nil {
		m.PassDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	}
}

// AddDonorsEvaluated counts donors processed by a pass.
func (m *Metrics) AddDonorsEvaluated(n int) {
	if m != nil {
		m.DonorsEvaluated.Add(float64(n))
	}
}

// SetShortageFlags replaces the flag gauges with the latest counts.
func (m *Metrics) SetShortageFlags(counts map[[2]string]int) {
	if m == nil {
		return
	}
	m.ShortageFlags.Reset()
	for k, n := range counts {
		m.ShortageFlags.WithLabelValues(k[0], k[1]).Set(float64(n))
	}
}

// SetDataQuality records unmapped and incomplete donor counts.
func (m *Metrics) SetDataQuality(unmapped, incomplete int) {
	if m != nil {
		m.UnmappedDonors.Set(float64(unmapped))
		m.IncompleteDonors.Set(float64(incomplete))
	}
}

// IncrementRefreshFailure records a failed refresh.
func (m *Metrics) IncrementRefreshFailure() {
	if m != nil {
		m.RefreshFailures.Inc()
	}
}

// MarkRefreshed records a successful refresh time.
func (m *Metrics) MarkRefreshed(at time.Time) {
	if m != nil {
		m.LastRefreshEpoch.Set(float64(at.Unix()))
	}
}
