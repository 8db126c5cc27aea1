package source

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts what the sources drop while listing.
type Metrics struct {
	// Malformed rows left out of a listing, by source and record kind
	RowsSkipped *prometheus.CounterVec
}

// NewMetrics registers the source metrics on the default registry.
func NewMetrics() *Metrics {
	return NewMetricsWithRegistry(prometheus.DefaultRegisterer)
}

func NewMetricsWithRegistry(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		RowsSkipped: f.NewCounterVec(prometheus.CounterOpts{
			Name: "donormatch_source_rows_skipped_total",
			Help: "Malformed source rows left out of a snapshot",
		}, []string{"source", "kind"}), // kind: "donor", "request", "booking"
	}
}

func (m *Metrics) incRowSkipped(src, kind string) {
	if m == nil {
		return
	}
	m.RowsSkipped.WithLabelValues(src, kind).Inc()
}
