package kafka

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks shortage report delivery to the broker.
type Metrics struct {
	Published       prometheus.Counter
	PublishFailures prometheus.Counter
	CircuitDropped  prometheus.Counter
	CircuitState    prometheus.Gauge
}

func NewMetrics() *Metrics {
	return NewMetricsWithRegistry(prometheus.DefaultRegisterer)
}

func NewMetricsWithRegistry(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Published: f.NewCounter(prometheus.CounterOpts{
			Name: "donormatch_publish_messages_total",
			Help: "Total shortage messages acknowledged by the broker",
		}),
		PublishFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "donormatch_publish_failures_total",
			Help: "Total shortage report publishes that failed",
		}),
		CircuitDropped: f.NewCounter(prometheus.CounterOpts{
			Name: "donormatch_publish_circuit_dropped_total",
			Help: "Total shortage reports skipped because the circuit was open",
		}),
		CircuitState: f.NewGauge(prometheus.GaugeOpts{
			Name: "donormatch_publish_circuit_state",
			Help: "Publisher circuit state (0=closed, 1=open)",
		}),
	}
}

func (m *Metrics) addPublished(n int) {
	if m != nil {
		m.Published.Add(float64(n))
	}
}

func (m *Metrics) incFailure() {
	if m != nil {
		m.PublishFailures.Inc()
	}
}

func (m *Metrics) incDropped() {
	if m != nil {
		m.CircuitDropped.Inc()
	}
}

func (m *Metrics) setCircuitOpen(open bool) {
	if m == nil {
		return
	}
	if open {
		m.CircuitState.Set(1)
		return
	}
	m.CircuitState.Set(0)
}
