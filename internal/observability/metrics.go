package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the consumer's Prometheus instruments. A nil *Metrics is
// a safe no-op so tests can skip registration.
type Metrics struct {
	readingsTotal   prometheus.Counter
	invalidTotal    prometheus.Counter
	stallTotal      prometheus.Counter
	changeTotal     prometheus.Counter
	processDuration prometheus.Histogram
}

func NewMetrics() *Metrics {
	m := &Metrics{
		readingsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "smoker_readings_total",
			Help: "Total readings received from the transport.",
		}),
		invalidTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "smoker_invalid_readings_total",
			Help: "Total readings rejected as malformed.",
		}),
		stallTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "smoker_stall_signals_total",
			Help: "Total readings for which the stall condition held.",
		}),
		changeTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "smoker_significant_changes_total",
			Help: "Total significant temperature change events.",
		}),
		processDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "smoker_process_duration_seconds",
			Help:    "Histogram of per-reading processing durations.",
			Buckets: prometheus.DefBuckets,
		}),
	}

	prometheus.MustRegister(
		m.readingsTotal,
		m.invalidTotal,
		m.stallTotal,
		m.changeTotal,
		m.processDuration,
	)
	return m
}

func (m *Metrics) Reading() {
	if m == nil {
		return
	}
	m.readingsTotal.Inc()
}

func (m *Metrics) Invalid() {
	if m == nil {
		return
	}
	m.invalidTotal.Inc()
}

func (m *Metrics) Stall() {
	if m == nil {
		return
	}
	m.stallTotal.Inc()
}

func (m *Metrics) Change() {
	if m == nil {
		return
	}
	m.changeTotal.Inc()
}

func (m *Metrics) Processed(d time.Duration) {
	if m == nil {
		return
	}
	m.processDuration.Observe(d.Seconds())
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.Handler()
}
