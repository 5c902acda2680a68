package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the evaluation counters for one process run.
type Metrics struct {
	registry *prometheus.Registry

	Evaluations        *prometheus.CounterVec
	EvaluationDuration *prometheus.HistogramVec
}

// NewMetrics creates and registers the evaluation metrics on a private
// registry.
func NewMetrics() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.Evaluations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "calc_evaluations_total",
			Help: "Total number of evaluations by operator and outcome",
		},
		[]string{"operator", "outcome"},
	)

	m.EvaluationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "calc_evaluation_duration_seconds",
			Help:    "Time from first prompt to reported outcome, including user input",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
		},
		[]string{"outcome"},
	)

	m.registry.MustRegister(m.Evaluations, m.EvaluationDuration)
	return m
}

// Observe records one finished evaluation.
func (m *Metrics) Observe(operator, outcome string, d time.Duration) {
	m.Evaluations.WithLabelValues(operator, outcome).Inc()
	m.EvaluationDuration.WithLabelValues(outcome).Observe(d.Seconds())
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile writes the metrics in text exposition format to path,
// atomically, for a textfile collector to pick up.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
