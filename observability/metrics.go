// Package observability holds the logging and metrics plumbing shared by the
// lambda and the local server.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "vnlookup"

// Outcome labels for RequestsTotal.
const (
	OutcomeOK            = "ok"
	OutcomeUserError     = "user_error"
	OutcomeUpstreamError = "upstream_error"
)

// Metrics holds the collectors for request handling and upstream calls.
type Metrics struct {
	RequestsTotal    *prometheus.CounterVec   // labels: route, outcome
	UpstreamDuration *prometheus.HistogramVec // labels: source
	UpstreamErrors   *prometheus.CounterVec   // labels: source
}

// NewMetrics creates the collectors and registers them with reg. A nil reg
// leaves them unregistered, which keeps parallel tests from colliding on the
// default registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Handled requests by route and outcome.",
		}, []string{"route", "outcome"}),
		UpstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_duration_seconds",
			Help:      "Duration of calls to the lottery and weather sources.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"source"}),
		UpstreamErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_errors_total",
			Help:      "Failed calls to the lottery and weather sources.",
		}, []string{"source"}),
	}

	if reg != nil {
		reg.MustRegister(m.RequestsTotal, m.UpstreamDuration, m.UpstreamErrors)
	}

	return m
}

// ObserveUpstream records one upstream call.
func (m *Metrics) ObserveUpstream(source string, seconds float64, err error) {
	if m == nil {
		return
	}
	m.UpstreamDuration.WithLabelValues(source).Observe(seconds)
	if err != nil {
		m.UpstreamErrors.WithLabelValues(source).Inc()
	}
}

// CountRequest records one handled request.
func (m *Metrics) CountRequest(route, outcome string) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(route, outcome).Inc()
}
