// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups the collectors so tests can use a private registry.
type Metrics struct {
	Mutations         *prometheus.CounterVec
	HTTPRequests      *prometheus.CounterVec
	HTTPDuration      *prometheus.HistogramVec
	RateLimitRejected prometheus.Counter
	LinkChecks        *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Mutations: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: "wdylt", Name: "library_mutations_total", Help: "Library mutations by operation and result."},
			[]string{"op", "result"},
		),
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: "wdylt", Name: "http_requests_total", Help: "HTTP requests by route, method and status."},
			[]string{"route", "method", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{Namespace: "wdylt", Name: "http_request_duration_seconds", Help: "HTTP request latency by route.", Buckets: prometheus.DefBuckets},
			[]string{"route"},
		),
		RateLimitRejected: prometheus.NewCounter(
			prometheus.CounterOpts{Namespace: "wdylt", Name: "rate_limit_rejected_total", Help: "Requests rejected by the rate limiter."},
		),
		LinkChecks: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: "wdylt", Name: "link_checks_total", Help: "Checked bookmark links by status."},
			[]string{"status"},
		),
	}
	reg.MustRegister(m.Mutations, m.HTTPRequests, m.HTTPDuration, m.RateLimitRejected, m.LinkChecks)
	return m
}

// ObserveMutation records a library mutation; it matches library.Hook.
func (m *Metrics) ObserveMutation(op string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.Mutations.WithLabelValues(op, result).Inc()
}
