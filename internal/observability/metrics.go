package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce       sync.Once
	httpRequestsTotal  *prometheus.CounterVec
	httpLatencySeconds *prometheus.HistogramVec
	auditWriteFailures prometheus.Counter
)

// RegisterMetrics initialises the Prometheus collectors used by the service.
func RegisterMetrics() {
	registerOnce.Do(func() {
		httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "custodia_http_requests_total",
			Help: "Total number of HTTP requests served.",
		}, []string{"method", "route", "status"})

		httpLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "custodia_http_latency_seconds",
			Help:    "Latency distribution for HTTP requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		auditWriteFailures = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "custodia_audit_write_failures_total",
			Help: "Total number of activity log entries that could not be persisted.",
		})

		prometheus.MustRegister(httpRequestsTotal, httpLatencySeconds, auditWriteFailures)
	})
}

// HTTPRequests exposes the request counter.
func HTTPRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return httpRequestsTotal
}

// HTTPLatency exposes the latency histogram.
func HTTPLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return httpLatencySeconds
}

// AuditWriteFailures counts swallowed activity log write errors. The audit
// trail is best effort, so besides the log this counter is the only place
// those failures are visible.
func AuditWriteFailures() prometheus.Counter {
	RegisterMetrics()
	return auditWriteFailures
}
