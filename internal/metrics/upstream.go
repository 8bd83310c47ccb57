package metrics

import "github.com/prometheus/client_golang/prometheus"

// Upstream provider Prometheus metrics (LLM and search API calls).
var (
	UpstreamRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "claimlens",
			Name:      "upstream_requests_total",
			Help:      "Total number of upstream provider requests",
		},
		[]string{"provider", "operation", "status"},
	)

	UpstreamRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "claimlens",
			Name:      "upstream_request_duration_seconds",
			Help:      "Upstream provider request duration in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"provider", "operation"},
	)

	UpstreamTokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "claimlens",
			Name:      "upstream_tokens_total",
			Help:      "Total LLM tokens consumed",
		},
		[]string{"provider", "type"},
	)

	UpstreamErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "claimlens",
			Name:      "upstream_errors_total",
			Help:      "Total upstream provider errors",
		},
		[]string{"provider", "operation", "error_type"},
	)
)

var upstreamRegistered bool

// RegisterUpstreamMetrics registers upstream Prometheus metrics. Must be called once from main.
func RegisterUpstreamMetrics() {
	if upstreamRegistered {
		return
	}
	prometheus.MustRegister(UpstreamRequestsTotal)
	prometheus.MustRegister(UpstreamRequestDuration)
	prometheus.MustRegister(UpstreamTokensTotal)
	prometheus.MustRegister(UpstreamErrorsTotal)
	upstreamRegistered = true
}
