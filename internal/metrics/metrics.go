// Package metrics defines Prometheus metrics for the exploration service.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "explorer_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "explorer_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	ErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "explorer_errors_total",
			Help: "Total errors by type",
		},
		[]string{"type"},
	)

	QueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "explorer_queries_total",
			Help: "Exploration and pathfinding calls by outcome",
		},
		[]string{"kind", "outcome"},
	)

	RateLimitRejections = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "explorer_rate_limit_rejections_total",
			Help: "Calls rejected by the per-caller hourly budget",
		},
		[]string{"tier", "kind"},
	)

	NodesTraversed = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "explorer_nodes_traversed",
			Help:    "Nodes traversed per admitted query",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		},
	)
)

func init() {
	prometheus.MustRegister(
		RequestDuration, RequestsTotal, ErrorsTotal,
		QueriesTotal, RateLimitRejections, NodesTraversed,
	)
}
