package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search Prometheus metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "careerdex",
			Name:      "search_requests_total",
			Help:      "Total number of search requests",
		},
		[]string{"domain", "strategy", "status"},
	)

	SearchRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "careerdex",
			Name:      "search_request_duration_seconds",
			Help:      "Search request duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"domain", "strategy"},
	)

	SearchDegradedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "careerdex",
			Name:      "search_degraded_total",
			Help:      "Searches answered by a fallback strategy instead of the vector index",
		},
		[]string{"domain", "reason"},
	)

	IndexDocuments = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "careerdex",
			Name:      "index_documents",
			Help:      "Number of documents in each loaded index",
		},
		[]string{"domain"},
	)

	IndexBuildsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "careerdex",
			Name:      "index_builds_total",
			Help:      "Total number of index builds",
		},
		[]string{"domain", "status"},
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers Prometheus search metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchRequestsTotal)
	prometheus.MustRegister(SearchRequestDuration)
	prometheus.MustRegister(SearchDegradedTotal)
	prometheus.MustRegister(IndexDocuments)
	prometheus.MustRegister(IndexBuildsTotal)
	searchMetricsRegistered = true
}
