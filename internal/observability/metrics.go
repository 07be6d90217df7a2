package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "blogicum_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// AuthAttempts counts login/registration attempts by kind and outcome.
	AuthAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "blogicum_auth_attempts_total",
		Help: "Total authentication attempts by kind and outcome",
	}, []string{"kind", "outcome"})

	// PageRenders counts rendered listing and detail pages by view name.
	PageRenders = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "blogicum_page_renders_total",
		Help: "Total rendered pages by view",
	}, []string{"view"})

	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "blogicum_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})
)

// TrackQuery returns a function that records query latency when called
// (e.g. via defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}

// RecordAuthAttempt increments the auth attempt counter.
func RecordAuthAttempt(kind string, success bool) {
	outcome := "failure"
	if success {
		outcome = "success"
	}
	AuthAttempts.WithLabelValues(kind, outcome).Inc()
}
