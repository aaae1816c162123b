package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP request metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipe_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recipe_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// Upstream provider metrics
	upstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipe_upstream_requests_total",
			Help: "Total number of upstream recipe API calls by response status",
		},
		[]string{"status"},
	)

	upstreamRequestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recipe_upstream_request_duration_seconds",
			Help:    "Upstream recipe API latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	searchOutcomesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipe_search_outcomes_total",
			Help: "Relay search outcomes (ok, client_error, upstream_error)",
		},
		[]string{"outcome"},
	)
)

// Middleware records request count and latency per route.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := c.Request.Method
		httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(c.Writer.Status())).Inc()
		httpRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the Prometheus exposition format.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}

// ObserveUpstream records one upstream call. A zero status means the call
// failed before a response arrived.
func ObserveUpstream(status int, took time.Duration) {
	label := "error"
	if status != 0 {
		label = strconv.Itoa(status)
	}
	upstreamRequestsTotal.WithLabelValues(label).Inc()
	upstreamRequestDuration.Observe(took.Seconds())
}

// CountOutcome records the outcome of one relay search.
func CountOutcome(outcome string) {
	searchOutcomesTotal.WithLabelValues(outcome).Inc()
}
