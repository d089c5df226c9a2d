// Package metrics holds the Prometheus collectors for the meal finder and the
// gin middleware that records HTTP traffic.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcomes recorded for upstream API calls
const (
	OutcomeOK        = "ok"
	OutcomeStatus    = "status"
	OutcomeTransport = "transport"
	OutcomeParse     = "parse"
)

// Results recorded for searches
const (
	SearchHits    = "hits"
	SearchEmpty   = "empty"
	SearchInvalid = "invalid"
	SearchError   = "error"
	SearchPending = "pending"
)

var (
	// Upstream recipe API metrics
	UpstreamRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mealfinder_upstream_requests_total",
			Help: "Total number of requests sent to the recipe API",
		},
		[]string{"endpoint", "outcome"},
	)

	UpstreamDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mealfinder_upstream_request_duration_seconds",
			Help:    "Recipe API request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	// Searches counts search submissions by result
	Searches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mealfinder_searches_total",
			Help: "Total number of searches by result",
		},
		[]string{"result"},
	)

	// HTTP request metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mealfinder_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mealfinder_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)

// Middleware records request count and latency per route template
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		httpRequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}
