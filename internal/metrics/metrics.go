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
	// RequestCounter counts HTTP requests by status code, method, and path
	RequestCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mfctf_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"status", "method", "path"},
	)

	// RequestDuration measures HTTP request duration
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mfctf_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"status", "method", "path"},
	)

	// FlagSubmissions counts flag submissions by outcome
	FlagSubmissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mfctf_flag_submissions_total",
			Help: "Total number of flag submissions by outcome",
		},
		[]string{"outcome"},
	)

	// SolveFeedSubscribers tracks connected live-feed websocket clients
	SolveFeedSubscribers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "mfctf_solve_feed_subscribers",
			Help: "Number of connected solve feed websocket clients",
		},
	)
)

// Middleware records request counts and latencies for every route.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		RequestCounter.WithLabelValues(status, c.Request.Method, path).Inc()
		RequestDuration.WithLabelValues(status, c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// Handler exposes the Prometheus scrape endpoint.
func Handler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
