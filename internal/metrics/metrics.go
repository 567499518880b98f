package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "content",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "path", "status"},
	)

	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "content",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "content",
			Name:      "search_requests_total",
			Help:      "Search and suggestion requests by outcome",
		},
		[]string{"kind", "outcome"}, // kind: search|suggest, outcome: ok|invalid|error
	)

	SearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "content",
			Name:      "search_duration_seconds",
			Help:      "Time spent ranking a search or suggestion request",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"kind"},
	)

	SuggestCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "content",
			Name:      "suggest_cache_total",
			Help:      "Suggestion cache lookups",
		},
		[]string{"result"}, // hit|miss|error
	)
)

func init() {
	prometheus.MustRegister(httpRequestDuration, httpRequestsTotal)
	prometheus.MustRegister(SearchRequestsTotal, SearchDuration, SuggestCacheTotal)
}

// Middleware records request duration and count, labelled by route pattern
// so path parameters do not explode cardinality.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := normalizePath(c.FullPath())
		status := strconv.Itoa(c.Writer.Status())
		httpRequestDuration.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
		httpRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
	}
}

// normalizePath keeps unmatched routes under one label.
func normalizePath(path string) string {
	if path == "" {
		return "unknown"
	}
	return path
}

// ObserveSearch records one search or suggestion outcome.
func ObserveSearch(kind, outcome string, d time.Duration) {
	SearchRequestsTotal.WithLabelValues(kind, outcome).Inc()
	SearchDuration.WithLabelValues(kind).Observe(d.Seconds())
}
