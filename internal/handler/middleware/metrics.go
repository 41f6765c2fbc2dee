package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/raksha360/backend/pkg/metrics"
)

// Metrics records request counts, latency and in-flight gauge for every
// handled request. Paths are labelled by route template, not raw URL, so
// parameterized routes do not explode cardinality.
func Metrics(collector *metrics.Collector) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		collector.InFlightGauge.Inc()

		c.Next()

		collector.InFlightGauge.Dec()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())

		collector.RequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		collector.RequestDuration.WithLabelValues(c.Request.Method, path, status).
			Observe(time.Since(start).Seconds())
	}
}
