package middleware

import (
	"strconv"
	"time"

	"shop-service/internal/metrics"

	"github.com/gin-gonic/gin"
)

// Metrics records per-route request counts and latency.
func Metrics(m *metrics.ServerMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		handler := c.FullPath()
		if handler == "" {
			handler = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		m.Requests.WithLabelValues(handler, status).Inc()
		m.LatencyMS.WithLabelValues(handler).Observe(float64(time.Since(start).Milliseconds()))
	}
}
