package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
)

// HTTPRecorder receives one observation per served request
type HTTPRecorder interface {
	ObserveHTTPRequest(method, route string, statusCode int, duration time.Duration)
	AddInFlight(delta float64)
}

// HTTPMetrics returns a Gin middleware that records request count, latency and
// concurrency. A nil recorder yields a no-op middleware.
func HTTPMetrics(recorder HTTPRecorder) gin.HandlerFunc {
	if recorder == nil {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		start := time.Now()
		recorder.AddInFlight(1)
		defer recorder.AddInFlight(-1)

		c.Next()

		recorder.ObserveHTTPRequest(c.Request.Method, getRoutePattern(c), c.Writer.Status(), time.Since(start))
	}
}

// getRoutePattern returns the matched route pattern (e.g., "/sync_records/:mp_order_number")
// instead of the actual path to keep label cardinality bounded
func getRoutePattern(c *gin.Context) string {
	route := c.FullPath()
	if route == "" {
		return "unknown"
	}
	return route
}
