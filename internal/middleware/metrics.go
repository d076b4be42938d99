package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/modern-research-group/course-validator/internal/service"
)

// Metrics records request duration and count per method, route and status.
// The route template is used where gin knows it, so /courses/:code stays one
// series regardless of the course requested.
func Metrics(metrics *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metrics == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			// Unmatched paths collapse into one label to keep cardinality
			// bounded.
			route = "unmatched"
		}
		metrics.ObserveHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
