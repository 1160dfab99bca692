package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/course-compass/course-compass-api/internal/service"
)

// Metrics records method, route and latency for every request. The route
// template (/api/v1/courses/:identifier) is used rather than the raw path
// so course codes do not explode label cardinality. The scrape endpoint
// itself is excluded.
func Metrics(metricsSvc *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metricsSvc == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		if path == "/metrics" {
			return
		}
		metricsSvc.ObserveHTTPRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
