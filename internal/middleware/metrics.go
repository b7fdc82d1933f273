package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nextstopchina/forms-api/internal/service"
)

// Metrics records duration and count for every handled request, labelled by
// the registered route template so path parameters don't explode cardinality.
// Unmatched routes fall back to the raw URL path. A nil service disables
// collection.
func Metrics(metrics *service.MetricsService) gin.HandlerFunc {
	if metrics == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		metrics.ObserveHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
