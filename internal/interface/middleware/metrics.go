package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-link-saver/internal/metrics"
)

// Metrics counts every request by method, matched route and status code.
// Unmatched paths are counted under route="unmatched".
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.ObserveHTTPRequest(c.Request.Method, route, c.Writer.Status())
	}
}
