package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/mes-workflow-api/internal/service"
)

// Metrics records per-request latency and status counts. Probe and scrape
// endpoints are skipped, and unmatched paths collapse into a single label
// so 404 scans cannot blow up series cardinality.
func Metrics(metricsSvc *service.MetricsService) gin.HandlerFunc {
	skip := map[string]struct{}{
		"/health":  {},
		"/metrics": {},
	}
	return func(c *gin.Context) {
		if metricsSvc == nil {
			c.Next()
			return
		}
		if _, ok := skip[c.Request.URL.Path]; ok {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metricsSvc.ObserveHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
