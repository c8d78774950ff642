package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"schoolhub/api/internal/metrics"
)

func Metrics(m *metrics.HTTPMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.Observe(c.Request.Method, route, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}
