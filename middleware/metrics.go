package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Kunxl-4568/VirtualKitchen/metrics"
)

// Metrics records request counts and latency per route template.
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}

		start := time.Now()
		m.RequestStarted()
		done := false
		defer func() {
			route := c.FullPath()
			if route == "" {
				route = "unmatched"
			}
			status := c.Writer.Status()
			if !done {
				// panicking; Recovery writes the 500 after this returns
				status = http.StatusInternalServerError
			}
			m.RequestFinished(c.Request.Method, route, strconv.Itoa(status), time.Since(start))
		}()
		c.Next()
		done = true
	}
}
