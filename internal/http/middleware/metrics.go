package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Roblokonha/StudyVault/internal/observability"
)

// Metrics records API traffic by route template. Unregistered paths share the
// "unmatched" label, and health checks and metric scrapes are not counted.
func Metrics(m *observability.Metrics) gin.HandlerFunc {
	if m == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		if operational(c.FullPath()) {
			c.Next()
			return
		}
		start := time.Now()
		m.ApiInflightInc()
		defer m.ApiInflightDec()

		c.Next()

		m.ObserveAPI(c.Request.Method, routeTemplate(c), strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}
