package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	domainagg "github.com/Roblokonha/StudyVault/internal/domain/aggregates"
	"github.com/Roblokonha/StudyVault/internal/platform/ctxutil"
	"github.com/Roblokonha/StudyVault/internal/platform/logger"
)

// RequestLogger writes one line per request keyed by route template. Document
// routes carry document_id, and failed requests carry the domain error code.
// Health checks and metric scrapes only log at debug.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	if log == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := routeTemplate(c)
		status := c.Writer.Status()
		ctx := c.Request.Context()
		fields := append([]interface{}{
			"method", c.Request.Method,
			"route", route,
			"status", status,
			"bytes", c.Writer.Size(),
			"duration_ms", time.Since(start).Milliseconds(),
		}, ctxutil.LogFields(ctx)...)
		if route == unmatchedRoute {
			fields = append(fields, "path", c.Request.URL.Path)
		}
		if td := ctxutil.GetTraceData(ctx); td != nil && td.DocumentID != "" {
			fields = append(fields, "document_id", td.DocumentID)
		}
		if last := c.Errors.Last(); last != nil {
			fields = append(fields, "error", last.Err.Error())
			if code := domainagg.CodeOf(last.Err); code != "" {
				fields = append(fields, "error_code", string(code))
			}
		}

		switch {
		case operational(route) && status < 500:
			log.Debug("studyvault request", fields...)
		case status >= 500:
			log.Error("studyvault request", fields...)
		case status >= 400:
			log.Warn("studyvault request", fields...)
		default:
			log.Info("studyvault request", fields...)
		}
	}
}
