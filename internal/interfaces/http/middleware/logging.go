package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"medrecords/internal/shared/logger"
)

// Logger writes one structured line per request. The session cookie and
// request bodies are never logged.
func Logger(log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := []any{
			"method", c.Request.Method,
			"route", routeOf(c),
			"status", status,
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
			"bytes_out", c.Writer.Size(),
		}
		if rid := c.GetHeader("X-Request-ID"); rid != "" {
			fields = append(fields, "request_id", rid)
		}
		if uid := c.GetString(ContextKeyUserID); uid != "" {
			fields = append(fields, "user_id", uid)
		}
		if last := c.Errors.Last(); last != nil {
			fields = append(fields, "error", last.Error())
		}

		switch {
		case status >= 500:
			log.Errorw("request failed", fields...)
		case status >= 400:
			log.Warnw("request rejected", fields...)
		default:
			log.Debugw("request served", fields...)
		}
	}
}

// routeOf prefers the matched route pattern so file ids stay out of the
// path field.
func routeOf(c *gin.Context) string {
	if r := c.FullPath(); r != "" {
		return r
	}
	return c.Request.URL.Path
}
