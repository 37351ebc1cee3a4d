package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	jwtmw "task_backend/internal/platform/jwt"
)

// RequestLogger logs one line per request after it completes.
// The Authorization header and request bodies are never logged.
func RequestLogger(base *slog.Logger) gin.HandlerFunc {
	if base == nil {
		base = slog.Default()
	}
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		attrs := []any{
			"req_id", RequestIDFromContext(c.Request.Context()),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
			"remote_addr", c.ClientIP(),
		}
		if uid := c.GetString(jwtmw.ContextUserID); uid != "" {
			attrs = append(attrs, "user_id", uid)
		}

		switch {
		case status >= 500:
			base.Error("http_request", attrs...)
		case status >= 400:
			base.Warn("http_request", attrs...)
		default:
			base.Info("http_request", attrs...)
		}
	}
}
