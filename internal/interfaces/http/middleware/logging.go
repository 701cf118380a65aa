package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"derbydesk/internal/shared/constants"
	"derbydesk/internal/shared/logger"
)

// RequestLogger emits one structured log line per request after the handler
// chain finishes, at a level chosen from the response status.
func RequestLogger(log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"query", c.Request.URL.RawQuery,
			"status", status,
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
			"user_agent", c.Request.UserAgent(),
			"body_size", c.Writer.Size(),
		}
		if requestID := c.GetHeader(constants.HeaderXRequestID); requestID != "" {
			fields = append(fields, "request_id", requestID)
		}
		if userID, ok := c.Get(constants.ContextKeyUserID); ok {
			fields = append(fields, "user_id", userID)
		}

		switch {
		case status >= 500:
			log.Errorw("HTTP request completed with server error", fields...)
		case status >= 400:
			log.Warnw("HTTP request completed with client error", fields...)
		case status >= 300:
			log.Debugw("HTTP request completed with redirect", fields...)
		default:
			log.Debugw("HTTP request completed successfully", fields...)
		}
	}
}
