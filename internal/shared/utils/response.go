package utils

import (
	"time"

	"github.com/gin-gonic/gin"

	"derbydesk/internal/shared/biztime"
)

// ErrorResponse writes the flat JSON error envelope used everywhere a
// machine-readable failure body is needed.
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{
		"success":   false,
		"error":     message,
		"timestamp": biztime.NowUTC().Format(time.RFC3339),
	})
}
