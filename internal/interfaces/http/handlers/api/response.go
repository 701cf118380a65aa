package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"derbydesk/internal/shared/biztime"
)

// The read API speaks a flat envelope: every response carries success and
// an RFC3339 UTC timestamp at the top level.

func respond(c *gin.Context, status int, payload gin.H) {
	body := gin.H{
		"success":   true,
		"timestamp": biztime.NowUTC().Format(time.RFC3339),
	}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(status, body)
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"success":   false,
		"error":     message,
		"timestamp": biztime.NowUTC().Format(time.RFC3339),
	})
}
