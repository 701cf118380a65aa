package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CORS handles cross-origin requests against an allowlist of origins.
// Requests from origins not on the list get an empty Allow-Origin header,
// which browsers treat as a rejection.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", matchOrigin(c.Request.Header.Get("Origin"), allowedOrigins))
		c.Header("Access-Control-Allow-Credentials", "true")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, Accept, Origin, Cache-Control, X-Requested-With, X-Request-ID, X-API-Token")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, PATCH, OPTIONS")
		c.Header("Access-Control-Expose-Headers", "Content-Length, X-Request-ID")
		c.Header("Access-Control-Max-Age", "86400")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func matchOrigin(origin string, allowed []string) string {
	for _, a := range allowed {
		if origin == a {
			return origin
		}
	}
	return ""
}

// SecurityHeaders returns a middleware that sets security headers. The CSP
// comes from configuration; an empty value falls back to same-origin only.
func SecurityHeaders(contentSecurityPolicy string) gin.HandlerFunc {
	if contentSecurityPolicy == "" {
		contentSecurityPolicy = "default-src 'self'"
	}

	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-XSS-Protection", "1; mode=block")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Header("Content-Security-Policy", contentSecurityPolicy)

		c.Next()
	}
}
