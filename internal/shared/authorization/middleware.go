package authorization

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"derbydesk/internal/shared/constants"
)

func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole := c.GetString(constants.ContextKeyUserRole)
		if userRole != string(RoleAdmin) {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "admin access required",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireStaff allows admins and staff accounts through.
func RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(constants.ContextKeyUserRole) == string(RoleAdmin) || c.GetBool(constants.ContextKeyIsStaff) {
			c.Next()
			return
		}
		c.JSON(http.StatusForbidden, gin.H{
			"error": "staff access required",
		})
		c.Abort()
	}
}
