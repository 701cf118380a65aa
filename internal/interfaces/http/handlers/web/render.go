package web

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"derbydesk/internal/shared/authorization"
	"derbydesk/internal/shared/constants"
)

const flashCookie = "flash"

// setFlash stores a one-shot message for the next page render.
func setFlash(c *gin.Context, message string) {
	c.SetCookie(flashCookie, url.QueryEscape(message), 60, "/", "", false, true)
}

// takeFlash returns the pending flash message, clearing it.
func takeFlash(c *gin.Context) string {
	raw, err := c.Cookie(flashCookie)
	if err != nil || raw == "" {
		return ""
	}
	c.SetCookie(flashCookie, "", -1, "/", "", false, true)
	message, err := url.QueryUnescape(raw)
	if err != nil {
		return ""
	}
	return message
}

// pageData builds the template context every page shares: the signed-in
// identity plus any pending flash message.
func pageData(c *gin.Context, title string, extra gin.H) gin.H {
	role := c.GetString(constants.ContextKeyUserRole)
	data := gin.H{
		"Title":   title,
		"UserID":  currentUserID(c),
		"Role":    role,
		"IsStaff": c.GetBool(constants.ContextKeyIsStaff),
		"IsAdmin": role == string(authorization.RoleAdmin),
		"Flash":   takeFlash(c),
	}
	for k, v := range extra {
		data[k] = v
	}
	return data
}

func currentUserID(c *gin.Context) uint {
	if v, exists := c.Get(constants.ContextKeyUserID); exists {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

func currentRole(c *gin.Context) authorization.UserRole {
	return authorization.UserRole(c.GetString(constants.ContextKeyUserRole))
}

func currentStaff(c *gin.Context) bool {
	return c.GetBool(constants.ContextKeyIsStaff)
}

// safeNext accepts only site-local redirect targets.
func safeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return "/tickets/"
	}
	return next
}

// renderError shows the shared error page.
func renderError(c *gin.Context, status int, message string) {
	c.HTML(status, "error.html", gin.H{
		"Title":   "Error",
		"Status":  status,
		"Message": message,
	})
}

// redirectWithFlash sets a flash message and redirects.
func redirectWithFlash(c *gin.Context, location, message string) {
	setFlash(c, message)
	c.Redirect(http.StatusFound, location)
}
