package web

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	userUsecases "derbydesk/internal/application/user/usecases"
	sharedConfig "derbydesk/internal/shared/config"
	"derbydesk/internal/shared/constants"
	"derbydesk/internal/shared/errors"
	"derbydesk/internal/shared/logger"
	"derbydesk/internal/shared/utils"
)

// AuthHandler serves the login and logout pages.
type AuthHandler struct {
	login        LoginExecutor
	logout       LogoutExecutor
	cookieConfig sharedConfig.CookieConfig
	logger       logger.Interface
}

func NewAuthHandler(
	login LoginExecutor,
	logout LogoutExecutor,
	cookieConfig sharedConfig.CookieConfig,
	logger logger.Interface,
) *AuthHandler {
	return &AuthHandler{
		login:        login,
		logout:       logout,
		cookieConfig: cookieConfig,
		logger:       logger,
	}
}

// ShowLogin renders the login form. Signed-in users go straight to the
// ticket list.
func (h *AuthHandler) ShowLogin(c *gin.Context) {
	if currentUserID(c) != 0 {
		c.Redirect(http.StatusFound, "/tickets/")
		return
	}

	c.HTML(http.StatusOK, "login.html", gin.H{
		"Title": "Sign in",
		"Next":  c.Query("next"),
		"Flash": takeFlash(c),
	})
}

// Login handles the posted credentials.
func (h *AuthHandler) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")
	next := c.PostForm("next")

	result, err := h.login.Execute(c.Request.Context(), userUsecases.LoginCommand{
		Username:  username,
		Password:  password,
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	})
	if err != nil {
		c.HTML(http.StatusUnauthorized, "login.html", gin.H{
			"Title":    "Sign in",
			"Next":     next,
			"Username": username,
			"Error":    loginErrorMessage(err),
		})
		return
	}

	maxAge := int(time.Until(result.ExpiresAt).Seconds())
	utils.SetAccessTokenCookie(c, h.cookieConfig, result.Token, maxAge)

	c.Redirect(http.StatusFound, safeNext(next))
}

// Logout revokes the session and clears the cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	sessionID := c.GetString(constants.ContextKeySessionID)
	if sessionID != "" {
		err := h.logout.Execute(c.Request.Context(), userUsecases.LogoutCommand{
			SessionID: sessionID,
			UserID:    currentUserID(c),
			IPAddress: c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
		})
		if err != nil {
			h.logger.Warnw("logout failed", "session_id", sessionID, "error", err)
		}
	}

	utils.ClearAccessTokenCookie(c, h.cookieConfig)
	redirectWithFlash(c, "/login/", "You have been signed out.")
}

// loginErrorMessage surfaces the use case's message without the error
// type prefix.
func loginErrorMessage(err error) string {
	if appErr := errors.GetAppError(err); appErr != nil {
		return appErr.Message
	}
	return "Sign in failed. Please try again."
}
