package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	userUsecases "derbydesk/internal/application/user/usecases"
	"derbydesk/internal/shared/errors"
	"derbydesk/internal/shared/logger"
)

// AccountHandler serves the signed-in user's own account pages.
type AccountHandler struct {
	changePassword ChangePasswordExecutor
	logger         logger.Interface
}

func NewAccountHandler(changePassword ChangePasswordExecutor, logger logger.Interface) *AccountHandler {
	return &AccountHandler{
		changePassword: changePassword,
		logger:         logger,
	}
}

// ShowChangePassword renders the password change form.
func (h *AccountHandler) ShowChangePassword(c *gin.Context) {
	c.HTML(http.StatusOK, "account_password.html", pageData(c, "Change password", nil))
}

// ChangePassword verifies the current password and stores the new one.
func (h *AccountHandler) ChangePassword(c *gin.Context) {
	newPassword := c.PostForm("new_password")
	if newPassword != c.PostForm("confirm_password") {
		c.HTML(http.StatusBadRequest, "account_password.html", pageData(c, "Change password", gin.H{
			"Error": "New passwords do not match.",
		}))
		return
	}

	err := h.changePassword.Execute(c.Request.Context(), userUsecases.ChangePasswordCommand{
		UserID:          currentUserID(c),
		CurrentPassword: c.PostForm("current_password"),
		NewPassword:     newPassword,
	})
	if err != nil {
		message := "Password change failed. Please try again."
		if appErr := errors.GetAppError(err); appErr != nil {
			message = appErr.Message
		}
		c.HTML(http.StatusBadRequest, "account_password.html", pageData(c, "Change password", gin.H{
			"Error": message,
		}))
		return
	}

	redirectWithFlash(c, "/tickets/", "Password updated.")
}
