package web

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	userUsecases "derbydesk/internal/application/user/usecases"
	"derbydesk/internal/shared/authorization"
	"derbydesk/internal/shared/errors"
)

type mockChangePasswordUC struct {
	cmd    userUsecases.ChangePasswordCommand
	called bool
	err    error
}

func (m *mockChangePasswordUC) Execute(_ context.Context, cmd userUsecases.ChangePasswordCommand) error {
	m.called = true
	m.cmd = cmd
	return m.err
}

func TestAccountHandler_ChangePassword_Success(t *testing.T) {
	uc := &mockChangePasswordUC{}
	handler := NewAccountHandler(uc, testLogger())

	form := url.Values{}
	form.Set("current_password", "old-secret")
	form.Set("new_password", "new-secret")
	form.Set("confirm_password", "new-secret")
	c, w := newFormContext(http.MethodPost, "/account/password/", form)
	signIn(c, 7, authorization.RoleUser, false)

	handler.ChangePassword(c)
	c.Writer.WriteHeaderNow()

	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/tickets/", w.Header().Get("Location"))
	assert.Equal(t, uint(7), uc.cmd.UserID)
	assert.Equal(t, "old-secret", uc.cmd.CurrentPassword)
	assert.Equal(t, "new-secret", uc.cmd.NewPassword)
}

func TestAccountHandler_ChangePassword_MismatchSkipsUseCase(t *testing.T) {
	uc := &mockChangePasswordUC{}
	handler := NewAccountHandler(uc, testLogger())

	form := url.Values{}
	form.Set("current_password", "old-secret")
	form.Set("new_password", "new-secret")
	form.Set("confirm_password", "different")
	c, w := newFormContext(http.MethodPost, "/account/password/", form)
	signIn(c, 7, authorization.RoleUser, false)

	handler.ChangePassword(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "New passwords do not match.")
	assert.False(t, uc.called)
}

func TestAccountHandler_ChangePassword_WrongCurrentPassword(t *testing.T) {
	uc := &mockChangePasswordUC{err: errors.NewUnauthorizedError("current password is incorrect")}
	handler := NewAccountHandler(uc, testLogger())

	form := url.Values{}
	form.Set("current_password", "wrong")
	form.Set("new_password", "new-secret")
	form.Set("confirm_password", "new-secret")
	c, w := newFormContext(http.MethodPost, "/account/password/", form)
	signIn(c, 7, authorization.RoleUser, false)

	handler.ChangePassword(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "current password is incorrect")
}
