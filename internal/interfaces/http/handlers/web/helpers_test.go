package web

import (
	"html/template"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"derbydesk/internal/domain/user"
	"derbydesk/internal/shared/authorization"
	"derbydesk/internal/shared/constants"
	"derbydesk/internal/shared/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// Stub templates: each page renders its name plus the data fields the
// tests assert on.
var testTemplates = template.Must(template.New("t").Parse(`
{{define "login.html"}}login {{.Error}}{{end}}
{{define "error.html"}}error {{.Status}} {{.Message}}{{end}}
{{define "ticket_list.html"}}ticket_list page={{.Page}} of {{.TotalPages}}{{range .Tickets}} [{{.Number}} {{.Creator}}]{{end}}{{end}}
{{define "ticket_form.html"}}ticket_form {{.Error}}{{end}}
{{define "account_password.html"}}account_password {{.Error}}{{end}}
{{define "ticket_detail.html"}}ticket_detail {{.Ticket.Number}} {{.DescriptionHTML}}{{range .Comments}} <c>{{.BodyHTML}}</c>{{end}}{{end}}
{{define "admin_dashboard.html"}}admin_dashboard{{end}}
{{define "admin_users.html"}}admin_users{{end}}
{{define "admin_user_form.html"}}admin_user_form {{.Error}}{{end}}
{{define "admin_tokens.html"}}admin_tokens{{range .Tokens}} [{{.Name}} {{.Owner}}]{{end}}{{end}}
{{define "admin_token_created.html"}}token_created {{.PlainToken}}{{end}}
{{define "admin_categories.html"}}admin_categories{{end}}
{{define "admin_security.html"}}admin_security{{end}}
{{define "admin_audit.html"}}admin_audit{{end}}
`))

func newFormContext(method, path string, form url.Values) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, r := gin.CreateTestContext(w)
	r.SetHTMLTemplate(testTemplates)

	var req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", constants.ContentTypeForm)
	c.Request = req
	return c, w
}

func newGetContext(path string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, r := gin.CreateTestContext(w)
	r.SetHTMLTemplate(testTemplates)

	c.Request = httptest.NewRequest("GET", path, nil)
	return c, w
}

func signIn(c *gin.Context, userID uint, role authorization.UserRole, isStaff bool) {
	c.Set(constants.ContextKeyUserID, userID)
	c.Set(constants.ContextKeySessionID, "test-session-id")
	c.Set(constants.ContextKeyUserRole, string(role))
	c.Set(constants.ContextKeyIsStaff, isStaff)
}

func webTestUser(t *testing.T, id uint, username string, role authorization.UserRole) *user.User {
	t.Helper()
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	u, err := user.ReconstructUser(
		id, username, username+"@example.com", username,
		"$2a$12$hash", role, role == authorization.RoleAdmin, true,
		nil, user.Profile{}, now, now,
	)
	require.NoError(t, err)
	return u
}

func testLogger() logger.Interface {
	return logger.NewLogger()
}
