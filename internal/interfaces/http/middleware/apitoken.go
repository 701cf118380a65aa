package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	apitokenUsecases "derbydesk/internal/application/apitoken/usecases"
	"derbydesk/internal/shared/biztime"
	"derbydesk/internal/shared/constants"
	"derbydesk/internal/shared/logger"
)

// TokenValidator checks a plaintext API token and resolves its owner.
type TokenValidator interface {
	Execute(ctx context.Context, query apitokenUsecases.ValidateTokenQuery) (*apitokenUsecases.ValidateTokenResult, error)
}

// APITokenMiddleware authenticates read-API requests with an opaque token.
type APITokenMiddleware struct {
	validateToken TokenValidator
	logger        logger.Interface
}

func NewAPITokenMiddleware(validateToken TokenValidator, logger logger.Interface) *APITokenMiddleware {
	return &APITokenMiddleware{
		validateToken: validateToken,
		logger:        logger,
	}
}

// RequireToken extracts the token from the Authorization header, the
// X-API-Token header, or the token query parameter, in that order.
func (m *APITokenMiddleware) RequireToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		plain := ExtractAPIToken(c)
		if plain == "" {
			tokenAuthError(c, "missing API token")
			return
		}

		result, err := m.validateToken.Execute(c.Request.Context(), apitokenUsecases.ValidateTokenQuery{
			PlainToken: plain,
			IPAddress:  c.ClientIP(),
			UserAgent:  c.Request.UserAgent(),
		})
		if err != nil {
			tokenAuthError(c, "invalid or expired API token")
			return
		}

		c.Set(constants.ContextKeyUserID, result.Owner.ID())
		c.Set(constants.ContextKeyUserRole, string(result.Owner.Role()))
		c.Set(constants.ContextKeyIsStaff, result.Owner.IsStaff())
		c.Set(constants.ContextKeyAPIToken, result.Token.ID())

		c.Next()
	}
}

// ExtractAPIToken pulls the plaintext token from the request without
// validating it.
func ExtractAPIToken(c *gin.Context) string {
	if header := c.GetHeader(constants.HeaderAuthorization); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
	}

	if header := c.GetHeader(constants.HeaderXAPIToken); header != "" {
		return strings.TrimSpace(header)
	}

	return strings.TrimSpace(c.Query("token"))
}

// tokenAuthError writes the flat API error envelope and aborts.
func tokenAuthError(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, gin.H{
		"success":   false,
		"error":     message,
		"timestamp": biztime.NowUTC().Format(time.RFC3339),
	})
	c.Abort()
}
