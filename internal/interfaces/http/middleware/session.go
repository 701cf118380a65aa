package middleware

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"derbydesk/internal/domain/user"
	"derbydesk/internal/infrastructure/auth"
	"derbydesk/internal/shared/constants"
	"derbydesk/internal/shared/logger"
	"derbydesk/internal/shared/utils"
)

// SessionMiddleware authenticates browser requests via the session cookie.
// The JWT carries the identity; the session row is the revocation source of
// truth, so both must check out.
type SessionMiddleware struct {
	jwtService  *auth.JWTService
	sessionRepo user.SessionRepository
	logger      logger.Interface
}

func NewSessionMiddleware(jwtService *auth.JWTService, sessionRepo user.SessionRepository, logger logger.Interface) *SessionMiddleware {
	return &SessionMiddleware{
		jwtService:  jwtService,
		sessionRepo: sessionRepo,
		logger:      logger,
	}
}

// RequireSession redirects unauthenticated browsers to the login page,
// preserving the requested path in the next parameter.
func (m *SessionMiddleware) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := m.verify(c)
		if claims == nil {
			m.redirectToLogin(c)
			return
		}

		c.Set(constants.ContextKeyUserID, claims.UserID)
		c.Set(constants.ContextKeySessionID, claims.SessionID)
		c.Set(constants.ContextKeyUserRole, string(claims.Role))
		c.Set(constants.ContextKeyIsStaff, claims.IsStaff)

		c.Next()
	}
}

// OptionalSession populates the identity context when a valid session cookie
// is present, and lets the request through either way.
func (m *SessionMiddleware) OptionalSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims := m.verify(c); claims != nil {
			c.Set(constants.ContextKeyUserID, claims.UserID)
			c.Set(constants.ContextKeySessionID, claims.SessionID)
			c.Set(constants.ContextKeyUserRole, string(claims.Role))
			c.Set(constants.ContextKeyIsStaff, claims.IsStaff)
		}
		c.Next()
	}
}

func (m *SessionMiddleware) verify(c *gin.Context) *auth.Claims {
	token := utils.GetTokenFromCookie(c, utils.AccessTokenCookie)
	if token == "" {
		return nil
	}

	claims, err := m.jwtService.Verify(token)
	if err != nil {
		m.logger.Debugw("session token rejected", "error", err)
		return nil
	}

	session, err := m.sessionRepo.GetByID(c.Request.Context(), claims.SessionID)
	if err != nil {
		m.logger.Debugw("session lookup failed", "session_id", claims.SessionID, "error", err)
		return nil
	}
	if session.UserID != claims.UserID || !session.IsValid() {
		return nil
	}

	session.UpdateActivity()
	if err := m.sessionRepo.Update(c.Request.Context(), session); err != nil {
		m.logger.Warnw("failed to record session activity", "session_id", session.ID, "error", err)
	}

	return claims
}

func (m *SessionMiddleware) redirectToLogin(c *gin.Context) {
	next := url.QueryEscape(c.Request.URL.RequestURI())
	c.Redirect(http.StatusFound, "/login/?next="+next)
	c.Abort()
}
