package usecases

import (
	"context"
	"time"

	"derbydesk/internal/shared/authorization"
)

// PasswordHasher hashes and verifies login passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) error
}

// TokenIssuer mints signed session tokens for the browser cookie.
type TokenIssuer interface {
	Generate(userID uint, sessionID string, role authorization.UserRole, isStaff bool) (string, time.Time, error)
}

// LockoutStore throttles repeated failed logins per username.
type LockoutStore interface {
	IsLocked(ctx context.Context, username string) (bool, error)
	RecordFailure(ctx context.Context, username string) error
	Clear(ctx context.Context, username string) error
}

// SecurityRecorder captures the security trail around authentication.
type SecurityRecorder interface {
	Record(ctx context.Context, actorID *uint, action, entityType string, entityID uint, detail map[string]any, ipAddress string)
	RecordSecurityEvent(ctx context.Context, userID *uint, eventType string, detail map[string]any, ipAddress, userAgent string)
	RecordLoginAttempt(ctx context.Context, username string, success bool, ipAddress, userAgent string)
}
