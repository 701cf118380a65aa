package audit

import (
	"context"
	"time"
)

// Action names recorded in the audit log.
const (
	ActionTicketCreated  = "ticket.created"
	ActionTicketViewed   = "ticket.viewed"
	ActionTicketUpdated  = "ticket.updated"
	ActionTicketAssigned = "ticket.assigned"
	ActionTicketStatus   = "ticket.status_changed"
	ActionTicketDeleted  = "ticket.deleted"
	ActionCommentAdded   = "ticket.comment_added"
	ActionUserCreated    = "user.created"
	ActionUserUpdated    = "user.updated"
	ActionUserDeleted    = "user.deleted"
	ActionTokenIssued    = "token.issued"
	ActionTokenRevoked   = "token.revoked"
	ActionCategorySaved  = "category.saved"
)

// Security event types.
const (
	EventLoginSuccess    = "login.success"
	EventLoginFailure    = "login.failure"
	EventLoginLockout    = "login.lockout"
	EventLogout          = "logout"
	EventTokenAuthFailed = "token.auth_failed"
)

// Entry is a single audit log record. Detail is marshalled to JSON at
// the persistence boundary.
type Entry struct {
	ID         uint
	ActorID    *uint
	Action     string
	EntityType string
	EntityID   uint
	Detail     map[string]any
	IPAddress  string
	CreatedAt  time.Time
}

// SecurityEvent is an auth-significant occurrence shown in the admin console.
type SecurityEvent struct {
	ID        uint
	UserID    *uint
	EventType string
	Detail    map[string]any
	IPAddress string
	UserAgent string
	CreatedAt time.Time
}

// LoginAttempt records one login attempt, successful or not.
type LoginAttempt struct {
	ID        uint
	Username  string
	Success   bool
	IPAddress string
	UserAgent string
	CreatedAt time.Time
}

type Filter struct {
	Action     string
	EntityType string
	ActorID    *uint
	Page       int
	PageSize   int
}

type Repository interface {
	SaveEntry(ctx context.Context, entry *Entry) error
	ListEntries(ctx context.Context, filter Filter) ([]*Entry, int64, error)

	SaveSecurityEvent(ctx context.Context, event *SecurityEvent) error
	ListSecurityEvents(ctx context.Context, page, pageSize int) ([]*SecurityEvent, int64, error)

	SaveLoginAttempt(ctx context.Context, attempt *LoginAttempt) error
	ListLoginAttempts(ctx context.Context, username string, page, pageSize int) ([]*LoginAttempt, int64, error)
}
