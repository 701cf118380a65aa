package constants

const (
	// Environment constants
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// Default pagination
	DefaultPage     = 1
	DefaultPageSize = 25
	MaxPageSize     = 100

	// HTTP Headers
	HeaderContentType   = "Content-Type"
	HeaderAuthorization = "Authorization"
	HeaderXAPIToken     = "X-API-Token"
	HeaderXRequestID    = "X-Request-ID"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderUserAgent     = "User-Agent"

	// Content Types
	ContentTypeJSON = "application/json"
	ContentTypeForm = "application/x-www-form-urlencoded"

	// Context keys
	ContextKeyUserID    = "user_id"
	ContextKeyUserRole  = "user_role"
	ContextKeyIsStaff   = "is_staff"
	ContextKeySessionID = "session_id"
	ContextKeyAPIToken  = "api_token"
	ContextKeyRequestID = "request_id"

	// Database table names
	TableUsers             = "users"
	TableUserProfiles      = "user_profiles"
	TableCategories        = "categories"
	TableTickets           = "tickets"
	TableTicketComments    = "ticket_comments"
	TableTicketAttachments = "ticket_attachments"
	TableAPITokens         = "api_tokens"
	TableSecurityEvents    = "security_events"
	TableLoginAttempts     = "login_attempts"
	TableAuditLogs         = "audit_logs"
	TableUserSessions      = "user_sessions"

	// Login lockout policy
	MaxLoginAttempts    = 5
	LoginLockoutSeconds = 300

	// Category cache
	CategoryCacheTTLSeconds = 300

	// Error messages
	ErrMsgInternalServerError = "Internal server error occurred"
	ErrMsgResourceNotFound    = "Resource not found"
	ErrMsgUnauthorized        = "Unauthorized access"
	ErrMsgForbidden           = "Access forbidden"
	ErrMsgValidationFailed    = "Validation failed"
	ErrMsgConflict            = "Resource already exists"
)
