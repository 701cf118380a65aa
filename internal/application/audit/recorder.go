package audit

import (
	"context"

	"derbydesk/internal/domain/audit"
	"derbydesk/internal/shared/biztime"
	"derbydesk/internal/shared/logger"
)

// Recorder persists audit records as a side effect of use case
// execution. Failures are logged and never fail the caller.
type Recorder struct {
	repo   audit.Repository
	logger logger.Interface
}

func NewRecorder(repo audit.Repository, logger logger.Interface) *Recorder {
	return &Recorder{
		repo:   repo,
		logger: logger.Named("audit"),
	}
}

func (r *Recorder) Record(ctx context.Context, actorID *uint, action, entityType string, entityID uint, detail map[string]any, ipAddress string) {
	entry := &audit.Entry{
		ActorID:    actorID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Detail:     detail,
		IPAddress:  ipAddress,
		CreatedAt:  biztime.NowUTC(),
	}
	if err := r.repo.SaveEntry(ctx, entry); err != nil {
		r.logger.Errorw("failed to record audit entry", "action", action, "entity_type", entityType, "error", err)
	}
}

func (r *Recorder) RecordSecurityEvent(ctx context.Context, userID *uint, eventType string, detail map[string]any, ipAddress, userAgent string) {
	event := &audit.SecurityEvent{
		UserID:    userID,
		EventType: eventType,
		Detail:    detail,
		IPAddress: ipAddress,
		UserAgent: userAgent,
		CreatedAt: biztime.NowUTC(),
	}
	if err := r.repo.SaveSecurityEvent(ctx, event); err != nil {
		r.logger.Errorw("failed to record security event", "event_type", eventType, "error", err)
	}
}

func (r *Recorder) RecordLoginAttempt(ctx context.Context, username string, success bool, ipAddress, userAgent string) {
	attempt := &audit.LoginAttempt{
		Username:  username,
		Success:   success,
		IPAddress: ipAddress,
		UserAgent: userAgent,
		CreatedAt: biztime.NowUTC(),
	}
	if err := r.repo.SaveLoginAttempt(ctx, attempt); err != nil {
		r.logger.Errorw("failed to record login attempt", "username", username, "error", err)
	}
}
