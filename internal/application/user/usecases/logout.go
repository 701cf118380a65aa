package usecases

import (
	"context"

	"derbydesk/internal/domain/audit"
	"derbydesk/internal/domain/user"
	"derbydesk/internal/shared/logger"
)

type LogoutCommand struct {
	SessionID string
	UserID    uint
	IPAddress string
	UserAgent string
}

type LogoutUseCase struct {
	sessionRepo user.SessionRepository
	security    SecurityRecorder
	logger      logger.Interface
}

func NewLogoutUseCase(sessionRepo user.SessionRepository, security SecurityRecorder, logger logger.Interface) *LogoutUseCase {
	return &LogoutUseCase{
		sessionRepo: sessionRepo,
		security:    security,
		logger:      logger,
	}
}

func (uc *LogoutUseCase) Execute(ctx context.Context, cmd LogoutCommand) error {
	if err := uc.sessionRepo.Delete(ctx, cmd.SessionID); err != nil {
		uc.logger.Errorw("failed to delete session", "session_id", cmd.SessionID, "error", err)
		return err
	}

	userID := cmd.UserID
	uc.security.RecordSecurityEvent(ctx, &userID, audit.EventLogout, nil, cmd.IPAddress, cmd.UserAgent)

	uc.logger.Infow("user logged out", "user_id", cmd.UserID)
	return nil
}
