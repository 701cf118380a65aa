package usecases

import (
	"context"

	"derbydesk/internal/domain/audit"
	"derbydesk/internal/domain/user"
	"derbydesk/internal/shared/errors"
	"derbydesk/internal/shared/logger"
)

type DeleteUserCommand struct {
	UserID uint

	ActorID   uint
	IPAddress string
}

type DeleteUserUseCase struct {
	userRepo    user.Repository
	sessionRepo user.SessionRepository
	security    SecurityRecorder
	logger      logger.Interface
}

func NewDeleteUserUseCase(
	userRepo user.Repository,
	sessionRepo user.SessionRepository,
	security SecurityRecorder,
	logger logger.Interface,
) *DeleteUserUseCase {
	return &DeleteUserUseCase{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		security:    security,
		logger:      logger,
	}
}

func (uc *DeleteUserUseCase) Execute(ctx context.Context, cmd DeleteUserCommand) error {
	if cmd.UserID == cmd.ActorID {
		return errors.NewValidationError("cannot delete your own account")
	}

	u, err := uc.userRepo.GetByID(ctx, cmd.UserID)
	if err != nil {
		return err
	}

	if err := uc.sessionRepo.DeleteByUserID(ctx, u.ID()); err != nil {
		uc.logger.Warnw("failed to revoke sessions of deleted user", "user_id", u.ID(), "error", err)
	}

	if err := uc.userRepo.Delete(ctx, u.ID()); err != nil {
		uc.logger.Errorw("failed to delete user", "user_id", cmd.UserID, "error", err)
		return err
	}

	actorID := cmd.ActorID
	uc.security.Record(ctx, &actorID, audit.ActionUserDeleted, "user", u.ID(),
		map[string]any{"username": u.Username()}, cmd.IPAddress)

	uc.logger.Infow("user deleted", "user_id", u.ID(), "username", u.Username())
	return nil
}
