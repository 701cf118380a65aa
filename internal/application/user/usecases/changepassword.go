package usecases

import (
	"context"

	"derbydesk/internal/domain/user"
	"derbydesk/internal/shared/errors"
	"derbydesk/internal/shared/logger"
)

type ChangePasswordCommand struct {
	UserID          uint
	CurrentPassword string
	NewPassword     string
}

type ChangePasswordUseCase struct {
	userRepo user.Repository
	hasher   PasswordHasher
	logger   logger.Interface
}

func NewChangePasswordUseCase(userRepo user.Repository, hasher PasswordHasher, logger logger.Interface) *ChangePasswordUseCase {
	return &ChangePasswordUseCase{
		userRepo: userRepo,
		hasher:   hasher,
		logger:   logger,
	}
}

func (uc *ChangePasswordUseCase) Execute(ctx context.Context, cmd ChangePasswordCommand) error {
	if len(cmd.NewPassword) < 8 {
		return errors.NewValidationError("password must be at least 8 characters")
	}

	u, err := uc.userRepo.GetByID(ctx, cmd.UserID)
	if err != nil {
		return err
	}

	if err := uc.hasher.Verify(cmd.CurrentPassword, u.PasswordHash()); err != nil {
		return errors.NewUnauthorizedError("current password is incorrect")
	}

	hash, err := uc.hasher.Hash(cmd.NewPassword)
	if err != nil {
		uc.logger.Errorw("failed to hash password", "error", err)
		return errors.NewInternalError("failed to change password")
	}
	if err := u.ChangePasswordHash(hash); err != nil {
		return errors.NewValidationError(err.Error())
	}

	if err := uc.userRepo.Update(ctx, u); err != nil {
		uc.logger.Errorw("failed to save password change", "user_id", cmd.UserID, "error", err)
		return err
	}

	uc.logger.Infow("password changed", "user_id", cmd.UserID)
	return nil
}
