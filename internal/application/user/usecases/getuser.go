package usecases

import (
	"context"

	"derbydesk/internal/domain/user"
	"derbydesk/internal/shared/logger"
)

type GetUserUseCase struct {
	userRepo user.Repository
	logger   logger.Interface
}

func NewGetUserUseCase(userRepo user.Repository, logger logger.Interface) *GetUserUseCase {
	return &GetUserUseCase{
		userRepo: userRepo,
		logger:   logger,
	}
}

func (uc *GetUserUseCase) Execute(ctx context.Context, userID uint) (*user.User, error) {
	return uc.userRepo.GetByID(ctx, userID)
}
