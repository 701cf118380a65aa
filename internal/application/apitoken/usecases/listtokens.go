package usecases

import (
	"context"

	"derbydesk/internal/domain/apitoken"
	"derbydesk/internal/shared/logger"
)

type ListTokensQuery struct {
	// UserID scopes the listing to one owner; zero lists all tokens.
	UserID uint
}

type ListTokensUseCase struct {
	tokenRepo apitoken.Repository
	logger    logger.Interface
}

func NewListTokensUseCase(tokenRepo apitoken.Repository, logger logger.Interface) *ListTokensUseCase {
	return &ListTokensUseCase{
		tokenRepo: tokenRepo,
		logger:    logger,
	}
}

func (uc *ListTokensUseCase) Execute(ctx context.Context, query ListTokensQuery) ([]*apitoken.APIToken, error) {
	var (
		tokens []*apitoken.APIToken
		err    error
	)
	if query.UserID != 0 {
		tokens, err = uc.tokenRepo.ListByUserID(ctx, query.UserID)
	} else {
		tokens, err = uc.tokenRepo.List(ctx)
	}
	if err != nil {
		uc.logger.Errorw("failed to list api tokens", "error", err)
		return nil, err
	}
	return tokens, nil
}
