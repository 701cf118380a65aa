package usecases

import (
	"context"

	"derbydesk/internal/domain/apitoken"
	"derbydesk/internal/domain/audit"
	"derbydesk/internal/domain/user"
	"derbydesk/internal/infrastructure/token"
	"derbydesk/internal/shared/errors"
	"derbydesk/internal/shared/logger"
)

// SecurityRecorder captures failed token authentications for the admin
// console.
type SecurityRecorder interface {
	RecordSecurityEvent(ctx context.Context, userID *uint, eventType string, detail map[string]any, ipAddress, userAgent string)
}

type ValidateTokenQuery struct {
	PlainToken string
	IPAddress  string
	UserAgent  string
}

type ValidateTokenResult struct {
	Token *apitoken.APIToken
	Owner *user.User
}

type ValidateTokenUseCase struct {
	tokenRepo apitoken.Repository
	userRepo  user.Repository
	security  SecurityRecorder
	logger    logger.Interface
}

func NewValidateTokenUseCase(
	tokenRepo apitoken.Repository,
	userRepo user.Repository,
	security SecurityRecorder,
	logger logger.Interface,
) *ValidateTokenUseCase {
	return &ValidateTokenUseCase{
		tokenRepo: tokenRepo,
		userRepo:  userRepo,
		security:  security,
		logger:    logger,
	}
}

func (uc *ValidateTokenUseCase) Execute(ctx context.Context, query ValidateTokenQuery) (*ValidateTokenResult, error) {
	if err := token.ValidateFormat(query.PlainToken); err != nil {
		return nil, uc.reject(ctx, "malformed token", query)
	}

	t, err := uc.tokenRepo.GetByHash(ctx, token.HashToken(query.PlainToken))
	if err != nil {
		if errors.IsNotFoundError(err) {
			return nil, uc.reject(ctx, "unknown token", query)
		}
		uc.logger.Errorw("failed to look up api token", "error", err)
		return nil, errors.NewInternalError("token validation failed")
	}

	if !t.IsUsable() {
		return nil, uc.reject(ctx, "token revoked or expired", query)
	}

	owner, err := uc.userRepo.GetByID(ctx, t.UserID())
	if err != nil {
		if errors.IsNotFoundError(err) {
			return nil, uc.reject(ctx, "token owner missing", query)
		}
		return nil, errors.NewInternalError("token validation failed")
	}
	if !owner.IsActive() {
		return nil, uc.reject(ctx, "token owner inactive", query)
	}

	t.Touch()
	if err := uc.tokenRepo.Update(ctx, t); err != nil {
		uc.logger.Warnw("failed to record token usage", "token_id", t.ID(), "error", err)
	}

	return &ValidateTokenResult{Token: t, Owner: owner}, nil
}

func (uc *ValidateTokenUseCase) reject(ctx context.Context, reason string, query ValidateTokenQuery) error {
	uc.security.RecordSecurityEvent(ctx, nil, audit.EventTokenAuthFailed,
		map[string]any{"reason": reason}, query.IPAddress, query.UserAgent)
	return errors.NewUnauthorizedError("invalid or expired token")
}
