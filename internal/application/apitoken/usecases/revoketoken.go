package usecases

import (
	"context"

	"derbydesk/internal/domain/apitoken"
	"derbydesk/internal/domain/audit"
	"derbydesk/internal/shared/logger"
)

type RevokeTokenCommand struct {
	TokenID uint

	ActorID   uint
	IPAddress string
}

type RevokeTokenUseCase struct {
	tokenRepo apitoken.Repository
	auditRec  AuditRecorder
	logger    logger.Interface
}

func NewRevokeTokenUseCase(tokenRepo apitoken.Repository, auditRec AuditRecorder, logger logger.Interface) *RevokeTokenUseCase {
	return &RevokeTokenUseCase{
		tokenRepo: tokenRepo,
		auditRec:  auditRec,
		logger:    logger,
	}
}

func (uc *RevokeTokenUseCase) Execute(ctx context.Context, cmd RevokeTokenCommand) error {
	t, err := uc.tokenRepo.GetByID(ctx, cmd.TokenID)
	if err != nil {
		return err
	}

	t.Revoke()
	if err := uc.tokenRepo.Update(ctx, t); err != nil {
		uc.logger.Errorw("failed to revoke api token", "token_id", cmd.TokenID, "error", err)
		return err
	}

	actorID := cmd.ActorID
	uc.auditRec.Record(ctx, &actorID, audit.ActionTokenRevoked, "api_token", t.ID(),
		map[string]any{"name": t.Name()}, cmd.IPAddress)

	uc.logger.Infow("api token revoked", "token_id", t.ID(), "name", t.Name())
	return nil
}
