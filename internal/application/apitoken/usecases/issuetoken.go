package usecases

import (
	"context"
	"time"

	"derbydesk/internal/domain/apitoken"
	"derbydesk/internal/domain/audit"
	"derbydesk/internal/shared/errors"
	"derbydesk/internal/shared/logger"
)

// TokenGenerator mints a fresh API token, returning the plaintext and
// the hash that gets persisted.
type TokenGenerator interface {
	Generate() (plainToken string, tokenHash string, err error)
}

// AuditRecorder records token lifecycle changes.
type AuditRecorder interface {
	Record(ctx context.Context, actorID *uint, action, entityType string, entityID uint, detail map[string]any, ipAddress string)
}

type IssueTokenCommand struct {
	UserID    uint
	Name      string
	ExpiresAt *time.Time

	ActorID   uint
	IPAddress string
}

// IssueTokenResult carries the plaintext token. This is the only time
// it is ever available; only the hash is stored.
type IssueTokenResult struct {
	TokenID    uint
	Name       string
	PlainToken string
	ExpiresAt  *time.Time
}

type IssueTokenUseCase struct {
	tokenRepo apitoken.Repository
	generator TokenGenerator
	auditRec  AuditRecorder
	logger    logger.Interface
}

func NewIssueTokenUseCase(
	tokenRepo apitoken.Repository,
	generator TokenGenerator,
	auditRec AuditRecorder,
	logger logger.Interface,
) *IssueTokenUseCase {
	return &IssueTokenUseCase{
		tokenRepo: tokenRepo,
		generator: generator,
		auditRec:  auditRec,
		logger:    logger,
	}
}

func (uc *IssueTokenUseCase) Execute(ctx context.Context, cmd IssueTokenCommand) (*IssueTokenResult, error) {
	plain, hash, err := uc.generator.Generate()
	if err != nil {
		uc.logger.Errorw("failed to generate api token", "error", err)
		return nil, errors.NewInternalError("failed to issue token")
	}

	t, err := apitoken.NewAPIToken(cmd.UserID, cmd.Name, hash, cmd.ExpiresAt)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.tokenRepo.Save(ctx, t); err != nil {
		uc.logger.Errorw("failed to save api token", "user_id", cmd.UserID, "error", err)
		return nil, err
	}

	actorID := cmd.ActorID
	uc.auditRec.Record(ctx, &actorID, audit.ActionTokenIssued, "api_token", t.ID(),
		map[string]any{"name": t.Name(), "user_id": cmd.UserID}, cmd.IPAddress)

	uc.logger.Infow("api token issued", "token_id", t.ID(), "user_id", cmd.UserID, "name", t.Name())

	return &IssueTokenResult{
		TokenID:    t.ID(),
		Name:       t.Name(),
		PlainToken: plain,
		ExpiresAt:  t.ExpiresAt(),
	}, nil
}
