package usecases

import (
	"context"

	"derbydesk/internal/domain/audit"
	"derbydesk/internal/domain/user"
	"derbydesk/internal/shared/authorization"
	"derbydesk/internal/shared/errors"
	"derbydesk/internal/shared/logger"
)

type CreateUserCommand struct {
	Username    string
	Email       string
	DisplayName string
	Password    string
	Role        string
	IsStaff     bool

	ActorID   uint
	IPAddress string
}

type CreateUserUseCase struct {
	userRepo user.Repository
	hasher   PasswordHasher
	security SecurityRecorder
	logger   logger.Interface
}

func NewCreateUserUseCase(
	userRepo user.Repository,
	hasher PasswordHasher,
	security SecurityRecorder,
	logger logger.Interface,
) *CreateUserUseCase {
	return &CreateUserUseCase{
		userRepo: userRepo,
		hasher:   hasher,
		security: security,
		logger:   logger,
	}
}

func (uc *CreateUserUseCase) Execute(ctx context.Context, cmd CreateUserCommand) (*user.User, error) {
	if len(cmd.Password) < 8 {
		return nil, errors.NewValidationError("password must be at least 8 characters")
	}

	role := authorization.UserRole(cmd.Role)
	if !role.IsValid() {
		return nil, errors.NewValidationError("invalid role")
	}

	taken, err := uc.userRepo.ExistsByUsername(ctx, cmd.Username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, errors.NewConflictError("username already exists")
	}
	taken, err = uc.userRepo.ExistsByEmail(ctx, cmd.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, errors.NewConflictError("email already exists")
	}

	hash, err := uc.hasher.Hash(cmd.Password)
	if err != nil {
		uc.logger.Errorw("failed to hash password", "error", err)
		return nil, errors.NewInternalError("failed to create user")
	}

	newUser, err := user.NewUser(cmd.Username, cmd.Email, cmd.DisplayName, hash, role, cmd.IsStaff)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.userRepo.Create(ctx, newUser); err != nil {
		uc.logger.Errorw("failed to create user", "username", cmd.Username, "error", err)
		return nil, err
	}

	actorID := cmd.ActorID
	uc.security.Record(ctx, &actorID, audit.ActionUserCreated, "user", newUser.ID(),
		map[string]any{"username": newUser.Username(), "role": newUser.Role().String()}, cmd.IPAddress)

	uc.logger.Infow("user created", "user_id", newUser.ID(), "username", newUser.Username())
	return newUser, nil
}
