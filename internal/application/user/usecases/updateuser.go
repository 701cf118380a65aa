package usecases

import (
	"context"

	"derbydesk/internal/domain/audit"
	"derbydesk/internal/domain/user"
	"derbydesk/internal/shared/authorization"
	"derbydesk/internal/shared/errors"
	"derbydesk/internal/shared/logger"
)

// UpdateUserCommand applies admin edits to an account. Nil pointer
// fields are left unchanged.
type UpdateUserCommand struct {
	UserID      uint
	DisplayName *string
	Email       *string
	Role        *string
	Active      *bool
	Password    *string
	Profile     *user.Profile

	ActorID   uint
	IPAddress string
}

type UpdateUserUseCase struct {
	userRepo user.Repository
	hasher   PasswordHasher
	security SecurityRecorder
	logger   logger.Interface
}

func NewUpdateUserUseCase(
	userRepo user.Repository,
	hasher PasswordHasher,
	security SecurityRecorder,
	logger logger.Interface,
) *UpdateUserUseCase {
	return &UpdateUserUseCase{
		userRepo: userRepo,
		hasher:   hasher,
		security: security,
		logger:   logger,
	}
}

func (uc *UpdateUserUseCase) Execute(ctx context.Context, cmd UpdateUserCommand) (*user.User, error) {
	u, err := uc.userRepo.GetByID(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}

	changed := make([]string, 0, 4)

	if cmd.DisplayName != nil {
		if err := u.UpdateDisplayName(*cmd.DisplayName); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		changed = append(changed, "display_name")
	}
	if cmd.Email != nil {
		if err := u.UpdateEmail(*cmd.Email); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		changed = append(changed, "email")
	}
	if cmd.Role != nil {
		role := authorization.UserRole(*cmd.Role)
		if !role.IsValid() {
			return nil, errors.NewValidationError("invalid role")
		}
		// The last remaining admin must not demote themselves
		if u.ID() == cmd.ActorID && role != authorization.RoleAdmin {
			return nil, errors.NewValidationError("cannot change your own role")
		}
		if err := u.ChangeRole(role); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		changed = append(changed, "role")
	}
	if cmd.Active != nil {
		if u.ID() == cmd.ActorID && !*cmd.Active {
			return nil, errors.NewValidationError("cannot deactivate your own account")
		}
		if *cmd.Active {
			u.Activate()
		} else {
			u.Deactivate()
		}
		changed = append(changed, "active")
	}
	if cmd.Password != nil {
		if len(*cmd.Password) < 8 {
			return nil, errors.NewValidationError("password must be at least 8 characters")
		}
		hash, err := uc.hasher.Hash(*cmd.Password)
		if err != nil {
			uc.logger.Errorw("failed to hash password", "error", err)
			return nil, errors.NewInternalError("failed to update user")
		}
		if err := u.ChangePasswordHash(hash); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		changed = append(changed, "password")
	}
	if cmd.Profile != nil {
		u.UpdateProfile(*cmd.Profile)
		changed = append(changed, "profile")
	}

	if len(changed) == 0 {
		return u, nil
	}

	if err := uc.userRepo.Update(ctx, u); err != nil {
		uc.logger.Errorw("failed to update user", "user_id", cmd.UserID, "error", err)
		return nil, err
	}

	actorID := cmd.ActorID
	uc.security.Record(ctx, &actorID, audit.ActionUserUpdated, "user", u.ID(),
		map[string]any{"fields": changed}, cmd.IPAddress)

	uc.logger.Infow("user updated", "user_id", u.ID(), "fields", changed)
	return u, nil
}
