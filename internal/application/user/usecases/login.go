package usecases

import (
	"context"
	"time"

	"derbydesk/internal/domain/audit"
	"derbydesk/internal/domain/user"
	"derbydesk/internal/shared/biztime"
	"derbydesk/internal/shared/errors"
	"derbydesk/internal/shared/logger"
)

type LoginCommand struct {
	Username  string
	Password  string
	IPAddress string
	UserAgent string
}

type LoginResult struct {
	User      *user.User
	SessionID string
	Token     string
	ExpiresAt time.Time
}

type LoginUseCase struct {
	userRepo    user.Repository
	sessionRepo user.SessionRepository
	hasher      PasswordHasher
	tokens      TokenIssuer
	lockout     LockoutStore
	security    SecurityRecorder
	expHours    int
	logger      logger.Interface
}

func NewLoginUseCase(
	userRepo user.Repository,
	sessionRepo user.SessionRepository,
	hasher PasswordHasher,
	tokens TokenIssuer,
	lockout LockoutStore,
	security SecurityRecorder,
	expHours int,
	logger logger.Interface,
) *LoginUseCase {
	return &LoginUseCase{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		hasher:      hasher,
		tokens:      tokens,
		lockout:     lockout,
		security:    security,
		expHours:    expHours,
		logger:      logger,
	}
}

func (uc *LoginUseCase) Execute(ctx context.Context, cmd LoginCommand) (*LoginResult, error) {
	locked, err := uc.lockout.IsLocked(ctx, cmd.Username)
	if err != nil {
		uc.logger.Errorw("lockout store check failed", "username", cmd.Username, "error", err)
		return nil, errors.NewInternalError("login temporarily unavailable")
	}
	if locked {
		uc.security.RecordSecurityEvent(ctx, nil, audit.EventLoginLockout,
			map[string]any{"username": cmd.Username}, cmd.IPAddress, cmd.UserAgent)
		return nil, errors.NewUnauthorizedError("too many failed login attempts, try again later")
	}

	existingUser, err := uc.userRepo.GetByUsername(ctx, cmd.Username)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return nil, uc.fail(ctx, nil, cmd)
		}
		uc.logger.Errorw("failed to load user for login", "username", cmd.Username, "error", err)
		return nil, errors.NewInternalError("login failed")
	}

	if !existingUser.IsActive() {
		return nil, uc.fail(ctx, existingUser, cmd)
	}

	if err := uc.hasher.Verify(cmd.Password, existingUser.PasswordHash()); err != nil {
		return nil, uc.fail(ctx, existingUser, cmd)
	}

	if err := uc.lockout.Clear(ctx, cmd.Username); err != nil {
		uc.logger.Warnw("failed to clear lockout counter", "username", cmd.Username, "error", err)
	}

	now := biztime.NowUTC()
	existingUser.RecordLogin(now)
	if err := uc.userRepo.Update(ctx, existingUser); err != nil {
		uc.logger.Warnw("failed to persist last login time", "user_id", existingUser.ID(), "error", err)
	}

	session, err := user.NewSession(existingUser.ID(), cmd.IPAddress, cmd.UserAgent,
		now.Add(time.Duration(uc.expHours)*time.Hour))
	if err != nil {
		uc.logger.Errorw("failed to create session", "user_id", existingUser.ID(), "error", err)
		return nil, errors.NewInternalError("login failed")
	}
	if err := uc.sessionRepo.Create(ctx, session); err != nil {
		uc.logger.Errorw("failed to save session", "user_id", existingUser.ID(), "error", err)
		return nil, errors.NewInternalError("login failed")
	}

	token, expiresAt, err := uc.tokens.Generate(existingUser.ID(), session.ID, existingUser.Role(), existingUser.IsStaff())
	if err != nil {
		uc.logger.Errorw("failed to generate session token", "user_id", existingUser.ID(), "error", err)
		return nil, errors.NewInternalError("login failed")
	}

	userID := existingUser.ID()
	uc.security.RecordLoginAttempt(ctx, existingUser.Username(), true, cmd.IPAddress, cmd.UserAgent)
	uc.security.RecordSecurityEvent(ctx, &userID, audit.EventLoginSuccess, nil, cmd.IPAddress, cmd.UserAgent)

	uc.logger.Infow("user logged in", "user_id", existingUser.ID(), "username", existingUser.Username())

	return &LoginResult{
		User:      existingUser,
		SessionID: session.ID,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// fail records the failed attempt and returns the generic credential
// error so callers cannot probe which usernames exist.
func (uc *LoginUseCase) fail(ctx context.Context, u *user.User, cmd LoginCommand) error {
	if err := uc.lockout.RecordFailure(ctx, cmd.Username); err != nil {
		uc.logger.Warnw("failed to record lockout failure", "username", cmd.Username, "error", err)
	}

	var userID *uint
	if u != nil {
		id := u.ID()
		userID = &id
	}
	uc.security.RecordLoginAttempt(ctx, cmd.Username, false, cmd.IPAddress, cmd.UserAgent)
	uc.security.RecordSecurityEvent(ctx, userID, audit.EventLoginFailure,
		map[string]any{"username": cmd.Username}, cmd.IPAddress, cmd.UserAgent)

	return errors.NewUnauthorizedError("invalid username or password")
}
