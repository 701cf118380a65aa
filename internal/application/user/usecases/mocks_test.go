package usecases

import (
	"context"
	"time"

	"derbydesk/internal/domain/user"
	"derbydesk/internal/shared/authorization"
	"derbydesk/internal/shared/logger"
)

type mockUserRepository struct {
	CreateFunc           func(ctx context.Context, u *user.User) error
	GetByIDFunc          func(ctx context.Context, id uint) (*user.User, error)
	GetByIDsFunc         func(ctx context.Context, ids []uint) ([]*user.User, error)
	GetByUsernameFunc    func(ctx context.Context, username string) (*user.User, error)
	GetByEmailFunc       func(ctx context.Context, email string) (*user.User, error)
	UpdateFunc           func(ctx context.Context, u *user.User) error
	DeleteFunc           func(ctx context.Context, id uint) error
	ListFunc             func(ctx context.Context, filter user.ListFilter) ([]*user.User, int64, error)
	ListAssignableFunc   func(ctx context.Context) ([]*user.User, error)
	ExistsByUsernameFunc func(ctx context.Context, username string) (bool, error)
	ExistsByEmailFunc    func(ctx context.Context, email string) (bool, error)
}

func (m *mockUserRepository) Create(ctx context.Context, u *user.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, u)
	}
	return nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id uint) (*user.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockUserRepository) GetByIDs(ctx context.Context, ids []uint) ([]*user.User, error) {
	if m.GetByIDsFunc != nil {
		return m.GetByIDsFunc(ctx, ids)
	}
	return nil, nil
}

func (m *mockUserRepository) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	if m.GetByUsernameFunc != nil {
		return m.GetByUsernameFunc(ctx, username)
	}
	return nil, nil
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *mockUserRepository) Update(ctx context.Context, u *user.User) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, u)
	}
	return nil
}

func (m *mockUserRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *mockUserRepository) List(ctx context.Context, filter user.ListFilter) ([]*user.User, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

func (m *mockUserRepository) ListAssignable(ctx context.Context) ([]*user.User, error) {
	if m.ListAssignableFunc != nil {
		return m.ListAssignableFunc(ctx)
	}
	return nil, nil
}

func (m *mockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	if m.ExistsByUsernameFunc != nil {
		return m.ExistsByUsernameFunc(ctx, username)
	}
	return false, nil
}

func (m *mockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.ExistsByEmailFunc != nil {
		return m.ExistsByEmailFunc(ctx, email)
	}
	return false, nil
}

type mockSessionRepository struct {
	CreateFunc         func(ctx context.Context, session *user.Session) error
	GetByIDFunc        func(ctx context.Context, sessionID string) (*user.Session, error)
	GetByUserIDFunc    func(ctx context.Context, userID uint) ([]*user.Session, error)
	UpdateFunc         func(ctx context.Context, session *user.Session) error
	DeleteFunc         func(ctx context.Context, sessionID string) error
	DeleteByUserIDFunc func(ctx context.Context, userID uint) error
	DeleteExpiredFunc  func(ctx context.Context) error
}

func (m *mockSessionRepository) Create(ctx context.Context, session *user.Session) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, session)
	}
	return nil
}

func (m *mockSessionRepository) GetByID(ctx context.Context, sessionID string) (*user.Session, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, sessionID)
	}
	return nil, nil
}

func (m *mockSessionRepository) GetByUserID(ctx context.Context, userID uint) ([]*user.Session, error) {
	if m.GetByUserIDFunc != nil {
		return m.GetByUserIDFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockSessionRepository) Update(ctx context.Context, session *user.Session) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, session)
	}
	return nil
}

func (m *mockSessionRepository) Delete(ctx context.Context, sessionID string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, sessionID)
	}
	return nil
}

func (m *mockSessionRepository) DeleteByUserID(ctx context.Context, userID uint) error {
	if m.DeleteByUserIDFunc != nil {
		return m.DeleteByUserIDFunc(ctx, userID)
	}
	return nil
}

func (m *mockSessionRepository) DeleteExpired(ctx context.Context) error {
	if m.DeleteExpiredFunc != nil {
		return m.DeleteExpiredFunc(ctx)
	}
	return nil
}

type mockHasher struct {
	HashFunc   func(password string) (string, error)
	VerifyFunc func(password, hash string) error
}

func (m *mockHasher) Hash(password string) (string, error) {
	if m.HashFunc != nil {
		return m.HashFunc(password)
	}
	return "hashed:" + password, nil
}

func (m *mockHasher) Verify(password, hash string) error {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(password, hash)
	}
	return nil
}

type mockTokenIssuer struct {
	GenerateFunc func(userID uint, sessionID string, role authorization.UserRole, isStaff bool) (string, time.Time, error)
}

func (m *mockTokenIssuer) Generate(userID uint, sessionID string, role authorization.UserRole, isStaff bool) (string, time.Time, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(userID, sessionID, role, isStaff)
	}
	return "signed-token", time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC), nil
}

type mockLockoutStore struct {
	IsLockedFunc      func(ctx context.Context, username string) (bool, error)
	RecordFailureFunc func(ctx context.Context, username string) error
	ClearFunc         func(ctx context.Context, username string) error

	Failures []string
	Cleared  []string
}

func (m *mockLockoutStore) IsLocked(ctx context.Context, username string) (bool, error) {
	if m.IsLockedFunc != nil {
		return m.IsLockedFunc(ctx, username)
	}
	return false, nil
}

func (m *mockLockoutStore) RecordFailure(ctx context.Context, username string) error {
	m.Failures = append(m.Failures, username)
	if m.RecordFailureFunc != nil {
		return m.RecordFailureFunc(ctx, username)
	}
	return nil
}

func (m *mockLockoutStore) Clear(ctx context.Context, username string) error {
	m.Cleared = append(m.Cleared, username)
	if m.ClearFunc != nil {
		return m.ClearFunc(ctx, username)
	}
	return nil
}

type recordedSecurityEvent struct {
	UserID    *uint
	EventType string
	Detail    map[string]any
}

type recordedLoginAttempt struct {
	Username string
	Success  bool
}

type recordedAuditEntry struct {
	ActorID    *uint
	Action     string
	EntityType string
	EntityID   uint
	Detail     map[string]any
}

type mockSecurityRecorder struct {
	Entries  []recordedAuditEntry
	Events   []recordedSecurityEvent
	Attempts []recordedLoginAttempt
}

func (m *mockSecurityRecorder) Record(ctx context.Context, actorID *uint, action, entityType string, entityID uint, detail map[string]any, ipAddress string) {
	m.Entries = append(m.Entries, recordedAuditEntry{
		ActorID:    actorID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Detail:     detail,
	})
}

func (m *mockSecurityRecorder) RecordSecurityEvent(ctx context.Context, userID *uint, eventType string, detail map[string]any, ipAddress, userAgent string) {
	m.Events = append(m.Events, recordedSecurityEvent{
		UserID:    userID,
		EventType: eventType,
		Detail:    detail,
	})
}

func (m *mockSecurityRecorder) RecordLoginAttempt(ctx context.Context, username string, success bool, ipAddress, userAgent string) {
	m.Attempts = append(m.Attempts, recordedLoginAttempt{
		Username: username,
		Success:  success,
	})
}

type mockLogger struct{}

func (m *mockLogger) Debug(msg string, args ...any)                   {}
func (m *mockLogger) Info(msg string, args ...any)                    {}
func (m *mockLogger) Warn(msg string, args ...any)                    {}
func (m *mockLogger) Error(msg string, args ...any)                   {}
func (m *mockLogger) With(args ...any) logger.Interface               { return m }
func (m *mockLogger) Named(name string) logger.Interface              { return m }
func (m *mockLogger) Debugw(msg string, keysAndValues ...interface{}) {}
func (m *mockLogger) Infow(msg string, keysAndValues ...interface{})  {}
func (m *mockLogger) Warnw(msg string, keysAndValues ...interface{})  {}
func (m *mockLogger) Errorw(msg string, keysAndValues ...interface{}) {}
