package usecases

import (
	"context"

	"derbydesk/internal/domain/apitoken"
	"derbydesk/internal/domain/user"
	"derbydesk/internal/shared/logger"
)

type mockTokenRepository struct {
	SaveFunc         func(ctx context.Context, t *apitoken.APIToken) error
	UpdateFunc       func(ctx context.Context, t *apitoken.APIToken) error
	DeleteFunc       func(ctx context.Context, tokenID uint) error
	GetByIDFunc      func(ctx context.Context, tokenID uint) (*apitoken.APIToken, error)
	GetByHashFunc    func(ctx context.Context, tokenHash string) (*apitoken.APIToken, error)
	ListByUserIDFunc func(ctx context.Context, userID uint) ([]*apitoken.APIToken, error)
	ListFunc         func(ctx context.Context) ([]*apitoken.APIToken, error)
}

func (m *mockTokenRepository) Save(ctx context.Context, t *apitoken.APIToken) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, t)
	}
	return nil
}

func (m *mockTokenRepository) Update(ctx context.Context, t *apitoken.APIToken) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, t)
	}
	return nil
}

func (m *mockTokenRepository) Delete(ctx context.Context, tokenID uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, tokenID)
	}
	return nil
}

func (m *mockTokenRepository) GetByID(ctx context.Context, tokenID uint) (*apitoken.APIToken, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, tokenID)
	}
	return nil, nil
}

func (m *mockTokenRepository) GetByHash(ctx context.Context, tokenHash string) (*apitoken.APIToken, error) {
	if m.GetByHashFunc != nil {
		return m.GetByHashFunc(ctx, tokenHash)
	}
	return nil, nil
}

func (m *mockTokenRepository) ListByUserID(ctx context.Context, userID uint) ([]*apitoken.APIToken, error) {
	if m.ListByUserIDFunc != nil {
		return m.ListByUserIDFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockTokenRepository) List(ctx context.Context) ([]*apitoken.APIToken, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

type mockUserRepository struct {
	GetByIDFunc func(ctx context.Context, id uint) (*user.User, error)
}

func (m *mockUserRepository) Create(ctx context.Context, u *user.User) error { return nil }
func (m *mockUserRepository) GetByID(ctx context.Context, id uint) (*user.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}
func (m *mockUserRepository) GetByIDs(ctx context.Context, ids []uint) ([]*user.User, error) {
	return nil, nil
}
func (m *mockUserRepository) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	return nil, nil
}
func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return nil, nil
}
func (m *mockUserRepository) Update(ctx context.Context, u *user.User) error { return nil }
func (m *mockUserRepository) Delete(ctx context.Context, id uint) error      { return nil }
func (m *mockUserRepository) List(ctx context.Context, filter user.ListFilter) ([]*user.User, int64, error) {
	return nil, 0, nil
}
func (m *mockUserRepository) ListAssignable(ctx context.Context) ([]*user.User, error) {
	return nil, nil
}
func (m *mockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return false, nil
}
func (m *mockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return false, nil
}

type mockGenerator struct {
	GenerateFunc func() (string, string, error)
}

func (m *mockGenerator) Generate() (string, string, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	return "ddk_plaintext", "deadbeef", nil
}

type recordedAudit struct {
	Action   string
	EntityID uint
	Detail   map[string]any
}

type mockAuditRecorder struct {
	Records []recordedAudit
}

func (m *mockAuditRecorder) Record(ctx context.Context, actorID *uint, action, entityType string, entityID uint, detail map[string]any, ipAddress string) {
	m.Records = append(m.Records, recordedAudit{Action: action, EntityID: entityID, Detail: detail})
}

type recordedSecurityEvent struct {
	EventType string
	Detail    map[string]any
}

type mockSecurityRecorder struct {
	Events []recordedSecurityEvent
}

func (m *mockSecurityRecorder) RecordSecurityEvent(ctx context.Context, userID *uint, eventType string, detail map[string]any, ipAddress, userAgent string) {
	m.Events = append(m.Events, recordedSecurityEvent{EventType: eventType, Detail: detail})
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
