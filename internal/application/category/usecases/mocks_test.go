package usecases

import (
	"context"

	"derbydesk/internal/domain/category"
	"derbydesk/internal/domain/ticket"
	vo "derbydesk/internal/domain/ticket/valueobjects"
	"derbydesk/internal/infrastructure/cache"
	"derbydesk/internal/shared/logger"
)

type mockCategoryRepository struct {
	SaveFunc         func(ctx context.Context, c *category.Category) error
	UpdateFunc       func(ctx context.Context, c *category.Category) error
	DeleteFunc       func(ctx context.Context, categoryID uint) error
	GetByIDFunc      func(ctx context.Context, categoryID uint) (*category.Category, error)
	GetBySlugFunc    func(ctx context.Context, slug string) (*category.Category, error)
	ListFunc         func(ctx context.Context) ([]*category.Category, error)
	ExistsByNameFunc func(ctx context.Context, name string) (bool, error)
}

func (m *mockCategoryRepository) Save(ctx context.Context, c *category.Category) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, c)
	}
	return nil
}

func (m *mockCategoryRepository) Update(ctx context.Context, c *category.Category) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, c)
	}
	return nil
}

func (m *mockCategoryRepository) Delete(ctx context.Context, categoryID uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, categoryID)
	}
	return nil
}

func (m *mockCategoryRepository) GetByID(ctx context.Context, categoryID uint) (*category.Category, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, categoryID)
	}
	return nil, nil
}

func (m *mockCategoryRepository) GetBySlug(ctx context.Context, slug string) (*category.Category, error) {
	if m.GetBySlugFunc != nil {
		return m.GetBySlugFunc(ctx, slug)
	}
	return nil, nil
}

func (m *mockCategoryRepository) List(ctx context.Context) ([]*category.Category, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *mockCategoryRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	if m.ExistsByNameFunc != nil {
		return m.ExistsByNameFunc(ctx, name)
	}
	return false, nil
}

type mockTicketRepository struct {
	CountByCategoryFunc func(ctx context.Context) (map[uint]int64, error)
}

func (m *mockTicketRepository) Save(ctx context.Context, t *ticket.Ticket) error   { return nil }
func (m *mockTicketRepository) Update(ctx context.Context, t *ticket.Ticket) error { return nil }
func (m *mockTicketRepository) Delete(ctx context.Context, ticketID uint) error    { return nil }
func (m *mockTicketRepository) GetByID(ctx context.Context, ticketID uint) (*ticket.Ticket, error) {
	return nil, nil
}
func (m *mockTicketRepository) GetByNumber(ctx context.Context, number string) (*ticket.Ticket, error) {
	return nil, nil
}
func (m *mockTicketRepository) List(ctx context.Context, filters ticket.TicketFilter) ([]*ticket.Ticket, int64, error) {
	return nil, 0, nil
}
func (m *mockTicketRepository) ListVisibleTo(ctx context.Context, userID uint, filters ticket.TicketFilter) ([]*ticket.Ticket, int64, error) {
	return nil, 0, nil
}
func (m *mockTicketRepository) CountByStatus(ctx context.Context) (map[vo.TicketStatus]int64, error) {
	return nil, nil
}
func (m *mockTicketRepository) CountByCategory(ctx context.Context) (map[uint]int64, error) {
	if m.CountByCategoryFunc != nil {
		return m.CountByCategoryFunc(ctx)
	}
	return nil, nil
}
func (m *mockTicketRepository) NextSequenceForDate(ctx context.Context, dateKey string) (int, error) {
	return 1, nil
}

type mockCategoryCache struct {
	GetFunc func(ctx context.Context) ([]cache.CategoryEntry, bool, error)
	SetFunc func(ctx context.Context, entries []cache.CategoryEntry) error

	SetCalls        [][]cache.CategoryEntry
	InvalidateCalls int
}

func (m *mockCategoryCache) Get(ctx context.Context) ([]cache.CategoryEntry, bool, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx)
	}
	return nil, false, nil
}

func (m *mockCategoryCache) Set(ctx context.Context, entries []cache.CategoryEntry) error {
	m.SetCalls = append(m.SetCalls, entries)
	if m.SetFunc != nil {
		return m.SetFunc(ctx, entries)
	}
	return nil
}

func (m *mockCategoryCache) Invalidate(ctx context.Context) error {
	m.InvalidateCalls++
	return nil
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
