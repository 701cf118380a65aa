package usecases

import (
	"context"
	"io"

	"derbydesk/internal/domain/ticket"
	vo "derbydesk/internal/domain/ticket/valueobjects"
	"derbydesk/internal/domain/user"
	"derbydesk/internal/shared/logger"
)

type mockTicketRepository struct {
	SaveFunc                func(ctx context.Context, t *ticket.Ticket) error
	UpdateFunc              func(ctx context.Context, t *ticket.Ticket) error
	DeleteFunc              func(ctx context.Context, ticketID uint) error
	GetByIDFunc             func(ctx context.Context, ticketID uint) (*ticket.Ticket, error)
	GetByNumberFunc         func(ctx context.Context, number string) (*ticket.Ticket, error)
	ListFunc                func(ctx context.Context, filters ticket.TicketFilter) ([]*ticket.Ticket, int64, error)
	ListVisibleToFunc       func(ctx context.Context, userID uint, filters ticket.TicketFilter) ([]*ticket.Ticket, int64, error)
	CountByStatusFunc       func(ctx context.Context) (map[vo.TicketStatus]int64, error)
	CountByCategoryFunc     func(ctx context.Context) (map[uint]int64, error)
	NextSequenceForDateFunc func(ctx context.Context, dateKey string) (int, error)
}

func (m *mockTicketRepository) Save(ctx context.Context, t *ticket.Ticket) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, t)
	}
	return nil
}

func (m *mockTicketRepository) Update(ctx context.Context, t *ticket.Ticket) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, t)
	}
	return nil
}

func (m *mockTicketRepository) Delete(ctx context.Context, ticketID uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, ticketID)
	}
	return nil
}

func (m *mockTicketRepository) GetByID(ctx context.Context, ticketID uint) (*ticket.Ticket, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, ticketID)
	}
	return nil, nil
}

func (m *mockTicketRepository) GetByNumber(ctx context.Context, number string) (*ticket.Ticket, error) {
	if m.GetByNumberFunc != nil {
		return m.GetByNumberFunc(ctx, number)
	}
	return nil, nil
}

func (m *mockTicketRepository) List(ctx context.Context, filters ticket.TicketFilter) ([]*ticket.Ticket, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filters)
	}
	return nil, 0, nil
}

func (m *mockTicketRepository) ListVisibleTo(ctx context.Context, userID uint, filters ticket.TicketFilter) ([]*ticket.Ticket, int64, error) {
	if m.ListVisibleToFunc != nil {
		return m.ListVisibleToFunc(ctx, userID, filters)
	}
	return nil, 0, nil
}

func (m *mockTicketRepository) CountByStatus(ctx context.Context) (map[vo.TicketStatus]int64, error) {
	if m.CountByStatusFunc != nil {
		return m.CountByStatusFunc(ctx)
	}
	return nil, nil
}

func (m *mockTicketRepository) CountByCategory(ctx context.Context) (map[uint]int64, error) {
	if m.CountByCategoryFunc != nil {
		return m.CountByCategoryFunc(ctx)
	}
	return nil, nil
}

func (m *mockTicketRepository) NextSequenceForDate(ctx context.Context, dateKey string) (int, error) {
	if m.NextSequenceForDateFunc != nil {
		return m.NextSequenceForDateFunc(ctx, dateKey)
	}
	return 1, nil
}

type mockCommentRepository struct {
	SaveFunc             func(ctx context.Context, c *ticket.Comment) error
	GetByTicketIDFunc    func(ctx context.Context, ticketID uint) ([]*ticket.Comment, error)
	DeleteFunc           func(ctx context.Context, commentID uint) error
	DeleteByTicketIDFunc func(ctx context.Context, ticketID uint) error
}

func (m *mockCommentRepository) DeleteByTicketID(ctx context.Context, ticketID uint) error {
	if m.DeleteByTicketIDFunc != nil {
		return m.DeleteByTicketIDFunc(ctx, ticketID)
	}
	return nil
}

func (m *mockCommentRepository) Save(ctx context.Context, c *ticket.Comment) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, c)
	}
	return nil
}

func (m *mockCommentRepository) GetByTicketID(ctx context.Context, ticketID uint) ([]*ticket.Comment, error) {
	if m.GetByTicketIDFunc != nil {
		return m.GetByTicketIDFunc(ctx, ticketID)
	}
	return nil, nil
}

func (m *mockCommentRepository) Delete(ctx context.Context, commentID uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, commentID)
	}
	return nil
}

type mockAttachmentRepository struct {
	SaveFunc             func(ctx context.Context, a *ticket.Attachment) error
	GetByIDFunc          func(ctx context.Context, attachmentID uint) (*ticket.Attachment, error)
	GetByTicketIDFunc    func(ctx context.Context, ticketID uint) ([]*ticket.Attachment, error)
	DeleteFunc           func(ctx context.Context, attachmentID uint) error
	DeleteByTicketIDFunc func(ctx context.Context, ticketID uint) error
}

func (m *mockAttachmentRepository) DeleteByTicketID(ctx context.Context, ticketID uint) error {
	if m.DeleteByTicketIDFunc != nil {
		return m.DeleteByTicketIDFunc(ctx, ticketID)
	}
	return nil
}

func (m *mockAttachmentRepository) Save(ctx context.Context, a *ticket.Attachment) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, a)
	}
	return nil
}

func (m *mockAttachmentRepository) GetByID(ctx context.Context, attachmentID uint) (*ticket.Attachment, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, attachmentID)
	}
	return nil, nil
}

func (m *mockAttachmentRepository) GetByTicketID(ctx context.Context, ticketID uint) ([]*ticket.Attachment, error) {
	if m.GetByTicketIDFunc != nil {
		return m.GetByTicketIDFunc(ctx, ticketID)
	}
	return nil, nil
}

func (m *mockAttachmentRepository) Delete(ctx context.Context, attachmentID uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, attachmentID)
	}
	return nil
}

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

type mockNumberGenerator struct {
	GenerateFunc func(ctx context.Context) (string, error)
}

func (m *mockNumberGenerator) Generate(ctx context.Context) (string, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx)
	}
	return "T-20250101-0001", nil
}

type mockNotifier struct {
	SendTicketCreatedFunc       func(to, ticketNumber, title string) error
	SendTicketAssignedFunc      func(to, ticketNumber, title string) error
	SendTicketStatusChangedFunc func(to, ticketNumber, title, oldStatus, newStatus string) error
	SendCommentAddedFunc        func(to, ticketNumber, title, author string) error
}

func (m *mockNotifier) SendTicketCreated(to, ticketNumber, title string) error {
	if m.SendTicketCreatedFunc != nil {
		return m.SendTicketCreatedFunc(to, ticketNumber, title)
	}
	return nil
}

func (m *mockNotifier) SendTicketAssigned(to, ticketNumber, title string) error {
	if m.SendTicketAssignedFunc != nil {
		return m.SendTicketAssignedFunc(to, ticketNumber, title)
	}
	return nil
}

func (m *mockNotifier) SendTicketStatusChanged(to, ticketNumber, title, oldStatus, newStatus string) error {
	if m.SendTicketStatusChangedFunc != nil {
		return m.SendTicketStatusChangedFunc(to, ticketNumber, title, oldStatus, newStatus)
	}
	return nil
}

func (m *mockNotifier) SendCommentAdded(to, ticketNumber, title, author string) error {
	if m.SendCommentAddedFunc != nil {
		return m.SendCommentAddedFunc(to, ticketNumber, title, author)
	}
	return nil
}

type recordedAudit struct {
	ActorID    *uint
	Action     string
	EntityType string
	EntityID   uint
	Detail     map[string]any
}

type mockAuditRecorder struct {
	Records []recordedAudit
}

func (m *mockAuditRecorder) Record(ctx context.Context, actorID *uint, action, entityType string, entityID uint, detail map[string]any, ipAddress string) {
	m.Records = append(m.Records, recordedAudit{
		ActorID:    actorID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Detail:     detail,
	})
}

type mockFileStore struct {
	SaveFunc   func(ticketID uint, filename string, r io.Reader) (string, int64, error)
	DeleteFunc func(storagePath string) error
	Deleted    []string
}

func (m *mockFileStore) Save(ticketID uint, filename string, r io.Reader) (string, int64, error) {
	if m.SaveFunc != nil {
		return m.SaveFunc(ticketID, filename, r)
	}
	return "1/file.txt", 42, nil
}

func (m *mockFileStore) Delete(storagePath string) error {
	m.Deleted = append(m.Deleted, storagePath)
	if m.DeleteFunc != nil {
		return m.DeleteFunc(storagePath)
	}
	return nil
}

type mockTransactor struct {
	Err   error
	Calls int
}

func (m *mockTransactor) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.Calls++
	if m.Err != nil {
		return m.Err
	}
	return fn(ctx)
}

type mockTicketFileStore struct {
	DeleteTicketFunc func(ticketID uint) error
	DeletedTickets   []uint
}

func (m *mockTicketFileStore) DeleteTicket(ticketID uint) error {
	m.DeletedTickets = append(m.DeletedTickets, ticketID)
	if m.DeleteTicketFunc != nil {
		return m.DeleteTicketFunc(ticketID)
	}
	return nil
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
