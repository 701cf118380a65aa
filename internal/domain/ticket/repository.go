package ticket

import (
	"context"

	vo "derbydesk/internal/domain/ticket/valueobjects"
)

type TicketRepository interface {
	Save(ctx context.Context, ticket *Ticket) error
	Update(ctx context.Context, ticket *Ticket) error
	Delete(ctx context.Context, ticketID uint) error
	GetByID(ctx context.Context, ticketID uint) (*Ticket, error)
	GetByNumber(ctx context.Context, number string) (*Ticket, error)
	List(ctx context.Context, filters TicketFilter) ([]*Ticket, int64, error)
	// ListVisibleTo lists tickets the given non-staff user may see:
	// tickets they created or are assigned to.
	ListVisibleTo(ctx context.Context, userID uint, filters TicketFilter) ([]*Ticket, int64, error)
	CountByStatus(ctx context.Context) (map[vo.TicketStatus]int64, error)
	CountByCategory(ctx context.Context) (map[uint]int64, error)
	// NextSequenceForDate returns the next per-day ticket sequence for
	// the given YYYYMMDD date key.
	NextSequenceForDate(ctx context.Context, dateKey string) (int, error)
}

type TicketFilter struct {
	Status     *vo.TicketStatus
	Priority   *vo.Priority
	CategoryID *uint
	CreatorID  *uint
	AssigneeID *uint
	Search     string
	Page       int
	PageSize   int
	SortBy     string
	SortOrder  string
}

type CommentRepository interface {
	Save(ctx context.Context, comment *Comment) error
	GetByTicketID(ctx context.Context, ticketID uint) ([]*Comment, error)
	Delete(ctx context.Context, commentID uint) error
	DeleteByTicketID(ctx context.Context, ticketID uint) error
}

type AttachmentRepository interface {
	Save(ctx context.Context, attachment *Attachment) error
	GetByID(ctx context.Context, attachmentID uint) (*Attachment, error)
	GetByTicketID(ctx context.Context, ticketID uint) ([]*Attachment, error)
	Delete(ctx context.Context, attachmentID uint) error
	DeleteByTicketID(ctx context.Context, ticketID uint) error
}
