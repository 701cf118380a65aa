package ticket

import (
	"fmt"
	"time"

	vo "derbydesk/internal/domain/ticket/valueobjects"
	"derbydesk/internal/shared/biztime"
)

type Ticket struct {
	id          uint
	number      string
	title       string
	description string
	categoryID  *uint
	priority    vo.Priority
	status      vo.TicketStatus
	creatorID   uint
	assigneeID  *uint
	location    string
	department  string
	createdAt   time.Time
	updatedAt   time.Time
	closedAt    *time.Time
	comments    []*Comment
}

func NewTicket(
	title string,
	description string,
	categoryID *uint,
	priority vo.Priority,
	creatorID uint,
	location string,
	department string,
) (*Ticket, error) {
	if len(title) == 0 {
		return nil, fmt.Errorf("title is required")
	}
	if len(title) > 200 {
		return nil, fmt.Errorf("title exceeds maximum length of 200 characters")
	}
	if len(description) == 0 {
		return nil, fmt.Errorf("description is required")
	}
	if len(description) > 10000 {
		return nil, fmt.Errorf("description exceeds maximum length of 10000 characters")
	}
	if !priority.IsValid() {
		return nil, fmt.Errorf("invalid priority")
	}
	if creatorID == 0 {
		return nil, fmt.Errorf("creator ID is required")
	}

	now := biztime.NowUTC()

	return &Ticket{
		title:       title,
		description: description,
		categoryID:  categoryID,
		priority:    priority,
		status:      vo.StatusOpen,
		creatorID:   creatorID,
		location:    location,
		department:  department,
		createdAt:   now,
		updatedAt:   now,
		comments:    []*Comment{},
	}, nil
}

func ReconstructTicket(
	id uint,
	number string,
	title string,
	description string,
	categoryID *uint,
	priority vo.Priority,
	status vo.TicketStatus,
	creatorID uint,
	assigneeID *uint,
	location string,
	department string,
	createdAt, updatedAt time.Time,
	closedAt *time.Time,
) (*Ticket, error) {
	if id == 0 {
		return nil, fmt.Errorf("ticket ID cannot be zero")
	}
	if len(number) == 0 {
		return nil, fmt.Errorf("ticket number is required")
	}
	if len(title) == 0 {
		return nil, fmt.Errorf("title is required")
	}
	if !priority.IsValid() {
		return nil, fmt.Errorf("invalid priority")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid status")
	}

	return &Ticket{
		id:          id,
		number:      number,
		title:       title,
		description: description,
		categoryID:  categoryID,
		priority:    priority,
		status:      status,
		creatorID:   creatorID,
		assigneeID:  assigneeID,
		location:    location,
		department:  department,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
		closedAt:    closedAt,
		comments:    []*Comment{},
	}, nil
}

func (t *Ticket) ID() uint {
	return t.id
}

func (t *Ticket) Number() string {
	return t.number
}

func (t *Ticket) Title() string {
	return t.title
}

func (t *Ticket) Description() string {
	return t.description
}

func (t *Ticket) CategoryID() *uint {
	return t.categoryID
}

func (t *Ticket) Priority() vo.Priority {
	return t.priority
}

func (t *Ticket) Status() vo.TicketStatus {
	return t.status
}

func (t *Ticket) CreatorID() uint {
	return t.creatorID
}

func (t *Ticket) AssigneeID() *uint {
	return t.assigneeID
}

func (t *Ticket) Location() string {
	return t.location
}

func (t *Ticket) Department() string {
	return t.department
}

func (t *Ticket) CreatedAt() time.Time {
	return t.createdAt
}

func (t *Ticket) UpdatedAt() time.Time {
	return t.updatedAt
}

func (t *Ticket) ClosedAt() *time.Time {
	return t.closedAt
}

func (t *Ticket) Comments() []*Comment {
	commentsCopy := make([]*Comment, len(t.comments))
	copy(commentsCopy, t.comments)
	return commentsCopy
}

// GetCreatorID implements authorization.TicketAccess.
func (t *Ticket) GetCreatorID() uint {
	return t.creatorID
}

// GetAssigneeID implements authorization.TicketAccess.
func (t *Ticket) GetAssigneeID() *uint {
	return t.assigneeID
}

func (t *Ticket) SetID(id uint) error {
	if t.id != 0 {
		return fmt.Errorf("ticket ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("ticket ID cannot be zero")
	}
	t.id = id
	return nil
}

func (t *Ticket) SetNumber(number string) error {
	if len(t.number) > 0 {
		return fmt.Errorf("ticket number is already set")
	}
	if len(number) == 0 {
		return fmt.Errorf("ticket number cannot be empty")
	}
	t.number = number
	return nil
}

// UpdateDetails changes the editable fields of a ticket.
func (t *Ticket) UpdateDetails(title, description string, categoryID *uint, priority vo.Priority, location, department string) error {
	if len(title) == 0 {
		return fmt.Errorf("title is required")
	}
	if len(title) > 200 {
		return fmt.Errorf("title exceeds maximum length of 200 characters")
	}
	if len(description) == 0 {
		return fmt.Errorf("description is required")
	}
	if len(description) > 10000 {
		return fmt.Errorf("description exceeds maximum length of 10000 characters")
	}
	if !priority.IsValid() {
		return fmt.Errorf("invalid priority: %s", priority)
	}

	t.title = title
	t.description = description
	t.categoryID = categoryID
	t.priority = priority
	t.location = location
	t.department = department
	t.updatedAt = biztime.NowUTC()

	return nil
}

// AssignTo sets the assignee. Whether the assignee may work tickets is
// checked by the caller against the user's role.
func (t *Ticket) AssignTo(assigneeID uint) error {
	if assigneeID == 0 {
		return fmt.Errorf("assignee ID cannot be zero")
	}

	t.assigneeID = &assigneeID
	t.updatedAt = biztime.NowUTC()

	return nil
}

// Unassign clears the assignee.
func (t *Ticket) Unassign() {
	t.assigneeID = nil
	t.updatedAt = biztime.NowUTC()
}

// ChangeStatus moves the ticket to any valid status. All transitions
// between open, in_progress and closed are allowed; closing records the
// close time and reopening clears it.
func (t *Ticket) ChangeStatus(newStatus vo.TicketStatus) error {
	if !newStatus.IsValid() {
		return fmt.Errorf("invalid status: %s", newStatus)
	}

	if t.status == newStatus {
		return nil
	}

	wasClosed := t.status.IsClosed()
	t.status = newStatus
	t.updatedAt = biztime.NowUTC()

	if newStatus.IsClosed() {
		now := biztime.NowUTC()
		t.closedAt = &now
	} else if wasClosed {
		t.closedAt = nil
	}

	return nil
}

func (t *Ticket) AddComment(comment *Comment) error {
	if comment == nil {
		return fmt.Errorf("comment cannot be nil")
	}

	if comment.TicketID() != t.id {
		return fmt.Errorf("comment ticket ID mismatch")
	}

	t.comments = append(t.comments, comment)
	t.updatedAt = biztime.NowUTC()

	return nil
}

func (t *Ticket) Validate() error {
	if len(t.title) == 0 {
		return fmt.Errorf("title is required")
	}
	if len(t.description) == 0 {
		return fmt.Errorf("description is required")
	}
	if !t.priority.IsValid() {
		return fmt.Errorf("invalid priority")
	}
	if !t.status.IsValid() {
		return fmt.Errorf("invalid status")
	}
	if t.creatorID == 0 {
		return fmt.Errorf("creator ID is required")
	}
	return nil
}
