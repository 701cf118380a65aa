package ticket

import (
	"fmt"
	"time"

	"derbydesk/internal/shared/biztime"
)

const maxCommentLength = 5000

// Comment is a discussion entry on a ticket. Internal comments are only
// shown to staff.
type Comment struct {
	id         uint
	ticketID   uint
	userID     uint
	content    string
	isInternal bool
	createdAt  time.Time
	updatedAt  time.Time
}

func validateCommentContent(content string) error {
	if len(content) == 0 {
		return fmt.Errorf("comment content cannot be empty")
	}
	if len(content) > maxCommentLength {
		return fmt.Errorf("comment content exceeds %d characters", maxCommentLength)
	}
	return nil
}

func NewComment(ticketID, userID uint, content string, isInternal bool) (*Comment, error) {
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if err := validateCommentContent(content); err != nil {
		return nil, err
	}

	now := biztime.NowUTC()
	return &Comment{
		ticketID:   ticketID,
		userID:     userID,
		content:    content,
		isInternal: isInternal,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

// ReconstructComment rebuilds a comment from storage without running the
// creation validations.
func ReconstructComment(
	id uint,
	ticketID uint,
	userID uint,
	content string,
	isInternal bool,
	createdAt, updatedAt time.Time,
) (*Comment, error) {
	if id == 0 {
		return nil, fmt.Errorf("comment ID cannot be zero")
	}
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}

	return &Comment{
		id:         id,
		ticketID:   ticketID,
		userID:     userID,
		content:    content,
		isInternal: isInternal,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}, nil
}

func (c *Comment) ID() uint             { return c.id }
func (c *Comment) TicketID() uint       { return c.ticketID }
func (c *Comment) UserID() uint         { return c.userID }
func (c *Comment) Content() string      { return c.content }
func (c *Comment) IsInternal() bool     { return c.isInternal }
func (c *Comment) CreatedAt() time.Time { return c.createdAt }
func (c *Comment) UpdatedAt() time.Time { return c.updatedAt }

// SetID records the identifier assigned on first save.
func (c *Comment) SetID(id uint) error {
	if c.id != 0 {
		return fmt.Errorf("comment ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("comment ID cannot be zero")
	}
	c.id = id
	return nil
}

func (c *Comment) UpdateContent(content string) error {
	if err := validateCommentContent(content); err != nil {
		return err
	}
	c.content = content
	c.updatedAt = biztime.NowUTC()
	return nil
}
