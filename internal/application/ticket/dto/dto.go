package dto

import (
	"time"

	"derbydesk/internal/domain/ticket"
)

type TicketDTO struct {
	ID          uint            `json:"id"`
	Number      string          `json:"number"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	CategoryID  *uint           `json:"category_id"`
	Priority    string          `json:"priority"`
	Status      string          `json:"status"`
	CreatorID   uint            `json:"creator_id"`
	AssigneeID  *uint           `json:"assignee_id"`
	Location    string          `json:"location"`
	Department  string          `json:"department"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	ClosedAt    *time.Time      `json:"closed_at"`
	Comments    []CommentDTO    `json:"comments"`
	Attachments []AttachmentDTO `json:"attachments"`
}

type CommentDTO struct {
	ID         uint      `json:"id"`
	UserID     uint      `json:"user_id"`
	Content    string    `json:"content"`
	IsInternal bool      `json:"is_internal"`
	CreatedAt  time.Time `json:"created_at"`
}

type AttachmentDTO struct {
	ID          uint      `json:"id"`
	UploaderID  uint      `json:"uploader_id"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	CreatedAt   time.Time `json:"created_at"`
}

type TicketListItemDTO struct {
	ID          uint       `json:"id"`
	Number      string     `json:"number"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	CategoryID  *uint      `json:"category_id"`
	CreatorID   uint       `json:"creator_id"`
	AssigneeID  *uint      `json:"assignee_id"`
	Location    string     `json:"location"`
	Department  string     `json:"department"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	ClosedAt    *time.Time `json:"closed_at"`
}

// ToTicketDTO converts a ticket plus its comments and attachments to the
// detail representation. Internal comments are stripped for non-staff
// viewers.
func ToTicketDTO(t *ticket.Ticket, attachments []*ticket.Attachment, includeInternal bool) *TicketDTO {
	if t == nil {
		return nil
	}

	commentDTOs := make([]CommentDTO, 0)
	for _, c := range t.Comments() {
		if c.IsInternal() && !includeInternal {
			continue
		}
		commentDTOs = append(commentDTOs, CommentDTO{
			ID:         c.ID(),
			UserID:     c.UserID(),
			Content:    c.Content(),
			IsInternal: c.IsInternal(),
			CreatedAt:  c.CreatedAt(),
		})
	}

	attachmentDTOs := make([]AttachmentDTO, 0)
	for _, a := range attachments {
		attachmentDTOs = append(attachmentDTOs, AttachmentDTO{
			ID:          a.ID(),
			UploaderID:  a.UploaderID(),
			Filename:    a.Filename(),
			ContentType: a.ContentType(),
			SizeBytes:   a.SizeBytes(),
			CreatedAt:   a.CreatedAt(),
		})
	}

	return &TicketDTO{
		ID:          t.ID(),
		Number:      t.Number(),
		Title:       t.Title(),
		Description: t.Description(),
		CategoryID:  t.CategoryID(),
		Priority:    t.Priority().String(),
		Status:      t.Status().String(),
		CreatorID:   t.CreatorID(),
		AssigneeID:  t.AssigneeID(),
		Location:    t.Location(),
		Department:  t.Department(),
		CreatedAt:   t.CreatedAt(),
		UpdatedAt:   t.UpdatedAt(),
		ClosedAt:    t.ClosedAt(),
		Comments:    commentDTOs,
		Attachments: attachmentDTOs,
	}
}

func ToTicketListItemDTO(t *ticket.Ticket) TicketListItemDTO {
	return TicketListItemDTO{
		ID:          t.ID(),
		Number:      t.Number(),
		Title:       t.Title(),
		Description: t.Description(),
		Status:      t.Status().String(),
		Priority:    t.Priority().String(),
		CategoryID:  t.CategoryID(),
		CreatorID:   t.CreatorID(),
		AssigneeID:  t.AssigneeID(),
		Location:    t.Location(),
		Department:  t.Department(),
		CreatedAt:   t.CreatedAt(),
		UpdatedAt:   t.UpdatedAt(),
		ClosedAt:    t.ClosedAt(),
	}
}
