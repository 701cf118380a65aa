package mappers

import (
	"derbydesk/internal/domain/ticket"
	vo "derbydesk/internal/domain/ticket/valueobjects"
	"derbydesk/internal/infrastructure/persistence/models"
)

// TicketMapper handles the conversion between Ticket domain entities and persistence models.
type TicketMapper interface {
	// ToModel converts a ticket domain entity to a persistence model.
	ToModel(t *ticket.Ticket) *models.TicketModel

	// ToDomain converts a ticket persistence model to a domain entity.
	ToDomain(model *models.TicketModel) (*ticket.Ticket, error)

	// CommentToModel converts a comment domain entity to a persistence model.
	CommentToModel(c *ticket.Comment) *models.CommentModel

	// CommentToDomain converts a comment persistence model to a domain entity.
	CommentToDomain(model *models.CommentModel) (*ticket.Comment, error)

	// AttachmentToModel converts an attachment domain entity to a persistence model.
	AttachmentToModel(a *ticket.Attachment) *models.AttachmentModel

	// AttachmentToDomain converts an attachment persistence model to a domain entity.
	AttachmentToDomain(model *models.AttachmentModel) (*ticket.Attachment, error)
}

// TicketMapperImpl is the concrete implementation of TicketMapper.
type TicketMapperImpl struct{}

// NewTicketMapper creates a new TicketMapper.
func NewTicketMapper() TicketMapper {
	return &TicketMapperImpl{}
}

// ToModel converts a ticket domain entity to a persistence model.
func (m *TicketMapperImpl) ToModel(t *ticket.Ticket) *models.TicketModel {
	return &models.TicketModel{
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
	}
}

// ToDomain converts a ticket persistence model to a domain entity.
// Comments must be loaded separately by the repository.
func (m *TicketMapperImpl) ToDomain(model *models.TicketModel) (*ticket.Ticket, error) {
	priority, err := vo.NewPriority(model.Priority)
	if err != nil {
		return nil, err
	}
	status, err := vo.NewTicketStatus(model.Status)
	if err != nil {
		return nil, err
	}

	return ticket.ReconstructTicket(
		model.ID,
		model.Number,
		model.Title,
		model.Description,
		model.CategoryID,
		priority,
		status,
		model.CreatorID,
		model.AssigneeID,
		model.Location,
		model.Department,
		model.CreatedAt,
		model.UpdatedAt,
		model.ClosedAt,
	)
}

// CommentToModel converts a comment domain entity to a persistence model.
func (m *TicketMapperImpl) CommentToModel(c *ticket.Comment) *models.CommentModel {
	return &models.CommentModel{
		ID:         c.ID(),
		TicketID:   c.TicketID(),
		UserID:     c.UserID(),
		Content:    c.Content(),
		IsInternal: c.IsInternal(),
		CreatedAt:  c.CreatedAt(),
		UpdatedAt:  c.UpdatedAt(),
	}
}

// CommentToDomain converts a comment persistence model to a domain entity.
func (m *TicketMapperImpl) CommentToDomain(model *models.CommentModel) (*ticket.Comment, error) {
	return ticket.ReconstructComment(
		model.ID,
		model.TicketID,
		model.UserID,
		model.Content,
		model.IsInternal,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

// AttachmentToModel converts an attachment domain entity to a persistence model.
func (m *TicketMapperImpl) AttachmentToModel(a *ticket.Attachment) *models.AttachmentModel {
	return &models.AttachmentModel{
		ID:          a.ID(),
		TicketID:    a.TicketID(),
		UploaderID:  a.UploaderID(),
		Filename:    a.Filename(),
		StoragePath: a.StoragePath(),
		ContentType: a.ContentType(),
		SizeBytes:   a.SizeBytes(),
		CreatedAt:   a.CreatedAt(),
	}
}

// AttachmentToDomain converts an attachment persistence model to a domain entity.
func (m *TicketMapperImpl) AttachmentToDomain(model *models.AttachmentModel) (*ticket.Attachment, error) {
	return ticket.ReconstructAttachment(
		model.ID,
		model.TicketID,
		model.UploaderID,
		model.Filename,
		model.StoragePath,
		model.ContentType,
		model.SizeBytes,
		model.CreatedAt,
	)
}
