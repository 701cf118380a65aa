package usecases

import (
	"context"

	"derbydesk/internal/domain/ticket"
	"derbydesk/internal/shared/authorization"
	"derbydesk/internal/shared/errors"
	"derbydesk/internal/shared/logger"
)

type GetAttachmentQuery struct {
	AttachmentID uint

	ViewerID    uint
	ViewerRole  authorization.UserRole
	ViewerStaff bool
}

// GetAttachmentUseCase resolves an attachment for download, applying the
// same visibility rule as the owning ticket.
type GetAttachmentUseCase struct {
	ticketRepo     ticket.TicketRepository
	attachmentRepo ticket.AttachmentRepository
	logger         logger.Interface
}

func NewGetAttachmentUseCase(
	ticketRepo ticket.TicketRepository,
	attachmentRepo ticket.AttachmentRepository,
	logger logger.Interface,
) *GetAttachmentUseCase {
	return &GetAttachmentUseCase{
		ticketRepo:     ticketRepo,
		attachmentRepo: attachmentRepo,
		logger:         logger,
	}
}

func (uc *GetAttachmentUseCase) Execute(ctx context.Context, query GetAttachmentQuery) (*ticket.Attachment, error) {
	attachment, err := uc.attachmentRepo.GetByID(ctx, query.AttachmentID)
	if err != nil {
		return nil, err
	}

	t, err := uc.ticketRepo.GetByID(ctx, attachment.TicketID())
	if err != nil {
		return nil, err
	}

	if !authorization.CanAccessTicket(query.ViewerID, query.ViewerRole, query.ViewerStaff, t) {
		// Hide existence from users without access
		return nil, errors.NewNotFoundError("attachment not found")
	}

	return attachment, nil
}
