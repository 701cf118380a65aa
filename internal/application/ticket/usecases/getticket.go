package usecases

import (
	"context"

	"derbydesk/internal/application/ticket/dto"
	"derbydesk/internal/domain/audit"
	"derbydesk/internal/domain/ticket"
	"derbydesk/internal/shared/authorization"
	"derbydesk/internal/shared/errors"
	"derbydesk/internal/shared/logger"
)

type GetTicketQuery struct {
	TicketID uint
	Number   string

	ViewerID    uint
	ViewerRole  authorization.UserRole
	ViewerStaff bool
	IPAddress   string
}

type GetTicketUseCase struct {
	ticketRepo     ticket.TicketRepository
	attachmentRepo ticket.AttachmentRepository
	auditRec       AuditRecorder
	logger         logger.Interface
}

func NewGetTicketUseCase(
	ticketRepo ticket.TicketRepository,
	attachmentRepo ticket.AttachmentRepository,
	auditRec AuditRecorder,
	logger logger.Interface,
) *GetTicketUseCase {
	return &GetTicketUseCase{
		ticketRepo:     ticketRepo,
		attachmentRepo: attachmentRepo,
		auditRec:       auditRec,
		logger:         logger,
	}
}

func (uc *GetTicketUseCase) Execute(ctx context.Context, query GetTicketQuery) (*dto.TicketDTO, error) {
	var (
		t   *ticket.Ticket
		err error
	)

	switch {
	case query.Number != "":
		t, err = uc.ticketRepo.GetByNumber(ctx, query.Number)
	case query.TicketID != 0:
		t, err = uc.ticketRepo.GetByID(ctx, query.TicketID)
	default:
		return nil, errors.NewValidationError("ticket id or number is required")
	}
	if err != nil {
		return nil, err
	}

	if !authorization.CanAccessTicket(query.ViewerID, query.ViewerRole, query.ViewerStaff, t) {
		// Hide existence from users without access
		return nil, errors.NewNotFoundError("ticket not found")
	}

	attachments, err := uc.attachmentRepo.GetByTicketID(ctx, t.ID())
	if err != nil {
		uc.logger.Errorw("failed to load attachments", "ticket_id", t.ID(), "error", err)
		return nil, err
	}

	viewerID := query.ViewerID
	uc.auditRec.Record(ctx, &viewerID, audit.ActionTicketViewed, "ticket", t.ID(),
		map[string]any{"number": t.Number()}, query.IPAddress)

	return dto.ToTicketDTO(t, attachments, query.ViewerStaff), nil
}
