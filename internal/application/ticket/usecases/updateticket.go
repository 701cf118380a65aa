package usecases

import (
	"context"

	"derbydesk/internal/domain/audit"
	"derbydesk/internal/domain/ticket"
	vo "derbydesk/internal/domain/ticket/valueobjects"
	"derbydesk/internal/shared/authorization"
	"derbydesk/internal/shared/errors"
	"derbydesk/internal/shared/logger"
)

type UpdateTicketCommand struct {
	TicketID    uint
	Title       string
	Description string
	CategoryID  *uint
	Priority    string
	Location    string
	Department  string

	ActorID    uint
	ActorRole  authorization.UserRole
	ActorStaff bool
	IPAddress  string
}

type UpdateTicketUseCase struct {
	ticketRepo ticket.TicketRepository
	auditRec   AuditRecorder
	logger     logger.Interface
}

func NewUpdateTicketUseCase(
	ticketRepo ticket.TicketRepository,
	auditRec AuditRecorder,
	logger logger.Interface,
) *UpdateTicketUseCase {
	return &UpdateTicketUseCase{
		ticketRepo: ticketRepo,
		auditRec:   auditRec,
		logger:     logger,
	}
}

func (uc *UpdateTicketUseCase) Execute(ctx context.Context, cmd UpdateTicketCommand) error {
	t, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID)
	if err != nil {
		return err
	}

	if !authorization.CanAccessTicket(cmd.ActorID, cmd.ActorRole, cmd.ActorStaff, t) {
		return errors.NewNotFoundError("ticket not found")
	}
	// Only staff or the creator may edit ticket details
	if !cmd.ActorStaff && t.CreatorID() != cmd.ActorID {
		return errors.NewForbiddenError("not allowed to edit this ticket")
	}

	priority, err := vo.NewPriority(cmd.Priority)
	if err != nil {
		return errors.NewValidationError(err.Error())
	}

	if err := t.UpdateDetails(cmd.Title, cmd.Description, cmd.CategoryID, priority, cmd.Location, cmd.Department); err != nil {
		return errors.NewValidationError(err.Error())
	}

	if err := uc.ticketRepo.Update(ctx, t); err != nil {
		uc.logger.Errorw("failed to update ticket", "ticket_id", cmd.TicketID, "error", err)
		return err
	}

	actorID := cmd.ActorID
	uc.auditRec.Record(ctx, &actorID, audit.ActionTicketUpdated, "ticket", t.ID(),
		map[string]any{"number": t.Number()}, cmd.IPAddress)

	uc.logger.Infow("ticket updated", "ticket_id", t.ID(), "number", t.Number())
	return nil
}
