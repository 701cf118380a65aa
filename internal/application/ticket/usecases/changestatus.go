package usecases

import (
	"context"

	"derbydesk/internal/domain/audit"
	"derbydesk/internal/domain/ticket"
	vo "derbydesk/internal/domain/ticket/valueobjects"
	"derbydesk/internal/domain/user"
	"derbydesk/internal/shared/authorization"
	"derbydesk/internal/shared/errors"
	"derbydesk/internal/shared/logger"
)

type ChangeStatusCommand struct {
	TicketID  uint
	NewStatus string

	ActorID    uint
	ActorRole  authorization.UserRole
	ActorStaff bool
	IPAddress  string
}

type ChangeStatusUseCase struct {
	ticketRepo ticket.TicketRepository
	userRepo   user.Repository
	notifier   Notifier
	auditRec   AuditRecorder
	logger     logger.Interface
}

func NewChangeStatusUseCase(
	ticketRepo ticket.TicketRepository,
	userRepo user.Repository,
	notifier Notifier,
	auditRec AuditRecorder,
	logger logger.Interface,
) *ChangeStatusUseCase {
	return &ChangeStatusUseCase{
		ticketRepo: ticketRepo,
		userRepo:   userRepo,
		notifier:   notifier,
		auditRec:   auditRec,
		logger:     logger,
	}
}

func (uc *ChangeStatusUseCase) Execute(ctx context.Context, cmd ChangeStatusCommand) error {
	newStatus, err := vo.NewTicketStatus(cmd.NewStatus)
	if err != nil {
		return errors.NewValidationError(err.Error())
	}

	t, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID)
	if err != nil {
		return err
	}

	if !authorization.CanAccessTicket(cmd.ActorID, cmd.ActorRole, cmd.ActorStaff, t) {
		return errors.NewNotFoundError("ticket not found")
	}

	oldStatus := t.Status()
	if err := t.ChangeStatus(newStatus); err != nil {
		return errors.NewValidationError(err.Error())
	}

	if err := uc.ticketRepo.Update(ctx, t); err != nil {
		uc.logger.Errorw("failed to save status change", "ticket_id", cmd.TicketID, "error", err)
		return err
	}

	actorID := cmd.ActorID
	uc.auditRec.Record(ctx, &actorID, audit.ActionTicketStatus, "ticket", t.ID(),
		map[string]any{"number": t.Number(), "from": oldStatus.String(), "to": newStatus.String()}, cmd.IPAddress)

	if oldStatus != newStatus {
		uc.notifyCreator(ctx, t, oldStatus.String(), newStatus.String())
	}

	uc.logger.Infow("ticket status changed",
		"ticket_id", t.ID(), "from", oldStatus.String(), "to", newStatus.String())
	return nil
}

func (uc *ChangeStatusUseCase) notifyCreator(ctx context.Context, t *ticket.Ticket, oldStatus, newStatus string) {
	creator, err := uc.userRepo.GetByID(ctx, t.CreatorID())
	if err != nil {
		uc.logger.Warnw("failed to load creator for notification", "creator_id", t.CreatorID(), "error", err)
		return
	}
	if err := uc.notifier.SendTicketStatusChanged(creator.Email(), t.Number(), t.Title(), oldStatus, newStatus); err != nil {
		uc.logger.Warnw("failed to send status change email", "number", t.Number(), "error", err)
	}
}
