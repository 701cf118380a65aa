package usecases

import (
	"context"

	"derbydesk/internal/domain/audit"
	"derbydesk/internal/domain/ticket"
	"derbydesk/internal/domain/user"
	"derbydesk/internal/shared/errors"
	"derbydesk/internal/shared/logger"
)

type AssignTicketCommand struct {
	TicketID   uint
	AssigneeID *uint // nil unassigns

	ActorID   uint
	IPAddress string
}

type AssignTicketUseCase struct {
	ticketRepo ticket.TicketRepository
	userRepo   user.Repository
	notifier   Notifier
	auditRec   AuditRecorder
	logger     logger.Interface
}

func NewAssignTicketUseCase(
	ticketRepo ticket.TicketRepository,
	userRepo user.Repository,
	notifier Notifier,
	auditRec AuditRecorder,
	logger logger.Interface,
) *AssignTicketUseCase {
	return &AssignTicketUseCase{
		ticketRepo: ticketRepo,
		userRepo:   userRepo,
		notifier:   notifier,
		auditRec:   auditRec,
		logger:     logger,
	}
}

func (uc *AssignTicketUseCase) Execute(ctx context.Context, cmd AssignTicketCommand) error {
	t, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID)
	if err != nil {
		return err
	}

	var assignee *user.User
	if cmd.AssigneeID == nil {
		t.Unassign()
	} else {
		assignee, err = uc.userRepo.GetByID(ctx, *cmd.AssigneeID)
		if err != nil {
			return err
		}
		if !assignee.CanBeAssignedTickets() {
			return errors.NewValidationError("user cannot be assigned tickets")
		}
		if err := t.AssignTo(assignee.ID()); err != nil {
			return errors.NewValidationError(err.Error())
		}
	}

	if err := uc.ticketRepo.Update(ctx, t); err != nil {
		uc.logger.Errorw("failed to save assignment", "ticket_id", cmd.TicketID, "error", err)
		return err
	}

	detail := map[string]any{"number": t.Number()}
	if cmd.AssigneeID != nil {
		detail["assignee_id"] = *cmd.AssigneeID
	}
	actorID := cmd.ActorID
	uc.auditRec.Record(ctx, &actorID, audit.ActionTicketAssigned, "ticket", t.ID(), detail, cmd.IPAddress)

	if assignee != nil {
		if err := uc.notifier.SendTicketAssigned(assignee.Email(), t.Number(), t.Title()); err != nil {
			uc.logger.Warnw("failed to send assignment email", "number", t.Number(), "error", err)
		}
	}

	uc.logger.Infow("ticket assignment changed", "ticket_id", t.ID(), "assignee_id", cmd.AssigneeID)
	return nil
}
