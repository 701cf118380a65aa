package usecases

import (
	"context"
	"time"

	"derbydesk/internal/domain/audit"
	"derbydesk/internal/domain/ticket"
	vo "derbydesk/internal/domain/ticket/valueobjects"
	"derbydesk/internal/domain/user"
	"derbydesk/internal/shared/errors"
	"derbydesk/internal/shared/logger"
)

// maxNumberAttempts bounds the retry loop for per-day number collisions.
const maxNumberAttempts = 3

type CreateTicketCommand struct {
	Title       string
	Description string
	CategoryID  *uint
	Priority    string
	CreatorID   uint
	Location    string
	Department  string
	IPAddress   string
}

type CreateTicketResult struct {
	TicketID  uint
	Number    string
	Status    string
	CreatedAt time.Time
}

type CreateTicketUseCase struct {
	ticketRepo ticket.TicketRepository
	userRepo   user.Repository
	numberGen  ticket.NumberGenerator
	notifier   Notifier
	auditRec   AuditRecorder
	logger     logger.Interface
}

func NewCreateTicketUseCase(
	ticketRepo ticket.TicketRepository,
	userRepo user.Repository,
	numberGen ticket.NumberGenerator,
	notifier Notifier,
	auditRec AuditRecorder,
	logger logger.Interface,
) *CreateTicketUseCase {
	return &CreateTicketUseCase{
		ticketRepo: ticketRepo,
		userRepo:   userRepo,
		numberGen:  numberGen,
		notifier:   notifier,
		auditRec:   auditRec,
		logger:     logger,
	}
}

func (uc *CreateTicketUseCase) Execute(ctx context.Context, cmd CreateTicketCommand) (*CreateTicketResult, error) {
	uc.logger.Infow("executing create ticket use case", "title", cmd.Title, "creator_id", cmd.CreatorID)

	priority, err := vo.NewPriority(cmd.Priority)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	// Daily sequence numbers come from a count, so two concurrent creates
	// can draw the same number; the unique index catches the loser and the
	// save is retried with a fresh number.
	var newTicket *ticket.Ticket
	for attempt := 1; ; attempt++ {
		newTicket, err = ticket.NewTicket(
			cmd.Title,
			cmd.Description,
			cmd.CategoryID,
			priority,
			cmd.CreatorID,
			cmd.Location,
			cmd.Department,
		)
		if err != nil {
			uc.logger.Errorw("failed to create ticket entity", "error", err)
			return nil, errors.NewValidationError(err.Error())
		}

		number, err := uc.numberGen.Generate(ctx)
		if err != nil {
			uc.logger.Errorw("failed to generate ticket number", "error", err)
			return nil, err
		}
		if err := newTicket.SetNumber(number); err != nil {
			return nil, err
		}

		err = uc.ticketRepo.Save(ctx, newTicket)
		if err == nil {
			break
		}
		if errors.IsDuplicateError(err) && attempt < maxNumberAttempts {
			uc.logger.Warnw("ticket number already taken, retrying", "number", number, "attempt", attempt)
			continue
		}
		uc.logger.Errorw("failed to save ticket", "error", err, "number", number)
		return nil, err
	}

	uc.logger.Infow("ticket created", "ticket_id", newTicket.ID(), "number", newTicket.Number())

	actorID := cmd.CreatorID
	uc.auditRec.Record(ctx, &actorID, audit.ActionTicketCreated, "ticket", newTicket.ID(),
		map[string]any{"number": newTicket.Number(), "priority": cmd.Priority}, cmd.IPAddress)

	uc.notifyCreator(ctx, newTicket)

	return &CreateTicketResult{
		TicketID:  newTicket.ID(),
		Number:    newTicket.Number(),
		Status:    newTicket.Status().String(),
		CreatedAt: newTicket.CreatedAt(),
	}, nil
}

func (uc *CreateTicketUseCase) notifyCreator(ctx context.Context, t *ticket.Ticket) {
	creator, err := uc.userRepo.GetByID(ctx, t.CreatorID())
	if err != nil {
		uc.logger.Warnw("failed to load creator for notification", "creator_id", t.CreatorID(), "error", err)
		return
	}
	if err := uc.notifier.SendTicketCreated(creator.Email(), t.Number(), t.Title()); err != nil {
		uc.logger.Warnw("failed to send ticket created email", "number", t.Number(), "error", err)
	}
}
