package usecases

import (
	"context"

	"derbydesk/internal/domain/audit"
	"derbydesk/internal/domain/ticket"
	"derbydesk/internal/shared/logger"
)

// Transactor runs a function inside a database transaction; repositories
// called through the wrapped context join it.
type Transactor interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// TicketFileStore removes every stored file belonging to a ticket.
type TicketFileStore interface {
	DeleteTicket(ticketID uint) error
}

type DeleteTicketCommand struct {
	TicketID uint

	ActorID   uint
	IPAddress string
}

// DeleteTicketUseCase removes a ticket together with its comments and
// attachments. The row deletes run in one transaction; file cleanup
// happens after commit and is best-effort.
type DeleteTicketUseCase struct {
	ticketRepo     ticket.TicketRepository
	commentRepo    ticket.CommentRepository
	attachmentRepo ticket.AttachmentRepository
	fileStore      TicketFileStore
	tx             Transactor
	auditRec       AuditRecorder
	logger         logger.Interface
}

func NewDeleteTicketUseCase(
	ticketRepo ticket.TicketRepository,
	commentRepo ticket.CommentRepository,
	attachmentRepo ticket.AttachmentRepository,
	fileStore TicketFileStore,
	tx Transactor,
	auditRec AuditRecorder,
	logger logger.Interface,
) *DeleteTicketUseCase {
	return &DeleteTicketUseCase{
		ticketRepo:     ticketRepo,
		commentRepo:    commentRepo,
		attachmentRepo: attachmentRepo,
		fileStore:      fileStore,
		tx:             tx,
		auditRec:       auditRec,
		logger:         logger,
	}
}

func (uc *DeleteTicketUseCase) Execute(ctx context.Context, cmd DeleteTicketCommand) error {
	t, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID)
	if err != nil {
		return err
	}

	err = uc.tx.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.commentRepo.DeleteByTicketID(txCtx, t.ID()); err != nil {
			return err
		}
		if err := uc.attachmentRepo.DeleteByTicketID(txCtx, t.ID()); err != nil {
			return err
		}
		return uc.ticketRepo.Delete(txCtx, t.ID())
	})
	if err != nil {
		uc.logger.Errorw("failed to delete ticket", "ticket_id", cmd.TicketID, "error", err)
		return err
	}

	if err := uc.fileStore.DeleteTicket(t.ID()); err != nil {
		uc.logger.Warnw("failed to remove attachment files of deleted ticket",
			"ticket_id", t.ID(), "error", err)
	}

	actorID := cmd.ActorID
	uc.auditRec.Record(ctx, &actorID, audit.ActionTicketDeleted, "ticket", t.ID(),
		map[string]any{"number": t.Number()}, cmd.IPAddress)

	uc.logger.Infow("ticket deleted", "ticket_id", t.ID(), "number", t.Number())
	return nil
}
