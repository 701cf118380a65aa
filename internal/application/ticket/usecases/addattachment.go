package usecases

import (
	"context"
	"io"

	"derbydesk/internal/domain/ticket"
	"derbydesk/internal/shared/authorization"
	"derbydesk/internal/shared/errors"
	"derbydesk/internal/shared/logger"
)

// FileStore persists attachment content outside the database.
type FileStore interface {
	Save(ticketID uint, filename string, r io.Reader) (storagePath string, size int64, err error)
	Delete(storagePath string) error
}

type AddAttachmentCommand struct {
	TicketID    uint
	Filename    string
	ContentType string
	Content     io.Reader

	ActorID    uint
	ActorRole  authorization.UserRole
	ActorStaff bool
}

type AddAttachmentResult struct {
	AttachmentID uint
	Filename     string
	SizeBytes    int64
}

type AddAttachmentUseCase struct {
	ticketRepo     ticket.TicketRepository
	attachmentRepo ticket.AttachmentRepository
	fileStore      FileStore
	logger         logger.Interface
}

func NewAddAttachmentUseCase(
	ticketRepo ticket.TicketRepository,
	attachmentRepo ticket.AttachmentRepository,
	fileStore FileStore,
	logger logger.Interface,
) *AddAttachmentUseCase {
	return &AddAttachmentUseCase{
		ticketRepo:     ticketRepo,
		attachmentRepo: attachmentRepo,
		fileStore:      fileStore,
		logger:         logger,
	}
}

func (uc *AddAttachmentUseCase) Execute(ctx context.Context, cmd AddAttachmentCommand) (*AddAttachmentResult, error) {
	t, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID)
	if err != nil {
		return nil, err
	}

	if !authorization.CanAccessTicket(cmd.ActorID, cmd.ActorRole, cmd.ActorStaff, t) {
		return nil, errors.NewNotFoundError("ticket not found")
	}

	storagePath, size, err := uc.fileStore.Save(t.ID(), cmd.Filename, cmd.Content)
	if err != nil {
		uc.logger.Errorw("failed to store attachment", "ticket_id", t.ID(), "filename", cmd.Filename, "error", err)
		return nil, errors.NewValidationError(err.Error())
	}

	attachment, err := ticket.NewAttachment(t.ID(), cmd.ActorID, cmd.Filename, storagePath, cmd.ContentType, size)
	if err != nil {
		// Content is already on disk; clean it up before failing
		if delErr := uc.fileStore.Delete(storagePath); delErr != nil {
			uc.logger.Warnw("failed to clean up orphaned attachment file", "path", storagePath, "error", delErr)
		}
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.attachmentRepo.Save(ctx, attachment); err != nil {
		uc.logger.Errorw("failed to save attachment record", "ticket_id", t.ID(), "error", err)
		if delErr := uc.fileStore.Delete(storagePath); delErr != nil {
			uc.logger.Warnw("failed to clean up orphaned attachment file", "path", storagePath, "error", delErr)
		}
		return nil, err
	}

	uc.logger.Infow("attachment added", "ticket_id", t.ID(), "attachment_id", attachment.ID(), "size", size)

	return &AddAttachmentResult{
		AttachmentID: attachment.ID(),
		Filename:     attachment.Filename(),
		SizeBytes:    size,
	}, nil
}
