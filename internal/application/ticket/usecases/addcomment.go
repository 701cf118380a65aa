package usecases

import (
	"context"
	"time"

	"derbydesk/internal/domain/audit"
	"derbydesk/internal/domain/ticket"
	"derbydesk/internal/domain/user"
	"derbydesk/internal/shared/authorization"
	"derbydesk/internal/shared/errors"
	"derbydesk/internal/shared/logger"
)

type AddCommentCommand struct {
	TicketID   uint
	Content    string
	IsInternal bool

	ActorID    uint
	ActorRole  authorization.UserRole
	ActorStaff bool
	IPAddress  string
}

type AddCommentResult struct {
	CommentID uint
	CreatedAt time.Time
}

type AddCommentUseCase struct {
	ticketRepo  ticket.TicketRepository
	commentRepo ticket.CommentRepository
	userRepo    user.Repository
	notifier    Notifier
	auditRec    AuditRecorder
	logger      logger.Interface
}

func NewAddCommentUseCase(
	ticketRepo ticket.TicketRepository,
	commentRepo ticket.CommentRepository,
	userRepo user.Repository,
	notifier Notifier,
	auditRec AuditRecorder,
	logger logger.Interface,
) *AddCommentUseCase {
	return &AddCommentUseCase{
		ticketRepo:  ticketRepo,
		commentRepo: commentRepo,
		userRepo:    userRepo,
		notifier:    notifier,
		auditRec:    auditRec,
		logger:      logger,
	}
}

func (uc *AddCommentUseCase) Execute(ctx context.Context, cmd AddCommentCommand) (*AddCommentResult, error) {
	t, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID)
	if err != nil {
		return nil, err
	}

	if !authorization.CanAccessTicket(cmd.ActorID, cmd.ActorRole, cmd.ActorStaff, t) {
		return nil, errors.NewNotFoundError("ticket not found")
	}
	if cmd.IsInternal && !cmd.ActorStaff {
		return nil, errors.NewForbiddenError("only staff may add internal comments")
	}

	comment, err := ticket.NewComment(t.ID(), cmd.ActorID, cmd.Content, cmd.IsInternal)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.commentRepo.Save(ctx, comment); err != nil {
		uc.logger.Errorw("failed to save comment", "ticket_id", t.ID(), "error", err)
		return nil, err
	}

	actorID := cmd.ActorID
	uc.auditRec.Record(ctx, &actorID, audit.ActionCommentAdded, "ticket", t.ID(),
		map[string]any{"number": t.Number(), "comment_id": comment.ID(), "internal": cmd.IsInternal}, cmd.IPAddress)

	// Internal comments are invisible to the creator so no mail goes out
	if !cmd.IsInternal {
		uc.notifyParticipants(ctx, t, cmd.ActorID)
	}

	uc.logger.Infow("comment added", "ticket_id", t.ID(), "comment_id", comment.ID())

	return &AddCommentResult{
		CommentID: comment.ID(),
		CreatedAt: comment.CreatedAt(),
	}, nil
}

// notifyParticipants emails the creator and current assignee, skipping
// whoever wrote the comment.
func (uc *AddCommentUseCase) notifyParticipants(ctx context.Context, t *ticket.Ticket, authorID uint) {
	author, err := uc.userRepo.GetByID(ctx, authorID)
	if err != nil {
		uc.logger.Warnw("failed to load comment author", "user_id", authorID, "error", err)
		return
	}

	recipientIDs := make([]uint, 0, 2)
	if t.CreatorID() != authorID {
		recipientIDs = append(recipientIDs, t.CreatorID())
	}
	if assigneeID := t.AssigneeID(); assigneeID != nil && *assigneeID != authorID && *assigneeID != t.CreatorID() {
		recipientIDs = append(recipientIDs, *assigneeID)
	}

	for _, id := range recipientIDs {
		recipient, err := uc.userRepo.GetByID(ctx, id)
		if err != nil {
			uc.logger.Warnw("failed to load comment recipient", "user_id", id, "error", err)
			continue
		}
		if err := uc.notifier.SendCommentAdded(recipient.Email(), t.Number(), t.Title(), author.DisplayName()); err != nil {
			uc.logger.Warnw("failed to send comment email", "number", t.Number(), "error", err)
		}
	}
}
