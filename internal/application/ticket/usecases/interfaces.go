package usecases

import (
	"context"

	"derbydesk/internal/application/ticket/dto"
	"derbydesk/internal/domain/ticket"
)

// Notifier delivers email notifications for ticket events. Delivery
// failures never fail the owning use case.
type Notifier interface {
	SendTicketCreated(to, ticketNumber, title string) error
	SendTicketAssigned(to, ticketNumber, title string) error
	SendTicketStatusChanged(to, ticketNumber, title, oldStatus, newStatus string) error
	SendCommentAdded(to, ticketNumber, title, author string) error
}

// AuditRecorder records audit trail entries for ticket views and mutations.
type AuditRecorder interface {
	Record(ctx context.Context, actorID *uint, action, entityType string, entityID uint, detail map[string]any, ipAddress string)
}

type CreateTicketExecutor interface {
	Execute(ctx context.Context, cmd CreateTicketCommand) (*CreateTicketResult, error)
}

type GetTicketExecutor interface {
	Execute(ctx context.Context, query GetTicketQuery) (*dto.TicketDTO, error)
}

type ListTicketsExecutor interface {
	Execute(ctx context.Context, query ListTicketsQuery) (*ListTicketsResult, error)
}

type UpdateTicketExecutor interface {
	Execute(ctx context.Context, cmd UpdateTicketCommand) error
}

type AssignTicketExecutor interface {
	Execute(ctx context.Context, cmd AssignTicketCommand) error
}

type ChangeStatusExecutor interface {
	Execute(ctx context.Context, cmd ChangeStatusCommand) error
}

type AddCommentExecutor interface {
	Execute(ctx context.Context, cmd AddCommentCommand) (*AddCommentResult, error)
}

type AddAttachmentExecutor interface {
	Execute(ctx context.Context, cmd AddAttachmentCommand) (*AddAttachmentResult, error)
}

type DeleteTicketExecutor interface {
	Execute(ctx context.Context, cmd DeleteTicketCommand) error
}

type GetTicketStatsExecutor interface {
	Execute(ctx context.Context) (*TicketStats, error)
}

type GetAttachmentExecutor interface {
	Execute(ctx context.Context, query GetAttachmentQuery) (*ticket.Attachment, error)
}
