package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"derbydesk/internal/domain/audit"
	"derbydesk/internal/domain/ticket"
	vo "derbydesk/internal/domain/ticket/valueobjects"
	"derbydesk/internal/shared/authorization"
	"derbydesk/internal/shared/errors"
)

func TestGetTicketUseCase_Execute_ByID(t *testing.T) {
	tkt := testTicket(t, 10, 7, nil, vo.StatusOpen)
	mockRepo := &mockTicketRepository{
		GetByIDFunc: func(ctx context.Context, ticketID uint) (*ticket.Ticket, error) {
			require.Equal(t, uint(10), ticketID)
			return tkt, nil
		},
	}

	uc := NewGetTicketUseCase(mockRepo, &mockAttachmentRepository{}, &mockAuditRecorder{}, &mockLogger{})

	result, err := uc.Execute(context.Background(), GetTicketQuery{
		TicketID:   10,
		ViewerID:   7,
		ViewerRole: authorization.RoleUser,
	})

	require.NoError(t, err)
	assert.Equal(t, uint(10), result.ID)
	assert.Equal(t, "T-20250601-0001", result.Number)
}

func TestGetTicketUseCase_Execute_ByNumber(t *testing.T) {
	tkt := testTicket(t, 10, 7, nil, vo.StatusOpen)
	mockRepo := &mockTicketRepository{
		GetByNumberFunc: func(ctx context.Context, number string) (*ticket.Ticket, error) {
			require.Equal(t, "T-20250601-0001", number)
			return tkt, nil
		},
	}

	uc := NewGetTicketUseCase(mockRepo, &mockAttachmentRepository{}, &mockAuditRecorder{}, &mockLogger{})

	result, err := uc.Execute(context.Background(), GetTicketQuery{
		Number:      "T-20250601-0001",
		ViewerID:    99,
		ViewerRole:  authorization.RoleAdmin,
		ViewerStaff: true,
	})

	require.NoError(t, err)
	assert.Equal(t, "T-20250601-0001", result.Number)
}

func TestGetTicketUseCase_Execute_ForbiddenLooksLikeNotFound(t *testing.T) {
	tkt := testTicket(t, 10, 7, nil, vo.StatusOpen)
	mockRepo := &mockTicketRepository{
		GetByIDFunc: func(ctx context.Context, ticketID uint) (*ticket.Ticket, error) {
			return tkt, nil
		},
	}

	uc := NewGetTicketUseCase(mockRepo, &mockAttachmentRepository{}, &mockAuditRecorder{}, &mockLogger{})

	result, err := uc.Execute(context.Background(), GetTicketQuery{
		TicketID:   10,
		ViewerID:   42, // neither creator nor assignee
		ViewerRole: authorization.RoleUser,
	})

	assert.Nil(t, result)
	assert.True(t, errors.IsNotFoundError(err))
}

func TestGetTicketUseCase_Execute_AssigneeCanView(t *testing.T) {
	assignee := uint(42)
	tkt := testTicket(t, 10, 7, &assignee, vo.StatusInProgress)
	mockRepo := &mockTicketRepository{
		GetByIDFunc: func(ctx context.Context, ticketID uint) (*ticket.Ticket, error) {
			return tkt, nil
		},
	}

	uc := NewGetTicketUseCase(mockRepo, &mockAttachmentRepository{}, &mockAuditRecorder{}, &mockLogger{})

	result, err := uc.Execute(context.Background(), GetTicketQuery{
		TicketID:   10,
		ViewerID:   42,
		ViewerRole: authorization.RoleUser,
	})

	require.NoError(t, err)
	assert.Equal(t, uint(10), result.ID)
}

func TestGetTicketUseCase_Execute_InternalCommentsHiddenFromNonStaff(t *testing.T) {
	tkt := testTicket(t, 10, 7, nil, vo.StatusOpen)

	publicComment, err := ticket.NewComment(10, 7, "Any update on this?", false)
	require.NoError(t, err)
	internalComment, err := ticket.NewComment(10, 3, "Vendor quote attached", true)
	require.NoError(t, err)
	require.NoError(t, tkt.AddComment(publicComment))
	require.NoError(t, tkt.AddComment(internalComment))

	mockRepo := &mockTicketRepository{
		GetByIDFunc: func(ctx context.Context, ticketID uint) (*ticket.Ticket, error) {
			return tkt, nil
		},
	}
	uc := NewGetTicketUseCase(mockRepo, &mockAttachmentRepository{}, &mockAuditRecorder{}, &mockLogger{})

	asCreator, err := uc.Execute(context.Background(), GetTicketQuery{
		TicketID:   10,
		ViewerID:   7,
		ViewerRole: authorization.RoleUser,
	})
	require.NoError(t, err)
	require.Len(t, asCreator.Comments, 1)
	assert.Equal(t, "Any update on this?", asCreator.Comments[0].Content)

	asStaff, err := uc.Execute(context.Background(), GetTicketQuery{
		TicketID:    10,
		ViewerID:    3,
		ViewerRole:  authorization.RoleAdmin,
		ViewerStaff: true,
	})
	require.NoError(t, err)
	assert.Len(t, asStaff.Comments, 2)
}

func TestGetTicketUseCase_Execute_RecordsViewAudit(t *testing.T) {
	tkt := testTicket(t, 10, 7, nil, vo.StatusOpen)
	mockRepo := &mockTicketRepository{
		GetByIDFunc: func(ctx context.Context, ticketID uint) (*ticket.Ticket, error) {
			return tkt, nil
		},
	}
	auditRec := &mockAuditRecorder{}
	uc := NewGetTicketUseCase(mockRepo, &mockAttachmentRepository{}, auditRec, &mockLogger{})

	_, err := uc.Execute(context.Background(), GetTicketQuery{
		TicketID:   10,
		ViewerID:   7,
		ViewerRole: authorization.RoleUser,
	})

	require.NoError(t, err)
	require.Len(t, auditRec.Records, 1)
	assert.Equal(t, audit.ActionTicketViewed, auditRec.Records[0].Action)
	assert.Equal(t, "ticket", auditRec.Records[0].EntityType)
	assert.Equal(t, uint(10), auditRec.Records[0].EntityID)
	require.NotNil(t, auditRec.Records[0].ActorID)
	assert.Equal(t, uint(7), *auditRec.Records[0].ActorID)
}

func TestGetTicketUseCase_Execute_NoAuditOnDeniedView(t *testing.T) {
	tkt := testTicket(t, 10, 7, nil, vo.StatusOpen)
	mockRepo := &mockTicketRepository{
		GetByIDFunc: func(ctx context.Context, ticketID uint) (*ticket.Ticket, error) {
			return tkt, nil
		},
	}
	auditRec := &mockAuditRecorder{}
	uc := NewGetTicketUseCase(mockRepo, &mockAttachmentRepository{}, auditRec, &mockLogger{})

	_, err := uc.Execute(context.Background(), GetTicketQuery{
		TicketID:   10,
		ViewerID:   42,
		ViewerRole: authorization.RoleUser,
	})

	assert.True(t, errors.IsNotFoundError(err))
	assert.Empty(t, auditRec.Records)
}

func TestGetTicketUseCase_Execute_MissingIdentifier(t *testing.T) {
	uc := NewGetTicketUseCase(&mockTicketRepository{}, &mockAttachmentRepository{}, &mockAuditRecorder{}, &mockLogger{})

	result, err := uc.Execute(context.Background(), GetTicketQuery{})

	assert.Nil(t, result)
	assert.True(t, errors.IsValidationError(err))
}
