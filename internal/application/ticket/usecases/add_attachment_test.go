package usecases

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"derbydesk/internal/domain/ticket"
	vo "derbydesk/internal/domain/ticket/valueobjects"
	"derbydesk/internal/shared/authorization"

	apperrors "derbydesk/internal/shared/errors"
)

func TestAddAttachmentUseCase_Execute_Success(t *testing.T) {
	tkt := testTicket(t, 10, 7, nil, vo.StatusOpen)
	mockRepo := &mockTicketRepository{
		GetByIDFunc: func(ctx context.Context, ticketID uint) (*ticket.Ticket, error) {
			return tkt, nil
		},
	}

	var saved *ticket.Attachment
	mockAttachments := &mockAttachmentRepository{
		SaveFunc: func(ctx context.Context, a *ticket.Attachment) error {
			require.NoError(t, a.SetID(9))
			saved = a
			return nil
		},
	}
	store := &mockFileStore{
		SaveFunc: func(ticketID uint, filename string, r io.Reader) (string, int64, error) {
			content, err := io.ReadAll(r)
			require.NoError(t, err)
			return "10/photo.jpg", int64(len(content)), nil
		},
	}

	uc := NewAddAttachmentUseCase(mockRepo, mockAttachments, store, &mockLogger{})

	result, err := uc.Execute(context.Background(), AddAttachmentCommand{
		TicketID:    10,
		Filename:    "photo.jpg",
		ContentType: "image/jpeg",
		Content:     strings.NewReader("fake image bytes"),
		ActorID:     7,
		ActorRole:   authorization.RoleUser,
	})

	require.NoError(t, err)
	assert.Equal(t, uint(9), result.AttachmentID)
	assert.Equal(t, int64(16), result.SizeBytes)

	require.NotNil(t, saved)
	assert.Equal(t, "10/photo.jpg", saved.StoragePath())
	assert.Equal(t, uint(7), saved.UploaderID())
}

func TestAddAttachmentUseCase_Execute_RepoFailureCleansUpFile(t *testing.T) {
	tkt := testTicket(t, 10, 7, nil, vo.StatusOpen)
	mockRepo := &mockTicketRepository{
		GetByIDFunc: func(ctx context.Context, ticketID uint) (*ticket.Ticket, error) {
			return tkt, nil
		},
	}
	mockAttachments := &mockAttachmentRepository{
		SaveFunc: func(ctx context.Context, a *ticket.Attachment) error {
			return errors.New("db gone")
		},
	}
	store := &mockFileStore{
		SaveFunc: func(ticketID uint, filename string, r io.Reader) (string, int64, error) {
			return "10/photo.jpg", 16, nil
		},
	}

	uc := NewAddAttachmentUseCase(mockRepo, mockAttachments, store, &mockLogger{})

	result, err := uc.Execute(context.Background(), AddAttachmentCommand{
		TicketID:    10,
		Filename:    "photo.jpg",
		ContentType: "image/jpeg",
		Content:     strings.NewReader("fake image bytes"),
		ActorID:     7,
		ActorRole:   authorization.RoleUser,
	})

	assert.Error(t, err)
	assert.Nil(t, result)
	assert.Equal(t, []string{"10/photo.jpg"}, store.Deleted)
}

func TestAddAttachmentUseCase_Execute_OutsiderDenied(t *testing.T) {
	tkt := testTicket(t, 10, 7, nil, vo.StatusOpen)
	mockRepo := &mockTicketRepository{
		GetByIDFunc: func(ctx context.Context, ticketID uint) (*ticket.Ticket, error) {
			return tkt, nil
		},
	}
	storeCalled := false
	store := &mockFileStore{
		SaveFunc: func(ticketID uint, filename string, r io.Reader) (string, int64, error) {
			storeCalled = true
			return "", 0, nil
		},
	}

	uc := NewAddAttachmentUseCase(mockRepo, &mockAttachmentRepository{}, store, &mockLogger{})

	result, err := uc.Execute(context.Background(), AddAttachmentCommand{
		TicketID:  10,
		Filename:  "photo.jpg",
		Content:   strings.NewReader("x"),
		ActorID:   42,
		ActorRole: authorization.RoleUser,
	})

	assert.Nil(t, result)
	assert.True(t, apperrors.IsNotFoundError(err))
	assert.False(t, storeCalled)
}
