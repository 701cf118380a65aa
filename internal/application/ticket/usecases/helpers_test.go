package usecases

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"derbydesk/internal/domain/ticket"
	vo "derbydesk/internal/domain/ticket/valueobjects"
	"derbydesk/internal/domain/user"
	"derbydesk/internal/shared/authorization"
)

func testTicket(t *testing.T, id uint, creatorID uint, assigneeID *uint, status vo.TicketStatus) *ticket.Ticket {
	t.Helper()

	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	var closedAt *time.Time
	if status == vo.StatusClosed {
		closed := now.Add(time.Hour)
		closedAt = &closed
	}

	tkt, err := ticket.ReconstructTicket(
		id,
		"T-20250601-0001",
		"Projector not working",
		"The projector in room 204 does not turn on.",
		nil,
		vo.PriorityMedium,
		status,
		creatorID,
		assigneeID,
		"Room 204",
		"Facilities",
		now, now,
		closedAt,
	)
	require.NoError(t, err)
	return tkt
}

func testUser(t *testing.T, id uint, role authorization.UserRole, active bool) *user.User {
	t.Helper()

	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	isStaff := role == authorization.RoleAdmin
	u, err := user.ReconstructUser(
		id,
		"someone",
		"someone@example.com",
		"Someone",
		"$2a$12$hash",
		role,
		isStaff,
		active,
		nil,
		user.Profile{},
		now, now,
	)
	require.NoError(t, err)
	return u
}
