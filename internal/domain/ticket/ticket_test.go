package ticket

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "derbydesk/internal/domain/ticket/valueobjects"
)

// newValidTicket creates a ticket with sensible defaults for testing.
func newValidTicket(t *testing.T) *Ticket {
	t.Helper()
	tk, err := NewTicket("Test ticket", "Detailed description", nil, vo.PriorityMedium, 1, "", "")
	require.NoError(t, err)
	return tk
}

// reconstructedTicket builds a persisted-style ticket via ReconstructTicket.
func reconstructedTicket(t *testing.T, status vo.TicketStatus) *Ticket {
	t.Helper()
	now := time.Now().UTC()
	tk, err := ReconstructTicket(
		1, "T-20250601-0001",
		"Persisted ticket", "desc",
		nil,
		vo.PriorityHigh,
		status,
		10,  // creatorID
		nil, // assigneeID
		"Building A", "Facilities",
		now, now,
		nil, // closedAt
	)
	require.NoError(t, err)
	return tk
}

func TestNewTicket_ValidInput(t *testing.T) {
	catID := uint(3)

	tests := []struct {
		name    string
		title   string
		desc    string
		cat     *uint
		pri     vo.Priority
		creator uint
	}{
		{
			name:  "all valid fields - low",
			title: "Login page broken", desc: "Cannot log in after update",
			cat: nil, pri: vo.PriorityLow, creator: 1,
		},
		{
			name:  "with category - urgent",
			title: "Server room overheating", desc: "AC unit failed",
			cat: &catID, pri: vo.PriorityUrgent, creator: 42,
		},
		{
			name:  "boundary title length 200",
			title: strings.Repeat("a", 200), desc: "desc",
			cat: nil, pri: vo.PriorityMedium, creator: 5,
		},
		{
			name:  "boundary description length 10000",
			title: "Title", desc: strings.Repeat("d", 10000),
			cat: nil, pri: vo.PriorityHigh, creator: 7,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tk, err := NewTicket(tc.title, tc.desc, tc.cat, tc.pri, tc.creator, "HQ", "IT")
			require.NoError(t, err)
			require.NotNil(t, tk)

			assert.Equal(t, tc.title, tk.Title())
			assert.Equal(t, tc.desc, tk.Description())
			assert.Equal(t, tc.cat, tk.CategoryID())
			assert.Equal(t, tc.pri, tk.Priority())
			assert.Equal(t, tc.creator, tk.CreatorID())
			assert.Equal(t, vo.StatusOpen, tk.Status(), "new ticket must start open")
			assert.Nil(t, tk.AssigneeID())
			assert.Nil(t, tk.ClosedAt())
			assert.Equal(t, "HQ", tk.Location())
			assert.Equal(t, "IT", tk.Department())
		})
	}
}

func TestNewTicket_InvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		desc    string
		pri     vo.Priority
		creator uint
	}{
		{"empty title", "", "desc", vo.PriorityLow, 1},
		{"title too long", strings.Repeat("a", 201), "desc", vo.PriorityLow, 1},
		{"empty description", "Title", "", vo.PriorityLow, 1},
		{"description too long", "Title", strings.Repeat("d", 10001), vo.PriorityLow, 1},
		{"invalid priority", "Title", "desc", vo.Priority("critical"), 1},
		{"zero creator", "Title", "desc", vo.PriorityLow, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tk, err := NewTicket(tc.title, tc.desc, nil, tc.pri, tc.creator, "", "")
			assert.Error(t, err)
			assert.Nil(t, tk)
		})
	}
}

func TestTicket_SetIDAndNumber(t *testing.T) {
	tk := newValidTicket(t)

	require.NoError(t, tk.SetID(7))
	assert.Equal(t, uint(7), tk.ID())
	assert.Error(t, tk.SetID(8), "ID can only be set once")

	require.NoError(t, tk.SetNumber("T-20250601-0042"))
	assert.Equal(t, "T-20250601-0042", tk.Number())
	assert.Error(t, tk.SetNumber("T-20250601-0043"), "number can only be set once")
}

func TestTicket_ChangeStatus(t *testing.T) {
	// Any status can move to any other status
	tests := []struct {
		name string
		from vo.TicketStatus
		to   vo.TicketStatus
	}{
		{"open to in_progress", vo.StatusOpen, vo.StatusInProgress},
		{"open to closed", vo.StatusOpen, vo.StatusClosed},
		{"in_progress to open", vo.StatusInProgress, vo.StatusOpen},
		{"in_progress to closed", vo.StatusInProgress, vo.StatusClosed},
		{"closed to open", vo.StatusClosed, vo.StatusOpen},
		{"closed to in_progress", vo.StatusClosed, vo.StatusInProgress},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tk := reconstructedTicket(t, tc.from)
			require.NoError(t, tk.ChangeStatus(tc.to))
			assert.Equal(t, tc.to, tk.Status())
		})
	}
}

func TestTicket_ChangeStatus_ClosedAt(t *testing.T) {
	tk := reconstructedTicket(t, vo.StatusOpen)

	require.NoError(t, tk.ChangeStatus(vo.StatusClosed))
	require.NotNil(t, tk.ClosedAt(), "closing must record the close time")

	require.NoError(t, tk.ChangeStatus(vo.StatusOpen))
	assert.Nil(t, tk.ClosedAt(), "reopening must clear the close time")
}

func TestTicket_ChangeStatus_Invalid(t *testing.T) {
	tk := reconstructedTicket(t, vo.StatusOpen)
	assert.Error(t, tk.ChangeStatus(vo.TicketStatus("resolved")))
	assert.Equal(t, vo.StatusOpen, tk.Status())
}

func TestTicket_ChangeStatus_NoOp(t *testing.T) {
	tk := reconstructedTicket(t, vo.StatusClosed)
	closedBefore := tk.ClosedAt()

	require.NoError(t, tk.ChangeStatus(vo.StatusClosed))
	assert.Equal(t, closedBefore, tk.ClosedAt(), "re-closing must not touch the close time")
}

func TestTicket_AssignTo(t *testing.T) {
	tk := reconstructedTicket(t, vo.StatusOpen)

	require.NoError(t, tk.AssignTo(5))
	require.NotNil(t, tk.AssigneeID())
	assert.Equal(t, uint(5), *tk.AssigneeID())
	assert.Equal(t, vo.StatusOpen, tk.Status(), "assignment must not change status")

	assert.Error(t, tk.AssignTo(0))

	tk.Unassign()
	assert.Nil(t, tk.AssigneeID())
}

func TestTicket_UpdateDetails(t *testing.T) {
	tk := reconstructedTicket(t, vo.StatusOpen)
	catID := uint(2)

	require.NoError(t, tk.UpdateDetails("New title", "New description", &catID, vo.PriorityUrgent, "Lab", "R&D"))
	assert.Equal(t, "New title", tk.Title())
	assert.Equal(t, "New description", tk.Description())
	assert.Equal(t, &catID, tk.CategoryID())
	assert.Equal(t, vo.PriorityUrgent, tk.Priority())
	assert.Equal(t, "Lab", tk.Location())
	assert.Equal(t, "R&D", tk.Department())

	assert.Error(t, tk.UpdateDetails("", "desc", nil, vo.PriorityLow, "", ""))
	assert.Error(t, tk.UpdateDetails("Title", "desc", nil, vo.Priority("bogus"), "", ""))
}

func TestTicket_AddComment(t *testing.T) {
	tk := reconstructedTicket(t, vo.StatusOpen)

	c, err := NewComment(tk.ID(), 3, "Looking into it", false)
	require.NoError(t, err)
	require.NoError(t, tk.AddComment(c))
	assert.Len(t, tk.Comments(), 1)

	other, err := NewComment(99, 3, "Wrong ticket", false)
	require.NoError(t, err)
	assert.Error(t, tk.AddComment(other), "comment for another ticket must be rejected")

	assert.Error(t, tk.AddComment(nil))
}

func TestTicket_AccessorsForAccessControl(t *testing.T) {
	tk := reconstructedTicket(t, vo.StatusOpen)
	require.NoError(t, tk.AssignTo(5))

	assert.Equal(t, uint(10), tk.GetCreatorID())
	require.NotNil(t, tk.GetAssigneeID())
	assert.Equal(t, uint(5), *tk.GetAssigneeID())
}

func TestFormatNumber(t *testing.T) {
	day := time.Date(2025, 6, 1, 15, 4, 5, 0, time.UTC)
	assert.Equal(t, "T-20250601-0001", FormatNumber(day, 1))
	assert.Equal(t, "T-20250601-0042", FormatNumber(day, 42))
	assert.Equal(t, "T-20250601-12345", FormatNumber(day, 12345), "sequence wider than four digits is not truncated")
}
