package user

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"derbydesk/internal/shared/authorization"
)

func newValidUser(t *testing.T, role authorization.UserRole) *User {
	t.Helper()
	u, err := NewUser("alice", "alice@example.com", "Alice", "$2a$12$hash", role, false)
	require.NoError(t, err)
	return u
}

func TestNewUser(t *testing.T) {
	tests := []struct {
		name     string
		username string
		email    string
		role     authorization.UserRole
		wantErr  bool
	}{
		{"valid user", "alice", "alice@example.com", authorization.RoleUser, false},
		{"valid admin", "bob.admin", "bob@example.com", authorization.RoleAdmin, false},
		{"uppercase username lowered", "Carol", "carol@example.com", authorization.RoleUser, false},
		{"empty username", "", "x@example.com", authorization.RoleUser, true},
		{"username with spaces", "two words", "x@example.com", authorization.RoleUser, true},
		{"username too long", strings.Repeat("a", 101), "x@example.com", authorization.RoleUser, true},
		{"invalid email", "dave", "not-an-email", authorization.RoleUser, true},
		{"empty email", "dave", "", authorization.RoleUser, true},
		{"invalid role", "dave", "dave@example.com", authorization.UserRole("superuser"), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			u, err := NewUser(tc.username, tc.email, "", "$2a$12$hash", tc.role, false)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, strings.ToLower(tc.username), u.Username())
			assert.True(t, u.IsActive())
			// Display name falls back to username when empty
			assert.Equal(t, u.Username(), u.DisplayName())
		})
	}
}

func TestNewUser_AdminIsAlwaysStaff(t *testing.T) {
	u, err := NewUser("root", "root@example.com", "Root", "$2a$12$hash", authorization.RoleAdmin, false)
	require.NoError(t, err)
	assert.True(t, u.IsStaff(), "admin must be staff even when created with isStaff=false")
}

func TestUser_ChangeRole(t *testing.T) {
	u := newValidUser(t, authorization.RoleUser)
	assert.False(t, u.IsStaff())

	require.NoError(t, u.ChangeRole(authorization.RoleAdmin))
	assert.Equal(t, authorization.RoleAdmin, u.Role())
	assert.True(t, u.IsStaff(), "promotion to admin grants staff")

	require.NoError(t, u.ChangeRole(authorization.RoleUser))
	assert.True(t, u.IsStaff(), "demotion does not silently revoke staff")

	assert.Error(t, u.ChangeRole(authorization.UserRole("bogus")))
}

func TestUser_SetStaff(t *testing.T) {
	u := newValidUser(t, authorization.RoleUser)

	require.NoError(t, u.SetStaff(true))
	assert.True(t, u.IsStaff())
	require.NoError(t, u.SetStaff(false))
	assert.False(t, u.IsStaff())

	admin := newValidUser(t, authorization.RoleAdmin)
	assert.Error(t, admin.SetStaff(false), "staff cannot be revoked from an admin")
}

func TestUser_CanBeAssignedTickets(t *testing.T) {
	admin := newValidUser(t, authorization.RoleAdmin)
	assert.True(t, admin.CanBeAssignedTickets())

	admin.Deactivate()
	assert.False(t, admin.CanBeAssignedTickets(), "inactive admin cannot take tickets")

	regular := newValidUser(t, authorization.RoleUser)
	assert.False(t, regular.CanBeAssignedTickets(), "non-admin cannot take tickets")
}

func TestUser_RecordLogin(t *testing.T) {
	u := newValidUser(t, authorization.RoleUser)
	require.Nil(t, u.LastLoginAt())

	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	u.RecordLogin(at)
	require.NotNil(t, u.LastLoginAt())
	assert.Equal(t, at, *u.LastLoginAt())
}

func TestSession_Lifecycle(t *testing.T) {
	s, err := NewSession(1, "10.0.0.1", "agent", time.Now().UTC().Add(time.Hour))
	require.NoError(t, err)
	assert.Len(t, s.ID, 64, "session ID is 32 random bytes hex encoded")
	assert.True(t, s.IsValid())

	s.Revoke()
	assert.True(t, s.IsRevoked())
	assert.False(t, s.IsValid())

	expired, err := NewSession(1, "", "", time.Now().UTC().Add(-time.Minute))
	require.NoError(t, err)
	assert.True(t, expired.IsExpired())
	assert.False(t, expired.IsValid())

	_, err = NewSession(0, "", "", time.Now())
	assert.Error(t, err)
}
