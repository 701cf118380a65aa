package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLoginLockoutStore_LocksAfterMaxAttempts(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryLoginLockoutStore(5, 300*time.Second)

	for i := 0; i < 4; i++ {
		require.NoError(t, s.RecordFailure(ctx, "alice"))
	}
	locked, err := s.IsLocked(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, locked, "four failures should not lock")

	require.NoError(t, s.RecordFailure(ctx, "alice"))
	locked, err = s.IsLocked(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, locked, "fifth failure should lock")

	// Other accounts are unaffected
	locked, err = s.IsLocked(ctx, "bob")
	require.NoError(t, err)
	assert.False(t, locked)
}

func TestMemoryLoginLockoutStore_WindowExpiry(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryLoginLockoutStore(5, 300*time.Second)

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.nowFunc = func() time.Time { return now }

	for i := 0; i < 5; i++ {
		require.NoError(t, s.RecordFailure(ctx, "alice"))
	}
	locked, err := s.IsLocked(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, locked)

	now = now.Add(301 * time.Second)
	locked, err = s.IsLocked(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, locked, "lockout should expire after the window")
}

func TestMemoryLoginLockoutStore_ClearOnSuccess(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryLoginLockoutStore(5, 300*time.Second)

	for i := 0; i < 5; i++ {
		require.NoError(t, s.RecordFailure(ctx, "alice"))
	}
	require.NoError(t, s.Clear(ctx, "alice"))

	locked, err := s.IsLocked(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, locked)
}
