package apitoken

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAPIToken(t *testing.T) {
	tok, err := NewAPIToken(1, "ci reader", "abc123hash", nil)
	require.NoError(t, err)
	assert.True(t, tok.IsActive())
	assert.True(t, tok.IsUsable())
	assert.Nil(t, tok.LastUsedAt())

	_, err = NewAPIToken(0, "x", "h", nil)
	assert.Error(t, err)
	_, err = NewAPIToken(1, "", "h", nil)
	assert.Error(t, err)
	_, err = NewAPIToken(1, "x", "", nil)
	assert.Error(t, err)

	past := time.Now().UTC().Add(-time.Hour)
	_, err = NewAPIToken(1, "x", "h", &past)
	assert.Error(t, err, "expiry in the past must be rejected")
}

func TestAPIToken_Expiry(t *testing.T) {
	future := time.Now().UTC().Add(time.Hour)
	tok, err := NewAPIToken(1, "short lived", "hash", &future)
	require.NoError(t, err)
	assert.False(t, tok.IsExpired())
	assert.True(t, tok.IsUsable())

	past := time.Now().UTC().Add(-time.Minute)
	expired, err := ReconstructAPIToken(2, 1, "old", "hash", true, nil, &past, time.Now().UTC().Add(-time.Hour), time.Now().UTC())
	require.NoError(t, err)
	assert.True(t, expired.IsExpired())
	assert.False(t, expired.IsUsable(), "expired token is unusable even while active")
}

func TestAPIToken_RevokeAndTouch(t *testing.T) {
	tok, err := NewAPIToken(1, "reader", "hash", nil)
	require.NoError(t, err)

	tok.Touch()
	require.NotNil(t, tok.LastUsedAt())

	tok.Revoke()
	assert.False(t, tok.IsActive())
	assert.False(t, tok.IsUsable())
}
