package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})

	return client, mr
}

func TestRedisCategoryCache_SetGet(t *testing.T) {
	ctx := context.Background()
	client, _ := setupTestRedis(t)
	c := NewRedisCategoryCache(client, 300*time.Second)

	_, ok, err := c.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok, "empty cache should miss")

	entries := []CategoryEntry{
		{ID: 1, Name: "Hardware", Slug: "hardware", TicketCount: 2},
	}
	require.NoError(t, c.Set(ctx, entries))

	got, ok, err := c.Get(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, entries, got)
}

func TestRedisCategoryCache_Expiry(t *testing.T) {
	ctx := context.Background()
	client, mr := setupTestRedis(t)
	c := NewRedisCategoryCache(client, 300*time.Second)

	require.NoError(t, c.Set(ctx, []CategoryEntry{{ID: 1, Name: "Hardware"}}))

	mr.FastForward(301 * time.Second)

	_, ok, err := c.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok, "entry should expire after TTL")
}

func TestRedisCategoryCache_CorruptPayloadIsMiss(t *testing.T) {
	ctx := context.Background()
	client, mr := setupTestRedis(t)
	c := NewRedisCategoryCache(client, 300*time.Second)

	require.NoError(t, mr.Set(categoryCacheKey, "not-json"))

	_, ok, err := c.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisLoginLockoutStore(t *testing.T) {
	ctx := context.Background()
	client, mr := setupTestRedis(t)
	s := NewRedisLoginLockoutStore(client, 5, 300*time.Second)

	for i := 0; i < 5; i++ {
		require.NoError(t, s.RecordFailure(ctx, "alice"))
	}
	locked, err := s.IsLocked(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, locked)

	mr.FastForward(301 * time.Second)
	locked, err = s.IsLocked(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, locked, "counter should expire after the window")

	require.NoError(t, s.RecordFailure(ctx, "alice"))
	require.NoError(t, s.Clear(ctx, "alice"))
	locked, err = s.IsLocked(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, locked)
}
