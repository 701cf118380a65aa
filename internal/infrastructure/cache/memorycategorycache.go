package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryCategoryCache is the in-process fallback used when Redis is disabled.
type MemoryCategoryCache struct {
	mu        sync.RWMutex
	entries   []CategoryEntry
	expiresAt time.Time
	ttl       time.Duration
	nowFunc   func() time.Time
}

// NewMemoryCategoryCache creates a new MemoryCategoryCache instance
func NewMemoryCategoryCache(ttl time.Duration) *MemoryCategoryCache {
	if ttl <= 0 {
		ttl = DefaultCategoryTTL
	}
	return &MemoryCategoryCache{
		ttl:     ttl,
		nowFunc: time.Now,
	}
}

func (c *MemoryCategoryCache) Get(ctx context.Context) ([]CategoryEntry, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.entries == nil || c.nowFunc().After(c.expiresAt) {
		return nil, false, nil
	}

	// Copy so callers cannot mutate the cached slice
	out := make([]CategoryEntry, len(c.entries))
	copy(out, c.entries)
	return out, true, nil
}

func (c *MemoryCategoryCache) Set(ctx context.Context, entries []CategoryEntry) error {
	stored := make([]CategoryEntry, len(entries))
	copy(stored, entries)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = stored
	c.expiresAt = c.nowFunc().Add(c.ttl)
	return nil
}

func (c *MemoryCategoryCache) Invalidate(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = nil
	c.expiresAt = time.Time{}
	return nil
}
