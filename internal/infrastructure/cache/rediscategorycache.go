package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCategoryCache provides Redis-based category list caching
type RedisCategoryCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCategoryCache creates a new RedisCategoryCache instance
func NewRedisCategoryCache(client *redis.Client, ttl time.Duration) *RedisCategoryCache {
	if ttl <= 0 {
		ttl = DefaultCategoryTTL
	}
	return &RedisCategoryCache{client: client, ttl: ttl}
}

func (c *RedisCategoryCache) Get(ctx context.Context) ([]CategoryEntry, bool, error) {
	val, err := c.client.Get(ctx, categoryCacheKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get category cache: %w", err)
	}

	var entries []CategoryEntry
	if err := json.Unmarshal(val, &entries); err != nil {
		// Corrupt payload: treat as a miss and let the next Set overwrite it
		return nil, false, nil
	}

	return entries, true, nil
}

func (c *RedisCategoryCache) Set(ctx context.Context, entries []CategoryEntry) error {
	payload, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to marshal category entries: %w", err)
	}

	if err := c.client.Set(ctx, categoryCacheKey, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set category cache: %w", err)
	}

	return nil
}

func (c *RedisCategoryCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, categoryCacheKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate category cache: %w", err)
	}
	return nil
}
