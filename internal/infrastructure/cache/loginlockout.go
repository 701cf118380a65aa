package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const loginLockoutPrefix = "login:attempts:"

// ErrLoginLocked is returned when an account has exceeded the failed-attempt limit
var ErrLoginLocked = errors.New("too many failed login attempts, please try again later")

// LoginLockoutStore counts consecutive failed logins per username and
// locks the account out once the limit is reached. A successful login
// clears the counter.
type LoginLockoutStore interface {
	IsLocked(ctx context.Context, username string) (bool, error)
	RecordFailure(ctx context.Context, username string) error
	Clear(ctx context.Context, username string) error
}

// RedisLoginLockoutStore provides Redis-based lockout counters
type RedisLoginLockoutStore struct {
	client      *redis.Client
	maxAttempts int
	window      time.Duration
}

// NewRedisLoginLockoutStore creates a new RedisLoginLockoutStore instance
func NewRedisLoginLockoutStore(client *redis.Client, maxAttempts int, window time.Duration) *RedisLoginLockoutStore {
	return &RedisLoginLockoutStore{
		client:      client,
		maxAttempts: maxAttempts,
		window:      window,
	}
}

func (s *RedisLoginLockoutStore) IsLocked(ctx context.Context, username string) (bool, error) {
	attempts, err := s.client.Get(ctx, loginLockoutPrefix+username).Int()
	if err != nil && err != redis.Nil {
		return false, fmt.Errorf("failed to check lockout: %w", err)
	}
	return attempts >= s.maxAttempts, nil
}

func (s *RedisLoginLockoutStore) RecordFailure(ctx context.Context, username string) error {
	key := loginLockoutPrefix + username
	pipe := s.client.Pipeline()
	pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, s.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to record login failure: %w", err)
	}
	return nil
}

func (s *RedisLoginLockoutStore) Clear(ctx context.Context, username string) error {
	if err := s.client.Del(ctx, loginLockoutPrefix+username).Err(); err != nil {
		return fmt.Errorf("failed to clear login failures: %w", err)
	}
	return nil
}

// MemoryLoginLockoutStore is the in-process fallback used when Redis is disabled.
type MemoryLoginLockoutStore struct {
	mu          sync.Mutex
	attempts    map[string]*attemptWindow
	maxAttempts int
	window      time.Duration
	nowFunc     func() time.Time
}

type attemptWindow struct {
	count     int
	expiresAt time.Time
}

// NewMemoryLoginLockoutStore creates a new MemoryLoginLockoutStore instance
func NewMemoryLoginLockoutStore(maxAttempts int, window time.Duration) *MemoryLoginLockoutStore {
	return &MemoryLoginLockoutStore{
		attempts:    make(map[string]*attemptWindow),
		maxAttempts: maxAttempts,
		window:      window,
		nowFunc:     time.Now,
	}
}

func (s *MemoryLoginLockoutStore) IsLocked(ctx context.Context, username string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.attempts[username]
	if !ok {
		return false, nil
	}
	if s.nowFunc().After(w.expiresAt) {
		delete(s.attempts, username)
		return false, nil
	}
	return w.count >= s.maxAttempts, nil
}

func (s *MemoryLoginLockoutStore) RecordFailure(ctx context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.nowFunc()
	w, ok := s.attempts[username]
	if !ok || now.After(w.expiresAt) {
		w = &attemptWindow{}
		s.attempts[username] = w
	}
	w.count++
	// Matches the Redis behavior: every failure refreshes the window
	w.expiresAt = now.Add(s.window)
	return nil
}

func (s *MemoryLoginLockoutStore) Clear(ctx context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.attempts, username)
	return nil
}
