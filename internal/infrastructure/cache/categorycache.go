package cache

import (
	"context"
	"time"
)

const (
	categoryCacheKey = "category:list"

	// DefaultCategoryTTL bounds how stale the rendered category list may be.
	DefaultCategoryTTL = 300 * time.Second
)

// CategoryEntry is the cached shape of a category for list rendering.
type CategoryEntry struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	TicketCount int64  `json:"ticket_count"`
}

// CategoryCache caches the category list between reads. A miss returns
// ok=false with no error; callers fall through to the database.
type CategoryCache interface {
	Get(ctx context.Context) ([]CategoryEntry, bool, error)
	Set(ctx context.Context, entries []CategoryEntry) error
	Invalidate(ctx context.Context) error
}
