package category

import (
	"fmt"
	"strings"
	"time"

	"derbydesk/internal/shared/biztime"
)

type Category struct {
	id          uint
	name        string
	slug        string
	description string
	sortOrder   int
	createdAt   time.Time
	updatedAt   time.Time
}

func NewCategory(name, description string, sortOrder int) (*Category, error) {
	name = strings.TrimSpace(name)
	if len(name) == 0 {
		return nil, fmt.Errorf("name is required")
	}
	if len(name) > 100 {
		return nil, fmt.Errorf("name exceeds maximum length of 100 characters")
	}
	if len(description) > 500 {
		return nil, fmt.Errorf("description exceeds maximum length of 500 characters")
	}

	slug := Slugify(name)
	if len(slug) == 0 {
		return nil, fmt.Errorf("name must contain at least one letter or digit")
	}

	now := biztime.NowUTC()
	return &Category{
		name:        name,
		slug:        slug,
		description: description,
		sortOrder:   sortOrder,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructCategory(id uint, name, slug, description string, sortOrder int, createdAt, updatedAt time.Time) (*Category, error) {
	if id == 0 {
		return nil, fmt.Errorf("category ID cannot be zero")
	}
	if len(name) == 0 {
		return nil, fmt.Errorf("name is required")
	}
	if len(slug) == 0 {
		return nil, fmt.Errorf("slug is required")
	}

	return &Category{
		id:          id,
		name:        name,
		slug:        slug,
		description: description,
		sortOrder:   sortOrder,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}, nil
}

func (c *Category) ID() uint {
	return c.id
}

func (c *Category) Name() string {
	return c.name
}

func (c *Category) Slug() string {
	return c.slug
}

func (c *Category) Description() string {
	return c.description
}

func (c *Category) SortOrder() int {
	return c.sortOrder
}

func (c *Category) CreatedAt() time.Time {
	return c.createdAt
}

func (c *Category) UpdatedAt() time.Time {
	return c.updatedAt
}

func (c *Category) SetID(id uint) error {
	if c.id != 0 {
		return fmt.Errorf("category ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("category ID cannot be zero")
	}
	c.id = id
	return nil
}

// Rename changes the name and regenerates the slug.
func (c *Category) Rename(name string) error {
	name = strings.TrimSpace(name)
	if len(name) == 0 {
		return fmt.Errorf("name is required")
	}
	if len(name) > 100 {
		return fmt.Errorf("name exceeds maximum length of 100 characters")
	}

	slug := Slugify(name)
	if len(slug) == 0 {
		return fmt.Errorf("name must contain at least one letter or digit")
	}

	c.name = name
	c.slug = slug
	c.updatedAt = biztime.NowUTC()
	return nil
}

func (c *Category) UpdateDescription(description string) error {
	if len(description) > 500 {
		return fmt.Errorf("description exceeds maximum length of 500 characters")
	}
	c.description = description
	c.updatedAt = biztime.NowUTC()
	return nil
}

func (c *Category) SetSortOrder(order int) {
	c.sortOrder = order
	c.updatedAt = biztime.NowUTC()
}

// Slugify lowercases a name and collapses every non-alphanumeric run
// into a single hyphen.
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}
