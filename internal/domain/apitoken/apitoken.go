package apitoken

import (
	"fmt"
	"strings"
	"time"

	"derbydesk/internal/shared/biztime"
)

// APIToken grants read access to the JSON API on behalf of its owner.
// Only the hash of the issued token is kept.
type APIToken struct {
	id         uint
	userID     uint
	name       string
	tokenHash  string
	active     bool
	lastUsedAt *time.Time
	expiresAt  *time.Time
	createdAt  time.Time
	updatedAt  time.Time
}

func NewAPIToken(userID uint, name, tokenHash string, expiresAt *time.Time) (*APIToken, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	name = strings.TrimSpace(name)
	if len(name) == 0 {
		return nil, fmt.Errorf("token name is required")
	}
	if len(name) > 100 {
		return nil, fmt.Errorf("token name exceeds maximum length of 100 characters")
	}
	if len(tokenHash) == 0 {
		return nil, fmt.Errorf("token hash is required")
	}

	now := biztime.NowUTC()
	if expiresAt != nil && expiresAt.Before(now) {
		return nil, fmt.Errorf("expiry must be in the future")
	}

	return &APIToken{
		userID:    userID,
		name:      name,
		tokenHash: tokenHash,
		active:    true,
		expiresAt: expiresAt,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructAPIToken(
	id uint,
	userID uint,
	name, tokenHash string,
	active bool,
	lastUsedAt, expiresAt *time.Time,
	createdAt, updatedAt time.Time,
) (*APIToken, error) {
	if id == 0 {
		return nil, fmt.Errorf("token ID cannot be zero")
	}
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if len(tokenHash) == 0 {
		return nil, fmt.Errorf("token hash is required")
	}

	return &APIToken{
		id:         id,
		userID:     userID,
		name:       name,
		tokenHash:  tokenHash,
		active:     active,
		lastUsedAt: lastUsedAt,
		expiresAt:  expiresAt,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}, nil
}

func (t *APIToken) ID() uint {
	return t.id
}

func (t *APIToken) UserID() uint {
	return t.userID
}

func (t *APIToken) Name() string {
	return t.name
}

func (t *APIToken) TokenHash() string {
	return t.tokenHash
}

func (t *APIToken) IsActive() bool {
	return t.active
}

func (t *APIToken) LastUsedAt() *time.Time {
	return t.lastUsedAt
}

func (t *APIToken) ExpiresAt() *time.Time {
	return t.expiresAt
}

func (t *APIToken) CreatedAt() time.Time {
	return t.createdAt
}

func (t *APIToken) UpdatedAt() time.Time {
	return t.updatedAt
}

func (t *APIToken) SetID(id uint) error {
	if t.id != 0 {
		return fmt.Errorf("token ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("token ID cannot be zero")
	}
	t.id = id
	return nil
}

func (t *APIToken) IsExpired() bool {
	return t.expiresAt != nil && biztime.NowUTC().After(*t.expiresAt)
}

// IsUsable reports whether the token may authenticate a request.
func (t *APIToken) IsUsable() bool {
	return t.active && !t.IsExpired()
}

func (t *APIToken) Revoke() {
	t.active = false
	t.updatedAt = biztime.NowUTC()
}

// Activate re-enables a previously revoked token. Expiry still applies.
func (t *APIToken) Activate() {
	t.active = true
	t.updatedAt = biztime.NowUTC()
}

// Touch records a successful use of the token.
func (t *APIToken) Touch() {
	now := biztime.NowUTC()
	t.lastUsedAt = &now
	t.updatedAt = now
}
