package models

import (
	"time"

	"gorm.io/gorm"

	"derbydesk/internal/shared/constants"
)

// APITokenModel stores only the SHA-256 digest of issued tokens; the
// plain token is never persisted.
type APITokenModel struct {
	ID         uint   `gorm:"primaryKey"`
	UserID     uint   `gorm:"not null;index"`
	Name       string `gorm:"size:100;not null"`
	TokenHash  string `gorm:"uniqueIndex;size:64;not null"`
	Active     bool   `gorm:"not null;default:true;index"`
	LastUsedAt *time.Time
	ExpiresAt  *time.Time `gorm:"index"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  gorm.DeletedAt `gorm:"index"`
}

func (APITokenModel) TableName() string {
	return constants.TableAPITokens
}
