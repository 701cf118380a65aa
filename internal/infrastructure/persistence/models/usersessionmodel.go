package models

import (
	"time"

	"derbydesk/internal/shared/constants"
)

// UserSessionModel represents the database persistence model for browser sessions.
type UserSessionModel struct {
	ID             string    `gorm:"primarykey;size:64"`
	UserID         uint      `gorm:"not null;index"`
	IPAddress      string    `gorm:"size:45"`
	UserAgent      string    `gorm:"size:512"`
	ExpiresAt      time.Time `gorm:"not null;index"`
	LastActivityAt time.Time `gorm:"not null"`
	RevokedAt      *time.Time
	CreatedAt      time.Time
}

// TableName specifies the table name for GORM
func (UserSessionModel) TableName() string {
	return constants.TableUserSessions
}
