package models

import (
	"time"

	"gorm.io/datatypes"

	"derbydesk/internal/shared/constants"
)

// AuditLogModel records admin and ticket mutations with a JSON detail
// payload describing the change.
type AuditLogModel struct {
	ID         uint   `gorm:"primaryKey"`
	ActorID    *uint  `gorm:"index"`
	Action     string `gorm:"size:60;not null;index"`
	EntityType string `gorm:"size:40;not null;index:idx_audit_entity"`
	EntityID   uint   `gorm:"not null;index:idx_audit_entity"`
	Detail     datatypes.JSON
	IPAddress  string    `gorm:"size:45"`
	CreatedAt  time.Time `gorm:"index"`
}

func (AuditLogModel) TableName() string {
	return constants.TableAuditLogs
}

// SecurityEventModel records auth-significant events (logins, lockouts,
// token failures) for the admin console.
type SecurityEventModel struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    *uint  `gorm:"index"`
	EventType string `gorm:"size:60;not null;index"`
	Detail    datatypes.JSON
	IPAddress string    `gorm:"size:45"`
	UserAgent string    `gorm:"size:512"`
	CreatedAt time.Time `gorm:"index"`
}

func (SecurityEventModel) TableName() string {
	return constants.TableSecurityEvents
}

// LoginAttemptModel records every login attempt, successful or not.
type LoginAttemptModel struct {
	ID        uint      `gorm:"primaryKey"`
	Username  string    `gorm:"size:100;not null;index"`
	Success   bool      `gorm:"not null;index"`
	IPAddress string    `gorm:"size:45"`
	UserAgent string    `gorm:"size:512"`
	CreatedAt time.Time `gorm:"index"`
}

func (LoginAttemptModel) TableName() string {
	return constants.TableLoginAttempts
}
