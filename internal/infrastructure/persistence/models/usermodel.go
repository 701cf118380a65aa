package models

import (
	"time"

	"gorm.io/gorm"

	"derbydesk/internal/shared/constants"
)

// UserModel represents the database persistence model for users
// This is the anti-corruption layer between domain and database
type UserModel struct {
	ID           uint   `gorm:"primarykey"`
	Username     string `gorm:"uniqueIndex;not null;size:100"`
	Email        string `gorm:"uniqueIndex;not null;size:255"`
	DisplayName  string `gorm:"not null;size:100"`
	PasswordHash string `gorm:"not null;size:255"`
	Role         string `gorm:"not null;default:user;size:20;index"`
	IsStaff      bool   `gorm:"not null;default:false;index"`
	Active       bool   `gorm:"not null;default:true;index"`
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name for GORM
func (UserModel) TableName() string {
	return constants.TableUsers
}

// BeforeCreate hook for GORM
func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.Role == "" {
		u.Role = "user"
	}
	return nil
}

// UserProfileModel holds the optional per-user contact fields shown on
// the ticket detail page.
type UserProfileModel struct {
	ID         uint   `gorm:"primarykey"`
	UserID     uint   `gorm:"uniqueIndex;not null"`
	Phone      string `gorm:"size:40"`
	Location   string `gorm:"size:120"`
	Department string `gorm:"size:120"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (UserProfileModel) TableName() string {
	return constants.TableUserProfiles
}
