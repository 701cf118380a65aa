package models

import (
	"time"

	"gorm.io/gorm"

	"derbydesk/internal/shared/constants"
)

type TicketModel struct {
	ID          uint   `gorm:"primaryKey"`
	Number      string `gorm:"uniqueIndex;size:50;not null"`
	Title       string `gorm:"size:200;not null"`
	Description string `gorm:"type:text;not null"`
	CategoryID  *uint  `gorm:"index"`
	Priority    string `gorm:"size:20;not null;index"`
	Status      string `gorm:"size:20;not null;index"`
	CreatorID   uint   `gorm:"not null;index"`
	AssigneeID  *uint  `gorm:"index"`
	Location    string `gorm:"size:120"`
	Department  string `gorm:"size:120"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	ClosedAt    *time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`

	// Note: No foreign key constraints or associations.
	// All relationships are managed by application business logic.
}

func (TicketModel) TableName() string {
	return constants.TableTickets
}

type CommentModel struct {
	ID         uint      `gorm:"primaryKey"`
	TicketID   uint      `gorm:"not null;index"`
	UserID     uint      `gorm:"not null;index"`
	Content    string    `gorm:"type:text;not null"`
	IsInternal bool      `gorm:"not null;default:false"`
	CreatedAt  time.Time `gorm:"index"`
	UpdatedAt  time.Time
}

func (CommentModel) TableName() string {
	return constants.TableTicketComments
}

type AttachmentModel struct {
	ID          uint   `gorm:"primaryKey"`
	TicketID    uint   `gorm:"not null;index"`
	UploaderID  uint   `gorm:"not null;index"`
	Filename    string `gorm:"size:255;not null"`
	StoragePath string `gorm:"size:500;not null"`
	ContentType string `gorm:"size:120"`
	SizeBytes   int64  `gorm:"not null"`
	CreatedAt   time.Time
}

func (AttachmentModel) TableName() string {
	return constants.TableTicketAttachments
}
