package models

import (
	"time"

	"gorm.io/gorm"

	"derbydesk/internal/shared/constants"
)

type CategoryModel struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"uniqueIndex;size:100;not null"`
	Slug        string `gorm:"uniqueIndex;size:100;not null"`
	Description string `gorm:"size:500"`
	SortOrder   int    `gorm:"not null;default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (CategoryModel) TableName() string {
	return constants.TableCategories
}
