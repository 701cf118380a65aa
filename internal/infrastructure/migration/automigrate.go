package migration

import (
	"fmt"

	"gorm.io/gorm"

	"derbydesk/internal/infrastructure/persistence/models"
	"derbydesk/internal/shared/logger"
)

// GormAutoMigrateStrategy implements migration using GORM AutoMigrate
type GormAutoMigrateStrategy struct {
	logger logger.Interface
}

// NewGormAutoMigrateStrategy creates a new GORM AutoMigrate strategy
func NewGormAutoMigrateStrategy() *GormAutoMigrateStrategy {
	return &GormAutoMigrateStrategy{
		logger: logger.NewLogger().With("component", "migration.gorm-automigrate"),
	}
}

// Migrate runs GORM AutoMigrate over the given models
func (s *GormAutoMigrateStrategy) Migrate(db *gorm.DB, models ...interface{}) error {
	s.logger.Infow("starting gorm automigrate", "models_count", len(models))

	if err := db.AutoMigrate(models...); err != nil {
		s.logger.Errorw("automigrate failed", "error", err)
		return fmt.Errorf("failed to run automigrate: %w", err)
	}

	s.logger.Infow("automigrate completed successfully")
	return nil
}

// GetName returns the strategy name
func (s *GormAutoMigrateStrategy) GetName() string {
	return "gorm_auto_migrate"
}

// AutoMigrateModels returns the full model list in dependency order
func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.UserModel{},
		&models.UserProfileModel{},
		&models.UserSessionModel{},
		&models.CategoryModel{},
		&models.TicketModel{},
		&models.CommentModel{},
		&models.AttachmentModel{},
		&models.APITokenModel{},
		&models.SecurityEventModel{},
		&models.LoginAttemptModel{},
		&models.AuditLogModel{},
	}
}
