package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"derbydesk/internal/domain/user"
	"derbydesk/internal/infrastructure/persistence/mappers"
	"derbydesk/internal/infrastructure/persistence/models"
	db "derbydesk/internal/shared/db"
	"derbydesk/internal/shared/errors"
)

type SessionRepository struct {
	db     *gorm.DB
	mapper mappers.UserMapper
}

func NewSessionRepository(gdb *gorm.DB) *SessionRepository {
	return &SessionRepository{
		db:     gdb,
		mapper: mappers.NewUserMapper(),
	}
}

func (r *SessionRepository) Create(ctx context.Context, session *user.Session) error {
	model := r.mapper.SessionToModel(session)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

func (r *SessionRepository) GetByID(ctx context.Context, sessionID string) (*user.Session, error) {
	var model models.UserSessionModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("id = ?", sessionID).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("session not found")
		}
		return nil, fmt.Errorf("failed to find session: %w", err)
	}

	return r.mapper.SessionToDomain(&model), nil
}

func (r *SessionRepository) GetByUserID(ctx context.Context, userID uint) ([]*user.Session, error) {
	var sessionModels []models.UserSessionModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("user_id = ?", userID).
		Order("last_activity_at DESC").
		Find(&sessionModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	sessions := make([]*user.Session, len(sessionModels))
	for i := range sessionModels {
		sessions[i] = r.mapper.SessionToDomain(&sessionModels[i])
	}
	return sessions, nil
}

func (r *SessionRepository) Update(ctx context.Context, session *user.Session) error {
	model := r.mapper.SessionToModel(session)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.UserSessionModel{}).
		Where("id = ?", model.ID).
		Select("last_activity_at", "revoked_at").
		Updates(model)

	if result.Error != nil {
		return fmt.Errorf("failed to update session: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("session not found")
	}
	return nil
}

func (r *SessionRepository) Delete(ctx context.Context, sessionID string) error {
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("id = ?", sessionID).Delete(&models.UserSessionModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (r *SessionRepository) DeleteByUserID(ctx context.Context, userID uint) error {
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("user_id = ?", userID).Delete(&models.UserSessionModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete user sessions: %w", err)
	}
	return nil
}

func (r *SessionRepository) DeleteExpired(ctx context.Context) error {
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("expires_at < ?", time.Now().UTC()).Delete(&models.UserSessionModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	return nil
}
