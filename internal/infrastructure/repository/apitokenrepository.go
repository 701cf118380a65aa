package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"derbydesk/internal/domain/apitoken"
	"derbydesk/internal/infrastructure/persistence/mappers"
	"derbydesk/internal/infrastructure/persistence/models"
	db "derbydesk/internal/shared/db"
	"derbydesk/internal/shared/errors"
)

type APITokenRepository struct {
	db     *gorm.DB
	mapper mappers.APITokenMapper
}

func NewAPITokenRepository(gdb *gorm.DB) *APITokenRepository {
	return &APITokenRepository{
		db:     gdb,
		mapper: mappers.NewAPITokenMapper(),
	}
}

func (r *APITokenRepository) Save(ctx context.Context, t *apitoken.APIToken) error {
	model := r.mapper.ToModel(t)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		if errors.IsDuplicateError(err) {
			return errors.NewConflictError("token hash already exists")
		}
		return fmt.Errorf("failed to create api token: %w", err)
	}

	return t.SetID(model.ID)
}

func (r *APITokenRepository) Update(ctx context.Context, t *apitoken.APIToken) error {
	model := r.mapper.ToModel(t)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.APITokenModel{}).
		Where("id = ?", model.ID).
		Select("name", "active", "last_used_at", "updated_at").
		Updates(model)

	if result.Error != nil {
		return fmt.Errorf("failed to update api token: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("api token not found")
	}
	return nil
}

func (r *APITokenRepository) Delete(ctx context.Context, tokenID uint) error {
	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Delete(&models.APITokenModel{}, tokenID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete api token: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("api token not found")
	}
	return nil
}

func (r *APITokenRepository) GetByID(ctx context.Context, tokenID uint) (*apitoken.APIToken, error) {
	return r.getOne(ctx, "id = ?", tokenID)
}

func (r *APITokenRepository) GetByHash(ctx context.Context, tokenHash string) (*apitoken.APIToken, error) {
	return r.getOne(ctx, "token_hash = ?", tokenHash)
}

func (r *APITokenRepository) getOne(ctx context.Context, cond string, arg any) (*apitoken.APIToken, error) {
	var model models.APITokenModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where(cond, arg).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("api token not found")
		}
		return nil, fmt.Errorf("failed to find api token: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *APITokenRepository) ListByUserID(ctx context.Context, userID uint) ([]*apitoken.APIToken, error) {
	return r.list(ctx, func(q *gorm.DB) *gorm.DB {
		return q.Where("user_id = ?", userID)
	})
}

func (r *APITokenRepository) List(ctx context.Context) ([]*apitoken.APIToken, error) {
	return r.list(ctx, nil)
}

func (r *APITokenRepository) list(ctx context.Context, scope func(*gorm.DB) *gorm.DB) ([]*apitoken.APIToken, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.APITokenModel{}).Order("created_at DESC")
	if scope != nil {
		query = scope(query)
	}

	var tokenModels []models.APITokenModel
	if err := query.Find(&tokenModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list api tokens: %w", err)
	}

	tokens := make([]*apitoken.APIToken, 0, len(tokenModels))
	for i := range tokenModels {
		t, err := r.mapper.ToDomain(&tokenModels[i])
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, t)
	}
	return tokens, nil
}
