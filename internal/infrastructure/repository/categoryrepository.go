package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"derbydesk/internal/domain/category"
	"derbydesk/internal/infrastructure/persistence/mappers"
	"derbydesk/internal/infrastructure/persistence/models"
	db "derbydesk/internal/shared/db"
	"derbydesk/internal/shared/errors"
)

type CategoryRepository struct {
	db     *gorm.DB
	mapper mappers.CategoryMapper
}

func NewCategoryRepository(gdb *gorm.DB) *CategoryRepository {
	return &CategoryRepository{
		db:     gdb,
		mapper: mappers.NewCategoryMapper(),
	}
}

func (r *CategoryRepository) Save(ctx context.Context, c *category.Category) error {
	model := r.mapper.ToModel(c)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		if errors.IsDuplicateError(err) {
			return errors.NewConflictError("category name or slug already exists")
		}
		return fmt.Errorf("failed to create category: %w", err)
	}

	return c.SetID(model.ID)
}

func (r *CategoryRepository) Update(ctx context.Context, c *category.Category) error {
	model := r.mapper.ToModel(c)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.CategoryModel{}).
		Where("id = ?", model.ID).
		Select("name", "slug", "description", "sort_order", "updated_at").
		Updates(model)

	if result.Error != nil {
		if errors.IsDuplicateError(result.Error) {
			return errors.NewConflictError("category name or slug already exists")
		}
		return fmt.Errorf("failed to update category: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("category not found")
	}
	return nil
}

func (r *CategoryRepository) Delete(ctx context.Context, categoryID uint) error {
	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Delete(&models.CategoryModel{}, categoryID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete category: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("category not found")
	}
	return nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, categoryID uint) (*category.Category, error) {
	return r.getOne(ctx, "id = ?", categoryID)
}

func (r *CategoryRepository) GetBySlug(ctx context.Context, slug string) (*category.Category, error) {
	return r.getOne(ctx, "slug = ?", slug)
}

func (r *CategoryRepository) getOne(ctx context.Context, cond string, arg any) (*category.Category, error) {
	var model models.CategoryModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where(cond, arg).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("category not found")
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *CategoryRepository) List(ctx context.Context) ([]*category.Category, error) {
	var categoryModels []models.CategoryModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Order("sort_order ASC, name ASC").Find(&categoryModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	categories := make([]*category.Category, 0, len(categoryModels))
	for i := range categoryModels {
		c, err := r.mapper.ToDomain(&categoryModels[i])
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, nil
}

func (r *CategoryRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Model(&models.CategoryModel{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check category existence: %w", err)
	}
	return count > 0, nil
}
