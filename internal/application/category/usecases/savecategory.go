package usecases

import (
	"context"

	"derbydesk/internal/domain/audit"
	"derbydesk/internal/domain/category"
	"derbydesk/internal/infrastructure/cache"
	"derbydesk/internal/shared/errors"
	"derbydesk/internal/shared/logger"
)

// AuditRecorder records admin changes to categories.
type AuditRecorder interface {
	Record(ctx context.Context, actorID *uint, action, entityType string, entityID uint, detail map[string]any, ipAddress string)
}

// SaveCategoryCommand creates a category when CategoryID is zero and
// updates the existing one otherwise.
type SaveCategoryCommand struct {
	CategoryID  uint
	Name        string
	Description string
	SortOrder   int

	ActorID   uint
	IPAddress string
}

type SaveCategoryUseCase struct {
	categoryRepo category.Repository
	cache        cache.CategoryCache
	auditRec     AuditRecorder
	logger       logger.Interface
}

func NewSaveCategoryUseCase(
	categoryRepo category.Repository,
	categoryCache cache.CategoryCache,
	auditRec AuditRecorder,
	logger logger.Interface,
) *SaveCategoryUseCase {
	return &SaveCategoryUseCase{
		categoryRepo: categoryRepo,
		cache:        categoryCache,
		auditRec:     auditRec,
		logger:       logger,
	}
}

func (uc *SaveCategoryUseCase) Execute(ctx context.Context, cmd SaveCategoryCommand) (*category.Category, error) {
	var (
		c   *category.Category
		err error
	)

	if cmd.CategoryID == 0 {
		c, err = category.NewCategory(cmd.Name, cmd.Description, cmd.SortOrder)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		c.SetSortOrder(cmd.SortOrder)
		if err := uc.categoryRepo.Save(ctx, c); err != nil {
			uc.logger.Errorw("failed to create category", "name", cmd.Name, "error", err)
			return nil, err
		}
	} else {
		c, err = uc.categoryRepo.GetByID(ctx, cmd.CategoryID)
		if err != nil {
			return nil, err
		}
		if err := c.Rename(cmd.Name); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		if err := c.UpdateDescription(cmd.Description); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		c.SetSortOrder(cmd.SortOrder)
		if err := uc.categoryRepo.Update(ctx, c); err != nil {
			uc.logger.Errorw("failed to update category", "category_id", cmd.CategoryID, "error", err)
			return nil, err
		}
	}

	if err := uc.cache.Invalidate(ctx); err != nil {
		uc.logger.Warnw("failed to invalidate category cache", "error", err)
	}

	actorID := cmd.ActorID
	uc.auditRec.Record(ctx, &actorID, audit.ActionCategorySaved, "category", c.ID(),
		map[string]any{"name": c.Name(), "slug": c.Slug()}, cmd.IPAddress)

	uc.logger.Infow("category saved", "category_id", c.ID(), "slug", c.Slug())
	return c, nil
}
