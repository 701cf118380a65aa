package usecases

import (
	"context"

	"derbydesk/internal/domain/audit"
	"derbydesk/internal/domain/category"
	"derbydesk/internal/infrastructure/cache"
	"derbydesk/internal/shared/logger"
)

type DeleteCategoryCommand struct {
	CategoryID uint

	ActorID   uint
	IPAddress string
}

type DeleteCategoryUseCase struct {
	categoryRepo category.Repository
	cache        cache.CategoryCache
	auditRec     AuditRecorder
	logger       logger.Interface
}

func NewDeleteCategoryUseCase(
	categoryRepo category.Repository,
	categoryCache cache.CategoryCache,
	auditRec AuditRecorder,
	logger logger.Interface,
) *DeleteCategoryUseCase {
	return &DeleteCategoryUseCase{
		categoryRepo: categoryRepo,
		cache:        categoryCache,
		auditRec:     auditRec,
		logger:       logger,
	}
}

// Execute soft-deletes a category. Tickets keep their category_id and
// simply render as uncategorized once the row is gone.
func (uc *DeleteCategoryUseCase) Execute(ctx context.Context, cmd DeleteCategoryCommand) error {
	c, err := uc.categoryRepo.GetByID(ctx, cmd.CategoryID)
	if err != nil {
		return err
	}

	if err := uc.categoryRepo.Delete(ctx, c.ID()); err != nil {
		uc.logger.Errorw("failed to delete category", "category_id", cmd.CategoryID, "error", err)
		return err
	}

	if err := uc.cache.Invalidate(ctx); err != nil {
		uc.logger.Warnw("failed to invalidate category cache", "error", err)
	}

	actorID := cmd.ActorID
	uc.auditRec.Record(ctx, &actorID, audit.ActionCategorySaved, "category", c.ID(),
		map[string]any{"name": c.Name(), "deleted": true}, cmd.IPAddress)

	uc.logger.Infow("category deleted", "category_id", c.ID(), "slug", c.Slug())
	return nil
}
