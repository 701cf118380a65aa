package usecases

import (
	"context"

	"derbydesk/internal/domain/category"
	"derbydesk/internal/domain/ticket"
	"derbydesk/internal/infrastructure/cache"
	"derbydesk/internal/shared/logger"
)

// ListCategoriesUseCase serves the category list from cache when warm,
// rebuilding it from the database on a miss.
type ListCategoriesUseCase struct {
	categoryRepo category.Repository
	ticketRepo   ticket.TicketRepository
	cache        cache.CategoryCache
	logger       logger.Interface
}

func NewListCategoriesUseCase(
	categoryRepo category.Repository,
	ticketRepo ticket.TicketRepository,
	categoryCache cache.CategoryCache,
	logger logger.Interface,
) *ListCategoriesUseCase {
	return &ListCategoriesUseCase{
		categoryRepo: categoryRepo,
		ticketRepo:   ticketRepo,
		cache:        categoryCache,
		logger:       logger,
	}
}

func (uc *ListCategoriesUseCase) Execute(ctx context.Context) ([]cache.CategoryEntry, error) {
	cached, ok, err := uc.cache.Get(ctx)
	if err != nil {
		uc.logger.Warnw("category cache read failed", "error", err)
	}
	if ok {
		return cached, nil
	}

	categories, err := uc.categoryRepo.List(ctx)
	if err != nil {
		uc.logger.Errorw("failed to list categories", "error", err)
		return nil, err
	}

	counts, err := uc.ticketRepo.CountByCategory(ctx)
	if err != nil {
		uc.logger.Errorw("failed to count tickets per category", "error", err)
		return nil, err
	}

	entries := make([]cache.CategoryEntry, 0, len(categories))
	for _, c := range categories {
		entries = append(entries, cache.CategoryEntry{
			ID:          c.ID(),
			Name:        c.Name(),
			Slug:        c.Slug(),
			Description: c.Description(),
			TicketCount: counts[c.ID()],
		})
	}

	if err := uc.cache.Set(ctx, entries); err != nil {
		uc.logger.Warnw("category cache write failed", "error", err)
	}

	return entries, nil
}
