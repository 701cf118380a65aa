package audit

import (
	"context"

	"derbydesk/internal/domain/audit"
	"derbydesk/internal/shared/logger"
	"derbydesk/internal/shared/utils"
)

type ListAuditLogQuery struct {
	Action     string
	EntityType string
	ActorID    *uint
	Page       int
	PageSize   int
}

type ListAuditLogResult struct {
	Entries    []*audit.Entry
	Total      int64
	Page       int
	PageSize   int
	TotalPages int
}

type ListAuditLogUseCase struct {
	auditRepo audit.Repository
	logger    logger.Interface
}

func NewListAuditLogUseCase(auditRepo audit.Repository, logger logger.Interface) *ListAuditLogUseCase {
	return &ListAuditLogUseCase{
		auditRepo: auditRepo,
		logger:    logger,
	}
}

func (uc *ListAuditLogUseCase) Execute(ctx context.Context, query ListAuditLogQuery) (*ListAuditLogResult, error) {
	pg := utils.ValidatePagination(query.Page, query.PageSize)

	filter := audit.Filter{
		Action:     query.Action,
		EntityType: query.EntityType,
		ActorID:    query.ActorID,
		Page:       pg.Page,
		PageSize:   pg.PageSize,
	}

	entries, total, err := uc.auditRepo.ListEntries(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list audit entries", "error", err)
		return nil, err
	}

	page := utils.ClampPage(pg.Page, total, pg.PageSize)
	if page != pg.Page {
		filter.Page = page
		entries, total, err = uc.auditRepo.ListEntries(ctx, filter)
		if err != nil {
			return nil, err
		}
	}

	return &ListAuditLogResult{
		Entries:    entries,
		Total:      total,
		Page:       page,
		PageSize:   pg.PageSize,
		TotalPages: utils.TotalPages(total, pg.PageSize),
	}, nil
}
