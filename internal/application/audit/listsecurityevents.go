package audit

import (
	"context"

	"derbydesk/internal/domain/audit"
	"derbydesk/internal/shared/logger"
	"derbydesk/internal/shared/utils"
)

type ListSecurityEventsQuery struct {
	Page     int
	PageSize int
}

type ListSecurityEventsResult struct {
	Events     []*audit.SecurityEvent
	Total      int64
	Page       int
	PageSize   int
	TotalPages int
}

type ListSecurityEventsUseCase struct {
	auditRepo audit.Repository
	logger    logger.Interface
}

func NewListSecurityEventsUseCase(auditRepo audit.Repository, logger logger.Interface) *ListSecurityEventsUseCase {
	return &ListSecurityEventsUseCase{
		auditRepo: auditRepo,
		logger:    logger,
	}
}

func (uc *ListSecurityEventsUseCase) Execute(ctx context.Context, query ListSecurityEventsQuery) (*ListSecurityEventsResult, error) {
	pg := utils.ValidatePagination(query.Page, query.PageSize)

	events, total, err := uc.auditRepo.ListSecurityEvents(ctx, pg.Page, pg.PageSize)
	if err != nil {
		uc.logger.Errorw("failed to list security events", "error", err)
		return nil, err
	}

	page := utils.ClampPage(pg.Page, total, pg.PageSize)
	if page != pg.Page {
		events, total, err = uc.auditRepo.ListSecurityEvents(ctx, page, pg.PageSize)
		if err != nil {
			return nil, err
		}
	}

	return &ListSecurityEventsResult{
		Events:     events,
		Total:      total,
		Page:       page,
		PageSize:   pg.PageSize,
		TotalPages: utils.TotalPages(total, pg.PageSize),
	}, nil
}
