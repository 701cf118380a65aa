package usecases

import (
	"context"

	"derbydesk/internal/domain/ticket"
	vo "derbydesk/internal/domain/ticket/valueobjects"
	"derbydesk/internal/shared/logger"
)

type TicketStats struct {
	Total      int64
	ByStatus   map[string]int64
	ByCategory map[uint]int64
}

type GetTicketStatsUseCase struct {
	ticketRepo ticket.TicketRepository
	logger     logger.Interface
}

func NewGetTicketStatsUseCase(ticketRepo ticket.TicketRepository, logger logger.Interface) *GetTicketStatsUseCase {
	return &GetTicketStatsUseCase{
		ticketRepo: ticketRepo,
		logger:     logger,
	}
}

func (uc *GetTicketStatsUseCase) Execute(ctx context.Context) (*TicketStats, error) {
	byStatus, err := uc.ticketRepo.CountByStatus(ctx)
	if err != nil {
		uc.logger.Errorw("failed to count tickets by status", "error", err)
		return nil, err
	}

	byCategory, err := uc.ticketRepo.CountByCategory(ctx)
	if err != nil {
		uc.logger.Errorw("failed to count tickets by category", "error", err)
		return nil, err
	}

	stats := &TicketStats{
		ByStatus:   make(map[string]int64, len(byStatus)),
		ByCategory: byCategory,
	}
	// Always expose every status, even with zero tickets
	for _, s := range vo.AllStatuses() {
		stats.ByStatus[s.String()] = byStatus[s]
		stats.Total += byStatus[s]
	}

	return stats, nil
}
