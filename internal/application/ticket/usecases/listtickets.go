package usecases

import (
	"context"

	"derbydesk/internal/application/ticket/dto"
	"derbydesk/internal/domain/ticket"
	vo "derbydesk/internal/domain/ticket/valueobjects"
	"derbydesk/internal/shared/errors"
	"derbydesk/internal/shared/logger"
	"derbydesk/internal/shared/utils"
)

type ListTicketsQuery struct {
	Status     string
	Priority   string
	CategoryID *uint
	CreatorID  *uint
	AssigneeID *uint
	Search     string
	Page       int
	PageSize   int
	SortBy     string
	SortOrder  string

	// Unpaginated returns the full visible set. The read API serves
	// complete exports this way.
	Unpaginated bool

	ViewerID    uint
	ViewerStaff bool
}

type ListTicketsResult struct {
	Tickets    []dto.TicketListItemDTO
	Total      int64
	Page       int
	PageSize   int
	TotalPages int
}

type ListTicketsUseCase struct {
	ticketRepo ticket.TicketRepository
	logger     logger.Interface
}

func NewListTicketsUseCase(ticketRepo ticket.TicketRepository, logger logger.Interface) *ListTicketsUseCase {
	return &ListTicketsUseCase{
		ticketRepo: ticketRepo,
		logger:     logger,
	}
}

func (uc *ListTicketsUseCase) Execute(ctx context.Context, query ListTicketsQuery) (*ListTicketsResult, error) {
	filter, err := uc.buildFilter(query)
	if err != nil {
		return nil, err
	}

	tickets, total, err := uc.list(ctx, query, filter)
	if err != nil {
		uc.logger.Errorw("failed to list tickets", "error", err)
		return nil, err
	}

	// Out-of-range pages snap to the last valid page instead of
	// returning an empty result.
	page := utils.ClampPage(filter.Page, total, filter.PageSize)
	if page != filter.Page {
		filter.Page = page
		tickets, total, err = uc.list(ctx, query, filter)
		if err != nil {
			return nil, err
		}
	}

	items := make([]dto.TicketListItemDTO, 0, len(tickets))
	for _, t := range tickets {
		items = append(items, dto.ToTicketListItemDTO(t))
	}

	return &ListTicketsResult{
		Tickets:    items,
		Total:      total,
		Page:       page,
		PageSize:   filter.PageSize,
		TotalPages: utils.TotalPages(total, filter.PageSize),
	}, nil
}

func (uc *ListTicketsUseCase) list(ctx context.Context, query ListTicketsQuery, filter ticket.TicketFilter) ([]*ticket.Ticket, int64, error) {
	if query.ViewerStaff {
		return uc.ticketRepo.List(ctx, filter)
	}
	return uc.ticketRepo.ListVisibleTo(ctx, query.ViewerID, filter)
}

func (uc *ListTicketsUseCase) buildFilter(query ListTicketsQuery) (ticket.TicketFilter, error) {
	pg := utils.ValidatePagination(query.Page, query.PageSize)
	if query.Unpaginated {
		pg.Page = 1
		pg.PageSize = 0
	}

	filter := ticket.TicketFilter{
		CategoryID: query.CategoryID,
		CreatorID:  query.CreatorID,
		AssigneeID: query.AssigneeID,
		Search:     query.Search,
		Page:       pg.Page,
		PageSize:   pg.PageSize,
		SortBy:     query.SortBy,
		SortOrder:  query.SortOrder,
	}

	if query.Status != "" {
		status, err := vo.NewTicketStatus(query.Status)
		if err != nil {
			return filter, errors.NewValidationError(err.Error())
		}
		filter.Status = &status
	}
	if query.Priority != "" {
		priority, err := vo.NewPriority(query.Priority)
		if err != nil {
			return filter, errors.NewValidationError(err.Error())
		}
		filter.Priority = &priority
	}

	return filter, nil
}
