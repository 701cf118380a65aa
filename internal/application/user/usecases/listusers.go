package usecases

import (
	"context"

	"derbydesk/internal/domain/user"
	"derbydesk/internal/shared/logger"
	"derbydesk/internal/shared/utils"
)

type ListUsersQuery struct {
	Username string
	Email    string
	Role     string
	Active   *bool
	Page     int
	PageSize int
	OrderBy  string
	Order    string
}

type ListUsersResult struct {
	Users      []*user.User
	Total      int64
	Page       int
	PageSize   int
	TotalPages int
}

type ListUsersUseCase struct {
	userRepo user.Repository
	logger   logger.Interface
}

func NewListUsersUseCase(userRepo user.Repository, logger logger.Interface) *ListUsersUseCase {
	return &ListUsersUseCase{
		userRepo: userRepo,
		logger:   logger,
	}
}

func (uc *ListUsersUseCase) Execute(ctx context.Context, query ListUsersQuery) (*ListUsersResult, error) {
	pg := utils.ValidatePagination(query.Page, query.PageSize)

	filter := user.ListFilter{
		Username: query.Username,
		Email:    query.Email,
		Role:     query.Role,
		Active:   query.Active,
		Page:     pg.Page,
		PageSize: pg.PageSize,
		OrderBy:  query.OrderBy,
		Order:    query.Order,
	}

	users, total, err := uc.userRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list users", "error", err)
		return nil, err
	}

	page := utils.ClampPage(pg.Page, total, pg.PageSize)
	if page != pg.Page {
		filter.Page = page
		users, total, err = uc.userRepo.List(ctx, filter)
		if err != nil {
			return nil, err
		}
	}

	return &ListUsersResult{
		Users:      users,
		Total:      total,
		Page:       page,
		PageSize:   pg.PageSize,
		TotalPages: utils.TotalPages(total, pg.PageSize),
	}, nil
}

// ListAssignableUseCase returns the active admin accounts that tickets
// may be assigned to.
type ListAssignableUseCase struct {
	userRepo user.Repository
	logger   logger.Interface
}

func NewListAssignableUseCase(userRepo user.Repository, logger logger.Interface) *ListAssignableUseCase {
	return &ListAssignableUseCase{
		userRepo: userRepo,
		logger:   logger,
	}
}

func (uc *ListAssignableUseCase) Execute(ctx context.Context) ([]*user.User, error) {
	users, err := uc.userRepo.ListAssignable(ctx)
	if err != nil {
		uc.logger.Errorw("failed to list assignable users", "error", err)
		return nil, err
	}
	return users, nil
}
