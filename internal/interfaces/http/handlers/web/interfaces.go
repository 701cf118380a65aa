package web

import (
	"context"

	apitokenUsecases "derbydesk/internal/application/apitoken/usecases"
	auditApp "derbydesk/internal/application/audit"
	categoryUsecases "derbydesk/internal/application/category/usecases"
	userUsecases "derbydesk/internal/application/user/usecases"
	"derbydesk/internal/domain/apitoken"
	"derbydesk/internal/domain/category"
	"derbydesk/internal/domain/user"
	"derbydesk/internal/infrastructure/cache"
)

// Use-case dependencies of the web handlers, narrowed to what each page
// needs so tests can substitute them.

type LoginExecutor interface {
	Execute(ctx context.Context, cmd userUsecases.LoginCommand) (*userUsecases.LoginResult, error)
}

type LogoutExecutor interface {
	Execute(ctx context.Context, cmd userUsecases.LogoutCommand) error
}

type ChangePasswordExecutor interface {
	Execute(ctx context.Context, cmd userUsecases.ChangePasswordCommand) error
}

type CreateUserExecutor interface {
	Execute(ctx context.Context, cmd userUsecases.CreateUserCommand) (*user.User, error)
}

type UpdateUserExecutor interface {
	Execute(ctx context.Context, cmd userUsecases.UpdateUserCommand) (*user.User, error)
}

type DeleteUserExecutor interface {
	Execute(ctx context.Context, cmd userUsecases.DeleteUserCommand) error
}

type ListUsersExecutor interface {
	Execute(ctx context.Context, query userUsecases.ListUsersQuery) (*userUsecases.ListUsersResult, error)
}

type GetUserExecutor interface {
	Execute(ctx context.Context, userID uint) (*user.User, error)
}

type ListAssignableExecutor interface {
	Execute(ctx context.Context) ([]*user.User, error)
}

type IssueTokenExecutor interface {
	Execute(ctx context.Context, cmd apitokenUsecases.IssueTokenCommand) (*apitokenUsecases.IssueTokenResult, error)
}

type RevokeTokenExecutor interface {
	Execute(ctx context.Context, cmd apitokenUsecases.RevokeTokenCommand) error
}

type ListTokensExecutor interface {
	Execute(ctx context.Context, query apitokenUsecases.ListTokensQuery) ([]*apitoken.APIToken, error)
}

type CategoryLister interface {
	Execute(ctx context.Context) ([]cache.CategoryEntry, error)
}

type SaveCategoryExecutor interface {
	Execute(ctx context.Context, cmd categoryUsecases.SaveCategoryCommand) (*category.Category, error)
}

type DeleteCategoryExecutor interface {
	Execute(ctx context.Context, cmd categoryUsecases.DeleteCategoryCommand) error
}

type SecurityEventsLister interface {
	Execute(ctx context.Context, query auditApp.ListSecurityEventsQuery) (*auditApp.ListSecurityEventsResult, error)
}

type AuditLogLister interface {
	Execute(ctx context.Context, query auditApp.ListAuditLogQuery) (*auditApp.ListAuditLogResult, error)
}

// UserResolver looks up users in bulk for username resolution.
type UserResolver interface {
	GetByIDs(ctx context.Context, ids []uint) ([]*user.User, error)
}
