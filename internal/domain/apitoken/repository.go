package apitoken

import "context"

type Repository interface {
	Save(ctx context.Context, token *APIToken) error
	Update(ctx context.Context, token *APIToken) error
	Delete(ctx context.Context, tokenID uint) error
	GetByID(ctx context.Context, tokenID uint) (*APIToken, error)
	GetByHash(ctx context.Context, tokenHash string) (*APIToken, error)
	ListByUserID(ctx context.Context, userID uint) ([]*APIToken, error)
	List(ctx context.Context) ([]*APIToken, error)
}
