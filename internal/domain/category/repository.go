package category

import "context"

type Repository interface {
	Save(ctx context.Context, category *Category) error
	Update(ctx context.Context, category *Category) error
	Delete(ctx context.Context, categoryID uint) error
	GetByID(ctx context.Context, categoryID uint) (*Category, error)
	GetBySlug(ctx context.Context, slug string) (*Category, error)
	List(ctx context.Context) ([]*Category, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
}
