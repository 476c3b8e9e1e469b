package product

import (
	"context"

	"example.com/catalog-service/internal/domain/softdelete"
)

type Repository interface {
	Create(ctx context.Context, p *Product) (*Product, error)
	// Update writes every column of p. Soft-deleted rows are not matched.
	Update(ctx context.Context, p *Product) (*Product, error)
	GetByID(ctx context.Context, id int64, scope softdelete.Scope) (*Product, error)
	List(ctx context.Context, filter ListFilter) ([]*Product, error)
	SoftDelete(ctx context.Context, id int64) error
	Restore(ctx context.Context, id int64) error
}
