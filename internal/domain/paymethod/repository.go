package paymethod

import (
	"context"

	"example.com/catalog-service/internal/domain/softdelete"
)

type Repository interface {
	Create(ctx context.Context, m *PayMethod) (*PayMethod, error)
	Update(ctx context.Context, m *PayMethod) (*PayMethod, error)
	GetByID(ctx context.Context, id int64, scope softdelete.Scope) (*PayMethod, error)
	GetByName(ctx context.Context, name string, scope softdelete.Scope) (*PayMethod, error)
	List(ctx context.Context, filter ListFilter) ([]*PayMethod, error)
	SoftDelete(ctx context.Context, id int64) error
	Restore(ctx context.Context, id int64) error
}
