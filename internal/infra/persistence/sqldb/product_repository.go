package sqldb

import (
	"context"
	"database/sql"
	"errors"

	sq "github.com/Masterminds/squirrel"

	"example.com/catalog-service/internal/database"
	domproduct "example.com/catalog-service/internal/domain/product"
	"example.com/catalog-service/internal/domain/softdelete"
)

const productsTable = "products"

var productColumns = []string{"id", "name", "price", "image", "available", "deleted_at"}

type productRow struct {
	ID        int64          `db:"id"`
	Name      string         `db:"name"`
	Price     float64        `db:"price"`
	Image     sql.NullString `db:"image"`
	Available bool           `db:"available"`
	DeletedAt sql.NullTime   `db:"deleted_at"`
}

func (r productRow) toDomain() *domproduct.Product {
	return &domproduct.Product{
		ID:        r.ID,
		Name:      r.Name,
		Price:     r.Price,
		Image:     r.Image.String,
		Available: r.Available,
		DeletedAt: timePtr(r.DeletedAt),
	}
}

type ProductRepository struct {
	db *database.Database
}

func NewProductRepository(db *database.Database) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Create(ctx context.Context, p *domproduct.Product) (*domproduct.Product, error) {
	insert := r.db.Builder.Insert(productsTable).
		Columns("name", "price", "image", "available").
		Values(p.Name, p.Price, nullString(p.Image), p.Available)

	id, err := r.db.InsertReturningID(ctx, insert)
	if err != nil {
		return nil, err
	}
	p.ID = id
	return p, nil
}

func (r *ProductRepository) Update(ctx context.Context, p *domproduct.Product) (*domproduct.Product, error) {
	update := r.db.Builder.Update(productsTable).
		SetMap(map[string]any{
			"name":       p.Name,
			"price":      p.Price,
			"image":      nullString(p.Image),
			"available":  p.Available,
			"updated_at": now(),
		}).
		Where(sq.Eq{"id": p.ID, database.DeletedAtColumn: nil})

	rows, err := r.db.ExecAffecting(ctx, update)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, domproduct.ErrProductNotFound
	}
	return p, nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id int64, scope softdelete.Scope) (*domproduct.Product, error) {
	query, args, err := database.Scoped(
		r.db.Builder.Select(productColumns...).From(productsTable).Where(sq.Eq{"id": id}),
		scope,
	).ToSql()
	if err != nil {
		return nil, err
	}

	var row productRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domproduct.ErrProductNotFound
		}
		return nil, err
	}
	return row.toDomain(), nil
}

func (r *ProductRepository) List(ctx context.Context, filter domproduct.ListFilter) ([]*domproduct.Product, error) {
	sel := database.Scoped(r.db.Builder.Select(productColumns...).From(productsTable), softdelete.Default)
	if filter.Search != "" {
		sel = sel.Where(contains("name", filter.Search))
	}
	if filter.OnlyAvailable {
		sel = sel.Where(sq.Eq{"available": true})
	}

	query, args, err := sel.OrderBy("id DESC").ToSql()
	if err != nil {
		return nil, err
	}

	var rows []productRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	products := make([]*domproduct.Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, row.toDomain())
	}
	return products, nil
}

func (r *ProductRepository) SoftDelete(ctx context.Context, id int64) error {
	update := r.db.Builder.Update(productsTable).
		Set(database.DeletedAtColumn, now()).
		Where(sq.Eq{"id": id, database.DeletedAtColumn: nil})

	rows, err := r.db.ExecAffecting(ctx, update)
	if err != nil {
		return err
	}
	if rows == 0 {
		return domproduct.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepository) Restore(ctx context.Context, id int64) error {
	update := r.db.Builder.Update(productsTable).
		Set(database.DeletedAtColumn, nil).
		Set("updated_at", now()).
		Where(sq.Eq{"id": id}).
		Where(sq.NotEq{database.DeletedAtColumn: nil})

	rows, err := r.db.ExecAffecting(ctx, update)
	if err != nil {
		return err
	}
	if rows == 0 {
		return domproduct.ErrProductNotFound
	}
	return nil
}
