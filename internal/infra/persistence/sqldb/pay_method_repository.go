package sqldb

import (
	"context"
	"database/sql"
	"errors"

	sq "github.com/Masterminds/squirrel"

	"example.com/catalog-service/internal/database"
	dompaymethod "example.com/catalog-service/internal/domain/paymethod"
	"example.com/catalog-service/internal/domain/softdelete"
)

const payMethodsTable = "pay_methods"

var payMethodColumns = []string{"id", "name", "code", "available", "deleted_at"}

type payMethodRow struct {
	ID        int64        `db:"id"`
	Name      string       `db:"name"`
	Code      string       `db:"code"`
	Available bool         `db:"available"`
	DeletedAt sql.NullTime `db:"deleted_at"`
}

func (r payMethodRow) toDomain() *dompaymethod.PayMethod {
	return &dompaymethod.PayMethod{
		ID:        r.ID,
		Name:      r.Name,
		Code:      r.Code,
		Available: r.Available,
		DeletedAt: timePtr(r.DeletedAt),
	}
}

type PayMethodRepository struct {
	db *database.Database
}

func NewPayMethodRepository(db *database.Database) *PayMethodRepository {
	return &PayMethodRepository{db: db}
}

func (r *PayMethodRepository) Create(ctx context.Context, m *dompaymethod.PayMethod) (*dompaymethod.PayMethod, error) {
	insert := r.db.Builder.Insert(payMethodsTable).
		Columns("name", "code", "available").
		Values(m.Name, m.Code, m.Available)

	id, err := r.db.InsertReturningID(ctx, insert)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, dompaymethod.ErrPayMethodNameTaken
		}
		return nil, err
	}
	m.ID = id
	return m, nil
}

func (r *PayMethodRepository) Update(ctx context.Context, m *dompaymethod.PayMethod) (*dompaymethod.PayMethod, error) {
	update := r.db.Builder.Update(payMethodsTable).
		SetMap(map[string]any{
			"name":       m.Name,
			"code":       m.Code,
			"available":  m.Available,
			"updated_at": now(),
		}).
		Where(sq.Eq{"id": m.ID, database.DeletedAtColumn: nil})

	rows, err := r.db.ExecAffecting(ctx, update)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, dompaymethod.ErrPayMethodNameTaken
		}
		return nil, err
	}
	if rows == 0 {
		return nil, dompaymethod.ErrPayMethodNotFound
	}
	return m, nil
}

func (r *PayMethodRepository) GetByID(ctx context.Context, id int64, scope softdelete.Scope) (*dompaymethod.PayMethod, error) {
	return r.getOne(ctx, sq.Eq{"id": id}, scope)
}

func (r *PayMethodRepository) GetByName(ctx context.Context, name string, scope softdelete.Scope) (*dompaymethod.PayMethod, error) {
	return r.getOne(ctx, sq.Eq{"name": name}, scope)
}

func (r *PayMethodRepository) getOne(ctx context.Context, where sq.Eq, scope softdelete.Scope) (*dompaymethod.PayMethod, error) {
	query, args, err := database.Scoped(
		r.db.Builder.Select(payMethodColumns...).From(payMethodsTable).Where(where),
		scope,
	).ToSql()
	if err != nil {
		return nil, err
	}

	var row payMethodRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, dompaymethod.ErrPayMethodNotFound
		}
		return nil, err
	}
	return row.toDomain(), nil
}

func (r *PayMethodRepository) List(ctx context.Context, filter dompaymethod.ListFilter) ([]*dompaymethod.PayMethod, error) {
	sel := database.Scoped(r.db.Builder.Select(payMethodColumns...).From(payMethodsTable), softdelete.Default)
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

	var rows []payMethodRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	methods := make([]*dompaymethod.PayMethod, 0, len(rows))
	for _, row := range rows {
		methods = append(methods, row.toDomain())
	}
	return methods, nil
}

func (r *PayMethodRepository) SoftDelete(ctx context.Context, id int64) error {
	update := r.db.Builder.Update(payMethodsTable).
		Set(database.DeletedAtColumn, now()).
		Where(sq.Eq{"id": id, database.DeletedAtColumn: nil})

	rows, err := r.db.ExecAffecting(ctx, update)
	if err != nil {
		return err
	}
	if rows == 0 {
		return dompaymethod.ErrPayMethodNotFound
	}
	return nil
}

func (r *PayMethodRepository) Restore(ctx context.Context, id int64) error {
	update := r.db.Builder.Update(payMethodsTable).
		Set(database.DeletedAtColumn, nil).
		Set("updated_at", now()).
		Where(sq.Eq{"id": id}).
		Where(sq.NotEq{database.DeletedAtColumn: nil})

	rows, err := r.db.ExecAffecting(ctx, update)
	if err != nil {
		return err
	}
	if rows == 0 {
		return dompaymethod.ErrPayMethodNotFound
	}
	return nil
}
