package sqldb

import (
	"context"
	"database/sql"
	"errors"

	sq "github.com/Masterminds/squirrel"

	"example.com/catalog-service/internal/database"
	dom "example.com/catalog-service/internal/domain/user"
)

const usersTable = "users"

var userColumns = []string{"id", "name", "email", "password_hash", "role_code"}

type userRow struct {
	ID           int64  `db:"id"`
	Name         string `db:"name"`
	Email        string `db:"email"`
	PasswordHash string `db:"password_hash"`
	RoleCode     string `db:"role_code"`
}

type UserRepository struct {
	db *database.Database
}

func NewUserRepository(db *database.Database) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *dom.User) (*dom.User, error) {
	insert := r.db.Builder.Insert(usersTable).
		Columns("name", "email", "password_hash", "role_code").
		Values(u.Name, u.Email, u.PasswordHash, string(u.RoleCode))

	id, err := r.db.InsertReturningID(ctx, insert)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, dom.ErrEmailAlreadyUsed
		}
		return nil, err
	}
	u.ID = id
	return u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*dom.User, error) {
	return r.getOne(ctx, sq.Eq{"id": id})
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*dom.User, error) {
	return r.getOne(ctx, sq.Eq{"email": email})
}

func (r *UserRepository) getOne(ctx context.Context, where sq.Eq) (*dom.User, error) {
	query, args, err := r.db.Builder.Select(userColumns...).From(usersTable).Where(where).ToSql()
	if err != nil {
		return nil, err
	}

	var row userRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, dom.ErrUserNotFound
		}
		return nil, err
	}
	return &dom.User{
		ID:           row.ID,
		Name:         row.Name,
		Email:        row.Email,
		PasswordHash: row.PasswordHash,
		RoleCode:     dom.RoleCode(row.RoleCode),
	}, nil
}
