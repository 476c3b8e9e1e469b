// Package database opens the relational store behind the catalog and applies
// its schema. MySQL, PostgreSQL (through pgx) and SQLite are supported; the
// dialect decides the placeholder format and how generated ids are read back.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"

	"example.com/catalog-service/internal/config"
	"example.com/catalog-service/internal/domain/softdelete"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite3"
)

const pingTimeout = 10 * time.Second

// DeletedAtColumn is the soft-delete marker shared by every soft-deletable table.
const DeletedAtColumn = "deleted_at"

type Database struct {
	*sqlx.DB
	Driver  string
	Builder sq.StatementBuilderType
	log     zerolog.Logger
}

func Open(ctx context.Context, cfg config.DatabaseConfig, log zerolog.Logger) (*Database, error) {
	dsn, err := normalizeDSN(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(cfg.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Driver, err)
	}
	cfg = poolLimits(cfg)
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	// Zero keeps the database/sql default.
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", cfg.Driver, err)
	}

	log.Info().Str("driver", cfg.Driver).Int("max_open_conns", cfg.MaxOpenConns).Msg("database connected")

	return New(db, cfg.Driver, log), nil
}

// New wraps an already opened handle.
func New(db *sql.DB, driver string, log zerolog.Logger) *Database {
	return &Database{
		DB:      sqlx.NewDb(db, driver),
		Driver:  driver,
		Builder: sq.StatementBuilder.PlaceholderFormat(placeholderFormat(driver)),
		log:     log,
	}
}

// poolLimits pins an in-memory SQLite database to one connection that never
// expires: every connection would otherwise see its own empty database.
func poolLimits(cfg config.DatabaseConfig) config.DatabaseConfig {
	if !isInMemorySQLite(cfg.Driver, cfg.DSN) {
		return cfg
	}
	cfg.MaxOpenConns = 1
	cfg.MaxIdleConns = 1
	cfg.ConnMaxLifetime = 0
	return cfg
}

func isInMemorySQLite(driver, dsn string) bool {
	if driver != DriverSQLite {
		return false
	}
	return strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory")
}

func placeholderFormat(driver string) sq.PlaceholderFormat {
	if driver == DriverPostgres {
		return sq.Dollar
	}
	return sq.Question
}

// normalizeDSN forces the MySQL options the repositories rely on: DATETIME
// columns scan into time.Time and UPDATE reports matched rather than changed rows.
func normalizeDSN(driver, dsn string) (string, error) {
	if driver != DriverMySQL {
		return dsn, nil
	}
	mc, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("parse mysql dsn: %w", err)
	}
	mc.ParseTime = true
	mc.ClientFoundRows = true
	return mc.FormatDSN(), nil
}

// InsertReturningID runs an INSERT and reports the generated primary key.
func (d *Database) InsertReturningID(ctx context.Context, b sq.InsertBuilder) (int64, error) {
	if d.Driver == DriverMySQL {
		query, args, err := b.ToSql()
		if err != nil {
			return 0, err
		}
		res, err := d.ExecContext(ctx, query, args...)
		if err != nil {
			return 0, err
		}
		return res.LastInsertId()
	}

	query, args, err := b.Suffix("RETURNING id").ToSql()
	if err != nil {
		return 0, err
	}
	var id int64
	if err := d.QueryRowxContext(ctx, query, args...).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// ExecAffecting runs a write and reports how many rows it matched.
func (d *Database) ExecAffecting(ctx context.Context, b sq.Sqlizer) (int64, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return 0, err
	}
	res, err := d.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Scoped hides soft-deleted rows unless scope asks for them.
func Scoped(b sq.SelectBuilder, scope softdelete.Scope) sq.SelectBuilder {
	if scope.IncludesTrashed() {
		return b
	}
	return b.Where(sq.Eq{DeletedAtColumn: nil})
}

func (d *Database) Close() error {
	d.log.Info().Msg("closing database")
	return d.DB.Close()
}
