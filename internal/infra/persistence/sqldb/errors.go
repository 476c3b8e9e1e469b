// Package sqldb implements the domain repositories on top of database/sql,
// building statements with squirrel and scanning rows with sqlx.
package sqldb

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
)

const (
	mysqlDuplicateEntry = 1062
	pgUniqueViolation   = "23505"
)

// isUniqueViolation reports whether err comes from a UNIQUE constraint in any
// of the supported drivers.
func isUniqueViolation(err error) bool {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == mysqlDuplicateEntry
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return false
}

// likeEscaper neutralizes LIKE wildcards. '!' is used as the escape character
// because a backslash literal is read differently by MySQL and PostgreSQL.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// contains matches rows whose column holds s as a literal substring.
func contains(column, s string) sq.Sqlizer {
	return sq.Expr(column+" LIKE ? ESCAPE '!'", "%"+likeEscaper.Replace(s)+"%")
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

func now() time.Time {
	return time.Now().UTC()
}
