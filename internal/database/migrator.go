package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"
	"time"
)

//go:embed migrations/*/*.sql
var migrations embed.FS

const versionTable = "schema_migrations"

type migration struct {
	version int64
	name    string
	stmts   []string
}

// Migrate applies every embedded migration for the current driver that is
// newer than the version recorded in schema_migrations.
func (d *Database) Migrate(ctx context.Context) error {
	pending, err := loadMigrations(d.Driver)
	if err != nil {
		return err
	}

	create := "CREATE TABLE IF NOT EXISTS " + versionTable +
		" (version BIGINT NOT NULL PRIMARY KEY, applied_at TIMESTAMP NOT NULL)"
	if _, err := d.ExecContext(ctx, create); err != nil {
		return fmt.Errorf("creating %s: %w", versionTable, err)
	}

	from, err := d.SchemaVersion(ctx)
	if err != nil {
		return err
	}

	to := from
	for _, m := range pending {
		if m.version <= from {
			continue
		}
		for _, stmt := range m.stmts {
			if _, err := d.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("applying migration %s: %w", m.name, err)
			}
		}
		insert := d.Builder.Insert(versionTable).
			Columns("version", "applied_at").
			Values(m.version, time.Now().UTC())
		if _, err := d.ExecAffecting(ctx, insert); err != nil {
			return fmt.Errorf("recording migration %s: %w", m.name, err)
		}
		to = m.version
	}

	if from == to {
		d.log.Info().Msgf("database schema up to date, version %d", to)
	} else {
		d.log.Info().Msgf("migrated database schema, from %d to %d", from, to)
	}
	return nil
}

// SchemaVersion reports the highest applied migration, 0 on a fresh database.
func (d *Database) SchemaVersion(ctx context.Context) (int64, error) {
	query, args, err := d.Builder.Select("COALESCE(MAX(version), 0)").From(versionTable).ToSql()
	if err != nil {
		return 0, err
	}
	var version int64
	if err := d.GetContext(ctx, &version, query, args...); err != nil {
		return 0, fmt.Errorf("retrieving schema version: %w", err)
	}
	return version, nil
}

func loadMigrations(driver string) ([]migration, error) {
	dir := path.Join("migrations", driver)
	entries, err := fs.ReadDir(migrations, dir)
	if err != nil {
		return nil, fmt.Errorf("no migrations for driver %q: %w", driver, err)
	}

	var out []migration
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		prefix, _, _ := strings.Cut(e.Name(), "_")
		version, err := strconv.ParseInt(prefix, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("migration %s: version prefix: %w", e.Name(), err)
		}
		body, err := fs.ReadFile(migrations, path.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		out = append(out, migration{version: version, name: e.Name(), stmts: splitStatements(string(body))})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].version < out[j].version })
	return out, nil
}

// splitStatements breaks a migration file on semicolons. The MySQL driver
// rejects multi-statement Exec calls unless multiStatements is set.
func splitStatements(body string) []string {
	var stmts []string
	for _, s := range strings.Split(body, ";") {
		if s = strings.TrimSpace(s); s != "" {
			stmts = append(stmts, s)
		}
	}
	return stmts
}
