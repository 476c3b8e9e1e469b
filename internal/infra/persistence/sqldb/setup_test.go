package sqldb

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"example.com/catalog-service/internal/config"
	"example.com/catalog-service/internal/database"
)

func setupDB(t *testing.T) *database.Database {
	t.Helper()
	db, err := database.Open(context.Background(), config.DatabaseConfig{
		Driver:       database.DriverSQLite,
		DSN:          ":memory:",
		MaxOpenConns: 1,
	}, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, db.Migrate(context.Background()))
	t.Cleanup(func() { _ = db.Close() })
	return db
}
