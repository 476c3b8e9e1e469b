package migrate

import (
	"github.com/spf13/cobra"

	"example.com/catalog-service/internal/config"
	"example.com/catalog-service/internal/database"
	"example.com/catalog-service/internal/logger"
)

func NewMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the embedded schema migrations for the configured driver",
		RunE:  migrateCommand,
	}
}

func migrateCommand(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(cfg)

	db, err := database.Open(cmd.Context(), cfg.Database, log)
	if err != nil {
		return err
	}
	defer db.Close()

	return db.Migrate(cmd.Context())
}
