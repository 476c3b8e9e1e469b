package main

import (
	"os"

	"github.com/spf13/cobra"

	"example.com/catalog-service/cmd/admin"
	"example.com/catalog-service/cmd/migrate"
	"example.com/catalog-service/cmd/serve"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "catalog",
		Short:        "Catalog service for products and payment methods",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(serve.NewServeCommand())
	rootCmd.AddCommand(migrate.NewMigrateCommand())
	rootCmd.AddCommand(admin.NewAdminCommand())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
