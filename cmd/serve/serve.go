package serve

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"

	"example.com/catalog-service/internal/config"
	"example.com/catalog-service/internal/logger"
	"example.com/catalog-service/internal/server"
)

const portFlag = "port"

func newServeFlags() map[string]cobraflags.Flag {
	return map[string]cobraflags.Flag{
		portFlag: &cobraflags.StringFlag{
			Name:  portFlag,
			Value: "",
			Usage: "Port to listen on (overrides CATALOG_SERVER__PORT)",
		},
	}
}

func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the catalog HTTP API",
		Long: `Run the catalog HTTP API.

Configuration is read from CATALOG_* environment variables and an optional .env
file. The server stops gracefully on SIGINT or SIGTERM.`,
	}
	flags := newServeFlags()
	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		return serveCommand(cmd, flags)
	}
	cobraflags.RegisterMap(cmd, flags)
	return cmd
}

func serveCommand(cmd *cobra.Command, serveFlags map[string]cobraflags.Flag) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if port := serveFlags[portFlag].GetString(); port != "" {
		cfg.Server.Port = port
	}

	log := logger.New(cfg)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := server.New(ctx, cfg, log)
	if err != nil {
		return err
	}
	srv.SetupHTTPServer(srv.Handler())

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		_ = srv.Shutdown(context.Background())
		return fmt.Errorf("server stopped: %w", err)
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info().Msg("server exited properly")
	return nil
}
