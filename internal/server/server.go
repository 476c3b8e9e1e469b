// Package server composes the catalog's dependencies and owns the HTTP
// server lifecycle.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"example.com/catalog-service/internal/config"
	"example.com/catalog-service/internal/database"
	"example.com/catalog-service/internal/infra/persistence/sqldb"
	"example.com/catalog-service/internal/infra/security"
	httpapi "example.com/catalog-service/internal/interface/http"
	authuc "example.com/catalog-service/internal/usecase/auth"
	paymethoduc "example.com/catalog-service/internal/usecase/paymethod"
	productuc "example.com/catalog-service/internal/usecase/product"
	useruc "example.com/catalog-service/internal/usecase/user"
)

type Server struct {
	Config *config.Config
	Logger zerolog.Logger
	DB     *database.Database

	Users      *useruc.Service
	Products   *productuc.Service
	PayMethods *paymethoduc.Service
	Auth       *authuc.Service

	httpServer *http.Server
}

// New opens the database and builds every service on top of it. The HTTP
// server is configured separately by SetupHTTPServer.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Server, error) {
	db, err := database.Open(ctx, cfg.Database, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if cfg.Database.AutoMigrate {
		if err := db.Migrate(ctx); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	tokens := security.NewJWTService(cfg.Auth.SecretKey, cfg.Auth.TokenTTL)
	passwords := security.NewBcryptService(0)
	userRepo := sqldb.NewUserRepository(db)

	return &Server{
		Config:     cfg,
		Logger:     log,
		DB:         db,
		Users:      useruc.NewService(userRepo, passwords),
		Products:   productuc.NewService(sqldb.NewProductRepository(db)),
		PayMethods: paymethoduc.NewService(sqldb.NewPayMethodRepository(db)),
		Auth:       authuc.NewService(userRepo, passwords, tokens),
	}, nil
}

// Handler builds the router over the server's services.
func (s *Server) Handler() http.Handler {
	api := httpapi.NewAPI(httpapi.Dependencies{
		AuthService:      s.Auth,
		ProductService:   s.Products,
		PayMethodService: s.PayMethods,
		DB:               s.DB,
		Logger:           s.Logger,
	})
	return api.Router()
}

func (s *Server) SetupHTTPServer(handler http.Handler) {
	s.httpServer = &http.Server{
		Addr:         ":" + s.Config.Server.Port,
		Handler:      handler,
		ReadTimeout:  s.Config.Server.ReadTimeout,
		WriteTimeout: s.Config.Server.WriteTimeout,
		IdleTimeout:  s.Config.Server.IdleTimeout,
	}
}

// Start blocks until the server stops. A graceful Shutdown is not an error.
func (s *Server) Start() error {
	if s.httpServer == nil {
		return errors.New("HTTP server not initialized")
	}

	s.Logger.Info().
		Str("port", s.Config.Server.Port).
		Str("env", s.Config.Primary.Env).
		Str("driver", s.Config.Database.Driver).
		Msg("starting server")

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown HTTP server: %w", err)
		}
	}

	if err := s.DB.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}
	return nil
}
