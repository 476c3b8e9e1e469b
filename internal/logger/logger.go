// Package logger builds the zerolog logger shared by the CLI, the HTTP layer
// and the database package.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"example.com/catalog-service/internal/config"
)

const serviceName = "catalog-service"

// New returns a console logger in the local environment and a JSON logger
// everywhere else.
func New(cfg *config.Config) zerolog.Logger {
	var w io.Writer = os.Stdout
	if cfg.IsLocal() {
		w = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	}
	return NewWithWriter(w, cfg.Log.Level, cfg.Primary.Env)
}

func NewWithWriter(w io.Writer, level, env string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	return zerolog.New(w).
		Level(lvl).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("env", env).
		Logger()
}
