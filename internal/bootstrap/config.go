package bootstrap

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/jnu-cse/cse-portal/config"
)

// InitLogger initializes the structured logger.
func InitLogger(isDev bool) *slog.Logger {
	level := slog.LevelInfo
	if isDev {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
	return logger
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() (config.AppConfig, error) {
	// Load .env file if it exists (development)
	if err := godotenv.Load(); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return config.AppConfig{}, fmt.Errorf("load .env file: %w", err)
		}
	}

	var cfg config.AppConfig
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	cfg.Sanitize()
	return cfg, nil
}

// ValidateConfig rejects configurations that only make sense during development.
func ValidateConfig(cfg *config.AppConfig) error {
	if cfg == nil {
		return errors.New("config is required")
	}
	if cfg.IsDev {
		return nil
	}
	var errs []error
	if !cfg.Postgres.Enabled {
		errs = append(errs, errors.New("DB_ENABLED=false is only allowed in dev mode"))
	}
	if !cfg.Redis.Enabled {
		errs = append(errs, errors.New("REDIS_ENABLED=false is only allowed in dev mode"))
	}
	if cfg.Auth.Mode == config.AuthModeMock {
		errs = append(errs, errors.New("AUTH_MODE=mock is only allowed in dev mode"))
	}
	return errors.Join(errs...)
}
