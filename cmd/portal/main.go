package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/jnu-cse/cse-portal/config"
	"github.com/jnu-cse/cse-portal/internal/bootstrap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := bootstrap.LoadConfig()
	logger := bootstrap.InitLogger(cfg.IsDev)
	if err == nil {
		err = run(ctx, &cfg, logger)
	}
	if err != nil {
		logger.ErrorContext(ctx, "fatal error", "error", err)
		stop()
		os.Exit(1) //nolint:forbidigo // Main entrypoint should exit with non-zero status on fatal errors.
	}
}

func run(ctx context.Context, cfg *config.AppConfig, logger *slog.Logger) error {
	if err := bootstrap.ValidateConfig(cfg); err != nil {
		return err
	}
	logStartupInfo(ctx, logger, cfg)

	db, redisClient, err := initInfrastructure(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeInfrastructure(ctx, logger, db, redisClient)

	identity, err := bootstrap.BuildIdentityService(ctx, bootstrap.AuthConfig{
		App:         cfg,
		DB:          db,
		RedisClient: redisClient,
		Logger:      logger,
	})
	if err != nil {
		return fmt.Errorf("build identity service: %w", err)
	}

	srv, err := bootstrap.NewHTTPServer(bootstrap.HTTPServerConfig{
		Config:   cfg,
		Identity: identity,
		Logger:   logger,
	})
	if err != nil {
		return err
	}
	return srv.Run(ctx)
}

func logStartupInfo(ctx context.Context, logger *slog.Logger, cfg *config.AppConfig) {
	logger.InfoContext(ctx, "starting cse portal",
		"dev", cfg.IsDev,
		"auth_mode", cfg.Auth.Mode,
		"api_base_url", cfg.APIBaseURL(),
		"db_enabled", cfg.Postgres.Enabled,
		"redis_enabled", cfg.Redis.Enabled)
}

// initInfrastructure connects the account database and the session store.
// Either may be nil when disabled in dev mode.
//
//nolint:ireturn // returning redis.UniversalClient keeps sentinel/cluster support flexible.
func initInfrastructure(
	ctx context.Context,
	cfg *config.AppConfig,
	logger *slog.Logger,
) (*sql.DB, redis.UniversalClient, error) {
	dbCfg := bootstrap.DatabaseConfig{
		DBConfig:    cfg.Postgres,
		RedisConfig: cfg.Redis,
		Logger:      logger,
	}

	var db *sql.DB
	if cfg.Postgres.Enabled {
		var err error
		db, err = bootstrap.ConnectDB(ctx, dbCfg)
		if err != nil {
			return nil, nil, fmt.Errorf("connect db: %w", err)
		}
		if cfg.Postgres.RunMigrationsOnStart {
			err = bootstrap.RunMigrations(ctx, db, logger)
		} else {
			logger.InfoContext(ctx, "skipping database migrations on startup", "reason", "disabled via config")
		}
		if err != nil {
			closeInfrastructure(ctx, logger, db, nil)
			return nil, nil, err
		}
	}

	var redisClient redis.UniversalClient
	if cfg.Redis.Enabled {
		var err error
		redisClient, err = bootstrap.ConnectRedis(ctx, dbCfg)
		if err != nil {
			closeInfrastructure(ctx, logger, db, nil)
			return nil, nil, fmt.Errorf("connect redis: %w", err)
		}
	}

	return db, redisClient, nil
}

func closeInfrastructure(ctx context.Context, logger *slog.Logger, db *sql.DB, redisClient redis.UniversalClient) {
	if db != nil {
		if err := db.Close(); err != nil {
			logger.ErrorContext(ctx, "close database failed", "error", err)
		}
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			logger.ErrorContext(ctx, "close redis failed", "error", err)
		}
	}
}
