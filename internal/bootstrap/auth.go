package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/jnu-cse/cse-portal/config"
	"github.com/jnu-cse/cse-portal/internal/adapters/devauth"
	"github.com/jnu-cse/cse-portal/internal/adapters/memstore"
	"github.com/jnu-cse/cse-portal/internal/adapters/oidc"
	"github.com/jnu-cse/cse-portal/internal/adapters/passwords"
	redisadapter "github.com/jnu-cse/cse-portal/internal/adapters/redis"
	"github.com/jnu-cse/cse-portal/internal/data"
	"github.com/jnu-cse/cse-portal/internal/ports"
	"github.com/jnu-cse/cse-portal/internal/service"
)

// AuthConfig contains the dependencies of the identity service.
type AuthConfig struct {
	App         *config.AppConfig
	DB          *sql.DB               // nil selects the in-memory account store
	RedisClient redis.UniversalClient // nil selects the in-memory session store
	Logger      *slog.Logger
}

// BuildIdentityService assembles the identity provider adapter from configuration.
func BuildIdentityService(ctx context.Context, cfg AuthConfig) (*service.IdentityService, error) {
	if cfg.App == nil {
		return nil, errors.New("app config is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	auth := cfg.App.Auth

	federated, err := buildFederatedProvider(ctx, cfg.App, logger)
	if err != nil {
		return nil, err
	}

	return service.NewIdentityService(service.IdentityServiceOptions{
		Accounts:  accountStore(cfg, logger),
		Sessions:  sessionStore(cfg, logger),
		Hasher:    passwords.NewBcrypt(),
		Federated: federated,
		Policy: service.PasswordPolicy{
			MinLength:    auth.Password.MinLength,
			RequireUpper: auth.Password.RequireUpper,
			RequireLower: auth.Password.RequireLower,
		},
		SessionTTL:           auth.SessionTTL,
		HideAccountExistence: auth.HideAccountExistence,
		Logger:               logger,
	}), nil
}

//nolint:ireturn // the store is picked at runtime.
func accountStore(cfg AuthConfig, logger *slog.Logger) ports.AccountStore {
	if cfg.DB != nil {
		return data.NewAccountRepo(cfg.DB)
	}
	logger.Warn("account database disabled, accounts are kept in memory")
	return memstore.NewAccountStore()
}

//nolint:ireturn // the store is picked at runtime.
func sessionStore(cfg AuthConfig, logger *slog.Logger) ports.SessionStore {
	if cfg.RedisClient != nil {
		return redisadapter.NewSessionStoreWithPrefix(cfg.RedisClient, cfg.App.Redis.KeyPrefix)
	}
	logger.Warn("redis disabled, visitor sessions are kept in memory")
	return memstore.NewSessionStore()
}

// buildFederatedProvider returns nil when federated sign-in is not configured;
// the identity service then reports FederatedSignInFailed.
//
//nolint:ireturn // provider is picked by auth mode.
func buildFederatedProvider(ctx context.Context, app *config.AppConfig, logger *slog.Logger) (ports.FederatedProvider, error) {
	auth := app.Auth
	switch auth.Mode {
	case config.AuthModeMock:
		prov, err := devauth.NewProvider(devauth.Config{
			UserID:      auth.DevAuth.UserID,
			Email:       auth.DevAuth.Email,
			DisplayName: auth.DevAuth.DisplayName,
			PhotoURL:    auth.DevAuth.PhotoURL,
		})
		if err != nil {
			return nil, fmt.Errorf("create dev auth provider: %w", err)
		}
		logger.Warn("federated sign-in uses the development identity", "email", auth.DevAuth.Email)
		return prov, nil

	case config.AuthModeOIDC:
		if !auth.OAuth.Enabled() {
			logger.Warn("federated sign-in disabled: OAUTH_CLIENT_ID not set")
			return nil, nil
		}
		prov, err := oidc.NewProvider(ctx, oidc.ProviderConfig{
			ClientID:     auth.OAuth.ClientID,
			ClientSecret: auth.OAuth.ClientSecret,
			RedirectURL:  CallbackURL(app),
			Scope:        auth.OAuth.Scope,
			DiscoveryURL: auth.OAuth.DiscoveryURL,
		})
		if err != nil {
			return nil, fmt.Errorf("create oidc provider: %w", err)
		}
		logger.Info("federated sign-in enabled", "issuer", auth.OAuth.DiscoveryURL)
		return prov, nil

	default:
		return nil, fmt.Errorf("unsupported auth mode %q", auth.Mode)
	}
}

// CallbackURL is the federated sign-in return address registered with the issuer.
func CallbackURL(app *config.AppConfig) string {
	if app.Auth.OAuth.RedirectURL != "" {
		return app.Auth.OAuth.RedirectURL
	}
	return app.HTTP.BaseURL + "/auth/callback"
}
