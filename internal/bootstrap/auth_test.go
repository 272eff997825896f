package bootstrap

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jnu-cse/cse-portal/config"
	domainauth "github.com/jnu-cse/cse-portal/internal/domain/auth"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func devConfig() *config.AppConfig {
	return &config.AppConfig{
		IsDev: true,
		Auth: config.AuthConfig{
			Mode: config.AuthModeMock,
			DevAuth: config.DevAuthConfig{
				UserID:      "dev-user",
				Email:       "Dev@Example.com",
				DisplayName: "Dev Student",
			},
			Password:       config.PasswordPolicyConfig{MinLength: 6, RequireUpper: true, RequireLower: true},
			SessionTTL:     time.Hour,
			ResolveTimeout: time.Second,
		},
		HTTP: config.HTTPConfig{Addr: ":0", BaseURL: "http://localhost:8080"},
		API:  config.APIConfig{LocalBaseURL: "http://localhost:5000", Timeout: time.Second},
	}
}

func TestBuildIdentityService_InMemoryFallbacks(t *testing.T) {
	ctx := context.Background()
	svc, err := BuildIdentityService(ctx, AuthConfig{App: devConfig(), Logger: quietLogger()})
	require.NoError(t, err)

	created, err := svc.CreateAccount(ctx, "session-a", "student@example.edu", "Passw0rd")
	require.NoError(t, err)

	signedIn, err := svc.SignIn(ctx, "session-b", "student@example.edu", "Passw0rd")
	require.NoError(t, err)
	assert.Equal(t, created.UserID, signedIn.UserID)

	_, err = svc.CreateAccount(ctx, "session-c", "student@example.edu", "Passw0rd")
	assert.ErrorIs(t, err, domainauth.ErrEmailAlreadyInUse)
}

func TestBuildIdentityService_PasswordPolicyFromConfig(t *testing.T) {
	cfg := devConfig()
	cfg.Auth.Password = config.PasswordPolicyConfig{MinLength: 10}
	svc, err := BuildIdentityService(context.Background(), AuthConfig{App: cfg, Logger: quietLogger()})
	require.NoError(t, err)

	_, err = svc.CreateAccount(context.Background(), "s", "short@example.edu", "abcdefg")
	assert.ErrorIs(t, err, domainauth.ErrWeakPassword)

	_, err = svc.CreateAccount(context.Background(), "s", "long@example.edu", "abcdefghij")
	assert.NoError(t, err)
}

func TestBuildIdentityService_DevFederatedIdentity(t *testing.T) {
	ctx := context.Background()
	svc, err := BuildIdentityService(ctx, AuthConfig{App: devConfig(), Logger: quietLogger()})
	require.NoError(t, err)

	start, err := svc.BeginFederatedSignIn(ctx, "http://localhost:8080/auth/callback")
	require.NoError(t, err)
	assert.NotEmpty(t, start.AuthURL)
	assert.NotEmpty(t, start.State)
}

func TestBuildIdentityService_OIDCWithoutClientDisablesFederated(t *testing.T) {
	cfg := devConfig()
	cfg.Auth.Mode = config.AuthModeOIDC
	svc, err := BuildIdentityService(context.Background(), AuthConfig{App: cfg, Logger: quietLogger()})
	require.NoError(t, err)

	_, err = svc.BeginFederatedSignIn(context.Background(), CallbackURL(cfg))
	assert.ErrorIs(t, err, domainauth.ErrFederatedSignInFailed)
}

func TestBuildIdentityService_Errors(t *testing.T) {
	_, err := BuildIdentityService(context.Background(), AuthConfig{})
	require.Error(t, err)

	cfg := devConfig()
	cfg.Auth.Mode = "saml"
	_, err = BuildIdentityService(context.Background(), AuthConfig{App: cfg, Logger: quietLogger()})
	require.ErrorContains(t, err, "unsupported auth mode")

	cfg = devConfig()
	cfg.Auth.DevAuth.Email = ""
	_, err = BuildIdentityService(context.Background(), AuthConfig{App: cfg, Logger: quietLogger()})
	require.ErrorContains(t, err, "dev auth")
}

func TestCallbackURL(t *testing.T) {
	cfg := devConfig()
	assert.Equal(t, "http://localhost:8080/auth/callback", CallbackURL(cfg))

	cfg.Auth.OAuth.RedirectURL = "https://portal.example.edu/auth/callback"
	assert.Equal(t, "https://portal.example.edu/auth/callback", CallbackURL(cfg))
}
