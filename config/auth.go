package config

import (
	"fmt"
	"strings"
	"time"
)

// AuthMode selects the federated sign-in provider.
type AuthMode string

const (
	// AuthModeOIDC uses an OpenID Connect issuer (Google by default) for federated sign-in.
	AuthModeOIDC AuthMode = "oidc"
	// AuthModeMock uses a fixed development identity for federated sign-in (development only).
	AuthModeMock AuthMode = "mock"
)

// UnmarshalText implements encoding.TextUnmarshaler for AuthMode.
func (a *AuthMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(strings.TrimSpace(string(text)))
	switch v {
	case "oidc", "mock":
		*a = AuthMode(v)
		return nil
	case "oauth":
		// accepted for existing deployments
		*a = AuthModeOIDC
		return nil
	default:
		return fmt.Errorf("invalid AuthMode: %q (valid options: oidc, mock)", v)
	}
}

// OAuthConfig contains OAuth/OIDC configuration for federated sign-in.
type OAuthConfig struct {
	ClientID     string `env:"CLIENT_ID"`
	ClientSecret string `env:"CLIENT_SECRET"`
	RedirectURL  string `env:"REDIRECT_URL"  envDefault:"http://localhost:8080/auth/callback"`
	Scope        string `env:"SCOPE"         envDefault:"openid profile email"`
	DiscoveryURL string `env:"DISCOVERY_URL" envDefault:"https://accounts.google.com"`
}

// Enabled reports whether enough OAuth settings are present to build a provider.
func (o OAuthConfig) Enabled() bool {
	return strings.TrimSpace(o.ClientID) != "" && strings.TrimSpace(o.DiscoveryURL) != ""
}

// DevAuthConfig controls the stub federated identity used when AUTH_MODE=mock.
type DevAuthConfig struct {
	UserID      string `env:"USER_ID"      envDefault:"dev-user"`
	Email       string `env:"EMAIL"        envDefault:"dev@example.com"`
	DisplayName string `env:"DISPLAY_NAME" envDefault:"Dev Student"`
	PhotoURL    string `env:"PHOTO_URL"`
}

// PasswordPolicyConfig holds the password rules enforced at account creation.
type PasswordPolicyConfig struct {
	MinLength    int  `env:"MIN_LENGTH"    envDefault:"6"`
	RequireUpper bool `env:"REQUIRE_UPPER" envDefault:"true"`
	RequireLower bool `env:"REQUIRE_LOWER" envDefault:"true"`
}

// AuthConfig groups all authentication-related configuration.
type AuthConfig struct {
	// Mode determines which federated sign-in provider to use.
	Mode AuthMode `env:"AUTH_MODE" envDefault:"oidc"`

	// OAuth configuration (used when Mode=oidc).
	OAuth OAuthConfig `envPrefix:"OAUTH_"`

	// DevAuth configuration (used when Mode=mock).
	DevAuth DevAuthConfig `envPrefix:"DEV_AUTH_"`

	// Password rules for new accounts.
	Password PasswordPolicyConfig `envPrefix:"AUTH_PASSWORD_"`

	// SessionTTL is how long a sign-in stays bound to a visitor session.
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"24h"`

	// ResolveTimeout bounds how long a guarded request waits for the visitor's identity to resolve.
	ResolveTimeout time.Duration `env:"AUTH_RESOLVE_TIMEOUT" envDefault:"3s"`

	// HideAccountExistence reports unknown emails and wrong passwords as the same invalid-credential error.
	HideAccountExistence bool `env:"AUTH_HIDE_ACCOUNT_EXISTENCE" envDefault:"false"`
}

// Sanitize applies guardrails to auth configuration values.
func (a *AuthConfig) Sanitize() {
	if a.Password.MinLength < 1 {
		a.Password.MinLength = 1
	}
	if a.Password.MinLength > 72 {
		// bcrypt ignores input beyond 72 bytes
		a.Password.MinLength = 72
	}
	if a.SessionTTL <= 0 {
		a.SessionTTL = 24 * time.Hour
	}
	if a.ResolveTimeout <= 0 {
		a.ResolveTimeout = 3 * time.Second
	}
}
