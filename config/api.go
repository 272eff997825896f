package config

import (
	"strings"
	"time"
)

// APIConfig configures the client for the department REST API consumed by the screens.
type APIConfig struct {
	// BaseURL overrides the mode-selected base URL when set.
	BaseURL string `env:"BASE_URL"`
	// ProdBaseURL is used outside dev mode.
	ProdBaseURL string `env:"BASE_URL_PROD"  envDefault:"https://cse-portal-server.vercel.app"`
	// LocalBaseURL is used in dev mode.
	LocalBaseURL string `env:"BASE_URL_LOCAL" envDefault:"http://localhost:5000"`
	// Timeout bounds each API request.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"10s"`
}

// ResolveBaseURL picks the API base URL for the given build mode.
func (a APIConfig) ResolveBaseURL(isDev bool) string {
	if v := strings.TrimSpace(a.BaseURL); v != "" {
		return strings.TrimRight(v, "/")
	}
	if isDev {
		return strings.TrimRight(a.LocalBaseURL, "/")
	}
	return strings.TrimRight(a.ProdBaseURL, "/")
}

// Sanitize applies guardrails to API client configuration values.
func (a *APIConfig) Sanitize() {
	if a.Timeout <= 0 {
		a.Timeout = 10 * time.Second
	}
	if a.Timeout > time.Minute {
		a.Timeout = time.Minute
	}
}
