package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jnu-cse/cse-portal/config"
	"github.com/jnu-cse/cse-portal/internal/adapters/restapi"
	httpx "github.com/jnu-cse/cse-portal/internal/http"
	"github.com/jnu-cse/cse-portal/internal/ports"
	"github.com/jnu-cse/cse-portal/internal/service"
)

const shutdownTimeout = 10 * time.Second

// HTTPServerConfig contains configuration for the HTTP server.
type HTTPServerConfig struct {
	Config   *config.AppConfig
	Identity ports.IdentityProvider
	// API overrides the REST client built from Config.API.
	API    ports.PortalAPI
	Logger *slog.Logger
}

// Server bundles the HTTP server with the session registry it must drain on shutdown.
type Server struct {
	HTTP     *http.Server
	Registry *service.SessionRegistry
	logger   *slog.Logger
}

// NewHTTPServer wires the portal router and returns a server that is not yet listening.
func NewHTTPServer(cfg HTTPServerConfig) (*Server, error) {
	if cfg.Config == nil {
		return nil, errors.New("app config is required")
	}
	if cfg.Identity == nil {
		return nil, errors.New("identity provider is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	appCfg := cfg.Config

	api := cfg.API
	if api == nil {
		client, err := restapi.NewClient(restapi.Config{
			BaseURL: appCfg.APIBaseURL(),
			Timeout: appCfg.API.Timeout,
			Logger:  logger,
		})
		if err != nil {
			return nil, fmt.Errorf("create api client: %w", err)
		}
		api = client
	}

	registry := service.NewSessionRegistry(cfg.Identity, logger)
	handler, err := httpx.NewRouter(httpx.RouterServices{
		Registry:           registry,
		API:                api,
		CookieDomain:       appCfg.HTTP.CookieDomain,
		CallbackURL:        CallbackURL(appCfg),
		ResolveTimeout:     appCfg.Auth.ResolveTimeout,
		SessionTTL:         appCfg.Auth.SessionTTL,
		CompressionEnabled: appCfg.HTTP.CompressionEnabled,
		CompressionLevel:   appCfg.HTTP.CompressionLevel,
		IsDev:              appCfg.IsDev,
		Logger:             logger,
	})
	if err != nil {
		_ = registry.Close()
		return nil, fmt.Errorf("build router: %w", err)
	}

	addr := appCfg.HTTP.Addr
	// Guard against empty addr to avoid listening on Go default
	if addr == "" {
		addr = ":8080"
	}

	return &Server{
		HTTP: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
		Registry: registry,
		logger:   logger,
	}, nil
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.InfoContext(ctx, "starting HTTP server", "addr", s.HTTP.Addr)
		if err := s.HTTP.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			_ = s.Registry.Close()
			return fmt.Errorf("http server: %w", err)
		}
		return s.Shutdown(context.WithoutCancel(ctx))
	case <-ctx.Done():
		return s.Shutdown(context.WithoutCancel(ctx))
	}
}

// Shutdown stops accepting requests, waits for in-flight ones, then releases every session context.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.InfoContext(ctx, "shutting down HTTP server")

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	err := s.HTTP.Shutdown(shutdownCtx)
	if cerr := s.Registry.Close(); cerr != nil && !errors.Is(cerr, service.ErrRegistryClosed) {
		err = errors.Join(err, cerr)
	}
	if err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	s.logger.InfoContext(ctx, "HTTP server stopped")
	return nil
}
