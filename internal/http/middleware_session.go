package httpx

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jnu-cse/cse-portal/internal/domain/route"
	"github.com/jnu-cse/cse-portal/internal/service"
)

// SessionConfig configures the visitor session middleware.
type SessionConfig struct {
	Registry     *service.SessionRegistry
	CookieDomain string
	// CookieTTL is the lifetime of the session cookie; 0 makes it a browser-session cookie.
	CookieTTL time.Duration
	Logger    *slog.Logger
}

// WithSession attaches the visitor's Session Context to the request, issuing a
// session cookie to first-time visitors. The context is released when the request ends.
func WithSession(cfg SessionConfig) func(http.Handler) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := cookieValue(r, SessionCookieName)
			if uuid.Validate(sessionID) != nil {
				sessionID = uuid.NewString()
				setCookie(w, r, cfg.CookieDomain, cookieSpec{
					Name:     SessionCookieName,
					Value:    sessionID,
					MaxAge:   cfg.CookieTTL,
					HTTPOnly: true,
				})
			}

			sc, release, err := cfg.Registry.Acquire(sessionID)
			if err != nil {
				if errors.Is(err, service.ErrRegistryClosed) {
					w.Header().Set("Retry-After", "1")
					http.Error(w, "server is shutting down", http.StatusServiceUnavailable)
					return
				}
				logger.ErrorContext(r.Context(), "acquire session context", "error", err)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}
			defer release()

			ctx := SetSessionInContext(r.Context(), sc)
			ctx = context.WithValue(ctx, rotatorKey{}, &sessionRotator{cfg: cfg, logger: logger, current: sc})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

var errNoSessionRotator = errors.New("session middleware not installed")

type rotatorKey struct{}

// sessionRotator moves a visitor onto a freshly minted session ID when they sign in,
// so an ID planted before authentication never carries the new identity.
type sessionRotator struct {
	cfg     SessionConfig
	logger  *slog.Logger
	current *service.SessionContext
}

// withFreshSession runs signIn against a new Session Context. When signIn succeeds
// the visitor's cookie is replaced with the new ID and the old binding is cleared;
// on failure the old session is left untouched.
func withFreshSession(w http.ResponseWriter, r *http.Request, signIn func(*service.SessionContext) error) error {
	rt, ok := r.Context().Value(rotatorKey{}).(*sessionRotator)
	if !ok || rt == nil {
		return errNoSessionRotator
	}

	fresh, release, err := rt.cfg.Registry.Acquire(uuid.NewString())
	if err != nil {
		return fmt.Errorf("acquire fresh session: %w", err)
	}
	defer release()

	if err := signIn(fresh); err != nil {
		return err
	}

	dropSetCookie(w, SessionCookieName)
	setCookie(w, r, rt.cfg.CookieDomain, cookieSpec{
		Name:     SessionCookieName,
		Value:    fresh.SessionID(),
		MaxAge:   rt.cfg.CookieTTL,
		HTTPOnly: true,
	})
	if err := rt.current.SignOut(r.Context()); err != nil {
		rt.logger.WarnContext(r.Context(), "clear previous session", "error", err)
	}
	rt.current = fresh
	return nil
}

// dropSetCookie removes any Set-Cookie header already queued for name.
func dropSetCookie(w http.ResponseWriter, name string) {
	prefix := name + "="
	var kept []string
	for _, v := range w.Header().Values("Set-Cookie") {
		if !strings.HasPrefix(v, prefix) {
			kept = append(kept, v)
		}
	}
	w.Header().Del("Set-Cookie")
	for _, v := range kept {
		w.Header().Add("Set-Cookie", v)
	}
}

// GuardConfig configures the Route Guard.
type GuardConfig struct {
	// ResolveTimeout bounds the wait for the visitor's initial identity.
	ResolveTimeout time.Duration
	// Placeholder renders the neutral page shown while the identity cannot be resolved.
	Placeholder http.Handler
	Logger      *slog.Logger
}

// RequireIdentity guards a private screen. Signed-in visitors pass through; others
// are sent to the login screen with the requested path as their Redirect Intent.
// While the identity is still resolving the guard waits, and shows a placeholder
// rather than redirecting if resolution does not finish in time.
func RequireIdentity(cfg GuardConfig) func(http.Handler) http.Handler {
	if cfg.ResolveTimeout <= 0 {
		cfg.ResolveTimeout = 3 * time.Second
	}
	if cfg.Placeholder == nil {
		cfg.Placeholder = http.HandlerFunc(defaultPlaceholder)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sc, ok := SessionFromContext(r.Context())
			if !ok {
				logger.ErrorContext(r.Context(), "route guard without session context", "path", r.URL.Path)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}

			if sc.Resolving() {
				ctx, cancel := context.WithTimeout(r.Context(), cfg.ResolveTimeout)
				err := sc.WaitResolved(ctx)
				cancel()
				if err != nil {
					if r.Context().Err() != nil {
						return
					}
					logger.WarnContext(r.Context(), "identity still resolving", "path", r.URL.Path)
					w.Header().Set("Retry-After", "1")
					cfg.Placeholder.ServeHTTP(w, r)
					return
				}
			}

			if _, signedIn := sc.Identity(); signedIn {
				next.ServeHTTP(w, r)
				return
			}
			redirectToLogin(w, r)
		})
	}
}

// loginURL builds the login location carrying path as the Redirect Intent.
func loginURL(path string) string {
	q := url.Values{}
	q.Set(redirectParam, path)
	return route.LoginPath + "?" + q.Encode()
}

func redirectToLogin(w http.ResponseWriter, r *http.Request) {
	target := loginURL(r.URL.Path)
	switch {
	case IsHTMX(r):
		SetHXRedirect(w, target)
		w.WriteHeader(http.StatusOK)
	case IsBrowserRequest(r):
		http.Redirect(w, r, target, http.StatusSeeOther)
	default:
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "authentication_required",
			Err:     errors.New("authentication required"),
		})
	}
}

func defaultPlaceholder(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusServiceUnavailable)
	_, _ = w.Write([]byte(`<!doctype html><title>Loading</title><p>Loading&hellip;</p>`))
}
