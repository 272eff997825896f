package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	domainauth "github.com/jnu-cse/cse-portal/internal/domain/auth"
	"github.com/jnu-cse/cse-portal/internal/domain/route"
	"github.com/jnu-cse/cse-portal/internal/ports"
	"github.com/jnu-cse/cse-portal/internal/service"
)

// AuthHandlers serves federated sign-in, logout, status and profile endpoints.
type AuthHandlers struct {
	Routes route.Table
	// CallbackURL is the absolute URL of GET /auth/callback handed to the identity provider.
	CallbackURL    string
	CookieDomain   string
	ResolveTimeout time.Duration
	Logger         *slog.Logger
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

func (h *AuthHandlers) intent(raw string) domainauth.RedirectIntent {
	return domainauth.NewRedirectIntent(raw).Without(h.Routes.IsEntryScreen)
}

// FederatedBegin starts federated sign-in.
// GET /auth/federated?redirect_uri=<path>.
func (h *AuthHandlers) FederatedBegin(w http.ResponseWriter, r *http.Request) {
	sc, ok := SessionFromContext(r.Context())
	if !ok {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	intent := h.intent(r.URL.Query().Get(redirectParam))

	start, err := sc.BeginFederatedSignIn(r.Context(), h.CallbackURL)
	if err != nil {
		h.logger().WarnContext(r.Context(), "begin federated sign-in", "error", err)
		h.federatedFailed(w, r, intent)
		return
	}

	for _, c := range []cookieSpec{
		{Name: OAuthStateCookieName, Value: start.State},
		{Name: OAuthNonceCookieName, Value: start.Nonce},
		{Name: PostLoginRedirectCookie, Value: intent.Path()},
	} {
		c.MaxAge = oauthCookieTTL
		c.HTTPOnly = true
		setCookie(w, r, h.CookieDomain, c)
	}
	http.Redirect(w, r, start.AuthURL, http.StatusFound)
}

// FederatedCallback completes federated sign-in and consumes the Redirect Intent.
// GET /auth/callback?code=<code>&state=<state>.
func (h *AuthHandlers) FederatedCallback(w http.ResponseWriter, r *http.Request) {
	intent := h.intent(cookieValue(r, PostLoginRedirectCookie))
	q := r.URL.Query()
	state := q.Get("state")
	expected := cookieValue(r, OAuthStateCookieName)
	nonce := cookieValue(r, OAuthNonceCookieName)
	for _, name := range []string{OAuthStateCookieName, OAuthNonceCookieName, PostLoginRedirectCookie} {
		clearCookie(w, r, h.CookieDomain, name)
	}

	switch {
	case q.Get("error") != "":
		h.logger().InfoContext(r.Context(), "federated sign-in declined", "error", q.Get("error"))
		h.federatedFailed(w, r, intent)
		return
	case state == "" || expected == "" || state != expected:
		h.logger().WarnContext(r.Context(), "federated callback state mismatch")
		h.federatedFailed(w, r, intent)
		return
	}

	err := withFreshSession(w, r, func(sc *service.SessionContext) error {
		_, err := sc.SignInWithFederatedProvider(r.Context(), ports.ExchangeInput{
			Code:  q.Get("code"),
			State: state,
			Nonce: nonce,
		})
		return err
	})
	if err != nil {
		h.logger().WarnContext(r.Context(), "complete federated sign-in", "error", err)
		h.federatedFailed(w, r, intent)
		return
	}
	http.Redirect(w, r, intent.Destination(), http.StatusSeeOther)
}

func (h *AuthHandlers) federatedFailed(w http.ResponseWriter, r *http.Request, intent domainauth.RedirectIntent) {
	q := url.Values{}
	q.Set("error", "federated")
	if !intent.IsZero() {
		q.Set(redirectParam, intent.Path())
	}
	http.Redirect(w, r, route.LoginPath+"?"+q.Encode(), http.StatusSeeOther)
}

// Logout signs the visitor out and sends them home. Signing out twice is harmless.
// POST /logout.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if sc, ok := SessionFromContext(r.Context()); ok {
		if err := sc.SignOut(r.Context()); err != nil {
			h.logger().WarnContext(r.Context(), "logout failed", "error", err)
		}
	}

	switch {
	case IsHTMX(r):
		SetHXRedirect(w, route.HomePath)
		w.WriteHeader(http.StatusOK)
	case wantsJSON(r):
		WriteJSON(w, http.StatusOK, map[string]string{
			"status":      "signed_out",
			"redirect_to": route.HomePath,
		})
	default:
		http.Redirect(w, r, route.HomePath, http.StatusSeeOther)
	}
}

type statusUser struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	DisplayName   string `json:"display_name"`
	PhotoURL      string `json:"photo_url,omitempty"`
	EmailVerified bool   `json:"email_verified"`
	Provider      string `json:"provider"`
}

// Status reports the visitor's identity as JSON, waiting briefly for it to resolve.
// GET /auth/status.
func (h *AuthHandlers) Status(w http.ResponseWriter, r *http.Request) {
	sc, ok := SessionFromContext(r.Context())
	if !ok {
		WriteJSON(w, http.StatusOK, map[string]any{"authenticated": false, "resolving": false})
		return
	}
	if sc.Resolving() && h.ResolveTimeout > 0 {
		ctx, cancel := context.WithTimeout(r.Context(), h.ResolveTimeout)
		_ = sc.WaitResolved(ctx)
		cancel()
	}

	resp := map[string]any{"authenticated": false, "resolving": sc.Resolving()}
	if id, signedIn := sc.Identity(); signedIn {
		resp["authenticated"] = true
		resp["user"] = statusUser{
			ID:            id.UserID,
			Email:         id.Email,
			DisplayName:   id.Name(),
			PhotoURL:      id.PhotoURL,
			EmailVerified: id.EmailVerified,
			Provider:      string(id.Provider),
		}
	}
	WriteJSON(w, http.StatusOK, resp)
}

// Profile updates the signed-in visitor's display name and photo.
// POST /profile.
func (h *AuthHandlers) Profile(w http.ResponseWriter, r *http.Request) {
	sc, ok := SessionFromContext(r.Context())
	if !ok {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	upd := domainauth.ProfileUpdate{
		DisplayName: strings.TrimSpace(r.PostFormValue("display_name")),
		PhotoURL:    strings.TrimSpace(r.PostFormValue("photo_url")),
	}

	err := sc.UpdateProfile(r.Context(), upd)
	switch {
	case errors.Is(err, domainauth.ErrNoActiveSession):
		navigate(w, r, loginURL("/dashboard"))
	case err != nil:
		h.logger().ErrorContext(r.Context(), "update profile", "error", err)
		navigate(w, r, "/dashboard?profile=error")
	default:
		navigate(w, r, "/dashboard?profile=updated")
	}
}
