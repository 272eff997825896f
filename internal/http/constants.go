package httpx

import "time"

// Cookie names.
const (
	SessionCookieName       = "session_id"
	IntroCookieName         = "hasSeenAnimation"
	OAuthStateCookieName    = "oauth_state"
	OAuthNonceCookieName    = "oauth_nonce"
	PostLoginRedirectCookie = "post_login_redirect"
)

// oauthCookieTTL bounds how long a federated sign-in may take.
const oauthCookieTTL = 10 * time.Minute

// Query/form parameter carrying the Redirect Intent.
const redirectParam = "redirect_uri"

// Template paths used for loading templates in tests and production.
const (
	TemplatePathFromRoot = "frontend/templates"       // From project root
	TemplatePathFromTest = "../../frontend/templates" // From internal/http test files
)

// Layout template names.
const (
	layoutChrome = "layout"
	layoutBare   = "bare-layout"
	layoutError  = "error-layout"
)

// ContentTemplateFor returns the content template rendered inside a layout for page.
func ContentTemplateFor(page string) string {
	if page == "" {
		return "not-found-content"
	}
	return page + "-content"
}
