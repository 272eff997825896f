package httpx

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/net/publicsuffix"

	"github.com/jnu-cse/cse-portal/internal/mocks"
	authmocks "github.com/jnu-cse/cse-portal/internal/mocks/auth"
	"github.com/jnu-cse/cse-portal/internal/service"
)

const staticPathFromTest = "../../frontend/static"

var fixedNow = time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)

// RequireTemplateRenderer loads the real templates from the repository.
func RequireTemplateRenderer(t *testing.T) *TemplateRenderer {
	t.Helper()
	tr, err := NewTemplateRenderer(TemplateRendererConfig{
		TemplateFS: os.DirFS(TemplatePathFromTest),
		Logger:     quietLogger(),
	})
	require.NoError(t, err)
	return tr
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// portalHarness runs the full router against in-memory identity stores and a mocked REST API.
type portalHarness struct {
	srv       *httptest.Server
	client    *http.Client
	api       *mocks.MockPortalAPI
	accounts  *authmocks.MemoryAccountStore
	sessions  *authmocks.MemorySessionStore
	federated *authmocks.MockFederatedProvider
	identity  *service.IdentityService
	registry  *service.SessionRegistry
}

type harnessOptions struct {
	services func(*RouterServices)
	sessions func(*authmocks.MemorySessionStore)
}

func newPortalHarness(t *testing.T, opts ...func(*harnessOptions)) *portalHarness {
	t.Helper()
	var ho harnessOptions
	for _, o := range opts {
		o(&ho)
	}

	h := &portalHarness{
		api:       mocks.NewMockPortalAPI(gomock.NewController(t)),
		accounts:  authmocks.NewMemoryAccountStore(),
		sessions:  authmocks.NewMemorySessionStore(),
		federated: authmocks.NewMockFederatedProvider(),
	}
	if ho.sessions != nil {
		ho.sessions(h.sessions)
	}
	h.identity = service.NewIdentityService(service.IdentityServiceOptions{
		Accounts:  h.accounts,
		Sessions:  h.sessions,
		Hasher:    authmocks.PlainHasher{},
		Federated: h.federated,
		Logger:    quietLogger(),
	})
	h.registry = service.NewSessionRegistry(h.identity, quietLogger())
	t.Cleanup(func() { _ = h.registry.Close() })

	services := RouterServices{
		Registry:       h.registry,
		API:            h.api,
		TemplateFS:     os.DirFS(TemplatePathFromTest),
		StaticFS:       os.DirFS(staticPathFromTest),
		CallbackURL:    "http://portal.test/auth/callback",
		ResolveTimeout: 2 * time.Second,
		Logger:         quietLogger(),
		Now:            func() time.Time { return fixedNow },
	}
	if ho.services != nil {
		ho.services(&services)
	}
	handler, err := NewRouter(services)
	require.NoError(t, err)

	h.srv = httptest.NewServer(handler)
	t.Cleanup(h.srv.Close)

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	require.NoError(t, err)
	h.client = &http.Client{
		Jar:     jar,
		Timeout: 5 * time.Second,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	return h
}

type result struct {
	Status int
	Header http.Header
	Body   string
}

func (h *portalHarness) do(t *testing.T, req *http.Request) result {
	t.Helper()
	resp, err := h.client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return result{Status: resp.StatusCode, Header: resp.Header, Body: string(body)}
}

// get issues a browser GET; extra headers are given as name/value pairs.
func (h *portalHarness) get(t *testing.T, path string, headers ...string) result {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, h.srv.URL+path, nil)
	require.NoError(t, err)
	req.Header.Set("Accept", "text/html")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	return h.do(t, req)
}

// post submits a form carrying the visitor's CSRF token.
func (h *portalHarness) post(t *testing.T, path string, form url.Values, headers ...string) result {
	t.Helper()
	if form == nil {
		form = url.Values{}
	}
	form.Set(DefaultCSRFCookieName, h.csrfToken(t))
	req, err := http.NewRequest(http.MethodPost, h.srv.URL+path, strings.NewReader(form.Encode()))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "text/html")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	return h.do(t, req)
}

func (h *portalHarness) cookie(t *testing.T, name string) string {
	t.Helper()
	u, err := url.Parse(h.srv.URL)
	require.NoError(t, err)
	for _, c := range h.client.Jar.Cookies(u) {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

// csrfToken returns the visitor's token, visiting the login screen first if none was issued yet.
func (h *portalHarness) csrfToken(t *testing.T) string {
	t.Helper()
	if tok := h.cookie(t, DefaultCSRFCookieName); tok != "" {
		return tok
	}
	h.get(t, "/student-login")
	tok := h.cookie(t, DefaultCSRFCookieName)
	require.NotEmpty(t, tok)
	return tok
}

// register creates an account outside the visitor's own session.
func (h *portalHarness) register(t *testing.T, email, password string) {
	t.Helper()
	_, err := h.identity.CreateAccount(context.Background(), "seed-"+email, email, password)
	require.NoError(t, err)
}

func (h *portalHarness) signIn(t *testing.T, email, password string) {
	t.Helper()
	res := h.post(t, "/student-login", url.Values{"email": {email}, "password": {password}})
	require.Equal(t, http.StatusSeeOther, res.Status, res.Body)
}
