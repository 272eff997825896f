package httpx

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	domainauth "github.com/jnu-cse/cse-portal/internal/domain/auth"
	"github.com/jnu-cse/cse-portal/internal/mocks"
	"github.com/jnu-cse/cse-portal/internal/ports"
	"github.com/jnu-cse/cse-portal/internal/service"
)

type releaseCounter struct{ n atomic.Int32 }

func (r *releaseCounter) Release() { r.n.Add(1) }

// guardedContext builds a Session Context whose identity callbacks the test fires by hand.
func guardedContext(t *testing.T) (*service.SessionContext, *ports.IdentityObserver) {
	t.Helper()
	provider := mocks.NewMockIdentityProvider(gomock.NewController(t))
	var observer ports.IdentityObserver
	provider.EXPECT().
		ObserveIdentityChanges("visitor", gomock.Any()).
		DoAndReturn(func(_ string, fn ports.IdentityObserver) ports.Subscription {
			observer = fn
			return &releaseCounter{}
		})
	sc := service.NewSessionContext("visitor", provider)
	t.Cleanup(sc.Close)
	return sc, &observer
}

func guardedRequest(sc *service.SessionContext, path string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Accept", "text/html")
	return req.WithContext(SetSessionInContext(req.Context(), sc))
}

func okHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("private"))
}

func TestRequireIdentity_SignedInPasses(t *testing.T) {
	sc, observer := guardedContext(t)
	(*observer)(&domainauth.Identity{UserID: "u1", Email: "ada@jnu.ac.bd"})
	rec := httptest.NewRecorder()

	RequireIdentity(GuardConfig{Logger: quietLogger()})(http.HandlerFunc(okHandler)).
		ServeHTTP(rec, guardedRequest(sc, "/classroom"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "private", rec.Body.String())
}

func TestRequireIdentity_SignedOutRedirectsWithPath(t *testing.T) {
	sc, observer := guardedContext(t)
	(*observer)(nil)
	rec := httptest.NewRecorder()

	RequireIdentity(GuardConfig{Logger: quietLogger()})(http.HandlerFunc(okHandler)).
		ServeHTTP(rec, guardedRequest(sc, "/notice/42?tab=files"))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/student-login?redirect_uri=%2Fnotice%2F42", rec.Header().Get("Location"))
}

func TestRequireIdentity_WaitsForLateResolution(t *testing.T) {
	sc, observer := guardedContext(t)
	go func() {
		time.Sleep(20 * time.Millisecond)
		(*observer)(&domainauth.Identity{UserID: "u1"})
	}()
	rec := httptest.NewRecorder()

	RequireIdentity(GuardConfig{ResolveTimeout: 2 * time.Second, Logger: quietLogger()})(http.HandlerFunc(okHandler)).
		ServeHTTP(rec, guardedRequest(sc, "/lab"))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireIdentity_UnresolvedShowsPlaceholder(t *testing.T) {
	sc, _ := guardedContext(t)
	var called atomic.Bool
	rec := httptest.NewRecorder()

	RequireIdentity(GuardConfig{ResolveTimeout: 20 * time.Millisecond, Logger: quietLogger()})(
		http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called.Store(true) }),
	).ServeHTTP(rec, guardedRequest(sc, "/lab"))

	assert.False(t, called.Load())
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
	assert.Empty(t, rec.Header().Get("Location"))
	assert.True(t, sc.Resolving())
}

func TestRequireIdentity_WithoutSessionContext(t *testing.T) {
	rec := httptest.NewRecorder()

	RequireIdentity(GuardConfig{Logger: quietLogger()})(http.HandlerFunc(okHandler)).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/lab", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func sessionRegistry(t *testing.T) (*service.SessionRegistry, *releaseCounter) {
	t.Helper()
	provider := mocks.NewMockIdentityProvider(gomock.NewController(t))
	sub := &releaseCounter{}
	provider.EXPECT().
		ObserveIdentityChanges(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ string, fn ports.IdentityObserver) ports.Subscription {
			fn(nil)
			return sub
		}).
		AnyTimes()
	return service.NewSessionRegistry(provider, quietLogger()), sub
}

func TestWithSession_IssuesCookieToNewVisitor(t *testing.T) {
	registry, sub := sessionRegistry(t)
	var seen string
	h := WithSession(SessionConfig{Registry: registry, Logger: quietLogger()})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sc, ok := SessionFromContext(r.Context())
			require.True(t, ok)
			seen = sc.SessionID()
		}))
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	c := findCookie(rec, SessionCookieName)
	require.NotNil(t, c)
	assert.NoError(t, uuid.Validate(c.Value))
	assert.Equal(t, c.Value, seen)
	assert.True(t, c.HttpOnly)
	assert.Zero(t, registry.Len(), "context released when the request ends")
	assert.EqualValues(t, 1, sub.n.Load())
}

func TestWithSession_ReusesValidCookie(t *testing.T) {
	registry, _ := sessionRegistry(t)
	id := uuid.NewString()
	var seen string
	h := WithSession(SessionConfig{Registry: registry})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sc, _ := SessionFromContext(r.Context())
		seen = sc.SessionID()
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: id})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, id, seen)
	assert.Nil(t, findCookie(rec, SessionCookieName))

	forged := httptest.NewRequest(http.MethodGet, "/", nil)
	forged.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "../../etc"})
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, forged)
	assert.NotNil(t, findCookie(rec, SessionCookieName))
	assert.NotEqual(t, "../../etc", seen)
}

func TestWithSession_RegistryClosed(t *testing.T) {
	registry, _ := sessionRegistry(t)
	require.NoError(t, registry.Close())
	rec := httptest.NewRecorder()

	WithSession(SessionConfig{Registry: registry})(http.HandlerFunc(okHandler)).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
}

func TestWithFreshSession_ReplacesCookieAndClearsOldBinding(t *testing.T) {
	provider := mocks.NewMockIdentityProvider(gomock.NewController(t))
	provider.EXPECT().
		ObserveIdentityChanges(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ string, fn ports.IdentityObserver) ports.Subscription {
			fn(nil)
			return &releaseCounter{}
		}).
		AnyTimes()
	registry := service.NewSessionRegistry(provider, quietLogger())
	planted := uuid.NewString()
	provider.EXPECT().SignOut(gomock.Any(), planted).Return(nil)

	var fresh string
	h := WithSession(SessionConfig{Registry: registry, Logger: quietLogger()})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			err := withFreshSession(w, r, func(sc *service.SessionContext) error {
				fresh = sc.SessionID()
				return nil
			})
			require.NoError(t, err)
		}))
	req := httptest.NewRequest(http.MethodPost, "/student-login", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: planted})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.NotEmpty(t, fresh)
	assert.NotEqual(t, planted, fresh)
	c := findCookie(rec, SessionCookieName)
	require.NotNil(t, c)
	assert.Equal(t, fresh, c.Value)
	assert.True(t, c.HttpOnly)
	assert.Zero(t, registry.Len())
}

func TestWithFreshSession_FailureKeepsSession(t *testing.T) {
	registry, _ := sessionRegistry(t)
	var first string
	h := WithSession(SessionConfig{Registry: registry, Logger: quietLogger()})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sc, _ := SessionFromContext(r.Context())
			first = sc.SessionID()
			err := withFreshSession(w, r, func(*service.SessionContext) error {
				return domainauth.ErrInvalidCredential
			})
			assert.ErrorIs(t, err, domainauth.ErrInvalidCredential)
		}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/student-login", nil))

	var issued []string
	for _, c := range rec.Result().Cookies() {
		if c.Name == SessionCookieName {
			issued = append(issued, c.Value)
		}
	}
	assert.Equal(t, []string{first}, issued)
}

func TestWithFreshSession_WithoutMiddleware(t *testing.T) {
	rec := httptest.NewRecorder()
	err := withFreshSession(rec, httptest.NewRequest(http.MethodPost, "/register", nil),
		func(*service.SessionContext) error {
			t.Fatal("sign-in must not run without a session")
			return nil
		})
	assert.ErrorIs(t, err, errNoSessionRotator)
}
