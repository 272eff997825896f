package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthHandler_ReportsLiveSessions(t *testing.T) {
	registry, _ := sessionRegistry(t)
	_, release, err := registry.Acquire(uuid.NewString())
	require.NoError(t, err)
	defer release()

	rec := httptest.NewRecorder()
	healthHandler(registry)(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":"ok","sessions":1}`, rec.Body.String())
}

func TestHealthHandler_Head(t *testing.T) {
	registry, _ := sessionRegistry(t)
	rec := httptest.NewRecorder()

	healthHandler(registry)(rec, httptest.NewRequest(http.MethodHead, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Zero(t, rec.Body.Len())
}

func TestHealthHandler_DrainingAfterShutdown(t *testing.T) {
	h := newPortalHarness(t)
	require.NoError(t, h.registry.Close())

	res := h.get(t, "/healthz", "Accept", "application/json")

	assert.Equal(t, http.StatusServiceUnavailable, res.Status)
	assert.Equal(t, "1", res.Header.Get("Retry-After"))
	assert.JSONEq(t, `{"status":"draining","sessions":0}`, res.Body)

	page := h.get(t, "/notices")
	assert.Equal(t, http.StatusServiceUnavailable, page.Status, "screens refuse new sessions while draining")
}
