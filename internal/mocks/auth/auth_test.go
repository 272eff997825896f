package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/jnu-cse/cse-portal/internal/domain/auth"
	"github.com/jnu-cse/cse-portal/internal/ports"
)

func TestMockFederatedProvider_Begin_Defaults(t *testing.T) {
	provider := NewMockFederatedProvider()
	ctx := context.Background()

	input := ports.BeginInput{RedirectURL: "http://localhost:8080/auth/callback"}
	authURL, state, nonce, err := provider.Begin(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, "https://mock-idp/auth", authURL)
	assert.Equal(t, "state-1", state)
	assert.Equal(t, "nonce-1", nonce)

	// Second call should increment counters
	_, state2, nonce2, err := provider.Begin(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, "state-2", state2)
	assert.Equal(t, "nonce-2", nonce2)
}

func TestMockFederatedProvider_Exchange(t *testing.T) {
	provider := NewMockFederatedProvider()
	id, err := provider.Exchange(context.Background(), ports.ExchangeInput{Code: "c"})
	require.NoError(t, err)
	assert.Equal(t, "mock-user-1", id.UserID)

	provider.ExchangeFunc = func(context.Context, ports.ExchangeInput) (domainauth.Identity, error) {
		return domainauth.Identity{}, errors.New("idp down")
	}
	_, err = provider.Exchange(context.Background(), ports.ExchangeInput{})
	assert.EqualError(t, err, "idp down")
}

func TestMemorySessionStore_ErrorInjection(t *testing.T) {
	ctx := context.Background()
	store := NewMemorySessionStore()
	sess := domainauth.Session{ID: "s", ExpiresAt: time.Now().Add(time.Hour)}

	require.NoError(t, store.Save(ctx, sess))
	store.GetErr = errors.New("redis unavailable")
	_, err := store.Get(ctx, "s")
	assert.EqualError(t, err, "redis unavailable")

	store.GetErr = nil
	got, err := store.Get(ctx, "s")
	require.NoError(t, err)
	assert.Equal(t, "s", got.ID)
}

func TestPlainHasher(t *testing.T) {
	h := PlainHasher{}
	hash, err := h.Hash("Secret1")
	require.NoError(t, err)
	require.NoError(t, h.Compare(hash, "Secret1"))
	assert.ErrorIs(t, h.Compare(hash, "secret1"), ports.ErrPasswordMismatch)
	assert.ErrorIs(t, h.Compare("Secret1", "Secret1"), ports.ErrPasswordMismatch)
}
