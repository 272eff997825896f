package auth

// Package auth contains simple hand-written test doubles for identity ports.
// These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/jnu-cse/cse-portal/internal/adapters/memstore"
	domainauth "github.com/jnu-cse/cse-portal/internal/domain/auth"
	"github.com/jnu-cse/cse-portal/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.FederatedProvider = (*MockFederatedProvider)(nil)
	_ ports.SessionStore      = (*MemorySessionStore)(nil)
	_ ports.AccountStore      = (*MemoryAccountStore)(nil)
	_ ports.PasswordHasher    = PlainHasher{}
)

// MockFederatedProvider simulates an IdP for tests with deterministic state/nonce handling.
type MockFederatedProvider struct {
	BeginFunc    func(ctx context.Context, in ports.BeginInput) (authURL, state, nonce string, err error)
	ExchangeFunc func(ctx context.Context, in ports.ExchangeInput) (domainauth.Identity, error)

	// Deterministic values for predictable testing
	AuthURL     string
	StatePrefix string
	NoncePrefix string
	DefaultUser domainauth.Identity

	mu        sync.Mutex
	callCount int
}

// NewMockFederatedProvider creates a MockFederatedProvider with sensible defaults.
func NewMockFederatedProvider() *MockFederatedProvider {
	return &MockFederatedProvider{
		AuthURL:     "https://mock-idp/auth",
		StatePrefix: "state",
		NoncePrefix: "nonce",
		DefaultUser: domainauth.Identity{
			UserID:        "mock-user-1",
			DisplayName:   "Mock User",
			Email:         "mock.user@example.edu",
			EmailVerified: true,
			Provider:      domainauth.ProviderFederated,
		},
	}
}

func (m *MockFederatedProvider) Begin(ctx context.Context, in ports.BeginInput) (string, string, string, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx, in)
	}

	m.mu.Lock()
	m.callCount++
	n := m.callCount
	m.mu.Unlock()

	authURL := m.AuthURL
	if authURL == "" {
		authURL = "https://mock-idp/auth"
	}
	statePrefix := m.StatePrefix
	if statePrefix == "" {
		statePrefix = "state"
	}
	noncePrefix := m.NoncePrefix
	if noncePrefix == "" {
		noncePrefix = "nonce"
	}

	return authURL, fmt.Sprintf("%s-%d", statePrefix, n), fmt.Sprintf("%s-%d", noncePrefix, n), nil
}

func (m *MockFederatedProvider) Exchange(ctx context.Context, in ports.ExchangeInput) (domainauth.Identity, error) {
	if m.ExchangeFunc != nil {
		return m.ExchangeFunc(ctx, in)
	}
	user := m.DefaultUser
	if user.UserID == "" {
		user = NewMockFederatedProvider().DefaultUser
	}
	return user, nil
}

// MemorySessionStore wraps the in-memory store with error injection.
type MemorySessionStore struct {
	*memstore.SessionStore
	SaveErr   error
	GetErr    error
	DeleteErr error
}

// NewMemorySessionStore creates a new in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{SessionStore: memstore.NewSessionStore()}
}

func (m *MemorySessionStore) Save(ctx context.Context, sess domainauth.Session) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	return m.SessionStore.Save(ctx, sess)
}

func (m *MemorySessionStore) Get(ctx context.Context, id string) (domainauth.Session, error) {
	if m.GetErr != nil {
		return domainauth.Session{}, m.GetErr
	}
	return m.SessionStore.Get(ctx, id)
}

func (m *MemorySessionStore) Delete(ctx context.Context, id string) error {
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	return m.SessionStore.Delete(ctx, id)
}

// MemoryAccountStore wraps the in-memory account store with error injection.
type MemoryAccountStore struct {
	*memstore.AccountStore
	CreateErr error
	GetErr    error
}

// NewMemoryAccountStore creates a new in-memory account store.
func NewMemoryAccountStore() *MemoryAccountStore {
	return &MemoryAccountStore{AccountStore: memstore.NewAccountStore()}
}

func (m *MemoryAccountStore) Create(ctx context.Context, acct domainauth.Account) (domainauth.Account, error) {
	if m.CreateErr != nil {
		return domainauth.Account{}, m.CreateErr
	}
	return m.AccountStore.Create(ctx, acct)
}

func (m *MemoryAccountStore) GetByEmail(ctx context.Context, email string) (domainauth.Account, error) {
	if m.GetErr != nil {
		return domainauth.Account{}, m.GetErr
	}
	return m.AccountStore.GetByEmail(ctx, email)
}

// PlainHasher "hashes" by prefixing, keeping tests fast and readable.
type PlainHasher struct{}

func (PlainHasher) Hash(password string) (string, error) { return "plain:" + password, nil }

func (PlainHasher) Compare(hash, password string) error {
	if strings.TrimPrefix(hash, "plain:") != password || !strings.HasPrefix(hash, "plain:") {
		return ports.ErrPasswordMismatch
	}
	return nil
}
