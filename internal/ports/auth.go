package ports

// Package ports defines interfaces (hexagonal ports) for identity-related behavior.
// Implementations live in internal/adapters and internal/data; orchestration in internal/service.

import (
	"context"
	"errors"

	domainauth "github.com/jnu-cse/cse-portal/internal/domain/auth"
)

// Store-level sentinel errors. Adapters return (or wrap) these so the service can map them.
var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrAccountNotFound  = errors.New("account not found")
	ErrAccountExists    = errors.New("account already exists")
	ErrPasswordMismatch = errors.New("password does not match")
)

// BeginInput carries inputs for initiating a federated sign-in flow.
type BeginInput struct {
	RedirectURL string
}

// FederatedProvider initiates and completes a sign-in flow against an external IdP.
type FederatedProvider interface {
	// Begin starts the sign-in flow and returns the provider auth URL, an opaque state, and a nonce.
	Begin(ctx context.Context, in BeginInput) (authURL, state, nonce string, err error)

	// Exchange completes the flow, verifying state and nonce, and returns the authenticated identity.
	Exchange(ctx context.Context, in ExchangeInput) (domainauth.Identity, error)
}

// ExchangeInput groups parameters for the code/token exchange.
type ExchangeInput struct {
	Code  string
	State string
	Nonce string
}

// SessionStore persists the binding between a visitor session and its signed-in identity.
type SessionStore interface {
	Save(ctx context.Context, sess domainauth.Session) error
	Get(ctx context.Context, id string) (domainauth.Session, error)
	Delete(ctx context.Context, id string) error
}

// AccountStore persists accounts keyed by normalized email.
type AccountStore interface {
	// Create inserts a new account; ErrAccountExists when the email is taken.
	Create(ctx context.Context, acct domainauth.Account) (domainauth.Account, error)
	// GetByEmail returns ErrAccountNotFound when no account matches.
	GetByEmail(ctx context.Context, email string) (domainauth.Account, error)
	// UpsertFederated creates or refreshes an account for a federated identity and returns the stored identity.
	UpsertFederated(ctx context.Context, id domainauth.Identity) (domainauth.Account, error)
	// UpdateProfile changes display name and photo; ErrAccountNotFound when the user is unknown.
	UpdateProfile(ctx context.Context, userID string, upd domainauth.ProfileUpdate) (domainauth.Account, error)
}

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Compare returns ErrPasswordMismatch when password does not match hash.
	Compare(hash, password string) error
}

// IdentityObserver receives the current identity of a visitor session; nil means signed out.
type IdentityObserver func(identity *domainauth.Identity)

// Subscription is an owned registration returned by ObserveIdentityChanges.
type Subscription interface {
	// Release deregisters the observer. Safe to call more than once.
	Release()
}

// FederatedStart is the outcome of beginning a federated sign-in.
type FederatedStart struct {
	AuthURL string
	State   string
	Nonce   string
}

// IdentityProvider is the boundary to the authentication service.
// Every operation acts on behalf of one visitor session.
type IdentityProvider interface {
	CreateAccount(ctx context.Context, sessionID, email, password string) (domainauth.Identity, error)
	SignIn(ctx context.Context, sessionID, email, password string) (domainauth.Identity, error)
	BeginFederatedSignIn(ctx context.Context, redirectURL string) (FederatedStart, error)
	CompleteFederatedSignIn(ctx context.Context, sessionID string, in ExchangeInput) (domainauth.Identity, error)
	UpdateProfile(ctx context.Context, sessionID string, upd domainauth.ProfileUpdate) error
	SignOut(ctx context.Context, sessionID string) error
	// ObserveIdentityChanges invokes fn once with the current identity and again after every change.
	ObserveIdentityChanges(sessionID string, fn IdentityObserver) Subscription
}
