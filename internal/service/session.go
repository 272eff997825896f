package service

import (
	"context"
	"sync"

	domainauth "github.com/jnu-cse/cse-portal/internal/domain/auth"
	"github.com/jnu-cse/cse-portal/internal/ports"
)

// SessionContext holds what one visitor session knows about its identity.
//
// It subscribes to the identity provider exactly once and applies every
// callback in arrival order. Operations pass straight through to the provider;
// the context itself changes only when a callback arrives.
type SessionContext struct {
	sessionID string
	provider  ports.IdentityProvider
	sub       ports.Subscription

	mu        sync.RWMutex
	identity  *domainauth.Identity
	resolving bool
	busy      bool

	resolved    chan struct{}
	resolveOnce sync.Once
	closeOnce   sync.Once
}

// NewSessionContext creates the context for sessionID and subscribes to identity changes.
func NewSessionContext(sessionID string, provider ports.IdentityProvider) *SessionContext {
	sc := &SessionContext{
		sessionID: sessionID,
		provider:  provider,
		resolving: true,
		resolved:  make(chan struct{}),
	}
	sub := provider.ObserveIdentityChanges(sessionID, sc.apply)
	sc.mu.Lock()
	sc.sub = sub
	sc.mu.Unlock()
	return sc
}

func (sc *SessionContext) apply(id *domainauth.Identity) {
	sc.mu.Lock()
	sc.identity = id
	sc.resolving = false
	sc.busy = false
	sc.mu.Unlock()
	sc.resolveOnce.Do(func() { close(sc.resolved) })
}

// SessionID returns the visitor session this context belongs to.
func (sc *SessionContext) SessionID() string { return sc.sessionID }

// Identity returns the current identity, if any.
func (sc *SessionContext) Identity() (domainauth.Identity, bool) {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	if sc.identity == nil {
		return domainauth.Identity{}, false
	}
	return *sc.identity, true
}

// Resolving reports whether the initial identity is still unknown. Once false it stays false.
func (sc *SessionContext) Resolving() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.resolving
}

// Busy reports whether an identity-changing call is awaiting its callback.
func (sc *SessionContext) Busy() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.busy
}

// Resolved is closed when the first identity callback arrives.
func (sc *SessionContext) Resolved() <-chan struct{} { return sc.resolved }

// WaitResolved blocks until the initial identity is known or ctx is done.
func (sc *SessionContext) WaitResolved(ctx context.Context) error {
	select {
	case <-sc.resolved:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (sc *SessionContext) setBusy(v bool) {
	sc.mu.Lock()
	sc.busy = v
	sc.mu.Unlock()
}

// track marks the context busy for an identity-changing call. Success leaves the
// flag to the provider's callback; failure clears it.
func (sc *SessionContext) track(err error) error {
	if err != nil {
		sc.setBusy(false)
	}
	return err
}

// CreateAccount registers a password account and signs this visitor in as it.
func (sc *SessionContext) CreateAccount(ctx context.Context, email, password string) (domainauth.Identity, error) {
	sc.setBusy(true)
	id, err := sc.provider.CreateAccount(ctx, sc.sessionID, email, password)
	return id, sc.track(err)
}

// SignIn checks the password and binds the account to this visitor. The identity
// is updated through the change notification, not by the return value.
func (sc *SessionContext) SignIn(ctx context.Context, email, password string) (domainauth.Identity, error) {
	sc.setBusy(true)
	id, err := sc.provider.SignIn(ctx, sc.sessionID, email, password)
	return id, sc.track(err)
}

// BeginFederatedSignIn starts the provider redirect; it does not change the identity.
func (sc *SessionContext) BeginFederatedSignIn(ctx context.Context, redirectURL string) (ports.FederatedStart, error) {
	return sc.provider.BeginFederatedSignIn(ctx, redirectURL)
}

// SignInWithFederatedProvider completes the federated flow for this visitor.
func (sc *SessionContext) SignInWithFederatedProvider(
	ctx context.Context,
	in ports.ExchangeInput,
) (domainauth.Identity, error) {
	sc.setBusy(true)
	id, err := sc.provider.CompleteFederatedSignIn(ctx, sc.sessionID, in)
	return id, sc.track(err)
}

// UpdateProfile changes the signed-in visitor's display name and photo.
// It fails with ErrNoActiveSession when nobody is signed in.
func (sc *SessionContext) UpdateProfile(ctx context.Context, upd domainauth.ProfileUpdate) error {
	sc.setBusy(true)
	return sc.track(sc.provider.UpdateProfile(ctx, sc.sessionID, upd))
}

// SignOut clears the binding. Signing out twice is harmless.
func (sc *SessionContext) SignOut(ctx context.Context) error {
	sc.setBusy(true)
	return sc.track(sc.provider.SignOut(ctx, sc.sessionID))
}

// Close releases the identity subscription. Safe to call more than once.
func (sc *SessionContext) Close() {
	sc.closeOnce.Do(func() {
		sc.mu.RLock()
		sub := sc.sub
		sc.mu.RUnlock()
		if sub != nil {
			sub.Release()
		}
	})
}
