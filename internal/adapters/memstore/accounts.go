package memstore

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	domainauth "github.com/jnu-cse/cse-portal/internal/domain/auth"
	"github.com/jnu-cse/cse-portal/internal/ports"
)

var _ ports.AccountStore = (*AccountStore)(nil)

// AccountStore keeps accounts in memory, keyed by normalized email.
type AccountStore struct {
	mu      sync.RWMutex
	byEmail map[string]domainauth.Account
	now     func() time.Time
}

// NewAccountStore creates an empty in-memory account store.
func NewAccountStore() *AccountStore {
	return &AccountStore{byEmail: make(map[string]domainauth.Account), now: time.Now}
}

// Create inserts acct, assigning a user ID when missing.
func (s *AccountStore) Create(_ context.Context, acct domainauth.Account) (domainauth.Account, error) {
	email := domainauth.NormalizeEmail(acct.Email)
	if email == "" {
		return domainauth.Account{}, errors.New("account email is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byEmail[email]; exists {
		return domainauth.Account{}, ports.ErrAccountExists
	}
	if acct.UserID == "" {
		acct.UserID = uuid.NewString()
	}
	acct.Email = email
	now := s.now().UTC()
	acct.CreatedAt, acct.UpdatedAt = now, now
	s.byEmail[email] = acct
	return acct, nil
}

// GetByEmail returns ports.ErrAccountNotFound when no account matches.
func (s *AccountStore) GetByEmail(_ context.Context, email string) (domainauth.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	acct, ok := s.byEmail[domainauth.NormalizeEmail(email)]
	if !ok {
		return domainauth.Account{}, ports.ErrAccountNotFound
	}
	return acct, nil
}

// UpsertFederated links a federated identity to the account with the same email, creating it when absent.
// Profile fields already stored win over the provider's values.
func (s *AccountStore) UpsertFederated(_ context.Context, id domainauth.Identity) (domainauth.Account, error) {
	email := domainauth.NormalizeEmail(id.Email)
	if email == "" {
		return domainauth.Account{}, errors.New("federated identity has no email")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now().UTC()
	acct, ok := s.byEmail[email]
	if !ok {
		acct = domainauth.Account{Identity: id, CreatedAt: now}
		acct.Email = email
		acct.Provider = domainauth.ProviderFederated
		if acct.UserID == "" {
			acct.UserID = uuid.NewString()
		}
	} else {
		if acct.DisplayName == "" {
			acct.DisplayName = id.DisplayName
		}
		if acct.PhotoURL == "" {
			acct.PhotoURL = id.PhotoURL
		}
		acct.EmailVerified = acct.EmailVerified || id.EmailVerified
	}
	acct.UpdatedAt = now
	s.byEmail[email] = acct
	return acct, nil
}

// UpdateProfile applies upd to the account owning userID.
func (s *AccountStore) UpdateProfile(
	_ context.Context,
	userID string,
	upd domainauth.ProfileUpdate,
) (domainauth.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for email, acct := range s.byEmail {
		if acct.UserID != userID {
			continue
		}
		acct.Identity = upd.Apply(acct.Identity)
		acct.UpdatedAt = s.now().UTC()
		s.byEmail[email] = acct
		return acct, nil
	}
	return domainauth.Account{}, ports.ErrAccountNotFound
}
