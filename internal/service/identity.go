package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	domainauth "github.com/jnu-cse/cse-portal/internal/domain/auth"
	"github.com/jnu-cse/cse-portal/internal/ports"
)

var _ ports.IdentityProvider = (*IdentityService)(nil)

// initialLoadTimeout bounds the asynchronous session lookup behind ObserveIdentityChanges.
const initialLoadTimeout = 5 * time.Second

// PasswordPolicy describes the rules a new password must satisfy.
type PasswordPolicy struct {
	MinLength    int
	RequireUpper bool
	RequireLower bool
}

// DefaultPasswordPolicy mirrors the registration screen rules.
func DefaultPasswordPolicy() PasswordPolicy {
	return PasswordPolicy{MinLength: 6, RequireUpper: true, RequireLower: true}
}

// Check returns domainauth.ErrWeakPassword when password violates the policy.
func (p PasswordPolicy) Check(password string) error {
	if len([]rune(password)) < p.MinLength {
		return fmt.Errorf("%w: shorter than %d characters", domainauth.ErrWeakPassword, p.MinLength)
	}
	var hasUpper, hasLower bool
	for _, r := range password {
		hasUpper = hasUpper || unicode.IsUpper(r)
		hasLower = hasLower || unicode.IsLower(r)
	}
	if p.RequireUpper && !hasUpper {
		return fmt.Errorf("%w: missing an upper-case letter", domainauth.ErrWeakPassword)
	}
	if p.RequireLower && !hasLower {
		return fmt.Errorf("%w: missing a lower-case letter", domainauth.ErrWeakPassword)
	}
	return nil
}

// IdentityServiceOptions groups dependencies for IdentityService.
type IdentityServiceOptions struct {
	Accounts  ports.AccountStore
	Sessions  ports.SessionStore
	Hasher    ports.PasswordHasher
	Federated ports.FederatedProvider // Optional; federated sign-in fails without it.
	Policy    PasswordPolicy
	// SessionTTL is how long a sign-in stays bound to the visitor session.
	SessionTTL time.Duration
	// HideAccountExistence reports unknown emails and wrong passwords as ErrInvalidCredential.
	HideAccountExistence bool
	Logger               *slog.Logger
	Now                  func() time.Time
}

// IdentityService owns accounts and the per-visitor identity binding, and notifies
// observers whenever a visitor's identity changes.
type IdentityService struct {
	accounts   ports.AccountStore
	sessions   ports.SessionStore
	hasher     ports.PasswordHasher
	federated  ports.FederatedProvider
	policy     PasswordPolicy
	sessionTTL time.Duration
	hideExists bool
	logger     *slog.Logger
	now        func() time.Time
	validate   *validator.Validate
	hub        *identityHub
}

// NewIdentityService constructs an IdentityService.
func NewIdentityService(opts IdentityServiceOptions) *IdentityService {
	policy := opts.Policy
	if policy.MinLength <= 0 {
		policy = DefaultPasswordPolicy()
	}
	ttl := opts.SessionTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &IdentityService{
		accounts:   opts.Accounts,
		sessions:   opts.Sessions,
		hasher:     opts.Hasher,
		federated:  opts.Federated,
		policy:     policy,
		sessionTTL: ttl,
		hideExists: opts.HideAccountExistence,
		logger:     logger.With("component", "identity"),
		now:        now,
		validate:   validator.New(validator.WithRequiredStructEnabled()),
		hub:        newIdentityHub(),
	}
}

// CreateAccount registers an email/password account and signs the visitor in as it.
func (s *IdentityService) CreateAccount(
	ctx context.Context,
	sessionID, email, password string,
) (domainauth.Identity, error) {
	if err := requireSessionID(sessionID); err != nil {
		return domainauth.Identity{}, err
	}
	email, err := s.checkEmail(email)
	if err != nil {
		return domainauth.Identity{}, err
	}
	if err := s.policy.Check(password); err != nil {
		return domainauth.Identity{}, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return domainauth.Identity{}, fmt.Errorf("hash password: %w", err)
	}
	acct, err := s.accounts.Create(ctx, domainauth.Account{
		Identity: domainauth.Identity{
			UserID:   uuid.NewString(),
			Email:    email,
			Provider: domainauth.ProviderPassword,
		},
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, ports.ErrAccountExists) {
			return domainauth.Identity{}, domainauth.ErrEmailAlreadyInUse
		}
		return domainauth.Identity{}, fmt.Errorf("create account: %w", err)
	}

	if err := s.bind(ctx, sessionID, acct.Identity); err != nil {
		return domainauth.Identity{}, err
	}
	s.logger.InfoContext(ctx, "account created", "user_id", acct.UserID)
	return acct.Identity, nil
}

// SignIn authenticates with email and password and binds the identity to the visitor session.
func (s *IdentityService) SignIn(ctx context.Context, sessionID, email, password string) (domainauth.Identity, error) {
	if err := requireSessionID(sessionID); err != nil {
		return domainauth.Identity{}, err
	}
	email, err := s.checkEmail(email)
	if err != nil {
		return domainauth.Identity{}, err
	}
	if password == "" {
		return domainauth.Identity{}, domainauth.ErrInvalidCredential
	}

	acct, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ports.ErrAccountNotFound) {
			return domainauth.Identity{}, s.credentialError(domainauth.ErrUserNotFound)
		}
		return domainauth.Identity{}, fmt.Errorf("get account: %w", err)
	}
	if !acct.HasPassword() {
		return domainauth.Identity{}, domainauth.ErrInvalidCredential
	}
	if err := s.hasher.Compare(acct.PasswordHash, password); err != nil {
		if errors.Is(err, ports.ErrPasswordMismatch) {
			return domainauth.Identity{}, s.credentialError(domainauth.ErrWrongPassword)
		}
		return domainauth.Identity{}, fmt.Errorf("compare password: %w", err)
	}

	if err := s.bind(ctx, sessionID, acct.Identity); err != nil {
		return domainauth.Identity{}, err
	}
	s.logger.InfoContext(ctx, "signed in", "user_id", acct.UserID, "provider", acct.Provider)
	return acct.Identity, nil
}

// BeginFederatedSignIn starts the federated flow and returns where to send the visitor.
func (s *IdentityService) BeginFederatedSignIn(ctx context.Context, redirectURL string) (ports.FederatedStart, error) {
	if s.federated == nil {
		return ports.FederatedStart{}, fmt.Errorf("%w: no provider configured", domainauth.ErrFederatedSignInFailed)
	}
	authURL, state, nonce, err := s.federated.Begin(ctx, ports.BeginInput{RedirectURL: redirectURL})
	if err != nil {
		return ports.FederatedStart{}, fmt.Errorf("%w: %w", domainauth.ErrFederatedSignInFailed, err)
	}
	return ports.FederatedStart{AuthURL: authURL, State: state, Nonce: nonce}, nil
}

// CompleteFederatedSignIn exchanges the provider callback for an identity and binds it.
func (s *IdentityService) CompleteFederatedSignIn(
	ctx context.Context,
	sessionID string,
	in ports.ExchangeInput,
) (domainauth.Identity, error) {
	if err := requireSessionID(sessionID); err != nil {
		return domainauth.Identity{}, err
	}
	if s.federated == nil {
		return domainauth.Identity{}, fmt.Errorf("%w: no provider configured", domainauth.ErrFederatedSignInFailed)
	}
	if in.Code == "" || in.State == "" {
		return domainauth.Identity{}, fmt.Errorf("%w: missing code or state", domainauth.ErrFederatedSignInFailed)
	}

	fed, err := s.federated.Exchange(ctx, in)
	if err != nil {
		return domainauth.Identity{}, fmt.Errorf("%w: %w", domainauth.ErrFederatedSignInFailed, err)
	}
	acct, err := s.accounts.UpsertFederated(ctx, fed)
	if err != nil {
		return domainauth.Identity{}, fmt.Errorf("store federated account: %w", err)
	}

	if err := s.bind(ctx, sessionID, acct.Identity); err != nil {
		return domainauth.Identity{}, err
	}
	s.logger.InfoContext(ctx, "signed in", "user_id", acct.UserID, "provider", acct.Provider)
	return acct.Identity, nil
}

// UpdateProfile changes the display name and photo of the visitor's current identity.
func (s *IdentityService) UpdateProfile(ctx context.Context, sessionID string, upd domainauth.ProfileUpdate) error {
	sess, err := s.current(ctx, sessionID)
	if err != nil {
		return err
	}
	acct, err := s.accounts.UpdateProfile(ctx, sess.Identity.UserID, upd)
	if err != nil {
		if errors.Is(err, ports.ErrAccountNotFound) {
			return domainauth.ErrNoActiveSession
		}
		return fmt.Errorf("update profile: %w", err)
	}

	sess.Identity = acct.Identity
	if err := s.sessions.Save(ctx, sess); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	s.hub.emit(sessionID, &acct.Identity)
	return nil
}

// SignOut clears the visitor's identity. It never fails; store errors are logged.
func (s *IdentityService) SignOut(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		s.logger.WarnContext(ctx, "delete session binding", "error", err)
	}
	s.hub.emit(sessionID, nil)
	return nil
}

// ObserveIdentityChanges registers fn for sessionID. The current identity is loaded
// asynchronously and delivered first; every later change is delivered as it happens.
func (s *IdentityService) ObserveIdentityChanges(sessionID string, fn ports.IdentityObserver) ports.Subscription {
	sub := s.hub.subscribe(sessionID, fn)
	go s.deliverInitial(sessionID, sub)
	return sub
}

// deliverInitial loads the stored binding and reports it to sub. The result is
// dropped when a sign-in or sign-out for the session was emitted meanwhile.
func (s *IdentityService) deliverInitial(sessionID string, sub *subscription) {
	ctx, cancel := context.WithTimeout(context.Background(), initialLoadTimeout)
	defer cancel()

	if sessionID == "" {
		s.hub.deliverInitial(sub, nil)
		return
	}
	sess, err := s.sessions.Get(ctx, sessionID)
	var current *domainauth.Identity
	switch {
	case errors.Is(err, ports.ErrSessionNotFound):
	case err != nil:
		s.logger.ErrorContext(ctx, "load session identity", "error", err)
		return
	case sess.Expired(s.now()):
	default:
		id := sess.Identity
		current = &id
	}
	if !s.hub.deliverInitial(sub, current) {
		s.logger.DebugContext(ctx, "initial identity superseded", "session_id", sessionID)
	}
}

func (s *IdentityService) bind(ctx context.Context, sessionID string, id domainauth.Identity) error {
	sess := domainauth.Session{
		ID:        sessionID,
		Identity:  id,
		ExpiresAt: s.now().Add(s.sessionTTL),
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	s.hub.emit(sessionID, &id)
	return nil
}

func (s *IdentityService) current(ctx context.Context, sessionID string) (domainauth.Session, error) {
	if sessionID == "" {
		return domainauth.Session{}, domainauth.ErrNoActiveSession
	}
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, ports.ErrSessionNotFound) {
			return domainauth.Session{}, domainauth.ErrNoActiveSession
		}
		return domainauth.Session{}, fmt.Errorf("get session: %w", err)
	}
	if sess.Expired(s.now()) {
		return domainauth.Session{}, domainauth.ErrNoActiveSession
	}
	return sess, nil
}

func (s *IdentityService) checkEmail(email string) (string, error) {
	email = domainauth.NormalizeEmail(email)
	if err := s.validate.Var(email, "required,email"); err != nil {
		return "", domainauth.ErrInvalidEmail
	}
	return email, nil
}

func (s *IdentityService) credentialError(err error) error {
	if s.hideExists {
		return domainauth.ErrInvalidCredential
	}
	return err
}

func requireSessionID(sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return errors.New("session ID is required")
	}
	return nil
}
