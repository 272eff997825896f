package auth

// Package auth contains domain-level types for visitor identities and sessions.
// It is pure and free of framework/adapter concerns.

import (
	"strings"
	"time"
)

// Provider records how an identity was established.
// Keep string form for easy persistence.
type Provider string

const (
	ProviderPassword  Provider = "password"
	ProviderFederated Provider = "federated"
)

// Identity represents the signed-in visitor as reported by the identity provider.
// Adapters map provider-specific claims into this shape.
type Identity struct {
	UserID        string   `json:"uid"`
	DisplayName   string   `json:"display_name,omitempty"`
	Email         string   `json:"email"`
	PhotoURL      string   `json:"photo_url,omitempty"`
	EmailVerified bool     `json:"email_verified"`
	Provider      Provider `json:"provider"`
}

// Name returns the display name, falling back to the local part of the email.
func (i Identity) Name() string {
	if n := strings.TrimSpace(i.DisplayName); n != "" {
		return n
	}
	if at := strings.IndexByte(i.Email, '@'); at > 0 {
		return i.Email[:at]
	}
	return i.Email
}

// ProfileUpdate carries the editable profile fields of an identity.
type ProfileUpdate struct {
	DisplayName string
	PhotoURL    string
}

// Apply returns a copy of id with the update applied.
func (u ProfileUpdate) Apply(id Identity) Identity {
	id.DisplayName = strings.TrimSpace(u.DisplayName)
	id.PhotoURL = strings.TrimSpace(u.PhotoURL)
	return id
}

// Session is the server-side record binding a visitor session to a signed-in identity.
// ID is the opaque visitor session identifier carried by the session cookie.
type Session struct {
	ID        string    `json:"id"`
	Identity  Identity  `json:"identity"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the binding has lapsed at now.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// Account is the stored credential record behind an identity.
// PasswordHash is empty for accounts created through federated sign-in.
type Account struct {
	Identity
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasPassword reports whether the account can sign in with a password.
func (a Account) HasPassword() bool { return a.PasswordHash != "" }

// NormalizeEmail trims and lower-cases an email for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
