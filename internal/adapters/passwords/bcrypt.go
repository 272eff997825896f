// Package passwords hashes account passwords with bcrypt.
package passwords

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/jnu-cse/cse-portal/internal/ports"
)

var _ ports.PasswordHasher = (*Bcrypt)(nil)

// Bcrypt implements ports.PasswordHasher.
type Bcrypt struct {
	Cost int
}

// NewBcrypt returns a hasher using bcrypt.DefaultCost.
func NewBcrypt() *Bcrypt { return &Bcrypt{Cost: bcrypt.DefaultCost} }

// Hash hashes a plaintext password. bcrypt rejects inputs longer than 72 bytes.
func (b *Bcrypt) Hash(password string) (string, error) {
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	out, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(out), nil
}

// Compare returns ports.ErrPasswordMismatch when password does not match hash.
func (b *Bcrypt) Compare(hash, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ports.ErrPasswordMismatch
	}
	if err != nil {
		return fmt.Errorf("compare password: %w", err)
	}
	return nil
}
