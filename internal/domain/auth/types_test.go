package auth

import (
	"fmt"
	"testing"
	"time"
)

func TestIdentity_Name(t *testing.T) {
	tests := []struct {
		name string
		id   Identity
		want string
	}{
		{name: "display name", id: Identity{DisplayName: " Ada ", Email: "ada@example.edu"}, want: "Ada"},
		{name: "email local part", id: Identity{Email: "grace@example.edu"}, want: "grace"},
		{name: "bare email", id: Identity{Email: "nobody"}, want: "nobody"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.id.Name(); got != tt.want {
				t.Fatalf("Name() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestProfileUpdate_Apply(t *testing.T) {
	id := Identity{UserID: "u1", Email: "a@example.edu", DisplayName: "Old"}
	got := ProfileUpdate{DisplayName: "  New  ", PhotoURL: " https://img.example.edu/a.png "}.Apply(id)
	if got.DisplayName != "New" || got.PhotoURL != "https://img.example.edu/a.png" {
		t.Fatalf("unexpected identity: %+v", got)
	}
	if got.UserID != "u1" || got.Email != "a@example.edu" {
		t.Fatalf("apply must not touch other fields: %+v", got)
	}
	if id.DisplayName != "Old" {
		t.Fatalf("apply must not mutate the input")
	}
}

func TestSession_Expired(t *testing.T) {
	now := time.Now()
	if (Session{ExpiresAt: now.Add(time.Minute)}).Expired(now) {
		t.Fatalf("did not expect expiry")
	}
	if !(Session{ExpiresAt: now}).Expired(now) {
		t.Fatalf("expected expiry at the boundary")
	}
	if (Session{}).Expired(now) {
		t.Fatalf("zero expiry never lapses")
	}
}

func TestAccount_HasPassword(t *testing.T) {
	if (Account{}).HasPassword() {
		t.Fatalf("federated account has no password")
	}
	if !(Account{PasswordHash: "$2a$10$x"}).HasPassword() {
		t.Fatalf("expected password account")
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  Student@JNU.ac.bd "); got != "student@jnu.ac.bd" {
		t.Fatalf("NormalizeEmail() = %q", got)
	}
}

func TestCode(t *testing.T) {
	if got := Code(ErrWrongPassword); got != CodeWrongPassword {
		t.Fatalf("Code() = %q", got)
	}
	wrapped := fmt.Errorf("sign in: %w", ErrEmailAlreadyInUse)
	if got := Code(wrapped); got != CodeEmailAlreadyInUse {
		t.Fatalf("Code(wrapped) = %q", got)
	}
	if Code(nil) != "" || Code(fmt.Errorf("boom")) != "" {
		t.Fatalf("expected empty code for foreign errors")
	}
	if !IsIdentityError(ErrNoActiveSession) {
		t.Fatalf("expected identity error")
	}
}
