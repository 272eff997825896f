package data

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/jnu-cse/cse-portal/internal/domain/auth"
	"github.com/jnu-cse/cse-portal/internal/ports"
	"github.com/jnu-cse/cse-portal/internal/testutil"
)

func TestAccountRepo_CreateAndGet(t *testing.T) {
	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		fixed := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
		repo := NewAccountRepo(db, WithClock(func() time.Time { return fixed }))

		created, err := repo.Create(ctx, domainauth.Account{
			Identity:     domainauth.Identity{Email: "Student@Example.edu"},
			PasswordHash: "hash",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, created.UserID)
		assert.Equal(t, "student@example.edu", created.Email)
		assert.Equal(t, domainauth.ProviderPassword, created.Provider)
		assert.True(t, created.CreatedAt.Equal(fixed))

		got, err := repo.GetByEmail(ctx, "STUDENT@example.edu")
		require.NoError(t, err)
		assert.Equal(t, created.UserID, got.UserID)
		assert.True(t, got.HasPassword())

		_, err = repo.Create(ctx, domainauth.Account{Identity: domainauth.Identity{Email: "student@example.edu"}})
		require.ErrorIs(t, err, ports.ErrAccountExists)

		_, err = repo.GetByEmail(ctx, "nobody@example.edu")
		require.ErrorIs(t, err, ports.ErrAccountNotFound)
	})
}

func TestAccountRepo_UpsertFederatedAndUpdateProfile(t *testing.T) {
	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		clock := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
		repo := NewAccountRepo(db, WithClock(func() time.Time { return clock }))

		first, err := repo.UpsertFederated(ctx, domainauth.Identity{
			UserID: "google-123", Email: "ada@example.edu", DisplayName: "Ada L", EmailVerified: true,
		})
		require.NoError(t, err)
		assert.Equal(t, domainauth.ProviderFederated, first.Provider)
		assert.False(t, first.HasPassword())

		clock = clock.Add(time.Hour)
		updated, err := repo.UpdateProfile(ctx, "google-123", domainauth.ProfileUpdate{
			DisplayName: "Ada Lovelace", PhotoURL: "https://example.edu/ada.png",
		})
		require.NoError(t, err)
		assert.Equal(t, "Ada Lovelace", updated.DisplayName)
		assert.True(t, updated.UpdatedAt.Equal(clock))
		assert.True(t, updated.CreatedAt.Before(updated.UpdatedAt))

		again, err := repo.UpsertFederated(ctx, domainauth.Identity{
			UserID: "google-123", Email: "ADA@example.edu", DisplayName: "Ada L",
		})
		require.NoError(t, err)
		assert.Equal(t, "Ada Lovelace", again.DisplayName)
		assert.Equal(t, "https://example.edu/ada.png", again.PhotoURL)
		assert.True(t, again.EmailVerified)

		_, err = repo.UpdateProfile(ctx, "missing", domainauth.ProfileUpdate{})
		require.ErrorIs(t, err, ports.ErrAccountNotFound)
	})
}
