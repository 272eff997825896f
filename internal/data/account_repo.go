package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jnu-cse/cse-portal/internal/data/pgxutil"
	domainauth "github.com/jnu-cse/cse-portal/internal/domain/auth"
	apperrors "github.com/jnu-cse/cse-portal/internal/errors"
	"github.com/jnu-cse/cse-portal/internal/ports"
)

var _ ports.AccountStore = (*AccountRepo)(nil)

const accountColumns = `user_id, email, display_name, photo_url, email_verified, provider, password_hash, created_at, updated_at`

// accountRow mirrors the accounts table.
type accountRow struct {
	UserID        string    `db:"user_id"`
	Email         string    `db:"email"`
	DisplayName   string    `db:"display_name"`
	PhotoURL      string    `db:"photo_url"`
	EmailVerified bool      `db:"email_verified"`
	Provider      string    `db:"provider"`
	PasswordHash  string    `db:"password_hash"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

func (r accountRow) toDomain() domainauth.Account {
	return domainauth.Account{
		Identity: domainauth.Identity{
			UserID:        r.UserID,
			DisplayName:   r.DisplayName,
			Email:         r.Email,
			PhotoURL:      r.PhotoURL,
			EmailVerified: r.EmailVerified,
			Provider:      domainauth.Provider(r.Provider),
		},
		PasswordHash: r.PasswordHash,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

// AccountRepo provides database operations for accounts.
type AccountRepo struct {
	DB  *sql.DB
	now func() time.Time
}

// AccountRepoOption customizes an AccountRepo.
type AccountRepoOption func(*AccountRepo)

// WithClock sets the source of created_at and updated_at timestamps.
func WithClock(now func() time.Time) AccountRepoOption {
	return func(r *AccountRepo) {
		if now != nil {
			r.now = now
		}
	}
}

// NewAccountRepo creates an AccountRepo stamping rows with the wall clock unless WithClock is given.
func NewAccountRepo(db *sql.DB, opts ...AccountRepoOption) *AccountRepo {
	r := &AccountRepo{DB: db, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Create inserts a new account. A duplicate email yields ports.ErrAccountExists.
func (r *AccountRepo) Create(ctx context.Context, acct domainauth.Account) (domainauth.Account, error) {
	email := domainauth.NormalizeEmail(acct.Email)
	if email == "" {
		return domainauth.Account{}, errors.New("account email is required")
	}
	if acct.UserID == "" {
		acct.UserID = uuid.NewString()
	}
	if acct.Provider == "" {
		acct.Provider = domainauth.ProviderPassword
	}
	now := r.now().UTC()

	out, err := r.queryOne(ctx, `
		INSERT INTO accounts (`+accountColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
		RETURNING `+accountColumns,
		acct.UserID, email, acct.DisplayName, acct.PhotoURL, acct.EmailVerified, string(acct.Provider),
		acct.PasswordHash, now,
	)
	if err != nil {
		return domainauth.Account{}, r.mapWriteErr(err)
	}
	return out, nil
}

// GetByEmail looks up an account case-insensitively.
func (r *AccountRepo) GetByEmail(ctx context.Context, email string) (domainauth.Account, error) {
	out, err := r.queryOne(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE lower(email) = $1`,
		domainauth.NormalizeEmail(email),
	)
	if err != nil {
		if apperrors.IsNotFound(apperrors.MapDBError(err)) {
			return domainauth.Account{}, ports.ErrAccountNotFound
		}
		return domainauth.Account{}, fmt.Errorf("get account by email: %w", err)
	}
	return out, nil
}

// UpsertFederated creates the account for a federated identity or refreshes the existing one.
// Stored display name and photo take precedence over provider values.
func (r *AccountRepo) UpsertFederated(ctx context.Context, id domainauth.Identity) (domainauth.Account, error) {
	email := domainauth.NormalizeEmail(id.Email)
	if email == "" {
		return domainauth.Account{}, errors.New("federated identity has no email")
	}
	userID := id.UserID
	if userID == "" {
		userID = uuid.NewString()
	}
	now := r.now().UTC()

	out, err := r.queryOne(ctx, `
		INSERT INTO accounts (`+accountColumns+`)
		VALUES ($1, $2, $3, $4, $5, 'federated', '', $6, $6)
		ON CONFLICT ((lower(email))) DO UPDATE SET
			display_name   = CASE WHEN accounts.display_name = '' THEN EXCLUDED.display_name ELSE accounts.display_name END,
			photo_url      = CASE WHEN accounts.photo_url = '' THEN EXCLUDED.photo_url ELSE accounts.photo_url END,
			email_verified = accounts.email_verified OR EXCLUDED.email_verified,
			updated_at     = EXCLUDED.updated_at
		RETURNING `+accountColumns,
		userID, email, id.DisplayName, id.PhotoURL, id.EmailVerified, now,
	)
	if err != nil {
		return domainauth.Account{}, r.mapWriteErr(err)
	}
	return out, nil
}

// UpdateProfile sets display name and photo URL for userID.
func (r *AccountRepo) UpdateProfile(
	ctx context.Context,
	userID string,
	upd domainauth.ProfileUpdate,
) (domainauth.Account, error) {
	applied := upd.Apply(domainauth.Identity{})
	out, err := r.queryOne(ctx, `
		UPDATE accounts SET display_name = $2, photo_url = $3, updated_at = $4
		WHERE user_id = $1
		RETURNING `+accountColumns,
		userID, applied.DisplayName, applied.PhotoURL, r.now().UTC(),
	)
	if err != nil {
		if apperrors.IsNotFound(apperrors.MapDBError(err)) {
			return domainauth.Account{}, ports.ErrAccountNotFound
		}
		return domainauth.Account{}, r.mapWriteErr(err)
	}
	return out, nil
}

func (r *AccountRepo) queryOne(ctx context.Context, query string, args ...any) (domainauth.Account, error) {
	var row accountRow
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		row, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[accountRow])
		return err
	})
	if err != nil {
		return domainauth.Account{}, err
	}
	return row.toDomain(), nil
}

// mapWriteErr converts unique violations on email into ports.ErrAccountExists.
func (r *AccountRepo) mapWriteErr(err error) error {
	mapped := apperrors.MapDBError(err)
	if apperrors.IsConflict(mapped) {
		return fmt.Errorf("%w: %w", ports.ErrAccountExists, mapped)
	}
	return fmt.Errorf("write account: %w", mapped)
}
