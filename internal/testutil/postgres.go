package testutil

import (
	"context"
	"database/sql"
	"net"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	// Registers the "pgx" database/sql driver.
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/jnu-cse/cse-portal/internal/migrate"
)

// dbEnv locates the integration database. The defaults match the local test
// profile; CI sets TEST_DB_HOST and TEST_DB_PORT=5432.
type dbEnv struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

func loadDBEnv() dbEnv {
	return dbEnv{
		Host:     getenv("TEST_DB_HOST", "localhost"),
		Port:     getenv("TEST_DB_PORT", "55432"),
		User:     getenv("TEST_DB_USER", "cseportal"),
		Password: getenv("TEST_DB_PASSWORD", "cseportal"),
		Name:     getenv("TEST_DB_NAME", "cseportal"),
		SSLMode:  getenv("DB_SSL_MODE", "disable"),
	}
}

// dsn builds a connection URL; a non-empty schema is put first on the search path.
func (e dbEnv) dsn(schema string) string {
	q := url.Values{}
	q.Set("sslmode", e.SSLMode)
	if schema != "" {
		q.Set("search_path", schema+",public")
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(e.User, e.Password),
		Host:     net.JoinHostPort(e.Host, e.Port),
		Path:     "/" + e.Name,
		RawQuery: q.Encode(),
	}
	return u.String()
}

// WithAutoDB runs fn against a migrated database that holds no accounts.
// With TEST_DB_EPHEMERAL set each test gets its own schema, dropped afterwards;
// otherwise the shared database is emptied before and after fn.
func WithAutoDB(t testing.TB, fn func(*sql.DB)) {
	t.Helper()
	env := loadDBEnv()
	shared := openDB(t, env.dsn(""))

	if !envBool("TEST_DB_EPHEMERAL") {
		migrateDB(t, shared)
		clearAccounts(t, shared)
		t.Cleanup(func() {
			clearAccounts(t, shared)
			_ = shared.Close()
		})
		fn(shared)
		return
	}

	schema := "portal_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := shared.ExecContext(ctx, "CREATE SCHEMA "+schema); err != nil {
		_ = shared.Close()
		t.Fatalf("create schema %s: %v", schema, err)
	}
	db := openDB(t, env.dsn(schema))
	t.Cleanup(func() {
		_ = db.Close()
		dropCtx, dropCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer dropCancel()
		if _, err := shared.ExecContext(dropCtx, "DROP SCHEMA IF EXISTS "+schema+" CASCADE"); err != nil {
			t.Logf("drop schema %s: %v", schema, err)
		}
		_ = shared.Close()
	})
	t.Logf("using ephemeral schema %s", schema)
	migrateDB(t, db)
	fn(db)
}

func openDB(t testing.TB, dsn string) *sql.DB {
	t.Helper()
	required := envBool("TEST_REQUIRE_DB")
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		unavailable(t, required, "test database not available: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		unavailable(t, required, "test database not available: %v", err)
	}
	return db
}

func migrateDB(t testing.TB, db *sql.DB) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := migrate.Run(ctx, db); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
}

func clearAccounts(t testing.TB, db *sql.DB) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if _, err := db.ExecContext(ctx, "DELETE FROM accounts"); err != nil {
		t.Fatalf("clear accounts: %v", err)
	}
}
