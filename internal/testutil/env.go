// Package testutil connects integration tests to the Postgres and Redis
// instances from the docker-compose test profile. Tests skip when a service is
// unreachable unless TEST_REQUIRE_DB, TEST_REQUIRE_REDIS or TEST_REQUIRE_INFRA is set.
package testutil

import (
	"os"
	"strings"
	"testing"
)

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// envBool accepts 1, true, yes and y in any case.
func envBool(key string) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "y":
		return true
	}
	return false
}

// unavailable skips the test, or fails it when the infrastructure is required.
func unavailable(t testing.TB, required bool, format string, args ...any) {
	t.Helper()
	if required || envBool("TEST_REQUIRE_INFRA") {
		t.Fatalf(format, args...)
	}
	t.Skipf(format, args...)
}
