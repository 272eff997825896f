package testutil

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisEnv locates the integration Redis: REDIS_ADDR in CI, the test profile port locally.
func redisEnv(t testing.TB) (addr string, db int) {
	t.Helper()
	addr = getenv("REDIS_ADDR", "localhost:56379")
	db = 1
	if v := getenv("TEST_REDIS_DB", ""); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			t.Logf("ignoring invalid TEST_REDIS_DB=%q", v)
			return addr, db
		}
		db = n
	}
	return addr, db
}

// SetupTestRedis returns a client for an emptied test database. The client is
// closed when the test ends.
func SetupTestRedis(t testing.TB) *redis.Client {
	t.Helper()
	addr, db := redisEnv(t)
	client := redis.NewClient(&redis.Options{Addr: addr, DB: db})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		unavailable(t, envBool("TEST_REQUIRE_REDIS"), "redis not available at %s: %v", addr, err)
	}
	if err := client.FlushDB(ctx).Err(); err != nil {
		_ = client.Close()
		t.Fatalf("flush redis db %d: %v", db, err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client
}
