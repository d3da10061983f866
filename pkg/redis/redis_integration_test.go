//go:build integration

package redis

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Voisin-comme-cochon/Web-sub001/config"
)

// ═══════════════════════════════════════════════════════════
// Test Setup
// ═══════════════════════════════════════════════════════════

var testClient *Client

func TestMain(m *testing.M) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	var err error
	testClient, err = NewClient(&config.RedisConfig{Addr: addr}, zap.NewNop())
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot reach test redis: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()
	testClient.Close()
	os.Exit(code)
}

func testKey() string {
	return "rate_limit:test:" + uuid.NewString()
}

// ═══════════════════════════════════════════════════════════
// CheckRateLimit
// ═══════════════════════════════════════════════════════════

func TestCheckRateLimit_AllowsUpToLimit(t *testing.T) {
	ctx := context.Background()
	key := testKey()
	defer testClient.rdb.Del(ctx, key)

	for i := 0; i < 3; i++ {
		ok, err := testClient.CheckRateLimit(ctx, key, 3, time.Minute)
		if err != nil {
			t.Fatalf("CheckRateLimit: %v", err)
		}
		if !ok {
			t.Fatalf("hit %d refused within the limit", i+1)
		}
	}

	ok, err := testClient.CheckRateLimit(ctx, key, 3, time.Minute)
	if err != nil {
		t.Fatalf("CheckRateLimit: %v", err)
	}
	if ok {
		t.Error("expected the fourth hit to be refused")
	}
}

func TestCheckRateLimit_SlidesWithWindow(t *testing.T) {
	ctx := context.Background()
	key := testKey()
	defer testClient.rdb.Del(ctx, key)

	window := 300 * time.Millisecond
	if ok, _ := testClient.CheckRateLimit(ctx, key, 1, window); !ok {
		t.Fatal("first hit must pass")
	}
	if ok, _ := testClient.CheckRateLimit(ctx, key, 1, window); ok {
		t.Fatal("second hit within the window must be refused")
	}

	time.Sleep(window + 100*time.Millisecond)
	ok, err := testClient.CheckRateLimit(ctx, key, 1, window)
	if err != nil {
		t.Fatalf("CheckRateLimit: %v", err)
	}
	if !ok {
		t.Error("expected a hit to pass once the window has slid")
	}
}

func TestCheckRateLimit_SetsExpiry(t *testing.T) {
	ctx := context.Background()
	key := testKey()
	defer testClient.rdb.Del(ctx, key)

	if _, err := testClient.CheckRateLimit(ctx, key, 5, time.Minute); err != nil {
		t.Fatalf("CheckRateLimit: %v", err)
	}
	ttl, err := testClient.rdb.TTL(ctx, key).Result()
	if err != nil {
		t.Fatalf("TTL: %v", err)
	}
	if ttl <= 0 || ttl > time.Minute {
		t.Errorf("expected a TTL within the window, got %s", ttl)
	}
}

func TestCheckRateLimit_KeysAreIndependent(t *testing.T) {
	ctx := context.Background()
	a, b := testKey(), testKey()
	defer testClient.rdb.Del(ctx, a, b)

	if ok, _ := testClient.CheckRateLimit(ctx, a, 1, time.Minute); !ok {
		t.Fatal("first hit on a must pass")
	}
	if ok, _ := testClient.CheckRateLimit(ctx, b, 1, time.Minute); !ok {
		t.Error("b must not share a's budget")
	}
}
