// README: Quota module tests (Redis-backed; skipped without ATLAS_REDIS_ADDR).
package quota

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestConsumeUntilExceeded(t *testing.T) {
	svc := setupTestService(t, 2)
	ctx := context.Background()

	for want := 1; want >= 0; want-- {
		left, err := svc.Consume(ctx, "client-a")
		if err != nil {
			t.Fatalf("Consume: %v", err)
		}
		if left != want {
			t.Fatalf("expected %d remaining, got %d", want, left)
		}
	}
	if _, err := svc.Consume(ctx, "client-a"); !errors.Is(err, ErrQuotaExceeded) {
		t.Fatalf("expected ErrQuotaExceeded, got %v", err)
	}

	// Other clients have their own window.
	if left, err := svc.Remaining(ctx, "client-b"); err != nil || left != 2 {
		t.Fatalf("expected full allowance for client-b, got %d (%v)", left, err)
	}
}

func TestWindowResetsDaily(t *testing.T) {
	svc := setupTestService(t, 1)
	ctx := context.Background()

	if _, err := svc.Consume(ctx, "client-a"); err != nil {
		t.Fatalf("Consume: %v", err)
	}
	svc.now = func() time.Time { return time.Date(2030, 1, 2, 0, 0, 0, 0, time.UTC) }
	if _, err := svc.Consume(ctx, "client-a"); err != nil {
		t.Fatalf("expected a fresh window on a new day, got %v", err)
	}
}

func TestDisabledQuota(t *testing.T) {
	var svc *Service
	if left, err := svc.Consume(context.Background(), "x"); err != nil || left != -1 {
		t.Fatalf("expected disabled quota, got %d (%v)", left, err)
	}
	svc = NewService(nil, 0)
	if left, err := svc.Remaining(context.Background(), "x"); err != nil || left != -1 {
		t.Fatalf("expected disabled quota, got %d (%v)", left, err)
	}
}

func setupTestService(t *testing.T, limit int) *Service {
	t.Helper()

	addr := os.Getenv("ATLAS_REDIS_ADDR")
	if addr == "" {
		t.Skip("ATLAS_REDIS_ADDR not set; skipping Redis-backed tests")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })

	svc := NewService(NewStore(client), limit)
	fixed := time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	ctx := context.Background()
	for _, day := range []string{"2030-01-01", "2030-01-02"} {
		for _, c := range []string{"client-a", "client-b"} {
			if err := client.Del(ctx, counterKey(c, day)).Err(); err != nil {
				t.Fatalf("reset key: %v", err)
			}
		}
	}
	return svc
}
