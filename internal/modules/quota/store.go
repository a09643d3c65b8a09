// README: Quota store backed by Redis fixed-window counters.
package quota

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	counterKeyPrefix = "quota:%s:%s"
	// Keys outlive their day slightly so late increments never resurrect a window.
	keyTTL = 25 * time.Hour
)

type Store struct {
	redis *redis.Client
}

func NewStore(redis *redis.Client) *Store {
	return &Store{redis: redis}
}

// Incr bumps the counter for client on day (YYYY-MM-DD) and returns the new value.
func (s *Store) Incr(ctx context.Context, client, day string) (int64, error) {
	key := counterKey(client, day)
	pipe := s.redis.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, keyTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return incr.Val(), nil
}

// Get returns the current counter, 0 when the window has no key yet.
func (s *Store) Get(ctx context.Context, client, day string) (int64, error) {
	n, err := s.redis.Get(ctx, counterKey(client, day)).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return n, err
}

func counterKey(client, day string) string {
	return fmt.Sprintf(counterKeyPrefix, day, client)
}
