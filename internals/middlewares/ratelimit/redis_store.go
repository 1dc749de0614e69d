package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps the fixed-window counters in Redis so multiple
// instances share one limit.
type RedisStore struct {
	Client *redis.Client
	Prefix string
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{Client: client, Prefix: "ratelimit:"}
}

func (s *RedisStore) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	full := s.Prefix + key
	count, err := s.Client.Incr(ctx, full).Result()
	if err != nil {
		return 0, err
	}
	if count == 1 {
		// first hit starts the window
		if err := s.Client.Expire(ctx, full, window).Err(); err != nil {
			return count, err
		}
	}
	return count, nil
}
