package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sbilibin2017/users-api/internal/logger"
)

// RedisStore keeps counters in Redis so every process shares the same windows.
type RedisStore struct {
	client redis.Cmdable
	prefix string
}

// NewRedisStore creates a RedisStore. Keys are stored as "<prefix>:<key>".
func NewRedisStore(client redis.Cmdable, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

// Increment implements Store. The counter expiry is set only by the request that opens the window.
func (s *RedisStore) Increment(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	key = s.prefix + ":" + key

	var (
		incr *redis.IntCmd
		pttl *redis.DurationCmd
	)
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.ExpireNX(ctx, key, window)
		pttl = pipe.PTTL(ctx, key)
		return nil
	})

	var (
		count int64
		ttl   time.Duration
	)
	if err == nil {
		count = incr.Val()
		ttl = pttl.Val()
	}

	logger.Log.Infow("rate limit hit",
		"key", key,
		"result", count,
		"ttl", ttl,
		"error", err,
	)

	if err != nil {
		return 0, 0, err
	}
	return count, ttl, nil
}
