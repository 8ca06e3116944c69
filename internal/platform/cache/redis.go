package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"chef_bazaar/internal/platform/config"
)

// Connect opens the Redis client used for rate-limit counters.
func Connect(cfg *config.Config, log zerolog.Logger) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	log.Info().Str("addr", cfg.RedisAddr).Msg("redis connected")
	return rdb, nil
}

// Limiter counts events per key in fixed windows backed by Redis.
type Limiter struct {
	rdb    *redis.Client
	max    int
	window time.Duration
}

func NewLimiter(rdb *redis.Client, max int, window time.Duration) *Limiter {
	return &Limiter{rdb: rdb, max: max, window: window}
}

// Allow records one event for key and reports whether it stays within the
// window budget. The counter expires with the window, so a Redis restart
// only resets budgets, it never blocks traffic.
func (l *Limiter) Allow(ctx context.Context, key string) (bool, error) {
	bucket := "ratelimit:" + key

	count, err := l.rdb.Incr(ctx, bucket).Result()
	if err != nil {
		return false, fmt.Errorf("incr %s: %w", bucket, err)
	}
	if count == 1 {
		if err := l.rdb.Expire(ctx, bucket, l.window).Err(); err != nil {
			return false, fmt.Errorf("expire %s: %w", bucket, err)
		}
	}
	return count <= int64(l.max), nil
}
