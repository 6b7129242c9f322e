package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// RateLimitRedisRepository keeps fixed-window request counters in Redis.
type RateLimitRedisRepository struct {
	r redis.Cmdable
}

func NewRateLimitRedisRepository(r redis.Cmdable) *RateLimitRedisRepository {
	return &RateLimitRedisRepository{r: r}
}

// IncrementWindow bumps the counter for clientKey in the window containing now.
func (repo *RateLimitRedisRepository) IncrementWindow(ctx context.Context, clientKey string, window time.Duration, keyPrefix string, ttl time.Duration) (int, time.Time, error) {
	windowStart := time.Now().Truncate(window)
	key := fmt.Sprintf("%s:%s:%d", keyPrefix, clientKey, windowStart.Unix())
	pipe := repo.r.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, windowStart, fmt.Errorf("increment rate window %s: %w", key, err)
	}
	return int(incr.Val()), windowStart, nil
}
