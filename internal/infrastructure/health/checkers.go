package health

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"

	"github.com/avatarctic/profile-lookup/internal/core/ports"
)

// redisHealthChecker pings the rate limit store.
type redisHealthChecker struct{ client redis.UniversalClient }

func (r *redisHealthChecker) Name() string                    { return "redis" }
func (r *redisHealthChecker) Check(ctx context.Context) error { return r.client.Ping(ctx).Err() }

// NewRedisHealthChecker creates a health checker for Redis.
func NewRedisHealthChecker(client redis.UniversalClient) ports.HealthChecker {
	return &redisHealthChecker{client: client}
}

// cacheHealthChecker reports the in-memory lookup caches as healthy while they
// are within capacity, which always holds after a Set returns.
type cacheHealthChecker struct {
	name     string
	size     func() int
	capacity int
}

func (c *cacheHealthChecker) Name() string { return c.name }

func (c *cacheHealthChecker) Check(ctx context.Context) error {
	if n := c.size(); n > c.capacity {
		return fmt.Errorf("%s holds %d entries, capacity %d", c.name, n, c.capacity)
	}
	return nil
}

// NewCacheHealthChecker exposes an in-memory cache under name.
func NewCacheHealthChecker(name string, size func() int, capacity int) ports.HealthChecker {
	return &cacheHealthChecker{name: name, size: size, capacity: capacity}
}
