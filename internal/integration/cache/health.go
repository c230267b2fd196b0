package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const healthCheckTimeout = 2 * time.Second

// HealthChecker returns a check that pings Redis.
func HealthChecker(client *redis.Client) func() bool {
	return func() bool {
		ctx, cancel := context.WithTimeout(context.Background(), healthCheckTimeout)
		defer cancel()
		return client.Ping(ctx).Err() == nil
	}
}
