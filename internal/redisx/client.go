package redisx

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// New connects to redis at addr. Returns nil when addr is empty so callers
// can treat caching as disabled.
func New(addr string) *redis.Client {
	if addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:        addr,
		DialTimeout: 2 * time.Second,
	})
}

func Ping(ctx context.Context, rdb *redis.Client) error {
	return rdb.Ping(ctx).Err()
}
