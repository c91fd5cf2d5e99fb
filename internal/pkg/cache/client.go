package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// PingTimeout bounds the connectivity check done by NewRedisClient.
const PingTimeout = 5 * time.Second

// NewRedisClient connects to the redis server at addr and checks it answers PING.
// The client is closed again when the check fails, so callers only own a
// client that was reachable at startup.
func NewRedisClient(ctx context.Context, addr string) (*redis.Client, error) {
	// 1. Client (connections are lazy)
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	// 2. Connectivity check
	if err := Ping(ctx, rdb); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to reach redis at %s: %w", addr, err)
	}

	return rdb, nil
}

// Ping checks rdb with PingTimeout applied to ctx.
func Ping(ctx context.Context, rdb *redis.Client) error {
	ctx, cancel := context.WithTimeout(ctx, PingTimeout)
	defer cancel()

	return rdb.Ping(ctx).Err()
}
