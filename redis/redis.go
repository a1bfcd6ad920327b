// Package redis provides Redis-backed cache and queue implementations for
// repodoc. Expiry is delegated to Redis itself via per-key TTLs, so lazy
// expiration comes for free.
package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Open connects to the Redis instance at addr and verifies the connection.
func Open(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}
	return client, nil
}
