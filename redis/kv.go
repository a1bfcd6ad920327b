package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fwojciec/repodoc"
)

// Compile-time interface verification.
var _ repodoc.KV = (*KV)(nil)

// keyPrefix namespaces repodoc entries on a shared Redis instance.
const keyPrefix = "repodoc:"

// KV implements repodoc.KV using Redis.
type KV struct {
	client *redis.Client
}

// NewKV creates a new KV over client.
func NewKV(client *redis.Client) *KV {
	return &KV{client: client}
}

// Get returns the live value for key. Redis drops expired keys itself, so
// a dead entry simply reads as absent.
func (s *KV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := s.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

// Put stores value under key until ttl from now.
func (s *KV) Put(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return repodoc.Errorf(repodoc.EINVALID, "ttl must be positive")
	}
	return s.client.Set(ctx, keyPrefix+key, value, ttl).Err()
}
