package mock

import (
	"context"
	"time"

	"github.com/fwojciec/repodoc"
)

var _ repodoc.KV = (*KV)(nil)

// KV is a mock implementation of repodoc.KV.
type KV struct {
	GetFn func(ctx context.Context, key string) ([]byte, bool, error)
	PutFn func(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

func (s *KV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return s.GetFn(ctx, key)
}

func (s *KV) Put(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return s.PutFn(ctx, key, value, ttl)
}
