package mock

import (
	"context"

	"github.com/fwojciec/repodoc"
)

var _ repodoc.BlobStore = (*BlobStore)(nil)

// BlobStore is a mock implementation of repodoc.BlobStore.
type BlobStore struct {
	GetFn    func(ctx context.Context, key string) ([]byte, error)
	ExistsFn func(ctx context.Context, key string) (bool, error)
}

func (s *BlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	return s.GetFn(ctx, key)
}

func (s *BlobStore) Exists(ctx context.Context, key string) (bool, error) {
	return s.ExistsFn(ctx, key)
}
