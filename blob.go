package repodoc

import "context"

// BlobStore provides read access to pre-generated documentation artifacts,
// keyed by "namespace/project/filename". The store is populated by an
// external pipeline; this system only reads from it.
type BlobStore interface {
	// Get returns the blob for key. Returns ENOTFOUND when absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Exists reports whether a blob is present without fetching it.
	Exists(ctx context.Context, key string) (bool, error)
}
