// Package fs provides a filesystem-backed blob store for pre-generated
// documentation.
package fs

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/repodoc"
)

// Ensure BlobStore implements repodoc.BlobStore at compile time.
var _ repodoc.BlobStore = (*BlobStore)(nil)

// BlobStore implements repodoc.BlobStore over a directory tree. Keys map
// directly to relative file paths, e.g. "acme/widgets/llms.txt".
type BlobStore struct {
	root string
}

// NewBlobStore creates a store rooted at root.
func NewBlobStore(root string) *BlobStore {
	return &BlobStore{root: root}
}

// Get implements repodoc.BlobStore.
func (s *BlobStore) Get(_ context.Context, key string) ([]byte, error) {
	path, err := s.resolve(key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, repodoc.Errorf(repodoc.ENOTFOUND, "blob %q not found", key)
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Exists implements repodoc.BlobStore.
func (s *BlobStore) Exists(_ context.Context, key string) (bool, error) {
	path, err := s.resolve(key)
	if err != nil {
		return false, err
	}

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// resolve maps a key to a path under the store root, rejecting keys that
// would escape it.
func (s *BlobStore) resolve(key string) (string, error) {
	if key == "" || strings.HasPrefix(key, "/") {
		return "", repodoc.Errorf(repodoc.EINVALID, "invalid blob key %q", key)
	}

	path := filepath.Join(s.root, filepath.FromSlash(key))
	rootPrefix := filepath.Clean(s.root) + string(filepath.Separator)
	if !strings.HasPrefix(path, rootPrefix) {
		return "", repodoc.Errorf(repodoc.EINVALID, "invalid blob key %q", key)
	}
	return path, nil
}
