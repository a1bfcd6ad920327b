package repodoc

import (
	"context"
	"time"
)

// KV is a key-value store with time-to-live semantics. Implementations must
// treat an expired entry as absent at read time (lazy expiry); no background
// sweep is required or expected.
type KV interface {
	// Get returns the value for key. ok is false when the key is absent
	// or its entry has expired.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)

	// Put stores value under key for the given time-to-live.
	Put(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
