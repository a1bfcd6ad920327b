package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/repodoc"
)

// Ensure LoggingKV implements repodoc.KV.
var _ repodoc.KV = (*LoggingKV)(nil)

// LoggingKV wraps a KV with debug logging. Cache traffic is chatty, so it
// stays below the default log level.
type LoggingKV struct {
	next   repodoc.KV
	logger *slog.Logger
}

// NewLoggingKV creates a new LoggingKV.
func NewLoggingKV(next repodoc.KV, logger *slog.Logger) *LoggingKV {
	return &LoggingKV{next: next, logger: logger}
}

// Get delegates to the wrapped store and logs the lookup.
func (s *LoggingKV) Get(ctx context.Context, key string) (value []byte, ok bool, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("cache get",
			"key", key,
			"hit", ok,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Get(ctx, key)
}

// Put delegates to the wrapped store and logs the write.
func (s *LoggingKV) Put(ctx context.Context, key string, value []byte, ttl time.Duration) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("cache put",
			"key", key,
			"bytes", len(value),
			"ttl", ttl,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Put(ctx, key, value, ttl)
}
