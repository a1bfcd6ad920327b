package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/fwojciec/repodoc"
)

// Compile-time interface verification.
var _ repodoc.KV = (*KV)(nil)

// KV implements repodoc.KV using SQLite. Entries expire lazily: reads
// filter on the stored deadline, and dead rows stay on disk until Purge
// removes them.
type KV struct {
	db *DB
}

// NewKV creates a new KV over db.
func NewKV(db *DB) *KV {
	return &KV{db: db}
}

// Get returns the live value for key. Expired entries are reported as
// absent without being deleted.
func (s *KV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, `
		SELECT value FROM kv
		WHERE key = ? AND expires_at > ?
	`, key, time.Now().UnixMilli()).Scan(&value)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

// Put stores value under key until ttl from now. An existing entry is
// replaced along with its deadline.
func (s *KV) Put(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return repodoc.Errorf(repodoc.EINVALID, "ttl must be positive")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv (key, value, expires_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, expires_at = excluded.expires_at
	`, key, value, time.Now().Add(ttl).UnixMilli())
	return err
}

// Purge deletes entries whose deadline has passed and reports how many
// rows were removed.
func (s *KV) Purge(ctx context.Context) (int, error) {
	result, err := s.db.ExecContext(ctx, "DELETE FROM kv WHERE expires_at <= ?", time.Now().UnixMilli())
	if err != nil {
		return 0, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(rows), nil
}
