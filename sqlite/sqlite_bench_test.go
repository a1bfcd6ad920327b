package sqlite_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/repodoc/sqlite"
	"github.com/stretchr/testify/require"
)

// BenchmarkKV_Put measures cache write throughput, which dominates the
// store's workload right after a cold start.
func BenchmarkKV_Put(b *testing.B) {
	tmpDir := b.TempDir()
	dbPath := filepath.Join(tmpDir, "bench.db")

	db := sqlite.NewDB(dbPath)
	require.NoError(b, db.Open())
	defer func() {
		db.Close()
		os.Remove(dbPath + "-wal")
		os.Remove(dbPath + "-shm")
	}()

	kv := sqlite.NewKV(db)
	ctx := context.Background()
	value := []byte(`{"fileUsed":"llms.txt","content":"# Docs\n\nLorem ipsum dolor sit amet, consectetur adipiscing elit."}`)

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		key := fmt.Sprintf("content:bench/project-%d", i)
		if err := kv.Put(ctx, key, value, time.Hour); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkKV_Get measures warm-cache read latency.
func BenchmarkKV_Get(b *testing.B) {
	tmpDir := b.TempDir()
	dbPath := filepath.Join(tmpDir, "bench.db")

	db := sqlite.NewDB(dbPath)
	require.NoError(b, db.Open())
	defer func() {
		db.Close()
		os.Remove(dbPath + "-wal")
		os.Remove(dbPath + "-shm")
	}()

	kv := sqlite.NewKV(db)
	ctx := context.Background()

	const keys = 1000
	value := []byte(`{"fileUsed":"llms.txt","content":"# Docs"}`)
	for i := 0; i < keys; i++ {
		key := fmt.Sprintf("content:bench/project-%d", i)
		require.NoError(b, kv.Put(ctx, key, value, time.Hour))
	}

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		key := fmt.Sprintf("content:bench/project-%d", i%keys)
		if _, _, err := kv.Get(ctx, key); err != nil {
			b.Fatal(err)
		}
	}
}
