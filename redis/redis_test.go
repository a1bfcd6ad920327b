package redis_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fwojciec/repodoc"
	repodocredis "github.com/fwojciec/repodoc/redis"
)

// testClient connects to a local Redis or skips the test.
// Note: these tests require a Redis instance on localhost:6379.
// Skip with: go test -short
func testClient(t *testing.T) *goredis.Client {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping Redis integration test in short mode")
	}

	client := goredis.NewClient(&goredis.Options{
		Addr: "localhost:6379",
		DB:   15, // Use separate DB for tests
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("redis not available: %v", err)
	}
	t.Cleanup(func() { client.Close() })
	return client
}

func TestOpen(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping Redis integration test in short mode")
	}

	client, err := repodocredis.Open(context.Background(), "localhost:6379")
	if err != nil {
		t.Skipf("redis not available: %v", err)
	}
	defer client.Close()

	require.NoError(t, client.Ping(context.Background()).Err())
}

func TestKV(t *testing.T) {
	client := testClient(t)
	kv := repodocredis.NewKV(client)
	ctx := context.Background()

	t.Run("round-trips a value", func(t *testing.T) {
		key := "test:" + uuid.NewString()
		t.Cleanup(func() { client.Del(ctx, "repodoc:"+key) })

		require.NoError(t, kv.Put(ctx, key, []byte(`{"content":"docs"}`), time.Minute))

		value, ok, err := kv.Get(ctx, key)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, []byte(`{"content":"docs"}`), value)
	})

	t.Run("misses on an unknown key", func(t *testing.T) {
		_, ok, err := kv.Get(ctx, "test:"+uuid.NewString())
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("expires entries after the ttl", func(t *testing.T) {
		key := "test:" + uuid.NewString()

		require.NoError(t, kv.Put(ctx, key, []byte("v"), 100*time.Millisecond))
		time.Sleep(150 * time.Millisecond)

		_, ok, err := kv.Get(ctx, key)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("rejects a non-positive ttl", func(t *testing.T) {
		err := kv.Put(ctx, "test:"+uuid.NewString(), []byte("v"), 0)
		require.Error(t, err)
		assert.Equal(t, repodoc.EINVALID, repodoc.ErrorCode(err))
	})
}

func TestQueue_Send(t *testing.T) {
	client := testClient(t)
	ctx := context.Background()

	queueKey := fmt.Sprintf("repodoc:test:notifications:%s", uuid.NewString())
	t.Cleanup(func() { client.Del(ctx, queueKey) })

	queue := repodocredis.NewQueue(client, queueKey)

	sent := repodoc.Notification{
		ID:          uuid.NewString(),
		Namespace:   "acme",
		Project:     "widgets",
		Branch:      "main",
		FileUsed:    "llms.txt",
		SourcePath:  "https://gitlab.example.com/acme/widgets/-/raw/main/llms.txt",
		Content:     "# Widgets\n",
		ContentHash: "deadbeef",
		ResolvedAt:  time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, queue.Send(ctx, sent))

	payload, err := client.RPop(ctx, queueKey).Bytes()
	require.NoError(t, err)

	var got repodoc.Notification
	require.NoError(t, json.Unmarshal(payload, &got))
	assert.Equal(t, sent, got)
}
