package redis

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"github.com/fwojciec/repodoc"
)

// Compile-time interface verification.
var _ repodoc.Queue = (*Queue)(nil)

// DefaultQueueKey is the list notifications are pushed onto.
const DefaultQueueKey = "repodoc:notifications"

// Queue implements repodoc.Queue by pushing JSON-encoded notifications
// onto a Redis list. Consumers drain the other end with BRPOP.
type Queue struct {
	client *redis.Client
	key    string
}

// NewQueue creates a Queue over client publishing to key. An empty key
// selects DefaultQueueKey.
func NewQueue(client *redis.Client, key string) *Queue {
	if key == "" {
		key = DefaultQueueKey
	}
	return &Queue{client: client, key: key}
}

// Send implements repodoc.Queue.
func (q *Queue) Send(ctx context.Context, n repodoc.Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return repodoc.Errorf(repodoc.EINTERNAL, "encoding notification: %v", err)
	}
	return q.client.LPush(ctx, q.key, payload).Err()
}
