package mock

import (
	"context"

	"github.com/fwojciec/repodoc"
)

var _ repodoc.Queue = (*Queue)(nil)

// Queue is a mock implementation of repodoc.Queue.
type Queue struct {
	SendFn func(ctx context.Context, n repodoc.Notification) error
}

func (q *Queue) Send(ctx context.Context, n repodoc.Notification) error {
	return q.SendFn(ctx, n)
}
