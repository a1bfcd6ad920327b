package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/repodoc"
)

// Ensure LoggingQueue implements repodoc.Queue.
var _ repodoc.Queue = (*LoggingQueue)(nil)

// LoggingQueue wraps a Queue with dispatch logging.
type LoggingQueue struct {
	next   repodoc.Queue
	logger *slog.Logger
}

// NewLoggingQueue creates a new LoggingQueue.
func NewLoggingQueue(next repodoc.Queue, logger *slog.Logger) *LoggingQueue {
	return &LoggingQueue{next: next, logger: logger}
}

// Send delegates to the wrapped queue and logs the dispatch.
func (q *LoggingQueue) Send(ctx context.Context, n repodoc.Notification) (err error) {
	defer func(begin time.Time) {
		q.logger.Info("queue send",
			"id", n.ID,
			"repo", n.Namespace+"/"+n.Project,
			"file_used", n.FileUsed,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return q.next.Send(ctx, n)
}
