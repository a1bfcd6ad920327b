package repodoc

import (
	"context"
	"time"
)

// Notification describes a completed resolution, dispatched to an external
// work queue for post-processing (indexing, analytics). Delivery is
// best-effort; consumers must tolerate duplicates and gaps.
type Notification struct {
	ID          string    `json:"id"`
	Namespace   string    `json:"namespace"`
	Project     string    `json:"project"`
	Branch      string    `json:"branch"`
	FileUsed    string    `json:"fileUsed"`
	SourcePath  string    `json:"sourcePath,omitempty"`
	Content     string    `json:"content"`
	ContentHash string    `json:"contentHash"`
	ResolvedAt  time.Time `json:"resolvedAt"`
}

// Queue dispatches notifications to an external job queue.
type Queue interface {
	// Send enqueues a notification. Failures are expected to be logged
	// and tolerated by callers, never propagated to users.
	Send(ctx context.Context, n Notification) error
}
