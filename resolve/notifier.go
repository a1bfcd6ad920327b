package resolve

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"

	"github.com/fwojciec/repodoc"
	"github.com/fwojciec/repodoc/bloom"
)

// Dedup filter sizing for the notifier.
const (
	notifierExpectedDispatches = 10000
	notifierFalsePositiveRate  = 0.01
)

// Notifier dispatches post-processing notifications for terminal
// resolutions to a work queue. Dispatch is best-effort: a Bloom filter
// suppresses repeats for content already sent, and a nil queue disables
// dispatch entirely.
type Notifier struct {
	queue  repodoc.Queue
	seen   *bloom.Filter
	logger *slog.Logger
}

// NewNotifier creates a Notifier over queue. A nil logger disables logging.
func NewNotifier(queue repodoc.Queue, logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = discard
	}
	return &Notifier{
		queue:  queue,
		seen:   bloom.NewFilter(notifierExpectedDispatches, notifierFalsePositiveRate),
		logger: logger,
	}
}

// Notify sends one notification for a resolution of repo. Repeat results
// with unchanged content are suppressed. The returned error reports
// dispatch failure only; callers log it and move on.
func (n *Notifier) Notify(ctx context.Context, repo repodoc.Repo, branch string, doc *repodoc.Document) error {
	if n.queue == nil {
		return nil
	}

	hash := ContentHash(doc.Content)
	key := repo.String() + "@" + hash
	if n.seen.Test(key) {
		n.logger.Debug("notification suppressed, content unchanged",
			"repo", repo.String(),
			"hash", hash,
		)
		return nil
	}

	msg := repodoc.Notification{
		ID:          uuid.NewString(),
		Namespace:   repo.Namespace,
		Project:     repo.Project,
		Branch:      branch,
		FileUsed:    doc.FileUsed,
		SourcePath:  doc.SourcePath,
		Content:     doc.Content,
		ContentHash: hash,
		ResolvedAt:  time.Now().UTC(),
	}
	if err := n.queue.Send(ctx, msg); err != nil {
		return err
	}

	// Marked only after a successful send so a failed dispatch can be
	// retried by the next resolution.
	n.seen.Add(key)
	n.logger.Info("notification dispatched",
		"repo", repo.String(),
		"file_used", doc.FileUsed,
		"id", msg.ID,
	)
	return nil
}

// ContentHash returns a short stable hash of content for change detection.
func ContentHash(content string) string {
	return fmt.Sprintf("%x", xxhash.Sum64String(content))
}
