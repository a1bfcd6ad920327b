// Package slog provides logging decorators for repodoc services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/repodoc"
)

// Ensure LoggingPlatform implements repodoc.Platform.
var _ repodoc.Platform = (*LoggingPlatform)(nil)

// LoggingPlatform wraps a Platform with per-operation logging.
type LoggingPlatform struct {
	next   repodoc.Platform
	logger *slog.Logger
}

// NewLoggingPlatform creates a new LoggingPlatform.
func NewLoggingPlatform(next repodoc.Platform, logger *slog.Logger) *LoggingPlatform {
	return &LoggingPlatform{next: next, logger: logger}
}

// DefaultBranch delegates to the wrapped platform and logs the operation.
func (p *LoggingPlatform) DefaultBranch(ctx context.Context, repo repodoc.Repo) (branch string, err error) {
	defer func(begin time.Time) {
		p.logger.Info("default branch lookup",
			"repo", repo.String(),
			"branch", branch,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return p.next.DefaultBranch(ctx, repo)
}

// BranchExists delegates to the wrapped platform and logs the operation.
func (p *LoggingPlatform) BranchExists(ctx context.Context, repo repodoc.Repo, branch string) (ok bool, err error) {
	defer func(begin time.Time) {
		p.logger.Info("branch existence check",
			"repo", repo.String(),
			"branch", branch,
			"exists", ok,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return p.next.BranchExists(ctx, repo, branch)
}

// RawFile delegates to the wrapped platform and logs the operation.
func (p *LoggingPlatform) RawFile(ctx context.Context, loc repodoc.Location) (content string, err error) {
	defer func(begin time.Time) {
		p.logger.Info("raw file fetch",
			"repo", loc.Repo.String(),
			"branch", loc.Branch,
			"path", loc.Path,
			"bytes", len(content),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return p.next.RawFile(ctx, loc)
}

// SearchBlobs delegates to the wrapped platform and logs the operation.
func (p *LoggingPlatform) SearchBlobs(ctx context.Context, repo repodoc.Repo, query string) (results []repodoc.SearchResult, err error) {
	defer func(begin time.Time) {
		p.logger.Info("blob search",
			"repo", repo.String(),
			"query", query,
			"count", len(results),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return p.next.SearchBlobs(ctx, repo, query)
}

// RawURL delegates to the wrapped platform.
func (p *LoggingPlatform) RawURL(loc repodoc.Location) string {
	return p.next.RawURL(loc)
}
