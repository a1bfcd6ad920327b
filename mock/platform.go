package mock

import (
	"context"

	"github.com/fwojciec/repodoc"
)

var _ repodoc.Platform = (*Platform)(nil)

// Platform is a mock implementation of repodoc.Platform.
type Platform struct {
	DefaultBranchFn func(ctx context.Context, repo repodoc.Repo) (string, error)
	BranchExistsFn  func(ctx context.Context, repo repodoc.Repo, branch string) (bool, error)
	RawFileFn       func(ctx context.Context, loc repodoc.Location) (string, error)
	SearchBlobsFn   func(ctx context.Context, repo repodoc.Repo, query string) ([]repodoc.SearchResult, error)
	RawURLFn        func(loc repodoc.Location) string
}

func (p *Platform) DefaultBranch(ctx context.Context, repo repodoc.Repo) (string, error) {
	return p.DefaultBranchFn(ctx, repo)
}

func (p *Platform) BranchExists(ctx context.Context, repo repodoc.Repo, branch string) (bool, error) {
	return p.BranchExistsFn(ctx, repo, branch)
}

func (p *Platform) RawFile(ctx context.Context, loc repodoc.Location) (string, error) {
	return p.RawFileFn(ctx, loc)
}

func (p *Platform) SearchBlobs(ctx context.Context, repo repodoc.Repo, query string) ([]repodoc.SearchResult, error) {
	return p.SearchBlobsFn(ctx, repo, query)
}

func (p *Platform) RawURL(loc repodoc.Location) string {
	return p.RawURLFn(loc)
}
