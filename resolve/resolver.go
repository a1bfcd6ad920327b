// Package resolve implements the ordered cascade that finds canonical
// documentation for a repository: cached content, well-known static paths,
// platform search, pre-generated blobs, and finally any root-level README.
package resolve

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/fwojciec/repodoc"
)

// DefaultCandidates are the well-known documentation paths probed on the
// resolved branch. Order decides which file wins when several exist.
var DefaultCandidates = []string{
	"llms.txt",
	"llms-full.txt",
	"docs/llms.txt",
	"docs/llms-full.txt",
}

// CanonicalFilename is searched for when no static candidate matches, and
// is the logical key under which discovered paths are cached.
const CanonicalFilename = "llms.txt"

// BlobFileLabel marks content served from the pre-generated blob store.
const BlobFileLabel = "llms.txt (generated)"

// defaultDetachTimeout bounds background cache writes and notifications
// after the resolution itself has returned.
const defaultDetachTimeout = 10 * time.Second

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

// Resolver walks the resolution cascade for a repository. Platform is
// required; the caches, blob store, and notifier are optional and disable
// their stages when nil.
type Resolver struct {
	Platform repodoc.Platform

	Contents *ContentCache
	Paths    *PathCache
	Blobs    repodoc.BlobStore
	Notifier *Notifier
	Logger   *slog.Logger

	// Candidates overrides DefaultCandidates when non-empty.
	Candidates []string

	// DetachTimeout bounds background work started by a resolution.
	DetachTimeout time.Duration

	wg sync.WaitGroup
}

// Resolve finds documentation for repo. A non-empty branch pins the probes
// to that branch when it exists. The result is never nil on a nil error: a
// repository without recognizable documentation resolves to the
// no-documentation sentinel, not an error. Cache writes and queue
// notifications happen in the background after Resolve returns.
func (r *Resolver) Resolve(ctx context.Context, repo repodoc.Repo, branch string) (*repodoc.Document, error) {
	if err := repo.Validate(); err != nil {
		return nil, err
	}

	if r.Contents != nil {
		if doc, ok := r.Contents.Get(ctx, repo); ok {
			r.logger().Info("content cache hit",
				"repo", repo.String(),
				"file_used", doc.FileUsed,
			)
			return doc, nil
		}
	}

	branch = r.ResolveBranch(ctx, repo, branch)
	doc := r.runCascade(ctx, repo, branch)

	if r.Contents != nil && doc.Found() {
		r.detach("content cache write", func(ctx context.Context) error {
			return r.Contents.Put(ctx, repo, doc)
		})
	}
	if r.Notifier != nil {
		r.detach("notification", func(ctx context.Context) error {
			return r.Notifier.Notify(ctx, repo, branch, doc)
		})
	}

	return doc, nil
}

// Wait blocks until background work from earlier resolutions has finished.
// Short-lived callers use it to flush cache writes and notifications before
// exiting.
func (r *Resolver) Wait() { r.wg.Wait() }

// runCascade tries each stage in order and stops at the first hit.
func (r *Resolver) runCascade(ctx context.Context, repo repodoc.Repo, branch string) *repodoc.Document {
	if doc := r.probeCandidates(ctx, repo, branch); doc != nil {
		return doc
	}
	if doc := r.searchCanonical(ctx, repo, branch); doc != nil {
		return doc
	}
	if doc := r.lookupBlob(ctx, repo); doc != nil {
		return doc
	}
	if doc := r.searchReadme(ctx, repo, branch); doc != nil {
		return doc
	}
	r.logger().Info("no documentation found", "repo", repo.String(), "branch", branch)
	return repodoc.NoDocumentation()
}

// ResolveBranch picks the branch to probe. A requested branch is used when
// it exists; otherwise the platform's default branch; otherwise an
// existence probe of "main" then "master". The final fallback is "main"
// regardless, since a wrong branch only makes the downstream fetches miss.
func (r *Resolver) ResolveBranch(ctx context.Context, repo repodoc.Repo, requested string) string {
	if requested != "" {
		if ok, err := r.Platform.BranchExists(ctx, repo, requested); err == nil && ok {
			return requested
		}
		r.logger().Warn("requested branch not usable",
			"repo", repo.String(),
			"branch", requested,
		)
	}

	branch, err := r.Platform.DefaultBranch(ctx, repo)
	if err == nil {
		return branch
	}
	r.logger().Warn("default branch lookup failed",
		"repo", repo.String(),
		"error", err,
	)

	for _, candidate := range []string{"main", "master"} {
		if ok, err := r.Platform.BranchExists(ctx, repo, candidate); err == nil && ok {
			return candidate
		}
	}
	return "main"
}

// probeCandidates fetches every candidate path concurrently, then picks the
// first list entry with content. Selection follows the candidate list's
// order, not completion order.
func (r *Resolver) probeCandidates(ctx context.Context, repo repodoc.Repo, branch string) *repodoc.Document {
	candidates := r.candidates()
	contents := make([]string, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	for i, candidate := range candidates {
		i, candidate := i, candidate
		g.Go(func() error {
			loc := repodoc.Location{Repo: repo, Branch: branch, Path: candidate}
			content, err := r.Platform.RawFile(gctx, loc)
			if err != nil {
				if repodoc.ErrorCode(err) != repodoc.ENOTFOUND {
					r.logger().Warn("candidate probe failed",
						"repo", repo.String(),
						"path", candidate,
						"error", err,
					)
				}
				return nil
			}
			contents[i] = content
			return nil
		})
	}
	_ = g.Wait()

	for i, content := range contents {
		if content == "" {
			continue
		}
		loc := repodoc.Location{Repo: repo, Branch: branch, Path: candidates[i]}
		r.logger().Info("documentation found at static path",
			"repo", repo.String(),
			"path", candidates[i],
		)
		return &repodoc.Document{
			FileUsed:   candidates[i],
			SourcePath: r.Platform.RawURL(loc),
			Content:    content,
		}
	}
	return nil
}

// searchCanonical falls back to the platform's blob search for the
// canonical filename. Discovered locations are written to the path cache so
// the next resolution skips the search call.
func (r *Resolver) searchCanonical(ctx context.Context, repo repodoc.Repo, branch string) *repodoc.Document {
	if r.Paths != nil {
		if entry, ok := r.Paths.Get(ctx, repo, CanonicalFilename); ok {
			if doc := r.fetchAt(ctx, repo, entry.Branch, entry.Path, CanonicalFilename); doc != nil {
				r.logger().Info("documentation found via cached path",
					"repo", repo.String(),
					"path", entry.Path,
				)
				return doc
			}
		}
	}

	results, err := r.Platform.SearchBlobs(ctx, repo, "filename:"+CanonicalFilename)
	if err != nil {
		r.logger().Warn("blob search failed", "repo", repo.String(), "error", err)
		return nil
	}
	for _, res := range results {
		if res.Filename != CanonicalFilename {
			continue
		}
		ref := res.Ref
		if ref == "" {
			ref = branch
		}
		doc := r.fetchAt(ctx, repo, ref, res.Path, CanonicalFilename)
		if doc == nil {
			continue
		}
		if r.Paths != nil {
			entry := PathEntry{Path: res.Path, Branch: ref}
			r.detach("path cache write", func(ctx context.Context) error {
				return r.Paths.Put(ctx, repo, CanonicalFilename, entry)
			})
		}
		r.logger().Info("documentation found via search",
			"repo", repo.String(),
			"path", res.Path,
		)
		return doc
	}
	return nil
}

// lookupBlob consults the pre-generated blob store.
func (r *Resolver) lookupBlob(ctx context.Context, repo repodoc.Repo) *repodoc.Document {
	if r.Blobs == nil {
		return nil
	}
	key := blobKey(repo)
	content, err := r.Blobs.Get(ctx, key)
	if err != nil {
		if repodoc.ErrorCode(err) != repodoc.ENOTFOUND {
			r.logger().Warn("blob lookup failed",
				"repo", repo.String(),
				"key", key,
				"error", err,
			)
		}
		return nil
	}
	if len(content) == 0 {
		return nil
	}
	r.logger().Info("documentation found in blob store", "repo", repo.String(), "key", key)
	return &repodoc.Document{FileUsed: BlobFileLabel, Content: string(content)}
}

// searchReadme is the last resort: any root-level file whose name begins
// with README, first search hit wins. The matched filename becomes the
// reported source.
func (r *Resolver) searchReadme(ctx context.Context, repo repodoc.Repo, branch string) *repodoc.Document {
	results, err := r.Platform.SearchBlobs(ctx, repo, "README")
	if err != nil {
		r.logger().Warn("readme search failed", "repo", repo.String(), "error", err)
		return nil
	}
	for _, res := range results {
		if strings.Contains(res.Path, "/") || !strings.HasPrefix(res.Filename, "README") {
			continue
		}
		ref := res.Ref
		if ref == "" {
			ref = branch
		}
		if doc := r.fetchAt(ctx, repo, ref, res.Path, res.Filename); doc != nil {
			r.logger().Info("falling back to readme",
				"repo", repo.String(),
				"file", res.Filename,
			)
			return doc
		}
	}
	return nil
}

// fetchAt fetches one location and wraps it as a document labeled with
// fileUsed. Misses and empty files return nil.
func (r *Resolver) fetchAt(ctx context.Context, repo repodoc.Repo, branch, filePath, fileUsed string) *repodoc.Document {
	loc := repodoc.Location{Repo: repo, Branch: branch, Path: filePath}
	content, err := r.Platform.RawFile(ctx, loc)
	if err != nil {
		if repodoc.ErrorCode(err) != repodoc.ENOTFOUND {
			r.logger().Warn("fetch failed",
				"repo", repo.String(),
				"path", filePath,
				"error", err,
			)
		}
		return nil
	}
	if content == "" {
		return nil
	}
	return &repodoc.Document{
		FileUsed:   fileUsed,
		SourcePath: r.Platform.RawURL(loc),
		Content:    content,
	}
}

// detach runs fn in the background so the resolution can return without
// waiting on best-effort work. Errors are logged, never joined.
func (r *Resolver) detach(op string, fn func(ctx context.Context) error) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), r.detachTimeout())
		defer cancel()
		if err := fn(ctx); err != nil {
			r.logger().Error("background work failed", "op", op, "error", err)
		}
	}()
}

// blobKey is the pre-generated store's key layout.
func blobKey(repo repodoc.Repo) string {
	return repo.String() + "/" + CanonicalFilename
}

func (r *Resolver) candidates() []string {
	if len(r.Candidates) > 0 {
		return r.Candidates
	}
	return DefaultCandidates
}

func (r *Resolver) detachTimeout() time.Duration {
	if r.DetachTimeout > 0 {
		return r.DetachTimeout
	}
	return defaultDetachTimeout
}

func (r *Resolver) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return discard
}
