package resolve

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/fwojciec/repodoc"
)

// Cache TTLs. Search-discovered paths are stable enough to live a day;
// resolved content tracks upstream edits more closely.
const (
	PathTTL    = 24 * time.Hour
	ContentTTL = time.Hour
)

// PathEntry records where a searched-for filename was found.
type PathEntry struct {
	Path   string `json:"path"`
	Branch string `json:"branch"`
}

// PathCache remembers search-discovered file locations keyed by repository
// and logical filename, so repeated resolutions skip the search call. Read
// failures and corrupt entries count as misses; the cache never fails a
// resolution.
type PathCache struct {
	kv     repodoc.KV
	logger *slog.Logger
	ttl    time.Duration
}

// NewPathCache creates a PathCache over kv. A nil logger disables logging.
func NewPathCache(kv repodoc.KV, logger *slog.Logger) *PathCache {
	if logger == nil {
		logger = discard
	}
	return &PathCache{kv: kv, logger: logger, ttl: PathTTL}
}

// Get returns the cached location for filename within repo, if one is live.
func (c *PathCache) Get(ctx context.Context, repo repodoc.Repo, filename string) (PathEntry, bool) {
	raw, ok, err := c.kv.Get(ctx, pathKey(repo, filename))
	if err != nil {
		c.logger.Warn("path cache read failed", "repo", repo.String(), "error", err)
		return PathEntry{}, false
	}
	if !ok {
		return PathEntry{}, false
	}
	var entry PathEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		c.logger.Warn("path cache entry corrupt", "repo", repo.String(), "error", err)
		return PathEntry{}, false
	}
	return entry, true
}

// Put stores the location for filename within repo.
func (c *PathCache) Put(ctx context.Context, repo repodoc.Repo, filename string, entry PathEntry) error {
	raw, err := json.Marshal(entry)
	if err != nil {
		return repodoc.Errorf(repodoc.EINTERNAL, "encoding path cache entry: %v", err)
	}
	return c.kv.Put(ctx, pathKey(repo, filename), raw, c.ttl)
}

// ContentCache remembers fully resolved documents keyed by repository, so
// repeated resolutions within the TTL skip the entire cascade.
type ContentCache struct {
	kv     repodoc.KV
	logger *slog.Logger
	ttl    time.Duration
}

// NewContentCache creates a ContentCache over kv. A nil logger disables
// logging.
func NewContentCache(kv repodoc.KV, logger *slog.Logger) *ContentCache {
	if logger == nil {
		logger = discard
	}
	return &ContentCache{kv: kv, logger: logger, ttl: ContentTTL}
}

// Get returns the cached document for repo, if one is live.
func (c *ContentCache) Get(ctx context.Context, repo repodoc.Repo) (*repodoc.Document, bool) {
	raw, ok, err := c.kv.Get(ctx, contentKey(repo))
	if err != nil {
		c.logger.Warn("content cache read failed", "repo", repo.String(), "error", err)
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var doc repodoc.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		c.logger.Warn("content cache entry corrupt", "repo", repo.String(), "error", err)
		return nil, false
	}
	return &doc, true
}

// Put stores the resolved document for repo.
func (c *ContentCache) Put(ctx context.Context, repo repodoc.Repo, doc *repodoc.Document) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return repodoc.Errorf(repodoc.EINTERNAL, "encoding content cache entry: %v", err)
	}
	return c.kv.Put(ctx, contentKey(repo), raw, c.ttl)
}

func pathKey(repo repodoc.Repo, filename string) string {
	return "path:" + repo.String() + ":" + filename
}

func contentKey(repo repodoc.Repo) string {
	return "content:" + repo.String()
}
