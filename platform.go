package repodoc

import "context"

// Platform captures the Git-hosting platform operations used during
// resolution. Implementations are expected to rate-limit and retry
// internally; callers treat every error as a negative result and move on.
type Platform interface {
	// DefaultBranch returns the project's default branch from the
	// platform's metadata endpoint. Returns ENOTFOUND if the project
	// does not exist or is not visible.
	DefaultBranch(ctx context.Context, repo Repo) (string, error)

	// BranchExists reports whether the named branch exists.
	BranchExists(ctx context.Context, repo Repo, branch string) (bool, error)

	// RawFile fetches the raw content of a file. Returns ENOTFOUND if the
	// file is absent at the given branch and path.
	RawFile(ctx context.Context, loc Location) (string, error)

	// SearchBlobs queries the platform's code search (scope=blobs) within
	// the repository. An empty result slice is a normal negative outcome,
	// not an error.
	SearchBlobs(ctx context.Context, repo Repo, query string) ([]SearchResult, error)

	// RawURL returns the raw-content URL for a location without issuing
	// any request.
	RawURL(loc Location) string
}

// SearchResult is a single blob hit from the platform search API.
type SearchResult struct {
	// Path is the file path within the repository.
	Path string `json:"path"`

	// Filename is the platform-reported filename field. Some platform
	// versions report the full path here; prefer Path when set.
	Filename string `json:"filename"`

	// Ref is the branch or ref the hit was found at.
	Ref string `json:"ref"`
}
