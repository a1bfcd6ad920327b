package gitlab

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/fwojciec/repodoc"
)

// Ensure Client implements repodoc.Platform.
var _ repodoc.Platform = (*Client)(nil)

// searchPerPage is the platform's maximum search page size. Candidate files
// are rare enough that a single page is always sufficient.
const searchPerPage = 100

// DefaultBranch implements repodoc.Platform. It returns the repository's
// configured default branch from the project metadata endpoint.
func (c *Client) DefaultBranch(ctx context.Context, repo repodoc.Repo) (string, error) {
	resp, err := c.Get(ctx, c.apiURL("projects", projectID(repo)), true)
	if err != nil {
		return "", repodoc.Errorf(repodoc.EUNAVAILABLE, "project metadata unavailable: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", statusError(resp, fmt.Sprintf("project %s", repo))
	}

	var project struct {
		DefaultBranch string `json:"default_branch"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&project); err != nil {
		return "", repodoc.Errorf(repodoc.EINTERNAL, "decoding project metadata for %s: %v", repo, err)
	}
	if project.DefaultBranch == "" {
		return "", repodoc.Errorf(repodoc.ENOTFOUND, "project %s has no default branch", repo)
	}
	return project.DefaultBranch, nil
}

// BranchExists implements repodoc.Platform.
func (c *Client) BranchExists(ctx context.Context, repo repodoc.Repo, branch string) (bool, error) {
	u := c.apiURL("projects", projectID(repo), "repository", "branches", url.PathEscape(branch))
	resp, err := c.Get(ctx, u, true)
	if err != nil {
		return false, repodoc.Errorf(repodoc.EUNAVAILABLE, "branch lookup unavailable: %v", err)
	}
	defer drainBody(resp)

	switch resp.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		return false, statusError(resp, fmt.Sprintf("branch %s of %s", branch, repo))
	}
}

// RawFile implements repodoc.Platform. It fetches file content through the
// public raw endpoint, which serves without authentication.
func (c *Client) RawFile(ctx context.Context, loc repodoc.Location) (string, error) {
	resp, err := c.Get(ctx, c.RawURL(loc), false)
	if err != nil {
		return "", repodoc.Errorf(repodoc.EUNAVAILABLE, "raw fetch unavailable: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", statusError(resp, fmt.Sprintf("file %s at %s@%s", loc.Path, loc.Repo, loc.Branch))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", repodoc.Errorf(repodoc.EINTERNAL, "reading %s: %v", loc.Path, err)
	}
	return string(body), nil
}

// SearchBlobs implements repodoc.Platform. It runs a blob-scoped search
// within the repository and decodes the matching file references.
func (c *Client) SearchBlobs(ctx context.Context, repo repodoc.Repo, query string) ([]repodoc.SearchResult, error) {
	q := url.Values{}
	q.Set("scope", "blobs")
	q.Set("search", query)
	q.Set("per_page", strconv.Itoa(searchPerPage))
	u := c.apiURL("projects", projectID(repo), "search") + "?" + q.Encode()

	resp, err := c.Get(ctx, u, true)
	if err != nil {
		return nil, repodoc.Errorf(repodoc.EUNAVAILABLE, "blob search unavailable: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp, fmt.Sprintf("blob search %q in %s", query, repo))
	}

	var results []repodoc.SearchResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, repodoc.Errorf(repodoc.EINTERNAL, "decoding blob search results for %s: %v", repo, err)
	}
	return results, nil
}

// RawURL implements repodoc.Platform. Path segments come from the platform
// itself or from the fixed candidate list, so they are joined verbatim.
func (c *Client) RawURL(loc repodoc.Location) string {
	return fmt.Sprintf("%s/%s/-/raw/%s/%s", c.baseURL, loc.Repo, loc.Branch, loc.Path)
}

// apiURL joins path segments onto the instance's /api/v4 prefix.
func (c *Client) apiURL(parts ...string) string {
	return c.baseURL + "/api/v4/" + strings.Join(parts, "/")
}

// projectID returns the URL-escaped "namespace/project" path parameter the
// projects API expects.
func projectID(repo repodoc.Repo) string {
	return url.PathEscape(repo.String())
}

// statusError maps an unexpected response status to an application error.
func statusError(resp *http.Response, what string) error {
	switch resp.StatusCode {
	case http.StatusNotFound:
		return repodoc.Errorf(repodoc.ENOTFOUND, "%s not found", what)
	case http.StatusTooManyRequests:
		return repodoc.Errorf(repodoc.ERATELIMITED, "%s rate limited", what)
	default:
		return repodoc.Errorf(repodoc.EINTERNAL, "%s returned status %d", what, resp.StatusCode)
	}
}
