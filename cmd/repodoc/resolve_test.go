package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/fwojciec/repodoc"
	main "github.com/fwojciec/repodoc/cmd/repodoc"
	"github.com/fwojciec/repodoc/mock"
	"github.com/fwojciec/repodoc/resolve"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// docsPlatform serves a single llms.txt at the root of the main branch.
func docsPlatform(content string) *mock.Platform {
	return &mock.Platform{
		DefaultBranchFn: func(_ context.Context, _ repodoc.Repo) (string, error) {
			return "main", nil
		},
		BranchExistsFn: func(_ context.Context, _ repodoc.Repo, branch string) (bool, error) {
			return branch == "main", nil
		},
		RawFileFn: func(_ context.Context, loc repodoc.Location) (string, error) {
			if loc.Branch == "main" && loc.Path == "llms.txt" {
				return content, nil
			}
			return "", repodoc.Errorf(repodoc.ENOTFOUND, "file %s not found", loc.Path)
		},
		SearchBlobsFn: func(_ context.Context, _ repodoc.Repo, _ string) ([]repodoc.SearchResult, error) {
			return nil, nil
		},
		RawURLFn: func(loc repodoc.Location) string {
			return "https://gitlab.example.com/" + loc.Repo.String() + "/-/raw/" + loc.Branch + "/" + loc.Path
		},
	}
}

func testDeps(platform repodoc.Platform, stdout, stderr *bytes.Buffer) *main.Dependencies {
	return &main.Dependencies{
		Ctx:      context.Background(),
		Stdout:   stdout,
		Stderr:   stderr,
		Platform: platform,
		Resolver: &resolve.Resolver{Platform: platform},
	}
}

func TestResolveCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints resolved content to stdout and the source to stderr", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := testDeps(docsPlatform("# Widgets\n"), stdout, stderr)

		cmd := &main.ResolveCmd{Repo: "acme/widgets"}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "# Widgets\n", stdout.String())
		assert.Contains(t, stderr.String(), "source: llms.txt")
		assert.Contains(t, stderr.String(), "https://gitlab.example.com/acme/widgets/-/raw/main/llms.txt")
	})

	t.Run("prints the document as JSON when asked", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := testDeps(docsPlatform("# Widgets\n"), stdout, stderr)

		cmd := &main.ResolveCmd{Repo: "acme/widgets", JSON: true}
		err := cmd.Run(deps)

		require.NoError(t, err)

		var doc repodoc.Document
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &doc))
		assert.Equal(t, "llms.txt", doc.FileUsed)
		assert.Equal(t, "# Widgets\n", doc.Content)
	})

	t.Run("reports the sentinel as a message, not an error", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := testDeps(docsPlatform(""), stdout, stderr)

		cmd := &main.ResolveCmd{Repo: "acme/widgets"}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Empty(t, stdout.String())
		assert.Contains(t, stderr.String(), "no documentation found for acme/widgets")
	})

	t.Run("rejects a malformed repository argument", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := testDeps(&mock.Platform{}, stdout, stderr)

		cmd := &main.ResolveCmd{Repo: "not-a-repo"}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, repodoc.EINVALID, repodoc.ErrorCode(err))
		assert.Contains(t, stderr.String(), "error:")
	})
}
