package main_test

import (
	"bytes"
	"testing"

	main "github.com/fwojciec/repodoc/cmd/repodoc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProbeCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("reports which candidates exist", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := testDeps(docsPlatform("# Widgets\n"), stdout, stderr)

		cmd := &main.ProbeCmd{Repo: "acme/widgets"}
		err := cmd.Run(deps)

		require.NoError(t, err)
		output := stdout.String()
		assert.Contains(t, output, "probing acme/widgets at branch main")
		assert.Contains(t, output, "llms.txt")
		assert.Contains(t, output, "found")
		assert.Contains(t, output, "missing")
	})

	t.Run("suggests the search fallback when nothing is present", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := testDeps(docsPlatform(""), stdout, stderr)

		cmd := &main.ProbeCmd{Repo: "acme/widgets"}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "no candidates present")
	})
}

func TestBranchCmd_Run(t *testing.T) {
	t.Parallel()

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	deps := testDeps(docsPlatform("# Widgets\n"), stdout, stderr)

	cmd := &main.BranchCmd{Repo: "acme/widgets"}
	err := cmd.Run(deps)

	require.NoError(t, err)
	assert.Equal(t, "main\n", stdout.String())
}
