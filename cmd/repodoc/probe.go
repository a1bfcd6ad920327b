package main

import (
	"fmt"

	"github.com/fwojciec/repodoc"
	"github.com/fwojciec/repodoc/resolve"
)

// Run executes the probe command. It reports which candidate documentation
// paths exist at the resolved branch without running the full cascade.
func (c *ProbeCmd) Run(deps *Dependencies) error {
	repo, err := repodoc.ParseRepo(c.Repo)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", repodoc.ErrorMessage(err))
		return err
	}

	branch := deps.Resolver.ResolveBranch(deps.Ctx, repo, c.Branch)
	fmt.Fprintf(deps.Stdout, "probing %s at branch %s\n", repo, branch)

	found := 0
	for _, candidate := range resolve.DefaultCandidates {
		loc := repodoc.Location{Repo: repo, Branch: branch, Path: candidate}
		content, err := deps.Platform.RawFile(deps.Ctx, loc)
		switch {
		case err == nil && content != "":
			fmt.Fprintf(deps.Stdout, "  %-20s found (%d bytes)\n", candidate, len(content))
			found++
		case err == nil:
			fmt.Fprintf(deps.Stdout, "  %-20s empty\n", candidate)
		case repodoc.ErrorCode(err) == repodoc.ENOTFOUND:
			fmt.Fprintf(deps.Stdout, "  %-20s missing\n", candidate)
		default:
			fmt.Fprintf(deps.Stdout, "  %-20s error: %s\n", candidate, repodoc.ErrorMessage(err))
		}
	}

	if found == 0 {
		fmt.Fprintln(deps.Stdout, "no candidates present; 'repodoc resolve' would fall back to search")
	}
	return nil
}
