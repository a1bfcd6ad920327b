package main

import (
	"fmt"

	"github.com/fwojciec/repodoc"
)

// Run executes the branch command. It shows the branch the resolver would
// probe, which makes the main/master fallback observable when a project's
// metadata is not accessible.
func (c *BranchCmd) Run(deps *Dependencies) error {
	repo, err := repodoc.ParseRepo(c.Repo)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", repodoc.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, deps.Resolver.ResolveBranch(deps.Ctx, repo, ""))
	return nil
}
