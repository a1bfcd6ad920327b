package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/repodoc"
)

// Run executes the resolve command.
func (c *ResolveCmd) Run(deps *Dependencies) error {
	repo, err := repodoc.ParseRepo(c.Repo)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", repodoc.ErrorMessage(err))
		return err
	}

	doc, err := deps.Resolver.Resolve(deps.Ctx, repo, c.Branch)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", repodoc.ErrorMessage(err))
		return err
	}

	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	}

	if !doc.Found() {
		fmt.Fprintf(deps.Stderr, "no documentation found for %s\n", repo)
		return nil
	}

	fmt.Fprintf(deps.Stderr, "source: %s", doc.FileUsed)
	if doc.SourcePath != "" {
		fmt.Fprintf(deps.Stderr, " (%s)", doc.SourcePath)
	}
	fmt.Fprintln(deps.Stderr)
	fmt.Fprint(deps.Stdout, doc.Content)
	return nil
}
