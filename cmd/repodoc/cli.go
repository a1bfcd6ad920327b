package main

import (
	"context"
	"io"

	"github.com/fwojciec/repodoc"
	"github.com/fwojciec/repodoc/resolve"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Platform repodoc.Platform
	Resolver *resolve.Resolver
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Log resolution progress to stderr"`

	Resolve ResolveCmd `cmd:"" help:"Resolve documentation for a repository"`
	Probe   ProbeCmd   `cmd:"" help:"Show which candidate documentation paths exist"`
	Branch  BranchCmd  `cmd:"" help:"Show the branch the resolver would probe"`
}

// ResolveCmd is the "resolve" subcommand.
type ResolveCmd struct {
	Repo   string `arg:"" help:"Repository in namespace/project form"`
	Branch string `short:"b" help:"Probe this branch instead of the default"`
	JSON   bool   `help:"Print the resolved document as JSON"`
}

// ProbeCmd is the "probe" subcommand.
type ProbeCmd struct {
	Repo   string `arg:"" help:"Repository in namespace/project form"`
	Branch string `short:"b" help:"Probe this branch instead of the default"`
}

// BranchCmd is the "branch" subcommand.
type BranchCmd struct {
	Repo string `arg:"" help:"Repository in namespace/project form"`
}
