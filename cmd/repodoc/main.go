package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/fwojciec/repodoc"
	"github.com/fwojciec/repodoc/fs"
	"github.com/fwojciec/repodoc/gitlab"
	rdredis "github.com/fwojciec/repodoc/redis"
	"github.com/fwojciec/repodoc/resolve"
	rdslog "github.com/fwojciec/repodoc/slog"
	"github.com/fwojciec/repodoc/sqlite"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Cache database path. Set before calling Run().
	DBPath string

	// Redis address. When set, Redis replaces SQLite as the cache backend
	// and provides the notification queue.
	RedisAddr string

	// Pre-generated blob store root. Empty disables the blob fallback.
	BlobDir string

	// GitLab instance and credentials.
	BaseURL string
	Token   string

	// SQLite database backing the caches unless Redis is configured.
	DB *sqlite.DB

	// Resolver for end-to-end testing.
	Resolver *resolve.Resolver
}

// NewMain returns a new instance of Main configured from the environment.
func NewMain() *Main {
	return &Main{
		DBPath:    defaultDBPath(),
		RedisAddr: os.Getenv("REPODOC_REDIS"),
		BlobDir:   os.Getenv("REPODOC_BLOB_DIR"),
		BaseURL:   os.Getenv("REPODOC_GITLAB_URL"),
		Token:     os.Getenv("REPODOC_GITLAB_TOKEN"),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("repodoc"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'repodoc --help' to see available commands")
	}
	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Resolution progress is diagnostic output; keep it off stdout and
	// below the fold unless asked for.
	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	clientOpts := []gitlab.Option{gitlab.WithLogger(logger)}
	if m.BaseURL != "" {
		clientOpts = append(clientOpts, gitlab.WithBaseURL(m.BaseURL))
	}
	if m.Token != "" {
		clientOpts = append(clientOpts, gitlab.WithToken(m.Token))
	}
	client := gitlab.NewClient(clientOpts...)
	deps.Platform = rdslog.NewLoggingPlatform(client, logger)

	var kv repodoc.KV
	var queue repodoc.Queue
	if m.RedisAddr != "" {
		rc, err := rdredis.Open(ctx, m.RedisAddr)
		if err != nil {
			fmt.Fprintln(stderr, "Hint: unset REPODOC_REDIS to fall back to the SQLite cache")
			return err
		}
		defer rc.Close()
		kv = rdredis.NewKV(rc)
		queue = rdredis.NewQueue(rc, "")
	} else {
		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set REPODOC_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}
		defer m.Close()
		kv = sqlite.NewKV(m.DB)
	}
	kv = rdslog.NewLoggingKV(kv, logger)

	var blobs repodoc.BlobStore
	if m.BlobDir != "" {
		blobs = fs.NewBlobStore(m.BlobDir)
	}

	var notifier *resolve.Notifier
	if queue != nil {
		notifier = resolve.NewNotifier(rdslog.NewLoggingQueue(queue, logger), logger)
	}

	m.Resolver = &resolve.Resolver{
		Platform: deps.Platform,
		Contents: resolve.NewContentCache(kv, logger),
		Paths:    resolve.NewPathCache(kv, logger),
		Blobs:    blobs,
		Notifier: notifier,
		Logger:   logger,
	}
	deps.Resolver = m.Resolver

	if err := kongCtx.Run(deps); err != nil {
		return err
	}

	// Flush detached cache writes and notifications before exiting.
	m.Resolver.Wait()
	return nil
}

func defaultDBPath() string {
	if path := os.Getenv("REPODOC_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "repodoc.db"
	}
	dir := filepath.Join(home, ".repodoc")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "repodoc.db")
}
