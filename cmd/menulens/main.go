package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"menulens"
	menucsv "menulens/csv"
	"menulens/extract"
	"menulens/fs"
	menuhttp "menulens/http"
	"menulens/rod"
	menuslog "menulens/slog"
	"menulens/sqlite"
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
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("menulens"),
		kong.Description("Extract catalog items from rendered store pages to CSV"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle no arguments
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no arguments provided")
	}

	// Handle help flags
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	_, err = parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	// Wire dependencies
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Logger: logger,
	}

	// The network fetcher is only launched when a source is a URL; snapshot
	// files are served straight from disk.
	var network menulens.Fetcher
	if hasURLSource(cli.Sources) {
		if cli.Static {
			network = menuhttp.NewFetcher(menuhttp.WithTimeout(cli.Timeout))
		} else {
			rodFetcher, err := rod.NewFetcher(rod.WithFetchTimeout(cli.Timeout))
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
				return fmt.Errorf("failed to start browser: %w", err)
			}
			network = rodFetcher
		}
		defer network.Close()
	}

	var fetcher menulens.Fetcher = &sourceFetcher{network: network}
	if cli.SnapshotDir != "" {
		fetcher = &savingFetcher{
			next:  fetcher,
			store: fs.NewSnapshotStore(cli.SnapshotDir),
		}
	}
	deps.Fetcher = menuslog.NewLoggingFetcher(fetcher, logger)

	deps.Extractor = menuslog.NewLoggingExtractor(&extract.Pipeline{Logger: logger}, logger)

	// Output CSV goes to stdout unless a file was named
	out := stdout
	if cli.Output != "" && cli.Output != "-" {
		f, err := os.Create(cli.Output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		out = f
	}
	deps.Writer = menucsv.NewWriter(out)

	// Optional run history database
	if cli.DB != "" {
		db := sqlite.NewDB(cli.DB)
		if err := db.Open(); err != nil {
			return err
		}
		defer db.Close()
		deps.Runs = sqlite.NewRunService(db)
	}

	cmd := &ExtractCmd{
		Sources:     cli.Sources,
		Concurrency: cli.Concurrency,
		RateLimit:   cli.RateLimit,
	}

	return cmd.Run(deps)
}

func hasURLSource(sources []string) bool {
	for _, s := range sources {
		if !fs.IsSnapshotPath(s) {
			return true
		}
	}
	return false
}
