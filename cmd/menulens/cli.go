package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"menulens"
)

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Output      string        `short:"o" help:"CSV output path (default: stdout)"`
	SnapshotDir string        `short:"s" help:"Directory to save fetched page snapshots"`
	DB          string        `help:"SQLite database path for run history"`
	Static      bool          `help:"Fetch with plain HTTP instead of a headless browser"`
	Concurrency int           `short:"c" default:"3" help:"Concurrent fetch limit"`
	RateLimit   float64       `default:"1" help:"Fetch requests per second per host"`
	Timeout     time.Duration `short:"t" default:"30s" help:"Fetch timeout per page"`
	Verbose     bool          `short:"v" help:"Enable debug logging"`
	Sources     []string      `arg:"" required:"" help:"Store page URLs or saved snapshot files"`
}

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Fetcher   menulens.Fetcher
	Extractor menulens.Extractor
	Writer    menulens.RecordWriter

	// Runs is optional; nil disables run history.
	Runs menulens.RunService
}

// ExtractCmd handles the extract operation.
type ExtractCmd struct {
	Sources     []string
	Concurrency int
	RateLimit   float64
}
