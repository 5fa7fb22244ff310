// Package cmd implements the reel CLI command tree.
// This file defines the root command and registers all global persistent flags.
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/derickschaefer/reel/internal/app"
	"github.com/derickschaefer/reel/internal/config"
	"github.com/derickschaefer/reel/internal/logging"
	"github.com/derickschaefer/reel/internal/render"
)

// globalFlags holds the parsed values of all persistent (global) flags.
// Commands read from this struct via the deps they receive.
var globalFlags struct {
	APIKey      string
	Format      string
	Out         string
	Timeout     string
	Concurrency int
	Rate        float64
	Language    string
	Quiet       bool
	Verbose     bool
	Debug       bool
	Pager       string
	NoColor     bool
}

// rootCmd is the base command. Running `reel` with no subcommand
// prints help.
var rootCmd = &cobra.Command{
	Use:   "reel",
	Short: "reel — browse and search the TMDB movie catalog",
	Long: `reel is a command-line tool for browsing and searching the movie catalog
of The Movie Database (TMDB), either interactively or as one-shot commands
whose output can be piped and re-sorted.

This product uses the TMDB API but is not endorsed or certified by TMDB.

Get an API key at: https://www.themoviedb.org/settings/api

Quick start:
  reel config init             # create a config.json with your API key
  reel browse --sort rating.desc
  reel search "blade runner"
  reel tui                     # interactive explorer`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if globalFlags.NoColor {
			render.SetColor(false)
		}
		// The tui command sets up its own file logger.
		if cmd.Name() != "tui" {
			logging.Init(os.Stderr, globalFlags.Debug)
		}
	},
}

// Execute is the entry point called by main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// buildDeps resolves config and constructs the dependency container.
// Called at the start of each command's RunE.
func buildDeps() (*app.Deps, error) {
	cfg, err := config.Load(globalFlags.APIKey)
	if err != nil {
		return nil, err
	}

	// Apply CLI flag overrides
	cfg.Quiet = globalFlags.Quiet
	cfg.Verbose = globalFlags.Verbose
	cfg.Debug = globalFlags.Debug
	cfg.Pager = globalFlags.Pager

	if globalFlags.Format != "" {
		cfg.Format = globalFlags.Format
	}
	if globalFlags.Timeout != "" {
		d, err := time.ParseDuration(globalFlags.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid --timeout %q: %w", globalFlags.Timeout, err)
		}
		cfg.Timeout = d
	}
	if globalFlags.Concurrency > 0 {
		cfg.Concurrency = globalFlags.Concurrency
	}
	if globalFlags.Rate > 0 {
		cfg.Rate = globalFlags.Rate
	}
	if globalFlags.Language != "" {
		cfg.Language = globalFlags.Language
	}

	return app.New(cfg), nil
}

func init() {
	pf := rootCmd.PersistentFlags()

	pf.StringVar(&globalFlags.APIKey, "api-key", "",
		"TMDB API key (overrides env TMDB_API_KEY and config.json)")
	pf.StringVar(&globalFlags.Format, "format", "",
		"output format: table|json|jsonl|csv|tsv|md (default: table)")
	pf.StringVar(&globalFlags.Out, "out", "",
		"write output to file instead of stdout")
	pf.StringVar(&globalFlags.Timeout, "timeout", "",
		"HTTP request timeout (e.g. 30s, 2m)")
	pf.IntVar(&globalFlags.Concurrency, "concurrency", 0,
		"max parallel page requests for --pages (default: 4)")
	pf.Float64Var(&globalFlags.Rate, "rate", 0,
		"max API requests per second (default: 5.0)")
	pf.StringVar(&globalFlags.Language, "language", "",
		"catalog language sent with every request (default: en-US)")
	pf.BoolVar(&globalFlags.Quiet, "quiet", false,
		"suppress all non-error output")
	pf.BoolVar(&globalFlags.Verbose, "verbose", false,
		"show timing stats and a result summary after output")
	pf.BoolVar(&globalFlags.Debug, "debug", false,
		"log HTTP requests and responses (API key redacted)")
	pf.StringVar(&globalFlags.Pager, "pager", "auto",
		"pager mode: auto|never")
	pf.BoolVar(&globalFlags.NoColor, "no-color", false,
		"disable colored warnings and stats")
}
