package cmd

import (
	"encoding/json"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/derickschaefer/reel/internal/config"
)

// Version is the canonical release string. The default here is the fallback
// for `go run` and untagged builds. Production builds overwrite this via:
//
//	go build -ldflags "-X github.com/derickschaefer/reel/cmd.Version=v0.1.1"
//
// Set once in the Makefile VERSION variable; never edit this string directly
// for a release.
var Version = "v0.1.0"

// versionInfo is the structured payload for --format json output.
// All fields are exported so encoding/json picks them up.
type versionInfo struct {
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	GOOS      string `json:"goos"`
	GOARCH    string `json:"goarch"`
	BuildTime string `json:"build_time,omitempty"`
	APIBase   string `json:"api_base"`
	Language  string `json:"language"`
}

// newVersionInfo reports the catalog endpoint reel would talk to. A config
// that fails to load falls back to the built-in defaults.
func newVersionInfo() versionInfo {
	info := versionInfo{
		Version:   Version,
		GoVersion: runtime.Version(),
		GOOS:      runtime.GOOS,
		GOARCH:    runtime.GOARCH,
		BuildTime: BuildTime,
		APIBase:   config.DefaultBaseURL,
		Language:  config.DefaultLanguage,
	}
	if cfg, err := config.Load(globalFlags.APIKey); err == nil {
		info.APIBase = cfg.BaseURL
		info.Language = cfg.Language
	}
	if globalFlags.Language != "" {
		info.Language = globalFlags.Language
	}
	return info
}

// BuildTime is optionally injected at build time alongside Version:
//
//	-ldflags "-X github.com/derickschaefer/reel/cmd.Version=v0.1.1
//	           -X github.com/derickschaefer/reel/cmd.BuildTime=2026-02-16T12:00:00Z"
var BuildTime = ""

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the reel version and the catalog endpoint in use",
	Long: `Print the reel version, build metadata, and the TMDB base URL and
language that browse and search requests will use.

Use --format json for structured output.

Examples:
  reel version
  reel version --format json
  reel version --format json | jq .version`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format := globalFlags.Format
		if format == "" {
			format = "text"
		}

		info := newVersionInfo()

		switch format {
		case "json":
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(info)

		case "jsonl":
			// Single object on one line, for mixing into a JSONL pipeline.
			b, err := json.Marshal(info)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", b)
			return nil

		default:
			// Plain text, one value per line.
			fmt.Fprintf(cmd.OutOrStdout(), "reel    %s\n", info.Version)
			fmt.Fprintf(cmd.OutOrStdout(), "go      %s\n", info.GoVersion)
			fmt.Fprintf(cmd.OutOrStdout(), "os      %s/%s\n", info.GOOS, info.GOARCH)
			if info.BuildTime != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "built   %s\n", info.BuildTime)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "api     %s\n", info.APIBase)
			fmt.Fprintf(cmd.OutOrStdout(), "lang    %s\n", info.Language)
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
