package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/derickschaefer/reel/internal/config"
	"github.com/derickschaefer/reel/internal/render"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage reel configuration",
	Long:  `Read and write reel configuration stored in config.json or config.toml.`,
}

var configInitTOML bool

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a template config file in the current directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.DefaultConfigFile
		if configInitTOML {
			path = config.DefaultTOMLFile
		}
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (delete it first to re-initialise)", path)
		}
		if err := config.WriteFile(path, config.Template()); err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "✓ Created %s\n", path)
		fmt.Fprintln(out, "  Edit it and set your api_key to get started.")
		fmt.Fprintln(out, "  Get a free key at: https://www.themoviedb.org/settings/api")
		return nil
	},
}

var configGetShowSecrets bool

// configOut is the resolved configuration as printed by `config get`.
type configOut struct {
	APIKey       string  `json:"api_key"`
	AccessToken  string  `json:"access_token"`
	Format       string  `json:"default_format"`
	Timeout      string  `json:"timeout"`
	Concurrency  int     `json:"concurrency"`
	Rate         float64 `json:"rate"`
	BaseURL      string  `json:"base_url"`
	ImageBaseURL string  `json:"image_base_url"`
	Language     string  `json:"language"`
	Debounce     string  `json:"debounce"`
	ConfigFile   string  `json:"config_file"`
}

var configGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the current resolved configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(globalFlags.APIKey)
		if err != nil {
			return err
		}

		apiKey, token := cfg.RedactedAPIKey(), cfg.RedactedAccessToken()
		if configGetShowSecrets {
			apiKey, token = cfg.APIKey, cfg.AccessToken
		}
		if cfg.APIKey == "" {
			apiKey = "(not set)"
		}
		if cfg.AccessToken == "" {
			token = "(not set)"
		}

		src := "(not found)"
		if cfg.ConfigPath != "" {
			src = cfg.ConfigPath
		}

		out := configOut{
			APIKey:       apiKey,
			AccessToken:  token,
			Format:       cfg.Format,
			Timeout:      cfg.Timeout.String(),
			Concurrency:  cfg.Concurrency,
			Rate:         cfg.Rate,
			BaseURL:      cfg.BaseURL,
			ImageBaseURL: cfg.ImageBaseURL,
			Language:     cfg.Language,
			Debounce:     cfg.Debounce.String(),
			ConfigFile:   src,
		}

		if resolveFormat("") == render.FormatJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		}
		printKVTable(cmd.OutOrStdout(), [][]string{
			{"api_key", out.APIKey},
			{"access_token", out.AccessToken},
			{"default_format", out.Format},
			{"timeout", out.Timeout},
			{"concurrency", strconv.Itoa(out.Concurrency)},
			{"rate", fmt.Sprintf("%.1f req/s", out.Rate)},
			{"base_url", out.BaseURL},
			{"image_base_url", out.ImageBaseURL},
			{"language", out.Language},
			{"debounce", out.Debounce},
			{"config_file", out.ConfigFile},
		})
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value in the config file",
	Long: `Set one configuration value. The existing config.json (or config.toml)
is updated in place; a new config.json is created from the template when
neither exists.

Valid keys: ` + strings.Join(config.Keys, ", "),
	Args: cobra.ExactArgs(2),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) == 0 {
			return config.Keys, cobra.ShellCompDirectiveNoFileComp
		}
		return nil, cobra.ShellCompDirectiveNoFileComp
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		key := strings.ToLower(args[0])

		var f config.File
		existing, path, err := config.LoadFile()
		switch {
		case err == nil:
			f = *existing
		case errors.Is(err, os.ErrNotExist):
			path = config.DefaultConfigFile
			f = config.Template()
		default:
			return err
		}

		if err := f.Set(key, args[1]); err != nil {
			return err
		}
		if err := config.WriteFile(path, f); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Set %s in %s\n", key, path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)

	configInitCmd.Flags().BoolVar(&configInitTOML, "toml", false, "write config.toml instead of config.json")
	configGetCmd.Flags().BoolVar(&configGetShowSecrets, "show-secrets", false, "show API key and access token in plain text")
}
