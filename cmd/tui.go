package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/derickschaefer/reel/internal/logging"
	"github.com/derickschaefer/reel/internal/tui"
)

var tuiLogDir string

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Explore the catalog interactively",
	Long: `Open the interactive movie explorer.

Type to search (the query is sent once typing pauses, or at once on Enter);
clear the box to go back to browsing. Tab and Shift+Tab cycle the sort,
PgUp/PgDn page through results, Esc quits.

Logs go to ~/.reel/logs while the explorer owns the terminal.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := logging.InitFile(tuiLogDir, globalFlags.Debug)
		if err != nil {
			return err
		}
		defer logging.Close()

		deps, err := buildDeps()
		if err != nil {
			return err
		}
		if err := deps.Config.Validate(); err != nil {
			return err
		}
		logging.WithPrefix("tui").Info("starting explorer", "language", deps.Config.Language, "log", path)

		app := tui.NewApp(tui.Options{
			Fetcher:  deps.Client,
			Language: deps.Config.Language,
			Debounce: deps.Config.Debounce,
			Timeout:  deps.Config.Timeout,
		})
		p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
		app.Attach(p)

		if _, err := p.Run(); err != nil {
			return fmt.Errorf("running explorer: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
	tuiCmd.Flags().StringVar(&tuiLogDir, "log-dir", "", "directory for the explorer log (default: ~/.reel/logs)")
}
