package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var searchFlags listFlags

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the catalog by title",
	Long: `Perform a free-text search against the catalog.

The search endpoint ignores sort order, so --sort is applied locally to
each page after it arrives. Movies without a release date or rating sort
first ascending and last descending.`,
	Example: `  reel search "blade runner"
  reel search alien --sort release_date.asc
  reel search star --pages 3 --format csv --out star.csv`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.TrimSpace(strings.Join(args, " "))
		if query == "" {
			return errors.New("search query is empty; use `reel browse` to list without a query")
		}
		return runList(cmd.Context(), fmt.Sprintf("search %q", query), query, searchFlags)
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
	addListFlags(searchCmd, &searchFlags)
}
