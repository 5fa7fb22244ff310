package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var browseFlags listFlags

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "List catalog movies in server-side order",
	Long: `Browse the catalog through the discover endpoint.

Without --sort results come back by popularity. With --sort the catalog
service orders the whole catalog before paging. Pages past the catalog's
reported total are clamped, and no page beyond 500 can be requested.`,
	Example: `  reel browse
  reel browse --sort release_date.desc --page 3
  reel browse --sort rating.desc --pages 5 --format jsonl > top.jsonl`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		command := fmt.Sprintf("browse --page %d", browseFlags.Page)
		return runList(cmd.Context(), command, "", browseFlags)
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
	addListFlags(browseCmd, &browseFlags)
}

// addListFlags registers --page, --pages and --sort on c.
func addListFlags(c *cobra.Command, f *listFlags) {
	c.Flags().IntVar(&f.Page, "page", 1, "page to fetch (1-500)")
	c.Flags().IntVar(&f.Pages, "pages", 1, "number of consecutive pages to fetch")
	c.Flags().StringVar(&f.Sort, "sort", "none", "sort key (see `reel sort --list`)")
	_ = c.RegisterFlagCompletionFunc("sort", completeSortKeys)
}
