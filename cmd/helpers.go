package cmd

import (
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/derickschaefer/reel/internal/model"
	"github.com/derickschaefer/reel/internal/render"
)

// resolveFormat returns the effective format string, falling back to "table".
func resolveFormat(cfgFormat string) string {
	if globalFlags.Format != "" {
		return globalFlags.Format
	}
	if cfgFormat != "" {
		return cfgFormat
	}
	return render.FormatTable
}

// completeSortKeys offers sort key wire names with their labels.
func completeSortKeys(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	out := make([]string, 0, len(model.AllSortKeys))
	for _, k := range model.AllSortKeys {
		out = append(out, k.String()+"\t"+k.Label())
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

// printKVTable renders a two-column key/value table using tablewriter.
func printKVTable(w io.Writer, rows [][]string) {
	tw := tablewriter.NewWriter(w)
	tw.SetHeader([]string{"KEY", "VALUE"})
	tw.SetBorder(true)
	tw.SetRowLine(false)
	tw.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	tw.SetAlignment(tablewriter.ALIGN_LEFT)
	tw.SetAutoWrapText(false)
	tw.AppendBulk(rows)
	tw.Render()
}
