package render

import (
	"io"
	"time"

	"github.com/fatih/color"

	"github.com/derickschaefer/reel/internal/analyze"
	"github.com/derickschaefer/reel/internal/model"
)

var (
	warnColor  = color.New(color.FgYellow)
	statsColor = color.New(color.Faint)
)

// SetColor forces colored footer output on or off. By default fatih/color
// decides from NO_COLOR and whether stdout is a terminal.
func SetColor(enabled bool) {
	color.NoColor = !enabled
}

// PrintFooter writes warnings, and when verbose a stats line, to w.
func PrintFooter(w io.Writer, result *model.Result, verbose bool) {
	for _, warn := range result.Warnings {
		warnColor.Fprintf(w, "⚠  %s\n", warn)
	}
	if !verbose {
		return
	}
	statsColor.Fprintf(w, "\n[%s • %d items • %dms]\n",
		result.GeneratedAt.Format(time.RFC3339),
		result.Stats.Items,
		result.Stats.DurationMs,
	)
	if list, ok := result.Data.(*model.MovieList); ok && len(list.Movies) > 0 {
		statsColor.Fprintf(w, "[%s]\n", analyze.Summarize(list.Movies).Line())
	}
}
