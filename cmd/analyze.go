package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/derickschaefer/reel/internal/analyze"
	"github.com/derickschaefer/reel/internal/chart"
	"github.com/derickschaefer/reel/internal/model"
	"github.com/derickschaefer/reel/internal/pipeline"
	"github.com/derickschaefer/reel/internal/render"
	"github.com/derickschaefer/reel/internal/util"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Summarize a movie stream (reads JSONL from stdin)",
	Long: `Analyze operators read JSONL movies from stdin and print results.

Examples:
  reel browse --pages 5 --format jsonl | reel analyze summary
  reel search star --pages 3 --format jsonl | reel analyze chart --by rating`,
}

// readStdinMovies reads the JSONL stream analyze and sort operate on.
func readStdinMovies() ([]model.Movie, error) {
	if pipeline.StdinIsTTY() {
		return nil, errors.New("expected JSONL on stdin; pipe in the output of browse or search with --format jsonl")
	}
	return pipeline.ReadMovies(os.Stdin)
}

// ─── analyze summary ─────────────────────────────────────────────────────────

var analyzeSummaryCmd = &cobra.Command{
	Use:     "summary",
	Short:   "Descriptive statistics: counts, rating mean/std/min/median/max, release range",
	Example: `  reel browse --pages 3 --format jsonl | reel analyze summary --format json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		movies, err := readStdinMovies()
		if err != nil {
			return err
		}
		return writeSummary(cmd.OutOrStdout(), analyze.Summarize(movies), resolveFormat(""))
	},
}

func writeSummary(w io.Writer, s analyze.Summary, format string) error {
	if format == render.FormatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	}

	rows := [][]string{
		{"count", strconv.Itoa(s.Count)},
		{"rated", strconv.Itoa(s.Rated)},
		{"dated", strconv.Itoa(s.Dated)},
		{"with_poster", strconv.Itoa(s.WithPoster)},
		{"mean_rating", fmtStat(s.Rated, s.MeanRating)},
		{"std_rating", fmtStat(s.Rated, s.StdRating)},
		{"min_rating", fmtStat(s.Rated, s.MinRating)},
		{"median_rating", fmtStat(s.Rated, s.MedianRating)},
		{"max_rating", fmtStat(s.Rated, s.MaxRating)},
		{"earliest", orMissing(s.Earliest)},
		{"latest", orMissing(s.Latest)},
		{"top_decade", orMissing(s.TopDecade())},
	}
	printKVTable(w, rows)
	return nil
}

// ─── analyze chart ────────────────────────────────────────────────────────────

var (
	analyzeChartBy    string
	analyzeChartWidth int
)

var analyzeChartCmd = &cobra.Command{
	Use:   "chart",
	Short: "ASCII bar chart of releases per decade or a rating histogram",
	Example: `  reel browse --pages 5 --format jsonl | reel analyze chart
  reel browse --pages 5 --format jsonl | reel analyze chart --by rating`,
	RunE: func(cmd *cobra.Command, args []string) error {
		movies, err := readStdinMovies()
		if err != nil {
			return err
		}

		var (
			title   string
			buckets []analyze.Bucket
		)
		switch analyzeChartBy {
		case "decade":
			title = "Releases by decade"
			buckets = analyze.DecadeBuckets(analyze.Summarize(movies))
		case "rating":
			title = "Rating histogram"
			buckets = analyze.RatingBuckets(movies)
		default:
			return fmt.Errorf("unknown --by %q: choose decade|rating", analyzeChartBy)
		}

		bars := make([]chart.Bar, len(buckets))
		for i, b := range buckets {
			bars[i] = chart.Bar{Label: b.Label, Value: float64(b.Count)}
		}
		return chart.Render(cmd.OutOrStdout(), title, bars, chart.BarOptions{
			Width:    analyzeChartWidth,
			SkipZero: analyzeChartBy == "decade",
		})
	},
}

// ─── Registration ─────────────────────────────────────────────────────────────

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.AddCommand(analyzeSummaryCmd)
	analyzeCmd.AddCommand(analyzeChartCmd)

	analyzeChartCmd.Flags().StringVar(&analyzeChartBy, "by", "decade", "chart kind: decade|rating")
	analyzeChartCmd.Flags().IntVar(&analyzeChartWidth, "width", 0, "chart width in columns (default: $COLUMNS or 80)")
}

// ─── Helpers ──────────────────────────────────────────────────────────────────

func fmtStat(n int, v float64) string {
	if n == 0 {
		return util.Missing
	}
	return fmt.Sprintf("%.2f", v)
}

func orMissing(s string) string {
	if s == "" {
		return util.Missing
	}
	return s
}
