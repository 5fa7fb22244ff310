package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/derickschaefer/reel/internal/catalog"
	"github.com/derickschaefer/reel/internal/config"
	"github.com/derickschaefer/reel/internal/model"
	"github.com/derickschaefer/reel/internal/pipeline"
	"github.com/derickschaefer/reel/internal/render"
)

var (
	sortBy   string
	sortList bool
)

var sortCmd = &cobra.Command{
	Use:   "sort",
	Short: "Sort a movie stream (reads JSONL from stdin)",
	Long: `Sort reads JSONL movies from stdin, orders them by release date or rating,
and writes them back out. The ordering is stable: ties keep their input order.
Missing dates and ratings sort first ascending and last descending.

Both --format jsonl output and raw catalog pages are accepted as input.

Pipeline example:
  reel search dune --pages 3 --format jsonl | reel sort --by rating.desc
  reel sort --list`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if sortList {
			result := &model.Result{
				Kind:        model.KindSortKeys,
				GeneratedAt: time.Now(),
				Command:     "sort --list",
				Data:        model.AllSortKeys,
				Stats:       model.ResultStats{Items: len(model.AllSortKeys)},
			}
			return render.RenderTo(globalFlags.Out, result, resolveFormat(""))
		}

		key, err := model.ParseSortKey(sortBy)
		if err != nil {
			return err
		}
		movies, err := readStdinMovies()
		if err != nil {
			return err
		}
		return writeSortOutput(key, catalog.SortResults(movies, key))
	},
}

// writeSortOutput writes JSONL when piped and a table on a terminal unless
// --format says otherwise.
func writeSortOutput(key model.SortKey, movies []model.Movie) error {
	format := resolveFormat("")
	if globalFlags.Format == "" {
		if pipeline.IsTTY() {
			format = render.FormatTable
		} else {
			format = render.FormatJSONL
		}
	}
	if !render.ValidFormat(format) {
		return fmt.Errorf("unknown --format %q", format)
	}

	if format == render.FormatJSONL && globalFlags.Out == "" {
		return pipeline.WriteJSONL(os.Stdout, movies)
	}

	imageBase := sortImageBase()
	result := &model.Result{
		Kind:        model.KindMovieList,
		GeneratedAt: time.Now(),
		Command:     "sort --by " + key.String(),
		Data: &model.MovieList{
			Sort:         key,
			Movies:       movies,
			ImageBaseURL: imageBase,
		},
		Stats: model.ResultStats{Items: len(movies)},
	}
	return render.RenderTo(globalFlags.Out, result, format)
}

func init() {
	rootCmd.AddCommand(sortCmd)
	sortCmd.Flags().StringVar(&sortBy, "by", "rating.desc", "sort key (release_date.asc|release_date.desc|vote_average.asc|vote_average.desc|none)")
	sortCmd.Flags().BoolVar(&sortList, "list", false, "list the accepted sort keys")
	_ = sortCmd.RegisterFlagCompletionFunc("by", completeSortKeys)
}

// sortImageBase reads the poster base from config. sort needs no API key,
// so a config that fails to load only costs the configured image base.
func sortImageBase() string {
	cfg, err := config.Load(globalFlags.APIKey)
	if err != nil {
		slog.Warn("config not loaded; using default image base", "err", err)
		return config.DefaultImageBaseURL
	}
	return cfg.ImageBaseURL
}
