package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/derickschaefer/reel/internal/app"
	"github.com/derickschaefer/reel/internal/catalog"
	"github.com/derickschaefer/reel/internal/model"
	"github.com/derickschaefer/reel/internal/pipeline"
	"github.com/derickschaefer/reel/internal/render"
	"github.com/derickschaefer/reel/internal/tmdb"
	"github.com/derickschaefer/reel/internal/util"
)

// listFlags are shared by browse and search.
type listFlags struct {
	Page  int
	Pages int
	Sort  string
}

// listState builds the starting search state for a one-shot listing.
func listState(query string, key model.SortKey, page int) catalog.SearchState {
	s := catalog.Reduce(catalog.NewSearchState(), catalog.Commit{Text: query})
	if key != model.SortNone {
		s = catalog.Reduce(s, catalog.SelectSort{Key: key})
	}
	s.Page = page
	return s
}

// validateListFlags checks --page/--pages and parses --sort.
func validateListFlags(f listFlags) (model.SortKey, error) {
	key, err := model.ParseSortKey(f.Sort)
	if err != nil {
		return "", err
	}
	if f.Page < 1 || f.Page > catalog.HardCap {
		return "", fmt.Errorf("--page must be between 1 and %d", catalog.HardCap)
	}
	if f.Pages < 1 {
		return "", fmt.Errorf("--pages must be at least 1")
	}
	return key, nil
}

// fetchList fetches the first page through a FetchController, clamps to the
// reported total, then fetches any further pages concurrently. Failures on
// follow-up pages become warnings; a failure on the first page is fatal.
func fetchList(ctx context.Context, deps *app.Deps, s catalog.SearchState, pages int) (*model.MovieList, []string, int, error) {
	fc := catalog.NewFetchController(deps.Builder())
	if err := fetchInto(ctx, deps, fc, &s); err != nil {
		return nil, nil, 0, err
	}

	var warnings []string
	if clamped := catalog.Clamp(s.Page, s.TotalPages); clamped != s.Page {
		warnings = append(warnings, fmt.Sprintf("page %d is past the last page; showing page %d", s.Page, clamped))
		s.Page = clamped
		if err := fetchInto(ctx, deps, fc, &s); err != nil {
			return nil, warnings, 0, err
		}
	}

	first := s.Page
	last := min(first+pages-1, catalog.RequestCap(s.TotalPages))
	if want := first + pages - 1; want > last {
		warnings = append(warnings, fmt.Sprintf("only %d pages available; stopping at page %d", catalog.RequestCap(s.TotalPages), last))
	}

	perPage := make([][]model.Movie, last-first+1)
	perPage[0] = fc.Results()

	errs := make([]error, len(perPage))
	builder := deps.Builder()
	var g errgroup.Group
	g.SetLimit(max(deps.Config.Concurrency, 1))
	for p := first + 1; p <= last; p++ {
		ps := s
		ps.Page = p
		g.Go(func() error {
			page, err := deps.Client.Fetch(ctx, builder.Build(ps))
			if err != nil {
				errs[p-first] = fmt.Errorf("page %d: %w", p, err)
				return nil
			}
			movies := page.Results
			if ps.Mode == model.ModeSearch {
				movies = catalog.SortResults(movies, ps.SortKey)
			}
			perPage[p-first] = movies
			return nil
		})
	}
	_ = g.Wait()

	// Follow-up failures are reported together as one warning.
	var multi util.MultiError
	for _, err := range errs {
		multi.Add(err)
	}
	if err := multi.Err(); err != nil {
		slog.Debug("follow-up pages failed", "failed", len(multi.Errors), "err", err)
		warnings = append(warnings, err.Error())
	}

	movies := []model.Movie{}
	fetched := 0
	for i, chunk := range perPage {
		if errs[i] != nil {
			continue
		}
		fetched++
		movies = append(movies, chunk...)
	}

	return &model.MovieList{
		Mode:         s.Mode,
		Query:        s.Query,
		Sort:         s.SortKey,
		Page:         first,
		TotalPages:   s.TotalPages,
		Movies:       movies,
		ImageBaseURL: deps.Config.ImageBaseURL,
	}, warnings, fetched, nil
}

// fetchInto runs one request for s through fc and applies the response.
func fetchInto(ctx context.Context, deps *app.Deps, fc *catalog.FetchController, s *catalog.SearchState) error {
	t := fc.Begin(*s)
	r := catalog.Run(ctx, deps.Client, t)
	fc.Complete(s, r)
	if r.Err == nil {
		return nil
	}
	if tmdb.IsUnauthorized(r.Err) {
		return fmt.Errorf("%s: %w\n\nThe catalog rejected the credentials; check them with `reel config get`", tmdb.Describe(t.Request), r.Err)
	}
	return fmt.Errorf("%s: %w", tmdb.Describe(t.Request), r.Err)
}

// runList is the shared body of browse and search.
func runList(ctx context.Context, command, query string, f listFlags) error {
	deps, err := buildDeps()
	if err != nil {
		return err
	}
	if err := deps.Config.Validate(); err != nil {
		return err
	}
	format := resolveFormat(deps.Config.Format)
	if !render.ValidFormat(format) {
		return fmt.Errorf("unknown --format %q: choose %s", format, strings.Join(render.Formats, "|"))
	}
	key, err := validateListFlags(f)
	if err != nil {
		return err
	}

	start := time.Now()
	list, warnings, fetched, err := fetchList(ctx, deps, listState(query, key, f.Page), f.Pages)
	if err != nil {
		return err
	}

	result := &model.Result{
		Kind:        model.KindMovieList,
		GeneratedAt: time.Now(),
		Command:     command,
		Data:        list,
		Warnings:    warnings,
		Stats: model.ResultStats{
			DurationMs: time.Since(start).Milliseconds(),
			Items:      len(list.Movies),
			Pages:      fetched,
		},
	}
	return emit(deps, result, format)
}

// emit writes result to --out, the pager or stdout, then the footer.
func emit(deps *app.Deps, result *model.Result, format string) error {
	if render.UsePager(deps.Config.Pager, format, globalFlags.Out, pipeline.IsTTY()) {
		if err := render.Page(result, format); err != nil {
			if err := render.RenderTo("", result, format); err != nil {
				return err
			}
		}
	} else if err := render.RenderTo(globalFlags.Out, result, format); err != nil {
		return err
	}

	if !deps.Config.Quiet {
		render.PrintFooter(os.Stderr, result, deps.Config.Verbose)
	}
	return nil
}
