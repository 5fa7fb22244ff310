package catalog

import (
	"context"
	"log/slog"

	"github.com/derickschaefer/reel/internal/model"
)

// fallbackError is shown when a failure carries no message of its own.
const fallbackError = "Failed to load movies."

// Fetcher executes one catalog request.
type Fetcher interface {
	Fetch(ctx context.Context, req model.RequestDescriptor) (*model.Page, error)
}

// Ticket identifies one issued request. Only the ticket carrying the
// latest generation may change state when its response arrives.
type Ticket struct {
	Gen     uint64
	Request model.RequestDescriptor
	Mode    model.Mode
	SortKey model.SortKey
	Page    int
}

// Response is the raw outcome of running a ticket.
type Response struct {
	Ticket Ticket
	Page   *model.Page
	Err    error
}

// Run executes t with f. It is safe to call from any goroutine; it does not
// touch controller state.
func Run(ctx context.Context, f Fetcher, t Ticket) Response {
	page, err := f.Fetch(ctx, t.Request)
	return Response{Ticket: t, Page: page, Err: err}
}

// FetchController issues requests and applies their outcomes.
type FetchController struct {
	builder RequestBuilder

	gen     uint64
	loading bool
	results []model.Movie
	errMsg  string
}

// NewFetchController creates a controller that builds requests with b.
func NewFetchController(b RequestBuilder) *FetchController {
	return &FetchController{builder: b, results: []model.Movie{}}
}

// Begin enters the loading state and returns the ticket for s. Any ticket
// issued earlier becomes stale.
func (f *FetchController) Begin(s SearchState) Ticket {
	f.gen++
	f.loading = true
	f.errMsg = ""
	t := Ticket{
		Gen:     f.gen,
		Request: f.builder.Build(s),
		Mode:    s.Mode,
		SortKey: s.SortKey,
		Page:    s.Page,
	}
	slog.Debug("catalog request issued", "gen", t.Gen, "endpoint", t.Request.Endpoint, "page", t.Page)
	return t
}

// Complete applies r if its ticket is still current and reports whether it
// did. On success it replaces the results and writes the reported total
// into s; on failure it records the message and keeps the old results.
func (f *FetchController) Complete(s *SearchState, r Response) bool {
	if r.Ticket.Gen != f.gen {
		slog.Debug("catalog response discarded", "gen", r.Ticket.Gen, "current", f.gen)
		return false
	}
	f.loading = false

	if r.Err != nil {
		f.errMsg = r.Err.Error()
		if f.errMsg == "" {
			f.errMsg = fallbackError
		}
		slog.Debug("catalog request failed", "gen", r.Ticket.Gen, "error", f.errMsg)
		return true
	}

	total := 1
	var results []model.Movie
	if r.Page != nil {
		if r.Page.TotalPages > 0 {
			total = r.Page.TotalPages
		}
		results = r.Page.Results
	}
	if results == nil {
		results = []model.Movie{}
	}
	if r.Ticket.Mode == model.ModeSearch {
		results = SortResults(results, r.Ticket.SortKey)
	}

	s.TotalPages = total
	f.results = results
	f.errMsg = ""
	slog.Debug("catalog request applied", "gen", r.Ticket.Gen, "results", len(results), "total_pages", total)
	return true
}

// Loading reports whether the latest request is outstanding.
func (f *FetchController) Loading() bool { return f.loading }

// Results returns the displayed list.
func (f *FetchController) Results() []model.Movie { return f.results }

// Err returns the current error message, or "".
func (f *FetchController) Err() string { return f.errMsg }

// Outcome summarises the latest request for the display layer.
func (f *FetchController) Outcome(totalPages int) model.FetchOutcome {
	switch {
	case f.loading:
		return model.FetchOutcome{Kind: model.OutcomeLoading, Results: f.results, TotalPages: totalPages}
	case f.errMsg != "":
		return model.FetchOutcome{Kind: model.OutcomeFailure, Results: f.results, TotalPages: totalPages, Message: f.errMsg}
	default:
		return model.FetchOutcome{Kind: model.OutcomeSuccess, Results: f.results, TotalPages: totalPages}
	}
}
