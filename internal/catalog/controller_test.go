package catalog_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/derickschaefer/reel/internal/catalog"
	"github.com/derickschaefer/reel/internal/model"
)

type harness struct {
	ctrl  *catalog.Controller
	clock *manualClock
	fired []uint64
}

func newHarness() *harness {
	h := &harness{clock: &manualClock{}}
	h.ctrl = catalog.NewController(catalog.Options{
		Clock:  h.clock,
		Notify: func(seq uint64) { h.fired = append(h.fired, seq) },
	})
	return h
}

func success(t catalog.Ticket, total int, movies ...model.Movie) catalog.Response {
	return catalog.Response{Ticket: t, Page: &model.Page{Page: t.Page, TotalPages: total, Results: movies}}
}

func failure(t catalog.Ticket, err error) catalog.Response {
	return catalog.Response{Ticket: t, Err: err}
}

func param(t catalog.Ticket, key string) string {
	v, _ := t.Request.Get(key)
	return v
}

func TestController_InitialLoad(t *testing.T) {
	h := newHarness()

	tk := h.ctrl.Start()
	assert.True(t, h.ctrl.Loading())
	assert.Equal(t, model.OutcomeLoading, h.ctrl.Outcome().Kind)
	assert.Equal(t, model.EndpointDiscover, tk.Request.Endpoint)
	assert.Equal(t, "popularity.desc", param(tk, "sort_by"))

	_, more := h.ctrl.Complete(success(tk, 42, model.Movie{ID: 1}, model.Movie{ID: 2}))
	assert.False(t, more)
	assert.False(t, h.ctrl.Loading())
	assert.Equal(t, 42, h.ctrl.State().TotalPages)
	assert.Len(t, h.ctrl.Results(), 2)
	assert.Equal(t, model.OutcomeSuccess, h.ctrl.Outcome().Kind)
}

func TestController_DebouncedCommitIssuesSearch(t *testing.T) {
	h := newHarness()
	h.ctrl.Complete(success(h.ctrl.Start(), 10))

	h.ctrl.Keystroke("d")
	h.ctrl.Keystroke("du")
	h.ctrl.Keystroke("dune")
	assert.True(t, h.ctrl.Pending())
	h.clock.Advance(catalog.DebounceDelay)
	require.Len(t, h.fired, 1)

	tk, issued := h.ctrl.DebounceFired(h.fired[0])
	require.True(t, issued)
	assert.Equal(t, model.EndpointSearch, tk.Request.Endpoint)
	assert.Equal(t, "dune", param(tk, "query"))
	assert.Equal(t, "1", param(tk, "page"))
	assert.Equal(t, model.ModeSearch, h.ctrl.State().Mode)
}

func TestController_SubmitBypassesDebounce(t *testing.T) {
	h := newHarness()
	h.ctrl.Complete(success(h.ctrl.Start(), 10))

	h.ctrl.Keystroke("alie")
	tk, issued := h.ctrl.Submit("alien")
	require.True(t, issued)
	assert.Equal(t, "alien", param(tk, "query"))
	assert.False(t, h.ctrl.Pending())

	h.clock.Advance(catalog.DebounceDelay)
	assert.Empty(t, h.fired)
}

func TestController_StaleResponseDiscarded(t *testing.T) {
	h := newHarness()
	h.ctrl.Complete(success(h.ctrl.Start(), 1))

	first, _ := h.ctrl.Submit("alien")
	second, _ := h.ctrl.Submit("aliens")
	require.Greater(t, second.Gen, first.Gen)

	h.ctrl.Complete(success(second, 2, model.Movie{ID: 20}))
	h.ctrl.Complete(success(first, 9, model.Movie{ID: 10}, model.Movie{ID: 11}))

	assert.Equal(t, []int64{20}, ids(h.ctrl.Results()))
	assert.Equal(t, 2, h.ctrl.State().TotalPages)
	assert.False(t, h.ctrl.Loading())
}

func TestController_StaleFailureDiscarded(t *testing.T) {
	h := newHarness()
	first := h.ctrl.Start()
	second, _ := h.ctrl.Submit("heat")

	h.ctrl.Complete(failure(first, errors.New("HTTP 500")))
	assert.True(t, h.ctrl.Loading(), "stale failure must not end loading")
	assert.Equal(t, "", h.ctrl.Err())

	h.ctrl.Complete(success(second, 1, model.Movie{ID: 1}))
	assert.False(t, h.ctrl.Loading())
}

func TestController_FailureKeepsPreviousResults(t *testing.T) {
	h := newHarness()
	h.ctrl.Complete(success(h.ctrl.Start(), 3, model.Movie{ID: 1}, model.Movie{ID: 2}))

	tk, issued := h.ctrl.Apply(catalog.NextPage{})
	require.True(t, issued)
	assert.Equal(t, "", h.ctrl.Err())

	h.ctrl.Complete(failure(tk, errors.New("HTTP 500")))
	assert.Equal(t, "HTTP 500", h.ctrl.Err())
	assert.False(t, h.ctrl.Loading())
	assert.Equal(t, []int64{1, 2}, ids(h.ctrl.Results()))
	assert.Equal(t, 3, h.ctrl.State().TotalPages)

	out := h.ctrl.Outcome()
	assert.Equal(t, model.OutcomeFailure, out.Kind)
	assert.Equal(t, "HTTP 500", out.Message)
	assert.False(t, h.ctrl.Empty())
}

func TestController_NewRequestClearsError(t *testing.T) {
	h := newHarness()
	h.ctrl.Complete(failure(h.ctrl.Start(), errors.New("HTTP 401")))
	assert.Equal(t, "HTTP 401", h.ctrl.Err())

	_, issued := h.ctrl.Submit("x")
	require.True(t, issued)
	assert.Equal(t, "", h.ctrl.Err())
}

func TestController_EmptyErrorTextUsesFallback(t *testing.T) {
	h := newHarness()
	h.ctrl.Complete(failure(h.ctrl.Start(), errors.New("")))
	assert.Equal(t, "Failed to load movies.", h.ctrl.Err())
}

func TestController_SearchResultsSortedClientSide(t *testing.T) {
	h := newHarness()
	h.ctrl.Complete(success(h.ctrl.Start(), 1))
	h.ctrl.Submit("star")
	tk, issued := h.ctrl.Apply(catalog.SelectSort{Key: model.SortRatingDesc})
	require.True(t, issued)
	assert.Equal(t, model.EndpointSearch, tk.Request.Endpoint)

	h.ctrl.Complete(success(tk, 1,
		model.Movie{ID: 1, Rating: model.Float64(7.2)},
		model.Movie{ID: 2},
		model.Movie{ID: 3, Rating: model.Float64(9.0)},
	))
	assert.Equal(t, []int64{3, 1, 2}, ids(h.ctrl.Results()))
}

func TestController_BrowseResultsKeepServiceOrder(t *testing.T) {
	h := newHarness()
	h.ctrl.Complete(success(h.ctrl.Start(), 1))

	tk, issued := h.ctrl.Apply(catalog.SelectSort{Key: model.SortRatingAsc})
	require.True(t, issued)
	assert.Equal(t, "vote_average.asc", param(tk, "sort_by"))

	h.ctrl.Complete(success(tk, 1,
		model.Movie{ID: 1, Rating: model.Float64(9)},
		model.Movie{ID: 2, Rating: model.Float64(3)},
	))
	assert.Equal(t, []int64{1, 2}, ids(h.ctrl.Results()))
}

func TestController_SelectNoneLeavesSearch(t *testing.T) {
	h := newHarness()
	h.ctrl.Complete(success(h.ctrl.Start(), 1))
	h.ctrl.Submit("dune")
	h.ctrl.Apply(catalog.SelectSort{Key: model.SortReleaseDateAsc})

	tk, issued := h.ctrl.Apply(catalog.SelectSort{Key: model.SortNone})
	require.True(t, issued)
	s := h.ctrl.State()
	assert.Equal(t, model.ModeBrowse, s.Mode)
	assert.Equal(t, "", s.Query)
	assert.Equal(t, 1, s.Page)
	assert.Equal(t, model.EndpointDiscover, tk.Request.Endpoint)
	assert.Equal(t, "popularity.desc", param(tk, "sort_by"))
}

func TestController_UnchangedStateIssuesNothing(t *testing.T) {
	h := newHarness()
	h.ctrl.Complete(success(h.ctrl.Start(), 1))

	_, issued := h.ctrl.Apply(catalog.NextPage{})
	assert.False(t, issued, "next at the cap")
	_, issued = h.ctrl.Apply(catalog.PrevPage{})
	assert.False(t, issued, "prev at page 1")
	_, issued = h.ctrl.Submit("   ")
	assert.False(t, issued, "blank commit while browsing page 1")

	h.ctrl.Submit("heat")
	_, issued = h.ctrl.Submit(" heat ")
	assert.False(t, issued, "same query on the same page")
}

func TestController_PagingNavigatesToHardCap(t *testing.T) {
	h := newHarness()
	h.ctrl.Complete(success(h.ctrl.Start(), 1000))
	assert.Equal(t, 500, h.ctrl.RequestCap())

	for i := 0; i < 498; i++ {
		tk, issued := h.ctrl.Apply(catalog.NextPage{})
		require.True(t, issued)
		h.ctrl.Complete(success(tk, 1000))
	}
	assert.Equal(t, 499, h.ctrl.State().Page)

	tk, issued := h.ctrl.Apply(catalog.NextPage{})
	require.True(t, issued)
	assert.Equal(t, "500", param(tk, "page"))
	h.ctrl.Complete(success(tk, 1000))

	_, issued = h.ctrl.Apply(catalog.NextPage{})
	assert.False(t, issued)
	assert.False(t, h.ctrl.CanNext())
	assert.True(t, h.ctrl.CanPrev())
}

func TestController_ShrinkingTotalClampsPage(t *testing.T) {
	h := newHarness()
	h.ctrl.Complete(success(h.ctrl.Start(), 10))

	var last catalog.Ticket
	for i := 0; i < 4; i++ {
		last, _ = h.ctrl.Apply(catalog.NextPage{})
	}
	assert.Equal(t, 5, h.ctrl.State().Page)

	follow, more := h.ctrl.Complete(success(last, 3))
	require.True(t, more)
	assert.Equal(t, 3, h.ctrl.State().Page)
	assert.Equal(t, "3", param(follow, "page"))
	assert.True(t, h.ctrl.Loading())
}

func TestController_MissingTotalDefaultsToOne(t *testing.T) {
	h := newHarness()
	h.ctrl.Complete(catalog.Response{Ticket: h.ctrl.Start(), Page: &model.Page{}})
	assert.Equal(t, 1, h.ctrl.State().TotalPages)
	assert.NotNil(t, h.ctrl.Results())
	assert.True(t, h.ctrl.Empty())
}

type stubFetcher struct {
	got  model.RequestDescriptor
	page *model.Page
	err  error
}

func (s *stubFetcher) Fetch(_ context.Context, req model.RequestDescriptor) (*model.Page, error) {
	s.got = req
	return s.page, s.err
}

func TestRun_PassesRequestThrough(t *testing.T) {
	h := newHarness()
	tk := h.ctrl.Start()
	f := &stubFetcher{page: &model.Page{TotalPages: 4, Results: []model.Movie{{ID: 7}}}}

	resp := catalog.Run(context.Background(), f, tk)
	assert.Equal(t, tk.Request, f.got)
	assert.Equal(t, tk.Gen, resp.Ticket.Gen)

	h.ctrl.Complete(resp)
	assert.Equal(t, []int64{7}, ids(h.ctrl.Results()))
	assert.Equal(t, 4, h.ctrl.State().TotalPages)
}
