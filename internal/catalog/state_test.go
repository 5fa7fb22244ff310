package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/derickschaefer/reel/internal/catalog"
	"github.com/derickschaefer/reel/internal/model"
)

func TestNewSearchState(t *testing.T) {
	s := catalog.NewSearchState()
	assert.Equal(t, model.ModeBrowse, s.Mode)
	assert.Equal(t, "", s.Query)
	assert.Equal(t, 1, s.Page)
	assert.Equal(t, model.SortNone, s.SortKey)
	assert.Equal(t, 1, s.TotalPages)
}

func TestReduce_CommitSelectsMode(t *testing.T) {
	s := catalog.NewSearchState()
	s.Page = 4
	s.TotalPages = 10

	s = catalog.Reduce(s, catalog.Commit{Text: " alien "})
	assert.Equal(t, model.ModeSearch, s.Mode)
	assert.Equal(t, "alien", s.Query)
	assert.Equal(t, 1, s.Page)

	s.Page = 3
	s = catalog.Reduce(s, catalog.Commit{Text: "   "})
	assert.Equal(t, model.ModeBrowse, s.Mode)
	assert.Equal(t, "", s.Query)
	assert.Equal(t, 1, s.Page)
}

func TestReduce_CommitKeepsSortKey(t *testing.T) {
	s := catalog.NewSearchState()
	s.SortKey = model.SortRatingAsc
	s = catalog.Reduce(s, catalog.Commit{Text: "heat"})
	assert.Equal(t, model.SortRatingAsc, s.SortKey)
}

func TestReduce_PagingRespectsBounds(t *testing.T) {
	s := catalog.NewSearchState()
	s.TotalPages = 2

	s = catalog.Reduce(s, catalog.PrevPage{})
	assert.Equal(t, 1, s.Page, "prev at page 1 is a no-op")

	s = catalog.Reduce(s, catalog.NextPage{})
	assert.Equal(t, 2, s.Page)
	s = catalog.Reduce(s, catalog.NextPage{})
	assert.Equal(t, 2, s.Page, "next at the cap is a no-op")
}

func TestReduce_SelectNoneForcesBrowse(t *testing.T) {
	s := catalog.NewSearchState()
	s.Mode = model.ModeSearch
	s.Query = "dune"
	s.SortKey = model.SortReleaseDateAsc
	s.Page = 3

	s = catalog.Reduce(s, catalog.SelectSort{Key: model.SortNone})
	assert.Equal(t, model.ModeBrowse, s.Mode)
	assert.Equal(t, "", s.Query)
	assert.Equal(t, 1, s.Page)
	assert.Equal(t, model.SortNone, s.SortKey)
}

func TestReduce_SelectKeyResetsPageKeepsSearch(t *testing.T) {
	s := catalog.NewSearchState()
	s.Mode = model.ModeSearch
	s.Query = "dune"
	s.Page = 3

	s = catalog.Reduce(s, catalog.SelectSort{Key: model.SortRatingDesc})
	assert.Equal(t, model.ModeSearch, s.Mode)
	assert.Equal(t, "dune", s.Query)
	assert.Equal(t, 1, s.Page)
	assert.Equal(t, model.SortRatingDesc, s.SortKey)
}

func TestReduce_UnknownSortKeyTreatedAsNone(t *testing.T) {
	s := catalog.NewSearchState()
	s.Mode = model.ModeSearch
	s.Query = "x"
	s = catalog.Reduce(s, catalog.SelectSort{Key: model.SortKey("bogus")})
	assert.Equal(t, model.SortNone, s.SortKey)
	assert.Equal(t, model.ModeBrowse, s.Mode)
}
