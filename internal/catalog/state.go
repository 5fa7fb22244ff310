// Package catalog is the client-side controller for browsing and searching
// the movie catalog. It owns the search state, turns user triggers into
// request descriptors, suppresses stale responses and orders search results.
//
// Everything here runs on one execution context. Network calls happen
// elsewhere (see Run) and their outcomes come back through Complete, where
// the generation check decides whether they still apply.
package catalog

import (
	"strings"

	"github.com/derickschaefer/reel/internal/model"
)

// SearchState is the full set of inputs that determine which page of the
// catalog is requested, plus the total reported by the last accepted response.
type SearchState struct {
	Mode       model.Mode
	Query      string
	Page       int
	SortKey    model.SortKey
	TotalPages int
}

// NewSearchState returns the initial state: browsing, page 1, no sort.
func NewSearchState() SearchState {
	return SearchState{
		Mode:       model.ModeBrowse,
		Page:       1,
		SortKey:    model.SortNone,
		TotalPages: 1,
	}
}

// Trigger is a user action that may change the search state.
type Trigger interface {
	isTrigger()
}

// Commit sets the query from committed input text.
type Commit struct{ Text string }

// PrevPage moves one page back.
type PrevPage struct{}

// NextPage moves one page forward.
type NextPage struct{}

// SelectSort picks a new sort key.
type SelectSort struct{ Key model.SortKey }

func (Commit) isTrigger()     {}
func (PrevPage) isTrigger()   {}
func (NextPage) isTrigger()   {}
func (SelectSort) isTrigger() {}

// Reduce applies one trigger and returns the next state. It does no I/O.
func Reduce(s SearchState, t Trigger) SearchState {
	switch t := t.(type) {
	case Commit:
		q := strings.TrimSpace(t.Text)
		s.Query = q
		if q == "" {
			s.Mode = model.ModeBrowse
		} else {
			s.Mode = model.ModeSearch
		}
		s.Page = 1
	case PrevPage:
		s.Page = Prev(s.Page)
	case NextPage:
		s.Page = Next(s.Page, s.TotalPages)
	case SelectSort:
		key := t.Key
		if !key.Valid() {
			key = model.SortNone
		}
		s.SortKey = key
		if key == model.SortNone {
			s.Mode = model.ModeBrowse
			s.Query = ""
		}
		s.Page = 1
	}
	return s
}

// requestKey is the part of the state a request depends on. A fetch is
// issued only when it changes.
type requestKey struct {
	mode  model.Mode
	query string
	page  int
	sort  model.SortKey
}

func (s SearchState) key() requestKey {
	return requestKey{mode: s.Mode, query: s.Query, page: s.Page, sort: s.SortKey}
}
