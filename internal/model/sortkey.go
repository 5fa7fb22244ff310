package model

import (
	"fmt"
	"strings"
)

// Mode selects which catalog endpoint a request goes to.
type Mode string

const (
	ModeBrowse Mode = "browse"
	ModeSearch Mode = "search"
)

// SortKey is a user-selected ordering. Its string value is the catalog
// service's sort_by name, which is also what discover requests send.
type SortKey string

const (
	SortNone            SortKey = "none"
	SortReleaseDateAsc  SortKey = "release_date.asc"
	SortReleaseDateDesc SortKey = "release_date.desc"
	SortRatingAsc       SortKey = "vote_average.asc"
	SortRatingDesc      SortKey = "vote_average.desc"
)

// AllSortKeys lists the keys in selector order.
var AllSortKeys = []SortKey{
	SortNone,
	SortReleaseDateAsc,
	SortReleaseDateDesc,
	SortRatingAsc,
	SortRatingDesc,
}

var sortLabels = map[SortKey]string{
	SortNone:            "Sort By",
	SortReleaseDateAsc:  "Release Date (Asc)",
	SortReleaseDateDesc: "Release Date (Desc)",
	SortRatingAsc:       "Rating (Asc)",
	SortRatingDesc:      "Rating (Desc)",
}

// sortAliases maps CLI-friendly names to keys.
var sortAliases = map[string]SortKey{
	"":                  SortNone,
	"none":              SortNone,
	"popularity":        SortNone,
	"release_date.asc":  SortReleaseDateAsc,
	"date.asc":          SortReleaseDateAsc,
	"date":              SortReleaseDateAsc,
	"release_date.desc": SortReleaseDateDesc,
	"date.desc":         SortReleaseDateDesc,
	"vote_average.asc":  SortRatingAsc,
	"rating.asc":        SortRatingAsc,
	"vote_average.desc": SortRatingDesc,
	"rating.desc":       SortRatingDesc,
	"rating":            SortRatingDesc,
}

// String returns the wire name.
func (k SortKey) String() string { return string(k) }

// Label returns the human-facing selector text.
func (k SortKey) Label() string {
	if l, ok := sortLabels[k]; ok {
		return l
	}
	return string(k)
}

// Valid reports whether k is one of the five known keys.
func (k SortKey) Valid() bool {
	_, ok := sortLabels[k]
	return ok
}

// ParseSortKey accepts a wire name or one of the short aliases
// (date.asc, rating.desc, ...). Matching is case-insensitive.
func ParseSortKey(s string) (SortKey, error) {
	if k, ok := sortAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return k, nil
	}
	return SortNone, fmt.Errorf("unknown sort key %q: use one of none|release_date.asc|release_date.desc|vote_average.asc|vote_average.desc", s)
}

// Next returns the key after k in selector order, wrapping around.
func (k SortKey) Next() SortKey {
	return k.step(1)
}

// Prev returns the key before k in selector order, wrapping around.
func (k SortKey) Prev() SortKey {
	return k.step(-1)
}

func (k SortKey) step(d int) SortKey {
	n := len(AllSortKeys)
	for i, key := range AllSortKeys {
		if key == k {
			return AllSortKeys[((i+d)%n+n)%n]
		}
	}
	return SortNone
}
