package catalog

import (
	"cmp"
	"slices"

	"github.com/derickschaefer/reel/internal/model"
)

// SortResults returns a copy of movies ordered by key. The sort is stable,
// so equal elements keep their service order and sorting twice is a no-op.
//
// Release dates compare as plain strings; a missing date is the empty
// string and lands first ascending, last descending. A missing rating
// counts as -Inf with the same effect.
func SortResults(movies []model.Movie, key model.SortKey) []model.Movie {
	out := slices.Clone(movies)
	if out == nil {
		out = []model.Movie{}
	}

	var less func(a, b model.Movie) int
	switch key {
	case model.SortReleaseDateAsc:
		less = func(a, b model.Movie) int { return cmp.Compare(a.ReleaseDate, b.ReleaseDate) }
	case model.SortReleaseDateDesc:
		less = func(a, b model.Movie) int { return cmp.Compare(b.ReleaseDate, a.ReleaseDate) }
	case model.SortRatingAsc:
		less = func(a, b model.Movie) int { return cmp.Compare(a.RatingValue(), b.RatingValue()) }
	case model.SortRatingDesc:
		less = func(a, b model.Movie) int { return cmp.Compare(b.RatingValue(), a.RatingValue()) }
	default:
		return out
	}

	slices.SortStableFunc(out, less)
	return out
}
