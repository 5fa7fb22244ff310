// Package analyze computes descriptive summaries over a page of movies.
// All functions are pure; no I/O.
package analyze

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/derickschaefer/reel/internal/model"
	"github.com/derickschaefer/reel/internal/util"
)

// ─── Summary ──────────────────────────────────────────────────────────────────

// Summary holds descriptive statistics for a list of movies. Rating fields
// are zero when Rated is zero.
type Summary struct {
	Count        int            `json:"count"`
	Rated        int            `json:"rated"`       // movies with a numeric rating
	Dated        int            `json:"dated"`       // movies with a release date
	WithPoster   int            `json:"with_poster"` // movies with a poster path
	MeanRating   float64        `json:"mean_rating"`
	StdRating    float64        `json:"std_rating"`
	MinRating    float64        `json:"min_rating"`
	MedianRating float64        `json:"median_rating"`
	MaxRating    float64        `json:"max_rating"`
	Earliest     string         `json:"earliest,omitempty"`
	Latest       string         `json:"latest,omitempty"`
	Decades      map[string]int `json:"decades,omitempty"`
}

// Summarize computes descriptive statistics over movies. Absent ratings and
// dates are counted but excluded from the numeric and range fields.
func Summarize(movies []model.Movie) Summary {
	s := Summary{Count: len(movies)}
	if len(movies) == 0 {
		return s
	}

	var vals []float64
	for _, m := range movies {
		if m.Rating != nil {
			vals = append(vals, *m.Rating)
		}
		if m.PosterPath != "" {
			s.WithPoster++
		}
		if m.ReleaseDate == "" {
			continue
		}
		s.Dated++
		if s.Earliest == "" || m.ReleaseDate < s.Earliest {
			s.Earliest = m.ReleaseDate
		}
		if m.ReleaseDate > s.Latest {
			s.Latest = m.ReleaseDate
		}
		if y := util.Year(m.ReleaseDate); y != "" {
			if s.Decades == nil {
				s.Decades = make(map[string]int)
			}
			s.Decades[y[:3]+"0s"]++
		}
	}

	s.Rated = len(vals)
	if s.Rated == 0 {
		return s
	}

	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)

	s.MinRating = sorted[0]
	s.MaxRating = sorted[len(sorted)-1]
	s.MeanRating = sumF(vals) / float64(len(vals))
	s.StdRating = stddevF(vals, s.MeanRating)
	s.MedianRating = percentile(sorted, 50)
	return s
}

// Line renders s as a single footer line.
func (s Summary) Line() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d movies", s.Count)
	if s.Rated > 0 {
		fmt.Fprintf(&b, " • rating %.1f avg (%.1f–%.1f, %d rated)", s.MeanRating, s.MinRating, s.MaxRating, s.Rated)
	}
	if s.Dated > 0 {
		fmt.Fprintf(&b, " • released %s … %s", s.Earliest, s.Latest)
	}
	if d := s.TopDecade(); d != "" {
		fmt.Fprintf(&b, " • mostly %s", d)
	}
	return b.String()
}

// TopDecade returns the decade with the most releases, breaking ties
// toward the later decade. It returns "" when no date parsed.
func (s Summary) TopDecade() string {
	best, bestN := "", 0
	for d, n := range s.Decades {
		if n > bestN || (n == bestN && d > best) {
			best, bestN = d, n
		}
	}
	return best
}

// ─── Helpers ──────────────────────────────────────────────────────────────────

func sumF(vals []float64) float64 {
	var s float64
	for _, v := range vals {
		s += v
	}
	return s
}

// stddevF returns the sample standard deviation.
func stddevF(vals []float64, m float64) float64 {
	if len(vals) < 2 {
		return 0
	}
	var ss float64
	for _, v := range vals {
		d := v - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(vals)-1))
}

// percentile uses linear interpolation between closest ranks.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return math.NaN()
	}
	if len(sorted) == 1 {
		return sorted[0]
	}
	rank := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	frac := rank - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}

// ─── Histograms ───────────────────────────────────────────────────────────────

// Bucket is one labeled count in a histogram.
type Bucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// DecadeBuckets returns the decade counts of s in chronological order.
func DecadeBuckets(s Summary) []Bucket {
	out := make([]Bucket, 0, len(s.Decades))
	for d, n := range s.Decades {
		out = append(out, Bucket{Label: d, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out
}

// RatingBuckets counts rated movies into ten one-point bands, "0-1" through
// "9-10". A rating of exactly 10 falls in the top band. Ratings outside
// [0, 10] are clamped into the nearest band.
func RatingBuckets(movies []model.Movie) []Bucket {
	out := make([]Bucket, 10)
	for i := range out {
		out[i].Label = fmt.Sprintf("%d-%d", i, i+1)
	}
	for _, m := range movies {
		if m.Rating == nil {
			continue
		}
		i := int(math.Floor(*m.Rating))
		i = max(0, min(i, 9))
		out[i].Count++
	}
	return out
}
