// Package model defines the canonical data types used throughout reel.
// These types are the single source of truth for catalog entities, the
// request descriptors sent to the catalog service, and the result envelope
// that every command returns.
package model

import (
	"bytes"
	"encoding/json"
	"math"
	"time"
)

// ─── Catalog Entity Types ────────────────────────────────────────────────────

// Movie is one summary record from a discover or search page.
// Empty strings mean the field was absent. Rating is nil when the service
// omitted vote_average or sent something that is not a finite number.
type Movie struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	ReleaseDate string   `json:"release_date"`
	Rating      *float64 `json:"vote_average"`
	PosterPath  string   `json:"poster_path"`
}

// UnmarshalJSON decodes a movie leniently: a vote_average that is a string,
// boolean, object or null decodes to a nil Rating rather than failing the
// whole page.
func (m *Movie) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID          json.Number     `json:"id"`
		Title       string          `json:"title"`
		ReleaseDate string          `json:"release_date"`
		Rating      json.RawMessage `json:"vote_average"`
		PosterPath  string          `json:"poster_path"`
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	*m = Movie{
		Title:       raw.Title,
		ReleaseDate: raw.ReleaseDate,
		PosterPath:  raw.PosterPath,
		Rating:      parseRating(raw.Rating),
	}
	if raw.ID != "" {
		if id, err := raw.ID.Int64(); err == nil {
			m.ID = id
		}
	}
	return nil
}

func parseRating(raw json.RawMessage) *float64 {
	if isNull(raw) {
		return nil
	}
	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func isNull(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}

// RatingValue returns the rating, or -Inf when absent. Orderings treat an
// absent rating as lower than every real one.
func (m Movie) RatingValue() float64 {
	if m.Rating == nil {
		return math.Inf(-1)
	}
	return *m.Rating
}

// Float64 is a convenience for building a *float64 literal.
func Float64(v float64) *float64 { return &v }

// Page is one decoded response from the discover or search endpoint.
type Page struct {
	Page         int     `json:"page"`
	Results      []Movie `json:"results"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int     `json:"total_results"`
}

// UnmarshalJSON decodes page counters leniently. A total_pages that is not a
// positive integer decodes to 0, which callers treat as a single page.
func (p *Page) UnmarshalJSON(data []byte) error {
	var raw struct {
		Page         json.RawMessage `json:"page"`
		Results      []Movie         `json:"results"`
		TotalPages   json.RawMessage `json:"total_pages"`
		TotalResults json.RawMessage `json:"total_results"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*p = Page{
		Page:         parseCount(raw.Page),
		Results:      raw.Results,
		TotalPages:   parseCount(raw.TotalPages),
		TotalResults: parseCount(raw.TotalResults),
	}
	return nil
}

// parseCount accepts only a JSON number with an integral positive value.
func parseCount(raw json.RawMessage) int {
	if isNull(raw) {
		return 0
	}
	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0
	}
	if v < 1 || v != math.Trunc(v) || v > math.MaxInt32 {
		return 0
	}
	return int(v)
}

// ─── Result Envelope ─────────────────────────────────────────────────────────

// ResultStats carries timing metadata for a command result.
type ResultStats struct {
	DurationMs int64 `json:"duration_ms"`
	Items      int   `json:"items"`
	Pages      int   `json:"pages,omitempty"`
}

// Result is the uniform envelope returned by every command.
// The Data field holds the typed payload; Kind identifies what is in it.
// Renderers switch on Kind to format output appropriately.
type Result struct {
	Kind        string      `json:"kind"`
	GeneratedAt time.Time   `json:"generated_at"`
	Command     string      `json:"command"`
	Data        interface{} `json:"data"`
	Warnings    []string    `json:"warnings,omitempty"`
	Stats       ResultStats `json:"stats"`
}

// Kind constants for Result.Kind.
const (
	KindMovieList = "movie_list"
	KindSortKeys  = "sort_keys"
)

// MovieList is the payload of a browse, search or sort command.
type MovieList struct {
	Mode       Mode    `json:"mode"`
	Query      string  `json:"query,omitempty"`
	Sort       SortKey `json:"sort"`
	Page       int     `json:"page"`
	TotalPages int     `json:"total_pages"`
	Movies     []Movie `json:"results"`

	// ImageBaseURL is joined with poster paths by renderers.
	ImageBaseURL string `json:"-"`
}
