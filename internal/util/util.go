// Package util holds small display and error helpers shared by the
// renderers, the interactive UI and the command layer.
package util

import (
	"strconv"
	"strings"

	"github.com/derickschaefer/reel/internal/model"
)

// Missing is shown in place of an absent release date or rating.
const Missing = "—"

// Untitled is shown in place of an absent title.
const Untitled = "Untitled"

// ─── Movie Fields ─────────────────────────────────────────────────────────────

// DisplayTitle returns the title, or Untitled.
func DisplayTitle(m model.Movie) string {
	if strings.TrimSpace(m.Title) == "" {
		return Untitled
	}
	return m.Title
}

// DisplayDate returns the release date as sent, or Missing.
func DisplayDate(m model.Movie) string {
	if m.ReleaseDate == "" {
		return Missing
	}
	return m.ReleaseDate
}

// DisplayRating formats the rating to one decimal place, or Missing.
func DisplayRating(m model.Movie) string {
	if m.Rating == nil {
		return Missing
	}
	return strconv.FormatFloat(*m.Rating, 'f', 1, 64)
}

// ─── Dates ───────────────────────────────────────────────────────────────────

// Year returns the four-digit year prefix of a release date, or "".
func Year(date string) string {
	if len(date) >= 4 {
		if _, err := strconv.Atoi(date[:4]); err == nil {
			return date[:4]
		}
	}
	return ""
}

// Truncate shortens s to at most n runes, marking the cut with an ellipsis.
func Truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}

// ─── Error Helpers ────────────────────────────────────────────────────────────

// MultiError collects multiple errors and presents them as one.
type MultiError struct {
	Errors []error
}

func (m *MultiError) Add(err error) {
	if err != nil {
		m.Errors = append(m.Errors, err)
	}
}

func (m *MultiError) Err() error {
	if len(m.Errors) == 0 {
		return nil
	}
	return m
}

func (m *MultiError) Error() string {
	msgs := make([]string, len(m.Errors))
	for i, e := range m.Errors {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

// Unwrap exposes the collected errors to errors.Is and errors.As.
func (m *MultiError) Unwrap() []error { return m.Errors }
