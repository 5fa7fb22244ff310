package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary   = lipgloss.Color("62")  // Purple
	colorSecondary = lipgloss.Color("241") // Gray
	colorMuted     = lipgloss.Color("240")
	colorHighlight = lipgloss.Color("212") // Pink
	colorError     = lipgloss.Color("196")
	colorRating    = lipgloss.Color("220") // Gold
)

// Title style for the header line.
var Title = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255")).
	Background(colorPrimary).
	Padding(0, 1)

// SortLabel shows the active sort next to the search box.
var SortLabel = lipgloss.NewStyle().
	Foreground(colorHighlight).
	Padding(0, 1)

// MovieTitle style for a result's title.
var MovieTitle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255"))

// MovieMeta style for the release/rating line under a title.
var MovieMeta = lipgloss.NewStyle().
	Foreground(colorSecondary).
	PaddingLeft(2)

// Rating highlights the numeric rating.
var Rating = lipgloss.NewStyle().
	Foreground(colorRating)

// PosterMark marks results that have a poster image.
var PosterMark = lipgloss.NewStyle().
	Foreground(colorHighlight)

// ErrorText style for the request failure line.
var ErrorText = lipgloss.NewStyle().
	Foreground(colorError).
	Bold(true)

// Notice style for "Loading…" and "No results.".
var Notice = lipgloss.NewStyle().
	Foreground(colorSecondary).
	Italic(true)

// PagerActive style for an enabled Prev/Next control.
var PagerActive = lipgloss.NewStyle().
	Foreground(colorHighlight).
	Bold(true)

// PagerDisabled style for a Prev/Next control at a bound.
var PagerDisabled = lipgloss.NewStyle().
	Foreground(colorMuted)

// StatusBar style for the page indicator row.
var StatusBar = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Background(lipgloss.Color("236")).
	Padding(0, 1)
