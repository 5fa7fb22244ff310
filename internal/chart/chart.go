// Package chart renders horizontal ASCII bar charts for labeled counts,
// such as releases per decade or a rating histogram.
package chart

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// Bar is one labeled value.
type Bar struct {
	Label string
	Value float64
}

// BarOptions controls horizontal bar chart rendering.
type BarOptions struct {
	// Width is the total character width available for the chart.
	// If 0, auto-detects from $COLUMNS, falls back to 80.
	Width int
	// SkipZero drops bars whose value is zero.
	SkipZero bool
}

// Render writes a horizontal bar chart of bars to w, one row per bar.
// Bars scale from zero so equal values have equal lengths; any non-zero
// bar is at least one block wide.
//
// Output example:
//
//	Releases by decade
//	1980s   3  ██████
//	1990s  12  ████████████████████████
//	2000s   7  ██████████████
func Render(w io.Writer, title string, bars []Bar, opts BarOptions) error {
	totalWidth := opts.Width
	if totalWidth <= 0 {
		totalWidth = termWidth()
	}

	var valid []Bar
	for _, b := range bars {
		if math.IsNaN(b.Value) || b.Value < 0 {
			continue
		}
		if opts.SkipZero && b.Value == 0 {
			continue
		}
		valid = append(valid, b)
	}
	if len(valid) == 0 {
		return fmt.Errorf("chart: nothing to render")
	}

	maxVal := 0.0
	labelWidth, valWidth := 0, 0
	for _, b := range valid {
		maxVal = math.Max(maxVal, b.Value)
		labelWidth = max(labelWidth, len([]rune(b.Label)))
		valWidth = max(valWidth, len(formatValue(b.Value)))
	}
	if maxVal == 0 {
		maxVal = 1
	}

	// Bar area width = totalWidth - labelWidth - valWidth - separators (4 chars)
	barAreaWidth := max(totalWidth-labelWidth-valWidth-4, 4)

	if title != "" {
		fmt.Fprintln(w, title)
	}
	for _, b := range valid {
		barLen := int(math.Round(b.Value / maxVal * float64(barAreaWidth)))
		if b.Value > 0 && barLen < 1 {
			barLen = 1
		}
		barLen = min(barLen, barAreaWidth)

		fmt.Fprintf(w, "%-*s  %*s  %s\n",
			labelWidth, b.Label,
			valWidth, formatValue(b.Value),
			strings.Repeat("█", barLen),
		)
	}
	return nil
}

// formatValue prints whole numbers without a decimal point and anything
// else with one decimal.
func formatValue(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// termWidth returns the terminal width from $COLUMNS, defaulting to 80.
func termWidth() int {
	if cols := os.Getenv("COLUMNS"); cols != "" {
		if n, err := strconv.Atoi(cols); err == nil && n > 20 {
			return n
		}
	}
	return 80
}
