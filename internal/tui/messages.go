// Package tui provides the interactive Bubble Tea explorer for reel.
package tui

import "github.com/derickschaefer/reel/internal/catalog"

// FetchDone is sent when a catalog request finishes, successfully or not.
type FetchDone struct {
	Response catalog.Response
}

// DebounceFired is posted by the debounce timer once typing has paused.
type DebounceFired struct {
	Seq uint64
}
