// Package view owns the mutable view state and the refresh controller
// that re-runs the placement pipeline whenever the view changes.
package view

import (
	"asciiatlas/internal/geo"
	"asciiatlas/internal/label"
)

// ViewState is everything a render pass needs to know about the
// current view: zoom, visible bounds and the user toggles. It is
// mutated by UI events and read by every refresh; the controller owns
// it for the duration of a pass.
type ViewState struct {
	Zoom   int
	Bounds geo.Bounds

	ShowPlaces    bool
	ShowPhysical  bool
	ShowSeaLabels bool

	// Filter is the tag filter applied to place candidates.
	Filter label.TagFilter

	// Year is the timeline cursor (negative years are BCE) and
	// Occupation the active author filter; both apply to the author
	// layer only.
	Year       int
	Occupation string
}

// DefaultState returns the startup view state with every layer on
func DefaultState() ViewState {
	return ViewState{
		ShowPlaces:    true,
		ShowPhysical:  true,
		ShowSeaLabels: true,
		Year:          -430,
	}
}
