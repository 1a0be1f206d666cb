package display

import "github.com/junsooki/hudhook/internal/callback"

// Display shows the HUD and feeds user input to its callbacks.
type Display interface {
	Loop() error
}

// Region is a rectangular hot spot on the HUD. A left click inside it fires
// the region's Action trigger instead of the generic click trigger.
type Region struct {
	Label   string
	Trigger callback.Trigger
	X, Y    int
	W, H    int
}

// Contains reports whether the point lies inside r. The right and bottom
// edges are exclusive.
func (r Region) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Options configures a HUD window.
type Options struct {
	Title  string
	Width  int
	Height int
	// Status, when set, is drawn as the HUD's first line every frame.
	Status func() string
}
