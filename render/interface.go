package render

import "github.com/lixenwraith/blockrooms/game"

// Layer is one pass of the frame
type Layer interface {
	Render(ctx Context, snap *game.Snapshot)
}

// VisibilityToggle is optionally implemented for runtime enable/disable
type VisibilityToggle interface {
	IsVisible() bool
}
