package render

import (
	"fmt"

	"github.com/lixenwraith/blockrooms/game"
)

// DebugLayer prints the metrics registry on the top row
type DebugLayer struct {
	visible bool
}

// NewDebugLayer creates a debug layer
func NewDebugLayer(visible bool) *DebugLayer {
	return &DebugLayer{visible: visible}
}

// Toggle flips visibility
func (l *DebugLayer) Toggle() {
	l.visible = !l.visible
}

// IsVisible implements VisibilityToggle
func (l *DebugLayer) IsVisible() bool {
	return l.visible
}

// Render implements Layer
func (l *DebugLayer) Render(ctx Context, snap *game.Snapshot) {
	line := fmt.Sprintf("f=%d %s", snap.Frame, snap.Stats)
	if len(line) > ctx.Width {
		line = line[:ctx.Width]
	}
	ctx.Text(0, 0, line, StyleDefault.Foreground(RgbDebugText))
}
