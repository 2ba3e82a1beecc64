package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/blockrooms/game"
)

// HUDRows is the height of the status area under the map
const HUDRows = 2

// Screen is the subset of tcell.Screen the orchestrator drives
type Screen interface {
	Canvas
	Fill(r rune, style tcell.Style)
	Show()
	Sync()
}

type layerEntry struct {
	layer    Layer
	priority RenderPriority
	index    int // registration order for stable sort
}

// Orchestrator coordinates the render pipeline
type Orchestrator struct {
	screen   Screen
	layers   []layerEntry
	regCount int
}

// NewOrchestrator creates an orchestrator drawing to screen
func NewOrchestrator(screen Screen) *Orchestrator {
	return &Orchestrator{
		screen: screen,
		layers: make([]layerEntry, 0, 8),
	}
}

// NewDefault creates an orchestrator with every standard layer registered
func NewDefault(screen Screen, debug *DebugLayer) *Orchestrator {
	o := NewOrchestrator(screen)
	o.Register(NewMapLayer(), PriorityGrid)
	o.Register(NewEntityLayer(), PriorityEntities)
	o.Register(NewHUDLayer(), PriorityUI)
	o.Register(NewOverlayLayer(), PriorityOverlay)
	if debug != nil {
		o.Register(debug, PriorityDebug)
	}
	return o
}

// Register adds a layer at the specified priority. Maintains sorted order via insertion sort
func (o *Orchestrator) Register(l Layer, priority RenderPriority) {
	entry := layerEntry{
		layer:    l,
		priority: priority,
		index:    o.regCount,
	}
	o.regCount++

	pos := len(o.layers)
	for i, e := range o.layers {
		if priority < e.priority || (priority == e.priority && entry.index < e.index) {
			pos = i
			break
		}
	}

	o.layers = append(o.layers, layerEntry{})
	copy(o.layers[pos+1:], o.layers[pos:])
	o.layers[pos] = entry
}

// Resize resyncs the terminal after a size change
func (o *Orchestrator) Resize() {
	o.screen.Sync()
}

// RenderFrame executes the render pipeline: clear, render all, show
func (o *Orchestrator) RenderFrame(snap *game.Snapshot) {
	w, h := o.screen.Size()
	ctx := Context{
		Canvas:    o.screen,
		Width:     w,
		Height:    h,
		MapHeight: max(h-HUDRows, 0),
	}

	o.screen.Fill(' ', StyleDefault)
	for _, entry := range o.layers {
		if vt, ok := entry.layer.(VisibilityToggle); ok && !vt.IsVisible() {
			continue
		}
		entry.layer.Render(ctx, snap)
	}
	o.screen.Show()
}
