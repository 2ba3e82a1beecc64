package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Canvas is the drawable subset of tcell.Screen
type Canvas interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Size() (width, height int)
}

// Context carries per-frame drawing state
type Context struct {
	Canvas Canvas
	Width  int
	Height int

	// MapHeight is the row count above the HUD
	MapHeight int
}

// Put draws one rune, clipped to the canvas
func (c Context) Put(x, y int, r rune, style tcell.Style) {
	if x < 0 || y < 0 || x >= c.Width || y >= c.Height {
		return
	}
	c.Canvas.SetContent(x, y, r, nil, style)
}

// Text draws s from (x, y) and returns the column after the last rune
func (c Context) Text(x, y int, s string, style tcell.Style) int {
	for _, r := range s {
		c.Put(x, y, r, style)
		x += max(runewidth.RuneWidth(r), 1)
	}
	return x
}

// Fill paints a rectangle with spaces in style
func (c Context) Fill(x, y, w, h int, style tcell.Style) {
	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			c.Put(col, row, ' ', style)
		}
	}
}

// Centered draws s centered on row y
func (c Context) Centered(y int, s string, style tcell.Style) {
	c.Text((c.Width-runewidth.StringWidth(s))/2, y, s, style)
}
