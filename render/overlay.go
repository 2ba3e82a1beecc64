package render

import (
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/blockrooms/game"
)

// OverlayLayer draws the menu screen and the transaction popup
type OverlayLayer struct{}

// NewOverlayLayer creates the overlay layer
func NewOverlayLayer() *OverlayLayer {
	return &OverlayLayer{}
}

// Render implements Layer
func (l *OverlayLayer) Render(ctx Context, snap *game.Snapshot) {
	if snap.Phase == game.PhaseMenu {
		l.menu(ctx, snap)
		return
	}

	switch {
	case snap.Tx.Error != "":
		lines := []string{"Transaction failed", snap.Tx.Error}
		if snap.Tx.Recovering {
			lines = append(lines, "reloading in "+seconds(snap.Tx.ReloadIn))
		}
		lines = append(lines, "[Esc] dismiss")
		box(ctx, 1, lines, true)
	case snap.Tx.Processing:
		box(ctx, 1, []string{"Processing move...", "[Esc] hide"}, false)
	case snap.Tx.Recovering:
		box(ctx, 1, []string{"reloading in " + seconds(snap.Tx.ReloadIn)}, true)
	}
}

func (l *OverlayLayer) menu(ctx Context, snap *game.Snapshot) {
	status := "waiting for chain..."
	if snap.Chain != nil {
		status = "player " + snap.Chain.Address
	}
	box(ctx, ctx.Height/2-3, []string{
		"B L O C K R O O M S",
		"",
		status,
		"",
		"[Enter] enter the rooms   [Ctrl+Q] quit",
	}, false)
}

// box draws lines centered in a bordered popup starting at row top
func box(ctx Context, top int, lines []string, alert bool) {
	width := 0
	for _, s := range lines {
		width = max(width, runewidth.StringWidth(s))
	}
	width += 4
	height := len(lines) + 2
	left := (ctx.Width - width) / 2

	border := StylePopup.Foreground(RgbPrompt)
	if alert {
		border = StylePopup.Foreground(RgbErrorText)
	}
	ctx.Fill(left, top, width, height, StylePopup)
	for col := left; col < left+width; col++ {
		ctx.Put(col, top, '─', border)
		ctx.Put(col, top+height-1, '─', border)
	}
	for row := top; row < top+height; row++ {
		ctx.Put(left, row, '│', border)
		ctx.Put(left+width-1, row, '│', border)
	}
	ctx.Put(left, top, '┌', border)
	ctx.Put(left+width-1, top, '┐', border)
	ctx.Put(left, top+height-1, '└', border)
	ctx.Put(left+width-1, top+height-1, '┘', border)

	for i, s := range lines {
		style := StylePopup
		if alert && i == 0 {
			style = style.Foreground(RgbErrorText).Bold(true)
		}
		ctx.Text(left+(width-runewidth.StringWidth(s))/2, top+1+i, s, style)
	}
}
