package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/blockrooms/game"
)

// HUDLayer draws the two status rows under the map
type HUDLayer struct{}

// NewHUDLayer creates the HUD layer
func NewHUDLayer() *HUDLayer {
	return &HUDLayer{}
}

func bar(bg tcell.Color) tcell.Style {
	return tcell.StyleDefault.Background(bg).Foreground(RgbStatusText)
}

// Render implements Layer
func (l *HUDLayer) Render(ctx Context, snap *game.Snapshot) {
	if snap.Phase != game.PhaseActive || ctx.Height < HUDRows {
		return
	}
	y := ctx.MapHeight
	ctx.Fill(0, y, ctx.Width, HUDRows, StyleDefault)

	x := 0
	if snap.HasGun {
		weaponBg := RgbWeaponBg
		if snap.Flash {
			weaponBg = RgbFlashBg
		}
		x = ctx.Text(x, y, " "+strings.ToUpper(string(snap.Weapon))+" ", bar(weaponBg))
	} else {
		x = ctx.Text(x, y, " UNARMED ", bar(RgbPrompt))
	}
	x = ctx.Text(x, y, fmt.Sprintf(" %d/%d ", snap.Ammo.Magazine, snap.Ammo.Reserve), StyleDefault)
	if snap.Reloading {
		x = ctx.Text(x, y, " RELOAD "+seconds(snap.ReloadIn)+" ", bar(RgbReloadBg))
	}

	x++
	switch {
	case snap.GateEnabled:
		x = ctx.Text(x, y, " GATE OPEN ", bar(RgbGateOpenBg))
	case snap.GateArmed:
		x = ctx.Text(x, y, " GATE "+seconds(snap.GateIn)+" ", bar(RgbGateArmingBg))
	default:
		x = ctx.Text(x, y, " GATE CLOSED ", bar(RgbGateClosedBg))
	}
	if snap.Tx.Loading {
		x = ctx.Text(x, y, " TX ", bar(RgbFlashBg))
	}

	where := fmt.Sprintf(" cell %s verified %s", snap.Cell, snap.Verified)
	if snap.Chain != nil {
		where += fmt.Sprintf(" session %d", snap.Chain.CurrentSessionID)
	}
	x = ctx.Text(x, y, where, StyleDefault.Foreground(RgbPrompt))
	if snap.Muted {
		ctx.Text(x+1, y, " MUTED ", bar(RgbPrompt))
	}

	switch {
	case snap.Banner != "":
		ctx.Centered(y+1, snap.Banner, StyleDefault.Foreground(RgbBanner).Bold(true))
	case snap.Prompt != "":
		ctx.Centered(y+1, snap.Prompt, StyleDefault.Foreground(RgbPrompt))
	}
}

func seconds(d time.Duration) string {
	return fmt.Sprintf("%.1fs", d.Seconds())
}
