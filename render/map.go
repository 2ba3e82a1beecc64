package render

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/blockrooms/enemy"
	"github.com/lixenwraith/blockrooms/game"
	"github.com/lixenwraith/blockrooms/grid"
	"github.com/lixenwraith/blockrooms/parameter"
)

// Terminal cells are roughly twice as tall as wide
const (
	unitsPerCol = 1.0
	unitsPerRow = 2.0
)

// projection maps world XZ onto map cells centered on the player
// Screen up is world -Z
type projection struct {
	cx, cy int
	px, pz float64
	shake  int
}

func newProjection(ctx Context, snap *game.Snapshot) projection {
	p := projection{
		cx: ctx.Width / 2,
		cy: ctx.MapHeight / 2,
		px: snap.Position.X(),
		pz: snap.Position.Z(),
	}
	if snap.Shake {
		p.shake = 1
	}
	return p
}

func (p projection) toScreen(x, z float64) (int, int) {
	sx := p.cx + p.shake + int(math.Floor((x-p.px)/unitsPerCol+0.5))
	sy := p.cy + int(math.Floor((z-p.pz)/unitsPerRow+0.5))
	return sx, sy
}

func (p projection) toWorld(sx, sy int) (float64, float64) {
	return p.px + float64(sx-p.cx-p.shake)*unitsPerCol, p.pz + float64(sy-p.cy)*unitsPerRow
}

// MapLayer draws the floor, cell boundaries and the verified cell
type MapLayer struct{}

// NewMapLayer creates the map layer
func NewMapLayer() *MapLayer {
	return &MapLayer{}
}

// Render implements Layer
func (l *MapLayer) Render(ctx Context, snap *game.Snapshot) {
	if snap.Phase != game.PhaseActive {
		return
	}
	proj := newProjection(ctx, snap)
	verified := grid.CellAt(snap.Verified)

	floor := StyleDefault.Foreground(RgbFloor)
	line := StyleDefault.Foreground(RgbGridLine)

	for sy := 0; sy < ctx.MapHeight; sy++ {
		_, z := proj.toWorld(0, sy)
		_, zPrev := proj.toWorld(0, sy-1)
		rowCell := grid.CellOf(z, parameter.GridGenesisZ, parameter.GridSize)
		rowEdge := rowCell != grid.CellOf(zPrev, parameter.GridGenesisZ, parameter.GridSize)

		for sx := 0; sx < ctx.Width; sx++ {
			x, _ := proj.toWorld(sx, sy)
			xPrev, _ := proj.toWorld(sx-1, sy)
			colCell := grid.CellOf(x, parameter.GridGenesisX, parameter.GridSize)
			colEdge := colCell != grid.CellOf(xPrev, parameter.GridGenesisX, parameter.GridSize)

			bg := RgbBackground
			if colCell == verified.X && rowCell == verified.Z {
				bg = RgbVerified
			}
			style := floor.Background(bg)

			r := ' '
			switch {
			case colEdge && rowEdge:
				r, style = '┼', line.Background(bg)
			case colEdge:
				r, style = '│', line.Background(bg)
			case rowEdge:
				r, style = '─', line.Background(bg)
			case (colCell+rowCell)%2 == 0 && sx%4 == 0 && sy%2 == 0:
				r = '·'
			}
			ctx.Put(sx, sy, r, style)
		}
	}
}

// EntityLayer draws pickups, other players, enemies and the player
type EntityLayer struct{}

// NewEntityLayer creates the entity layer
func NewEntityLayer() *EntityLayer {
	return &EntityLayer{}
}

// playerArrows are clockwise from screen up
var playerArrows = [8]rune{'↑', '↗', '→', '↘', '↓', '↙', '←', '↖'}

// Render implements Layer
func (l *EntityLayer) Render(ctx Context, snap *game.Snapshot) {
	if snap.Phase != game.PhaseActive {
		return
	}
	proj := newProjection(ctx, snap)
	put := func(x, z float64, r rune, fg tcell.Color) {
		sx, sy := proj.toScreen(x, z)
		if sy >= ctx.MapHeight {
			return
		}
		ctx.Put(sx, sy, r, StyleDefault.Foreground(fg).Bold(true))
	}

	for _, p := range snap.Pickups {
		if p.Kind == game.PickupGun {
			put(p.Position.X(), p.Position.Z(), '¬', RgbGun)
		} else {
			put(p.Position.X(), p.Position.Z(), '▪', RgbAmmo)
		}
	}

	for _, o := range snap.Others {
		pos := o.WorldPosition()
		put(pos.X, pos.Z, '@', RgbOther)
	}

	for _, e := range snap.Enemies {
		r, fg := enemyGlyph(e)
		put(e.Position.X(), e.Position.Z(), r, fg)
	}

	put(snap.Position.X(), snap.Position.Z(), PlayerArrow(snap.Yaw), RgbPlayer)
}

// PlayerArrow returns the arrow for a heading
// Forward on screen is (-sin yaw, -cos yaw) with rows growing toward +Z
func PlayerArrow(yaw float64) rune {
	fx, fy := -math.Sin(yaw), -math.Cos(yaw)
	heading := math.Atan2(fx, -fy)
	idx := int(math.Round(heading/(math.Pi/4))) % 8
	if idx < 0 {
		idx += 8
	}
	return playerArrows[idx]
}

func enemyGlyph(e game.EnemyView) (rune, tcell.Color) {
	switch e.Behavior {
	case enemy.BehaviorCharging:
		return 'E', RgbEnemyAngry
	case enemy.BehaviorAttacking:
		return 'Ӝ', RgbEnemyAngry
	case enemy.BehaviorHit:
		return 'e', RgbEnemyHit
	default:
		return 'e', RgbEnemyIdle
	}
}
