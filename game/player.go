package game

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/blockrooms/grid"
	"github.com/lixenwraith/blockrooms/input"
	"github.com/lixenwraith/blockrooms/parameter"
)

var (
	worldUp      = mgl64.Vec3{0, 1, 0}
	worldForward = mgl64.Vec3{0, 0, -1}
	worldRight   = mgl64.Vec3{1, 0, 0}
)

// Player is the locally simulated first-person body
// Key presses are impulses: terminals repeat keys but never report release
type Player struct {
	position mgl64.Vec3 // Y is eye height
	yaw      float64

	maxSpeed float64
	turnRate float64

	forward, strafe, turn          float64 // -1, 0 or 1
	forwardEnd, strafeEnd, turnEnd time.Time

	speed float64
}

// NewPlayer places a player at the eye height above spawn, facing -Z
func NewPlayer(spawn grid.Position, maxSpeed, turnRate float64) *Player {
	if maxSpeed <= 0 {
		maxSpeed = parameter.PlayerDefaultMaxSpeed
	}
	if turnRate <= 0 {
		turnRate = parameter.PlayerDefaultTurnRate
	}
	return &Player{
		position: mgl64.Vec3{spawn.X, parameter.PlayerEyeHeight, spawn.Z},
		maxSpeed: maxSpeed,
		turnRate: turnRate,
	}
}

// Position returns the eye position
func (p *Player) Position() mgl64.Vec3 { return p.position }

// Yaw returns the heading in radians, counter-clockwise from -Z
func (p *Player) Yaw() float64 { return p.yaw }

// Speed returns the planar speed of the last step in units/sec
func (p *Player) Speed() float64 { return p.speed }

// Grid returns the planar position used for cell reconciliation
func (p *Player) Grid() grid.Position {
	return grid.Position{X: p.position.X(), Z: p.position.Z()}
}

// Orientation returns the camera rotation
func (p *Player) Orientation() mgl64.Quat {
	return mgl64.QuatRotate(p.yaw, worldUp)
}

// Teleport moves the player onto an authoritative position and stops it
func (p *Player) Teleport(pos grid.Position) {
	p.position = mgl64.Vec3{pos.X, parameter.PlayerEyeHeight, pos.Z}
	p.Halt()
}

// Halt drops every active impulse
func (p *Player) Halt() {
	p.forward, p.strafe, p.turn = 0, 0, 0
	p.speed = 0
}

// Apply starts or extends the impulse for a movement intent
func (p *Player) Apply(t input.IntentType, now time.Time) {
	until := now.Add(parameter.PlayerImpulseDuration)
	switch t {
	case input.IntentMoveForward:
		p.forward, p.forwardEnd = 1, until
	case input.IntentMoveBack:
		p.forward, p.forwardEnd = -1, until
	case input.IntentStrafeLeft:
		p.strafe, p.strafeEnd = -1, until
	case input.IntentStrafeRight:
		p.strafe, p.strafeEnd = 1, until
	case input.IntentTurnLeft:
		p.turn, p.turnEnd = 1, until
	case input.IntentTurnRight:
		p.turn, p.turnEnd = -1, until
	}
}

// Step integrates dt seconds of motion
// Displacement per axis never exceeds MaxStepPerFrame so a single frame
// crosses at most one cell boundary per axis
func (p *Player) Step(dt float64, now time.Time) {
	if now.After(p.forwardEnd) {
		p.forward = 0
	}
	if now.After(p.strafeEnd) {
		p.strafe = 0
	}
	if now.After(p.turnEnd) {
		p.turn = 0
	}
	if dt <= 0 {
		return
	}

	if p.turn != 0 {
		p.yaw = math.Remainder(p.yaw+p.turn*p.turnRate*dt, 2*math.Pi)
	}

	q := p.Orientation()
	dir := q.Rotate(worldForward).Mul(p.forward).Add(q.Rotate(worldRight).Mul(p.strafe))
	dir[1] = 0
	if l := dir.Len(); l > 1e-9 {
		dir = dir.Mul(1 / l)
	} else {
		p.speed = 0
		return
	}

	step := dir.Mul(p.maxSpeed * dt)
	step[0] = clampStep(step[0])
	step[2] = clampStep(step[2])
	p.position = p.position.Add(step)
	p.speed = math.Hypot(step[0], step[2]) / dt
}

func clampStep(v float64) float64 {
	return math.Max(-parameter.MaxStepPerFrame, math.Min(parameter.MaxStepPerFrame, v))
}
