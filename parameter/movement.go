package parameter

import "time"

// Movement Gate
const (
	// GateDelayNewSession is the arming delay for a session never seen before
	GateDelayNewSession = 10000 * time.Millisecond

	// GateDelayReconnect is the arming delay when the same session re-enters play
	GateDelayReconnect = 3000 * time.Millisecond
)

// Transaction Pipeline
const (
	// TxFailurePopupDelay is the delay before the processing popup and pending flag clear after a failure
	TxFailurePopupDelay = 300 * time.Millisecond

	// TxFailureReloadDelay is the delay from a failure to the forced client reload
	TxFailureReloadDelay = 3000 * time.Millisecond
)

// Player Kinematics
const (
	// PlayerEyeHeight is the camera Y in world units
	PlayerEyeHeight = 1.7

	// PlayerDefaultMaxSpeed is the default movement speed cap in units/sec
	PlayerDefaultMaxSpeed = 6.0

	// PlayerDefaultTurnRate is the default yaw speed in radians/sec
	PlayerDefaultTurnRate = 2.5

	// PlayerImpulseDuration is how long a single key press keeps the player moving
	// Terminals deliver key repeat, not key-up
	PlayerImpulseDuration = 180 * time.Millisecond

	// MaxStepPerFrame caps the per-frame displacement on each axis
	// Must stay below GridSize so one frame never crosses more than one cell
	MaxStepPerFrame = GridSize / 4

	// PickupRadius is the interaction distance for floor items
	PickupRadius = 2.5

	// PickupAmmoAmount is the reserve added by one ammo crate
	PickupAmmoAmount = 6
)

// Chain Polling
const (
	// RefetchInterval is the period between world re-reads while a player exists
	RefetchInterval = 2 * time.Second
)
