package parameter

import "time"

// Enemy Vitals
const (
	// EnemyInitialHealth is enemy starting hit points
	EnemyInitialHealth = 3

	// EnemyDefaultCount is the number of enemies spawned per session
	EnemyDefaultCount = 1
)

// Enemy Movement
const (
	// EnemyChargeSpeed is the approach speed in units/sec
	EnemyChargeSpeed = 2.0

	// EnemyAttackRange is the distance below which a charging enemy attacks
	EnemyAttackRange = 4.0

	// EnemyGroundY is the pinned Y for spawned and charging enemies
	EnemyGroundY = 0.0

	// EnemySpawnMinDistance is the nearest spawn distance from the player
	EnemySpawnMinDistance = 10.0

	// EnemySpawnMaxDistance is the farthest spawn distance from the player
	EnemySpawnMaxDistance = 30.0
)

// Enemy Bounding Volume
const (
	// EnemyHalfWidth is the half extent on X and Z
	EnemyHalfWidth = 0.6

	// EnemyHeight is the box height from the ground
	EnemyHeight = 2.0
)

// Enemy Timers
const (
	// EnemyArmingDelay is the wall-clock delay from weapon acquisition to first charge
	EnemyArmingDelay = 10 * time.Second

	// EnemyAttackDuration is the attack window before returning to charge
	EnemyAttackDuration = 2000 * time.Millisecond

	// EnemyHitReactDuration is the hit reaction window
	EnemyHitReactDuration = 500 * time.Millisecond

	// EnemyBannerDuration is how long warning/kill banners stay on the HUD
	EnemyBannerDuration = 3 * time.Second
)
