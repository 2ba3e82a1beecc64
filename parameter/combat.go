package parameter

import "time"

// Magazine & Reserve
const (
	// MagSize is the magazine capacity
	MagSize = 6

	// InitialMagazine is the loaded round count at spawn
	InitialMagazine = 6

	// InitialReserve is the stored round count at spawn
	InitialReserve = 10
)

// Weapon Timers
const (
	// ReloadDuration is the delay from reload start to magazine transfer
	// Identical for short and long variants
	ReloadDuration = 2000 * time.Millisecond

	// RecoilLockDuration is the window after a shot during which fire is rejected
	RecoilLockDuration = 200 * time.Millisecond

	// MuzzleFlashDuration is how long the HUD muzzle flash stays lit
	MuzzleFlashDuration = 60 * time.Millisecond

	// CameraShakeDuration is the shake window after a shot
	CameraShakeDuration = 120 * time.Millisecond
)

// Hit-Scan
const (
	// HitScanMaxDistance bounds ray intersection queries
	HitScanMaxDistance = 200.0
)
