package event

import "time"

// EventType represents the type of game event
type EventType int

const (
	// EventNone is the zero value, never published
	EventNone EventType = iota

	// === Combat Event ===

	// EventAmmoChanged carries the magazine/reserve snapshot after any change
	// Trigger: Ammo fire, reload completion, pickup
	// Consumer: HUD, telemetry | Payload: *AmmoPayload
	EventAmmoChanged

	// EventReloadChanged signals the reloading flag flipped
	// Trigger: Ammo reload start and completion
	// Consumer: HUD, audio | Payload: *ReloadPayload
	EventReloadChanged

	// EventShotFired signals a round left the weapon
	// Trigger: Weapon.Fire after the magazine decrement
	// Consumer: audio, camera shake | Payload: *ShotFiredPayload
	EventShotFired

	// EventDryFire signals a fire attempt with no ammo anywhere
	// Trigger: Weapon.Fire on empty magazine and reserve
	// Consumer: audio | Payload: nil
	EventDryFire

	// EventShotResolved carries the hit-scan outcome
	// Trigger: Weapon.Fire after ray resolution
	// Consumer: Horde damage resolution, telemetry | Payload: *ShotPayload
	EventShotResolved

	// === Movement Event ===

	// EventGateChanged signals the movement gate enabled flag flipped
	// Trigger: Gate timer fire, phase exit
	// Consumer: HUD | Payload: *GatePayload
	EventGateChanged

	// EventTxProcessing signals a boundary transaction was submitted
	// Trigger: Pipeline submit
	// Consumer: HUD popup, journal | Payload: *TxPayload
	EventTxProcessing

	// EventTxConfirmed signals a successful boundary transaction
	// Trigger: Pipeline resolve on success
	// Consumer: HUD popup, journal, audio | Payload: *TxPayload
	EventTxConfirmed

	// EventTxFailed signals a rejected or errored boundary transaction
	// Trigger: Pipeline resolve on failure
	// Consumer: HUD popup, journal, audio | Payload: *TxPayload
	EventTxFailed

	// EventMoveResolved carries a raw RPC result back to the frame loop
	// Trigger: Pipeline worker goroutine via Bus.Post
	// Consumer: Pipeline | Payload: *MoveResolvedPayload
	EventMoveResolved

	// EventClientReload requests a full client teardown and rebuild
	// Trigger: Pipeline failure recovery timer
	// Consumer: cmd reload loop | Payload: *ClientReloadPayload
	EventClientReload

	// === Chain Event ===

	// EventWorldFetched carries a world re-read result back to the frame loop
	// Trigger: refetch worker goroutine via Bus.Post
	// Consumer: Controller | Payload: *WorldFetchedPayload
	EventWorldFetched

	// === Enemy Event ===

	// EventEnemySpawned signals a new hostile entity
	// Trigger: Horde spawn
	// Consumer: telemetry | Payload: *EnemyPayload
	EventEnemySpawned

	// EventEnemyCharging signals an enemy started its first charge
	// Trigger: Enemy arming timeout
	// Consumer: HUD warning banner | Payload: *EnemyPayload
	EventEnemyCharging

	// EventEnemyHit signals a non-lethal hit
	// Trigger: Enemy ApplyHit
	// Consumer: audio | Payload: *EnemyPayload
	EventEnemyHit

	// EventEnemyKilled signals an enemy reached zero health, once per enemy
	// Trigger: Enemy death callback
	// Consumer: HUD banner, audio, status | Payload: *EnemyPayload
	EventEnemyKilled

	// === Player Event ===

	// EventPickup signals a floor item was collected
	// Trigger: Controller interact
	// Consumer: audio, HUD | Payload: *PickupPayload
	EventPickup

	// EventPhaseChanged signals the game phase changed
	// Trigger: Controller SetPhase
	// Consumer: HUD, telemetry | Payload: *PhasePayload
	EventPhaseChanged
)

// GameEvent represents a single game event with metadata
type GameEvent struct {
	Type      EventType
	Payload   any
	Frame     int64     // Frame number when published
	Timestamp time.Time // Publish time from the bus clock
}
