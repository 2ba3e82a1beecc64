package parameter

import "time"

// Audio Hardware Settings
const (
	// AudioSampleRate is the speaker sample rate in Hz
	AudioSampleRate = 44100

	// AudioBufferDuration determines speaker latency
	AudioBufferDuration = 100 * time.Millisecond

	// AudioDefaultVolume is the master volume when unset (0.0-1.0)
	AudioDefaultVolume = 0.7
)

// Sound Effect Shapes
const (
	// FirePistolDuration is a short noise crack over a low thump
	FirePistolDuration = 120 * time.Millisecond
	FirePistolAttack   = 2 * time.Millisecond
	FirePistolRelease  = 100 * time.Millisecond

	// FireShotgunDuration is longer and darker than the pistol
	FireShotgunDuration = 260 * time.Millisecond
	FireShotgunAttack   = 2 * time.Millisecond
	FireShotgunRelease  = 220 * time.Millisecond

	// Reload clicks; the long variant adds a slide rack
	ReloadClickDuration = 40 * time.Millisecond
	ReloadClickGap      = 80 * time.Millisecond
	ReloadRackDuration  = 180 * time.Millisecond

	DryFireDuration = 30 * time.Millisecond

	EnemyHitDuration   = 150 * time.Millisecond
	EnemyDeathDuration = 600 * time.Millisecond

	TxErrorDuration     = 250 * time.Millisecond
	TxConfirmedDuration = 90 * time.Millisecond

	PickupNote1Duration = 80 * time.Millisecond
	PickupNote2Duration = 160 * time.Millisecond

	// SoundDefaultAttack and SoundDefaultRelease shape tonal effects
	SoundDefaultAttack  = 5 * time.Millisecond
	SoundDefaultRelease = 60 * time.Millisecond
)
