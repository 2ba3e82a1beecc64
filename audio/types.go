package audio

import (
	"errors"
)

// SoundType represents different sound effects
type SoundType int

const (
	SoundFirePistol  SoundType = iota // Pistol shot
	SoundFireShotgun                  // Shotgun shot
	SoundReloadShort                  // Manual reload
	SoundReloadLong                   // Empty-magazine reload with slide rack
	SoundDryFire                      // Trigger on empty
	SoundEnemyHit                     // Enemy took a hit
	SoundEnemyDeath                   // Enemy died
	SoundTxError                      // Move transaction failed
	SoundTxConfirmed                  // Move transaction confirmed
	SoundPickup                       // Gun or ammo picked up
	soundTypeCount
)

var soundNames = [soundTypeCount]string{
	"fire_pistol", "fire_shotgun", "reload_short", "reload_long", "dry_fire",
	"enemy_hit", "enemy_death", "tx_error", "tx_confirmed", "pickup",
}

func (s SoundType) String() string {
	if s < 0 || s >= soundTypeCount {
		return "unknown"
	}
	return soundNames[s]
}

// ParseSoundType maps a config name back to its SoundType
func ParseSoundType(name string) (SoundType, bool) {
	for i, n := range soundNames {
		if n == name {
			return SoundType(i), true
		}
	}
	return 0, false
}

// Sentinel errors
var (
	ErrNoAudioBackend = errors.New("no compatible audio backend found")
)
