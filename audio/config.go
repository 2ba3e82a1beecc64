package audio

import (
	"encoding/json"
	"os"
	"strconv"

	"github.com/lixenwraith/blockrooms/parameter"
)

// AudioConfig holds playback settings
type AudioConfig struct {
	Enabled       bool
	MasterVolume  float64 // 0.0-1.0
	SampleRate    int
	EffectVolumes map[SoundType]float64
}

// DefaultAudioConfig returns the default mix
func DefaultAudioConfig() *AudioConfig {
	return &AudioConfig{
		Enabled:      true,
		MasterVolume: parameter.AudioDefaultVolume,
		SampleRate:   parameter.AudioSampleRate,
		EffectVolumes: map[SoundType]float64{
			SoundFirePistol:  0.8,
			SoundFireShotgun: 0.9,
			SoundReloadShort: 0.5,
			SoundReloadLong:  0.6,
			SoundDryFire:     0.4,
			SoundEnemyHit:    0.7,
			SoundEnemyDeath:  0.8,
			SoundTxError:     0.8,
			SoundTxConfirmed: 0.3,
			SoundPickup:      0.6,
		},
	}
}

// LoadAudioConfig applies environment overrides to the defaults
func LoadAudioConfig() *AudioConfig {
	cfg := DefaultAudioConfig()
	cfg.ApplyEnv()
	return cfg
}

// ApplyEnv overrides cfg from BLOCKROOMS_* variables
func (cfg *AudioConfig) ApplyEnv() {
	if enabled := os.Getenv("BLOCKROOMS_AUDIO_ENABLED"); enabled != "" {
		if val, err := strconv.ParseBool(enabled); err == nil {
			cfg.Enabled = val
		}
	}

	// Master volume is 0-100 in the environment
	if volume := os.Getenv("BLOCKROOMS_MASTER_VOLUME"); volume != "" {
		if val, err := strconv.Atoi(volume); err == nil {
			cfg.MasterVolume = clamp01(float64(val) / 100.0)
		}
	}

	// Effect volumes by sound name, e.g. {"fire_pistol":0.5}
	if effectVols := os.Getenv("BLOCKROOMS_SFX_VOLUMES"); effectVols != "" {
		var volumes map[string]float64
		if err := json.Unmarshal([]byte(effectVols), &volumes); err == nil {
			for name, v := range volumes {
				if st, ok := ParseSoundType(name); ok {
					cfg.EffectVolumes[st] = clamp01(v)
				}
			}
		}
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
