package audio

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/blockrooms/parameter"
)

// Player is the minimal audio interface used by game code
type Player interface {
	Play(SoundType) bool
	ToggleMute() bool
	IsMuted() bool
}

// Output is where mixed audio goes; the speaker in production
type Output interface {
	Init(rate beep.SampleRate, bufferSize int) error
	Play(s beep.Streamer)
	Close()
}

type speakerOutput struct{}

func (speakerOutput) Init(rate beep.SampleRate, bufferSize int) error {
	return speaker.Init(rate, bufferSize)
}

func (speakerOutput) Play(s beep.Streamer) { speaker.Play(s) }

func (speakerOutput) Close() { speaker.Close() }

// SoundManager owns the output device and a mixer all effects feed into
//
// Thread-Safety: Play and ToggleMute are safe for concurrent use
type SoundManager struct {
	mu          sync.Mutex
	config      *AudioConfig
	output      Output
	mixer       *beep.Mixer
	initialized bool

	muted   atomic.Bool
	played  atomic.Uint64
	dropped atomic.Uint64
}

// NewSoundManager creates a manager on the system speaker
func NewSoundManager(cfg *AudioConfig) *SoundManager {
	return NewSoundManagerWithOutput(cfg, speakerOutput{})
}

// NewSoundManagerWithOutput creates a manager on an explicit output
func NewSoundManagerWithOutput(cfg *AudioConfig, out Output) *SoundManager {
	if cfg == nil {
		cfg = DefaultAudioConfig()
	}
	sm := &SoundManager{
		config: cfg,
		output: out,
		mixer:  &beep.Mixer{},
	}
	sm.muted.Store(!cfg.Enabled)
	return sm
}

// Initialize opens the output and starts the mixer
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	rate := beep.SampleRate(sm.config.SampleRate)
	if err := sm.output.Init(rate, rate.N(parameter.AudioBufferDuration)); err != nil {
		return fmt.Errorf("%w: %v", ErrNoAudioBackend, err)
	}

	sm.output.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup stops all sounds and closes the output
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	sm.mixer.Clear()
	sm.output.Close()
	sm.initialized = false
}

// Play mixes a new instance of st; returns false when muted or not initialized
func (sm *SoundManager) Play(st SoundType) bool {
	if sm.muted.Load() {
		sm.dropped.Add(1)
		return false
	}

	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		sm.dropped.Add(1)
		return false
	}
	s := GetSoundEffect(st, sm.config)
	if s == nil {
		sm.dropped.Add(1)
		return false
	}

	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
	sm.played.Add(1)
	return true
}

// ToggleMute toggles mute state, returns true if now audible
func (sm *SoundManager) ToggleMute() bool {
	muted := !sm.muted.Load()
	sm.muted.Store(muted)
	return !muted
}

// IsMuted returns current mute state
func (sm *SoundManager) IsMuted() bool {
	return sm.muted.Load()
}

// Active returns the number of sounds still mixing
func (sm *SoundManager) Active() int {
	speaker.Lock()
	defer speaker.Unlock()
	return sm.mixer.Len()
}

// Stats returns played and dropped counts
func (sm *SoundManager) Stats() (played, dropped uint64) {
	return sm.played.Load(), sm.dropped.Load()
}
