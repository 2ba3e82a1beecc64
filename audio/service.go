package audio

import (
	"io"
	"log"
	"sync/atomic"
)

// Muted is an Init arg forcing the initial mute state
type Muted bool

// AudioService wraps SoundManager as a Service
// Handles graceful degradation when no audio device is available
type AudioService struct {
	manager  *SoundManager
	output   Output
	log      *log.Logger
	disabled atomic.Bool
}

// NewService creates an audio service on the system speaker
func NewService() *AudioService {
	return &AudioService{output: speakerOutput{}, log: log.New(io.Discard, "", 0)}
}

// NewServiceWithOutput creates an audio service on an explicit output
func NewServiceWithOutput(out Output) *AudioService {
	s := NewService()
	s.output = out
	return s
}

// Name implements Service
func (s *AudioService) Name() string {
	return "audio"
}

// Dependencies implements Service
func (s *AudioService) Dependencies() []string {
	return nil
}

// Init implements Service
// Recognized args: *AudioConfig, Muted, *log.Logger
// A disabled config leaves the service disabled; no error is returned
func (s *AudioService) Init(args ...any) error {
	config := LoadAudioConfig()
	var muted *bool
	for _, arg := range args {
		switch v := arg.(type) {
		case *AudioConfig:
			if v != nil {
				config = v
			}
		case Muted:
			m := bool(v)
			muted = &m
		case *log.Logger:
			s.log = v
		}
	}
	if muted != nil {
		config.Enabled = !*muted
	}

	s.manager = NewSoundManagerWithOutput(config, s.output)
	return nil
}

// Start implements Service
// Opens the output device; on failure audio is disabled and no error is returned
func (s *AudioService) Start() error {
	if s.manager == nil {
		s.disabled.Store(true)
		return nil
	}
	if err := s.manager.Initialize(); err != nil {
		s.log.Printf("audio disabled: %v", err)
		s.disabled.Store(true)
		s.manager = nil
	}
	return nil
}

// Stop implements Service
func (s *AudioService) Stop() error {
	if s.manager != nil {
		s.manager.Cleanup()
	}
	return nil
}

// IsDisabled returns true if audio is unavailable
func (s *AudioService) IsDisabled() bool {
	return s.disabled.Load()
}

// Player returns the Player for game code, nil if audio is disabled
func (s *AudioService) Player() Player {
	if s.disabled.Load() || s.manager == nil {
		return nil
	}
	return s.manager
}
