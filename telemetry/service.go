package telemetry

import (
	"io"
	"log"
)

// Options configures the telemetry service
type Options struct {
	// Dir receives the event files; empty disables telemetry
	Dir string
}

// Service owns the telemetry Writer for the hub
type Service struct {
	opts   Options
	writer *Writer
	log    *log.Logger
}

// NewService creates a disabled telemetry service
func NewService() *Service {
	return &Service{log: log.New(io.Discard, "", 0)}
}

// Name implements service.Service
func (s *Service) Name() string {
	return "telemetry"
}

// Dependencies implements service.Service
func (s *Service) Dependencies() []string {
	return nil
}

// Init implements service.Service
// Recognized args: *Options, *log.Logger
func (s *Service) Init(args ...any) error {
	for _, arg := range args {
		switch v := arg.(type) {
		case *Options:
			if v != nil {
				s.opts = *v
			}
		case *log.Logger:
			s.log = v
		}
	}
	if s.opts.Dir != "" {
		s.writer = NewWriter(s.opts.Dir, "events", nil)
	}
	return nil
}

// Start implements service.Service
func (s *Service) Start() error {
	return nil
}

// Stop implements service.Service
func (s *Service) Stop() error {
	if s.writer == nil {
		return nil
	}
	return s.writer.Close()
}

// Attach records bus events if telemetry is enabled; returns nil otherwise
func (s *Service) Attach(bus Subscriber) *Sink {
	if s.writer == nil {
		return nil
	}
	return NewSink(s.writer, bus, s.log)
}

// Enabled reports whether a telemetry directory is configured
func (s *Service) Enabled() bool {
	return s.writer != nil
}
