package telemetry

import (
	"encoding/json"
	"io"
	"log"
	"sync/atomic"

	"github.com/lixenwraith/blockrooms/event"
)

// Subscriber is the subset of event.Bus the sink needs
type Subscriber interface {
	SubscribeAll(h event.Handler)
}

// Sink records every bus event through a Writer
type Sink struct {
	w   *Writer
	log *log.Logger

	written atomic.Int64
	failed  atomic.Int64
}

// NewSink creates a sink and attaches it to bus
func NewSink(w *Writer, bus Subscriber, logger *log.Logger) *Sink {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	s := &Sink{w: w, log: logger}
	bus.SubscribeAll(s.record)
	return s
}

// Stats returns written and failed record counts
func (s *Sink) Stats() (written, failed int64) {
	return s.written.Load(), s.failed.Load()
}

func (s *Sink) record(ev event.GameEvent) {
	rec := Record{
		TS:    ev.Timestamp,
		Frame: ev.Frame,
		Type:  ev.Type.String(),
	}
	if ev.Payload != nil {
		raw, err := json.Marshal(ev.Payload)
		if err != nil {
			s.fail(err)
			return
		}
		rec.Payload = raw
	}
	if err := s.w.Write(rec); err != nil {
		s.fail(err)
		return
	}
	s.written.Add(1)
}

// fail logs only the first error to keep a broken disk from flooding the log
func (s *Sink) fail(err error) {
	if s.failed.Add(1) == 1 {
		s.log.Printf("telemetry: %v", err)
	}
}
