package parameter

import "time"

// Frame Loop & Engine Timing
const (
	// FrameUpdateInterval is the frame loop interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// MaxFrameDelta clamps the per-frame delta after a stall (suspend, debugger)
	MaxFrameDelta = 100 * time.Millisecond

	// SchedulerMaxFirePerAdvance bounds timer callbacks fired in one Advance
	// Guards against a zero-duration timer re-arming itself forever
	SchedulerMaxFirePerAdvance = 1024
)

// Event Queue Limits
const (
	// EventQueueSize is the fixed capacity of the event ring buffer
	EventQueueSize = 512

	// EventBufferMask is the bitmask for fast modulo operations (512 - 1)
	EventBufferMask = 511
)
