package movement

import (
	"context"
	"errors"
	"io"
	"log"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/blockrooms/chain"
	"github.com/lixenwraith/blockrooms/core"
	"github.com/lixenwraith/blockrooms/engine"
	"github.com/lixenwraith/blockrooms/event"
	"github.com/lixenwraith/blockrooms/grid"
	"github.com/lixenwraith/blockrooms/parameter"
	"github.com/lixenwraith/blockrooms/status"
)

var (
	// ErrRejected is reported when the contract returns failure without a message
	ErrRejected = errors.New("Transaction failed")

	// ErrUnknown stands in for a call error that carries no message
	ErrUnknown = errors.New("Unknown error")
)

// FrameInput is what the pipeline reads each frame
type FrameInput struct {
	Position    grid.Position
	PhaseActive bool
	GateEnabled bool
	SessionID   int64
}

// Signals is the UI-facing view of the pipeline
type Signals struct {
	Processing bool          // Popup visible
	Loading    bool          // A transaction is in flight
	Error      string        // Last failure message, empty if none
	Recovering bool          // Failure seen, reload scheduled
	ReloadIn   time.Duration // Time until forced reload while recovering
}

// PipelineOptions tunes the pipeline
type PipelineOptions struct {
	// CallTimeout bounds a single movePlayer call, zero waits indefinitely
	CallTimeout time.Duration

	// Launch runs the RPC worker; defaults to core.Go
	Launch func(func())
}

// Pipeline submits at most one boundary transaction at a time and owns the
// verified position
//
// Thread-Safety: OnFrame, ClosePopup and event handlers run on the frame loop.
// The RPC call runs on a worker and reports back through Bus.Post
type Pipeline struct {
	mover chain.Mover
	bus   *event.Bus
	opts  PipelineOptions
	log   *log.Logger

	verified   grid.Position
	pending    bool
	processing bool
	errMsg     string
	recovering bool

	seq      uint64
	inflight *event.TxPayload

	popupTimer  *engine.Timer
	reloadTimer *engine.Timer

	statSubmitted *atomic.Int64
	statConfirmed *atomic.Int64
	statFailed    *atomic.Int64
	statDropped   *atomic.Int64
}

// NewPipeline creates a pipeline whose verified position starts at spawn
func NewPipeline(mover chain.Mover, spawn grid.Position, sched *engine.Scheduler, bus *event.Bus, reg *status.Registry, logger *log.Logger, opts PipelineOptions) *Pipeline {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if opts.Launch == nil {
		opts.Launch = core.Go
	}

	p := &Pipeline{
		mover:         mover,
		bus:           bus,
		opts:          opts,
		log:           logger,
		verified:      spawn,
		popupTimer:    sched.NewTimer("tx-popup"),
		reloadTimer:   sched.NewTimer("tx-reload"),
		statSubmitted: reg.Counter(status.TxSubmitted),
		statConfirmed: reg.Counter(status.TxConfirmed),
		statFailed:    reg.Counter(status.TxFailed),
		statDropped:   reg.Counter(status.TxDropped),
	}
	bus.Subscribe(event.EventMoveResolved, p.handleResolved)
	return p
}

// Verified returns the last position confirmed by the backend
func (p *Pipeline) Verified() grid.Position {
	return p.verified
}

// Pending reports whether a transaction is in flight
func (p *Pipeline) Pending() bool {
	return p.pending
}

// Signals returns the popup state
func (p *Pipeline) Signals() Signals {
	s := Signals{
		Processing: p.processing,
		Loading:    p.pending,
		Error:      p.errMsg,
		Recovering: p.recovering,
	}
	if p.recovering {
		s.ReloadIn = p.reloadTimer.Remaining()
	}
	return s
}

// OnFrame checks for a crossing and submits it when allowed
// Returns true if a transaction was submitted this frame
func (p *Pipeline) OnFrame(in FrameInput) bool {
	if !in.GateEnabled || !in.PhaseActive || p.recovering {
		return false
	}

	crossing := grid.Check(in.Position, p.verified)
	if !crossing.Crossed {
		return false
	}

	if p.pending {
		// Dropped, not queued; re-detected against the verified cell once resolved
		p.statDropped.Add(1)
		return false
	}

	p.submit(crossing, in.SessionID)
	return true
}

// Resync replaces the verified position with an authoritative read
// Ignored while a transaction is in flight; the result will settle it
func (p *Pipeline) Resync(pos grid.Position) bool {
	if p.pending {
		return false
	}
	p.verified = pos
	return true
}

// ClosePopup dismisses the processing popup and clears the error
func (p *Pipeline) ClosePopup() {
	p.processing = false
	p.errMsg = ""
}

// Stop cancels the popup and reload timers; an in-flight result is ignored
func (p *Pipeline) Stop() {
	p.popupTimer.Cancel()
	p.reloadTimer.Cancel()
	p.inflight = nil
}

func (p *Pipeline) submit(c grid.Crossing, sessionID int64) {
	p.seq++
	tx := &event.TxPayload{
		Seq:       p.seq,
		SessionID: sessionID,
		EncDX:     c.EncDX,
		EncDZ:     c.EncDZ,
		RawDX:     c.RawDX,
		RawDZ:     c.RawDZ,
		Verified:  p.verified,
	}

	p.pending = true
	p.processing = true
	p.errMsg = ""
	p.inflight = tx
	p.statSubmitted.Add(1)

	p.log.Printf("tx %d submit: cell %v -> delta (%d,%d) enc (%s,%s)",
		tx.Seq, grid.CellAt(p.verified), c.RawDX, c.RawDZ, c.EncDX, c.EncDZ)
	p.bus.Publish(event.EventTxProcessing, tx)

	mover, bus, timeout := p.mover, p.bus, p.opts.CallTimeout
	seq, dx, dz := tx.Seq, c.EncDX, c.EncDZ
	p.opts.Launch(func() {
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		var result chain.MoveResult
		err := core.Recover(func() error {
			var callErr error
			result, callErr = mover.MovePlayer(ctx, dx, dz)
			return callErr
		})

		resolved := &event.MoveResolvedPayload{Seq: seq, Result: result}
		if err != nil {
			resolved.Err = err.Error()
			if resolved.Err == "" {
				resolved.Err = ErrUnknown.Error()
			}
		}
		bus.Post(event.EventMoveResolved, resolved)
	})
}

func (p *Pipeline) handleResolved(ev event.GameEvent) {
	res, ok := ev.Payload.(*event.MoveResolvedPayload)
	if !ok {
		return
	}
	if p.inflight == nil || res.Seq != p.inflight.Seq {
		p.log.Printf("tx %d: stale result ignored", res.Seq)
		return
	}

	tx := p.inflight
	p.inflight = nil

	if res.Err == "" && res.Result.Success {
		p.verified = p.verified.Offset(tx.RawDX, tx.RawDZ)
		p.pending = false
		p.processing = false
		p.errMsg = ""
		p.statConfirmed.Add(1)

		tx.Verified = p.verified
		p.log.Printf("tx %d confirmed: verified cell %v", tx.Seq, grid.CellAt(p.verified))
		p.bus.Publish(event.EventTxConfirmed, tx)
		return
	}

	msg := res.Err
	if msg == "" {
		msg = res.Result.Error
	}
	if msg == "" {
		msg = ErrRejected.Error()
	}
	p.fail(tx, msg)
}

// fail enters recovery: popup clears shortly, then the client reloads
// No submission is made in between
func (p *Pipeline) fail(tx *event.TxPayload, msg string) {
	p.errMsg = msg
	p.recovering = true
	p.statFailed.Add(1)

	tx.Error = msg
	p.log.Printf("tx %d failed: %s; reloading in %v", tx.Seq, msg, parameter.TxFailureReloadDelay)
	p.bus.Publish(event.EventTxFailed, tx)

	p.popupTimer.Arm(parameter.TxFailurePopupDelay, func() {
		p.processing = false
		p.pending = false
	})
	p.reloadTimer.Arm(parameter.TxFailureReloadDelay, func() {
		p.bus.Publish(event.EventClientReload, &event.ClientReloadPayload{Reason: msg})
	})
}
