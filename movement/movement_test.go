package movement

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/blockrooms/chain"
	"github.com/lixenwraith/blockrooms/engine"
	"github.com/lixenwraith/blockrooms/event"
	"github.com/lixenwraith/blockrooms/grid"
	"github.com/lixenwraith/blockrooms/parameter"
	"github.com/lixenwraith/blockrooms/status"
)

type call struct {
	dx, dz grid.Direction
}

type fakeMover struct {
	calls  []call
	result chain.MoveResult
	err    error
	panics bool
}

func (m *fakeMover) MovePlayer(_ context.Context, dx, dz grid.Direction) (chain.MoveResult, error) {
	m.calls = append(m.calls, call{dx, dz})
	if m.panics {
		panic("provider exploded")
	}
	return m.result, m.err
}

type rig struct {
	clock    *engine.MockTimeProvider
	sched    *engine.Scheduler
	bus      *event.Bus
	reg      *status.Registry
	mover    *fakeMover
	pipe     *Pipeline
	deferred []func()
	events   []event.GameEvent
}

var spawn = grid.Position{X: 410, Z: 410}

// newRig builds a pipeline whose RPC workers are held until flush
func newRig(t *testing.T) *rig {
	t.Helper()
	r := &rig{
		clock: engine.NewMockTimeProvider(time.Unix(1_700_000_000, 0)),
		reg:   status.NewRegistry(),
		mover: &fakeMover{result: chain.MoveResult{Success: true}},
	}
	r.sched = engine.NewScheduler(r.clock)
	r.bus = event.NewBus(r.clock.Now)
	r.bus.SubscribeAll(func(ev event.GameEvent) { r.events = append(r.events, ev) })
	r.pipe = NewPipeline(r.mover, spawn, r.sched, r.bus, r.reg, nil, PipelineOptions{
		Launch: func(fn func()) { r.deferred = append(r.deferred, fn) },
	})
	return r
}

// flush runs held workers and dispatches their results on the frame thread
func (r *rig) flush() {
	work := r.deferred
	r.deferred = nil
	for _, fn := range work {
		fn()
	}
	r.bus.DispatchPending()
}

func (r *rig) advance(d time.Duration) {
	r.clock.Advance(d)
	r.sched.Advance()
}

func (r *rig) count(t event.EventType) int {
	n := 0
	for _, ev := range r.events {
		if ev.Type == t {
			n++
		}
	}
	return n
}

func active(pos grid.Position) FrameInput {
	return FrameInput{Position: pos, PhaseActive: true, GateEnabled: true, SessionID: 7}
}

func TestGateNewSessionDelay(t *testing.T) {
	r := newRig(t)
	g := NewGate(r.sched, r.bus, r.reg, nil)

	g.Observe(true, true, 42)
	assert.True(t, g.Armed())
	assert.False(t, g.Enabled())
	assert.Equal(t, parameter.GateDelayNewSession, g.Remaining())

	r.advance(parameter.GateDelayNewSession - time.Millisecond)
	assert.False(t, g.Enabled())

	// Repeated observation does not restart the timer
	g.Observe(true, true, 42)
	r.advance(time.Millisecond)
	assert.True(t, g.Enabled())
	assert.True(t, r.reg.Flags.Get(status.GateEnabled).Load())
	assert.Equal(t, 1, r.count(event.EventGateChanged))
}

func TestGateReconnectDelay(t *testing.T) {
	r := newRig(t)
	g := NewGate(r.sched, r.bus, r.reg, nil)

	g.Observe(true, true, 42)
	r.advance(parameter.GateDelayNewSession)
	require.True(t, g.Enabled())

	g.Observe(false, true, 42)
	assert.False(t, g.Enabled())
	assert.False(t, g.Armed())
	id, ok := g.LastKnownSessionID()
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)

	g.Observe(true, true, 42)
	assert.Equal(t, parameter.GateDelayReconnect, g.Remaining())
	r.advance(parameter.GateDelayReconnect)
	assert.True(t, g.Enabled())
}

func TestGateDifferentSessionRearms(t *testing.T) {
	r := newRig(t)
	g := NewGate(r.sched, r.bus, r.reg, nil)

	g.Observe(true, true, 1)
	r.advance(5 * time.Second)
	g.Observe(true, true, 2)
	assert.Equal(t, parameter.GateDelayNewSession, g.Remaining())

	r.advance(5 * time.Second)
	assert.False(t, g.Enabled())
	r.advance(5 * time.Second)
	assert.True(t, g.Enabled())
}

func TestGateCancelOnPhaseExit(t *testing.T) {
	r := newRig(t)
	g := NewGate(r.sched, r.bus, r.reg, nil)

	g.Observe(true, true, 9)
	r.advance(4 * time.Second)
	g.Observe(true, false, 9)
	assert.False(t, g.Armed())

	r.advance(time.Minute)
	assert.False(t, g.Enabled(), "canceled timer must not open the gate")
}

func TestGateRestoreUsesReconnectDelay(t *testing.T) {
	r := newRig(t)
	g := NewGate(r.sched, r.bus, r.reg, nil)

	g.Restore(77)
	g.Observe(true, true, 77)
	assert.Equal(t, parameter.GateDelayReconnect, g.Remaining())

	g2 := NewGate(r.sched, r.bus, r.reg, nil)
	g2.Restore(77)
	g2.Observe(true, true, 78)
	assert.Equal(t, parameter.GateDelayNewSession, g2.Remaining())
}

func TestNoSubmitWhenGatedOrInactive(t *testing.T) {
	r := newRig(t)
	moved := grid.Position{X: 425, Z: 410}

	in := active(moved)
	in.GateEnabled = false
	assert.False(t, r.pipe.OnFrame(in))

	in = active(moved)
	in.PhaseActive = false
	assert.False(t, r.pipe.OnFrame(in))

	assert.False(t, r.pipe.OnFrame(active(spawn)), "same cell is not a crossing")
	assert.Empty(t, r.deferred)
}

func TestSuccessUpdatesVerified(t *testing.T) {
	r := newRig(t)

	require.True(t, r.pipe.OnFrame(active(grid.Position{X: 425, Z: 410})))
	assert.True(t, r.pipe.Pending())
	sig := r.pipe.Signals()
	assert.True(t, sig.Processing)
	assert.True(t, sig.Loading)

	r.flush()
	require.Len(t, r.mover.calls, 1)
	assert.Equal(t, call{grid.DirPositive, grid.DirNone}, r.mover.calls[0])

	assert.False(t, r.pipe.Pending())
	assert.False(t, r.pipe.Signals().Processing)
	assert.Equal(t, grid.Position{X: 430, Z: 410}, r.pipe.Verified())
	assert.Equal(t, grid.Cell{X: 1, Z: 0}, grid.CellAt(r.pipe.Verified()))
	assert.Equal(t, 1, r.count(event.EventTxConfirmed))
	assert.Equal(t, int64(1), r.reg.Counter(status.TxConfirmed).Load())
}

func TestDiagonalIsOneTransaction(t *testing.T) {
	r := newRig(t)

	require.True(t, r.pipe.OnFrame(active(grid.Position{X: 395, Z: 421})))
	r.flush()

	require.Len(t, r.mover.calls, 1)
	assert.Equal(t, call{grid.DirNegative, grid.DirPositive}, r.mover.calls[0])
	assert.Equal(t, grid.Cell{X: -1, Z: 1}, grid.CellAt(r.pipe.Verified()))
}

func TestAtMostOnePending(t *testing.T) {
	r := newRig(t)

	require.True(t, r.pipe.OnFrame(active(grid.Position{X: 425, Z: 410})))
	assert.False(t, r.pipe.OnFrame(active(grid.Position{X: 445, Z: 410})))
	assert.False(t, r.pipe.OnFrame(active(grid.Position{X: 445, Z: 430})))
	assert.Len(t, r.deferred, 1)
	assert.Equal(t, int64(2), r.reg.Counter(status.TxDropped).Load())

	r.flush()
	// Next crossing is measured from the newly verified cell
	require.True(t, r.pipe.OnFrame(active(grid.Position{X: 445, Z: 410})))
	r.flush()
	assert.Len(t, r.mover.calls, 2)
	assert.Equal(t, grid.Cell{X: 2, Z: 0}, grid.CellAt(r.pipe.Verified()))
}

func TestFailureRecoverySequence(t *testing.T) {
	r := newRig(t)
	r.mover.result = chain.MoveResult{Success: false, Error: "out of bounds"}

	require.True(t, r.pipe.OnFrame(active(grid.Position{X: 425, Z: 410})))
	r.flush()

	sig := r.pipe.Signals()
	assert.Equal(t, "out of bounds", sig.Error)
	assert.True(t, sig.Recovering)
	assert.True(t, sig.Processing)
	assert.Equal(t, spawn, r.pipe.Verified())
	assert.Equal(t, 1, r.count(event.EventTxFailed))

	r.advance(parameter.TxFailurePopupDelay)
	sig = r.pipe.Signals()
	assert.False(t, sig.Processing)
	assert.False(t, sig.Loading)
	assert.Equal(t, "out of bounds", sig.Error, "error stays until reload")

	// Still crossed, but no retry while recovering
	assert.False(t, r.pipe.OnFrame(active(grid.Position{X: 425, Z: 410})))
	assert.Empty(t, r.deferred)
	assert.Equal(t, 0, r.count(event.EventClientReload))

	r.advance(parameter.TxFailureReloadDelay - parameter.TxFailurePopupDelay)
	require.Equal(t, 1, r.count(event.EventClientReload))
	for _, ev := range r.events {
		if ev.Type == event.EventClientReload {
			assert.Equal(t, "out of bounds", ev.Payload.(*event.ClientReloadPayload).Reason)
		}
	}
	assert.Len(t, r.mover.calls, 1)
}

func TestTransportErrorIsFailure(t *testing.T) {
	r := newRig(t)
	r.mover.err = errors.New("dial tcp: refused")

	require.True(t, r.pipe.OnFrame(active(grid.Position{X: 395, Z: 410})))
	r.flush()
	assert.Equal(t, "dial tcp: refused", r.pipe.Signals().Error)
	assert.True(t, r.pipe.Signals().Recovering)
}

func TestFailureWithoutMessage(t *testing.T) {
	r := newRig(t)
	r.mover.result = chain.MoveResult{}

	require.True(t, r.pipe.OnFrame(active(grid.Position{X: 395, Z: 410})))
	r.flush()
	assert.Equal(t, "Transaction failed", r.pipe.Signals().Error)
}

type silentErr struct{}

func (silentErr) Error() string { return "" }

func TestCallErrorWithoutMessage(t *testing.T) {
	r := newRig(t)
	r.mover.err = silentErr{}

	require.True(t, r.pipe.OnFrame(active(grid.Position{X: 395, Z: 410})))
	r.flush()
	assert.Equal(t, "Unknown error", r.pipe.Signals().Error)
	assert.True(t, r.pipe.Signals().Recovering)
}

func TestPanicIsFailure(t *testing.T) {
	r := newRig(t)
	r.mover.panics = true

	require.True(t, r.pipe.OnFrame(active(grid.Position{X: 425, Z: 410})))
	r.flush()
	assert.Contains(t, r.pipe.Signals().Error, "provider exploded")
	assert.True(t, r.pipe.Signals().Recovering)
}

func TestClosePopup(t *testing.T) {
	r := newRig(t)
	r.mover.err = errors.New("boom")

	require.True(t, r.pipe.OnFrame(active(grid.Position{X: 425, Z: 410})))
	r.flush()
	r.pipe.ClosePopup()
	sig := r.pipe.Signals()
	assert.False(t, sig.Processing)
	assert.Empty(t, sig.Error)
	assert.True(t, sig.Recovering, "reload still scheduled")
}

func TestStaleResultIgnored(t *testing.T) {
	r := newRig(t)

	require.True(t, r.pipe.OnFrame(active(grid.Position{X: 425, Z: 410})))
	r.bus.Post(event.EventMoveResolved, &event.MoveResolvedPayload{Seq: 99, Result: chain.MoveResult{Success: true}})
	r.bus.DispatchPending()
	assert.True(t, r.pipe.Pending())
	assert.Equal(t, spawn, r.pipe.Verified())

	r.pipe.Stop()
	r.flush()
	assert.Equal(t, spawn, r.pipe.Verified(), "stopped pipeline ignores late result")
}

func TestAsyncLaunch(t *testing.T) {
	clock := engine.NewMockTimeProvider(time.Unix(0, 0))
	sched := engine.NewScheduler(clock)
	bus := event.NewBus(clock.Now)
	mover := &fakeMover{result: chain.MoveResult{Success: true}}
	pipe := NewPipeline(mover, spawn, sched, bus, status.NewRegistry(), nil, PipelineOptions{CallTimeout: time.Second})

	require.True(t, pipe.OnFrame(active(grid.Position{X: 410, Z: 435})))
	require.Eventually(t, func() bool { return bus.Pending() > 0 }, time.Second, time.Millisecond)
	bus.DispatchPending()
	assert.Equal(t, grid.Cell{X: 0, Z: 1}, grid.CellAt(pipe.Verified()))
}

func TestResyncSkippedWhilePending(t *testing.T) {
	r := newRig(t)
	chainPos := grid.Position{X: 450, Z: 410}

	require.True(t, r.pipe.Resync(chainPos))
	assert.Equal(t, chainPos, r.pipe.Verified())

	require.True(t, r.pipe.OnFrame(active(grid.Position{X: 465, Z: 410})))
	assert.False(t, r.pipe.Resync(spawn))
	r.flush()
	assert.Equal(t, grid.Position{X: 470, Z: 410}, r.pipe.Verified())
}
