// Package game wires the reconciliation pipeline, the weapon and the horde
// into one frame-driven controller
package game

import (
	"context"
	"errors"
	"io"
	"log"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/blockrooms/audio"
	"github.com/lixenwraith/blockrooms/chain"
	"github.com/lixenwraith/blockrooms/combat"
	"github.com/lixenwraith/blockrooms/core"
	"github.com/lixenwraith/blockrooms/engine"
	"github.com/lixenwraith/blockrooms/enemy"
	"github.com/lixenwraith/blockrooms/event"
	"github.com/lixenwraith/blockrooms/grid"
	"github.com/lixenwraith/blockrooms/input"
	"github.com/lixenwraith/blockrooms/journal"
	"github.com/lixenwraith/blockrooms/movement"
	"github.com/lixenwraith/blockrooms/parameter"
	"github.com/lixenwraith/blockrooms/scene"
	"github.com/lixenwraith/blockrooms/status"
)

// ErrNoClient is returned by New without a backend client
var ErrNoClient = errors.New("game: no chain client")

const (
	bannerCharging = "SOMETHING IS COMING"
	bannerKilled   = "ENEMY DOWN"
)

// Options wires a Controller to its collaborators
// Only Client is required
type Options struct {
	Client   chain.Client
	Address  string
	Clock    engine.TimeProvider
	Registry *status.Registry
	Logger   *log.Logger

	Journal *journal.Journal // Gate restore and tx audit, optional
	Audio   audio.Player     // Optional

	// Attach receives the controller's bus before any event is published
	Attach []func(*event.Bus)

	Weapon          combat.Kind
	Enemies         int
	Seed            int64
	MaxSpeed        float64
	TurnRate        float64
	RefetchInterval time.Duration
	CallTimeout     time.Duration

	// Launch runs backend calls off the frame loop; defaults to core.Go
	Launch func(func())
}

// Controller owns one play session from menu to teardown
// A hard reload discards the controller and builds a fresh one
//
// Thread-Safety: none. Every method runs on the frame loop; backend calls
// report back through the bus queue
type Controller struct {
	// ===== Immutable After Init =====

	opts   Options
	client chain.Client
	clock  engine.TimeProvider
	sched  *engine.Scheduler
	bus    *event.Bus
	reg    *status.Registry
	log    *log.Logger
	launch func(func())

	world    *scene.World
	gate     *movement.Gate
	pipeline *movement.Pipeline
	ammo     *combat.Ammo
	horde    *enemy.Horde
	recorder *journal.Recorder

	// ===== Frame-Loop State =====

	phase    Phase
	frame    int64
	lastTick time.Time
	closed   bool

	player  *Player
	weapon  *combat.Weapon
	hasGun  bool
	pickups []*Pickup

	chainPlayer *chain.PlayerState
	others      []chain.PlayerState
	synced      bool
	fetching    bool

	banner       string
	bannerTimer  *engine.Timer
	refetchTimer *engine.Timer

	reloadRequested bool
	reloadReason    string

	// ===== Metrics =====

	statFrameDt   *status.AtomicFloat
	statSpeed     *status.AtomicFloat
	statRefetchOK *atomic.Int64
	statRefetchEr *atomic.Int64
}

// New builds a controller in the menu phase and starts the first refetch
func New(opts Options) (*Controller, error) {
	if opts.Client == nil {
		return nil, ErrNoClient
	}
	if opts.Clock == nil {
		opts.Clock = engine.NewMonotonicTimeProvider()
	}
	if opts.Registry == nil {
		opts.Registry = status.NewRegistry()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard, "", 0)
	}
	if opts.Launch == nil {
		opts.Launch = core.Go
	}
	if opts.RefetchInterval <= 0 {
		opts.RefetchInterval = parameter.RefetchInterval
	}
	if opts.Weapon == "" {
		opts.Weapon = combat.KindPistol
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	c := &Controller{
		opts:   opts,
		client: opts.Client,
		clock:  opts.Clock,
		sched:  engine.NewScheduler(opts.Clock),
		bus:    event.NewBus(opts.Clock.Now),
		reg:    opts.Registry,
		log:    opts.Logger,
		launch: opts.Launch,
		world:  scene.NewWorld(),

		statFrameDt:   opts.Registry.Gauges.Get(status.FrameDeltaMs),
		statSpeed:     opts.Registry.Gauges.Get(status.PlayerSpeed),
		statRefetchOK: opts.Registry.Counter(status.RefetchOK),
		statRefetchEr: opts.Registry.Counter(status.RefetchErr),
	}

	for _, attach := range opts.Attach {
		attach(c.bus)
	}
	audio.NewBridge(opts.Audio, c.bus)

	spawn := grid.CellCenter(grid.Cell{})
	c.player = NewPlayer(spawn, opts.MaxSpeed, opts.TurnRate)
	c.pickups = newPickups(spawn)

	c.gate = movement.NewGate(c.sched, c.bus, c.reg, c.subLogger("gate"))
	c.pipeline = movement.NewPipeline(c.client, spawn, c.sched, c.bus, c.reg, c.subLogger("movement"), movement.PipelineOptions{
		CallTimeout: opts.CallTimeout,
		Launch:      opts.Launch,
	})
	c.ammo = combat.NewAmmo(c.sched, c.bus, c.reg)
	c.weapon = combat.NewWeapon(opts.Weapon, c.ammo, c.world, c.sched, c.bus, c.reg, c.canShoot)
	c.horde = enemy.NewHorde(c.sched, c.world, c.bus, c.reg, rand.New(rand.NewSource(seed)))
	c.attachRig()

	c.bannerTimer = c.sched.NewTimer("banner")
	c.refetchTimer = c.sched.NewTimer("refetch")

	c.bus.Subscribe(event.EventWorldFetched, c.onWorldFetched)
	c.bus.Subscribe(event.EventShotResolved, c.onShotResolved)
	c.bus.Subscribe(event.EventEnemyCharging, func(event.GameEvent) { c.showBanner(bannerCharging) })
	c.bus.Subscribe(event.EventEnemyKilled, func(event.GameEvent) { c.showBanner(bannerKilled) })
	c.bus.Subscribe(event.EventClientReload, c.onClientReload)

	if opts.Journal != nil {
		c.restoreSession(opts.Journal)
		c.recorder = journal.NewRecorder(opts.Journal, opts.Address, c.bus, c.subLogger("journal"))
	}

	c.refetch()
	return c, nil
}

func (c *Controller) subLogger(name string) *log.Logger {
	return log.New(c.log.Writer(), "["+name+"] ", c.log.Flags())
}

func (c *Controller) restoreSession(j *journal.Journal) {
	s, ok, err := j.LastSession(c.opts.Address)
	if err != nil {
		c.log.Printf("journal restore: %v", err)
		return
	}
	if ok {
		c.gate.Restore(s.SessionID)
		c.log.Printf("restored session %d", s.SessionID)
	}
}

// Bus returns the controller's event bus
func (c *Controller) Bus() *event.Bus { return c.bus }

// Phase returns the current phase
func (c *Controller) Phase() Phase { return c.phase }

// SetPhase switches phase; entering play spawns the horde
func (c *Controller) SetPhase(p Phase) {
	if p == c.phase || c.closed {
		return
	}
	c.phase = p
	if p == PhaseActive && len(c.horde.Enemies()) == 0 {
		for i := 0; i < c.opts.Enemies; i++ {
			c.horde.Spawn(c.player.Position())
		}
	}
	c.bus.Publish(event.EventPhaseChanged, &event.PhasePayload{Phase: p.String()})
}

// Tick runs one frame: drain worker results, fire due timers, integrate
// motion, then reconcile the crossing and step the horde
func (c *Controller) Tick() {
	if c.closed {
		return
	}

	now := c.clock.Now()
	var dt time.Duration
	if !c.lastTick.IsZero() {
		dt = min(now.Sub(c.lastTick), parameter.MaxFrameDelta)
	}
	c.lastTick = now
	c.frame++
	c.bus.SetFrame(c.frame)

	c.bus.DispatchPending()
	c.sched.Advance()

	active := c.phase == PhaseActive
	secs := dt.Seconds()
	if active && !c.pipeline.Signals().Recovering {
		c.player.Step(secs, now)
	}
	c.syncRig()

	gameActive, sessionID := c.chainSession()
	c.gate.Observe(active, gameActive, sessionID)
	c.pipeline.OnFrame(movement.FrameInput{
		Position:    c.player.Grid(),
		PhaseActive: active,
		GateEnabled: c.gate.Enabled(),
		SessionID:   sessionID,
	})

	if active {
		c.horde.Update(secs, c.player.Position(), c.hasGun)
	}

	c.statFrameDt.Set(float64(dt) / float64(time.Millisecond))
	c.statSpeed.Set(c.player.Speed())
}

// HandleIntent applies one input intent; returns false on quit
func (c *Controller) HandleIntent(in input.Intent) bool {
	switch in.Type {
	case input.IntentQuit:
		return false
	case input.IntentToggleMute:
		if c.opts.Audio != nil {
			c.opts.Audio.ToggleMute()
		}
		return true
	}

	if c.closed {
		return true
	}
	if c.phase == PhaseMenu {
		if in.Type == input.IntentConfirm {
			c.SetPhase(PhaseActive)
		}
		return true
	}

	switch {
	case in.Type.IsMovement():
		c.player.Apply(in.Type, c.clock.Now())
	case in.Type == input.IntentFire:
		c.weapon.Fire(combat.AimFromYaw(c.player.Position(), c.player.Yaw()))
	case in.Type == input.IntentReload:
		c.weapon.Reload()
	case in.Type == input.IntentInteract:
		c.interact()
	case in.Type == input.IntentSwitchWeapon:
		c.switchWeapon()
	case in.Type == input.IntentDismiss:
		c.pipeline.ClosePopup()
	}
	return true
}

// ReloadRequested reports whether the failure path asked for a hard reload
func (c *Controller) ReloadRequested() (string, bool) {
	return c.reloadReason, c.reloadRequested
}

// Close cancels every outstanding timer and detaches from in-flight calls
func (c *Controller) Close() {
	if c.closed {
		return
	}
	c.closed = true
	c.pipeline.Stop()
	c.gate.Stop()
	c.ammo.Cancel()
	c.horde.Stop()
	c.sched.CancelAll()
	c.log.Printf("controller closed at frame %d", c.frame)
}

// Snapshot copies the drawable state
func (c *Controller) Snapshot() Snapshot {
	s := Snapshot{
		Phase:       c.phase,
		Frame:       c.frame,
		Position:    c.player.Position(),
		Yaw:         c.player.Yaw(),
		Speed:       c.player.Speed(),
		Cell:        grid.CellAt(c.player.Grid()),
		Verified:    c.pipeline.Verified(),
		HasGun:      c.hasGun,
		Weapon:      c.weapon.Kind(),
		Ammo:        c.ammo.Snapshot(),
		Reloading:   c.ammo.Reloading(),
		ReloadIn:    c.ammo.ReloadRemaining(),
		Flash:       c.weapon.Flashing(),
		Shake:       c.weapon.Shaking(),
		GateEnabled: c.gate.Enabled(),
		GateArmed:   c.gate.Armed(),
		GateIn:      c.gate.Remaining(),
		Tx:          c.pipeline.Signals(),
		Others:      append([]chain.PlayerState(nil), c.others...),
		Banner:      c.banner,
		Stats:       c.reg.String(),
	}
	if c.chainPlayer != nil {
		p := *c.chainPlayer
		s.Chain = &p
	}
	if c.opts.Audio != nil {
		s.Muted = c.opts.Audio.IsMuted()
	}
	for _, e := range c.horde.Enemies() {
		if !e.Alive() {
			continue
		}
		s.Enemies = append(s.Enemies, EnemyView{
			ID:       e.ID(),
			Position: e.Position(),
			Behavior: e.Behavior(),
			Health:   e.Health(),
		})
	}
	for _, p := range c.pickups {
		if !p.Taken {
			s.Pickups = append(s.Pickups, *p)
		}
	}
	if c.phase == PhaseActive {
		if p := nearestPickup(c.pickups, c.player.Position()); p != nil {
			s.Prompt = p.Prompt()
		}
	}
	return s
}

func (c *Controller) canShoot() bool {
	return c.hasGun && c.phase == PhaseActive && !c.pipeline.Signals().Recovering
}

func (c *Controller) chainSession() (bool, int64) {
	if c.chainPlayer == nil {
		return false, 0
	}
	return c.chainPlayer.GameActive, c.chainPlayer.CurrentSessionID
}

func (c *Controller) interact() {
	p := nearestPickup(c.pickups, c.player.Position())
	if p == nil {
		return
	}
	p.Taken = true
	switch p.Kind {
	case PickupGun:
		c.hasGun = true
	case PickupAmmo:
		c.ammo.AddAmmo(p.Amount)
	}
	c.bus.Publish(event.EventPickup, &event.PickupPayload{Kind: string(p.Kind), Amount: p.Amount})
}

// switchWeapon swaps the variant; ammo carries over
func (c *Controller) switchWeapon() {
	if c.weapon.Recoiling() {
		return
	}
	next := combat.KindShotgun
	if c.weapon.Kind() == combat.KindShotgun {
		next = combat.KindPistol
	}
	c.weapon = combat.NewWeapon(next, c.ammo, c.world, c.sched, c.bus, c.reg, c.canShoot)
}

func (c *Controller) showBanner(text string) {
	c.banner = text
	c.bannerTimer.Arm(parameter.EnemyBannerDuration, func() {
		c.banner = ""
	})
}

func (c *Controller) onShotResolved(ev event.GameEvent) {
	if shot, ok := ev.Payload.(*event.ShotPayload); ok {
		c.horde.HandleShot(*shot)
	}
}

func (c *Controller) onClientReload(ev event.GameEvent) {
	c.reloadRequested = true
	if p, ok := ev.Payload.(*event.ClientReloadPayload); ok {
		c.reloadReason = p.Reason
	}
	c.log.Printf("reload requested: %s", c.reloadReason)
}

// refetch re-reads the world on a worker; one read in flight at a time
func (c *Controller) refetch() {
	if c.fetching || c.closed {
		return
	}
	c.fetching = true

	fetcher, bus, timeout := c.client, c.bus, c.opts.CallTimeout
	c.launch(func() {
		var ws chain.WorldState
		err := core.Recover(func() error {
			ctx := context.Background()
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}
			var err error
			ws, err = fetcher.Refetch(ctx)
			return err
		})
		p := &event.WorldFetchedPayload{State: ws}
		if err != nil {
			p.Err = err.Error()
		}
		bus.Post(event.EventWorldFetched, p)
	})
}

func (c *Controller) onWorldFetched(ev event.GameEvent) {
	c.fetching = false
	if c.closed {
		return
	}
	p, ok := ev.Payload.(*event.WorldFetchedPayload)
	if !ok {
		return
	}

	if p.Err != "" {
		c.statRefetchEr.Add(1)
		c.log.Printf("refetch: %s", p.Err)
	} else {
		c.statRefetchOK.Add(1)
		c.applyWorld(p.State)
	}
	c.refetchTimer.Arm(c.opts.RefetchInterval, c.refetch)
}

func (c *Controller) applyWorld(ws chain.WorldState) {
	c.others = ws.Others
	if ws.Player == nil {
		c.chainPlayer = nil
		return
	}
	pl := *ws.Player
	c.chainPlayer = &pl

	// First read places the local body on the authoritative cell
	if !c.synced {
		pos := pl.WorldPosition()
		if c.pipeline.Resync(pos) {
			c.player.Teleport(pos)
			c.synced = true
		}
	}
}
