package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/blockrooms/audio"
	"github.com/lixenwraith/blockrooms/chain"
	"github.com/lixenwraith/blockrooms/combat"
	"github.com/lixenwraith/blockrooms/config"
	"github.com/lixenwraith/blockrooms/core"
	"github.com/lixenwraith/blockrooms/event"
	"github.com/lixenwraith/blockrooms/game"
	"github.com/lixenwraith/blockrooms/input"
	"github.com/lixenwraith/blockrooms/journal"
	"github.com/lixenwraith/blockrooms/network"
	"github.com/lixenwraith/blockrooms/network/gateway"
	"github.com/lixenwraith/blockrooms/parameter"
	"github.com/lixenwraith/blockrooms/render"
	"github.com/lixenwraith/blockrooms/service"
	"github.com/lixenwraith/blockrooms/status"
	"github.com/lixenwraith/blockrooms/telemetry"
)

var (
	configFlag  = flag.String("config", "", "YAML config file")
	networkFlag = flag.String("network", "", "Network preset: "+strings.Join(chain.NetworkNames(), ", "))
	debugFlag   = flag.Bool("debug", false, "Write logs and show the metrics line")
	muteFlag    = flag.Bool("mute", false, "Start without audio")
	offlineFlag = flag.Bool("offline", false, "Play against an in-process chain simulator")
)

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "blockrooms: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(*configFlag)
	if err != nil {
		return err
	}
	if *debugFlag {
		cfg.Log.Debug = true
	}

	if logFile := setupLogging(cfg.Log.Dir, cfg.Log.Debug); logFile != nil {
		defer logFile.Close()
	}
	logger := newLogger("blockrooms")
	reg := status.NewRegistry()

	// Storage opens first: the saved network selection decides where to dial
	storage := service.NewHub()
	journalSvc := journal.NewService()
	telemetrySvc := telemetry.NewService()
	for _, svc := range []service.Service{journalSvc, telemetrySvc} {
		if err := storage.Register(svc); err != nil {
			return err
		}
	}
	telemetryOpts := &telemetry.Options{}
	if cfg.Log.Telemetry {
		telemetryOpts.Dir = cfg.Log.Dir
	}
	if err := storage.InitAll(&journal.Options{Path: cfg.Journal.Path}, telemetryOpts, newLogger("telemetry")); err != nil {
		return err
	}
	defer storage.StopAll()
	if err := storage.StartAll(); err != nil {
		return err
	}

	if err := selectNetwork(&cfg, journalSvc.Journal(), *networkFlag, logger); err != nil {
		return err
	}

	if *offlineFlag {
		url, stop, err := startOffline(&cfg)
		if err != nil {
			return err
		}
		defer stop()
		cfg.Network.GatewayURL = url
		logger.Printf("offline gateway at %s", url)
	}

	session := service.NewHub()
	audioSvc := audio.NewService()
	netSvc := network.NewService()
	for _, svc := range []service.Service{audioSvc, netSvc} {
		if err := session.Register(svc); err != nil {
			return err
		}
	}
	args := []any{cfg.NetworkConfig(), cfg.AudioConfig(), reg, newLogger("session")}
	if *muteFlag {
		args = append(args, audio.Muted(true))
	}
	if err := session.InitAll(args...); err != nil {
		return err
	}
	defer session.StopAll()
	if err := session.StartAll(); err != nil {
		return fmt.Errorf("connect %s: %w", cfg.GatewayURL(), err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	core.SetCrashHook(screen.Fini)

	events := make(chan tcell.Event, 256)
	core.Go(func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	})

	c := &client{
		cfg:       cfg,
		keys:      cfg.KeyTable(),
		events:    events,
		orch:      render.NewDefault(screen, render.NewDebugLayer(cfg.Log.Debug)),
		reg:       reg,
		log:       logger,
		net:       netSvc,
		backoff:   parameter.NetReconnectBackoff,
		audio:     audioSvc.Player(),
		journal:   journalSvc.Journal(),
		telemetry: telemetrySvc,
	}
	err = c.run()
	logger.Printf("exit: %s", reg)
	return err
}

// selectNetwork resolves the preset: flag, then the saved choice, then config
// An explicit gateway URL in config is only overridden by the flag and is
// never saved
func selectNetwork(cfg *config.Config, j *journal.Journal, flagValue string, logger *log.Logger) error {
	name := flagValue
	if name == "" && j != nil && cfg.Network.GatewayURL == "" {
		saved, ok, err := j.Setting(journal.SettingNetwork)
		if err != nil {
			logger.Printf("read network setting: %v", err)
		} else if ok {
			name = saved
		}
	}
	if name != "" && (name != cfg.Network.Network || cfg.Network.GatewayURL != "") {
		if err := cfg.SelectNetwork(name); err != nil {
			return err
		}
	}
	if j != nil && cfg.Network.GatewayURL == "" {
		if err := j.SetSetting(journal.SettingNetwork, cfg.Network.Network); err != nil {
			logger.Printf("save network setting: %v", err)
		}
	}
	return nil
}

// startOffline serves the gateway simulator on a loopback port
func startOffline(cfg *config.Config) (string, func(), error) {
	gw := gateway.New(gateway.Options{
		Key:    []byte(cfg.Network.SessionKey),
		Logger: newLogger("chainsim"),
	})
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", nil, err
	}
	srv := &http.Server{Handler: gw, ReadHeaderTimeout: 5 * time.Second}
	core.Go(func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("offline gateway: %v", err)
		}
	})
	return "ws://" + ln.Addr().String() + "/rpc", func() { srv.Close() }, nil
}

// redialer restores the gateway connection between controllers
type redialer interface {
	Reconnect() error
	Client() chain.Client
}

// client runs controllers back to back until quit
type client struct {
	cfg    config.Config
	keys   *input.KeyTable
	events <-chan tcell.Event
	orch   *render.Orchestrator
	reg    *status.Registry
	log    *log.Logger

	net       redialer
	backoff   time.Duration
	audio     audio.Player
	journal   *journal.Journal
	telemetry *telemetry.Service
}

func (c *client) run() error {
	for {
		if err := c.reconnect(); err != nil {
			return err
		}
		ctrl, err := game.New(c.options())
		if err != nil {
			return err
		}
		quit := c.loop(ctrl)
		reason, reload := ctrl.ReloadRequested()
		ctrl.Close()
		if quit || !reload {
			return nil
		}
		c.log.Printf("hard reload: %s", reason)
	}
}

// reconnect redials a terminated gateway connection; a live one is reused
func (c *client) reconnect() error {
	var err error
	for attempt := 1; attempt <= parameter.NetReconnectAttempts; attempt++ {
		if err = c.net.Reconnect(); err == nil {
			return nil
		}
		c.log.Printf("reconnect attempt %d: %v", attempt, err)
		if attempt < parameter.NetReconnectAttempts {
			time.Sleep(c.backoff)
		}
	}
	return fmt.Errorf("reconnect %s: %w", c.cfg.GatewayURL(), err)
}

func (c *client) options() game.Options {
	return game.Options{
		Client:          c.net.Client(),
		Address:         c.cfg.Network.PlayerAddress,
		Registry:        c.reg,
		Logger:          newLogger("game"),
		Journal:         c.journal,
		Audio:           c.audio,
		Attach:          []func(*event.Bus){func(b *event.Bus) { c.telemetry.Attach(b) }},
		Weapon:          combat.ParseKind(c.cfg.Audio.Weapon),
		Enemies:         c.cfg.Game.Enemies,
		Seed:            c.cfg.Game.Seed,
		MaxSpeed:        c.cfg.Game.MaxSpeed,
		TurnRate:        c.cfg.Game.TurnRate,
		RefetchInterval: c.cfg.Network.RefetchInterval,
		CallTimeout:     c.cfg.Network.CallTimeout,
	}
}

// loop runs one controller at the frame rate; returns true on quit
func (c *client) loop(ctrl *game.Controller) bool {
	ticker := time.NewTicker(parameter.FrameUpdateInterval)
	defer ticker.Stop()

	for {
		select {
		case ev := <-c.events:
			in := c.keys.Translate(ev)
			if in.Type == input.IntentResize {
				c.orch.Resize()
				continue
			}
			if !ctrl.HandleIntent(in) {
				return true
			}

		case <-ticker.C:
			ctrl.Tick()
			if _, reload := ctrl.ReloadRequested(); reload {
				return false
			}
			snap := ctrl.Snapshot()
			c.orch.RenderFrame(&snap)
		}
	}
}
