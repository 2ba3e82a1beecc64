package audio

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/blockrooms/event"
)

type fakeOutput struct {
	initErr error
	played  []beep.Streamer
	closed  bool
}

func (f *fakeOutput) Init(beep.SampleRate, int) error { return f.initErr }
func (f *fakeOutput) Play(s beep.Streamer)            { f.played = append(f.played, s) }
func (f *fakeOutput) Close()                          { f.closed = true }

type fakePlayer struct {
	sounds []SoundType
}

func (p *fakePlayer) Play(st SoundType) bool { p.sounds = append(p.sounds, st); return true }
func (p *fakePlayer) ToggleMute() bool       { return true }
func (p *fakePlayer) IsMuted() bool          { return false }

// drain streams s to completion and returns the sample count
func drain(s beep.Streamer) int {
	buf := make([][2]float64, 512)
	total := 0
	for {
		n, ok := s.Stream(buf)
		total += n
		if !ok {
			return total
		}
	}
}

func TestEverySoundTerminates(t *testing.T) {
	cfg := DefaultAudioConfig()
	for st := SoundType(0); st < soundTypeCount; st++ {
		s := GetSoundEffect(st, cfg)
		if s == nil {
			t.Fatalf("%s: no streamer", st)
		}
		n := drain(s)
		if n == 0 || n > cfg.SampleRate*2 {
			t.Errorf("%s: %d samples", st, n)
		}
	}
	if GetSoundEffect(soundTypeCount, cfg) != nil {
		t.Error("unknown sound type should yield nil")
	}
}

func TestLongReloadOutlastsShort(t *testing.T) {
	cfg := DefaultAudioConfig()
	short := drain(GetSoundEffect(SoundReloadShort, cfg))
	long := drain(GetSoundEffect(SoundReloadLong, cfg))
	if long <= short {
		t.Errorf("long reload %d samples, short %d", long, short)
	}
}

func TestEnvelopeBounds(t *testing.T) {
	rate := beep.SampleRate(1000)
	s := NewEnvelope(NewOscillator(0, time.Second, WaveSquare, rate), time.Second, 100*time.Millisecond, 100*time.Millisecond, rate)
	buf := make([][2]float64, 1000)
	n, _ := s.Stream(buf)
	if n != 1000 {
		t.Fatalf("streamed %d", n)
	}
	if buf[0][0] != 0 {
		t.Errorf("attack should start silent, got %f", buf[0][0])
	}
	if buf[500][0] != 1 {
		t.Errorf("sustain should be unity, got %f", buf[500][0])
	}
	if buf[999][0] > 0.02 {
		t.Errorf("release should end near zero, got %f", buf[999][0])
	}
}

func TestLoadAudioConfigEnv(t *testing.T) {
	t.Setenv("BLOCKROOMS_AUDIO_ENABLED", "false")
	t.Setenv("BLOCKROOMS_MASTER_VOLUME", "150")
	t.Setenv("BLOCKROOMS_SFX_VOLUMES", `{"fire_pistol":0.25,"bogus":1}`)

	cfg := LoadAudioConfig()
	if cfg.Enabled {
		t.Error("expected disabled")
	}
	if cfg.MasterVolume != 1 {
		t.Errorf("master volume should clamp to 1, got %f", cfg.MasterVolume)
	}
	if cfg.EffectVolumes[SoundFirePistol] != 0.25 {
		t.Errorf("pistol volume %f", cfg.EffectVolumes[SoundFirePistol])
	}
}

func TestSoundManagerPlay(t *testing.T) {
	out := &fakeOutput{}
	sm := NewSoundManagerWithOutput(DefaultAudioConfig(), out)

	if sm.Play(SoundPickup) {
		t.Error("play before Initialize should fail")
	}
	if err := sm.Initialize(); err != nil {
		t.Fatal(err)
	}
	if len(out.played) != 1 {
		t.Fatalf("mixer not attached to output")
	}
	if !sm.Play(SoundPickup) || sm.Active() != 1 {
		t.Error("sound not mixed")
	}

	if sm.ToggleMute() {
		t.Error("first toggle should mute")
	}
	if sm.Play(SoundPickup) {
		t.Error("muted play should fail")
	}
	played, dropped := sm.Stats()
	if played != 1 || dropped != 2 {
		t.Errorf("stats played=%d dropped=%d", played, dropped)
	}

	sm.Cleanup()
	if !out.closed {
		t.Error("output not closed")
	}
}

func TestServiceDegradesWithoutDevice(t *testing.T) {
	os.Unsetenv("BLOCKROOMS_AUDIO_ENABLED")
	svc := NewServiceWithOutput(&fakeOutput{initErr: errors.New("no device")})
	if err := svc.Init(Muted(false)); err != nil {
		t.Fatal(err)
	}
	if err := svc.Start(); err != nil {
		t.Fatalf("start should degrade, got %v", err)
	}
	if !svc.IsDisabled() || svc.Player() != nil {
		t.Error("expected disabled service with nil player")
	}
	if err := svc.Stop(); err != nil {
		t.Fatal(err)
	}
}

func TestServiceMutedArg(t *testing.T) {
	svc := NewServiceWithOutput(&fakeOutput{})
	svc.Init(Muted(true))
	svc.Start()
	p := svc.Player()
	if p == nil || !p.IsMuted() {
		t.Fatal("expected muted player")
	}
	svc.Stop()
}

func TestBridge(t *testing.T) {
	bus := event.NewBus(time.Now)
	p := &fakePlayer{}
	NewBridge(p, bus)

	bus.Publish(event.EventShotFired, &event.ShotFiredPayload{Weapon: "shotgun"})
	bus.Publish(event.EventShotFired, &event.ShotFiredPayload{Weapon: "pistol"})
	bus.Publish(event.EventReloadChanged, &event.ReloadPayload{Reloading: true, Variant: event.ReloadLong})
	bus.Publish(event.EventReloadChanged, &event.ReloadPayload{Reloading: false})
	bus.Publish(event.EventDryFire, nil)
	bus.Publish(event.EventEnemyKilled, &event.EnemyPayload{})
	bus.Publish(event.EventTxFailed, &event.TxPayload{})

	want := []SoundType{SoundFireShotgun, SoundFirePistol, SoundReloadLong, SoundDryFire, SoundEnemyDeath, SoundTxError}
	if len(p.sounds) != len(want) {
		t.Fatalf("got %v, want %v", p.sounds, want)
	}
	for i := range want {
		if p.sounds[i] != want[i] {
			t.Errorf("sound %d: got %s want %s", i, p.sounds[i], want[i])
		}
	}

	// nil player is inert
	NewBridge(nil, bus)
	bus.Publish(event.EventDryFire, nil)
}
