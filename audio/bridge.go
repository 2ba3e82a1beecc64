package audio

import (
	"github.com/lixenwraith/blockrooms/event"
)

// Subscriber is the subset of event.Bus the bridge needs
type Subscriber interface {
	Subscribe(t event.EventType, h event.Handler)
}

// Bridge maps game events to sound effects
type Bridge struct {
	player Player
}

// NewBridge subscribes player to the audible events on bus
// A nil player yields a bridge that does nothing
func NewBridge(player Player, bus Subscriber) *Bridge {
	b := &Bridge{player: player}
	if player == nil {
		return b
	}

	bus.Subscribe(event.EventShotFired, b.onShot)
	bus.Subscribe(event.EventReloadChanged, b.onReload)
	bus.Subscribe(event.EventDryFire, b.play(SoundDryFire))
	bus.Subscribe(event.EventEnemyHit, b.play(SoundEnemyHit))
	bus.Subscribe(event.EventEnemyKilled, b.play(SoundEnemyDeath))
	bus.Subscribe(event.EventTxFailed, b.play(SoundTxError))
	bus.Subscribe(event.EventTxConfirmed, b.play(SoundTxConfirmed))
	bus.Subscribe(event.EventPickup, b.play(SoundPickup))
	return b
}

func (b *Bridge) play(st SoundType) event.Handler {
	return func(event.GameEvent) {
		b.player.Play(st)
	}
}

func (b *Bridge) onShot(ev event.GameEvent) {
	st := SoundFirePistol
	if p, ok := ev.Payload.(*event.ShotFiredPayload); ok && p.Weapon == "shotgun" {
		st = SoundFireShotgun
	}
	b.player.Play(st)
}

func (b *Bridge) onReload(ev event.GameEvent) {
	p, ok := ev.Payload.(*event.ReloadPayload)
	if !ok || !p.Reloading {
		return
	}
	if p.Variant == event.ReloadLong {
		b.player.Play(SoundReloadLong)
	} else {
		b.player.Play(SoundReloadShort)
	}
}
