package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/blockrooms/parameter"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates raw audio waves
type oscillator struct {
	freq     float64
	sweep    float64 // Hz per second, negative for a falling pitch
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a fixed-pitch oscillator
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewSweep(freq, 0, duration, wave, rate)
}

// NewSweep creates an oscillator whose pitch changes linearly by sweep Hz/s
func NewSweep(freq, sweep float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		sweep:    sweep,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, false
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		freq := o.freq + o.sweep*float64(o.position)/float64(o.rate)
		if freq < 0 {
			freq = 0
		}
		o.phase += freq / float64(o.rate)
		o.phase = o.phase - math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// NewEnvelope creates a linear attack/release envelope
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	sus := total - att - rel
	if sus < 0 {
		sus = 0
	}

	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: sus,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, false
		}

		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.attackSamples + e.sustainSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = float64(e.totalSamples-e.position) / float64(e.releaseSamples)
			if vol < 0 {
				vol = 0
			}
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps s with a linear gain; zero is silent since log2(0) is -Inf
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

func tone(freq float64, d time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewEnvelope(NewOscillator(freq, d, wave, rate), d, parameter.SoundDefaultAttack, parameter.SoundDefaultRelease, rate)
}

func silence(d time.Duration, rate beep.SampleRate) beep.Streamer {
	return beep.Silence(rate.N(d))
}

// Sound effect generators, unity gain

func createFire(rate beep.SampleRate, d, attack, release time.Duration, thumpHz float64) beep.Streamer {
	crack := NewEnvelope(NewOscillator(0, d, WaveNoise, rate), d, attack, release, rate)
	thump := NewEnvelope(NewSweep(thumpHz, -thumpHz*3, d, WaveSine, rate), d, attack, release, rate)
	return beep.Mix(newVolume(crack, 0.6), newVolume(thump, 0.5))
}

func createReload(rate beep.SampleRate, long bool) beep.Streamer {
	click := func(freq float64) beep.Streamer {
		d := parameter.ReloadClickDuration
		return NewEnvelope(NewOscillator(freq, d, WaveSquare, rate), d, time.Millisecond, d/2, rate)
	}
	parts := []beep.Streamer{click(1800), silence(parameter.ReloadClickGap, rate), click(1400)}
	if long {
		d := parameter.ReloadRackDuration
		rack := NewEnvelope(NewSweep(900, -2400, d, WaveSaw, rate), d, time.Millisecond, d/2, rate)
		parts = append(parts, silence(parameter.ReloadClickGap, rate), newVolume(rack, 0.6))
	}
	return beep.Seq(parts...)
}

func createEnemyDeath(rate beep.SampleRate) beep.Streamer {
	d := parameter.EnemyDeathDuration
	groan := NewEnvelope(NewSweep(220, -280, d, WaveSaw, rate), d, 10*time.Millisecond, d/2, rate)
	rumble := NewEnvelope(NewOscillator(0, d, WaveNoise, rate), d, 10*time.Millisecond, d*3/4, rate)
	return beep.Mix(newVolume(groan, 0.6), newVolume(rumble, 0.3))
}

func createPickup(rate beep.SampleRate) beep.Streamer {
	// B5 then E6
	return beep.Seq(
		tone(987.77, parameter.PickupNote1Duration, WaveSquare, rate),
		tone(1318.51, parameter.PickupNote2Duration, WaveSquare, rate),
	)
}

// GetSoundEffect returns a fresh streamer for soundType at the configured volume
// Returns nil for an unknown type
func GetSoundEffect(soundType SoundType, cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	var s beep.Streamer
	switch soundType {
	case SoundFirePistol:
		s = createFire(rate, parameter.FirePistolDuration, parameter.FirePistolAttack, parameter.FirePistolRelease, 180)
	case SoundFireShotgun:
		s = createFire(rate, parameter.FireShotgunDuration, parameter.FireShotgunAttack, parameter.FireShotgunRelease, 90)
	case SoundReloadShort:
		s = createReload(rate, false)
	case SoundReloadLong:
		s = createReload(rate, true)
	case SoundDryFire:
		d := parameter.DryFireDuration
		s = NewEnvelope(NewOscillator(2400, d, WaveSquare, rate), d, time.Millisecond, d/2, rate)
	case SoundEnemyHit:
		d := parameter.EnemyHitDuration
		s = NewEnvelope(NewSweep(320, -900, d, WaveSquare, rate), d, 2*time.Millisecond, d/2, rate)
	case SoundEnemyDeath:
		s = createEnemyDeath(rate)
	case SoundTxError:
		s = tone(100, parameter.TxErrorDuration, WaveSaw, rate)
	case SoundTxConfirmed:
		s = tone(880, parameter.TxConfirmedDuration, WaveSine, rate)
	case SoundPickup:
		s = createPickup(rate)
	default:
		return nil
	}

	return newVolume(s, cfg.EffectVolumes[soundType]*cfg.MasterVolume)
}
