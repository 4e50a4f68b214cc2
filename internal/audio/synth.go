// Package audio synthesizes the game's sound effects procedurally with
// beep streamers. No sample assets are involved: shots and hurt cues are
// oscillator sweeps, explosions are filtered noise bursts.
package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType defines oscillator wave shapes.
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// sweepOscillator generates a waveform whose frequency glides linearly
// from startFreq to endFreq over the configured duration.
type sweepOscillator struct {
	startFreq float64
	endFreq   float64
	phase     float64
	duration  int
	position  int
	wave      WaveType
	rate      beep.SampleRate
}

// NewSweep creates an oscillator sweeping from startFreq to endFreq.
// Equal frequencies produce a constant tone.
func NewSweep(startFreq, endFreq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &sweepOscillator{
		startFreq: startFreq,
		endFreq:   endFreq,
		duration:  rate.N(duration),
		wave:      wave,
		rate:      rate,
	}
}

func (o *sweepOscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
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

		t := float64(o.position) / float64(o.duration)
		freq := o.startFreq + (o.endFreq-o.startFreq)*t
		o.phase += freq / float64(o.rate)
		o.phase = o.phase - math.Floor(o.phase) // Keep in [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *sweepOscillator) Err() error { return nil }

// envelope applies linear attack/release shaping to a stream.
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

// NewEnvelope shapes a streamer with a linear attack and release.
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:       s,
		attackSamples:  rate.N(attack),
		releaseSamples: rate.N(release),
		totalSamples:   rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.totalSamples - e.releaseSamples
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

// expDecay applies an exponential volume decay, the classic explosion tail.
type expDecay struct {
	streamer beep.Streamer
	position int
	total    int
	k        float64 // Decay constant; gain = exp(-k * t)
}

// NewExpDecay wraps a streamer with an exponential decay over duration.
// At the end of the duration the gain has fallen to roughly exp(-k).
func NewExpDecay(s beep.Streamer, duration time.Duration, k float64, rate beep.SampleRate) beep.Streamer {
	return &expDecay{
		streamer: s,
		total:    rate.N(duration),
		k:        k,
	}
}

func (d *expDecay) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = d.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if d.position >= d.total {
			return i, i > 0
		}
		gain := math.Exp(-d.k * float64(d.position) / float64(d.total))
		samples[i][0] *= gain
		samples[i][1] *= gain
		d.position++
	}

	return n, ok
}

func (d *expDecay) Err() error { return d.streamer.Err() }

// lowPass is a one-pole low-pass filter. beep's effects package has no
// filter primitive, so this follows the same custom-streamer pattern as
// the oscillator above.
type lowPass struct {
	streamer beep.Streamer
	alpha    float64
	prevL    float64
	prevR    float64
}

// NewLowPass filters a streamer with the given cutoff frequency.
func NewLowPass(s beep.Streamer, cutoff float64, rate beep.SampleRate) beep.Streamer {
	rc := 1.0 / (2 * math.Pi * cutoff)
	dt := 1.0 / float64(rate)
	return &lowPass{
		streamer: s,
		alpha:    dt / (rc + dt),
	}
}

func (f *lowPass) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = f.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		f.prevL += f.alpha * (samples[i][0] - f.prevL)
		f.prevR += f.alpha * (samples[i][1] - f.prevR)
		samples[i][0] = f.prevL
		samples[i][1] = f.prevR
	}

	return n, ok
}

func (f *lowPass) Err() error { return f.streamer.Err() }

// newVolume wraps a streamer with a gain effect.
// math.Log2(0) is -Inf, so zero volume switches to silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// Sound effect constructors. All return short finite streamers at unity
// pitch references chosen by ear.

// NewShotSound is a quick descending square blip.
func NewShotSound(rate beep.SampleRate) beep.Streamer {
	const dur = 90 * time.Millisecond
	osc := NewSweep(880, 220, dur, WaveSquare, rate)
	shaped := NewEnvelope(osc, dur, 2*time.Millisecond, 40*time.Millisecond, rate)
	return newVolume(shaped, 0.35)
}

// NewHurtSound is a low descending saw groan.
func NewHurtSound(rate beep.SampleRate) beep.Streamer {
	const dur = 250 * time.Millisecond
	osc := NewSweep(220, 70, dur, WaveSaw, rate)
	shaped := NewEnvelope(osc, dur, 5*time.Millisecond, 120*time.Millisecond, rate)
	return newVolume(shaped, 0.5)
}

// NewExplosionSound is a low-passed noise burst with an exponential tail.
func NewExplosionSound(rate beep.SampleRate) beep.Streamer {
	const dur = 400 * time.Millisecond
	noise := NewSweep(0, 0, dur, WaveNoise, rate)
	filtered := NewLowPass(noise, 900, rate)
	decayed := NewExpDecay(filtered, dur, 6, rate)
	return newVolume(decayed, 0.6)
}
