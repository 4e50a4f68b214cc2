package audio

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// sampleRate is the shared output sample rate.
const sampleRate = beep.SampleRate(44100)

// Player triggers the game's sound effects. The speaker is initialized
// lazily on the first trigger; when no audio device is available the
// player degrades to silent no-ops without surfacing an error.
// Triggers are fire-and-forget and never block the frame loop.
type Player struct {
	initOnce sync.Once
	inited   atomic.Bool
	disabled atomic.Bool
	closed   atomic.Bool
}

// NewPlayer creates a sound player. A muted player skips speaker
// initialization entirely.
func NewPlayer(muted bool) *Player {
	p := &Player{}
	if muted {
		p.disabled.Store(true)
	}
	return p
}

// ensureSpeaker initializes the shared speaker once. Failure flips the
// disabled flag; gameplay proceeds unaffected.
func (p *Player) ensureSpeaker() bool {
	if p.disabled.Load() || p.closed.Load() {
		return false
	}
	p.initOnce.Do(func() {
		if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
			p.disabled.Store(true)
			return
		}
		p.inited.Store(true)
	})
	return !p.disabled.Load()
}

func (p *Player) play(s beep.Streamer) {
	if !p.ensureSpeaker() {
		return
	}
	speaker.Play(s)
}

// PlayShot triggers the shot blip.
func (p *Player) PlayShot() {
	p.play(NewShotSound(sampleRate))
}

// PlayExplosion triggers the enemy explosion burst.
func (p *Player) PlayExplosion() {
	p.play(NewExplosionSound(sampleRate))
}

// PlayHurt triggers the player damage cue.
func (p *Player) PlayHurt() {
	p.play(NewHurtSound(sampleRate))
}

// Close releases the audio device. Triggers after Close are no-ops.
func (p *Player) Close() {
	if p.closed.Swap(true) {
		return
	}
	if p.inited.Load() {
		speaker.Close()
	}
}
