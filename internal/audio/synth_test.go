package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
)

const testRate = beep.SampleRate(44100)

// drainStreamer pulls a finite streamer dry and returns every sample.
func drainStreamer(t *testing.T, s beep.Streamer) [][2]float64 {
	t.Helper()
	var out [][2]float64
	buf := make([][2]float64, 512)
	for i := 0; ; i++ {
		if i > 10000 {
			t.Fatal("streamer did not terminate")
		}
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			return out
		}
	}
}

// constantOne streams 1.0 forever; wrappers are expected to bound it.
type constantOne struct{}

func (constantOne) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		samples[i][0] = 1
		samples[i][1] = 1
	}
	return len(samples), true
}

func (constantOne) Err() error { return nil }

func TestSweepDurationAndAmplitude(t *testing.T) {
	const dur = 50 * time.Millisecond
	for _, wave := range []WaveType{WaveSine, WaveSquare, WaveSaw, WaveNoise} {
		s := NewSweep(880, 220, dur, wave, testRate)
		samples := drainStreamer(t, s)

		if want := testRate.N(dur); len(samples) != want {
			t.Errorf("wave %d: streamed %d samples, want %d", wave, len(samples), want)
		}
		for i, sm := range samples {
			if math.Abs(sm[0]) > 1 || math.Abs(sm[1]) > 1 {
				t.Fatalf("wave %d: sample %d = %v exceeds unit amplitude", wave, i, sm)
			}
		}
	}
}

func TestSweepGlidesDownward(t *testing.T) {
	// A descending sine sweep: zero crossings get sparser toward the end.
	const dur = 200 * time.Millisecond
	samples := drainStreamer(t, NewSweep(880, 110, dur, WaveSine, testRate))

	crossings := func(from, to int) int {
		n := 0
		for i := from + 1; i < to; i++ {
			if (samples[i-1][0] >= 0) != (samples[i][0] >= 0) {
				n++
			}
		}
		return n
	}

	half := len(samples) / 2
	first, second := crossings(0, half), crossings(half, len(samples))
	if second >= first {
		t.Errorf("zero crossings did not fall: first half %d, second half %d", first, second)
	}
}

func TestEnvelopeShapesAttackAndRelease(t *testing.T) {
	const dur = 100 * time.Millisecond
	env := NewEnvelope(constantOne{}, dur, 10*time.Millisecond, 50*time.Millisecond, testRate)
	samples := drainStreamer(t, env)

	if want := testRate.N(dur); len(samples) != want {
		t.Fatalf("streamed %d samples, want %d", len(samples), want)
	}
	if samples[0][0] != 0 {
		t.Errorf("attack must start from silence, got %.4f", samples[0][0])
	}

	// Plateau between attack and release sits at unity
	mid := testRate.N(30 * time.Millisecond)
	if samples[mid][0] != 1 {
		t.Errorf("plateau sample = %.4f, want 1", samples[mid][0])
	}

	last := samples[len(samples)-1][0]
	if last > 0.001 {
		t.Errorf("release ends at %.4f, want near silence", last)
	}
}

func TestExpDecayFallsMonotonically(t *testing.T) {
	const dur = 100 * time.Millisecond
	const k = 6.0
	samples := drainStreamer(t, NewExpDecay(constantOne{}, dur, k, testRate))

	if want := testRate.N(dur); len(samples) != want {
		t.Fatalf("streamed %d samples, want %d", len(samples), want)
	}
	for i := 1; i < len(samples); i++ {
		if samples[i][0] > samples[i-1][0] {
			t.Fatalf("gain rose at sample %d: %.6f -> %.6f", i, samples[i-1][0], samples[i][0])
		}
	}

	want := math.Exp(-k * float64(len(samples)-1) / float64(len(samples)))
	if got := samples[len(samples)-1][0]; math.Abs(got-want) > 1e-9 {
		t.Errorf("final gain %.6f, want %.6f", got, want)
	}
}

func TestLowPassStepResponse(t *testing.T) {
	f := NewLowPass(constantOne{}, 900, testRate)
	buf := make([][2]float64, 256)
	n, ok := f.Stream(buf)
	if n != len(buf) || !ok {
		t.Fatalf("Stream = (%d, %v)", n, ok)
	}

	// A step into a one-pole filter rises monotonically toward the input.
	prev := 0.0
	for i, sm := range buf {
		if sm[0] <= prev || sm[0] >= 1 {
			t.Fatalf("sample %d = %.6f, want monotonic rise within (%.6f, 1)", i, sm[0], prev)
		}
		prev = sm[0]
	}
}

func TestSoundEffectsAreFiniteAndBounded(t *testing.T) {
	cases := []struct {
		name  string
		s     beep.Streamer
		maxMS int
	}{
		{"shot", NewShotSound(testRate), 90},
		{"hurt", NewHurtSound(testRate), 250},
		{"explosion", NewExplosionSound(testRate), 400},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			samples := drainStreamer(t, tc.s)
			if max := testRate.N(time.Duration(tc.maxMS) * time.Millisecond); len(samples) > max {
				t.Errorf("streamed %d samples, want at most %d", len(samples), max)
			}
			if len(samples) == 0 {
				t.Fatal("effect produced no samples")
			}
			for i, sm := range samples {
				if math.Abs(sm[0]) > 1 || math.Abs(sm[1]) > 1 {
					t.Fatalf("sample %d = %v exceeds unit amplitude", i, sm)
				}
			}
		})
	}
}

func TestMutedPlayerIsSilentNoOp(t *testing.T) {
	p := NewPlayer(true)

	// Must not touch the audio device
	p.PlayShot()
	p.PlayExplosion()
	p.PlayHurt()
	p.Close()

	// Triggers after close stay safe
	p.PlayShot()
}
