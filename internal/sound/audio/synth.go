package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/vovakirdan/rolling-stone/internal/sound"
)

type wave int

const (
	waveSine wave = iota
	waveSquare
	waveNoise
)

// tone is an oscillator with a linear frequency sweep and a linear release.
type tone struct {
	from, to float64 // Hz
	wave     wave
	rate     beep.SampleRate
	total    int
	pos      int
	phase    float64
	rng      *rand.Rand
}

func newTone(from, to float64, d time.Duration, w wave, rate beep.SampleRate) *tone {
	return &tone{
		from:  from,
		to:    to,
		wave:  w,
		rate:  rate,
		total: rate.N(d),
		rng:   rand.New(rand.NewSource(int64(from))),
	}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.pos >= t.total {
			return i, i > 0
		}
		progress := float64(t.pos) / float64(t.total)
		freq := t.from + (t.to-t.from)*progress

		var v float64
		switch t.wave {
		case waveSine:
			v = math.Sin(2 * math.Pi * t.phase)
		case waveSquare:
			if t.phase < 0.5 {
				v = 0.6
			} else {
				v = -0.6
			}
		case waveNoise:
			v = t.rng.Float64()*2 - 1
		}
		v *= 1 - progress

		samples[i][0] = v
		samples[i][1] = v

		t.phase += freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.pos++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// Synth builds the streamer for an effect at the given volume (0..1).
func Synth(e sound.Effect, rate beep.SampleRate, volume float64) beep.Streamer {
	var s beep.Streamer
	switch e {
	case sound.EffectClick:
		s = newTone(1200, 1200, 30*time.Millisecond, waveSquare, rate)
	case sound.EffectJump:
		s = newTone(300, 700, 150*time.Millisecond, waveSine, rate)
	case sound.EffectHit:
		s = newTone(180, 60, 250*time.Millisecond, waveNoise, rate)
	case sound.EffectGameOver:
		s = beep.Seq(
			newTone(440, 440, 180*time.Millisecond, waveSquare, rate),
			newTone(330, 330, 180*time.Millisecond, waveSquare, rate),
			newTone(220, 110, 400*time.Millisecond, waveSquare, rate),
		)
	case sound.EffectComplete:
		s = beep.Seq(
			newTone(523, 523, 120*time.Millisecond, waveSine, rate),
			newTone(659, 659, 120*time.Millisecond, waveSine, rate),
			newTone(784, 784, 300*time.Millisecond, waveSine, rate),
		)
	default:
		return beep.Silence(0)
	}
	return withVolume(s, volume)
}

// math.Log2(0) is -Inf, so zero volume is expressed as Silent.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
