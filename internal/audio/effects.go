package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// Sound cue names, as raised by the simulation.
const (
	CueShoot     = "shoot"
	CueExplosion = "explosion"
	CuePickup    = "pickup"
	CueGameOver  = "gameover"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// tone is a finite oscillator with a linear pitch slide, a linear
// attack and release, and an optional exponential decay.
type tone struct {
	wave     WaveType
	from, to float64 // Hz
	decay    float64 // 1/s, 0 for none

	rate    beep.SampleRate
	total   int
	attack  int
	release int

	pos   int
	phase float64
	noise uint32
}

func newTone(wave WaveType, from, to float64, d, attack, release time.Duration, rate beep.SampleRate) *tone {
	return &tone{
		wave:    wave,
		from:    from,
		to:      to,
		rate:    rate,
		total:   rate.N(d),
		attack:  rate.N(attack),
		release: rate.N(release),
		noise:   0x2545f491,
	}
}

func (o *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.pos >= o.total {
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
			// xorshift32, fixed seed so a cue always sounds the same
			o.noise ^= o.noise << 13
			o.noise ^= o.noise >> 17
			o.noise ^= o.noise << 5
			val = float64(o.noise)/float64(math.MaxUint32)*2 - 1
		}

		val *= o.gain()
		samples[i][0] = val
		samples[i][1] = val

		progress := float64(o.pos) / float64(o.total)
		freq := o.from + (o.to-o.from)*progress
		o.phase += freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.pos++
	}
	return len(samples), true
}

func (o *tone) Err() error { return nil }

// gain is the envelope at the current position, in [0, 1].
func (o *tone) gain() float64 {
	g := 1.0
	if o.attack > 0 && o.pos < o.attack {
		g = float64(o.pos) / float64(o.attack)
	}
	if o.release > 0 {
		if left := o.total - o.pos; left < o.release {
			g = math.Min(g, float64(left)/float64(o.release))
		}
	}
	if o.decay > 0 {
		g *= math.Exp(-o.decay * float64(o.pos) / float64(o.rate))
	}
	return g
}

// newVolume wraps s in a linear volume. math.Log2(0) is -Inf, so zero is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// note is a plain sine tone of fixed length.
func note(rate beep.SampleRate, freq float64, d time.Duration) beep.Streamer {
	sine, err := generators.SineTone(rate, freq)
	if err != nil {
		return beep.Silence(rate.N(d))
	}
	return beep.Take(rate.N(d), sine)
}

// shootSound is a short falling square chirp.
func shootSound(rate beep.SampleRate) beep.Streamer {
	return newVolume(newTone(WaveSquare, 1200, 500, 80*time.Millisecond, 2*time.Millisecond, 50*time.Millisecond, rate), 0.4)
}

// explosionSound is decaying noise over a low rumble.
func explosionSound(rate beep.SampleRate) beep.Streamer {
	noise := newTone(WaveNoise, 0, 0, 400*time.Millisecond, 5*time.Millisecond, 100*time.Millisecond, rate)
	noise.decay = 6
	rumble := newTone(WaveSine, 90, 40, 400*time.Millisecond, 5*time.Millisecond, 150*time.Millisecond, rate)
	return beep.Mix(newVolume(noise, 0.6), newVolume(rumble, 0.4))
}

// pickupSound is a rising two-note chime.
func pickupSound(rate beep.SampleRate) beep.Streamer {
	return newVolume(beep.Seq(
		note(rate, 659.25, 80*time.Millisecond),
		note(rate, 987.77, 120*time.Millisecond),
	), 0.5)
}

// gameOverSound is a falling three-note phrase.
func gameOverSound(rate beep.SampleRate) beep.Streamer {
	d := 200 * time.Millisecond
	return newVolume(beep.Seq(
		newTone(WaveSaw, 440, 440, d, 5*time.Millisecond, 40*time.Millisecond, rate),
		newTone(WaveSaw, 349.23, 349.23, d, 5*time.Millisecond, 40*time.Millisecond, rate),
		newTone(WaveSaw, 261.63, 220, 2*d, 5*time.Millisecond, 150*time.Millisecond, rate),
	), 0.5)
}

// Sound returns a fresh streamer for a cue at the given volume, or nil
// for an unknown cue.
func Sound(cue string, rate beep.SampleRate, volume float64) beep.Streamer {
	var s beep.Streamer
	switch cue {
	case CueShoot:
		s = shootSound(rate)
	case CueExplosion:
		s = explosionSound(rate)
	case CuePickup:
		s = pickupSound(rate)
	case CueGameOver:
		s = gameOverSound(rate)
	default:
		return nil
	}
	return newVolume(s, volume)
}
