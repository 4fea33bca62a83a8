package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// glidePoint is a frequency target reached at a sample offset
type glidePoint struct {
	freq float64
	at   int
}

// glide is a sine oscillator whose frequency moves linearly between points.
// Phase stays continuous across the whole sound.
type glide struct {
	points   []glidePoint
	harmonic float64 // level of the second harmonic
	phase    float64
	position int
	rate     beep.SampleRate
}

func newGlide(rate beep.SampleRate, harmonic float64, points ...glidePoint) *glide {
	return &glide{points: points, harmonic: harmonic, rate: rate}
}

func (g *glide) freqAt(pos int) float64 {
	prev := g.points[0]
	for _, p := range g.points[1:] {
		if pos < p.at {
			t := float64(pos-prev.at) / float64(p.at-prev.at)
			return prev.freq + (p.freq-prev.freq)*t
		}
		prev = p
	}
	return prev.freq
}

func (g *glide) Stream(samples [][2]float64) (n int, ok bool) {
	end := g.points[len(g.points)-1].at
	for i := range samples {
		if g.position >= end {
			return i, i > 0
		}
		val := math.Sin(2 * math.Pi * g.phase)
		if g.harmonic > 0 {
			val = (val + g.harmonic*math.Sin(4*math.Pi*g.phase)) / (1 + g.harmonic)
		}
		samples[i][0] = val
		samples[i][1] = val

		g.phase += g.freqAt(g.position) / float64(g.rate)
		g.phase -= math.Floor(g.phase)
		g.position++
	}
	return len(samples), true
}

func (g *glide) Err() error { return nil }

// noise is seeded white noise so the bank renders identically every run
type noise struct {
	rng *rand.Rand
}

func newNoise(seed uint64) *noise {
	return &noise{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *noise) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		v := s.rng.Float64()*2 - 1
		samples[i][0] = v
		samples[i][1] = v
	}
	return len(samples), true
}

func (s *noise) Err() error { return nil }

// envelope applies linear attack and release to a stream of fixed length
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

func newEnvelope(s beep.Streamer, rate beep.SampleRate, duration, attack, release time.Duration) beep.Streamer {
	return &envelope{
		streamer: s,
		attack:   rate.N(attack),
		release:  rate.N(release),
		total:    rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	if e.position >= e.total {
		return 0, false
	}
	if rem := e.total - e.position; len(samples) > rem {
		samples = samples[:rem]
	}
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		vol := 1.0
		if e.position < e.attack {
			vol = float64(e.position) / float64(e.attack)
		}
		if left := e.total - e.position; left < e.release {
			vol = math.Min(vol, float64(left)/float64(e.release))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	if n > 0 {
		ok = true
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// math.Log2(0) is -Inf, so zero volume becomes silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// meow is a rise-then-fall pitch glide
type meow struct {
	start, peak, end float64
	rise, fall       time.Duration
}

var catMeows = [CatVariants]meow{
	{start: 520, peak: 880, end: 440, rise: 180 * time.Millisecond, fall: 320 * time.Millisecond},
	{start: 600, peak: 1000, end: 480, rise: 150 * time.Millisecond, fall: 350 * time.Millisecond},
	{start: 480, peak: 760, end: 380, rise: 220 * time.Millisecond, fall: 280 * time.Millisecond},
}

// CreateCatSound synthesizes cat sound variant i
func CreateCatSound(rate beep.SampleRate, i int) beep.Streamer {
	m := catMeows[i%CatVariants]
	dur := m.rise + m.fall
	g := newGlide(rate, 0.35,
		glidePoint{freq: m.start, at: 0},
		glidePoint{freq: m.peak, at: rate.N(m.rise)},
		glidePoint{freq: m.end, at: rate.N(dur)},
	)
	shaped := newEnvelope(g, rate, dur, 40*time.Millisecond, 120*time.Millisecond)
	return newVolume(shaped, 0.8)
}

// ToneFrequency is the pitch of the tone test sound
const ToneFrequency = 440.0

// CreateToneSound synthesizes one second of a steady sine. A whole number
// of cycles fits, so it loops without a click.
func CreateToneSound(rate beep.SampleRate) beep.Streamer {
	g := newGlide(rate, 0,
		glidePoint{freq: ToneFrequency, at: 0},
		glidePoint{freq: ToneFrequency, at: rate.N(time.Second)},
	)
	return newVolume(g, 0.5)
}

// CreateDogSound synthesizes a loopable double bark followed by a pause
func CreateDogSound(rate beep.SampleRate) beep.Streamer {
	const barkLen = 160 * time.Millisecond
	bark := func(seed uint64, pitch float64) beep.Streamer {
		tone := newGlide(rate, 0.6,
			glidePoint{freq: pitch, at: 0},
			glidePoint{freq: pitch * 0.6, at: rate.N(barkLen)},
		)
		grit := beep.Take(rate.N(barkLen), newNoise(seed))
		mixed := beep.Mix(newVolume(tone, 0.7), newVolume(grit, 0.25))
		return newEnvelope(mixed, rate, barkLen, 10*time.Millisecond, 80*time.Millisecond)
	}
	return beep.Seq(
		bark(1, 420),
		beep.Silence(rate.N(140*time.Millisecond)),
		bark(2, 380),
		beep.Silence(rate.N(700*time.Millisecond)),
	)
}
