package entity

import (
	"math"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/1siamBot/audio3d/engine/audio"
	"github.com/1siamBot/audio3d/engine/core"
	"github.com/1siamBot/audio3d/engine/math3d"
)

const tick = 50 * time.Millisecond

// opLog records plays and stops in order
type opLog struct {
	ops []string
}

type opHandle struct {
	log  *opLog
	name string
}

func (h *opHandle) Stop() { h.log.ops = append(h.log.ops, "stop "+h.name) }

func (l *opLog) Play3DSound(name string, looped bool, _ audio.Emitter) audio.Handle {
	op := "play "
	if looped {
		op = "loop "
	}
	l.ops = append(l.ops, op+name)
	return &opHandle{log: l, name: name}
}

func (l *opLog) count(op string) int {
	n := 0
	for _, o := range l.ops {
		if o == op {
			n++
		}
	}
	return n
}

func newCat() *MovingSoundEmitter {
	return NewMovingSoundEmitter(core.NewPose(math3d.V3(-CircleRadius, 0, 0)), rand.New(rand.NewPCG(1, 2)))
}

func at(total time.Duration) core.GameTime {
	return core.GameTime{Total: total, Elapsed: tick}
}

func TestCatStartsOnCircle(t *testing.T) {
	c := newCat()
	c.Update(core.GameTime{}, &audio.Journal{})

	p := c.Pose()
	if !p.Position.ApproxEqual(math3d.V3(-6000, 0, 0), 1e-9) {
		t.Errorf("Position at t=0 = %+v, want (-6000, 0, 0)", p.Position)
	}
	if !p.Velocity.IsZero() {
		t.Errorf("Velocity = %+v, want zero", p.Velocity)
	}
	if p.Forward != math3d.Forward {
		t.Errorf("Forward with zero velocity = %+v, want %+v", p.Forward, math3d.Forward)
	}
	if p.Up != math3d.Up {
		t.Errorf("Up = %+v, want %+v", p.Up, math3d.Up)
	}
}

func TestCatStaysOnRadius(t *testing.T) {
	c := newCat()
	j := &audio.Journal{}
	for i := 1; i <= 500; i++ {
		c.Update(at(time.Duration(i)*tick), j)
		p := c.Pose()
		if math.Abs(p.Position.Len()-CircleRadius) > 1e-6 {
			t.Fatalf("Tick %d: |position| = %f, want %f", i, p.Position.Len(), CircleRadius)
		}
		if p.Position.Y != 0 {
			t.Fatalf("Tick %d: left the horizontal plane, y = %f", i, p.Position.Y)
		}
		if math.IsNaN(p.Forward.X) || math.Abs(p.Forward.Len()-1) > 1e-9 {
			t.Fatalf("Tick %d: bad forward %+v", i, p.Forward)
		}
	}
}

func TestCatVelocityIsPositionDelta(t *testing.T) {
	c := newCat()
	j := &audio.Journal{}
	c.Update(at(time.Second), j)
	before := c.Pose().Position
	c.Update(at(time.Second+tick), j)
	p := c.Pose()

	if want := p.Position.Sub(before); !p.Velocity.ApproxEqual(want, 1e-9) {
		t.Errorf("Velocity = %+v, want %+v", p.Velocity, want)
	}
	if want := p.Velocity.Normalize(); !p.Forward.ApproxEqual(want, 1e-9) {
		t.Errorf("Forward = %+v, want %+v", p.Forward, want)
	}
}

func TestCatZeroVelocityKeepsDefaultForward(t *testing.T) {
	c := newCat()
	j := &audio.Journal{}
	c.Update(at(2*time.Second), j)
	// Same time again: no movement.
	c.Update(at(2*time.Second), j)
	p := c.Pose()
	if !p.Velocity.IsZero() {
		t.Fatalf("Velocity = %+v, want zero", p.Velocity)
	}
	if p.Forward != math3d.Forward {
		t.Errorf("Forward = %+v, want %+v", p.Forward, math3d.Forward)
	}
}

func TestCatToneTestTriplesSpeed(t *testing.T) {
	c := newCat()
	c.SetToneTest(true)
	secs := math.Pi / 6
	quarter := time.Duration(secs * float64(time.Second))
	c.Update(at(quarter), &audio.Journal{})

	if got := c.Pose().Position; !got.ApproxEqual(math3d.V3(0, 0, -6000), 1e-3) {
		t.Errorf("Position at pi/6 s with tone test = %+v, want (0, 0, -6000)", got)
	}
}

func TestCatRelativeVelocityOverride(t *testing.T) {
	c := newCat()
	c.SetRelativeVelocityTest(true)
	ref := math3d.V3(100, 50, 100)
	c.SetReference(ref, math3d.Mat4World(math3d.V3(9999, 9999, 9999), math3d.Right, math3d.Up))
	c.Update(at(3*time.Second), &audio.Journal{})

	// 6000 units ahead of a frame facing +X; the frame's own translation
	// is ignored.
	if got := c.Pose().Position; !got.ApproxEqual(math3d.V3(6100, 50, 100), 1e-9) {
		t.Errorf("Position = %+v, want (6100, 50, 100)", got)
	}

	c.SetRelativeVelocityTest(false)
	c.Update(at(3*time.Second+tick), &audio.Journal{})
	if r := c.Pose().Position.Len(); math.Abs(r-CircleRadius) > 1e-6 {
		t.Errorf("Back on the circle expected, |position| = %f", r)
	}
}

func TestCatTriggerPeriod(t *testing.T) {
	c := newCat()
	j := &audio.Journal{}
	// 10 seconds of 50ms ticks.
	for i := 1; i <= 200; i++ {
		c.Update(at(time.Duration(i)*tick), j)
	}
	if got := len(j.Entries); got != 8 {
		t.Errorf("Triggers in 10s = %d, want 8", got)
	}
	for _, e := range j.Entries {
		if e.Looped {
			t.Errorf("Meow %s should be a one-shot", e.Name)
		}
	}
}

func TestCatTriggerCarriesRemainder(t *testing.T) {
	c := newCat()
	c.Update(at(tick), &audio.Journal{})
	// The first tick overshoots zero by 50ms; re-arming adds, not resets.
	if want := MeowInterval - tick; c.delay != want {
		t.Errorf("Delay after first trigger = %v, want %v", c.delay, want)
	}
}

func TestCatTriggerRateUnderJitter(t *testing.T) {
	c := newCat()
	j := &audio.Journal{}
	jitter := rand.New(rand.NewPCG(7, 7))
	var total time.Duration
	for total < 100*time.Second {
		dt := time.Duration(10+jitter.IntN(31)) * time.Millisecond
		total += dt
		c.Update(core.GameTime{Total: total, Elapsed: dt}, j)
	}
	// One trigger per started interval: ceil(total / 1.25s).
	want := int((total + MeowInterval - 1) / MeowInterval)
	if got := len(j.Entries); got != want {
		t.Errorf("Triggers over %v = %d, want %d", total, got, want)
	}
}

func TestCatVariantsUniform(t *testing.T) {
	c := newCat()
	j := &audio.Journal{}
	for i := 0; i < 1000; i++ {
		c.delay = 0
		c.Update(at(time.Duration(i)*tick), j)
	}
	if len(j.Entries) != 1000 {
		t.Fatalf("Expected 1000 triggers, got %d", len(j.Entries))
	}
	for v := 0; v < audio.CatVariants; v++ {
		n := j.Count(audio.CatSound(v))
		if n < 280 || n > 390 {
			t.Errorf("%s chosen %d times out of 1000", audio.CatSound(v), n)
		}
	}
}

func TestCatSeededSelectionRepeats(t *testing.T) {
	run := func() []string {
		c := newCat()
		j := &audio.Journal{}
		for i := 1; i <= 100; i++ {
			c.Update(at(time.Duration(i)*tick), j)
		}
		var names []string
		for _, e := range j.Entries {
			names = append(names, e.Name)
		}
		return names
	}
	a, b := run(), run()
	if len(a) != len(b) {
		t.Fatalf("Runs differ in length: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("Trigger %d: %s vs %s", i, a[i], b[i])
		}
	}
}

func TestCatToneToggleStartsAndStopsOnce(t *testing.T) {
	c := newCat()
	l := &opLog{}
	for i, on := range []bool{false, true, false} {
		c.SetToneTest(on)
		c.Update(at(time.Duration(i+1)*tick), l)
	}

	var toneOps []string
	for _, op := range l.ops {
		if op == "loop "+audio.SndTone || op == "stop "+audio.SndTone {
			toneOps = append(toneOps, op)
		}
	}
	want := []string{"loop " + audio.SndTone, "stop " + audio.SndTone}
	if len(toneOps) != len(want) {
		t.Fatalf("Tone ops = %v, want %v", toneOps, want)
	}
	for i := range want {
		if toneOps[i] != want[i] {
			t.Errorf("Tone op %d = %q, want %q", i, toneOps[i], want[i])
		}
	}
}

func TestCatToneHandleMatchesFlag(t *testing.T) {
	c := newCat()
	j := &audio.Journal{}
	flips := rand.New(rand.NewPCG(3, 4))
	for i := 1; i <= 300; i++ {
		if flips.IntN(5) == 0 {
			c.SetToneTest(!c.ToneTest())
		}
		c.Update(at(time.Duration(i)*tick), j)
		if c.ToneActive() != c.ToneTest() {
			t.Fatalf("Tick %d: tone held = %t, flag = %t", i, c.ToneActive(), c.ToneTest())
		}
		live := len(j.Live())
		if (live == 1) != c.ToneTest() || live > 1 {
			t.Fatalf("Tick %d: %d live loops with flag %t", i, live, c.ToneTest())
		}
	}
}

func TestCatCloseReleasesTone(t *testing.T) {
	c := newCat()
	l := &opLog{}
	c.SetToneTest(true)
	c.Update(at(tick), l)
	if err := c.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if c.ToneActive() {
		t.Error("Tone still held after Close")
	}
	if l.count("stop "+audio.SndTone) != 1 {
		t.Errorf("Expected one tone stop, ops = %v", l.ops)
	}
}
