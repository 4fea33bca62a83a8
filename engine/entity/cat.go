package entity

import (
	"math"
	"time"

	"github.com/1siamBot/audio3d/engine/audio"
	"github.com/1siamBot/audio3d/engine/core"
	"github.com/1siamBot/audio3d/engine/math3d"
)

const (
	// CircleRadius is the radius of the cat's path
	CircleRadius = 6000.0
	// ToneTestSpeedup scales angular speed while the tone test runs
	ToneTestSpeedup = 3.0
	// MeowInterval separates consecutive one-shot sounds
	MeowInterval = 1250 * time.Millisecond
)

// Rand picks sound variants. *math/rand/v2.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

// MovingSoundEmitter is the cat: it circles the origin and meows every
// MeowInterval, choosing between three variants at random. Two test modes
// can be toggled independently: the tone test plays a looping tone and
// triples the speed, the relative velocity test pins the cat in front of a
// reference frame (normally the listener camera).
type MovingSoundEmitter struct {
	pose  core.Pose
	delay time.Duration // until the next meow; may go negative
	rng   Rand

	toneTest bool
	tone     audio.Loop

	relativeVelocityTest bool
	referencePosition    math3d.Vec3
	referenceTransform   math3d.Mat4
}

// NewMovingSoundEmitter creates a cat at the given start pose
func NewMovingSoundEmitter(start core.Pose, rng Rand) *MovingSoundEmitter {
	return &MovingSoundEmitter{
		pose:               start,
		rng:                rng,
		referenceTransform: math3d.Mat4Identity(),
	}
}

func (c *MovingSoundEmitter) Pose() core.Pose { return c.pose }

func (c *MovingSoundEmitter) ToneTest() bool             { return c.toneTest }
func (c *MovingSoundEmitter) SetToneTest(on bool)        { c.toneTest = on }
func (c *MovingSoundEmitter) RelativeVelocityTest() bool { return c.relativeVelocityTest }

func (c *MovingSoundEmitter) SetRelativeVelocityTest(on bool) {
	c.relativeVelocityTest = on
}

// SetReference sets the frame the relative velocity test follows
func (c *MovingSoundEmitter) SetReference(position math3d.Vec3, transform math3d.Mat4) {
	c.referencePosition = position
	c.referenceTransform = transform
}

// ToneActive reports whether the looping tone is held
func (c *MovingSoundEmitter) ToneActive() bool { return c.tone.Active() }

// Update moves the cat and plays its sounds
func (c *MovingSoundEmitter) Update(gt core.GameTime, am audio.Player) {
	c.move(gt.Total)

	c.delay -= gt.Elapsed
	if c.delay < 0 {
		am.Play3DSound(audio.CatSound(c.rng.IntN(audio.CatVariants)), false, c)
		c.delay += MeowInterval
	}

	c.tone.Sync(c.toneTest, am, audio.SndTone, c)
}

func (c *MovingSoundEmitter) move(total time.Duration) {
	angle := total.Seconds()
	if c.toneTest {
		angle *= ToneTestSpeedup
	}

	pos := math3d.V3(-math.Cos(angle), 0, -math.Sin(angle)).Scale(CircleRadius)
	if c.relativeVelocityTest {
		ahead := c.referenceTransform.TransformDir(math3d.V3(0, 0, -CircleRadius))
		pos = c.referencePosition.Add(ahead)
	}

	c.pose.Velocity = pos.Sub(c.pose.Position)
	c.pose.Position = pos
	if c.pose.Velocity.IsZero() {
		c.pose.Forward = math3d.Forward
	} else {
		c.pose.Forward = c.pose.Velocity.Normalize()
	}
	c.pose.Up = math3d.Up
}

// Close stops the tone if it is still playing
func (c *MovingSoundEmitter) Close() error {
	c.tone.Release()
	return nil
}
