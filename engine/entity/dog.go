package entity

import (
	"time"

	"github.com/1siamBot/audio3d/engine/audio"
	"github.com/1siamBot/audio3d/engine/core"
	"github.com/1siamBot/audio3d/engine/math3d"
)

const (
	BarkOn  = 6 * time.Second
	BarkOff = 4 * time.Second
)

// DogPosition is where the dog sits
var DogPosition = math3d.V3(0, 0, -4000)

// LoopingSoundEmitter is the dog: it stays put and switches a looping bark
// on for BarkOn, then off for BarkOff.
type LoopingSoundEmitter struct {
	pose  core.Pose
	delay time.Duration
	bark  audio.Loop
}

func NewLoopingSoundEmitter() *LoopingSoundEmitter {
	return &LoopingSoundEmitter{pose: core.NewPose(DogPosition)}
}

func (d *LoopingSoundEmitter) Pose() core.Pose { return d.pose }

// Barking reports whether the loop is held
func (d *LoopingSoundEmitter) Barking() bool { return d.bark.Active() }

func (d *LoopingSoundEmitter) Update(gt core.GameTime, am audio.Player) {
	d.pose = core.NewPose(DogPosition)

	d.delay -= gt.Elapsed
	if d.delay < 0 {
		if d.bark.Active() {
			d.bark.Release()
			d.delay += BarkOff
		} else {
			d.bark.Start(am, audio.SndDog, d)
			d.delay += BarkOn
		}
	}
}

func (d *LoopingSoundEmitter) Close() error {
	d.bark.Release()
	return nil
}
