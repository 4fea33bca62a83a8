package audio

import (
	"fmt"

	"github.com/1siamBot/audio3d/engine/core"
)

// Sound names known to the bank
const (
	SndTone = "ToneSound"
	SndDog  = "DogSound"
)

// CatVariants is the number of interchangeable cat sounds
const CatVariants = 3

// CatSound returns the name of cat sound variant i
func CatSound(i int) string {
	return fmt.Sprintf("CatSound%d", i)
}

// Emitter is anything a 3D sound can be anchored to
type Emitter interface {
	Pose() core.Pose
}

// Handle controls a playing sound
type Handle interface {
	Stop()
}

// Player plays sounds positioned at an emitter. Looped sounds repeat until
// their handle is stopped; one-shots stop on their own.
type Player interface {
	Play3DSound(name string, looped bool, emitter Emitter) Handle
}

// Loop owns at most one looping playback. Its presence is the only record
// of whether the loop is running.
type Loop struct {
	handle Handle
}

// Active reports whether a looping sound is held
func (l *Loop) Active() bool {
	return l.handle != nil
}

// Start plays name looped at e unless a loop is already held
func (l *Loop) Start(p Player, name string, e Emitter) {
	if l.handle != nil {
		return
	}
	l.handle = p.Play3DSound(name, true, e)
}

// Release stops the held sound, if any
func (l *Loop) Release() {
	if l.handle == nil {
		return
	}
	l.handle.Stop()
	l.handle = nil
}

// Sync starts or releases the loop so that Active matches want
func (l *Loop) Sync(want bool, p Player, name string, e Emitter) {
	if want {
		l.Start(p, name, e)
	} else {
		l.Release()
	}
}
