package entity

import (
	"github.com/1siamBot/audio3d/engine/core"
	"github.com/1siamBot/audio3d/engine/math3d"
)

// Listener is the first-person camera the audio is heard from
type Listener struct {
	Position math3d.Vec3
	Yaw      float64 // radians, counter-clockwise seen from above; 0 faces -Z
	velocity math3d.Vec3
	last     math3d.Vec3
}

func NewListener(pos math3d.Vec3) *Listener {
	return &Listener{Position: pos, last: pos}
}

// Forward returns the horizontal facing direction
func (l *Listener) Forward() math3d.Vec3 {
	return math3d.Mat4RotateY(l.Yaw).TransformDir(math3d.Forward)
}

// Turn rotates the listener; positive turns left
func (l *Listener) Turn(radians float64) {
	l.Yaw += radians
}

// Move walks along the facing direction; negative walks backwards
func (l *Listener) Move(dist float64) {
	l.Position = l.Position.Add(l.Forward().Scale(dist))
}

// Settle records movement since the previous call as the velocity
func (l *Listener) Settle() {
	l.velocity = l.Position.Sub(l.last)
	l.last = l.Position
}

// World returns the listener's object-to-world matrix
func (l *Listener) World() math3d.Mat4 {
	p := l.Position
	return math3d.Mat4Translate(p.X, p.Y, p.Z).Mul(math3d.Mat4RotateY(l.Yaw))
}

func (l *Listener) Pose() core.Pose {
	return core.Pose{
		Position: l.Position,
		Velocity: l.velocity,
		Forward:  l.Forward(),
		Up:       math3d.Up,
	}
}
