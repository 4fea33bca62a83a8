package core

import "github.com/1siamBot/audio3d/engine/math3d"

// EntityID is a unique identifier for entities within one world
type EntityID uint64

// Pose is the spatial state an entity exposes to the renderer and the
// audio panner.
type Pose struct {
	Position math3d.Vec3
	Velocity math3d.Vec3
	Forward  math3d.Vec3
	Up       math3d.Vec3
}

// NewPose returns a stationary pose at pos facing the default forward axis
func NewPose(pos math3d.Vec3) Pose {
	return Pose{
		Position: pos,
		Forward:  math3d.Forward,
		Up:       math3d.Up,
	}
}

// Right returns the pose's right axis
func (p Pose) Right() math3d.Vec3 {
	return p.Forward.Cross(p.Up).Normalize()
}
