package systems

import (
	"github.com/1siamBot/audio3d/engine/audio"
	"github.com/1siamBot/audio3d/engine/core"
	"github.com/1siamBot/audio3d/engine/math3d"
	"github.com/1siamBot/audio3d/engine/scene"
)

// ReferenceFollower is an entity that can be placed relative to a frame
type ReferenceFollower interface {
	SetReference(position math3d.Vec3, transform math3d.Mat4)
}

// Framed is a listener that knows its own object-to-world matrix
type Framed interface {
	World() math3d.Mat4
}

// ReferenceSystem hands the listener's frame to every follower before
// entities update. Listeners that are not Framed get one built from their pose.
type ReferenceSystem struct {
	Listener audio.Emitter
}

func (s *ReferenceSystem) Priority() int { return 5 }

func (s *ReferenceSystem) Update(w *scene.World, _ core.GameTime) {
	p := s.Listener.Pose()
	frame := math3d.Mat4World(p.Position, p.Forward, p.Up)
	if f, ok := s.Listener.(Framed); ok {
		frame = f.World()
	}
	w.Each(func(_ core.EntityID, e scene.Entity) {
		if rf, ok := e.(ReferenceFollower); ok {
			rf.SetReference(frame.Translation(), frame)
		}
	})
}
