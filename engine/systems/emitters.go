package systems

import (
	"github.com/1siamBot/audio3d/engine/core"
	"github.com/1siamBot/audio3d/engine/scene"
)

// EmitterSystem updates every entity against the world's audio player
type EmitterSystem struct{}

func (s *EmitterSystem) Priority() int { return 10 }

func (s *EmitterSystem) Update(w *scene.World, gt core.GameTime) {
	w.Each(func(_ core.EntityID, e scene.Entity) {
		e.Update(gt, w.Audio)
	})
}
