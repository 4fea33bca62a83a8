package systems

import (
	"github.com/1siamBot/audio3d/engine/audio"
	"github.com/1siamBot/audio3d/engine/core"
	"github.com/1siamBot/audio3d/engine/scene"
)

// Spatializer re-applies 3D settings for a listener pose
type Spatializer interface {
	Update(listener core.Pose)
}

// AudioSystem moves the audio listener after entities have moved
type AudioSystem struct {
	Manager  Spatializer
	Listener audio.Emitter
}

func (s *AudioSystem) Priority() int { return 100 }

func (s *AudioSystem) Update(_ *scene.World, _ core.GameTime) {
	s.Manager.Update(s.Listener.Pose())
}
