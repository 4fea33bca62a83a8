package audio

import (
	"math"

	"github.com/1siamBot/audio3d/engine/core"
)

// Spatial is an emitter's placement as heard by the listener
type Spatial struct {
	Gain float64 // 0..1
	Pan  float64 // -1 (left) .. 1 (right)
}

// Spatialize computes gain and pan for an emitter. Gain falls off linearly
// to zero at maxDist; pan is the emitter direction projected on the
// listener's right axis.
func Spatialize(listener, emitter core.Pose, maxDist float64) Spatial {
	offset := emitter.Position.Sub(listener.Position)
	dist := offset.Len()
	if maxDist <= 0 || dist >= maxDist {
		return Spatial{}
	}
	s := Spatial{Gain: 1.0 - dist/maxDist}
	if dist > 1e-9 {
		s.Pan = clamp(offset.Scale(1/dist).Dot(listener.Right()), -1, 1)
	}
	return s
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
