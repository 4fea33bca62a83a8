package audio

import (
	"io"

	ebaudio "github.com/hajimehoshi/ebiten/v2/audio"
)

// Voice is one playing stream on the output device
type Voice interface {
	Play()
	Pause()
	IsPlaying() bool
	SetVolume(volume float64)
	Close() error
}

// Backend turns PCM streams into voices
type Backend interface {
	NewVoice(src io.ReadSeeker) (Voice, error)
	// Loop wraps src so it repeats forever. length is in bytes.
	Loop(src io.ReadSeeker, length int64) io.ReadSeeker
}

// EbitenBackend plays through an ebiten audio context
type EbitenBackend struct {
	ctx *ebaudio.Context
}

// NewEbitenBackend returns a backend for ctx. The context's sample rate
// must match the bank's.
func NewEbitenBackend(ctx *ebaudio.Context) *EbitenBackend {
	return &EbitenBackend{ctx: ctx}
}

func (b *EbitenBackend) NewVoice(src io.ReadSeeker) (Voice, error) {
	p, err := b.ctx.NewPlayer(src)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (b *EbitenBackend) Loop(src io.ReadSeeker, length int64) io.ReadSeeker {
	return ebaudio.NewInfiniteLoop(src, length)
}
