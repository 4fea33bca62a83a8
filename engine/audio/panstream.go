package audio

import (
	"io"
	"math"
	"sync"
)

// bytesPerFrame is one 16-bit little-endian stereo frame
const bytesPerFrame = 4

// panStream scales the left and right channels of 16-bit stereo PCM.
// The audio goroutine reads while the game loop sets the pan.
type panStream struct {
	src io.ReadSeeker

	mu    sync.Mutex
	left  float64
	right float64
}

func newPanStream(src io.ReadSeeker) *panStream {
	return &panStream{src: src, left: 1, right: 1}
}

// SetPan sets the balance, -1 full left, 1 full right
func (s *panStream) SetPan(pan float64) {
	pan = clamp(pan, -1, 1)
	s.mu.Lock()
	s.left = math.Min(1-pan, 1)
	s.right = math.Min(1+pan, 1)
	s.mu.Unlock()
}

func (s *panStream) gains() (float64, float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.left, s.right
}

func (s *panStream) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if len(p) < bytesPerFrame {
		return 0, io.ErrShortBuffer
	}
	p = p[:len(p)/bytesPerFrame*bytesPerFrame]
	n, err := s.src.Read(p)
	ls, rs := s.gains()
	if ls == 1 && rs == 1 {
		return n, err
	}
	for i := 0; i+bytesPerFrame <= n; i += bytesPerFrame {
		l := int16(float64(int16(p[i])|int16(p[i+1])<<8) * ls)
		r := int16(float64(int16(p[i+2])|int16(p[i+3])<<8) * rs)
		p[i] = byte(l)
		p[i+1] = byte(l >> 8)
		p[i+2] = byte(r)
		p[i+3] = byte(r >> 8)
	}
	return n, err
}

func (s *panStream) Seek(offset int64, whence int) (int64, error) {
	return s.src.Seek(offset, whence)
}
