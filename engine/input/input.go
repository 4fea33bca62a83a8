package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputState tracks mouse and keyboard state per frame
type InputState struct {
	// Mouse
	MouseX, MouseY int
	ScrollY        float64

	// Keyboard
	KeysPressed map[ebiten.Key]bool
}

// Key bindings
var (
	KeysTurnLeft  = []ebiten.Key{ebiten.KeyLeft, ebiten.KeyA}
	KeysTurnRight = []ebiten.Key{ebiten.KeyRight, ebiten.KeyD}
	KeysForward   = []ebiten.Key{ebiten.KeyUp, ebiten.KeyW}
	KeysBack      = []ebiten.Key{ebiten.KeyDown, ebiten.KeyS}

	KeyToneTest             = ebiten.KeyT
	KeyRelativeVelocityTest = ebiten.KeyV
	KeyPause                = ebiten.KeyP
	KeyQuit                 = ebiten.KeyEscape
)

func NewInputState() *InputState {
	return &InputState{
		KeysPressed: make(map[ebiten.Key]bool),
	}
}

// Update should be called every frame
func (s *InputState) Update() {
	s.MouseX, s.MouseY = ebiten.CursorPosition()
	_, s.ScrollY = ebiten.Wheel()

	for _, group := range [][]ebiten.Key{KeysTurnLeft, KeysTurnRight, KeysForward, KeysBack} {
		for _, k := range group {
			s.KeysPressed[k] = ebiten.IsKeyPressed(k)
		}
	}
}

// IsKeyJustPressed returns true if key was just pressed this frame
func (s *InputState) IsKeyJustPressed(key ebiten.Key) bool {
	return inpututil.IsKeyJustPressed(key)
}

func (s *InputState) anyPressed(keys []ebiten.Key) bool {
	for _, k := range keys {
		if s.KeysPressed[k] {
			return true
		}
	}
	return false
}

// Turn returns +1 for left, -1 for right, 0 for neither or both
func (s *InputState) Turn() float64 {
	return axis(s.anyPressed(KeysTurnLeft), s.anyPressed(KeysTurnRight))
}

// Walk returns +1 for forward, -1 for back
func (s *InputState) Walk() float64 {
	return axis(s.anyPressed(KeysForward), s.anyPressed(KeysBack))
}

func axis(pos, neg bool) float64 {
	switch {
	case pos && !neg:
		return 1
	case neg && !pos:
		return -1
	}
	return 0
}
