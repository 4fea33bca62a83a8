package core

import "time"

// GameState represents the overall game state
type GameState uint8

const (
	StatePaused GameState = iota
	StatePlaying
)

// GameTime is the clock handed to every tick: cumulative simulation time
// and the length of the tick being run.
type GameTime struct {
	Total   time.Duration
	Elapsed time.Duration
}

// Ticker advances a simulation by one fixed step
type Ticker interface {
	Tick(gt GameTime)
}

// GameLoop manages the fixed-timestep game loop for deterministic simulation
type GameLoop struct {
	Target      Ticker
	State       GameState
	TickRate    float64 // fixed ticks per second
	TickCount   uint64
	total       time.Duration
	accumulator time.Duration
	lastTime    time.Time
	now         func() time.Time
}

// maxFrameTime caps a single frame to avoid the spiral of death
const maxFrameTime = 250 * time.Millisecond

// NewGameLoop creates a game loop with fixed tick rate
func NewGameLoop(target Ticker, tickRate float64) *GameLoop {
	return &GameLoop{
		Target:   target,
		TickRate: tickRate,
		now:      time.Now,
		lastTime: time.Now(),
	}
}

// SetClock replaces the wall clock, mainly for tests
func (gl *GameLoop) SetClock(now func() time.Time) {
	gl.now = now
	gl.lastTime = now()
}

// Step returns the fixed tick length
func (gl *GameLoop) Step() time.Duration {
	return time.Duration(float64(time.Second) / gl.TickRate)
}

// Update should be called every render frame. It runs the simulation
// at fixed timestep and returns the interpolation alpha for rendering.
func (gl *GameLoop) Update() float64 {
	now := gl.now()
	frameTime := now.Sub(gl.lastTime)
	gl.lastTime = now

	if frameTime > maxFrameTime {
		frameTime = maxFrameTime
	}

	dt := gl.Step()
	gl.accumulator += frameTime

	for gl.accumulator >= dt {
		if gl.State == StatePlaying {
			gl.Advance(dt)
		}
		gl.accumulator -= dt
	}

	return float64(gl.accumulator) / float64(dt)
}

// Advance runs exactly one tick of length dt regardless of state
func (gl *GameLoop) Advance(dt time.Duration) {
	gl.total += dt
	gl.Target.Tick(GameTime{Total: gl.total, Elapsed: dt})
	gl.TickCount++
}

// Play starts or resumes the game
func (gl *GameLoop) Play() {
	gl.State = StatePlaying
	gl.lastTime = gl.now()
}

// Pause pauses the game
func (gl *GameLoop) Pause() {
	gl.State = StatePaused
}

// CurrentTick returns the current simulation tick
func (gl *GameLoop) CurrentTick() uint64 {
	return gl.TickCount
}

// TotalTime returns the cumulative simulated time
func (gl *GameLoop) TotalTime() time.Duration {
	return gl.total
}
