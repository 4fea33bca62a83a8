package systems

import (
	"log"

	"github.com/1siamBot/audio3d/engine/core"
	"github.com/1siamBot/audio3d/engine/replay"
	"github.com/1siamBot/audio3d/engine/scene"
)

// ToneTester is an entity with a tone test mode
type ToneTester interface {
	ToneTest() bool
	SetToneTest(on bool)
}

// RelativeVelocityTester is an entity with a relative velocity test mode
type RelativeVelocityTester interface {
	RelativeVelocityTest() bool
	SetRelativeVelocityTest(on bool)
}

// CommandSystem applies toggle commands at the start of a tick. Commands
// come from a loaded replay and from Queue; every applied command is
// written to Recorder when one is set.
type CommandSystem struct {
	Playback *replay.Replay
	Recorder *replay.Replay
	Bus      *core.EventBus
	queued   []replay.Command
}

func (s *CommandSystem) Priority() int { return 0 }

// Queue schedules a command for the next tick
func (s *CommandSystem) Queue(cmd replay.Command) {
	s.queued = append(s.queued, cmd)
}

// Toggle queues a command flipping mode t on entity id. The flip is taken
// from the last command already queued for the same mode, if any.
func (s *CommandSystem) Toggle(w *scene.World, id core.EntityID, t replay.CmdType) {
	e := w.Get(id)
	var on bool
	switch t {
	case replay.CmdToneTest:
		tt, ok := e.(ToneTester)
		if !ok {
			return
		}
		on = !tt.ToneTest()
	case replay.CmdRelativeVelocityTest:
		rv, ok := e.(RelativeVelocityTester)
		if !ok {
			return
		}
		on = !rv.RelativeVelocityTest()
	default:
		return
	}
	for i := len(s.queued) - 1; i >= 0; i-- {
		if q := s.queued[i]; q.EntityID == uint64(id) && q.Type == t {
			on = !q.On
			break
		}
	}
	s.Queue(replay.Command{EntityID: uint64(id), Type: t, On: on})
}

func (s *CommandSystem) Update(w *scene.World, gt core.GameTime) {
	var due []replay.Command
	if s.Playback != nil {
		due = append(due, s.Playback.CommandsForTick(w.TickCount)...)
	}
	for _, c := range s.queued {
		c.Tick = w.TickCount
		due = append(due, c)
	}
	s.queued = s.queued[:0]

	for _, c := range due {
		if !s.apply(w, c) {
			continue
		}
		if s.Recorder != nil {
			if err := s.Recorder.Record(c); err != nil {
				log.Printf("CommandSystem: record: %v", err)
			}
		}
	}
}

func (s *CommandSystem) apply(w *scene.World, c replay.Command) bool {
	e := w.Get(core.EntityID(c.EntityID))
	switch c.Type {
	case replay.CmdToneTest:
		if t, ok := e.(ToneTester); ok {
			t.SetToneTest(c.On)
			s.Bus.Emit(core.Event{Type: core.EvtToneTestToggled, Tick: c.Tick, Payload: c.On})
			return true
		}
	case replay.CmdRelativeVelocityTest:
		if t, ok := e.(RelativeVelocityTester); ok {
			t.SetRelativeVelocityTest(c.On)
			s.Bus.Emit(core.Event{Type: core.EvtRelativeVelocityToggled, Tick: c.Tick, Payload: c.On})
			return true
		}
	}
	log.Printf("CommandSystem: entity %d ignores %s", c.EntityID, c.Type)
	return false
}
