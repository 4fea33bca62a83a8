package systems

import (
	"math"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/1siamBot/audio3d/engine/audio"
	"github.com/1siamBot/audio3d/engine/core"
	"github.com/1siamBot/audio3d/engine/entity"
	"github.com/1siamBot/audio3d/engine/math3d"
	"github.com/1siamBot/audio3d/engine/replay"
	"github.com/1siamBot/audio3d/engine/scene"
)

type fixedListener struct {
	pose core.Pose
}

func (l *fixedListener) Pose() core.Pose { return l.pose }

type spyManager struct {
	listeners []core.Pose
}

func (m *spyManager) Update(listener core.Pose) { m.listeners = append(m.listeners, listener) }

type harness struct {
	world    *scene.World
	journal  *audio.Journal
	commands *CommandSystem
	cat      *entity.MovingSoundEmitter
	catID    core.EntityID
	listener *fixedListener
	manager  *spyManager
	bus      *core.EventBus
}

func newHarness() *harness {
	h := &harness{
		journal:  &audio.Journal{},
		listener: &fixedListener{pose: core.NewPose(math3d.Zero)},
		manager:  &spyManager{},
		bus:      core.NewEventBus(),
	}
	h.world = scene.NewWorld(h.journal)
	h.commands = &CommandSystem{Bus: h.bus}
	h.world.AddSystem(&AudioSystem{Manager: h.manager, Listener: h.listener})
	h.world.AddSystem(&EmitterSystem{})
	h.world.AddSystem(&ReferenceSystem{Listener: h.listener})
	h.world.AddSystem(h.commands)

	h.cat = entity.NewMovingSoundEmitter(core.NewPose(math3d.V3(-entity.CircleRadius, 0, 0)), rand.New(rand.NewPCG(1, 1)))
	h.catID = h.world.Spawn(h.cat)
	return h
}

func (h *harness) run(ticks int) {
	const dt = 50 * time.Millisecond
	for i := 0; i < ticks; i++ {
		total := time.Duration(h.world.TickCount+1) * dt
		h.world.Tick(core.GameTime{Total: total, Elapsed: dt})
	}
}

func TestToggleAppliesOnNextTick(t *testing.T) {
	h := newHarness()
	h.run(1)
	h.commands.Toggle(h.world, h.catID, replay.CmdToneTest)
	if h.cat.ToneTest() {
		t.Fatal("Toggle should wait for the next tick")
	}
	h.run(1)
	if !h.cat.ToneTest() || !h.cat.ToneActive() {
		t.Fatal("Tone test should be on and playing after the tick")
	}
	if len(h.journal.Live()) != 1 {
		t.Errorf("Expected one live loop, got %d", len(h.journal.Live()))
	}

	h.commands.Toggle(h.world, h.catID, replay.CmdToneTest)
	h.run(1)
	if h.cat.ToneTest() || len(h.journal.Live()) != 0 {
		t.Error("Second toggle should stop the tone")
	}
}

func TestToggleTwiceBeforeTick(t *testing.T) {
	h := newHarness()
	h.commands.Recorder = &replay.Replay{}
	h.run(1)
	h.commands.Toggle(h.world, h.catID, replay.CmdToneTest)
	h.commands.Toggle(h.world, h.catID, replay.CmdToneTest)
	h.run(1)

	if h.cat.ToneTest() || h.cat.ToneActive() {
		t.Error("Two toggles in one tick should leave the tone off")
	}
	cmds := h.commands.Recorder.Commands
	if len(cmds) != 2 || !cmds[0].On || cmds[1].On {
		t.Errorf("Recorded %+v, want on then off", cmds)
	}

	h.commands.Toggle(h.world, h.catID, replay.CmdToneTest)
	h.commands.Toggle(h.world, h.catID, replay.CmdRelativeVelocityTest)
	h.commands.Toggle(h.world, h.catID, replay.CmdToneTest)
	h.commands.Toggle(h.world, h.catID, replay.CmdToneTest)
	h.run(1)
	if !h.cat.ToneTest() || !h.cat.RelativeVelocityTest() {
		t.Error("Three tone toggles and one velocity toggle should turn both on")
	}
}

func TestToggleUnknownEntityIgnored(t *testing.T) {
	h := newHarness()
	h.commands.Toggle(h.world, 999, replay.CmdToneTest)
	h.run(1)
	if h.cat.ToneTest() {
		t.Error("Toggle for a missing entity changed the cat")
	}
}

func TestRecordedSessionReplays(t *testing.T) {
	rec := newHarness()
	rec.commands.Recorder = &replay.Replay{}
	rec.run(5)
	rec.commands.Toggle(rec.world, rec.catID, replay.CmdRelativeVelocityTest)
	rec.run(20)
	rec.commands.Toggle(rec.world, rec.catID, replay.CmdToneTest)
	rec.run(40)
	rec.commands.Toggle(rec.world, rec.catID, replay.CmdToneTest)
	rec.run(10)

	cmds := rec.commands.Recorder.Commands
	if len(cmds) != 3 {
		t.Fatalf("Recorded %d commands, want 3", len(cmds))
	}
	if cmds[0].Tick != 5 || cmds[1].Tick != 25 || cmds[2].Tick != 65 {
		t.Errorf("Recorded ticks %d, %d, %d", cmds[0].Tick, cmds[1].Tick, cmds[2].Tick)
	}

	play := newHarness()
	play.commands.Playback = rec.commands.Recorder
	play.run(75)

	if len(play.journal.Entries) != len(rec.journal.Entries) {
		t.Fatalf("Replay played %d sounds, recording %d", len(play.journal.Entries), len(rec.journal.Entries))
	}
	for i := range rec.journal.Entries {
		a, b := rec.journal.Entries[i], play.journal.Entries[i]
		if a.Name != b.Name || a.Looped != b.Looped || a.At.Position != b.At.Position {
			t.Errorf("Sound %d differs: %+v vs %+v", i, a, b)
		}
	}
}

func TestReferenceSystemFeedsListenerFrame(t *testing.T) {
	h := newHarness()
	h.listener.pose = core.Pose{Position: math3d.V3(10, 0, 20), Forward: math3d.Right, Up: math3d.Up}
	h.commands.Toggle(h.world, h.catID, replay.CmdRelativeVelocityTest)
	h.run(1)

	want := math3d.V3(10+entity.CircleRadius, 0, 20)
	if got := h.cat.Pose().Position; !got.ApproxEqual(want, 1e-9) {
		t.Errorf("Cat position = %+v, want %+v", got, want)
	}
}

func TestReferenceSystemUsesListenerWorld(t *testing.T) {
	l := entity.NewListener(math3d.V3(10, 0, 20))
	l.Turn(-math.Pi / 2) // facing +X
	w := scene.NewWorld(&audio.Journal{})
	w.AddSystem(&ReferenceSystem{Listener: l})
	w.AddSystem(&EmitterSystem{})
	cat := entity.NewMovingSoundEmitter(core.NewPose(math3d.V3(-entity.CircleRadius, 0, 0)), rand.New(rand.NewPCG(1, 1)))
	cat.SetRelativeVelocityTest(true)
	w.Spawn(cat)

	w.Tick(core.GameTime{Total: 50 * time.Millisecond, Elapsed: 50 * time.Millisecond})

	want := math3d.V3(10+entity.CircleRadius, 0, 20)
	if got := cat.Pose().Position; !got.ApproxEqual(want, 1e-6) {
		t.Errorf("Cat position = %+v, want %+v", got, want)
	}
}

func TestAudioSystemRunsLast(t *testing.T) {
	h := newHarness()
	h.run(3)
	if len(h.manager.listeners) != 3 {
		t.Errorf("Manager updated %d times, want 3", len(h.manager.listeners))
	}
}

func TestCommandEventsEmitted(t *testing.T) {
	h := newHarness()
	var toggles int
	h.bus.On(core.EvtToneTestToggled, func(core.Event) { toggles++ })
	h.commands.Toggle(h.world, h.catID, replay.CmdToneTest)
	h.run(1)
	h.bus.Dispatch()
	if toggles != 1 {
		t.Errorf("Tone toggle events = %d, want 1", toggles)
	}
}
