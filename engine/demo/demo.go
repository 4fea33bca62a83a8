package demo

import (
	"fmt"
	"log"
	"math/rand/v2"

	"github.com/1siamBot/audio3d/engine/audio"
	"github.com/1siamBot/audio3d/engine/config"
	"github.com/1siamBot/audio3d/engine/core"
	"github.com/1siamBot/audio3d/engine/entity"
	"github.com/1siamBot/audio3d/engine/math3d"
	"github.com/1siamBot/audio3d/engine/replay"
	"github.com/1siamBot/audio3d/engine/scene"
	"github.com/1siamBot/audio3d/engine/systems"
)

// Demo is the assembled scene: a cat circling the origin, a dog barking in
// front of it and a listener standing at the center.
type Demo struct {
	World    *scene.World
	Loop     *core.GameLoop
	Commands *systems.CommandSystem
	Listener *entity.Listener
	Bus      *core.EventBus

	Cat   *entity.MovingSoundEmitter
	CatID core.EntityID
	Dog   *entity.LoopingSoundEmitter // nil with -nodog

	recorder *replay.Replay
}

// New builds the demo. spatial may be nil when nothing needs the listener
// pose, as in headless runs.
func New(cfg config.Config, player audio.Player, spatial systems.Spatializer, bus *core.EventBus) (*Demo, error) {
	d := &Demo{
		World:    scene.NewWorld(player),
		Listener: entity.NewListener(math3d.Zero),
		Bus:      bus,
	}
	d.Commands = &systems.CommandSystem{Bus: bus}

	if cfg.Replay != "" {
		r, err := replay.Load(cfg.Replay)
		if err != nil {
			return nil, fmt.Errorf("demo: %w", err)
		}
		log.Printf("Demo: replaying %d commands from %s", len(r.Commands), cfg.Replay)
		d.Commands.Playback = r
	}
	if cfg.Record != "" {
		r, err := replay.NewRecorder(cfg.Record)
		if err != nil {
			return nil, fmt.Errorf("demo: %w", err)
		}
		d.recorder = r
		d.Commands.Recorder = r
	}

	d.World.AddSystem(d.Commands)
	d.World.AddSystem(&systems.ReferenceSystem{Listener: d.Listener})
	d.World.AddSystem(&systems.EmitterSystem{})
	if spatial != nil {
		d.World.AddSystem(&systems.AudioSystem{Manager: spatial, Listener: d.Listener})
	}

	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed))
	d.Cat = entity.NewMovingSoundEmitter(core.NewPose(math3d.V3(-entity.CircleRadius, 0, 0)), rng)
	d.CatID = d.World.Spawn(d.Cat)
	if cfg.StartTone {
		// Applied on tick 0 so recordings carry the starting state.
		d.Commands.Queue(replay.Command{EntityID: uint64(d.CatID), Type: replay.CmdToneTest, On: true})
	}
	if !cfg.NoDog {
		d.Dog = entity.NewLoopingSoundEmitter()
		d.World.Spawn(d.Dog)
	}

	d.Loop = core.NewGameLoop(d.World, config.TickRate)
	return d, nil
}

// Toggle flips a test mode on the cat from the next tick on
func (d *Demo) Toggle(t replay.CmdType) {
	d.Commands.Toggle(d.World, d.CatID, t)
}

// Markers returns what the renderer should draw
func (d *Demo) Markers() []Marker {
	ms := []Marker{{Name: "cat", Pose: d.Cat.Pose(), Active: d.Cat.ToneActive()}}
	if d.Dog != nil {
		ms = append(ms, Marker{Name: "dog", Pose: d.Dog.Pose(), Active: d.Dog.Barking()})
	}
	return ms
}

// Marker is a drawable summary of one entity
type Marker struct {
	Name   string
	Pose   core.Pose
	Active bool
}

// Close stops every sound the scene holds and flushes the recording
func (d *Demo) Close() error {
	d.World.Close()
	if d.recorder != nil {
		if err := d.recorder.Close(); err != nil {
			return fmt.Errorf("demo: close recording: %w", err)
		}
	}
	return nil
}
