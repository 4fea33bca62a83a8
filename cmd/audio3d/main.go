package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	ebaudio "github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/1siamBot/audio3d/engine/audio"
	"github.com/1siamBot/audio3d/engine/config"
	"github.com/1siamBot/audio3d/engine/core"
	"github.com/1siamBot/audio3d/engine/demo"
	"github.com/1siamBot/audio3d/engine/entity"
	"github.com/1siamBot/audio3d/engine/input"
	"github.com/1siamBot/audio3d/engine/render"
	"github.com/1siamBot/audio3d/engine/replay"
)

// Game implements ebiten.Game interface
type Game struct {
	demo     *demo.Demo
	manager  *audio.Manager
	renderer *render.TopDown
	input    *input.InputState
	bus      *core.EventBus
	events   []string
}

func NewGame(cfg config.Config) (*Game, error) {
	bus := core.NewEventBus()
	ctx := ebaudio.NewContext(config.SampleRate)
	bank := audio.NewSynthBank(config.SampleRate)
	manager := audio.NewManager(audio.NewEbitenBackend(ctx), bank, bus)
	manager.SetVolume(cfg.Volume)

	d, err := demo.New(cfg, manager, manager, bus)
	if err != nil {
		return nil, err
	}

	g := &Game{
		demo:     d,
		manager:  manager,
		renderer: render.NewTopDown(render.NewCamera(config.ScreenWidth, config.ScreenHeight)),
		input:    input.NewInputState(),
		bus:      bus,
	}
	for _, t := range []core.EventType{
		core.EvtSoundStarted, core.EvtSoundStopped, core.EvtSoundFailed,
		core.EvtToneTestToggled, core.EvtRelativeVelocityToggled,
	} {
		bus.On(t, g.logEvent)
	}

	d.Loop.Play()
	return g, nil
}

func (g *Game) logEvent(e core.Event) {
	var line string
	switch p := e.Payload.(type) {
	case audio.SoundEvent:
		line = fmt.Sprintf("%6.2fs %-8s %s", g.demo.Loop.TotalTime().Seconds(), e.Type, p.Name)
	case bool:
		line = fmt.Sprintf("%6.2fs %s %t", g.demo.Loop.TotalTime().Seconds(), e.Type, p)
	default:
		return
	}
	g.events = append(g.events, line)
	if len(g.events) > config.EventLogSize {
		g.events = g.events[len(g.events)-config.EventLogSize:]
	}
}

func (g *Game) Update() error {
	g.input.Update()

	if g.input.IsKeyJustPressed(input.KeyQuit) {
		return ebiten.Termination
	}
	if g.input.IsKeyJustPressed(input.KeyToneTest) {
		g.demo.Toggle(replay.CmdToneTest)
	}
	if g.input.IsKeyJustPressed(input.KeyRelativeVelocityTest) {
		g.demo.Toggle(replay.CmdRelativeVelocityTest)
	}
	if g.input.IsKeyJustPressed(input.KeyPause) {
		if g.demo.Loop.State == core.StatePlaying {
			g.demo.Loop.Pause()
		} else {
			g.demo.Loop.Play()
		}
	}

	g.handleListener()

	if g.input.ScrollY != 0 {
		g.renderer.Camera.ZoomAt(g.input.ScrollY*0.1, g.input.MouseX, g.input.MouseY)
	}

	// Game simulation tick
	g.demo.Loop.Update()
	g.bus.Dispatch()

	return nil
}

func (g *Game) handleListener() {
	dt := 1.0 / float64(ebiten.TPS())
	l := g.demo.Listener
	l.Turn(g.input.Turn() * config.CameraTurnSpeed * dt)
	l.Move(g.input.Walk() * config.CameraMoveSpeed * dt)
	l.Settle()
}

func (g *Game) Draw(screen *ebiten.Image) {
	var markers []render.Marker
	for _, m := range g.demo.Markers() {
		c := config.CatColor
		if m.Name == "dog" {
			c = config.DogColor
		}
		markers = append(markers, render.Marker{Pose: m.Pose, Color: c, Label: m.Name, Active: m.Active})
	}
	g.renderer.Draw(screen, entity.CircleRadius, markers, g.demo.Listener.Pose())

	cat := g.demo.Cat
	lines := []string{
		fmt.Sprintf("Audio3D | FPS: %.0f | Tick: %d | Time: %.1fs",
			ebiten.ActualFPS(), g.demo.Loop.CurrentTick(), g.demo.Loop.TotalTime().Seconds()),
		fmt.Sprintf("Tone test [T]: %t | Relative velocity test [V]: %t | Sounds: %d",
			cat.ToneTest(), cat.RelativeVelocityTest(), g.manager.ActiveCount()),
		"[Arrows/WASD] Turn & walk  [Scroll] Zoom  [P] Pause  [Esc] Quit",
		"",
	}
	g.renderer.DrawHUD(screen, append(lines, g.events...))
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.ScreenWidth, config.ScreenHeight
}

// Close stops all sound and flushes any recording
func (g *Game) Close() error {
	err := g.demo.Close()
	g.manager.Close()
	return err
}

func main() {
	cfg := config.Default()
	cfg.RegisterFlags(flag.CommandLine)
	flag.Parse()

	ebiten.SetWindowSize(config.ScreenWidth, config.ScreenHeight)
	ebiten.SetWindowTitle("Audio3D")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(int(config.TickRate))

	game, err := NewGame(cfg)
	if err != nil {
		log.Fatal(err)
	}

	runErr := ebiten.RunGame(game)
	if err := game.Close(); err != nil {
		log.Printf("shutdown: %v", err)
	}
	if runErr != nil && !errors.Is(runErr, ebiten.Termination) {
		log.Print(runErr)
		os.Exit(1)
	}
}
