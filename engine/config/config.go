package config

import (
	"flag"
	"image/color"
	"time"
)

const (
	ScreenWidth  = 1280
	ScreenHeight = 720
	TickRate     = 60.0  // simulation ticks per second
	SampleRate   = 48000 // audio output, Hz

	// Top-down view: world units per screen pixel at zoom 1
	WorldPerPixel = 40.0
	MinZoom       = 0.25
	MaxZoom       = 4.0

	CameraMoveSpeed = 3000.0 // world units per second
	CameraTurnSpeed = 1.5    // radians per second

	EventLogSize = 8 // lines of sound events shown in the HUD
)

var (
	BackgroundColor = color.RGBA{20, 20, 30, 255}
	GridColor       = color.RGBA{40, 40, 55, 255}
	PathColor       = color.RGBA{60, 60, 90, 255}
	CatColor        = color.RGBA{255, 170, 60, 255}
	DogColor        = color.RGBA{120, 200, 255, 255}
	ListenerColor   = color.RGBA{120, 255, 120, 255}
	TextColor       = color.RGBA{220, 220, 220, 255}
)

// Config holds the settings a run can override from the command line
type Config struct {
	Seed      uint64
	Volume    float64
	Record    string
	Replay    string
	Duration  time.Duration // headless runs only
	NoDog     bool
	StartTone bool
}

// Default returns the stock settings
func Default() Config {
	return Config{
		Seed:     1,
		Volume:   1.0,
		Duration: 30 * time.Second,
	}
}

// RegisterFlags binds c's fields to fs
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.Uint64Var(&c.Seed, "seed", c.Seed, "seed for sound variant selection")
	fs.Float64Var(&c.Volume, "volume", c.Volume, "master volume, 0-1")
	fs.StringVar(&c.Record, "record", c.Record, "write toggle commands to this replay file")
	fs.StringVar(&c.Replay, "replay", c.Replay, "play back toggle commands from this replay file")
	fs.DurationVar(&c.Duration, "duration", c.Duration, "simulated time for headless runs")
	fs.BoolVar(&c.NoDog, "nodog", c.NoDog, "leave the dog out of the scene")
	fs.BoolVar(&c.StartTone, "tone", c.StartTone, "start with the tone test on")
}
