// Command simulate runs the audio demo without a window or sound device
// and logs every sound request.
package main

import (
	"flag"
	"log"
	"time"

	"github.com/1siamBot/audio3d/engine/audio"
	"github.com/1siamBot/audio3d/engine/config"
	"github.com/1siamBot/audio3d/engine/core"
	"github.com/1siamBot/audio3d/engine/demo"
)

func main() {
	cfg := config.Default()
	cfg.RegisterFlags(flag.CommandLine)
	flag.Parse()

	journal := &audio.Journal{}
	bus := core.NewEventBus()
	d, err := demo.New(cfg, journal, nil, bus)
	if err != nil {
		log.Fatal(err)
	}
	journal.Logf = func(format string, args ...any) {
		log.Printf("[%8.3fs] "+format, append([]any{d.Loop.TotalTime().Seconds()}, args...)...)
	}
	for _, t := range []core.EventType{core.EvtToneTestToggled, core.EvtRelativeVelocityToggled} {
		bus.On(t, func(e core.Event) {
			log.Printf("[tick %d] %s -> %v", e.Tick, e.Type, e.Payload)
		})
	}

	step := d.Loop.Step()
	for d.Loop.TotalTime() < cfg.Duration {
		d.Loop.Advance(step)
		bus.Dispatch()
	}
	if err := d.Close(); err != nil {
		log.Fatal(err)
	}

	meows := 0
	for i := 0; i < audio.CatVariants; i++ {
		meows += journal.Count(audio.CatSound(i))
	}
	log.Printf("simulated %v in %d ticks: %d meows, %d tone loops, %d dog loops",
		d.Loop.TotalTime().Round(time.Millisecond), d.Loop.CurrentTick(),
		meows, journal.Count(audio.SndTone), journal.Count(audio.SndDog))
}
