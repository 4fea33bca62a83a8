package audio

import (
	"bytes"
	"fmt"
	"io"
	"log"

	"github.com/1siamBot/audio3d/engine/core"
	"github.com/1siamBot/audio3d/engine/math3d"
)

// SoundEvent is the payload of sound events on the bus
type SoundEvent struct {
	Name   string
	Looped bool
}

// Manager plays bank sounds positioned at emitters relative to a listener
type Manager struct {
	MasterVolume float64
	SFXVolume    float64
	MaxDistance  float64 // gain reaches zero at this range

	backend  Backend
	bank     *Bank
	bus      *core.EventBus
	listener core.Pose
	active   []*instance
	tick     uint64
}

// DefaultMaxDistance is the hearing range in world units
const DefaultMaxDistance = 20000.0

func NewManager(backend Backend, bank *Bank, bus *core.EventBus) *Manager {
	return &Manager{
		MasterVolume: 1.0,
		SFXVolume:    0.8,
		MaxDistance:  DefaultMaxDistance,
		backend:      backend,
		bank:         bank,
		bus:          bus,
		listener:     core.NewPose(math3d.Zero),
	}
}

// instance is a sound started by the manager
type instance struct {
	m       *Manager
	name    string
	looped  bool
	emitter Emitter
	voice   Voice
	pan     *panStream
	done    bool
}

func (i *instance) Stop() { i.m.stop(i) }

// inert is returned when playback could not start
type inert struct{}

func (inert) Stop() {}

// Play3DSound starts name at emitter. It never returns nil; failures are
// logged and yield a handle that does nothing.
func (am *Manager) Play3DSound(name string, looped bool, emitter Emitter) Handle {
	inst, err := am.start(name, looped, emitter)
	if err != nil {
		log.Printf("AudioManager: %v", err)
		am.emit(core.EvtSoundFailed, name, looped)
		return inert{}
	}
	am.active = append(am.active, inst)
	am.emit(core.EvtSoundStarted, name, looped)
	return inst
}

func (am *Manager) start(name string, looped bool, emitter Emitter) (*instance, error) {
	pcm, err := am.bank.PCM(name)
	if err != nil {
		return nil, err
	}
	var src io.ReadSeeker = bytes.NewReader(pcm)
	if looped {
		src = am.backend.Loop(src, int64(len(pcm)))
	}
	pan := newPanStream(src)
	voice, err := am.backend.NewVoice(pan)
	if err != nil {
		return nil, fmt.Errorf("play %s: %w", name, err)
	}
	inst := &instance{
		m:       am,
		name:    name,
		looped:  looped,
		emitter: emitter,
		voice:   voice,
		pan:     pan,
	}
	am.apply3D(inst)
	voice.Play()
	return inst, nil
}

// Update moves the listener, drops finished one-shots and re-positions
// everything still playing.
func (am *Manager) Update(listener core.Pose) {
	am.tick++
	am.listener = listener
	live := am.active[:0]
	for _, inst := range am.active {
		if !inst.looped && !inst.voice.IsPlaying() {
			am.release(inst)
			am.emit(core.EvtSoundFinished, inst.name, inst.looped)
			continue
		}
		am.apply3D(inst)
		live = append(live, inst)
	}
	for i := len(live); i < len(am.active); i++ {
		am.active[i] = nil
	}
	am.active = live
}

func (am *Manager) apply3D(inst *instance) {
	s := Spatialize(am.listener, inst.emitter.Pose(), am.MaxDistance)
	inst.voice.SetVolume(s.Gain * am.SFXVolume * am.MasterVolume)
	inst.pan.SetPan(s.Pan)
}

func (am *Manager) stop(inst *instance) {
	if inst.done {
		return
	}
	am.release(inst)
	for i, a := range am.active {
		if a == inst {
			am.active = append(am.active[:i], am.active[i+1:]...)
			break
		}
	}
	am.emit(core.EvtSoundStopped, inst.name, inst.looped)
}

func (am *Manager) release(inst *instance) {
	inst.done = true
	inst.voice.Pause()
	if err := inst.voice.Close(); err != nil {
		log.Printf("AudioManager: close %s: %v", inst.name, err)
	}
}

func (am *Manager) emit(t core.EventType, name string, looped bool) {
	am.bus.Emit(core.Event{Type: t, Tick: am.tick, Payload: SoundEvent{Name: name, Looped: looped}})
}

// ActiveCount returns the number of sounds still held by the manager
func (am *Manager) ActiveCount() int {
	return len(am.active)
}

// SetVolume sets master volume (0-1)
func (am *Manager) SetVolume(v float64) {
	am.MasterVolume = clamp(v, 0, 1)
}

// Close stops every sound
func (am *Manager) Close() {
	for _, inst := range am.active {
		am.release(inst)
		am.emit(core.EvtSoundStopped, inst.name, inst.looped)
	}
	am.active = nil
}
