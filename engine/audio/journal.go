package audio

import "github.com/1siamBot/audio3d/engine/core"

// Entry is one recorded Play3DSound call
type Entry struct {
	Name   string
	Looped bool
	At     core.Pose // emitter pose when the sound started
	Stops  int
}

// Stop records the stop request
func (e *Entry) Stop() { e.Stops++ }

// Journal is a Player that records calls instead of producing sound
type Journal struct {
	Entries []*Entry
	Logf    func(format string, args ...any)
}

func (j *Journal) Play3DSound(name string, looped bool, emitter Emitter) Handle {
	e := &Entry{Name: name, Looped: looped, At: emitter.Pose()}
	j.Entries = append(j.Entries, e)
	if j.Logf != nil {
		p := e.At.Position
		j.Logf("play %s looped=%t at (%.0f, %.0f, %.0f)", name, looped, p.X, p.Y, p.Z)
	}
	return e
}

// Count returns how many times name was played
func (j *Journal) Count(name string) int {
	n := 0
	for _, e := range j.Entries {
		if e.Name == name {
			n++
		}
	}
	return n
}

// Live returns the looped entries that have not been stopped
func (j *Journal) Live() []*Entry {
	var live []*Entry
	for _, e := range j.Entries {
		if e.Looped && e.Stops == 0 {
			live = append(live, e)
		}
	}
	return live
}

// Reset forgets every entry
func (j *Journal) Reset() {
	j.Entries = j.Entries[:0]
}
