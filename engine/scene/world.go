package scene

import (
	"io"
	"log"

	"github.com/1siamBot/audio3d/engine/audio"
	"github.com/1siamBot/audio3d/engine/core"
)

// Entity is an object that updates once per tick and can emit sound
type Entity interface {
	audio.Emitter
	Update(gt core.GameTime, am audio.Player)
}

// System processes the world each tick
type System interface {
	Update(w *World, gt core.GameTime)
	Priority() int
}

// World holds all entities and the systems that drive them
type World struct {
	Audio     audio.Player
	TickCount uint64

	entities map[core.EntityID]Entity
	order    []core.EntityID // spawn order, for deterministic updates
	systems  []System
	toRemove []core.EntityID
	nextID   core.EntityID
}

// NewWorld creates an empty world whose entities play through am
func NewWorld(am audio.Player) *World {
	return &World{
		Audio:    am,
		entities: make(map[core.EntityID]Entity),
	}
}

// Spawn adds an entity and returns its ID
func (w *World) Spawn(e Entity) core.EntityID {
	w.nextID++
	id := w.nextID
	w.entities[id] = e
	w.order = append(w.order, id)
	return id
}

// Get returns an entity, or nil
func (w *World) Get(id core.EntityID) Entity {
	return w.entities[id]
}

// Destroy marks an entity for removal at the end of the tick
func (w *World) Destroy(id core.EntityID) {
	w.toRemove = append(w.toRemove, id)
}

// Each calls fn for every entity in spawn order
func (w *World) Each(fn func(id core.EntityID, e Entity)) {
	for _, id := range w.order {
		if e, ok := w.entities[id]; ok {
			fn(id, e)
		}
	}
}

// AddSystem registers a system
func (w *World) AddSystem(s System) {
	w.systems = append(w.systems, s)
	// Sort by priority (simple insertion)
	for i := len(w.systems) - 1; i > 0; i-- {
		if w.systems[i].Priority() < w.systems[i-1].Priority() {
			w.systems[i], w.systems[i-1] = w.systems[i-1], w.systems[i]
		}
	}
}

// Tick runs all systems once
func (w *World) Tick(gt core.GameTime) {
	for _, s := range w.systems {
		s.Update(w, gt)
	}
	for _, id := range w.toRemove {
		w.remove(id)
	}
	w.toRemove = w.toRemove[:0]
	w.TickCount++
}

func (w *World) remove(id core.EntityID) {
	e, ok := w.entities[id]
	if !ok {
		return
	}
	closeEntity(id, e)
	delete(w.entities, id)
	for i, oid := range w.order {
		if oid == id {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}
}

// EntityCount returns the number of alive entities
func (w *World) EntityCount() int {
	return len(w.entities)
}

// Close tears down every entity, releasing any sound it still holds
func (w *World) Close() {
	for _, id := range w.order {
		closeEntity(id, w.entities[id])
	}
	w.entities = make(map[core.EntityID]Entity)
	w.order = nil
	w.toRemove = nil
}

func closeEntity(id core.EntityID, e Entity) {
	c, ok := e.(io.Closer)
	if !ok {
		return
	}
	if err := c.Close(); err != nil {
		log.Printf("World: close entity %d: %v", id, err)
	}
}
