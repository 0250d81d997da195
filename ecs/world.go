package ecs

import "github.com/milk9111/skirmish/ecs/component"

// World owns entities, components, and system order.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]store
	systems  []System
	events   EventQueue

	pendingDestroy []Entity
	onDestroy      []func(e Entity)
	tick           uint64
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]store)}
}

// CreateEntity allocates a new entity.
func (w *World) CreateEntity() Entity {
	return w.entities.create()
}

// DestroyEntity removes an entity and all its components immediately.
// Systems running inside a tick should use DestroyLater instead.
func (w *World) DestroyEntity(e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, fn := range w.onDestroy {
		fn(e)
	}
	for _, s := range w.stores {
		s.remove(e.id())
	}
	return w.entities.destroy(e)
}

// DestroyLater queues e for destruction once every system has run this tick.
// Queuing the same entity twice is harmless.
func (w *World) DestroyLater(e Entity) {
	if w == nil || !w.entities.isAlive(e) {
		return
	}
	for _, p := range w.pendingDestroy {
		if p == e {
			return
		}
	}
	w.pendingDestroy = append(w.pendingDestroy, e)
}

// PendingDestroy reports whether e is queued for end-of-tick destruction.
func (w *World) PendingDestroy(e Entity) bool {
	if w == nil {
		return false
	}
	for _, p := range w.pendingDestroy {
		if p == e {
			return true
		}
	}
	return false
}

// OnDestroy registers a hook that runs before an entity's components are
// dropped, so owners of external resources can release them.
func (w *World) OnDestroy(fn func(e Entity)) {
	if w == nil || fn == nil {
		return
	}
	w.onDestroy = append(w.onDestroy, fn)
}

// IsAlive reports whether an entity handle is valid.
func (w *World) IsAlive(e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// Count is the number of live entities.
func (w *World) Count() int {
	if w == nil {
		return 0
	}
	return w.entities.count
}

// AddSystem appends a system to the update order.
func (w *World) AddSystem(s System) {
	if w == nil || s == nil {
		return
	}
	w.systems = append(w.systems, s)
}

// Update runs all systems once, then drops this tick's events and destroys
// entities queued with DestroyLater.
func (w *World) Update() {
	if w == nil {
		return
	}
	for _, s := range w.systems {
		if s != nil {
			s.Update(w)
		}
	}
	w.events.flush()
	w.flushDestroyed()
	w.tick++
}

// Tick is the number of completed updates.
func (w *World) Tick() uint64 {
	if w == nil {
		return 0
	}
	return w.tick
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

func (w *World) RemoveComponent(e Entity, kind component.Kind) bool {
	if w == nil || !w.IsAlive(e) {
		return false
	}
	s, ok := w.stores[kind.ID()]
	if !ok || !s.has(e.id()) {
		return false
	}
	s.remove(e.id())
	return true
}

func (w *World) HasComponent(e Entity, kind component.Kind) bool {
	if w == nil || !w.IsAlive(e) {
		return false
	}
	s, ok := w.stores[kind.ID()]
	return ok && s.has(e.id())
}

func (w *World) flushDestroyed() {
	pending := w.pendingDestroy
	w.pendingDestroy = nil
	for _, e := range pending {
		w.DestroyEntity(e)
	}
}

func (w *World) entityFor(id entityID) (Entity, bool) {
	if id == 0 || int(id) > len(w.entities.gen) || !w.entities.alive[id-1] {
		return 0, false
	}
	return makeEntity(id, w.entities.gen[id-1]), true
}
