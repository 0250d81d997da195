package ecs

import "github.com/milk9111/skirmish/ecs/component"

// Add stores a copy of value on e, replacing any previous value of that kind.
func Add[T any](w *World, e Entity, handle component.ComponentHandle[T], value T) error {
	if w == nil {
		return component.ErrNilComponent
	}
	if !handle.Kind().Valid() {
		return component.ErrInvalidComponentKind
	}
	if !w.IsAlive(e) {
		return component.ErrEntityNotAlive
	}
	v := value
	setOf[T](w, handle.Kind().ID()).set(e.id(), &v)
	return nil
}

// Get returns a pointer to e's component. Mutations through the pointer are
// visible to every later reader.
func Get[T any](w *World, e Entity, handle component.ComponentHandle[T]) (*T, bool) {
	if w == nil || !w.IsAlive(e) {
		return nil, false
	}
	s, ok := w.stores[handle.Kind().ID()].(*sparseSet[T])
	if !ok {
		return nil, false
	}
	v := s.get(e.id())
	return v, v != nil
}

func Remove[T any](w *World, e Entity, handle component.ComponentHandle[T]) bool {
	return w.RemoveComponent(e, handle.Kind())
}

func Has[T any](w *World, e Entity, handle component.ComponentHandle[T]) bool {
	return w.HasComponent(e, handle.Kind())
}

// ForEach visits every live entity carrying the handle's component.
func ForEach[T any](w *World, handle component.ComponentHandle[T], fn func(e Entity, v *T)) {
	if w == nil || fn == nil {
		return
	}
	s, ok := w.stores[handle.Kind().ID()].(*sparseSet[T])
	if !ok {
		return
	}
	ids := append([]entityID(nil), s.ids()...)
	for _, id := range ids {
		e, ok := w.entityFor(id)
		if !ok {
			continue
		}
		if v := s.get(id); v != nil {
			fn(e, v)
		}
	}
}

func setOf[T any](w *World, id component.ComponentID) *sparseSet[T] {
	if w.stores == nil {
		w.stores = make(map[component.ComponentID]store)
	}
	if s, ok := w.stores[id].(*sparseSet[T]); ok {
		return s
	}
	s := &sparseSet[T]{}
	w.stores[id] = s
	return s
}
