package ecs

import "github.com/milk9111/skirmish/ecs/component"

// Query returns live entities carrying every given kind, in the storage order
// of the smallest matching set.
func (w *World) Query(kinds ...component.Kind) []Entity {
	if w == nil || len(kinds) == 0 {
		return nil
	}
	sets := make([]store, 0, len(kinds))
	for _, k := range kinds {
		s, ok := w.stores[k.ID()]
		if !ok {
			return nil
		}
		sets = append(sets, s)
	}
	smallest := sets[0]
	for _, s := range sets[1:] {
		if s.len() < smallest.len() {
			smallest = s
		}
	}

	out := make([]Entity, 0, smallest.len())
outer:
	for _, id := range smallest.ids() {
		for _, s := range sets {
			if !s.has(id) {
				continue outer
			}
		}
		if e, ok := w.entityFor(id); ok {
			out = append(out, e)
		}
	}
	return out
}

// First returns the first entity matching the kinds.
func (w *World) First(kinds ...component.Kind) (Entity, bool) {
	ents := w.Query(kinds...)
	if len(ents) == 0 {
		return 0, false
	}
	return ents[0], true
}
