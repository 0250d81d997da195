package ecs

import (
	"testing"

	"github.com/milk9111/skirmish/ecs/component"
)

func TestWorldEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_create_destroy_middle", 3, 1},
		{"none_destroy", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				e := w.CreateEntity()
				if !e.Valid() {
					t.Fatalf("created entity %v should be valid", e)
				}
				ents = append(ents, e)
			}
			if w.Count() != c.create {
				t.Fatalf("expected %d entities, got %d", c.create, w.Count())
			}
			if c.destroyIndex >= 0 {
				if !w.DestroyEntity(ents[c.destroyIndex]) {
					t.Fatalf("DestroyEntity should return true for alive entity")
				}
				if w.IsAlive(ents[c.destroyIndex]) {
					t.Fatalf("entity should not be alive after destruction")
				}
				if w.DestroyEntity(ents[c.destroyIndex]) {
					t.Fatalf("DestroyEntity should return false for a dead entity")
				}
			}
		})
	}
}

func TestWorldRecycledSlotInvalidatesOldHandle(t *testing.T) {
	w := NewWorld()
	health := component.NewComponent[int]()

	old := w.CreateEntity()
	if err := Add(w, old, health, 5); err != nil {
		t.Fatalf("add: %v", err)
	}
	w.DestroyEntity(old)

	fresh := w.CreateEntity()
	if fresh.Index() != old.Index() {
		t.Fatalf("expected slot reuse, got %v after %v", fresh, old)
	}
	if w.IsAlive(old) {
		t.Fatalf("stale handle %v should not be alive", old)
	}
	if _, ok := Get(w, fresh, health); ok {
		t.Fatalf("recycled entity should not inherit components")
	}
	if err := Add(w, old, health, 1); err != component.ErrEntityNotAlive {
		t.Fatalf("expected ErrEntityNotAlive, got %v", err)
	}
}

func TestWorldComponentsAndQueries(t *testing.T) {
	w := NewWorld()

	h1 := component.NewComponent[int]()
	h2 := component.NewComponent[string]()
	h3 := component.NewComponent[float64]()

	e1 := w.CreateEntity()
	e2 := w.CreateEntity()
	e3 := w.CreateEntity()

	_ = Add(w, e1, h1, 1)
	_ = Add(w, e2, h1, 2)
	_ = Add(w, e3, h1, 3)
	_ = Add(w, e1, h2, "one")
	_ = Add(w, e3, h2, "three")
	_ = Add(w, e3, h3, 3.0)

	tests := []struct {
		name  string
		kinds []component.Kind
		want  []Entity
	}{
		{"single_kind", []component.Kind{h1.Kind()}, []Entity{e1, e2, e3}},
		{"two_kinds", []component.Kind{h1.Kind(), h2.Kind()}, []Entity{e1, e3}},
		{"three_kinds", []component.Kind{h1.Kind(), h2.Kind(), h3.Kind()}, []Entity{e3}},
		{"unknown_kind", []component.Kind{component.NewComponent[bool]().Kind()}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := toSet(w.Query(tt.kinds...))
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d entities, got %d", len(tt.want), len(got))
			}
			for _, e := range tt.want {
				if _, ok := got[e]; !ok {
					t.Fatalf("missing entity %v", e)
				}
			}
		})
	}

	t.Run("get_returns_live_pointer", func(t *testing.T) {
		v, ok := Get(w, e2, h1)
		if !ok {
			t.Fatalf("expected component on e2")
		}
		*v = 20
		again, _ := Get(w, e2, h1)
		if *again != 20 {
			t.Fatalf("expected mutation to persist, got %d", *again)
		}
	})

	t.Run("remove", func(t *testing.T) {
		if !Remove(w, e1, h2) {
			t.Fatalf("expected remove to succeed")
		}
		if Has(w, e1, h2) {
			t.Fatalf("component should be gone")
		}
		if Remove(w, e1, h2) {
			t.Fatalf("second remove should report false")
		}
	})
}

func TestWorldDeferredDestroy(t *testing.T) {
	w := NewWorld()
	tag := component.NewComponent[struct{}]()
	victim := w.CreateEntity()
	_ = Add(w, victim, tag, struct{}{})

	var sawAlive bool
	var released []Entity
	w.OnDestroy(func(e Entity) { released = append(released, e) })

	w.AddSystem(SystemFunc(func(w *World) {
		w.DestroyLater(victim)
		w.DestroyLater(victim)
	}))
	w.AddSystem(SystemFunc(func(w *World) {
		sawAlive = w.IsAlive(victim) && Has(w, victim, tag) && w.PendingDestroy(victim)
	}))

	w.Update()

	if !sawAlive {
		t.Fatalf("later systems in the same tick should still see the entity")
	}
	if w.IsAlive(victim) {
		t.Fatalf("entity should be destroyed at the end of the tick")
	}
	if len(released) != 1 || released[0] != victim {
		t.Fatalf("expected one release hook call for %v, got %v", victim, released)
	}
	if w.Tick() != 1 {
		t.Fatalf("expected tick 1, got %d", w.Tick())
	}
}

func TestWorldEventsLiveForOneTick(t *testing.T) {
	w := NewWorld()
	var seen int
	w.AddSystem(SystemFunc(func(w *World) {
		w.Events().Push(Event{Type: EventFired})
	}))
	w.AddSystem(SystemFunc(func(w *World) {
		seen += len(w.Events().Peek())
	}))

	w.Update()
	w.Update()

	if seen != 2 {
		t.Fatalf("expected one event visible per tick, got %d", seen)
	}
	if len(w.Events().Drain()) != 0 {
		t.Fatalf("events should be flushed after update")
	}
}

func TestForEachSkipsRemovedDuringIteration(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]()
	a := w.CreateEntity()
	b := w.CreateEntity()
	_ = Add(w, a, h, 1)
	_ = Add(w, b, h, 2)

	var visited int
	ForEach(w, h, func(e Entity, v *int) {
		visited++
		w.DestroyEntity(a)
		w.DestroyEntity(b)
	})
	if visited != 1 {
		t.Fatalf("expected iteration to skip destroyed entities, visited %d", visited)
	}
}

func toSet(ents []Entity) map[Entity]struct{} {
	m := make(map[Entity]struct{}, len(ents))
	for _, e := range ents {
		m[e] = struct{}{}
	}
	return m
}
