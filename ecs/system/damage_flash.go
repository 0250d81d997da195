package system

import (
	"github.com/milk9111/skirmish/ecs"
	"github.com/milk9111/skirmish/ecs/component"
)

type DamageFlashSystem struct{}

func NewDamageFlashSystem() *DamageFlashSystem { return &DamageFlashSystem{} }

func (s *DamageFlashSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	for _, e := range w.Query(component.DamageFlashComponent.Kind()) {
		df, ok := ecs.Get(w, e, component.DamageFlashComponent)
		if !ok {
			continue
		}
		if df.Interval <= 0 {
			df.Interval = 1
		}
		df.Timer++
		if df.Timer >= df.Interval {
			df.Timer = 0
			df.On = !df.On
			df.Frames -= df.Interval
		}
		if df.Frames <= 0 {
			_ = ecs.Remove(w, e, component.DamageFlashComponent)
		}
	}
}
