package system

import (
	"github.com/milk9111/skirmish/ecs"
	"github.com/milk9111/skirmish/ecs/component"
	"github.com/milk9111/skirmish/logger"
	"github.com/sirupsen/logrus"
)

const (
	damageFlashFrames   = 18
	damageFlashInterval = 3
)

// DamageSystem applies this tick's damage requests. A learning agent is
// penalised on its current table entry before the death check; dead
// entities are destroyed at the end of the tick.
type DamageSystem struct {
	feedback Feedback
}

func NewDamageSystem(feedback Feedback) *DamageSystem {
	if feedback == nil {
		feedback = LogFeedback{}
	}
	return &DamageSystem{feedback: feedback}
}

func (s *DamageSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	for _, e := range w.Query(component.DamageRequestComponent.Kind()) {
		req, _ := ecs.Get(w, e, component.DamageRequestComponent)
		request := *req
		_ = ecs.Remove(w, e, component.DamageRequestComponent)

		hp, ok := ecs.Get(w, e, component.HealthComponent)
		if !ok || hp.Dead() {
			continue
		}
		applied := hp.Apply(request.Amount)

		if br, ok := ecs.Get(w, e, component.BrainComponent); ok && br.Learner != nil {
			br.Learner.Penalize(request.Amount)
		}

		s.feedback.Damage(applied, request.Position)
		w.Events().Push(ecs.Event{Type: ecs.EventDamaged, Data: DamagedEvent{
			Entity:   e,
			Source:   ecs.Entity(request.Source),
			Amount:   applied,
			Position: request.Position,
		}})
		_ = ecs.Add(w, e, component.DamageFlashComponent, component.DamageFlash{
			Frames:   damageFlashFrames,
			Interval: damageFlashInterval,
			On:       true,
		})

		if !hp.Dead() {
			continue
		}

		pos := request.Position
		if transform, ok := ecs.Get(w, e, component.TransformComponent); ok {
			pos = transform.Position
		}
		w.Events().Push(ecs.Event{Type: ecs.EventDied, Data: DiedEvent{Entity: e, Position: pos}})
		w.DestroyLater(e)

		fields := logrus.Fields{"component": "damage_system", "entity": e.String()}
		if id, ok := ecs.Get(w, e, component.IdentityComponent); ok {
			fields["name"] = id.Name
		}
		logger.Log.WithFields(fields).Info("entity died")
	}
}
