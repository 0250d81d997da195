package system

import (
	"github.com/milk9111/skirmish/aim"
	"github.com/milk9111/skirmish/brain"
	"github.com/milk9111/skirmish/common"
	"github.com/milk9111/skirmish/ecs"
	"github.com/milk9111/skirmish/ecs/component"
	"github.com/milk9111/skirmish/logger"
	"github.com/sirupsen/logrus"
)

// AgentSystem runs every hostile agent's sense, decide, move, face and
// attack step once per tick.
type AgentSystem struct {
	mover   Mover
	rays    RayCaster
	spawner ProjectileSpawner
	dt      float64
}

func NewAgentSystem(mover Mover, rays RayCaster, spawner ProjectileSpawner, dt float64) *AgentSystem {
	return &AgentSystem{mover: mover, rays: rays, spawner: spawner, dt: dt}
}

func (s *AgentSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	for _, e := range w.Query(
		component.AgentTagComponent.Kind(),
		component.BrainComponent.Kind(),
		component.CombatantComponent.Kind(),
		component.TransformComponent.Kind(),
	) {
		s.updateAgent(w, e)
	}
}

func (s *AgentSystem) updateAgent(w *ecs.World, e ecs.Entity) {
	br, _ := ecs.Get(w, e, component.BrainComponent)
	tuning, _ := ecs.Get(w, e, component.CombatantComponent)
	transform, _ := ecs.Get(w, e, component.TransformComponent)

	target, targetPos, ok := s.resolveTarget(w, e)
	if !ok {
		if !br.TargetWarned {
			br.TargetWarned = true
			logger.Log.WithFields(logrus.Fields{
				"component": "agent_system",
				"entity":    e.String(),
			}).Warn("agent has no live target; skipping")
		}
		return
	}

	self := transform.Position
	toTarget := targetPos.Sub(self)
	distance := toTarget.Length()
	healthFraction := 1.0
	if hp, ok := ecs.Get(w, e, component.HealthComponent); ok {
		healthFraction = hp.Fraction()
	}

	var action brain.Action
	switch br.Policy {
	case component.PolicyQLearning:
		if br.Learner == nil {
			br.Learner = brain.NewLearner(brain.DefaultParams(), nil)
		}
		state := br.Classifier.Classify(distance, healthFraction, toTarget)
		reward := brain.ComputeReward(brain.Observation{
			Distance:       distance,
			ShootingRange:  tuning.ShootingRange,
			ToTarget:       toTarget,
			Forward:        aim.Forward(transform.Yaw),
			LineOfSight:    s.lineOfSight(self, targetPos, e, target),
			HealthFraction: healthFraction,
		})
		action = br.Learner.Step(state, reward)
		br.State = state
	default:
		action = br.FSM.Evaluate(distance)
	}
	br.Action = action
	if br.ActionCounts == nil {
		br.ActionCounts = make(map[brain.Action]int)
	}
	br.ActionCounts[action]++

	velocity := brain.Intent(action, toTarget, tuning.MoveSpeed)
	velocity.Y = s.verticalVelocity(w, e)
	if s.mover != nil {
		s.mover.Move(e, velocity)
	}

	sol := aim.Solve(self, targetPos, tuning.ProjectileHeight)
	if sol.HasYaw {
		transform.Yaw = br.Turner.Step(transform.Yaw, sol.Yaw, s.dt)
	}
	direction, hasDirection := br.Aimer.Direction(sol)

	if logger.Log.IsLevelEnabled(logrus.DebugLevel) {
		logger.Log.WithFields(logrus.Fields{
			"component": "agent_system",
			"entity":    e.String(),
			"policy":    br.Policy,
			"state":     br.State.String(),
			"action":    action.String(),
			"distance":  distance,
		}).Debug("agent decision")
	}

	if action != brain.ActionAttack || onCooldown(w, e) {
		return
	}

	switch tuning.Attack {
	case component.AttackMelee:
		if distance > tuning.MeleeReach {
			return
		}
		requestDamage(w, target, e, tuning.Damage, targetPos)
		w.Events().Push(ecs.Event{Type: ecs.EventFired, Data: FiredEvent{Shooter: e, Target: target, Melee: true, Position: self}})
	default:
		if !hasDirection || s.spawner == nil {
			return
		}
		s.spawner.Spawn(ProjectileRequest{
			Position:  self,
			Direction: direction,
			Speed:     tuning.ProjectileSpeed,
			Damage:    tuning.Damage,
			Owner:     e,
			Mask:      common.CategoryStatic | common.CategoryTarget,
			Frames:    tuning.ProjectileFrames,
		})
		w.Events().Push(ecs.Event{Type: ecs.EventFired, Data: FiredEvent{Shooter: e, Target: target, Position: self}})
	}
	startCooldown(w, e, tuning.CooldownFrames)
}

// resolveTarget reads the injected target once for this tick.
func (s *AgentSystem) resolveTarget(w *ecs.World, e ecs.Entity) (ecs.Entity, common.Vec3, bool) {
	ref, ok := ecs.Get(w, e, component.TargetComponent)
	if !ok {
		return 0, common.Vec3{}, false
	}
	target := ecs.Entity(ref.Entity)
	if !w.IsAlive(target) || w.PendingDestroy(target) {
		return 0, common.Vec3{}, false
	}
	transform, ok := ecs.Get(w, target, component.TransformComponent)
	if !ok {
		return 0, common.Vec3{}, false
	}
	return target, transform.Position, true
}

func (s *AgentSystem) lineOfSight(from, to common.Vec3, self, target ecs.Entity) bool {
	if s.rays == nil {
		return false
	}
	hit, ok := s.rays.FirstHit(from, to, common.SightMask, self)
	return ok && hit == target
}

func (s *AgentSystem) verticalVelocity(w *ecs.World, e ecs.Entity) float64 {
	if s.mover == nil || s.mover.Grounded(e) {
		return 0
	}
	vy := 0.0
	if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent); ok {
		vy = body.VerticalVelocity
	}
	return vy - common.Gravity*s.dt
}

func onCooldown(w *ecs.World, e ecs.Entity) bool {
	cd, ok := ecs.Get(w, e, component.CooldownComponent)
	return ok && cd.Frames > 0
}

// startCooldown (re)arms the attack cooldown from the full duration.
func startCooldown(w *ecs.World, e ecs.Entity, frames int) {
	if frames <= 0 {
		return
	}
	_ = ecs.Add(w, e, component.CooldownComponent, component.Cooldown{Frames: frames})
}

// requestDamage folds a hit into the victim's pending DamageRequest.
func requestDamage(w *ecs.World, victim, source ecs.Entity, amount float64, at common.Vec3) {
	if amount <= 0 || !w.IsAlive(victim) || !ecs.Has(w, victim, component.HealthComponent) {
		return
	}
	if req, ok := ecs.Get(w, victim, component.DamageRequestComponent); ok {
		req.Amount += amount
		req.Hits++
		req.Source = uint64(source)
		req.Position = at
		return
	}
	_ = ecs.Add(w, victim, component.DamageRequestComponent, component.DamageRequest{
		Amount:   amount,
		Hits:     1,
		Source:   uint64(source),
		Position: at,
	})
}
