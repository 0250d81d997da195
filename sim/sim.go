// Package sim builds an arena world from a scenario prefab and steps it at a
// fixed timestep.
package sim

import (
	"context"
	"math/rand"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/milk9111/skirmish/aim"
	"github.com/milk9111/skirmish/brain"
	"github.com/milk9111/skirmish/common"
	"github.com/milk9111/skirmish/ecs"
	"github.com/milk9111/skirmish/ecs/component"
	"github.com/milk9111/skirmish/ecs/system"
	"github.com/milk9111/skirmish/logger"
	"github.com/milk9111/skirmish/prefabs"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Env is what a scenario's stop_when expression can see.
type Env struct {
	Tick         int
	TargetHealth float64
	TargetAlive  bool
	AgentsAlive  int
	Shots        int
	Hits         int
}

// Options tune Build. Zero values use the scenario as written.
type Options struct {
	// Seed replaces the scenario seed when SeedSet is true.
	Seed    int64
	SeedSet bool
	// Feedback receives applied damage; defaults to a log sink.
	Feedback system.Feedback
	// LoadCombatant and LoadScript resolve prefab names; default to the prefabs package.
	LoadCombatant func(name string) (prefabs.CombatantSpec, error)
	LoadScript    func(name string) ([]byte, error)
}

// Sim is one running scenario.
type Sim struct {
	spec prefabs.ScenarioSpec
	dt   float64
	seed int64

	world       *ecs.World
	physics     *system.PhysicsSystem
	projectiles *system.ProjectileSystem
	scripts     *system.TargetScriptSystem
	stop        *vm.Program

	target ecs.Entity
	agents []*agentRecord
	stats  Stats
	log    *logrus.Entry
}

type agentRecord struct {
	entity ecs.Entity
	name   string
	prefab string
	policy component.Policy
	alive  bool
	final  AgentStats
}

// Build creates the world, spawns the target and agents and installs the
// system schedule.
func Build(spec prefabs.ScenarioSpec, opts Options) (*Sim, error) {
	spec = spec.Defaults()
	if opts.LoadCombatant == nil {
		opts.LoadCombatant = prefabs.LoadCombatant
	}
	if opts.LoadScript == nil {
		opts.LoadScript = prefabs.LoadScript
	}
	if opts.Feedback == nil {
		opts.Feedback = system.LogFeedback{}
	}
	seed := spec.Seed
	if opts.SeedSet {
		seed = opts.Seed
	}

	stop, err := expr.Compile(spec.StopWhen, expr.Env(Env{}), expr.AsBool())
	if err != nil {
		return nil, errors.Wrapf(err, "sim: compile stop_when %q", spec.StopWhen)
	}

	dt := 1.0 / float64(spec.TPS)
	s := &Sim{
		spec:    spec,
		dt:      dt,
		seed:    seed,
		world:   ecs.NewWorld(),
		physics: system.NewPhysicsSystem(dt),
		stop:    stop,
		log:     logger.For("sim").WithField("scenario", spec.Name),
	}
	s.projectiles = system.NewProjectileSystem(s.physics, dt)
	s.scripts = system.NewTargetScriptSystem(s.physics, s.physics, s.projectiles, dt)
	s.world.OnDestroy(s.physics.Release)
	s.world.OnDestroy(s.scripts.Forget)

	s.spawnArena()

	target, err := s.spawnTarget(spec.Target, opts)
	if err != nil {
		return nil, err
	}
	s.target = target

	for i, spawn := range spec.Agents {
		rng := rand.New(rand.NewSource(seed + int64(i) + 1))
		if err := s.spawnAgent(spawn, opts, rng); err != nil {
			return nil, err
		}
	}

	w := s.world
	w.AddSystem(s.scripts)
	w.AddSystem(system.NewAgentSystem(s.physics, s.physics, s.projectiles, dt))
	w.AddSystem(s.projectiles)
	w.AddSystem(s.physics)
	w.AddSystem(system.NewDamageSystem(opts.Feedback))
	w.AddSystem(system.NewCooldownSystem())
	w.AddSystem(system.NewDamageFlashSystem())
	w.AddSystem(system.NewTTLSystem())
	w.AddSystem(ecs.SystemFunc(s.collect))

	s.physics.Sync(w)

	s.log.WithFields(logrus.Fields{
		"agents": len(s.agents),
		"seed":   seed,
		"tps":    spec.TPS,
	}).Info("scenario built")
	return s, nil
}

func (s *Sim) spawnArena() {
	w := s.world
	bounds := w.CreateEntity()
	_ = ecs.Add(w, bounds, component.ArenaBoundsComponent, component.ArenaBounds{
		Width: s.spec.Arena.Width,
		Depth: s.spec.Arena.Depth,
	})

	for _, o := range s.spec.Obstacles {
		e := w.CreateEntity()
		_ = ecs.Add(w, e, component.ObstacleTagComponent, component.ObstacleTag{})
		_ = ecs.Add(w, e, component.TransformComponent, component.Transform{Position: common.V3(o.X, common.FloorY, o.Z)})
		_ = ecs.Add(w, e, component.PhysicsBodyComponent, component.PhysicsBody{
			Static:   true,
			Width:    o.Width,
			Depth:    o.Depth,
			Category: common.CategoryStatic,
		})
	}
}

func (s *Sim) spawnCombatant(spawn prefabs.SpawnSpec, spec prefabs.CombatantSpec, category uint) ecs.Entity {
	w := s.world
	name := spawn.Name
	if name == "" {
		name = spec.Name
	}

	e := w.CreateEntity()
	_ = ecs.Add(w, e, component.IdentityComponent, component.Identity{Name: name, Prefab: spawn.Prefab})
	_ = ecs.Add(w, e, component.TransformComponent, component.Transform{Position: common.V3(spawn.X, spawn.Y, spawn.Z)})
	_ = ecs.Add(w, e, component.HealthComponent, component.Health{Max: spec.Health, Current: spec.Health})
	_ = ecs.Add(w, e, component.CombatantComponent, combatantFromSpec(spec))
	_ = ecs.Add(w, e, component.PhysicsBodyComponent, component.PhysicsBody{
		Radius:   spec.Radius,
		Mass:     1,
		Category: category,
	})
	return e
}

func (s *Sim) spawnTarget(spawn prefabs.SpawnSpec, opts Options) (ecs.Entity, error) {
	spec, err := opts.LoadCombatant(spawn.Prefab)
	if err != nil {
		return 0, errors.Wrap(err, "sim: target")
	}
	e := s.spawnCombatant(spawn, spec, common.CategoryTarget)
	_ = ecs.Add(s.world, e, component.TargetTagComponent, component.TargetTag{})

	if spec.Script != "" {
		src, err := opts.LoadScript(spec.Script)
		if err != nil {
			return 0, errors.Wrap(err, "sim: target script")
		}
		_ = ecs.Add(s.world, e, component.TargetScriptComponent, component.TargetScript{
			Name:   spec.Script,
			Source: string(src),
			Vars:   spec.Vars,
		})
	}
	return e, nil
}

func (s *Sim) spawnAgent(spawn prefabs.SpawnSpec, opts Options, rng *rand.Rand) error {
	spec, err := opts.LoadCombatant(spawn.Prefab)
	if err != nil {
		return errors.Wrapf(err, "sim: agent %s", spawn.Prefab)
	}
	e := s.spawnCombatant(spawn, spec, common.CategoryAgent)

	br := component.Brain{
		Policy:       component.Policy(spec.Policy),
		FSM:          brain.ThresholdFSM{DetectionRange: spec.DetectionRange, ShootingRange: spec.ShootingRange},
		Classifier:   brain.Classifier{DetectionRange: spec.DetectionRange},
		Turner:       aim.NewTurner(spec.FrameLockedTurn),
		ActionCounts: make(map[brain.Action]int),
	}
	if br.Policy == component.PolicyQLearning {
		br.Learner = brain.NewLearner(spec.Learning.Params(), rng)
	}

	w := s.world
	_ = ecs.Add(w, e, component.AgentTagComponent, component.AgentTag{})
	_ = ecs.Add(w, e, component.BrainComponent, br)
	_ = ecs.Add(w, e, component.TargetComponent, component.Target{Entity: uint64(s.target)})

	id, _ := ecs.Get(w, e, component.IdentityComponent)
	s.agents = append(s.agents, &agentRecord{
		entity: e,
		name:   id.Name,
		prefab: spawn.Prefab,
		policy: br.Policy,
		alive:  true,
	})
	s.log.WithFields(logrus.Fields{"agent": id.Name, "policy": br.Policy}).Debug("agent spawned")
	return nil
}

func combatantFromSpec(spec prefabs.CombatantSpec) component.Combatant {
	return component.Combatant{
		MoveSpeed:        spec.MoveSpeed,
		DetectionRange:   spec.DetectionRange,
		ShootingRange:    spec.ShootingRange,
		Attack:           component.AttackKind(spec.Attack),
		Damage:           spec.Damage,
		CooldownFrames:   spec.CooldownFrames,
		ProjectileHeight: spec.ProjectileHeight,
		ProjectileSpeed:  spec.ProjectileSpeed,
		ProjectileFrames: spec.ProjectileFrames,
		MeleeReach:       spec.MeleeReach,
	}
}

// Step advances one fixed tick.
func (s *Sim) Step() {
	s.world.Update()
	s.stats.Ticks++
}

// Env snapshots the values visible to stop_when.
func (s *Sim) Env() Env {
	env := Env{
		Tick:        s.stats.Ticks,
		TargetAlive: s.world.IsAlive(s.target),
		Shots:       s.stats.Shots,
		Hits:        s.stats.Hits,
	}
	if hp, ok := ecs.Get(s.world, s.target, component.HealthComponent); ok {
		env.TargetHealth = hp.Current
	}
	for _, a := range s.agents {
		if a.alive {
			env.AgentsAlive++
		}
	}
	return env
}

// Done reports whether the stop condition holds or the tick cap was reached.
func (s *Sim) Done() bool {
	if s.stats.Ticks >= s.spec.MaxTicks {
		return true
	}
	out, err := expr.Run(s.stop, s.Env())
	if err != nil {
		s.log.WithError(err).Warn("stop_when evaluation failed")
		return true
	}
	done, _ := out.(bool)
	return done
}

// Run steps until Done, ctx is cancelled or maxTicks ticks have run in this
// call. maxTicks <= 0 means no extra cap. onTick may be nil.
func (s *Sim) Run(ctx context.Context, maxTicks int, onTick func(*Sim)) error {
	for ran := 0; !s.Done(); ran++ {
		if maxTicks > 0 && ran >= maxTicks {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		s.Step()
		if onTick != nil {
			onTick(s)
		}
	}
	return nil
}

func (s *Sim) World() *ecs.World              { return s.world }
func (s *Sim) Physics() *system.PhysicsSystem { return s.physics }
func (s *Sim) Spec() prefabs.ScenarioSpec     { return s.spec }
func (s *Sim) Target() ecs.Entity             { return s.target }
func (s *Sim) DT() float64                    { return s.dt }
func (s *Sim) Seed() int64                    { return s.seed }

// Agents returns the live agent entities in spawn order.
func (s *Sim) Agents() []ecs.Entity {
	out := make([]ecs.Entity, 0, len(s.agents))
	for _, a := range s.agents {
		if a.alive && s.world.IsAlive(a.entity) {
			out = append(out, a.entity)
		}
	}
	return out
}
