package system

import (
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/skirmish/aim"
	"github.com/milk9111/skirmish/common"
	"github.com/milk9111/skirmish/ecs"
	"github.com/milk9111/skirmish/ecs/component"
	"github.com/milk9111/skirmish/logger"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Neighbours finds the nearest dynamic body of a category.
type Neighbours interface {
	Nearest(point common.Vec3, maxDist float64, mask uint, ignore ecs.Entity) (ecs.Entity, float64, bool)
}

// TargetScriptSystem steers scripted entities. Each script defines
// update(engine, state); state persists between ticks.
type TargetScriptSystem struct {
	mover      Mover
	neighbours Neighbours
	spawner    ProjectileSpawner
	dt         float64

	cache map[ecs.Entity]*targetScriptRuntime
}

type targetScriptRuntime struct {
	source    string
	compiled  *tengo.Compiled
	stateData *tengo.Map
	failed    bool
}

const targetScriptDispatch = `
update(__engine, __state)
`

func NewTargetScriptSystem(mover Mover, neighbours Neighbours, spawner ProjectileSpawner, dt float64) *TargetScriptSystem {
	return &TargetScriptSystem{
		mover:      mover,
		neighbours: neighbours,
		spawner:    spawner,
		dt:         dt,
		cache:      make(map[ecs.Entity]*targetScriptRuntime),
	}
}

// Forget drops a cached runtime, e.g. from a world destroy hook.
func (s *TargetScriptSystem) Forget(e ecs.Entity) {
	if s == nil {
		return
	}
	delete(s.cache, e)
}

func (s *TargetScriptSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	for _, e := range w.Query(component.TargetScriptComponent.Kind(), component.TransformComponent.Kind()) {
		script, _ := ecs.Get(w, e, component.TargetScriptComponent)
		log := logger.Log.WithFields(logrus.Fields{
			"component": "target_script",
			"entity":    e.String(),
			"script":    script.Name,
		})

		rt, err := s.runtime(e, script)
		if err != nil {
			if !rt.failed {
				log.WithError(err).Warn("load target script")
				rt.failed = true
			}
			continue
		}

		ctx := &scriptContext{system: s, world: w, entity: e, script: script}
		if err := rt.run(buildTargetScriptEngine(ctx)); err != nil {
			log.WithError(err).Warn("target script update")
			continue
		}
		if ctx.moved && s.mover != nil {
			s.mover.Move(e, ctx.velocity)
		}
	}
}

func (s *TargetScriptSystem) runtime(e ecs.Entity, script *component.TargetScript) (*targetScriptRuntime, error) {
	if rt, ok := s.cache[e]; ok && rt.source == script.Source {
		if rt.compiled == nil {
			return rt, errors.New("script did not compile")
		}
		return rt, nil
	}

	rt := &targetScriptRuntime{
		source:    script.Source,
		stateData: &tengo.Map{Value: map[string]tengo.Object{}},
	}
	s.cache[e] = rt

	if strings.TrimSpace(script.Source) == "" {
		return rt, errors.Errorf("script %q is empty", script.Name)
	}
	compiled, err := compileTargetScript(script.Source)
	if err != nil {
		return rt, errors.Wrapf(err, "compile %s", script.Name)
	}
	rt.compiled = compiled
	return rt, nil
}

func compileTargetScript(source string) (*tengo.Compiled, error) {
	src := source + "\n" + targetScriptDispatch
	script := tengo.NewScript([]byte(src))
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__state", map[string]any{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	return script.Compile()
}

func (rt *targetScriptRuntime) run(engine *tengo.ImmutableMap) error {
	if rt == nil || rt.compiled == nil {
		return errors.New("nil script runtime")
	}
	if err := rt.compiled.Set("__engine", engine); err != nil {
		return err
	}
	if err := rt.compiled.Set("__state", rt.stateData); err != nil {
		return err
	}
	return rt.compiled.Run()
}

type scriptContext struct {
	system *TargetScriptSystem
	world  *ecs.World
	entity ecs.Entity
	script *component.TargetScript

	moved    bool
	velocity common.Vec3
}

func (ctx *scriptContext) position() common.Vec3 {
	if t, ok := ecs.Get(ctx.world, ctx.entity, component.TransformComponent); ok {
		return t.Position
	}
	return common.Vec3{}
}

func buildTargetScriptEngine(ctx *scriptContext) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["tick"] = &tengo.UserFunction{Name: "tick", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Int{Value: int64(ctx.world.Tick())}, nil
	}}

	values["dt"] = &tengo.UserFunction{Name: "dt", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Float{Value: ctx.system.dt}, nil
	}}

	values["position"] = &tengo.UserFunction{Name: "position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return vecObject(ctx.position()), nil
	}}

	values["health"] = &tengo.UserFunction{Name: "health", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if hp, ok := ecs.Get(ctx.world, ctx.entity, component.HealthComponent); ok {
			return &tengo.Float{Value: hp.Fraction()}, nil
		}
		return &tengo.Float{Value: 1}, nil
	}}

	values["move"] = &tengo.UserFunction{Name: "move", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 2 {
			return tengo.FalseValue, nil
		}
		vx, okX := tengo.ToFloat64(args[0])
		vz, okZ := tengo.ToFloat64(args[1])
		if !okX || !okZ {
			return tengo.FalseValue, nil
		}
		ctx.velocity = common.Vec3{X: vx, Z: vz}
		ctx.moved = true
		return tengo.TrueValue, nil
	}}

	values["nearest_agent"] = &tengo.UserFunction{Name: "nearest_agent", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if ctx.system.neighbours == nil {
			return tengo.UndefinedValue, nil
		}
		maxDist := 1e9
		if len(args) > 0 {
			if v, ok := tengo.ToFloat64(args[0]); ok && v > 0 {
				maxDist = v
			}
		}
		other, dist, ok := ctx.system.neighbours.Nearest(ctx.position(), maxDist, common.CategoryAgent, ctx.entity)
		if !ok {
			return tengo.UndefinedValue, nil
		}
		t, ok := ecs.Get(ctx.world, other, component.TransformComponent)
		if !ok {
			return tengo.UndefinedValue, nil
		}
		obj := vecObject(t.Position)
		obj.Value["distance"] = &tengo.Float{Value: dist}
		return obj, nil
	}}

	values["can_fire"] = &tengo.UserFunction{Name: "can_fire", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if onCooldown(ctx.world, ctx.entity) {
			return tengo.FalseValue, nil
		}
		return tengo.TrueValue, nil
	}}

	values["fire"] = &tengo.UserFunction{Name: "fire", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 2 || ctx.system.spawner == nil || onCooldown(ctx.world, ctx.entity) {
			return tengo.FalseValue, nil
		}
		x, okX := tengo.ToFloat64(args[0])
		z, okZ := tengo.ToFloat64(args[1])
		tuning, ok := ecs.Get(ctx.world, ctx.entity, component.CombatantComponent)
		if !okX || !okZ || !ok {
			return tengo.FalseValue, nil
		}
		self := ctx.position()
		sol := aim.Solve(self, common.Vec3{X: x, Y: self.Y, Z: z}, tuning.ProjectileHeight)
		if !sol.HasDirection {
			return tengo.FalseValue, nil
		}
		if sol.HasYaw {
			if t, ok := ecs.Get(ctx.world, ctx.entity, component.TransformComponent); ok {
				t.Yaw = sol.Yaw
			}
		}
		ctx.system.spawner.Spawn(ProjectileRequest{
			Position:  self,
			Direction: sol.Direction,
			Speed:     tuning.ProjectileSpeed,
			Damage:    tuning.Damage,
			Owner:     ctx.entity,
			Mask:      common.CategoryStatic | common.CategoryAgent,
			Frames:    tuning.ProjectileFrames,
		})
		startCooldown(ctx.world, ctx.entity, tuning.CooldownFrames)
		ctx.world.Events().Push(ecs.Event{Type: ecs.EventFired, Data: FiredEvent{Shooter: ctx.entity, Position: self}})
		return tengo.TrueValue, nil
	}}

	values["log"] = &tengo.UserFunction{Name: "log", Value: func(args ...tengo.Object) (tengo.Object, error) {
		parts := make([]string, 0, len(args))
		for _, a := range args {
			parts = append(parts, objectAsString(a))
		}
		logger.Log.WithFields(logrus.Fields{
			"component": "target_script",
			"entity":    ctx.entity.String(),
		}).Debug(strings.Join(parts, " "))
		return tengo.UndefinedValue, nil
	}}

	vars := map[string]tengo.Object{}
	for k, v := range ctx.script.Vars {
		obj, err := tengo.FromInterface(v)
		if err != nil {
			continue
		}
		vars[k] = obj
	}
	values["vars"] = &tengo.ImmutableMap{Value: vars}

	return &tengo.ImmutableMap{Value: values}
}

func vecObject(v common.Vec3) *tengo.Map {
	return &tengo.Map{Value: map[string]tengo.Object{
		"x": &tengo.Float{Value: v.X},
		"y": &tengo.Float{Value: v.Y},
		"z": &tengo.Float{Value: v.Z},
	}}
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	if s, ok := obj.(*tengo.String); ok {
		return s.Value
	}
	if s, ok := tengo.ToString(obj); ok {
		return s
	}
	return obj.String()
}
