package system

import (
	"testing"

	"github.com/milk9111/skirmish/brain"
	"github.com/milk9111/skirmish/common"
	"github.com/milk9111/skirmish/ecs"
	"github.com/milk9111/skirmish/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDamageSystemAppliesRequests(t *testing.T) {
	w := ecs.NewWorld()
	var reported []float64
	feedback := FeedbackFunc(func(delta float64, _ common.Vec3) { reported = append(reported, delta) })
	target := spawnTestTarget(t, w, common.Vec3{})

	requestDamage(w, target, 0, 20, common.Vec3{})
	requestDamage(w, target, 0, 10, common.Vec3{})
	NewDamageSystem(feedback).Update(w)

	hp, _ := ecs.Get(w, target, component.HealthComponent)
	assert.Equal(t, 70.0, hp.Current)
	assert.Equal(t, []float64{30}, reported)
	assert.False(t, ecs.Has(w, target, component.DamageRequestComponent))
	assert.True(t, ecs.Has(w, target, component.DamageFlashComponent))
	assert.False(t, w.PendingDestroy(target))
}

func TestDamageSystemDefersDeathToEndOfTick(t *testing.T) {
	w := ecs.NewWorld()
	target := spawnTestTarget(t, w, common.Vec3{})

	var aliveAfterDamage bool
	var died int
	w.AddSystem(ecs.SystemFunc(func(w *ecs.World) {
		requestDamage(w, target, 0, 150, common.Vec3{})
	}))
	w.AddSystem(NewDamageSystem(nil))
	w.AddSystem(ecs.SystemFunc(func(w *ecs.World) {
		aliveAfterDamage = w.IsAlive(target)
		for _, evt := range w.Events().Peek() {
			if evt.Type == ecs.EventDied {
				died++
			}
		}
	}))

	w.Update()

	assert.True(t, aliveAfterDamage, "entity stays alive until the tick ends")
	assert.Equal(t, 1, died)
	assert.False(t, w.IsAlive(target))
}

func TestDamageSystemPenalizesCurrentLearnerEntry(t *testing.T) {
	w := ecs.NewWorld()
	target := spawnTestTarget(t, w, common.Vec3{})
	agent := spawnTestAgent(t, w, common.V3(12, 0, 0), testCombatant(), component.PolicyQLearning, target)
	damage := NewDamageSystem(nil)

	// Before the learner has acted there is no entry to penalise.
	requestDamage(w, agent, target, 5, common.Vec3{})
	damage.Update(w)
	br, _ := ecs.Get(w, agent, component.BrainComponent)
	assert.Equal(t, 0, br.Learner.Table().NonZero())

	NewAgentSystem(newFakeMover(), fakeRays{}, &fakeSpawner{}, testDT).Update(w)
	state, action, ok := br.Learner.Current()
	require.True(t, ok)
	before := br.Learner.Table().Snapshot()

	requestDamage(w, agent, target, 20, common.Vec3{})
	damage.Update(w)

	table := br.Learner.Table()
	assert.Equal(t, 1, table.NonZero())
	assert.InDelta(t, 0.1*(-0.5*20), table.Get(state, action)-before.Get(state, action), 1e-12)
	assert.Equal(t, 1, br.Learner.Stats().Penalties)

	hp, _ := ecs.Get(w, agent, component.HealthComponent)
	assert.Equal(t, 75.0, hp.Current)
	assert.Equal(t, 2, brain.HealthBin(hp.Fraction()))
}

func TestCooldownRearmRestarts(t *testing.T) {
	w := ecs.NewWorld()
	e := w.CreateEntity()
	sys := NewCooldownSystem()

	startCooldown(w, e, 5)
	sys.Update(w)
	sys.Update(w)
	cd, _ := ecs.Get(w, e, component.CooldownComponent)
	assert.Equal(t, 3, cd.Frames)

	startCooldown(w, e, 5)
	cd, _ = ecs.Get(w, e, component.CooldownComponent)
	assert.Equal(t, 5, cd.Frames)

	for i := 0; i < 5; i++ {
		assert.True(t, onCooldown(w, e))
		sys.Update(w)
	}
	assert.False(t, onCooldown(w, e))
	assert.False(t, ecs.Has(w, e, component.CooldownComponent))
}

func TestDamageFlashExpires(t *testing.T) {
	w := ecs.NewWorld()
	e := w.CreateEntity()
	require.NoError(t, ecs.Add(w, e, component.DamageFlashComponent, component.DamageFlash{Frames: 4, Interval: 2, On: true}))
	sys := NewDamageFlashSystem()

	sys.Update(w)
	df, _ := ecs.Get(w, e, component.DamageFlashComponent)
	assert.True(t, df.On)
	sys.Update(w)
	assert.False(t, df.On)
	sys.Update(w)
	sys.Update(w)
	assert.False(t, ecs.Has(w, e, component.DamageFlashComponent))
}
