package system

import (
	"testing"

	"github.com/milk9111/skirmish/common"
	"github.com/milk9111/skirmish/ecs"
	"github.com/milk9111/skirmish/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectileSystemFliesStraight(t *testing.T) {
	w := ecs.NewWorld()
	sys := NewProjectileSystem(fakeHits{}, 0.5)
	sys.Spawn(ProjectileRequest{Direction: common.V3(2, 0, 0), Speed: 4, Damage: 5, Frames: 10})
	require.Equal(t, 1, sys.Pending())

	sys.Update(w)
	assert.Zero(t, sys.Pending())

	ents := w.Query(component.ProjectileComponent.Kind())
	require.Len(t, ents, 1)
	transform, _ := ecs.Get(w, ents[0], component.TransformComponent)
	assert.Equal(t, common.V3(2, 0, 0), transform.Position)
	p, _ := ecs.Get(w, ents[0], component.ProjectileComponent)
	assert.Equal(t, common.SightMask, p.Mask)
}

func TestProjectileSystemIgnoresDegenerateShots(t *testing.T) {
	sys := NewProjectileSystem(nil, testDT)
	sys.Spawn(ProjectileRequest{Speed: 10})
	sys.Spawn(ProjectileRequest{Direction: common.V3(1, 0, 0)})
	assert.Zero(t, sys.Pending())
}

func TestProjectileHitProducesDamageRequest(t *testing.T) {
	w := ecs.NewWorld()
	victim := spawnTestTarget(t, w, common.V3(1, 0, 0))
	shooter := w.CreateEntity()
	sys := NewProjectileSystem(fakeHits{victim: victim, at: common.V3(0.5, 0, 0), ok: true}, testDT)

	sys.Spawn(ProjectileRequest{Direction: common.V3(1, 0, 0), Speed: 30, Damage: 12, Owner: shooter})
	sys.Update(w)

	req, ok := ecs.Get(w, victim, component.DamageRequestComponent)
	require.True(t, ok)
	assert.Equal(t, 12.0, req.Amount)
	assert.Equal(t, uint64(shooter), req.Source)
	assert.Equal(t, common.V3(0.5, 0, 0), req.Position)

	shots := w.Query(component.ProjectileComponent.Kind())
	require.Len(t, shots, 1)
	assert.True(t, w.PendingDestroy(shots[0]))
}

func TestProjectileHitOnStaticGeometryOnlyDestroys(t *testing.T) {
	w := ecs.NewWorld()
	sys := NewProjectileSystem(fakeHits{ok: true}, testDT)
	sys.Spawn(ProjectileRequest{Direction: common.V3(0, 0, 1), Speed: 30, Damage: 12})

	w.AddSystem(sys)
	w.Update()

	assert.Empty(t, w.Query(component.ProjectileComponent.Kind()))
	assert.Empty(t, w.Query(component.DamageRequestComponent.Kind()))
}

func TestTTLExpiresProjectiles(t *testing.T) {
	w := ecs.NewWorld()
	sys := NewProjectileSystem(fakeHits{}, testDT)
	sys.Spawn(ProjectileRequest{Direction: common.V3(0, 0, 1), Speed: 1, Frames: 2})
	w.AddSystem(sys)
	w.AddSystem(NewTTLSystem())

	w.Update()
	assert.Len(t, w.Query(component.ProjectileComponent.Kind()), 1)
	w.Update()
	assert.Empty(t, w.Query(component.ProjectileComponent.Kind()))
}
