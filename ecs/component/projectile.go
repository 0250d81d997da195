package component

import "github.com/milk9111/skirmish/common"

// Projectile is a straight-line shot. Owner is the ecs.Entity that fired it;
// the owner's own collider is ignored by the hit test.
type Projectile struct {
	Owner    uint64
	Velocity common.Vec3
	Damage   float64
	Radius   float64
	Mask     uint
}

var ProjectileComponent = NewComponent[Projectile]()
