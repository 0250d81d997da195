package system

import (
	"github.com/milk9111/skirmish/common"
	"github.com/milk9111/skirmish/ecs"
	"github.com/milk9111/skirmish/ecs/component"
)

const (
	defaultProjectileRadius = 0.1
	defaultProjectileFrames = 3 * common.TPS
)

// HitTester sweeps a moving circle and reports the first collider it meets.
type HitTester interface {
	SweepHit(origin, dest common.Vec3, radius float64, mask uint, ignore ecs.Entity) (ecs.Entity, common.Vec3, bool)
}

// ProjectileSystem spawns queued shots, flies them in straight lines and
// turns contacts into damage requests.
type ProjectileSystem struct {
	hits    HitTester
	dt      float64
	pending []ProjectileRequest
}

func NewProjectileSystem(hits HitTester, dt float64) *ProjectileSystem {
	return &ProjectileSystem{hits: hits, dt: dt}
}

// Spawn queues a shot; it enters the world on the next Update.
func (s *ProjectileSystem) Spawn(req ProjectileRequest) {
	if s == nil || req.Speed <= 0 {
		return
	}
	dir, ok := req.Direction.Normalize()
	if !ok {
		return
	}
	req.Direction = dir
	s.pending = append(s.pending, req)
}

func (s *ProjectileSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	for _, req := range s.pending {
		s.create(w, req)
	}
	s.pending = s.pending[:0]

	ecs.ForEach(w, component.ProjectileComponent, func(e ecs.Entity, p *component.Projectile) {
		if w.PendingDestroy(e) {
			return
		}
		transform, ok := ecs.Get(w, e, component.TransformComponent)
		if !ok {
			return
		}
		from := transform.Position
		to := from.Add(p.Velocity.Scale(s.dt))

		if s.hits != nil {
			if victim, at, hit := s.hits.SweepHit(from, to, p.Radius, p.Mask, ecs.Entity(p.Owner)); hit {
				if victim.Valid() {
					requestDamage(w, victim, ecs.Entity(p.Owner), p.Damage, at)
				}
				transform.Position = at
				w.DestroyLater(e)
				return
			}
		}
		transform.Position = to
	})
}

func (s *ProjectileSystem) create(w *ecs.World, req ProjectileRequest) {
	mask := req.Mask
	if mask == 0 {
		mask = common.SightMask
	}
	frames := req.Frames
	if frames <= 0 {
		frames = defaultProjectileFrames
	}

	e := w.CreateEntity()
	_ = ecs.Add(w, e, component.TransformComponent, component.Transform{
		Position: req.Position,
	})
	_ = ecs.Add(w, e, component.ProjectileComponent, component.Projectile{
		Owner:    uint64(req.Owner),
		Velocity: req.Direction.Scale(req.Speed),
		Damage:   req.Damage,
		Radius:   defaultProjectileRadius,
		Mask:     mask,
	})
	_ = ecs.Add(w, e, component.TTLComponent, component.TTL{Frames: frames})
}

// Pending is the number of shots queued for the next Update.
func (s *ProjectileSystem) Pending() int {
	if s == nil {
		return 0
	}
	return len(s.pending)
}
