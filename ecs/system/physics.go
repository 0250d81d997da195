package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/skirmish/common"
	"github.com/milk9111/skirmish/ecs"
	"github.com/milk9111/skirmish/ecs/component"
)

const (
	defaultBodyRadius = 0.5
	wallThickness     = 0.5
)

// PhysicsSystem owns a chipmunk space laid over the ground plane. Chipmunk
// resolves horizontal movement and wall contact; height is integrated here
// against a flat floor.
type PhysicsSystem struct {
	space *cp.Space
	dt    float64

	entities map[ecs.Entity]*bodyInfo
	owners   map[*cp.Shape]ecs.Entity
	pending  map[ecs.Entity]common.Vec3
}

type bodyInfo struct {
	body     *cp.Body
	shape    *cp.Shape
	shapes   []*cp.Shape
	static   bool
	grounded bool
}

func NewPhysicsSystem(dt float64) *PhysicsSystem {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{})
	return &PhysicsSystem{
		space:    space,
		dt:       dt,
		entities: make(map[ecs.Entity]*bodyInfo),
		owners:   make(map[*cp.Shape]ecs.Entity),
		pending:  make(map[ecs.Entity]common.Vec3),
	}
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

// Move records the velocity to apply on the next physics update.
func (ps *PhysicsSystem) Move(e ecs.Entity, velocity common.Vec3) {
	if ps == nil {
		return
	}
	ps.pending[e] = velocity
}

func (ps *PhysicsSystem) Grounded(e ecs.Entity) bool {
	if ps == nil {
		return false
	}
	info := ps.entities[e]
	return info != nil && info.grounded
}

// FirstHit casts a ray over the ground plane from origin to dest and returns
// the first dynamic body it meets. Height is ignored: every collider is an
// infinitely tall column.
func (ps *PhysicsSystem) FirstHit(origin, dest common.Vec3, mask uint, ignore ecs.Entity) (ecs.Entity, bool) {
	if ps == nil || ps.space == nil {
		return 0, false
	}
	start := planar(origin)
	end := planar(dest)
	if start.Equal(end) {
		return 0, false
	}
	filter := cp.NewShapeFilter(groupFor(ignore), cp.ALL_CATEGORIES, mask)
	info := ps.space.SegmentQueryFirst(start, end, 0, filter)
	if info.Shape == nil {
		return 0, false
	}
	return ps.owners[info.Shape], true
}

// SweepHit is FirstHit for a moving circle of the given radius. It also
// returns the contact point.
func (ps *PhysicsSystem) SweepHit(origin, dest common.Vec3, radius float64, mask uint, ignore ecs.Entity) (ecs.Entity, common.Vec3, bool) {
	if ps == nil || ps.space == nil {
		return 0, common.Vec3{}, false
	}
	start := planar(origin)
	end := planar(dest)
	if start.Equal(end) {
		return 0, common.Vec3{}, false
	}
	filter := cp.NewShapeFilter(groupFor(ignore), common.CategoryProjectile, mask)
	info := ps.space.SegmentQueryFirst(start, end, radius, filter)
	if info.Shape == nil {
		return 0, common.Vec3{}, false
	}
	point := common.Vec3{
		X: info.Point.X,
		Y: common.Lerp(origin.Y, dest.Y, info.Alpha),
		Z: info.Point.Y,
	}
	return ps.owners[info.Shape], point, true
}

// Nearest returns the closest dynamic body within maxDist whose category is
// in mask.
func (ps *PhysicsSystem) Nearest(point common.Vec3, maxDist float64, mask uint, ignore ecs.Entity) (ecs.Entity, float64, bool) {
	if ps == nil || ps.space == nil {
		return 0, 0, false
	}
	filter := cp.NewShapeFilter(groupFor(ignore), cp.ALL_CATEGORIES, mask)
	info := ps.space.PointQueryNearest(planar(point), maxDist, filter)
	if info == nil || info.Shape == nil {
		return 0, 0, false
	}
	e, ok := ps.owners[info.Shape]
	if !ok {
		return 0, 0, false
	}
	return e, math.Max(info.Distance, 0), true
}

// Release drops an entity's bodies. It is registered as a world destroy hook.
func (ps *PhysicsSystem) Release(e ecs.Entity) {
	if ps == nil {
		return
	}
	info := ps.entities[e]
	delete(ps.pending, e)
	if info == nil {
		return
	}
	ps.removeInfo(info)
	delete(ps.entities, e)
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}

	ps.Sync(w)

	for _, e := range w.Query(component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind()) {
		info := ps.entities[e]
		if info == nil || info.static {
			continue
		}
		vel := ps.pending[e]
		info.body.SetVelocity(vel.X, vel.Z)
		if bodyComp, ok := ecs.Get(w, e, component.PhysicsBodyComponent); ok {
			bodyComp.VerticalVelocity = vel.Y
		}
	}

	ps.space.Step(ps.dt)

	ps.syncTransforms(w)
	clear(ps.pending)
}

// Sync creates bodies for new physics entities and drops bodies whose
// entities are gone. Update calls it; builders may call it early so
// services answer queries before the first tick.
func (ps *PhysicsSystem) Sync(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}
	ps.cleanupEntities(w)
	ps.syncArenaBounds(w)

	for _, e := range w.Query(component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind()) {
		if ps.entities[e] != nil {
			continue
		}
		bodyComp, _ := ecs.Get(w, e, component.PhysicsBodyComponent)
		transform, _ := ecs.Get(w, e, component.TransformComponent)

		info := ps.createBodyInfo(e, transform, bodyComp)
		if info == nil {
			continue
		}
		ps.entities[e] = info
		bodyComp.Body = info.body
		bodyComp.Shape = info.shape
		bodyComp.Grounded = info.grounded
	}
}

func (ps *PhysicsSystem) createBodyInfo(e ecs.Entity, transform *component.Transform, bodyComp *component.PhysicsBody) *bodyInfo {
	pos := transform.Position

	if bodyComp.Static {
		width, depth := bodyComp.Width, bodyComp.Depth
		if width <= 0 || depth <= 0 {
			return nil
		}
		bb := cp.BB{L: pos.X - width/2, B: pos.Z - depth/2, R: pos.X + width/2, T: pos.Z + depth/2}
		shape := cp.NewBox2(ps.space.StaticBody, bb, 0)
		shape.SetFriction(0.8)
		shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, common.CategoryStatic, cp.ALL_CATEGORIES))
		ps.space.AddShape(shape)
		return &bodyInfo{body: ps.space.StaticBody, shape: shape, shapes: []*cp.Shape{shape}, static: true}
	}

	radius := bodyComp.Radius
	if radius <= 0 {
		radius = defaultBodyRadius
	}
	mass := bodyComp.Mass
	if mass <= 0 {
		mass = 1
	}
	category := bodyComp.Category
	if category == 0 {
		category = common.CategoryAgent
	}

	body := cp.NewBody(mass, math.Inf(1))
	body.SetPosition(cp.Vector{X: pos.X, Y: pos.Z})

	shape := cp.NewCircle(body, radius, cp.Vector{})
	shape.SetFriction(0)
	shape.SetElasticity(0)
	shape.SetFilter(cp.NewShapeFilter(groupFor(e), category, cp.ALL_CATEGORIES))

	ps.space.AddBody(body)
	ps.space.AddShape(shape)
	ps.owners[shape] = e

	return &bodyInfo{
		body:     body,
		shape:    shape,
		shapes:   []*cp.Shape{shape},
		grounded: pos.Y <= common.FloorY,
	}
}

// syncArenaBounds walls in the arena once its bounds entity appears.
func (ps *PhysicsSystem) syncArenaBounds(w *ecs.World) {
	boundsEntity, ok := w.First(component.ArenaBoundsComponent.Kind())
	if !ok {
		return
	}
	if _, exists := ps.entities[boundsEntity]; exists {
		return
	}
	bounds, _ := ecs.Get(w, boundsEntity, component.ArenaBoundsComponent)
	if bounds.Width <= 0 || bounds.Depth <= 0 {
		return
	}

	segments := []struct {
		a cp.Vector
		b cp.Vector
	}{
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: bounds.Width, Y: 0}},
		{a: cp.Vector{X: 0, Y: bounds.Depth}, b: cp.Vector{X: bounds.Width, Y: bounds.Depth}},
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: 0, Y: bounds.Depth}},
		{a: cp.Vector{X: bounds.Width, Y: 0}, b: cp.Vector{X: bounds.Width, Y: bounds.Depth}},
	}

	info := &bodyInfo{static: true, body: ps.space.StaticBody}
	for _, seg := range segments {
		shape := cp.NewSegment(ps.space.StaticBody, seg.a, seg.b, wallThickness)
		shape.SetFriction(0.8)
		shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, common.CategoryStatic, cp.ALL_CATEGORIES))
		ps.space.AddShape(shape)
		info.shapes = append(info.shapes, shape)
	}
	ps.entities[boundsEntity] = info
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	for e, info := range ps.entities {
		if info.static {
			continue
		}
		transform, ok := ecs.Get(w, e, component.TransformComponent)
		if !ok {
			continue
		}
		bodyComp, ok := ecs.Get(w, e, component.PhysicsBodyComponent)
		if !ok {
			continue
		}

		p := info.body.Position()
		transform.Position.X = p.X
		transform.Position.Z = p.Y

		y := transform.Position.Y + bodyComp.VerticalVelocity*ps.dt
		if y <= common.FloorY {
			y = common.FloorY
			bodyComp.VerticalVelocity = 0
			info.grounded = true
		} else {
			info.grounded = false
		}
		transform.Position.Y = y
		bodyComp.Grounded = info.grounded
	}
}

func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.entities {
		if w.IsAlive(e) && (ecs.Has(w, e, component.PhysicsBodyComponent) || ecs.Has(w, e, component.ArenaBoundsComponent)) {
			continue
		}
		ps.removeInfo(info)
		delete(ps.entities, e)
	}
}

func (ps *PhysicsSystem) removeInfo(info *bodyInfo) {
	for _, shape := range info.shapes {
		delete(ps.owners, shape)
		ps.space.RemoveShape(shape)
	}
	if !info.static && info.body != nil {
		ps.space.RemoveBody(info.body)
	}
}

func planar(v common.Vec3) cp.Vector {
	return cp.Vector{X: v.X, Y: v.Z}
}

func groupFor(e ecs.Entity) uint {
	if !e.Valid() {
		return cp.NO_GROUP
	}
	return e.Index()
}
