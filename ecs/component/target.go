package component

// Target is the entity an agent pursues, stored as a raw ecs.Entity handle.
// It is assigned at spawn and never looked up by group.
type Target struct {
	Entity uint64
}

var TargetComponent = NewComponent[Target]()
