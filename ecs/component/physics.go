package component

import "github.com/jakecoffman/cp"

// PhysicsBody stores Chipmunk2D runtime data and collider configuration.
// The chipmunk plane is the ground plane: body X is world X, body Y is world Z.
// Height is integrated outside chipmunk.
type PhysicsBody struct {
	Body  *cp.Body
	Shape *cp.Shape

	Radius float64
	Width  float64
	Depth  float64
	Mass   float64
	Static bool

	// Category is one of the common.Category* bits.
	Category uint

	VerticalVelocity float64
	Grounded         bool
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()

// ArenaBounds is the walled floor rectangle [0, Width] x [0, Depth].
type ArenaBounds struct {
	Width float64
	Depth float64
}

var ArenaBoundsComponent = NewComponent[ArenaBounds]()
