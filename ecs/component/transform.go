package component

import "github.com/milk9111/skirmish/common"

// Transform is an entity's world position and facing around the vertical axis.
type Transform struct {
	Position common.Vec3
	Yaw      float64
}

var TransformComponent = NewComponent[Transform]()
