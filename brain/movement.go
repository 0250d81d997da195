package brain

import "github.com/milk9111/skirmish/common"

// Intent converts an action into a horizontal velocity. toTarget is the
// vector from agent to target; its vertical component is ignored.
func Intent(a Action, toTarget common.Vec3, speed float64) common.Vec3 {
	flat := toTarget.Flat()
	var dir common.Vec3
	switch a {
	case ActionChase:
		dir = flat
	case ActionRetreat:
		dir = flat.Scale(-1)
	case ActionStrafeClockwise:
		dir = common.Vec3{X: -flat.Z, Z: flat.X}
	case ActionStrafeCounterClockwise:
		dir = common.Vec3{X: flat.Z, Z: -flat.X}
	default:
		return common.Vec3{}
	}
	unit, ok := dir.Normalize()
	if !ok {
		return common.Vec3{}
	}
	return unit.Scale(speed)
}
