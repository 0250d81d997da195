// Package aim computes where an agent points and fires given its own position
// and the position of the target it is pursuing.
package aim

import (
	"math"

	"github.com/milk9111/skirmish/common"
)

// TurnFactor is the per-tick yaw smoothing factor at the reference tick rate.
const TurnFactor = 0.15

// Solution is the result of solving the aim geometry for one tick.
type Solution struct {
	// AimPoint is the target position raised to the agent's firing height.
	AimPoint common.Vec3
	// GroundPoint is AimPoint projected onto the agent's own height.
	GroundPoint common.Vec3
	// Direction is the unit launch direction. Only meaningful when HasDirection is set.
	Direction    common.Vec3
	HasDirection bool
	// Yaw is the facing that points the forward axis at GroundPoint. Only
	// meaningful when HasYaw is set.
	Yaw    float64
	HasYaw bool
}

// Solve computes the aim solution for an agent at agent pursuing a target at
// target, firing from height above the agent origin.
func Solve(agent, target common.Vec3, height float64) Solution {
	m := common.Vec3{X: target.X, Y: agent.Y + height, Z: target.Z}
	g := common.Vec3{X: m.X, Y: agent.Y, Z: m.Z}

	sol := Solution{AimPoint: m, GroundPoint: g}
	sol.Direction, sol.HasDirection = m.Sub(agent).Normalize()

	dx := g.X - agent.X
	dz := g.Z - agent.Z
	if dx != 0 || dz != 0 {
		sol.Yaw = YawTowards(dx, dz)
		sol.HasYaw = true
	}
	return sol
}

// YawTowards returns the yaw whose forward axis points along (dx, dz).
func YawTowards(dx, dz float64) float64 {
	return -math.Atan2(dz, dx) + math.Pi/2 + math.Pi
}

// Forward returns the horizontal unit forward axis for a yaw.
func Forward(yaw float64) common.Vec3 {
	return common.Vec3{X: -math.Sin(yaw), Z: -math.Cos(yaw)}
}

// Aimer remembers the last valid launch direction so a degenerate tick keeps
// shooting where it last pointed.
type Aimer struct {
	last common.Vec3
	ok   bool
}

// Direction returns the solution's direction, or the last valid one when the
// solution is degenerate. The bool is false until a valid direction was seen.
func (a *Aimer) Direction(sol Solution) (common.Vec3, bool) {
	if a == nil {
		return sol.Direction, sol.HasDirection
	}
	if sol.HasDirection {
		a.last = sol.Direction
		a.ok = true
	}
	return a.last, a.ok
}
