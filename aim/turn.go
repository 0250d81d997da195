package aim

import (
	"math"

	"github.com/milk9111/skirmish/common"
)

// Turner smooths yaw changes toward a target yaw.
//
// With FrameLocked set the factor is applied as-is once per tick, so turn
// speed depends on the tick rate. Otherwise the factor is rescaled as an
// exponential decay so that it equals Factor at ReferenceTPS and gives the
// same turn per second at any other rate.
type Turner struct {
	Factor       float64
	ReferenceTPS float64
	FrameLocked  bool
}

func NewTurner(frameLocked bool) Turner {
	return Turner{Factor: TurnFactor, ReferenceTPS: common.TPS, FrameLocked: frameLocked}
}

// Alpha returns the interpolation weight for a tick of length dt seconds.
func (t Turner) Alpha(dt float64) float64 {
	k := t.Factor
	if k <= 0 {
		return 0
	}
	if k >= 1 {
		return 1
	}
	if t.FrameLocked || dt <= 0 {
		return k
	}
	ref := t.ReferenceTPS
	if ref <= 0 {
		ref = common.TPS
	}
	return 1 - math.Pow(1-k, dt*ref)
}

// Step returns the smoothed yaw after one tick, wrapped into [0, 2π).
func (t Turner) Step(current, target, dt float64) float64 {
	return common.WrapAngle(common.LerpAngle(current, target, t.Alpha(dt)))
}
