package brain

import (
	"math"

	"github.com/milk9111/skirmish/common"
)

const (
	rangeWeight      = 0.1
	standOffFraction = 0.75
	facingWeight     = 2.0
	sightBonus       = 1.0
	lowHealthLine    = 0.3
	lowHealthWeight  = 5.0
	damagePenalty    = 0.5
)

// Observation is what the reward is computed from on one tick.
type Observation struct {
	Distance       float64
	ShootingRange  float64
	ToTarget       common.Vec3
	Forward        common.Vec3
	LineOfSight    bool
	HealthFraction float64
}

// Reward breaks a tick's reward into its shaped terms.
type Reward struct {
	Range     float64
	Facing    float64
	Sight     float64
	LowHealth float64
}

func (r Reward) Total() float64 {
	return r.Range + r.Facing + r.Sight + r.LowHealth
}

// ComputeReward evaluates the shaped reward for one tick.
func ComputeReward(o Observation) Reward {
	var r Reward
	r.Range = -rangeWeight * math.Abs(o.Distance-standOffFraction*o.ShootingRange)
	if dir, ok := o.ToTarget.Normalize(); ok {
		r.Facing = facingWeight * dir.Dot(o.Forward)
	}
	if o.LineOfSight {
		r.Sight = sightBonus
	}
	if o.HealthFraction < lowHealthLine {
		r.LowHealth = -lowHealthWeight * (lowHealthLine - o.HealthFraction)
	}
	return r
}
