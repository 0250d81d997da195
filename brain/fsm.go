package brain

// ThresholdFSM is the baseline policy: a pure function of distance to target,
// re-evaluated from scratch every tick.
type ThresholdFSM struct {
	DetectionRange float64
	ShootingRange  float64
}

func (f ThresholdFSM) Evaluate(distance float64) Action {
	switch {
	case distance > f.DetectionRange:
		return ActionIdle
	case distance > f.ShootingRange:
		return ActionChase
	case distance < 0.5*f.ShootingRange:
		return ActionRetreat
	default:
		return ActionAttack
	}
}
