package brain

// Action is a stateless behavior tag chosen by a policy each tick.
type Action uint8

const (
	ActionIdle Action = iota
	ActionChase
	ActionAttack
	ActionRetreat
	ActionStrafeClockwise
	ActionStrafeCounterClockwise
)

// LearnerActions is the action set of the learning policy, in tie-break order.
var LearnerActions = []Action{
	ActionIdle,
	ActionChase,
	ActionAttack,
	ActionRetreat,
	ActionStrafeClockwise,
	ActionStrafeCounterClockwise,
}

// FSMActions is the action set of the threshold policy.
var FSMActions = []Action{
	ActionIdle,
	ActionChase,
	ActionAttack,
	ActionRetreat,
}

var actionNames = map[Action]string{
	ActionIdle:                   "idle",
	ActionChase:                  "chase",
	ActionAttack:                 "attack",
	ActionRetreat:                "retreat",
	ActionStrafeClockwise:        "strafe_cw",
	ActionStrafeCounterClockwise: "strafe_ccw",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// ParseAction resolves a name produced by Action.String.
func ParseAction(name string) (Action, bool) {
	for a, n := range actionNames {
		if n == name {
			return a, true
		}
	}
	return ActionIdle, false
}
