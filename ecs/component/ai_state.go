package component

import (
	"github.com/milk9111/skirmish/aim"
	"github.com/milk9111/skirmish/brain"
)

// Policy names the decision policy driving an agent.
type Policy string

const (
	PolicyFSM       Policy = "fsm"
	PolicyQLearning Policy = "qlearning"
)

// Brain stores per-agent decision state. The learner, when present, is owned
// by this agent alone and dies with it.
type Brain struct {
	Policy     Policy
	FSM        brain.ThresholdFSM
	Classifier brain.Classifier
	Learner    *brain.Learner

	Action brain.Action
	State  brain.State

	Aimer  aim.Aimer
	Turner aim.Turner

	// TargetWarned is set once a missing target has been reported.
	TargetWarned bool

	ActionCounts map[brain.Action]int
}

var BrainComponent = NewComponent[Brain]()
