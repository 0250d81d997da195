package brain

import "math/rand"

// Params are the fixed learning constants of one agent.
type Params struct {
	Alpha   float64
	Gamma   float64
	Epsilon float64
}

// DefaultParams are used when a prefab leaves the learning constants unset.
func DefaultParams() Params {
	return Params{Alpha: 0.1, Gamma: 0.9, Epsilon: 0.1}
}

// LearnerStats counts what the learner has done so far.
type LearnerStats struct {
	Updates      int
	Explorations int
	Penalties    int
	LastReward   Reward
}

// Learner is a one-step tabular Q-learning policy. It owns its table.
type Learner struct {
	params Params
	table  *Table
	rng    *rand.Rand

	state   State
	action  Action
	started bool

	stats LearnerStats
}

func NewLearner(params Params, rng *rand.Rand) *Learner {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &Learner{
		params: params,
		table:  NewTable(LearnerActions),
		rng:    rng,
		action: ActionIdle,
	}
}

func (l *Learner) Params() Params {
	return l.params
}

func (l *Learner) Table() *Table {
	return l.table
}

func (l *Learner) Stats() LearnerStats {
	return l.stats
}

// Current returns the (state, action) pair the next update will credit.
// The bool is false before the first Step.
func (l *Learner) Current() (State, Action, bool) {
	return l.state, l.action, l.started
}

// Step credits reward to the previous (state, action), then selects and
// returns the action to take from next.
func (l *Learner) Step(next State, reward Reward) Action {
	l.stats.LastReward = reward
	if l.started {
		l.Update(l.state, l.action, reward.Total(), next)
	}
	selected := l.Select(next)
	l.state = next
	l.action = selected
	l.started = true
	return selected
}

// Update applies the one-step Bellman backup to (s, a).
func (l *Learner) Update(s State, a Action, reward float64, next State) {
	q := l.table.Get(s, a)
	target := reward + l.params.Gamma*l.table.Max(next)
	l.table.Set(s, a, q+l.params.Alpha*(target-q))
	l.stats.Updates++
}

// Select picks an action from s epsilon-greedily.
func (l *Learner) Select(s State) Action {
	if l.rng.Float64() < l.params.Epsilon {
		l.stats.Explorations++
		actions := l.table.Actions()
		return actions[l.rng.Intn(len(actions))]
	}
	return l.table.Best(s)
}

// Penalize pushes the current entry down in proportion to damage taken. It is
// applied immediately, outside the per-tick reward.
func (l *Learner) Penalize(damage float64) {
	if !l.started {
		return
	}
	l.table.Add(l.state, l.action, l.params.Alpha*(-damagePenalty*damage))
	l.stats.Penalties++
}
