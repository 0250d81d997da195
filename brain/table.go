package brain

import (
	"fmt"
	"math"
)

// Table is a dense value table over every (State, Action) pair of the
// learner's action set. Every entry exists from construction and starts at 0.
type Table struct {
	actions []Action
	index   map[Action]int
	values  []float64
}

func NewTable(actions []Action) *Table {
	ordered := append([]Action(nil), actions...)
	index := make(map[Action]int, len(ordered))
	for i, a := range ordered {
		index[a] = i
	}
	return &Table{
		actions: ordered,
		index:   index,
		values:  make([]float64, DistanceBins*HealthBins*AngleBins*len(ordered)),
	}
}

// Actions returns the table's action ordering.
func (t *Table) Actions() []Action {
	return t.actions
}

func (t *Table) offset(s State) int {
	return ((s.Distance*HealthBins+s.Health)*AngleBins + s.Angle) * len(t.actions)
}

// column panics for an action outside the table's ordering.
func (t *Table) column(a Action) int {
	i, ok := t.index[a]
	if !ok {
		panic(fmt.Sprintf("brain: action %s is not in this table", a))
	}
	return i
}

func (t *Table) Get(s State, a Action) float64 {
	return t.values[t.offset(s)+t.column(a)]
}

func (t *Table) Set(s State, a Action, v float64) {
	t.values[t.offset(s)+t.column(a)] = v
}

func (t *Table) Add(s State, a Action, delta float64) {
	t.values[t.offset(s)+t.column(a)] += delta
}

// Max returns the highest value available from s.
func (t *Table) Max(s State) float64 {
	row := t.row(s)
	best := math.Inf(-1)
	for _, v := range row {
		if v > best {
			best = v
		}
	}
	return best
}

// Best returns the highest-valued action from s. Ties go to the action that
// comes first in the table's ordering.
func (t *Table) Best(s State) Action {
	row := t.row(s)
	best := 0
	for i := 1; i < len(row); i++ {
		if row[i] > row[best] {
			best = i
		}
	}
	return t.actions[best]
}

func (t *Table) row(s State) []float64 {
	off := t.offset(s)
	return t.values[off : off+len(t.actions)]
}

// Snapshot returns an independent copy of the table.
func (t *Table) Snapshot() *Table {
	cp := NewTable(t.actions)
	copy(cp.values, t.values)
	return cp
}

// Len is the number of stored entries.
func (t *Table) Len() int {
	return len(t.values)
}

// NonZero counts entries that have moved away from their initial value.
func (t *Table) NonZero() int {
	n := 0
	for _, v := range t.values {
		if v != 0 {
			n++
		}
	}
	return n
}
