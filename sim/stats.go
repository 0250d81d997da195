package sim

import (
	"sort"

	"github.com/milk9111/skirmish/brain"
	"github.com/milk9111/skirmish/ecs"
	"github.com/milk9111/skirmish/ecs/component"
	"github.com/milk9111/skirmish/ecs/system"
)

// Stats summarises a run so far.
type Stats struct {
	Ticks       int
	Shots       int
	Hits        int
	DamageDealt float64
	DamageTaken float64
	Deaths      int
	TargetDied  bool
	Agents      []AgentStats
}

// AgentStats is one agent's record. It is frozen when the agent dies.
type AgentStats struct {
	Name         string
	Prefab       string
	Policy       component.Policy
	Alive        bool
	Health       float64
	Actions      map[string]int
	Updates      int
	Explorations int
	Penalties    int
	TableEntries int
}

// ActionNames returns the recorded action names in action order. Names that
// do not parse sort last, alphabetically.
func (a AgentStats) ActionNames() []string {
	names := make([]string, 0, len(a.Actions))
	for name := range a.Actions {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		ai, okI := brain.ParseAction(names[i])
		aj, okJ := brain.ParseAction(names[j])
		if okI != okJ {
			return okI
		}
		if okI && ai != aj {
			return ai < aj
		}
		return names[i] < names[j]
	})
	return names
}

// Stats returns a snapshot including the current state of live agents.
func (s *Sim) Stats() Stats {
	out := s.stats
	out.Agents = make([]AgentStats, 0, len(s.agents))
	for _, a := range s.agents {
		if a.alive {
			out.Agents = append(out.Agents, s.agentStats(a))
			continue
		}
		out.Agents = append(out.Agents, a.final)
	}
	return out
}

func (s *Sim) agentStats(a *agentRecord) AgentStats {
	st := AgentStats{
		Name:    a.name,
		Prefab:  a.prefab,
		Policy:  a.policy,
		Alive:   a.alive,
		Actions: map[string]int{},
	}
	w := s.world
	if hp, ok := ecs.Get(w, a.entity, component.HealthComponent); ok {
		st.Health = hp.Current
	}
	if br, ok := ecs.Get(w, a.entity, component.BrainComponent); ok {
		for action, n := range br.ActionCounts {
			st.Actions[action.String()] = n
		}
		if br.Learner != nil {
			ls := br.Learner.Stats()
			st.Updates = ls.Updates
			st.Explorations = ls.Explorations
			st.Penalties = ls.Penalties
			st.TableEntries = br.Learner.Table().NonZero()
		}
	}
	return st
}

func (s *Sim) recordFor(e ecs.Entity) *agentRecord {
	for _, a := range s.agents {
		if a.entity == e {
			return a
		}
	}
	return nil
}

// collect runs last in the schedule, while this tick's events are still
// queued and dying entities are still alive.
func (s *Sim) collect(w *ecs.World) {
	for _, evt := range w.Events().Peek() {
		switch evt.Type {
		case ecs.EventFired:
			data, ok := evt.Data.(system.FiredEvent)
			if ok && s.recordFor(data.Shooter) != nil {
				s.stats.Shots++
			}
		case ecs.EventDamaged:
			data, ok := evt.Data.(system.DamagedEvent)
			if !ok {
				continue
			}
			if data.Entity == s.target {
				s.stats.Hits++
				s.stats.DamageDealt += data.Amount
			} else if s.recordFor(data.Entity) != nil {
				s.stats.DamageTaken += data.Amount
			}
		case ecs.EventDied:
			data, ok := evt.Data.(system.DiedEvent)
			if !ok {
				continue
			}
			if data.Entity == s.target {
				s.stats.TargetDied = true
				continue
			}
			if a := s.recordFor(data.Entity); a != nil && a.alive {
				a.final = s.agentStats(a)
				a.final.Alive = false
				a.final.Health = 0
				a.alive = false
				s.stats.Deaths++
			}
		}
	}
}

// ActionShare is the fraction of ticks an agent spent on action.
func (a AgentStats) ActionShare(action brain.Action) float64 {
	total := 0
	for _, n := range a.Actions {
		total += n
	}
	if total == 0 {
		return 0
	}
	return float64(a.Actions[action.String()]) / float64(total)
}
