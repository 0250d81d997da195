package component

// TargetScript drives an entity from a tengo script. Vars are exposed to the
// script as the "vars" map.
type TargetScript struct {
	Name   string
	Source string
	Vars   map[string]any
}

var TargetScriptComponent = NewComponent[TargetScript]()
