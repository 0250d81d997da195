package component

type AgentTag struct{}

var AgentTagComponent = NewComponent[AgentTag]()

type TargetTag struct{}

var TargetTagComponent = NewComponent[TargetTag]()

type ObstacleTag struct{}

var ObstacleTagComponent = NewComponent[ObstacleTag]()

// Identity names an entity for logs and statistics.
type Identity struct {
	Name   string
	Prefab string
}

var IdentityComponent = NewComponent[Identity]()
