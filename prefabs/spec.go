package prefabs

import (
	"github.com/milk9111/skirmish/brain"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// LoadSpec decodes a prefab file into T.
func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, err
	}
	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, errors.Wrapf(err, "prefabs: unmarshal %s", filename)
	}
	return spec, nil
}

// LearningSpec holds the Q-learning constants. Unset values take
// brain.DefaultParams; an explicit zero is kept.
type LearningSpec struct {
	Alpha   *float64 `yaml:"alpha,omitempty" json:"alpha,omitempty"`
	Gamma   *float64 `yaml:"gamma,omitempty" json:"gamma,omitempty"`
	Epsilon *float64 `yaml:"epsilon,omitempty" json:"epsilon,omitempty"`
}

func (s LearningSpec) Params() brain.Params {
	p := brain.DefaultParams()
	if s.Alpha != nil {
		p.Alpha = *s.Alpha
	}
	if s.Gamma != nil {
		p.Gamma = *s.Gamma
	}
	if s.Epsilon != nil {
		p.Epsilon = *s.Epsilon
	}
	return p
}

// CombatantSpec describes an agent or a target.
type CombatantSpec struct {
	Name   string `yaml:"name" json:"name"`
	Policy string `yaml:"policy,omitempty" json:"policy,omitempty" jsonschema:"enum=fsm,enum=qlearning"`

	Health         float64 `yaml:"health" json:"health"`
	Radius         float64 `yaml:"radius,omitempty" json:"radius,omitempty"`
	MoveSpeed      float64 `yaml:"move_speed" json:"move_speed"`
	DetectionRange float64 `yaml:"detection_range,omitempty" json:"detection_range,omitempty"`
	ShootingRange  float64 `yaml:"shooting_range,omitempty" json:"shooting_range,omitempty"`

	Attack           string  `yaml:"attack,omitempty" json:"attack,omitempty" jsonschema:"enum=projectile,enum=melee"`
	Damage           float64 `yaml:"damage" json:"damage"`
	CooldownFrames   int     `yaml:"cooldown_frames" json:"cooldown_frames"`
	ProjectileHeight float64 `yaml:"projectile_height,omitempty" json:"projectile_height,omitempty"`
	ProjectileSpeed  float64 `yaml:"projectile_speed,omitempty" json:"projectile_speed,omitempty"`
	ProjectileFrames int     `yaml:"projectile_frames,omitempty" json:"projectile_frames,omitempty"`
	MeleeReach       float64 `yaml:"melee_reach,omitempty" json:"melee_reach,omitempty"`

	FrameLockedTurn bool         `yaml:"frame_locked_turn,omitempty" json:"frame_locked_turn,omitempty"`
	Learning        LearningSpec `yaml:"learning,omitempty" json:"learning,omitempty"`

	// Script and Vars drive a target from prefabs/scripts.
	Script string         `yaml:"script,omitempty" json:"script,omitempty"`
	Vars   map[string]any `yaml:"vars,omitempty" json:"vars,omitempty"`
}

// Defaults fills unset numeric fields.
func (s CombatantSpec) Defaults() CombatantSpec {
	if s.Policy == "" {
		s.Policy = "fsm"
	}
	if s.Health <= 0 {
		s.Health = 100
	}
	if s.Radius <= 0 {
		s.Radius = 0.5
	}
	if s.MoveSpeed <= 0 {
		s.MoveSpeed = 3
	}
	if s.DetectionRange <= 0 {
		s.DetectionRange = 15
	}
	if s.ShootingRange <= 0 {
		s.ShootingRange = 10
	}
	if s.Attack == "" {
		s.Attack = "projectile"
	}
	if s.CooldownFrames <= 0 {
		s.CooldownFrames = 60
	}
	if s.ProjectileHeight == 0 {
		s.ProjectileHeight = 1
	}
	if s.ProjectileSpeed <= 0 {
		s.ProjectileSpeed = 20
	}
	if s.ProjectileFrames <= 0 {
		s.ProjectileFrames = 180
	}
	if s.MeleeReach <= 0 {
		s.MeleeReach = 1.5
	}
	return s
}

// Validate rejects values that no default can repair.
func (s CombatantSpec) Validate() error {
	switch s.Policy {
	case "", "fsm", "qlearning":
	default:
		return errors.Errorf("prefabs: %s: unknown policy %q", s.Name, s.Policy)
	}
	switch s.Attack {
	case "", "projectile", "melee":
	default:
		return errors.Errorf("prefabs: %s: unknown attack %q", s.Name, s.Attack)
	}
	p := s.Learning.Params()
	if p.Epsilon < 0 || p.Epsilon > 1 {
		return errors.Errorf("prefabs: %s: epsilon %v outside [0, 1]", s.Name, p.Epsilon)
	}
	return nil
}

// LoadCombatant loads, validates and defaults a combatant prefab.
func LoadCombatant(name string) (CombatantSpec, error) {
	spec, err := LoadSpec[CombatantSpec](name)
	if err != nil {
		return CombatantSpec{}, err
	}
	if err := spec.Validate(); err != nil {
		return CombatantSpec{}, err
	}
	return spec.Defaults(), nil
}

type ArenaSpec struct {
	Width float64 `yaml:"width" json:"width"`
	Depth float64 `yaml:"depth" json:"depth"`
}

type ObstacleSpec struct {
	X     float64 `yaml:"x" json:"x"`
	Z     float64 `yaml:"z" json:"z"`
	Width float64 `yaml:"width" json:"width"`
	Depth float64 `yaml:"depth" json:"depth"`
}

// SpawnSpec places a combatant prefab.
type SpawnSpec struct {
	Prefab string  `yaml:"prefab" json:"prefab"`
	Name   string  `yaml:"name,omitempty" json:"name,omitempty"`
	X      float64 `yaml:"x" json:"x"`
	Y      float64 `yaml:"y,omitempty" json:"y,omitempty"`
	Z      float64 `yaml:"z" json:"z"`
}

// ScenarioSpec is a complete arena setup.
type ScenarioSpec struct {
	Name      string         `yaml:"name" json:"name"`
	Seed      int64          `yaml:"seed" json:"seed"`
	TPS       int            `yaml:"tps,omitempty" json:"tps,omitempty"`
	MaxTicks  int            `yaml:"max_ticks,omitempty" json:"max_ticks,omitempty"`
	StopWhen  string         `yaml:"stop_when,omitempty" json:"stop_when,omitempty"`
	Arena     ArenaSpec      `yaml:"arena" json:"arena"`
	Obstacles []ObstacleSpec `yaml:"obstacles,omitempty" json:"obstacles,omitempty"`
	Target    SpawnSpec      `yaml:"target" json:"target" jsonschema:"required"`
	Agents    []SpawnSpec    `yaml:"agents" json:"agents"`
}

const DefaultStopWhen = "TargetHealth <= 0 || AgentsAlive == 0"

func (s ScenarioSpec) Defaults() ScenarioSpec {
	if s.TPS <= 0 {
		s.TPS = 60
	}
	if s.MaxTicks <= 0 {
		s.MaxTicks = 120 * s.TPS
	}
	if s.StopWhen == "" {
		s.StopWhen = DefaultStopWhen
	}
	if s.Arena.Width <= 0 {
		s.Arena.Width = 40
	}
	if s.Arena.Depth <= 0 {
		s.Arena.Depth = 40
	}
	return s
}

func LoadScenario(name string) (ScenarioSpec, error) {
	spec, err := LoadSpec[ScenarioSpec](name)
	if err != nil {
		return ScenarioSpec{}, err
	}
	if spec.Target.Prefab == "" {
		return ScenarioSpec{}, errors.Errorf("prefabs: %s: scenario has no target", name)
	}
	return spec.Defaults(), nil
}
