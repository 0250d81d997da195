package component

// AttackKind selects how a combatant delivers damage.
type AttackKind string

const (
	AttackProjectile AttackKind = "projectile"
	AttackMelee      AttackKind = "melee"
)

// Combatant holds the movement and attack tuning shared by agents and targets.
type Combatant struct {
	MoveSpeed      float64
	DetectionRange float64
	ShootingRange  float64

	Attack           AttackKind
	Damage           float64
	CooldownFrames   int
	ProjectileHeight float64
	ProjectileSpeed  float64
	ProjectileFrames int
	MeleeReach       float64
}

var CombatantComponent = NewComponent[Combatant]()
