package component

import "github.com/milk9111/skirmish/common"

// DamageRequest accumulates the damage an entity received this tick.
// DamageSystem consumes and removes it.
type DamageRequest struct {
	Amount float64
	// Hits is the number of separate damage events folded into Amount.
	Hits     int
	Source   uint64
	Position common.Vec3
}

var DamageRequestComponent = NewComponent[DamageRequest]()
