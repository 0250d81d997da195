package component

// DamageFlash blinks an entity after it takes damage. The viewer draws it
// highlighted while On is set.
type DamageFlash struct {
	// Frames remaining for the whole flash effect (in update ticks)
	Frames int
	// Interval in frames between toggles
	Interval int
	Timer    int
	On       bool
}

var DamageFlashComponent = NewComponent[DamageFlash]()
