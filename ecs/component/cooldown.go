package component

// Cooldown is a frame-based attack cooldown. Adding it again restarts the
// countdown; CooldownSystem removes it once Frames reaches zero.
type Cooldown struct {
	// Frames remaining for the cooldown (in update ticks)
	Frames int
}

var CooldownComponent = NewComponent[Cooldown]()
