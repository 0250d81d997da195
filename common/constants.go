package common

const (
	// TPS is the simulation tick rate the tuning constants were authored against.
	TPS = 60

	Gravity = 9.8

	// FloorY is the height of the arena floor.
	FloorY = 0.0
)

// Collision categories used for chipmunk shape filters and ray masks.
const (
	CategoryStatic uint = 1 << iota
	CategoryAgent
	CategoryTarget
	CategoryProjectile
)

// SightMask is the ray mask used for line-of-sight checks.
const SightMask = CategoryStatic | CategoryAgent | CategoryTarget
