package system

import (
	"github.com/milk9111/skirmish/common"
	"github.com/milk9111/skirmish/ecs"
	"github.com/milk9111/skirmish/logger"
	"github.com/sirupsen/logrus"
)

// Mover integrates an entity's requested velocity. Horizontal components
// replace the previous velocity each tick; Y is the vertical velocity.
type Mover interface {
	Move(e ecs.Entity, velocity common.Vec3)
	Grounded(e ecs.Entity) bool
}

// RayCaster answers line-of-sight and hit queries. Static geometry reports
// the zero entity.
type RayCaster interface {
	FirstHit(origin, dest common.Vec3, mask uint, ignore ecs.Entity) (ecs.Entity, bool)
}

// ProjectileRequest describes a shot. Mask selects what the shot can hit;
// zero means everything solid. Frames caps the flight time in ticks.
type ProjectileRequest struct {
	Position  common.Vec3
	Direction common.Vec3
	Speed     float64
	Damage    float64
	Owner     ecs.Entity
	Mask      uint
	Frames    int
}

type ProjectileSpawner interface {
	Spawn(req ProjectileRequest)
}

// Feedback observes applied damage. It never affects the simulation.
type Feedback interface {
	Damage(delta float64, position common.Vec3)
}

// LogFeedback reports damage numbers at debug level.
type LogFeedback struct{}

func (LogFeedback) Damage(delta float64, position common.Vec3) {
	logger.Log.WithFields(logrus.Fields{
		"component": "feedback",
		"damage":    delta,
		"position":  position.String(),
	}).Debug("damage applied")
}

// FeedbackFunc adapts a function to Feedback.
type FeedbackFunc func(delta float64, position common.Vec3)

func (f FeedbackFunc) Damage(delta float64, position common.Vec3) {
	f(delta, position)
}

// Event payloads pushed on the world event queue.
type (
	FiredEvent struct {
		Shooter  ecs.Entity
		Target   ecs.Entity
		Melee    bool
		Position common.Vec3
	}

	DamagedEvent struct {
		Entity   ecs.Entity
		Source   ecs.Entity
		Amount   float64
		Position common.Vec3
	}

	DiedEvent struct {
		Entity   ecs.Entity
		Position common.Vec3
	}
)
