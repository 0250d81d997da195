package brain

import (
	"fmt"
	"math"

	"github.com/milk9111/skirmish/common"
)

const (
	DistanceBins = 5
	HealthBins   = 3
	AngleBins    = 8
)

// State is the discretized view of the world the learner keys its table on.
type State struct {
	Distance int
	Health   int
	Angle    int
}

func (s State) String() string {
	return fmt.Sprintf("d%d/h%d/a%d", s.Distance, s.Health, s.Angle)
}

// Valid reports whether every component lies inside its bin range.
func (s State) Valid() bool {
	return s.Distance >= 0 && s.Distance < DistanceBins &&
		s.Health >= 0 && s.Health < HealthBins &&
		s.Angle >= 0 && s.Angle < AngleBins
}

// Classifier bins continuous quantities into a State.
type Classifier struct {
	DetectionRange float64
}

// Classify bins an observation. toTarget is the vector from agent to target.
func (c Classifier) Classify(distance, healthFraction float64, toTarget common.Vec3) State {
	return State{
		Distance: c.DistanceBin(distance),
		Health:   HealthBin(healthFraction),
		Angle:    AngleBin(Bearing(toTarget)),
	}
}

func (c Classifier) DistanceBin(distance float64) int {
	if c.DetectionRange <= 0 {
		return DistanceBins - 1
	}
	return bin(distance/c.DetectionRange, DistanceBins)
}

func HealthBin(fraction float64) int {
	return bin(fraction, HealthBins)
}

// Bearing is the world-frame angle of toTarget around the vertical axis.
func Bearing(toTarget common.Vec3) float64 {
	return math.Atan2(toTarget.X, toTarget.Z)
}

// AngleBin wraps instead of clamping since bearing is periodic.
func AngleBin(bearing float64) int {
	if math.IsNaN(bearing) || math.IsInf(bearing, 0) {
		return 0
	}
	f := math.Floor((bearing + math.Pi) / (2 * math.Pi) * AngleBins)
	i := int(math.Mod(f, AngleBins))
	if i < 0 {
		i += AngleBins
	}
	return i
}

func bin(fraction float64, count int) int {
	if math.IsNaN(fraction) {
		return 0
	}
	f := math.Floor(fraction * float64(count))
	if f < 0 {
		return 0
	}
	if f > float64(count-1) {
		return count - 1
	}
	return int(f)
}
