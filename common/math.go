package common

import "math"

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// LerpAngle interpolates between two angles along the shortest arc.
func LerpAngle(from, to, t float64) float64 {
	diff := math.Mod(to-from, 2*math.Pi)
	dist := math.Mod(2*diff, 2*math.Pi) - diff
	return from + dist*t
}

// WrapAngle maps an angle into [0, 2π).
func WrapAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
