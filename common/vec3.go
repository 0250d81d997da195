package common

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec3 is a world-space vector. Y is up; the ground plane is (X, Z).
// Arithmetic goes through mgl64.
type Vec3 struct {
	X, Y, Z float64
}

func V3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// FromMgl converts an mgl64 vector.
func FromMgl(g mgl64.Vec3) Vec3 {
	return Vec3{X: g.X(), Y: g.Y(), Z: g.Z()}
}

// Mgl returns v as an mgl64 vector.
func (v Vec3) Mgl() mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

func (v Vec3) Add(o Vec3) Vec3 {
	return FromMgl(v.Mgl().Add(o.Mgl()))
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return FromMgl(v.Mgl().Sub(o.Mgl()))
}

func (v Vec3) Scale(s float64) Vec3 {
	return FromMgl(v.Mgl().Mul(s))
}

func (v Vec3) Dot(o Vec3) float64 {
	return v.Mgl().Dot(o.Mgl())
}

func (v Vec3) LengthSq() float64 {
	return v.Mgl().LenSqr()
}

func (v Vec3) Length() float64 {
	return v.Mgl().Len()
}

// Normalize returns the unit vector and false when v has zero length.
// mgl64 divides by the length unchecked.
func (v Vec3) Normalize() (Vec3, bool) {
	g := v.Mgl()
	l := g.Len()
	if l == 0 || math.IsNaN(l) || math.IsInf(l, 0) {
		return Vec3{}, false
	}
	return FromMgl(g.Normalize()), true
}

// Flat drops the vertical component.
func (v Vec3) Flat() Vec3 {
	return Vec3{X: v.X, Z: v.Z}
}

func (v Vec3) Distance(o Vec3) float64 {
	return v.Mgl().Sub(o.Mgl()).Len()
}

func (v Vec3) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

func (v Vec3) String() string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f)", v.X, v.Y, v.Z)
}
