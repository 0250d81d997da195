package common

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestLerpAngleTakesShortestArc(t *testing.T) {
	cases := []struct {
		name     string
		from, to float64
		want     float64
	}{
		{"forward", 0, math.Pi / 2, math.Pi / 4},
		{"backward", math.Pi / 2, 0, math.Pi / 4},
		{"across zero", 0.1, 2*math.Pi - 0.1, 0},
		{"across zero reversed", 2*math.Pi - 0.1, 0.1, 2 * math.Pi},
		{"long way round", 0, 3 * math.Pi / 2, -math.Pi / 4},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.InDelta(t, c.want, LerpAngle(c.from, c.to, 0.5), 1e-9)
		})
	}
}

func TestWrapAngle(t *testing.T) {
	assert.InDelta(t, 0.5, WrapAngle(0.5), 1e-12)
	assert.InDelta(t, 2*math.Pi-0.5, WrapAngle(-0.5), 1e-12)
	assert.InDelta(t, 0.5, WrapAngle(4*math.Pi+0.5), 1e-12)
	assert.InDelta(t, 0, WrapAngle(2*math.Pi), 1e-12)
}

func TestNormalizeRejectsZero(t *testing.T) {
	_, ok := Vec3{}.Normalize()
	assert.False(t, ok)

	n, ok := V3(3, 0, 4).Normalize()
	assert.True(t, ok)
	assert.InDelta(t, 1, n.Length(), 1e-12)
	assert.InDelta(t, 0.6, n.X, 1e-12)
	assert.Equal(t, V3(3, 0, 4), V3(3, 7, 4).Flat())
	assert.InDelta(t, 5, V3(0, 0, 0).Distance(V3(3, 0, 4)), 1e-12)
}

func TestNormalizeGuardsDegenerateLengths(t *testing.T) {
	cases := []struct {
		name string
		v    Vec3
	}{
		{"zero", Vec3{}},
		{"nan", V3(math.NaN(), 0, 1)},
		{"inf", V3(math.Inf(1), 0, 0)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			n, ok := c.v.Normalize()
			assert.False(t, ok)
			assert.Equal(t, Vec3{}, n)
		})
	}
}

func TestVec3MatchesMgl(t *testing.T) {
	a, b := V3(1, -2, 3), V3(-4, 0.5, 2)

	assert.Equal(t, a, FromMgl(a.Mgl()))
	assert.Equal(t, FromMgl(mgl64.Vec3{1, -2, 3}.Sub(mgl64.Vec3{-4, 0.5, 2})), a.Sub(b))
	assert.InDelta(t, a.Mgl().Dot(b.Mgl()), a.Dot(b), 1e-12)
	assert.InDelta(t, math.Sqrt(14), a.Length(), 1e-12)
	assert.Equal(t, V3(2, -4, 6), a.Scale(2))
	assert.Equal(t, V3(-3, -1.5, 5), a.Add(b))
}
