package aim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/skirmish/common"
)

func TestSolveLeadsUpToFiringHeight(t *testing.T) {
	sol := Solve(common.V3(0, 0, 0), common.V3(10, 0, 0), 1)

	assert.Equal(t, common.V3(10, 1, 0), sol.AimPoint)
	assert.Equal(t, common.V3(10, 0, 0), sol.GroundPoint)
	require.True(t, sol.HasDirection)
	assert.Greater(t, sol.Direction.Y, 0.0)
	assert.Less(t, sol.Direction.Y, 0.2)
	assert.Greater(t, sol.Direction.X, 0.99)
	assert.InDelta(t, 1.0, sol.Direction.Length(), 1e-9)
}

func TestSolveYawPointsForwardAtTarget(t *testing.T) {
	cases := []struct {
		name   string
		target common.Vec3
	}{
		{"east", common.V3(10, 0, 0)},
		{"north", common.V3(0, 0, 10)},
		{"west", common.V3(-3, 2, 0)},
		{"diagonal", common.V3(-4, 0, -4)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			sol := Solve(common.Vec3{}, c.target, 1)
			require.True(t, sol.HasYaw)
			want, _ := c.target.Flat().Normalize()
			got := Forward(sol.Yaw)
			assert.InDelta(t, want.X, got.X, 1e-9)
			assert.InDelta(t, want.Z, got.Z, 1e-9)
		})
	}
}

func TestSolveDegenerateHoldsPreviousDirection(t *testing.T) {
	var a Aimer

	_, ok := a.Direction(Solve(common.Vec3{}, common.Vec3{}, 0))
	assert.False(t, ok, "no direction before a valid solve")

	first, ok := a.Direction(Solve(common.Vec3{}, common.V3(0, 0, 5), 0))
	require.True(t, ok)

	sol := Solve(common.V3(0, 0, 5), common.V3(0, 3, 5), 0)
	assert.False(t, sol.HasDirection)
	assert.False(t, sol.HasYaw)
	held, ok := a.Direction(sol)
	require.True(t, ok)
	assert.Equal(t, first, held)
	assert.False(t, math.IsNaN(held.X))
}

func TestTurnerMatchesFactorAtReferenceRate(t *testing.T) {
	tr := NewTurner(false)
	assert.InDelta(t, TurnFactor, tr.Alpha(1.0/common.TPS), 1e-12)

	locked := NewTurner(true)
	assert.Equal(t, TurnFactor, locked.Alpha(1.0/30))
}

func TestTurnerIsTickRateIndependent(t *testing.T) {
	tr := NewTurner(false)

	run := func(tps int, seconds float64) float64 {
		yaw := 0.0
		dt := 1.0 / float64(tps)
		for i := 0; i < int(seconds*float64(tps)); i++ {
			yaw = tr.Step(yaw, 1.0, dt)
		}
		return yaw
	}

	assert.InDelta(t, run(60, 0.5), run(120, 0.5), 1e-9)
	assert.InDelta(t, run(60, 0.5), run(30, 0.5), 1e-9)
}

func TestTurnerTakesShortestArc(t *testing.T) {
	tr := NewTurner(true)
	next := tr.Step(0.1, 2*math.Pi-0.1, 1.0/common.TPS)
	assert.Less(t, next, 0.1, "should turn backwards through zero")
}
