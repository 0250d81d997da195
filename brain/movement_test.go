package brain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/milk9111/skirmish/common"
)

func TestIntent(t *testing.T) {
	to := common.V3(3, 7, 4)
	cases := []struct {
		name   string
		action Action
		want   common.Vec3
	}{
		{"idle", ActionIdle, common.Vec3{}},
		{"attack", ActionAttack, common.Vec3{}},
		{"chase", ActionChase, common.V3(0.6*2, 0, 0.8*2)},
		{"retreat", ActionRetreat, common.V3(-0.6*2, 0, -0.8*2)},
		{"strafe_cw", ActionStrafeClockwise, common.V3(-0.8*2, 0, 0.6*2)},
		{"strafe_ccw", ActionStrafeCounterClockwise, common.V3(0.8*2, 0, -0.6*2)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Intent(c.action, to, 2)
			assert.InDelta(t, c.want.X, got.X, 1e-9)
			assert.Equal(t, 0.0, got.Y)
			assert.InDelta(t, c.want.Z, got.Z, 1e-9)
		})
	}
}

func TestIntentStrafeIsPerpendicular(t *testing.T) {
	to := common.V3(-2, 0, 5)
	for _, a := range []Action{ActionStrafeClockwise, ActionStrafeCounterClockwise} {
		v := Intent(a, to, 3)
		assert.InDelta(t, 0, v.Dot(to), 1e-9)
		assert.InDelta(t, 3, v.Length(), 1e-9)
	}
}

func TestIntentDirectlyBelowTarget(t *testing.T) {
	assert.Equal(t, common.Vec3{}, Intent(ActionChase, common.V3(0, 4, 0), 5))
}
