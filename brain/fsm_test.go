package brain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestThresholdFSM(t *testing.T) {
	fsm := ThresholdFSM{DetectionRange: 15, ShootingRange: 10}
	cases := []struct {
		name     string
		distance float64
		want     Action
	}{
		{"beyond_detection", 20, ActionIdle},
		{"between_ranges", 12, ActionChase},
		{"at_detection_edge", 15, ActionChase},
		{"in_band", 8, ActionAttack},
		{"at_shooting_range", 10, ActionAttack},
		{"at_half_range", 5, ActionAttack},
		{"too_close", 4, ActionRetreat},
		{"on_top", 0, ActionRetreat},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, fsm.Evaluate(c.distance))
		})
	}
}
