package systems

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pthm-cable/titan/components"
)

func TestEvaluatePhase(t *testing.T) {
	tests := []struct {
		name   string
		damage float64
		want   components.Phase
	}{
		{"untouched", 0, components.Phase1},
		{"just above 60%", 119, components.Phase1},
		{"exactly 60%", 120, components.Phase2},
		{"mid", 150, components.Phase2},
		{"just above 25%", 224, components.Phase2},
		{"exactly 25%", 225, components.Phase3},
		{"dead", 300, components.Phase3},
		{"overkill clamps", 900, components.Phase3},
		{"healed past full", -50, components.Phase1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EvaluatePhase(tt.damage, 300)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, EvaluatePhase(tt.damage, 300), "same input, same phase")
		})
	}
}

func TestApplyPhase_EnragedTracksPhase3(t *testing.T) {
	var b components.Boss

	assert.False(t, applyPhase(&b, components.Phase1), "no change from zero value")

	assert.True(t, applyPhase(&b, components.Phase3))
	assert.True(t, b.Enraged)
	assert.False(t, applyPhase(&b, components.Phase3), "idempotent")

	assert.True(t, applyPhase(&b, components.Phase2), "healing lowers the phase")
	assert.False(t, b.Enraged)
}
