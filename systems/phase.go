package systems

import "github.com/pthm-cable/titan/components"

// Remaining-health fractions at which the boss escalates.
const (
	phase3Threshold = 0.25
	phase2Threshold = 0.60
)

// EvaluatePhase maps accumulated damage to a combat phase.
// The result depends only on the inputs; healing can lower the phase again.
func EvaluatePhase(damageTotal, maxHealth float64) components.Phase {
	if maxHealth <= 0 {
		return components.Phase3
	}
	hp := max(0, maxHealth-damageTotal) / maxHealth
	switch {
	case hp <= phase3Threshold:
		return components.Phase3
	case hp <= phase2Threshold:
		return components.Phase2
	default:
		return components.Phase1
	}
}

// applyPhase stores phase on boss and keeps Enraged in step.
// Returns true if anything changed.
func applyPhase(boss *components.Boss, phase components.Phase) bool {
	enraged := phase == components.Phase3
	if boss.Phase == phase && boss.Enraged == enraged {
		return false
	}
	boss.Phase = phase
	boss.Enraged = enraged
	return true
}
