package systems

import "github.com/pthm-cable/titan/components"

// attackWeights are cumulative-interval weights. HandSlam takes the remainder.
type attackWeights struct {
	spikes float64
	laser  float64
}

var (
	calmWeights  = attackWeights{spikes: 0.50, laser: 0.30}
	angryWeights = attackWeights{spikes: 0.35, laser: 0.40}
)

func weightsFor(phase components.Phase) attackWeights {
	if phase == components.Phase1 {
		return calmWeights
	}
	return angryWeights
}

// PickAttack chooses an attack for phase from a uniform roll in [0,1).
// Interval edges belong to the next attack.
func PickAttack(phase components.Phase, roll float64) components.Attack {
	w := weightsFor(phase)
	switch {
	case roll < w.spikes:
		return components.AttackSpikes
	case roll < w.spikes+w.laser:
		return components.AttackLaser
	default:
		return components.AttackHandSlam
	}
}

// AttackInterval returns the cooldown after an attack in the given phase.
func AttackInterval(phase components.Phase, base float64) float64 {
	switch phase {
	case components.Phase2:
		return max(1.8, base*0.75)
	case components.Phase3:
		return max(1.2, base*0.5)
	default:
		return base
	}
}
