// Package telemetry records fight statistics: attacks, damage, windows and perf.
package telemetry

import "github.com/pthm-cable/titan/components"

// AttackRecord is one committed boss attack.
type AttackRecord struct {
	SimTime float64 `csv:"sim_time"`
	Boss    uint32  `csv:"boss"`
	Attack  string  `csv:"attack"`
	Phase   string  `csv:"phase"`
}

// NewAttackRecord creates an attack record.
func NewAttackRecord(now float64, boss uint32, attack components.Attack, phase components.Phase) AttackRecord {
	return AttackRecord{
		SimTime: now,
		Boss:    boss,
		Attack:  attack.String(),
		Phase:   phase.String(),
	}
}

// DamageRecord is one landed damage application.
type DamageRecord struct {
	SimTime float64 `csv:"sim_time"`
	Source  uint32  `csv:"source"`
	Target  uint32  `csv:"target"`
	Type    string  `csv:"type"`
	Amount  float64 `csv:"amount"`
}

// NewDamageRecord creates a damage record.
func NewDamageRecord(now float64, source, target uint32, dt components.DamageType, amount float64) DamageRecord {
	return DamageRecord{
		SimTime: now,
		Source:  source,
		Target:  target,
		Type:    dt.String(),
		Amount:  amount,
	}
}
