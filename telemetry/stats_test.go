package telemetry

import (
	"math"
	"testing"

	"github.com/pthm-cable/titan/components"
)

func TestComputeHealthStats(t *testing.T) {
	tests := []struct {
		name                string
		values              []float64
		mean, std, min, max float64
	}{
		{"empty", nil, 0, 0, 0, 0},
		{"single", []float64{42}, 42, 0, 42, 42},
		{"spread", []float64{2, 4, 4, 4, 5, 5, 7, 9}, 5, 2.138, 2, 9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mean, std, lo, hi := ComputeHealthStats(tt.values)
			if math.Abs(mean-tt.mean) > 0.001 {
				t.Errorf("mean = %v, want %v", mean, tt.mean)
			}
			if math.Abs(std-tt.std) > 0.001 {
				t.Errorf("std = %v, want %v", std, tt.std)
			}
			if lo != tt.min || hi != tt.max {
				t.Errorf("min/max = %v/%v, want %v/%v", lo, hi, tt.min, tt.max)
			}
		})
	}
}

func TestCollector_FlushResets(t *testing.T) {
	c := NewCollector(5)

	if c.ShouldFlush(4.9) {
		t.Error("window should still be open")
	}

	c.RecordAttack(components.AttackSpikes)
	c.RecordAttack(components.AttackSpikes)
	c.RecordAttack(components.AttackLaser)
	c.RecordImpact(3)
	c.RecordImpact(0)
	c.RecordDamage(components.DamagePiercing, 20, false)
	c.RecordDamage(components.DamageSlash, 6, true)
	c.RecordChallengerDeath()

	if !c.ShouldFlush(5) {
		t.Fatal("window should be due")
	}
	s := c.Flush(5, BossSample{Phase: components.Phase2, HPFrac: 0.5, Activated: true}, []float64{100, 50})

	if s.Spikes != 2 || s.Lasers != 1 || s.HandSlam != 0 {
		t.Errorf("attack counts = %d/%d/%d", s.Spikes, s.Lasers, s.HandSlam)
	}
	if s.HitsPerCast != 1.5 {
		t.Errorf("hits per cast = %v, want 1.5", s.HitsPerCast)
	}
	if s.DamageToParty != 20 || s.DamageToBoss != 6 || s.PiercingDmg != 20 {
		t.Errorf("damage = party %v boss %v piercing %v", s.DamageToParty, s.DamageToBoss, s.PiercingDmg)
	}
	if s.Phase != "phase2" || s.ChallengersAlive != 2 || s.ChallengerDeaths != 1 {
		t.Errorf("unexpected window %+v", s)
	}

	next := c.Flush(10, BossSample{}, nil)
	if next.Spikes != 0 || next.Impacts != 0 || next.DamageToParty != 0 || next.ChallengerDeaths != 0 {
		t.Errorf("counters not reset: %+v", next)
	}
	if next.WindowStart != 5 {
		t.Errorf("window start = %v, want 5", next.WindowStart)
	}
}

func TestCombatantTracker(t *testing.T) {
	ct := NewCombatantTracker()
	ct.Register(2, "challenger", 0)
	ct.Register(1, "boss", 0)

	ct.RecordDamage(1, 2, 30)
	ct.RecordDamage(2, 1, 6)
	ct.RecordDamage(99, 2, 5)
	ct.RecordDeath(2, 12)
	ct.RecordDeath(2, 20)

	all := ct.All()
	if len(all) != 2 || all[0].ID != 1 {
		t.Fatalf("unexpected order %+v", all)
	}
	ch := ct.Get(2)
	if ch.DamageTaken != 35 || ch.HitsTaken != 2 || ch.DamageDealt != 6 {
		t.Errorf("challenger stats %+v", ch)
	}
	if ch.Alive || ch.DiedAt != 12 {
		t.Errorf("death recorded at %v, alive=%v", ch.DiedAt, ch.Alive)
	}
}
