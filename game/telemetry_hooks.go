package game

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/titan/components"
	"github.com/pthm-cable/titan/systems"
	"github.com/pthm-cable/titan/telemetry"
)

// damageObserver feeds every landed hit into telemetry.
type damageObserver struct {
	g *Game
}

// OnDamage records the hit and re-evaluates the boss phase when it was the target.
func (o damageObserver) OnDamage(target ecs.Entity, spec systems.DamageSpec) {
	g := o.g
	toBoss := target == g.boss

	g.collector.RecordDamage(spec.Type, spec.Amount, toBoss)
	g.tracker.RecordDamage(spec.Source.ID(), target.ID(), spec.Amount)
	g.damageLog = append(g.damageLog, telemetry.NewDamageRecord(g.now, spec.Source.ID(), target.ID(), spec.Type, spec.Amount))

	if toBoss {
		g.bosses.UpdatePhase(target)
	}
}

// onAttack records a committed boss attack.
func (g *Game) onAttack(boss ecs.Entity, attack components.Attack, phase components.Phase, now float64) {
	g.collector.RecordAttack(attack)
	g.attackTotals[attack.String()]++
	g.attackLog = append(g.attackLog, telemetry.NewAttackRecord(now, boss.ID(), attack, phase))
}

// onResolve records a resolved telegraph.
func (g *Game) onResolve(effect systems.PendingEffect, hits int) {
	g.collector.RecordImpact(hits)
}

// onMobStateChanged tracks deaths for telemetry.
func (g *Game) onMobStateChanged(e ecs.Entity, state components.LifeState) {
	if state != components.LifeDead {
		return
	}
	g.tracker.RecordDeath(e.ID(), g.now)
	if g.challengerMap.Has(e) {
		g.collector.RecordChallengerDeath()
		g.logger.Info("challenger died", "challenger", e.ID(), "time", g.now)
	}
}

// flushTelemetry writes a stats window when the current one is complete.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.now) {
		return
	}
	g.flushWindow()
}

// flushWindow closes the current stats window and writes pending rows.
func (g *Game) flushWindow() {
	stats := g.collector.Flush(g.now, g.bossSample(), g.sampleParty())
	perfStats := g.perfCollector.Stats()

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		g.logger.Info("stats", "window", stats)
		g.logger.Info("perf", "stats", perfStats)
	}

	if g.outputManager != nil {
		if err := g.outputManager.WriteWindow(stats); err != nil {
			g.logger.Error("failed to write window stats", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, g.now); err != nil {
			g.logger.Error("failed to write perf", "error", err)
		}
		if err := g.outputManager.WriteAttacks(g.attackLog); err != nil {
			g.logger.Error("failed to write attacks", "error", err)
		}
		if err := g.outputManager.WriteDamage(g.damageLog); err != nil {
			g.logger.Error("failed to write damage", "error", err)
		}
	}
	g.attackLog = g.attackLog[:0]
	g.damageLog = g.damageLog[:0]
}

// bossSample reads the boss state for a stats window.
func (g *Game) bossSample() telemetry.BossSample {
	var s telemetry.BossSample
	if b := g.bossMap.Get(g.boss); b != nil {
		s.Phase = b.Phase
		s.Activated = b.Activated
	}
	s.HPFrac = g.bossHPFrac()
	return s
}

// bossHPFrac returns the boss's remaining health as a fraction of its max.
func (g *Game) bossHPFrac() float64 {
	health := g.healthMap.Get(g.boss)
	dmg := g.damageMap.Get(g.boss)
	if health == nil || dmg == nil || health.Max <= 0 {
		return 0
	}
	frac := 1 - dmg.Total/health.Max
	if frac < 0 {
		return 0
	}
	return frac
}

// sampleParty returns the remaining health of each living challenger.
func (g *Game) sampleParty() []float64 {
	g.partyAlive = g.partyAlive[:0]
	for _, e := range g.party {
		mob := g.mobMap.Get(e)
		health := g.healthMap.Get(e)
		dmg := g.damageMap.Get(e)
		if mob == nil || health == nil || dmg == nil || mob.State == components.LifeDead {
			continue
		}
		g.partyAlive = append(g.partyAlive, health.Max-dmg.Total)
	}
	return g.partyAlive
}

// writeSummary writes summary.json for a finished fight.
func (g *Game) writeSummary() {
	if g.outputManager == nil {
		return
	}
	summary := g.Summary()
	if err := g.outputManager.WriteSummary(&summary); err != nil {
		g.logger.Error("failed to write summary", "error", err)
	}
}

// Summary returns the fight summary so far.
func (g *Game) Summary() telemetry.Summary {
	phase := components.Phase1
	if b := g.bossMap.Get(g.boss); b != nil {
		phase = b.Phase
	}
	return telemetry.Summary{
		Seed:       g.rngSeed,
		Outcome:    g.outcome,
		SimTime:    g.now,
		Attacks:    g.attackTotals,
		FinalPhase: phase.String(),
		Frames:     g.link.frames,
		FrameBytes: g.link.bytes,
		Combatants: g.tracker.All(),
	}
}
