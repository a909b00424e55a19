package telemetry

import "github.com/pthm-cable/titan/components"

// Collector accumulates fight events within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec float64
	windowStart       float64

	// Event counters for current window
	attacks        map[components.Attack]int
	impacts        int
	impactHits     int
	damageToBoss   float64
	damageToParty  float64
	damageByType   map[components.DamageType]float64
	challengerDied int
}

// NewCollector creates a collector flushing every windowDurationSec of simulation time.
func NewCollector(windowDurationSec float64) *Collector {
	if windowDurationSec <= 0 {
		windowDurationSec = 10
	}
	return &Collector{
		windowDurationSec: windowDurationSec,
		attacks:           make(map[components.Attack]int),
		damageByType:      make(map[components.DamageType]float64),
	}
}

// RecordAttack records a committed boss attack.
func (c *Collector) RecordAttack(a components.Attack) {
	c.attacks[a]++
}

// RecordImpact records one resolved telegraph and how many entities it hit.
func (c *Collector) RecordImpact(hits int) {
	c.impacts++
	c.impactHits += hits
}

// RecordDamage records damage dealt to the boss or to the party.
func (c *Collector) RecordDamage(dt components.DamageType, amount float64, toBoss bool) {
	if toBoss {
		c.damageToBoss += amount
	} else {
		c.damageToParty += amount
	}
	c.damageByType[dt] += amount
}

// RecordChallengerDeath records a party member dying.
func (c *Collector) RecordChallengerDeath() {
	c.challengerDied++
}

// ShouldFlush returns true once the current window has run its full length.
func (c *Collector) ShouldFlush(now float64) bool {
	return now-c.windowStart >= c.windowDurationSec
}

// BossSample is the boss state sampled at window end.
type BossSample struct {
	Phase     components.Phase
	HPFrac    float64
	Activated bool
}

// Flush produces a WindowStats and resets counters for the next window.
// challengerHP holds the remaining health of each living challenger.
func (c *Collector) Flush(now float64, boss BossSample, challengerHP []float64) WindowStats {
	var hitRate float64
	if c.impacts > 0 {
		hitRate = float64(c.impactHits) / float64(c.impacts)
	}
	hpMean, hpStd, hpMin, hpMax := ComputeHealthStats(challengerHP)

	stats := WindowStats{
		WindowStart: c.windowStart,
		SimTimeSec:  now,

		Phase:     boss.Phase.String(),
		BossHP:    boss.HPFrac,
		Activated: boss.Activated,

		Spikes:   c.attacks[components.AttackSpikes],
		Lasers:   c.attacks[components.AttackLaser],
		HandSlam: c.attacks[components.AttackHandSlam],

		Impacts:     c.impacts,
		ImpactHits:  c.impactHits,
		HitsPerCast: hitRate,

		DamageToBoss:  c.damageToBoss,
		DamageToParty: c.damageToParty,
		PiercingDmg:   c.damageByType[components.DamagePiercing],
		HeatDmg:       c.damageByType[components.DamageHeat],
		BluntDmg:      c.damageByType[components.DamageBlunt],
		SlashDmg:      c.damageByType[components.DamageSlash],

		ChallengersAlive: len(challengerHP),
		ChallengerDeaths: c.challengerDied,
		PartyHPMean:      hpMean,
		PartyHPStd:       hpStd,
		PartyHPMin:       hpMin,
		PartyHPMax:       hpMax,
	}

	// Reset for next window
	c.windowStart = now
	clear(c.attacks)
	clear(c.damageByType)
	c.impacts = 0
	c.impactHits = 0
	c.damageToBoss = 0
	c.damageToParty = 0
	c.challengerDied = 0

	return stats
}

// WindowDuration returns the window length in simulation seconds.
func (c *Collector) WindowDuration() float64 {
	return c.windowDurationSec
}
