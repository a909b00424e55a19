package components

// Phase is the boss's combat intensity tier.
type Phase uint8

const (
	Phase1 Phase = iota
	Phase2
	Phase3
)

func (p Phase) String() string {
	switch p {
	case Phase1:
		return "phase1"
	case Phase2:
		return "phase2"
	case Phase3:
		return "phase3"
	}
	return "unknown"
}

// Attack is the boss attack archetype currently being performed.
type Attack uint8

const (
	AttackNone Attack = iota
	AttackSpikes
	AttackLaser
	AttackHandSlam
)

func (a Attack) String() string {
	switch a {
	case AttackNone:
		return "none"
	case AttackSpikes:
		return "spikes"
	case AttackLaser:
		return "laser"
	case AttackHandSlam:
		return "hand_slam"
	}
	return "unknown"
}

// BossTunables are fixed when the boss is spawned.
// Durations are in seconds, distances in world units.
type BossTunables struct {
	ArenaRadius      float64 `yaml:"arena_radius"`
	ArenaSegments    int     `yaml:"arena_segments"`
	BarrierPrototype string  `yaml:"barrier_prototype"`

	SpikeDelay    float64 `yaml:"spike_delay"`
	LaserWindup   float64 `yaml:"laser_windup"`
	HandSlamDelay float64 `yaml:"hand_slam_delay"`

	SpikeDamage    float64 `yaml:"spike_damage"`
	LaserDamage    float64 `yaml:"laser_damage"`
	HandSlamDamage float64 `yaml:"hand_slam_damage"`

	SpikeRadius    float64 `yaml:"spike_radius"`
	HandSlamRadius float64 `yaml:"hand_slam_radius"`

	AttackInterval float64 `yaml:"attack_interval"` // base pause between attacks, scaled per phase
	MaxHealth      float64 `yaml:"max_health"`      // health used for phase thresholds
}

// DefaultBossTunables returns the stock Titan tuning.
func DefaultBossTunables() BossTunables {
	return BossTunables{
		ArenaRadius:      12,
		ArenaSegments:    32,
		BarrierPrototype: "TitanArenaBarrierSegment",
		SpikeDelay:       0.8,
		LaserWindup:      0.7,
		HandSlamDelay:    0.5,
		SpikeDamage:      20,
		LaserDamage:      35,
		HandSlamDamage:   30,
		SpikeRadius:      1.2,
		HandSlamRadius:   2.0,
		AttackInterval:   3.0,
		MaxHealth:        300,
	}
}

// Boss holds the replicated combat state of a boss entity.
type Boss struct {
	Activated     bool    `inspect:"bool"`
	Phase         Phase   `inspect:"label"`
	Enraged       bool    `inspect:"bool"`  // always Phase == Phase3
	AimDir        float64 `inspect:"angle"` // radians
	CurrentAttack Attack  `inspect:"label"`

	Tunables BossTunables `inspect:"skip"`
}

// BossTimers hold the per-boss AI cadence, in simulation seconds.
type BossTimers struct {
	NextAITick float64
	NextAttack float64
}

// Challenger tags a scripted player-side combatant.
type Challenger struct {
	OrbitAngle  float64 `inspect:"angle"`          // current angle around the orbit centre
	OrbitRadius float64 `inspect:"label,fmt:%.1f"` // radius held once the fight is on
	Distance    float64 `inspect:"label,fmt:%.1f"` // current distance from the orbit centre
	Speed       float64 `inspect:"skip"`           // radians per second
	NextStrike  float64 `inspect:"label,fmt:%.2fs"`
}
