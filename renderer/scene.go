package renderer

import "github.com/pthm-cable/titan/components"

// Scene is one frame's worth of drawable fight state, in world units.
type Scene struct {
	ArenaRadius  float64
	TargetRadius float64

	HasBoss bool
	Boss    BossView

	Challengers []ChallengerView
	Props       []PropView
}

// BossView is the boss as the client sees it.
type BossView struct {
	X, Y      float64
	Aim       float64 // radians
	Phase     components.Phase
	Enraged   bool
	Activated bool
	Attack    components.Attack
	HPFrac    float64 // remaining health in [0, 1]
}

// ChallengerView is one party member.
type ChallengerView struct {
	X, Y   float64
	HPFrac float64
	State  components.LifeState
}

// PropView is a prototype entity: barrier segment, telegraph or impact.
type PropView struct {
	Proto  string
	X, Y   float64
	Radius float64 // footprint for circular props
	Angle  float64 // direction for line props
	Length float64 // extent for line props
	Life   float64 // remaining lifetime fraction in [0, 1]; 1 for permanent props
}
