package telemetry

import (
	"log/slog"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStart float64 `csv:"-"`
	SimTimeSec  float64 `csv:"sim_time"`

	// Boss at window end
	Phase     string  `csv:"phase"`
	BossHP    float64 `csv:"boss_hp"`
	Activated bool    `csv:"activated"`

	// Attacks committed during window
	Spikes   int `csv:"spikes"`
	Lasers   int `csv:"lasers"`
	HandSlam int `csv:"hand_slams"`

	// Resolutions
	Impacts     int     `csv:"impacts"`
	ImpactHits  int     `csv:"impact_hits"`
	HitsPerCast float64 `csv:"hits_per_cast"`

	// Damage
	DamageToBoss  float64 `csv:"damage_to_boss"`
	DamageToParty float64 `csv:"damage_to_party"`
	PiercingDmg   float64 `csv:"piercing"`
	HeatDmg       float64 `csv:"heat"`
	BluntDmg      float64 `csv:"blunt"`
	SlashDmg      float64 `csv:"slash"`

	// Party
	ChallengersAlive int     `csv:"challengers_alive"`
	ChallengerDeaths int     `csv:"challenger_deaths"`
	PartyHPMean      float64 `csv:"party_hp_mean"`
	PartyHPStd       float64 `csv:"party_hp_std"`
	PartyHPMin       float64 `csv:"party_hp_min"`
	PartyHPMax       float64 `csv:"party_hp_max"`
}

// ComputeHealthStats returns mean, sample std dev, min and max of values.
func ComputeHealthStats(values []float64) (mean, std, lo, hi float64) {
	switch len(values) {
	case 0:
		return 0, 0, 0, 0
	case 1:
		return values[0], 0, values[0], values[0]
	}
	mean, std = stat.MeanStdDev(values, nil)
	return mean, std, floats.Min(values), floats.Max(values)
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Float64("sim_time", s.SimTimeSec),
		slog.String("phase", s.Phase),
		slog.Float64("boss_hp", s.BossHP),
		slog.Bool("activated", s.Activated),
		slog.Int("spikes", s.Spikes),
		slog.Int("lasers", s.Lasers),
		slog.Int("hand_slams", s.HandSlam),
		slog.Int("impacts", s.Impacts),
		slog.Int("impact_hits", s.ImpactHits),
		slog.Float64("damage_to_boss", s.DamageToBoss),
		slog.Float64("damage_to_party", s.DamageToParty),
		slog.Int("challengers_alive", s.ChallengersAlive),
		slog.Int("challenger_deaths", s.ChallengerDeaths),
		slog.Float64("party_hp_mean", s.PartyHPMean),
	)
}
