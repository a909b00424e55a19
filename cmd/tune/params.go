package main

import "github.com/pthm-cable/titan/config"

// ParamSpec defines a single tunable boss parameter.
type ParamSpec struct {
	Name string  // column name in tune_log.csv
	Path string  // config path for logging
	Min  float64 // lower bound
	Max  float64 // upper bound
}

// ParamVector holds the set of tunable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the boss tuning parameter set.
// Arena radius is left out: the target search range is derived from it at load.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "spike_damage", Path: "boss.spike_damage", Min: 5, Max: 60},
			{Name: "laser_damage", Path: "boss.laser_damage", Min: 10, Max: 90},
			{Name: "hand_slam_damage", Path: "boss.hand_slam_damage", Min: 10, Max: 80},
			{Name: "spike_radius", Path: "boss.spike_radius", Min: 0.5, Max: 3},
			{Name: "hand_slam_radius", Path: "boss.hand_slam_radius", Min: 1, Max: 4},
			{Name: "attack_interval", Path: "boss.attack_interval", Min: 1, Max: 6},
			{Name: "max_health", Path: "boss.max_health", Min: 150, Max: 900},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// Normalize converts raw values to the [0,1] search space.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	out := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		out[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return out
}

// Denormalize converts [0,1] values back to raw values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	out := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		out[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return out
}

// Clamp bounds every value to its [Min, Max] range.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	out := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		out[i] = min(max(v[i], spec.Min), spec.Max)
	}
	return out
}

// ApplyToConfig writes clamped values into cfg.Boss. Order matches Specs.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	c := pv.Clamp(values)
	b := &cfg.Boss
	b.SpikeDamage = c[0]
	b.LaserDamage = c[1]
	b.HandSlamDamage = c[2]
	b.SpikeRadius = c[3]
	b.HandSlamRadius = c[4]
	b.AttackInterval = c[5]
	b.MaxHealth = c[6]
}

// ExtractFromConfig reads the current values from cfg.Boss.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	b := cfg.Boss
	return pv.Clamp([]float64{
		b.SpikeDamage,
		b.LaserDamage,
		b.HandSlamDamage,
		b.SpikeRadius,
		b.HandSlamRadius,
		b.AttackInterval,
		b.MaxHealth,
	})
}
