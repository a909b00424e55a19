package main

import (
	"log/slog"
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/titan/config"
	"github.com/pthm-cable/titan/game"
	"github.com/pthm-cable/titan/telemetry"
)

// Penalties added on top of the duration and survivor errors.
const (
	wipePenalty    = 1.0 // party wiped before the boss fell
	timeoutPenalty = 2.0 // nobody won inside the time cap
)

// Target describes the fight the tuning aims for.
type Target struct {
	Duration  float64 // seconds to kill the boss
	Survivors float64 // fraction of the party alive at the end
	MaxTime   float64 // per-run cap in seconds
}

// runResult holds one headless fight.
type runResult struct {
	outcome   string
	simTime   float64
	survivors float64
}

// FitnessEvaluator runs headless fights and scores them against a Target.
type FitnessEvaluator struct {
	params     *ParamVector
	seeds      []int64
	baseConfig *config.Config
	target     Target
	quiet      *slog.Logger

	mu       sync.Mutex
	lastMean float64 // mean fight time of the latest evaluation
	lastWins float64 // boss kill rate of the latest evaluation
}

// NewFitnessEvaluator creates an evaluator. Runs log nothing.
func NewFitnessEvaluator(params *ParamVector, seeds []int64, baseCfg *config.Config, target Target) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:     params,
		seeds:      seeds,
		baseConfig: baseCfg,
		target:     target,
		quiet:      slog.New(slog.DiscardHandler),
	}
}

// Last returns the mean fight time and kill rate of the latest evaluation.
func (fe *FitnessEvaluator) Last() (meanTime, winRate float64) {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastMean, fe.lastWins
}

// Evaluate scores a raw parameter vector (lower = better).
// Seeds run in parallel, each in its own world.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	results := make([]runResult, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = fe.runFight(x, s)
		}(i, seed)
	}
	wg.Wait()

	scores := make([]float64, len(results))
	times := make([]float64, len(results))
	wins := 0.0
	for i, r := range results {
		scores[i] = fe.score(r)
		times[i] = r.simTime
		if r.outcome == telemetry.OutcomeBossDefeated {
			wins++
		}
	}
	mean, std := stat.MeanStdDev(scores, nil)
	meanTime := stat.Mean(times, nil)

	fe.mu.Lock()
	fe.lastMean = meanTime
	fe.lastWins = wins / float64(len(results))
	fe.mu.Unlock()

	// Seed variance counts against a config: the fight should feel the same every time.
	if math.IsNaN(std) {
		std = 0
	}
	return mean + 0.5*std
}

// runFight plays one fight to its outcome.
func (fe *FitnessEvaluator) runFight(x []float64, seed int64) runResult {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)

	g := game.NewGameWithOptions(game.Options{
		Config:         cfg,
		Seed:           seed,
		Headless:       true,
		StepsPerUpdate: 20,
		MaxTime:        fe.target.MaxTime,
		Logger:         fe.quiet,
	})
	defer g.Unload()

	for !g.Finished() {
		g.UpdateHeadless()
	}

	s := g.Summary()
	var total, alive int
	for _, c := range s.Combatants {
		if c.Role != "challenger" {
			continue
		}
		total++
		if c.Alive {
			alive++
		}
	}
	r := runResult{outcome: s.Outcome, simTime: s.SimTime}
	if total > 0 {
		r.survivors = float64(alive) / float64(total)
	}
	return r
}

// score turns one fight into a cost.
func (fe *FitnessEvaluator) score(r runResult) float64 {
	t := fe.target
	durErr := (r.simTime - t.Duration) / t.Duration
	survErr := r.survivors - t.Survivors
	cost := durErr*durErr + survErr*survErr

	switch r.outcome {
	case telemetry.OutcomePartyWiped:
		cost += wipePenalty
	case telemetry.OutcomeTimeout:
		cost += timeoutPenalty
	}
	return cost
}

// copyConfig returns a copy of the base config. Prototypes are shared; runs only read them.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	return &cfg
}
