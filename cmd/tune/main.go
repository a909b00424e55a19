// Command tune searches boss tunables with CMA-ES so that headless fights
// last a target duration and leave a target share of the party standing.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/titan/config"
)

// evalRow is one line of tune_log.csv.
type evalRow struct {
	Eval           int     `csv:"eval"`
	Fitness        float64 `csv:"fitness"`
	MeanTime       float64 `csv:"mean_time"`
	WinRate        float64 `csv:"win_rate"`
	SpikeDamage    float64 `csv:"spike_damage"`
	LaserDamage    float64 `csv:"laser_damage"`
	HandSlamDamage float64 `csv:"hand_slam_damage"`
	SpikeRadius    float64 `csv:"spike_radius"`
	HandSlamRadius float64 `csv:"hand_slam_radius"`
	AttackInterval float64 `csv:"attack_interval"`
	MaxHealth      float64 `csv:"max_health"`
}

func newEvalRow(eval int, fitness, meanTime, winRate float64, v []float64) evalRow {
	return evalRow{
		Eval:           eval,
		Fitness:        fitness,
		MeanTime:       meanTime,
		WinRate:        winRate,
		SpikeDamage:    v[0],
		LaserDamage:    v[1],
		HandSlamDamage: v[2],
		SpikeRadius:    v[3],
		HandSlamRadius: v[4],
		AttackInterval: v[5],
		MaxHealth:      v[6],
	}
}

// formatDuration formats a duration as 1h02m03s or 2m03s.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second
	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

func main() {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	targetTime := flag.Float64("target-time", 90, "Desired fight length in seconds")
	targetSurvivors := flag.Float64("target-survivors", 0.5, "Desired fraction of the party alive when the boss falls")
	maxTime := flag.Float64("max-time", 300, "Per-fight time cap in seconds")
	seeds := flag.Int("seeds", 4, "Fights per evaluation")
	maxEvals := flag.Int("max-evals", 150, "Maximum number of evaluations")
	population := flag.Int("population", 0, "CMA-ES population size (0 = auto)")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	if *outputDir == "" {
		slog.Error("--output is required")
		os.Exit(1)
	}
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		slog.Error("failed to create output directory", "error", err)
		os.Exit(1)
	}

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	baseCfg := config.Cfg()

	params := NewParamVector()
	evalSeeds := make([]int64, *seeds)
	for i := range evalSeeds {
		evalSeeds[i] = int64(i*1000 + 42)
	}
	target := Target{Duration: *targetTime, Survivors: *targetSurvivors, MaxTime: *maxTime}
	evaluator := NewFitnessEvaluator(params, evalSeeds, baseCfg, target)

	dim := params.Dim()
	initX := params.Normalize(params.ExtractFromConfig(baseCfg))

	popSize := *population
	if popSize == 0 {
		// 4 + floor(3 ln n)
		popSize = 4 + int(3*math.Log(float64(dim)))
	}
	method := &optimize.CmaEsChol{
		InitStepSize: 0.2,
		Population:   popSize,
	}
	settings := &optimize.Settings{
		FuncEvaluations: *maxEvals,
		Concurrent:      0,
	}

	logPath := filepath.Join(*outputDir, "tune_log.csv")
	logFile, err := os.Create(logPath)
	if err != nil {
		slog.Error("failed to create log file", "error", err)
		os.Exit(1)
	}
	defer logFile.Close()

	evalCount := 0
	bestFitness := math.Inf(1)
	var bestParams []float64
	startTime := time.Now()

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			raw := params.Clamp(params.Denormalize(x))
			fitness := evaluator.Evaluate(raw)
			evalCount++

			if fitness < bestFitness {
				bestFitness = fitness
				bestParams = append(bestParams[:0], raw...)
			}

			meanTime, winRate := evaluator.Last()
			rows := []evalRow{newEvalRow(evalCount, fitness, meanTime, winRate, raw)}
			if evalCount == 1 {
				err = gocsv.Marshal(rows, logFile)
			} else {
				err = gocsv.MarshalWithoutHeaders(rows, logFile)
			}
			if err != nil {
				slog.Error("failed to write log row", "eval", evalCount, "error", err)
			}

			elapsed := time.Since(startTime)
			remaining := time.Duration(*maxEvals-evalCount) * (elapsed / time.Duration(evalCount))
			fmt.Printf("Eval %d/%d: fitness=%.4f mean_time=%.1fs wins=%.0f%% (best=%.4f) | elapsed: %s, ETA: %s\n",
				evalCount, *maxEvals, fitness, meanTime, winRate*100, bestFitness,
				formatDuration(elapsed), formatDuration(remaining))
			return fitness
		},
	}

	fmt.Printf("Starting CMA-ES with %d parameters, population=%d, max_evals=%d\n", dim, popSize, *maxEvals)
	fmt.Printf("Target: %.0fs fights with %.0f%% of the party standing, %d seeds per evaluation\n",
		*targetTime, *targetSurvivors*100, *seeds)

	result, err := optimize.Minimize(problem, initX, settings, method)
	if err != nil {
		slog.Warn("optimization ended", "error", err)
	}
	if bestParams == nil && result != nil {
		bestParams = params.Clamp(params.Denormalize(result.X))
	}
	if bestParams == nil {
		slog.Error("no evaluation completed")
		os.Exit(1)
	}

	fmt.Printf("\nTuning complete after %d evaluations in %s\n", evalCount, formatDuration(time.Since(startTime)))
	fmt.Printf("Best fitness: %.4f\n\nBest parameters:\n", bestFitness)
	for i, spec := range params.Specs {
		fmt.Printf("  %s: %.4f\n", spec.Path, bestParams[i])
	}

	bestCfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to reload config", "error", err)
		os.Exit(1)
	}
	params.ApplyToConfig(bestCfg, bestParams)
	configOut := filepath.Join(*outputDir, "best_config.yaml")
	if err := bestCfg.WriteYAML(configOut); err != nil {
		slog.Error("failed to write best config", "error", err)
		os.Exit(1)
	}
	fmt.Printf("\nBest config saved to: %s\n", configOut)
}
