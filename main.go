package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/titan/config"
	"github.com/pthm-cable/titan/game"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output window stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs, config snapshot and summary")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTime := flag.Float64("max-time", 0, "Fight time limit in seconds (0 = use config)")
	challengers := flag.Int("challengers", 0, "Party size (0 = use config)")
	stepsPerUpdate := flag.Int("steps-per-update", 1, "Simulation ticks per update call (higher = faster headless runs)")
	watch := flag.Bool("watch", false, "Reload -config on change and restart the fight (viewer only)")

	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	// JSON to stdout for structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	opts := game.Options{
		Config:         cfg,
		Seed:           rngSeed,
		LogStats:       *logStats,
		StatsWindowSec: *statsWindow,
		OutputDir:      *outputDir,
		Headless:       *headless,
		StepsPerUpdate: *stepsPerUpdate,
		Challengers:    *challengers,
		MaxTime:        *maxTime,
		Logger:         logger,
	}

	if *headless {
		runHeadless(opts)
		return
	}
	runViewer(opts, *configPath, *watch)
}

// runHeadless simulates until the fight ends. No raylib calls are made.
func runHeadless(opts game.Options) {
	g := game.NewGameWithOptions(opts)
	defer g.Unload()

	slog.Info("starting headless simulation",
		"seed", opts.Seed,
		"max_time", opts.MaxTime,
		"steps_per_update", opts.StepsPerUpdate,
	)

	for !g.Finished() {
		g.UpdateHeadless()
	}
	slog.Info("simulation complete", "outcome", g.Outcome(), "time", g.Now(), "tick", g.Tick())
}

// runViewer opens the raylib window and runs the fight interactively.
func runViewer(opts game.Options, configPath string, watch bool) {
	cfg := opts.Config
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Titan")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g := game.NewGameWithOptions(opts)
	defer g.Unload()

	var watcher *config.Watcher
	if watch && configPath != "" {
		w, err := config.NewWatcher(configPath)
		if err != nil {
			slog.Error("failed to watch config", "path", configPath, "error", err)
		} else {
			watcher = w
			defer watcher.Close()
			slog.Info("watching config", "path", configPath)
		}
	}

	for !rl.WindowShouldClose() {
		if watcher != nil {
			select {
			case next := <-watcher.Configs:
				config.Set(next)
				g.ApplyConfig(next)
			case err := <-watcher.Errors:
				slog.Error("config reload failed", "error", err)
			default:
			}
		}

		g.Update()
		g.Draw()
	}
}
