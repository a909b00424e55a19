package telemetry

import (
	"log/slog"
	"time"

	"github.com/pthm-cable/titan/systems"
)

// stageOrder is the tick order used for logging and CSV columns.
var stageOrder = []string{
	systems.StageChallengers,
	systems.StageBoss,
	systems.StageLife,
	systems.StageEffects,
	systems.StageReplication,
	systems.StageTelemetry,
}

// PerfSample holds timing data for a single tick.
type PerfSample struct {
	TickDuration time.Duration
	Stages       map[string]time.Duration
}

// PerfCollector tracks tick timing over a rolling window.
type PerfCollector struct {
	windowSize    int
	samples       []PerfSample
	writeIndex    int
	sampleCount   int
	currentStages map[string]time.Duration
	tickStart     time.Time
	stageStart    time.Time
	lastStage     string

	// Frame timing (viewer only)
	lastFrameTime time.Time
	frameDuration time.Duration
}

// NewPerfCollector creates a collector averaging over windowSize ticks.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		windowSize:    windowSize,
		samples:       make([]PerfSample, windowSize),
		currentStages: make(map[string]time.Duration),
	}
}

// StartTick begins timing a new simulation tick.
func (p *PerfCollector) StartTick() {
	p.tickStart = time.Now()
	p.currentStages = make(map[string]time.Duration)
	p.lastStage = ""
}

// StartStage ends the running stage, if any, and starts timing stage.
func (p *PerfCollector) StartStage(stage string) {
	now := time.Now()
	if p.lastStage != "" {
		p.currentStages[p.lastStage] += now.Sub(p.stageStart)
	}
	p.stageStart = now
	p.lastStage = stage
}

// EndTick finishes timing the current tick and records the sample.
func (p *PerfCollector) EndTick() {
	now := time.Now()
	if p.lastStage != "" {
		p.currentStages[p.lastStage] += now.Sub(p.stageStart)
	}

	p.samples[p.writeIndex] = PerfSample{
		TickDuration: now.Sub(p.tickStart),
		Stages:       p.currentStages,
	}
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
}

// RecordFrame records render frame timing.
func (p *PerfCollector) RecordFrame() {
	now := time.Now()
	if !p.lastFrameTime.IsZero() {
		p.frameDuration = now.Sub(p.lastFrameTime)
	}
	p.lastFrameTime = now
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	AvgTickDuration time.Duration
	MinTickDuration time.Duration
	MaxTickDuration time.Duration

	StageAvg map[string]time.Duration
	StagePct map[string]float64 // share of average tick time

	TicksPerSecond float64

	FrameDuration time.Duration
	FPS           float64
}

// Stats computes aggregated statistics over the current window.
func (p *PerfCollector) Stats() PerfStats {
	var fps float64
	if p.frameDuration > 0 {
		fps = float64(time.Second) / float64(p.frameDuration)
	}

	out := PerfStats{
		StageAvg:      make(map[string]time.Duration),
		StagePct:      make(map[string]float64),
		FrameDuration: p.frameDuration,
		FPS:           fps,
	}
	if p.sampleCount == 0 {
		return out
	}

	var total time.Duration
	sums := make(map[string]time.Duration)
	for i := 0; i < p.sampleCount; i++ {
		s := p.samples[i]
		total += s.TickDuration
		if i == 0 || s.TickDuration < out.MinTickDuration {
			out.MinTickDuration = s.TickDuration
		}
		if s.TickDuration > out.MaxTickDuration {
			out.MaxTickDuration = s.TickDuration
		}
		for stage, d := range s.Stages {
			sums[stage] += d
		}
	}

	out.AvgTickDuration = total / time.Duration(p.sampleCount)
	for stage, sum := range sums {
		avg := sum / time.Duration(p.sampleCount)
		out.StageAvg[stage] = avg
		if out.AvgTickDuration > 0 {
			out.StagePct[stage] = float64(avg) / float64(out.AvgTickDuration) * 100
		}
	}
	if out.AvgTickDuration > 0 {
		out.TicksPerSecond = float64(time.Second) / float64(out.AvgTickDuration)
	}
	return out
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_tick_us", s.AvgTickDuration.Microseconds()),
		slog.Int64("min_tick_us", s.MinTickDuration.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTickDuration.Microseconds()),
		slog.Float64("ticks_per_sec", s.TicksPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}
	for _, stage := range stageOrder {
		if pct, ok := s.StagePct[stage]; ok && pct > 0.1 {
			attrs = append(attrs, slog.Float64(stage+"_pct", pct))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	SimTime        float64 `csv:"sim_time"`
	AvgTickUS      int64   `csv:"avg_tick_us"`
	MinTickUS      int64   `csv:"min_tick_us"`
	MaxTickUS      int64   `csv:"max_tick_us"`
	TicksPerSec    float64 `csv:"ticks_per_sec"`
	ChallengersPct float64 `csv:"challengers_pct"`
	BossPct        float64 `csv:"boss_pct"`
	LifePct        float64 `csv:"life_pct"`
	EffectsPct     float64 `csv:"effects_pct"`
	ReplicationPct float64 `csv:"replication_pct"`
	TelemetryPct   float64 `csv:"telemetry_pct"`
}

// ToCSV flattens PerfStats for export.
func (s PerfStats) ToCSV(simTime float64) PerfStatsCSV {
	return PerfStatsCSV{
		SimTime:        simTime,
		AvgTickUS:      s.AvgTickDuration.Microseconds(),
		MinTickUS:      s.MinTickDuration.Microseconds(),
		MaxTickUS:      s.MaxTickDuration.Microseconds(),
		TicksPerSec:    s.TicksPerSecond,
		ChallengersPct: s.StagePct[systems.StageChallengers],
		BossPct:        s.StagePct[systems.StageBoss],
		LifePct:        s.StagePct[systems.StageLife],
		EffectsPct:     s.StagePct[systems.StageEffects],
		ReplicationPct: s.StagePct[systems.StageReplication],
		TelemetryPct:   s.StagePct[systems.StageTelemetry],
	}
}
