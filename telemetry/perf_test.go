package telemetry

import (
	"testing"
	"time"

	"github.com/pthm-cable/titan/systems"
)

func TestPerfCollector_BasicTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartTick()
		pc.StartStage(systems.StageBoss)
		time.Sleep(100 * time.Microsecond)
		pc.StartStage(systems.StageEffects)
		time.Sleep(200 * time.Microsecond)
		pc.EndTick()
	}

	stats := pc.Stats()

	if stats.AvgTickDuration <= 0 {
		t.Error("expected positive average tick duration")
	}
	if _, ok := stats.StageAvg[systems.StageBoss]; !ok {
		t.Error("expected boss stage to be tracked")
	}
	if _, ok := stats.StageAvg[systems.StageEffects]; !ok {
		t.Error("expected effects stage to be tracked")
	}
	if stats.MinTickDuration > stats.MaxTickDuration {
		t.Errorf("min %v > max %v", stats.MinTickDuration, stats.MaxTickDuration)
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc := NewPerfCollector(5)

	for i := 0; i < 10; i++ {
		pc.StartTick()
		pc.StartStage(systems.StageBoss)
		time.Sleep(10 * time.Microsecond)
		pc.EndTick()
	}

	stats := pc.Stats()
	if stats.TicksPerSecond <= 0 {
		t.Error("expected positive ticks per second")
	}
	if pc.sampleCount != 5 {
		t.Errorf("sample count = %d, want window size 5", pc.sampleCount)
	}
}

func TestPerfCollector_Empty(t *testing.T) {
	stats := NewPerfCollector(0).Stats()
	if stats.AvgTickDuration != 0 || len(stats.StagePct) != 0 {
		t.Error("empty collector should report zeros")
	}
	row := stats.ToCSV(3)
	if row.SimTime != 3 {
		t.Errorf("sim_time = %v, want 3", row.SimTime)
	}
}
