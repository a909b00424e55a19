package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/titan/systems"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title            string
	SimTime          float64
	Tick             int32
	Speed            int
	FPS              int32
	Paused           bool
	Outcome          string // empty while the fight is running
	Phase            string
	Attack           string
	BossHP, BossMax  float64
	ChallengersAlive int
	ChallengersTotal int
	PendingActions   int
	Frames           int
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	rl.DrawText(
		fmt.Sprintf("Time: %.1fs | Tick: %d | Speed: %dx | FPS: %d", data.SimTime, data.Tick, data.Speed, data.FPS),
		10, 35, 16, rl.LightGray,
	)
	rl.DrawText(
		fmt.Sprintf("Phase: %s | Attack: %s | Party: %d/%d | Queued: %d | Frames: %d",
			data.Phase, data.Attack, data.ChallengersAlive, data.ChallengersTotal, data.PendingActions, data.Frames),
		10, 55, 16, rl.LightGray,
	)
	h.renderer.DrawHealthBar(10, 77, "Titan", data.BossHP, data.BossMax, 360)

	switch {
	case data.Outcome != "":
		rl.DrawText("Finished: "+data.Outcome, 10, 97, 16, rl.Orange)
	case data.Paused:
		rl.DrawText("PAUSED", 10, 97, 16, rl.Yellow)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanelData holds performance metrics for display.
type PerfPanelData struct {
	StageAvg map[string]time.Duration
	Total    time.Duration
	Registry *systems.SystemRegistry
}

// PerfPanel renders the tick stage timing panel.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the stages in registry order.
func (p *PerfPanel) Draw(data PerfPanelData) {
	x := p.x
	y := p.y

	rl.DrawText("Tick Stages", x, y, 16, rl.White)
	y += 20

	y = p.renderer.DrawLabelValue(x, y, "Total", data.Total.Round(time.Microsecond).String())
	y = p.renderer.DrawLabelValue(x, y, "Slowest", slowestStage(data))

	if data.Registry == nil {
		return
	}
	for _, info := range data.Registry.All() {
		avg := data.StageAvg[info.ID]
		pct := stageShare(avg, data.Total)

		color := rl.LightGray
		if pct > 50 {
			color = rl.Red
		} else if pct > 25 {
			color = rl.Orange
		}

		rl.DrawText(
			fmt.Sprintf("%-12s %8s %5.1f%%", info.Name, avg.Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}
}

// stageShare returns avg as a percentage of total.
func stageShare(avg, total time.Duration) float64 {
	if total <= 0 {
		return 0
	}
	return float64(avg) / float64(total) * 100
}

// slowestStage names the registered stage with the highest average, or "-".
func slowestStage(data PerfPanelData) string {
	if data.Registry == nil {
		return "-"
	}
	name := "-"
	var best time.Duration
	for _, info := range data.Registry.All() {
		if avg := data.StageAvg[info.ID]; avg > best {
			best = avg
			name = info.Name
		}
	}
	return name
}
