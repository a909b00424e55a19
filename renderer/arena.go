package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/titan/camera"
	"github.com/pthm-cable/titan/components"
)

// Palette
var (
	ColorFloor      = rl.Color{R: 28, G: 30, B: 36, A: 255}
	ColorFloorEdge  = rl.Color{R: 70, G: 74, B: 86, A: 255}
	ColorBarrier    = rl.Color{R: 120, G: 170, B: 255, A: 255}
	ColorDormant    = rl.Color{R: 110, G: 110, B: 120, A: 255}
	ColorPhase1     = rl.Color{R: 190, G: 150, B: 90, A: 255}
	ColorPhase2     = rl.Color{R: 220, G: 120, B: 60, A: 255}
	ColorPhase3     = rl.Color{R: 230, G: 50, B: 50, A: 255}
	ColorEye        = rl.Color{R: 255, G: 240, B: 160, A: 255}
	ColorChallenger = rl.Color{R: 90, G: 200, B: 140, A: 255}
	ColorCritical   = rl.Color{R: 230, G: 200, B: 70, A: 255}
	ColorDead       = rl.Color{R: 70, G: 70, B: 70, A: 255}
	ColorHPBack     = rl.Color{R: 40, G: 40, B: 40, A: 220}
	ColorHP         = rl.Color{R: 100, G: 200, B: 100, A: 255}
)

// Sizes in world units.
const (
	bossRadius       = 2.0
	challengerRadius = 0.5
	barrierRadius    = 0.35
)

// ArenaRenderer draws the arena floor, barrier ring, boss and party.
type ArenaRenderer struct {
	effects *EffectRenderer

	// ShowTargetRadius draws the boss's target search range.
	ShowTargetRadius bool
}

// NewArenaRenderer creates an arena renderer.
func NewArenaRenderer() *ArenaRenderer {
	return &ArenaRenderer{effects: NewEffectRenderer()}
}

// Draw renders the whole scene.
func (r *ArenaRenderer) Draw(cam *camera.Camera, scene *Scene) {
	var cx, cy float64
	if scene.HasBoss {
		cx, cy = scene.Boss.X, scene.Boss.Y
	}
	r.drawFloor(cam, cx, cy, scene.ArenaRadius)
	if r.ShowTargetRadius && scene.HasBoss {
		sx, sy := cam.WorldToScreen(cx, cy)
		rl.DrawCircleLines(int32(sx), int32(sy), cam.Length(scene.TargetRadius), rl.DarkGray)
	}

	for i := range scene.Props {
		if scene.Props[i].Proto == "" || isEffect(scene.Props[i].Proto) {
			continue
		}
		r.drawBarrier(cam, &scene.Props[i])
	}

	r.effects.Draw(cam, scene.Props)

	for i := range scene.Challengers {
		r.drawChallenger(cam, &scene.Challengers[i])
	}
	if scene.HasBoss {
		r.drawBoss(cam, &scene.Boss)
	}
}

func (r *ArenaRenderer) drawFloor(cam *camera.Camera, cx, cy, radius float64) {
	sx, sy := cam.WorldToScreen(cx, cy)
	rl.DrawCircleV(rl.Vector2{X: sx, Y: sy}, cam.Length(radius), ColorFloor)
	rl.DrawCircleLines(int32(sx), int32(sy), cam.Length(radius), ColorFloorEdge)
}

func (r *ArenaRenderer) drawBarrier(cam *camera.Camera, p *PropView) {
	if !cam.IsVisible(p.X, p.Y, barrierRadius) {
		return
	}
	sx, sy := cam.WorldToScreen(p.X, p.Y)
	rl.DrawCircleV(rl.Vector2{X: sx, Y: sy}, cam.Length(barrierRadius), ColorBarrier)
}

func (r *ArenaRenderer) drawBoss(cam *camera.Camera, b *BossView) {
	sx, sy := cam.WorldToScreen(b.X, b.Y)
	radius := cam.Length(bossRadius)

	rl.DrawCircleV(rl.Vector2{X: sx, Y: sy}, radius, bossColor(b))
	if b.Enraged {
		rl.DrawCircleLines(int32(sx), int32(sy), radius+3, ColorPhase3)
	}

	// The eye sits on the rim, facing the aim direction.
	eyeDist := radius * 0.65
	ex := sx + eyeDist*float32(math.Cos(b.Aim))
	ey := sy + eyeDist*float32(math.Sin(b.Aim))
	rl.DrawCircleV(rl.Vector2{X: ex, Y: ey}, radius*0.25, ColorEye)

	drawHPBar(sx, sy-radius-10, radius*2, b.HPFrac)
}

func (r *ArenaRenderer) drawChallenger(cam *camera.Camera, c *ChallengerView) {
	if !cam.IsVisible(c.X, c.Y, challengerRadius) {
		return
	}
	sx, sy := cam.WorldToScreen(c.X, c.Y)
	radius := cam.Length(challengerRadius)

	color := ColorChallenger
	switch c.State {
	case components.LifeCritical:
		color = ColorCritical
	case components.LifeDead:
		color = ColorDead
	}
	rl.DrawCircleV(rl.Vector2{X: sx, Y: sy}, radius, color)
	if c.State != components.LifeDead {
		drawHPBar(sx, sy-radius-6, radius*3, c.HPFrac)
	}
}

func bossColor(b *BossView) rl.Color {
	if !b.Activated {
		return ColorDormant
	}
	switch b.Phase {
	case components.Phase2:
		return ColorPhase2
	case components.Phase3:
		return ColorPhase3
	default:
		return ColorPhase1
	}
}

// drawHPBar draws a health bar centred on (cx, y).
func drawHPBar(cx, y, width float32, frac float64) {
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	x := cx - width/2
	rl.DrawRectangle(int32(x), int32(y), int32(width), 4, ColorHPBack)
	rl.DrawRectangle(int32(x), int32(y), int32(width*float32(frac)), 4, ColorHP)
}
