package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"
)

// Pick radii in world units.
const (
	bossPickRadius       = 2.0
	challengerPickRadius = 0.8
)

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	g.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}

	// Steps-per-update with < > (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) && g.stepsPerUpdate > 1 {
		g.stepsPerUpdate--
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && g.stepsPerUpdate < 10 {
		g.stepsPerUpdate++
	}

	if rl.IsKeyPressed(rl.KeyR) {
		g.Reset(nil)
	}
	if rl.IsKeyPressed(rl.KeyT) {
		g.showTargets = !g.showTargets
	}
	if rl.IsKeyPressed(rl.KeyP) {
		g.showPerf = !g.showPerf
	}
	if rl.IsKeyPressed(rl.KeyC) && g.controls != nil {
		g.controls.Toggle()
	}

	g.handleCameraInput()

	if g.inspector != nil {
		mouse := rl.GetMousePosition()
		g.inspector.HandleInput(mouse.X, mouse.Y, g.pick)
	}
}

// handleResize propagates window size changes.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == g.screenW && h == g.screenH {
		return
	}
	g.screenW = w
	g.screenH = h

	if g.camera != nil {
		g.camera.Resize(w, h)
	}
	if g.inspector != nil {
		g.inspector.Resize(int32(w), int32(h))
	}
	g.layoutPanels()
}

// handleCameraInput processes pan and zoom.
func (g *Game) handleCameraInput() {
	if g.camera == nil {
		return
	}

	panSpeed := float32(8.0)

	if rl.IsKeyDown(rl.KeyRight) || rl.IsKeyDown(rl.KeyD) {
		g.camera.Pan(panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyLeft) || rl.IsKeyDown(rl.KeyA) {
		g.camera.Pan(-panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyDown) || rl.IsKeyDown(rl.KeyS) {
		g.camera.Pan(0, panSpeed)
	}
	if rl.IsKeyDown(rl.KeyUp) || rl.IsKeyDown(rl.KeyW) {
		g.camera.Pan(0, -panSpeed)
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		g.camera.ZoomBy(1 + wheel*0.1)
	}
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		g.camera.ZoomBy(1.25)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		g.camera.ZoomBy(0.8)
	}
	if rl.IsKeyPressed(rl.KeyHome) {
		g.camera.Reset()
	}
}

// pick returns the combatant under a screen point. The boss wins ties.
func (g *Game) pick(sx, sy float32) (ecs.Entity, bool) {
	if g.camera == nil {
		return ecs.Entity{}, false
	}
	wx, wy := g.camera.ScreenToWorld(sx, sy)

	if pos := g.posMap.Get(g.boss); pos != nil && within(pos.X-wx, pos.Y-wy, bossPickRadius) {
		return g.boss, true
	}
	for _, e := range g.party {
		if pos := g.posMap.Get(e); pos != nil && within(pos.X-wx, pos.Y-wy, challengerPickRadius) {
			return e, true
		}
	}
	return ecs.Entity{}, false
}

func within(dx, dy, r float64) bool {
	return dx*dx+dy*dy <= r*r
}
