package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/titan/camera"
	"github.com/pthm-cable/titan/systems"
)

// EffectRenderer draws telegraphs, impacts and beams, fading them out as
// their lifetime runs down.
type EffectRenderer struct{}

// NewEffectRenderer creates a new effect renderer.
func NewEffectRenderer() *EffectRenderer {
	return &EffectRenderer{}
}

// Draw renders every effect prop; other props are skipped.
func (r *EffectRenderer) Draw(cam *camera.Camera, props []PropView) {
	for i := range props {
		p := &props[i]
		if !isEffect(p.Proto) || !cam.IsVisible(p.X, p.Y, math.Max(p.Radius, p.Length)) {
			continue
		}

		lifeRatio := float32(p.Life)
		if lifeRatio < 0 {
			lifeRatio = 0
		}

		switch p.Proto {
		case systems.ProtoTelegraphCircle:
			drawTelegraphCircle(cam, p, rl.Color{R: 255, G: 170, B: 60, A: uint8(40 + lifeRatio*80)})
		case systems.ProtoTelegraphCircleStrong:
			drawTelegraphCircle(cam, p, rl.Color{R: 255, G: 60, B: 40, A: uint8(60 + lifeRatio*100)})
		case systems.ProtoTelegraphLine:
			drawBeam(cam, p, 0.5, rl.Color{R: 255, G: 90, B: 90, A: uint8(40 + lifeRatio*80)})
		case systems.ProtoSpikeEffect:
			drawBurst(cam, p, rl.Color{R: 220, G: 220, B: 235, A: uint8(lifeRatio * 230)})
		case systems.ProtoSlamImpact:
			drawBurst(cam, p, rl.Color{R: 160, G: 110, B: 70, A: uint8(lifeRatio * 230)})
		case systems.ProtoLaserBeamEffect:
			drawBeam(cam, p, 1.0, rl.Color{R: 255, G: 240, B: 120, A: uint8(lifeRatio * 255)})
		}
	}
}

func drawTelegraphCircle(cam *camera.Camera, p *PropView, color rl.Color) {
	sx, sy := cam.WorldToScreen(p.X, p.Y)
	radius := cam.Length(p.Radius)
	rl.DrawCircleV(rl.Vector2{X: sx, Y: sy}, radius, color)
	outline := color
	outline.A = 220
	rl.DrawCircleLines(int32(sx), int32(sy), radius, outline)
}

func drawBurst(cam *camera.Camera, p *PropView, color rl.Color) {
	sx, sy := cam.WorldToScreen(p.X, p.Y)
	// Impacts bloom outward as they fade.
	radius := cam.Length(p.Radius) * (1.3 - 0.3*float32(p.Life))
	rl.DrawCircleV(rl.Vector2{X: sx, Y: sy}, radius, color)
}

func drawBeam(cam *camera.Camera, p *PropView, width float64, color rl.Color) {
	sx, sy := cam.WorldToScreen(p.X, p.Y)
	ex, ey := cam.WorldToScreen(
		p.X+math.Cos(p.Angle)*p.Length,
		p.Y+math.Sin(p.Angle)*p.Length,
	)
	thick := cam.Length(width)
	if thick < 1 {
		thick = 1
	}
	rl.DrawLineEx(rl.Vector2{X: sx, Y: sy}, rl.Vector2{X: ex, Y: ey}, thick, color)
}

// isEffect reports whether proto is drawn by the EffectRenderer.
func isEffect(proto string) bool {
	switch proto {
	case systems.ProtoTelegraphCircle, systems.ProtoTelegraphCircleStrong, systems.ProtoTelegraphLine,
		systems.ProtoSpikeEffect, systems.ProtoSlamImpact, systems.ProtoLaserBeamEffect:
		return true
	}
	return false
}
