package game

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/titan/camera"
	"github.com/pthm-cable/titan/components"
	"github.com/pthm-cable/titan/config"
	"github.com/pthm-cable/titan/inspector"
	"github.com/pthm-cable/titan/renderer"
	"github.com/pthm-cable/titan/systems"
	"github.com/pthm-cable/titan/ui"
)

const controlsLegend = "[SPACE] Pause  [<>] Speed  [R] Reset  [T] Range  [P] Perf  [C] Controls  [WASD] Pan  [+/-] Zoom  [Click] Inspect"

// initViewer creates the camera and UI. The raylib window must already exist.
func (g *Game) initViewer() {
	g.screenW = float32(g.cfg.Screen.Width)
	g.screenH = float32(g.cfg.Screen.Height)

	g.camera = camera.New(g.screenW, g.screenH, float32(g.cfg.Screen.PixelsPerUnit), g.cfg.Arena.BossX, g.cfg.Arena.BossY)
	g.arena = renderer.NewArenaRenderer()
	g.hud = ui.NewHUD()
	g.perfPanel = ui.NewPerfPanel(10, 130)
	g.controls = ui.NewControlsPanel(10, 130, 240)
	g.inspector = inspector.NewInspector(int32(g.screenW), int32(g.screenH))
	g.layoutPanels()
}

// layoutPanels anchors the left-side panels for the current screen size.
func (g *Game) layoutPanels() {
	if g.controls != nil {
		g.controls.SetPosition(10, int32(g.screenH)-210)
	}
	if g.perfPanel != nil {
		g.perfPanel.SetPosition(10, 130)
	}
}

// ApplyConfig restarts the fight with a reloaded config and keeps the view.
func (g *Game) ApplyConfig(cfg *config.Config) {
	g.Reset(cfg)
	if g.camera != nil {
		g.camera.PixelsPerUnit = float32(cfg.Screen.PixelsPerUnit)
	}
	g.logger.Info("config applied", "arena_radius", cfg.Boss.ArenaRadius, "challengers", cfg.Challengers.Count)
}

// Draw renders one viewer frame.
func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Color{R: 18, G: 18, B: 24, A: 255})

	g.buildScene()
	g.arena.ShowTargetRadius = g.showTargets
	g.arena.Draw(g.camera, &g.scene)

	if sel, ok := g.inspector.Selected(); ok && g.world.Alive(sel) {
		if pos := g.posMap.Get(sel); pos != nil {
			sx, sy := g.camera.WorldToScreen(pos.X, pos.Y)
			radius := challengerPickRadius
			if sel == g.boss {
				radius = bossPickRadius
			}
			g.inspector.DrawSelectionHighlight(sx, sy, g.camera.Length(radius))
		}
	}

	g.drawUI()

	rl.EndDrawing()
}

// drawUI renders the HUD, panels and inspector.
func (g *Game) drawUI() {
	hp := g.bossHPFrac()
	var maxHP float64
	if h := g.healthMap.Get(g.boss); h != nil {
		maxHP = h.Max
	}
	alive := 0
	for _, c := range g.scene.Challengers {
		if c.State != components.LifeDead {
			alive++
		}
	}

	g.hud.Draw(ui.HUDData{
		Title:            "Titan",
		SimTime:          g.now,
		Tick:             g.tick,
		Speed:            g.stepsPerUpdate,
		FPS:              rl.GetFPS(),
		Paused:           g.paused,
		Outcome:          g.outcome,
		Phase:            g.scene.Boss.Phase.String(),
		Attack:           g.scene.Boss.Attack.String(),
		BossHP:           hp * maxHP,
		BossMax:          maxHP,
		ChallengersAlive: alive,
		ChallengersTotal: len(g.party),
		PendingActions:   g.bosses.Queue().Len(),
		Frames:           g.link.frames,
	})
	g.hud.DrawControls(int32(g.screenH), controlsLegend)

	if g.showPerf {
		perf := g.perfCollector.Stats()
		g.perfPanel.Draw(ui.PerfPanelData{
			StageAvg: perf.StageAvg,
			Total:    perf.AvgTickDuration,
			Registry: g.registry,
		})
	}

	g.applyControls(g.controls.Draw(ui.ControlsState{
		Paused:           g.paused,
		Speed:            g.stepsPerUpdate,
		BossDormant:      g.scene.HasBoss && !g.scene.Boss.Activated && !g.Finished(),
		ShowTargetRadius: g.showTargets,
	}))

	if sel, ok := g.inspector.Selected(); ok {
		title, sections := g.inspectorSections(sel)
		g.inspector.Draw(title, sections)
	}
}

// applyControls carries out the control panel clicks.
func (g *Game) applyControls(a ui.ControlActions) {
	if a.TogglePause {
		g.paused = !g.paused
	}
	if a.ToggleTarget {
		g.showTargets = !g.showTargets
	}
	if a.Speed >= 1 && a.Speed <= ui.MaxSpeed {
		g.stepsPerUpdate = a.Speed
	}
	if a.Activate && g.bosses.Interact(g.boss) {
		g.logger.Info("boss activated from viewer", "boss", g.boss.ID(), "time", g.now)
	}
	if a.Reset {
		g.Reset(nil)
	}
}

// inspectorSections lists the components shown for e.
func (g *Game) inspectorSections(e ecs.Entity) (string, []inspector.Section) {
	if !g.world.Alive(e) {
		return "", nil
	}
	var title string
	var sections []inspector.Section
	if b := g.bossMap.Get(e); b != nil {
		title = fmt.Sprintf("Titan #%d", e.ID())
		sections = append(sections, inspector.Section{Title: "Boss", Component: b})
	} else if c := g.challengerMap.Get(e); c != nil {
		title = fmt.Sprintf("Challenger #%d", e.ID())
		sections = append(sections, inspector.Section{Title: "Challenger", Component: c})
	} else {
		return "", nil
	}
	if m := g.mobMap.Get(e); m != nil {
		sections = append(sections, inspector.Section{Title: "Mob", Component: m})
	}
	if d := g.damageMap.Get(e); d != nil {
		sections = append(sections, inspector.Section{Title: "Damage", Component: d})
	}
	return title, sections
}

// buildScene gathers drawable state. Boss combat state comes from the
// replicated mirror, as a remote client would see it; positions and health
// come from the world.
func (g *Game) buildScene() {
	s := &g.scene
	s.ArenaRadius = g.cfg.Boss.ArenaRadius
	s.TargetRadius = g.cfg.Derived.TargetRadius
	s.Challengers = s.Challengers[:0]
	s.Props = s.Props[:0]
	s.HasBoss = false

	if g.world.Alive(g.boss) {
		if pos := g.posMap.Get(g.boss); pos != nil {
			s.HasBoss = true
			s.Boss = renderer.BossView{X: pos.X, Y: pos.Y, HPFrac: g.bossHPFrac()}
			if msg, ok := g.mirror.Boss(g.boss.ID()); ok {
				s.Boss.Aim = msg.AimDir
				s.Boss.Phase = msg.Phase
				s.Boss.Enraged = msg.Enraged
				s.Boss.Activated = msg.Activated
				s.Boss.Attack = msg.CurrentAttack
			}
		}
	}

	for _, e := range g.party {
		pos := g.posMap.Get(e)
		mob := g.mobMap.Get(e)
		health := g.healthMap.Get(e)
		dmg := g.damageMap.Get(e)
		if pos == nil || mob == nil || health == nil || dmg == nil {
			continue
		}
		frac := 0.0
		if health.Max > 0 {
			frac = max(0, 1-dmg.Total/health.Max)
		}
		s.Challengers = append(s.Challengers, renderer.ChallengerView{X: pos.X, Y: pos.Y, HPFrac: frac, State: mob.State})
	}

	t := &g.cfg.Boss
	query := g.propFilter.Query()
	for query.Next() {
		pos, proto := query.Get()
		p := renderer.PropView{Proto: proto.ID, X: pos.X, Y: pos.Y, Life: 1}
		if timed := g.timedMap.Get(query.Entity()); timed != nil {
			if lifetime := g.cfg.Prototype(proto.ID).Lifetime; lifetime > 0 {
				p.Life = min(1, max(0, (timed.ExpireAt-g.now)/lifetime))
			}
		}
		switch proto.ID {
		case systems.ProtoTelegraphCircle, systems.ProtoSpikeEffect:
			p.Radius = t.SpikeRadius
		case systems.ProtoTelegraphCircleStrong, systems.ProtoSlamImpact:
			p.Radius = t.HandSlamRadius
		case systems.ProtoTelegraphLine, systems.ProtoLaserBeamEffect:
			p.Angle = s.Boss.Aim
			p.Length = 2 * t.ArenaRadius
		}
		s.Props = append(s.Props, p)
	}
}
