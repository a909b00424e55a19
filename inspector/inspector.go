// Package inspector shows the components of a selected entity.
package inspector

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"
)

// Panel dimensions
const (
	PanelWidth   = 320
	PanelPadding = 10
	HeaderHeight = 30
)

// Panel colors
var (
	ColorPanelBg     = rl.Color{R: 30, G: 30, B: 35, A: 240}
	ColorPanelHeader = rl.Color{R: 45, G: 45, B: 55, A: 255}
	ColorPanelBorder = rl.Color{R: 70, G: 70, B: 80, A: 255}
	ColorHeaderText  = rl.Color{R: 255, G: 255, B: 255, A: 255}
	ColorCloseBtn    = rl.Color{R: 180, G: 80, B: 80, A: 255}
	ColorSection     = rl.Color{R: 50, G: 50, B: 60, A: 255}
	ColorSectionText = rl.Color{R: 200, G: 200, B: 220, A: 255}
)

// Section is one component shown in the panel.
type Section struct {
	Title     string
	Component any // struct or pointer to struct; fields read via inspect tags
}

// PickFunc returns the entity under a screen point, if any.
type PickFunc func(sx, sy float32) (ecs.Entity, bool)

// Inspector manages entity selection and panel rendering.
type Inspector struct {
	selected     ecs.Entity
	hasSelected  bool
	panelX       int32
	panelY       int32
	screenWidth  int32
	screenHeight int32
}

// NewInspector creates a new inspector instance.
func NewInspector(screenWidth, screenHeight int32) *Inspector {
	ins := &Inspector{}
	ins.Resize(screenWidth, screenHeight)
	return ins
}

// Resize re-anchors the panel to the right edge.
func (ins *Inspector) Resize(screenWidth, screenHeight int32) {
	ins.screenWidth = screenWidth
	ins.screenHeight = screenHeight
	ins.panelX = screenWidth - PanelWidth - 10
	ins.panelY = 10
}

// HandleInput processes click detection for entity selection.
func (ins *Inspector) HandleInput(mouseX, mouseY float32, pick PickFunc) {
	if rl.IsMouseButtonPressed(rl.MouseButtonRight) || rl.IsKeyPressed(rl.KeyEscape) {
		ins.Deselect()
		return
	}

	if !rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		return
	}

	if ins.hasSelected {
		closeX := ins.panelX + PanelWidth - 25
		closeY := ins.panelY + 5
		if int32(mouseX) >= closeX && int32(mouseX) <= closeX+20 &&
			int32(mouseY) >= closeY && int32(mouseY) <= closeY+20 {
			ins.Deselect()
			return
		}

		// Clicks inside the panel never select through it.
		if int32(mouseX) >= ins.panelX && int32(mouseX) <= ins.panelX+PanelWidth &&
			int32(mouseY) >= ins.panelY {
			return
		}
	}

	if e, ok := pick(mouseX, mouseY); ok {
		ins.Select(e)
	}
}

// Select makes e the inspected entity.
func (ins *Inspector) Select(e ecs.Entity) {
	ins.selected = e
	ins.hasSelected = true
}

// Deselect clears the current selection.
func (ins *Inspector) Deselect() {
	ins.hasSelected = false
}

// Selected returns the currently selected entity.
func (ins *Inspector) Selected() (ecs.Entity, bool) {
	return ins.selected, ins.hasSelected
}

// Draw renders the panel for the selected entity.
// An empty section list means the entity is gone and clears the selection.
func (ins *Inspector) Draw(title string, sections []Section) {
	if !ins.hasSelected {
		return
	}
	if len(sections) == 0 {
		ins.Deselect()
		return
	}

	fieldsBySection := make([][]Field, len(sections))
	height := int32(HeaderHeight + PanelPadding + 22)
	for i, s := range sections {
		fieldsBySection[i] = ExtractFields(s.Component)
		height += 24
		for _, f := range fieldsBySection[i] {
			height += FieldHeight(f)
		}
	}
	height += PanelPadding

	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, height, ColorPanelBg)
	rl.DrawRectangleLinesEx(
		rl.Rectangle{X: float32(ins.panelX), Y: float32(ins.panelY), Width: PanelWidth, Height: float32(height)},
		1,
		ColorPanelBorder,
	)

	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, HeaderHeight, ColorPanelHeader)
	rl.DrawText("INSPECTOR", ins.panelX+PanelPadding, ins.panelY+7, 16, ColorHeaderText)

	closeX := ins.panelX + PanelWidth - 25
	closeY := ins.panelY + 5
	rl.DrawRectangle(closeX, closeY, 20, 20, ColorCloseBtn)
	rl.DrawText("X", closeX+6, closeY+3, 14, rl.White)

	x := ins.panelX + PanelPadding
	y := ins.panelY + HeaderHeight + PanelPadding

	rl.DrawText(title, x, y, 14, ColorHeaderText)
	y += 22

	for i, s := range sections {
		ins.drawSectionHeader(x, y, s.Title)
		y += 24
		for _, f := range fieldsBySection[i] {
			y += DrawField(x, y, f)
		}
	}
}

// DrawSelectionHighlight draws a ring around the selected entity at a screen point.
func (ins *Inspector) DrawSelectionHighlight(sx, sy, radius float32) {
	if !ins.hasSelected {
		return
	}
	rl.DrawCircleLines(int32(sx), int32(sy), radius+4, rl.Yellow)
	rl.DrawCircleLines(int32(sx), int32(sy), radius+6, rl.Color{R: 255, G: 255, B: 0, A: 100})
}

// drawSectionHeader renders a section title.
func (ins *Inspector) drawSectionHeader(x, y int32, title string) {
	rl.DrawRectangle(x-2, y-2, PanelWidth-2*PanelPadding+4, 18, ColorSection)
	rl.DrawText(title, x+2, y, 14, ColorSectionText)
}
