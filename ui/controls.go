package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// MaxSpeed is the highest steps-per-frame the speed slider offers.
const MaxSpeed = 10

// ControlsState is what the panel shows.
type ControlsState struct {
	Paused           bool
	Speed            int
	BossDormant      bool
	ShowTargetRadius bool
}

// ControlActions are the user's requests from one frame of the panel.
type ControlActions struct {
	TogglePause  bool
	Reset        bool
	Activate     bool
	ToggleTarget bool
	Speed        int
}

// ControlsPanel renders the raygui control panel.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		visible:  true,
	}
}

// SetPosition updates the panel position.
func (c *ControlsPanel) SetPosition(x, y int32) {
	c.x = x
	c.y = y
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Draw renders the panel and returns what the user clicked.
func (c *ControlsPanel) Draw(state ControlsState) ControlActions {
	actions := ControlActions{Speed: state.Speed}
	if !c.visible {
		return actions
	}

	r := c.renderer
	padding := float32(r.Theme.Padding)
	x := float32(c.x) + padding
	y := float32(c.y) + padding
	inner := float32(c.width) - 2*padding
	half := (inner - padding) / 2

	r.DrawPanel(c.x, c.y, c.width, 170)
	rl.DrawText("Controls", int32(x), int32(y), 16, rl.White)
	y += 24

	pauseText := "Pause"
	if state.Paused {
		pauseText = "Resume"
	}
	if gui.Button(rl.Rectangle{X: x, Y: y, Width: half, Height: 26}, pauseText) {
		actions.TogglePause = true
	}
	if gui.Button(rl.Rectangle{X: x + half + padding, Y: y, Width: half, Height: 26}, "Reset fight") {
		actions.Reset = true
	}
	y += 34

	if state.BossDormant {
		if gui.Button(rl.Rectangle{X: x, Y: y, Width: half, Height: 26}, "Activate") {
			actions.Activate = true
		}
	}
	targetText := "Show range"
	if state.ShowTargetRadius {
		targetText = "Hide range"
	}
	if gui.Button(rl.Rectangle{X: x + half + padding, Y: y, Width: half, Height: 26}, targetText) {
		actions.ToggleTarget = true
	}
	y += 36

	rl.DrawText("Speed", int32(x), int32(y), r.Theme.FontSize, r.Theme.LabelColor)
	y += 16
	speed := gui.SliderBar(
		rl.Rectangle{X: x, Y: y, Width: inner - 40, Height: 18},
		"", "",
		float32(state.Speed), 1, MaxSpeed,
	)
	rl.DrawText(fmt.Sprintf("%dx", state.Speed), int32(x+inner-34), int32(y+2), r.Theme.FontSize, r.Theme.ValueColor)
	if s := int(speed + 0.5); s != state.Speed {
		actions.Speed = s
	}

	return actions
}
