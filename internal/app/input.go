package app

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/mikeyj777/detailed-modeling-data-analysis/pkg/viewer"
)

// viewPresets maps number keys to fixed cameras
var viewPresets = map[int32]viewer.Camera{
	rl.KeyOne:   {RotationX: 0, RotationY: 0, Scale: 1},   // front
	rl.KeyTwo:   {RotationX: 90, RotationY: 0, Scale: 1},  // top
	rl.KeyThree: {RotationX: 0, RotationY: 90, Scale: 1},  // side
	rl.KeyFour:  {RotationX: 45, RotationY: 45, Scale: 1}, // iso
}

// handleInput forwards mouse and keyboard input to the controller
func (app *App) handleInput() {
	c := app.Surface.controller
	mouse := rl.GetMousePosition()
	pos := viewer.Point2{X: float64(mouse.X), Y: float64(mouse.Y)}

	onScreen := rl.IsCursorOnScreen()
	if app.Interaction.cursorOnScreen && !onScreen {
		c.OnPointerLeave()
	}
	app.Interaction.cursorOnScreen = onScreen

	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		c.OnPointerDown(pos)
	}
	if rl.IsMouseButtonDown(rl.MouseLeftButton) {
		c.OnPointerMove(pos)
	}
	if rl.IsMouseButtonReleased(rl.MouseLeftButton) {
		c.OnPointerUp()
	}

	// raylib reports positive wheel movement when scrolling up
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		c.OnWheel(-float64(wheel))
	}

	if rl.IsKeyPressed(rl.KeyHome) || rl.IsKeyPressed(rl.KeyR) {
		c.ResetView()
	}
	for key, preset := range viewPresets {
		if rl.IsKeyPressed(key) {
			c.SetCamera(preset)
		}
	}

	ctrlPressed := rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl) ||
		rl.IsKeyDown(rl.KeyLeftSuper) || rl.IsKeyDown(rl.KeyRightSuper)
	if ctrlPressed && rl.IsKeyPressed(rl.KeyV) {
		app.pasteClipboard()
	}

	if rl.IsKeyPressed(rl.KeyH) {
		app.View.showHelp = !app.View.showHelp
	}
	if rl.IsKeyPressed(rl.KeyI) {
		app.View.showStats = !app.View.showStats
	}
}

// pasteClipboard replaces the grid with tabular text from the clipboard
func (app *App) pasteClipboard() {
	text := rl.GetClipboardText()
	c := app.Surface.controller
	if !c.OnPaste(text) {
		app.showMessage("Clipboard holds no grid rows")
		return
	}
	g := c.Grid()
	app.showMessage(fmt.Sprintf("Pasted %d x %d grid", g.Rows(), g.Cols()))
}
