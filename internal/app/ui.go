package app

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/mikeyj777/detailed-modeling-data-analysis/pkg/analysis"
	"github.com/mikeyj777/detailed-modeling-data-analysis/version"
)

// showMessage flashes a status line for a few seconds
func (app *App) showMessage(msg string) {
	app.UI.message = msg
	app.UI.shownAt = time.Now()
}

// drawUI draws the overlay text on top of the surface
func (app *App) drawUI() {
	y := float32(10)
	lineHeight := float32(16)
	fontSize14 := float32(14)
	fontSize12 := float32(12)
	textColor := rl.NewColor(60, 60, 60, 255)
	headColor := rl.NewColor(20, 60, 160, 255)

	screenWidth := float32(rl.GetScreenWidth())
	screenHeight := float32(rl.GetScreenHeight())

	if app.FileWatch.isLoading {
		elapsed := time.Since(app.FileWatch.loadingStartTime).Seconds()
		loadingText := fmt.Sprintf("Loading... (%.1fs)", elapsed)
		textSize := rl.MeasureTextEx(app.UI.font, loadingText, fontSize14, 1)
		rl.DrawTextEx(app.UI.font, loadingText, rl.Vector2{X: screenWidth - textSize.X - 10, Y: 10}, fontSize14, 1, headColor)
	}

	if app.View.showStats {
		if app.Surface.stats == nil {
			c := app.Surface.controller
			app.Surface.stats = analysis.AnalyzeGrid(c.Grid(), c.Camera().Scale)
		}
		stats := app.Surface.stats
		camera := app.Surface.controller.Camera()

		lines := []string{
			fmt.Sprintf("Grid: %d x %d", stats.Rows, stats.Cols),
			fmt.Sprintf("Values: %.3f .. %.3f", stats.Min.Value, stats.Max.Value),
			fmt.Sprintf("Rotation: %.1f, %.1f, %.1f", camera.RotationX, camera.RotationY, camera.RotationZ),
			fmt.Sprintf("Scale: %.1f", camera.Scale),
		}
		for _, line := range lines {
			rl.DrawTextEx(app.UI.font, line, rl.Vector2{X: 10, Y: y}, fontSize12, 1, textColor)
			y += lineHeight
		}
		y += lineHeight / 2
	}

	if app.View.showHelp {
		help := []string{
			"Drag: Rotate | Wheel: Zoom",
			"Home/R: Reset | 1-4: Presets",
			"Ctrl+V: Paste grid | H: Help | I: Info",
		}
		for _, line := range help {
			rl.DrawTextEx(app.UI.font, line, rl.Vector2{X: 10, Y: y}, fontSize12, 1, headColor)
			y += lineHeight
		}
	}

	bottomY := screenHeight - 20
	if app.FileWatch.lastError != "" {
		rl.DrawTextEx(app.UI.font, app.FileWatch.lastError, rl.Vector2{X: 10, Y: bottomY - lineHeight}, fontSize12, 1, rl.Red)
	}
	if app.UI.message != "" && time.Since(app.UI.shownAt) < 3*time.Second {
		textSize := rl.MeasureTextEx(app.UI.font, app.UI.message, fontSize14, 1)
		rl.DrawTextEx(app.UI.font, app.UI.message, rl.Vector2{X: screenWidth - textSize.X - 10, Y: bottomY}, fontSize14, 1, headColor)
	}

	versionText := fmt.Sprintf("v%s", version.GetVersion())
	rl.DrawTextEx(app.UI.font, versionText, rl.Vector2{X: 10, Y: bottomY}, fontSize12, 1, rl.Gray)

	fpsText := fmt.Sprintf("FPS: %d", rl.GetFPS())
	versionWidth := rl.MeasureTextEx(app.UI.font, versionText, fontSize12, 1).X
	rl.DrawTextEx(app.UI.font, fpsText, rl.Vector2{X: 10 + versionWidth + 15, Y: bottomY}, fontSize12, 1, rl.DarkGreen)
}
