package app

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/mikeyj777/detailed-modeling-data-analysis/pkg/viewer"
)

// drawFrame draws the primitives of a frame in order
func (app *App) drawFrame(f viewer.Frame) {
	rl.ClearBackground(toRaylib(f.Background))

	for _, p := range f.Primitives {
		switch v := p.(type) {
		case viewer.Line:
			rl.DrawLineEx(toVector(v.From), toVector(v.To), float32(v.Width), toRaylib(v.Color))
		case viewer.Circle:
			rl.DrawCircleV(toVector(v.Center), float32(v.Radius), toRaylib(v.Fill))
		case viewer.Text:
			app.drawLabel(v)
		}
	}
}

// drawLabel draws a text primitive. Positions are baselines, raylib draws
// from the top left corner.
func (app *App) drawLabel(t viewer.Text) {
	size := float32(t.Size)
	spacing := size / 10
	width := rl.MeasureTextEx(app.UI.font, t.Content, size, spacing).X

	pos := toVector(t.Pos)
	pos.Y -= size * 0.8
	switch t.Anchor {
	case viewer.AnchorMiddle:
		pos.X -= width / 2
	case viewer.AnchorEnd:
		pos.X -= width
	}

	col := toRaylib(t.Color)
	rl.DrawTextEx(app.UI.font, t.Content, pos, size, spacing, col)
	if t.Bold {
		pos.X++
		rl.DrawTextEx(app.UI.font, t.Content, pos, size, spacing, col)
	}
}

func toVector(p viewer.Point2) rl.Vector2 {
	return rl.Vector2{X: float32(p.X), Y: float32(p.Y)}
}

func toRaylib(c color.RGBA) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, c.A)
}
