package viewer

import (
	"fmt"
	"image/color"

	"github.com/mikeyj777/detailed-modeling-data-analysis/pkg/geometry"
)

// DefaultTickCount is the number of tick intervals on each axis
const DefaultTickCount = 6

// AxisSpec describes one axis in world space
type AxisSpec struct {
	Start     geometry.Vector3
	End       geometry.Vector3
	Label     string
	TickCount int
}

// AxisStyle controls how axes are drawn
type AxisStyle struct {
	Color         color.RGBA
	StrokeWidth   float64
	TickLength    float64 // half-length of a tick mark
	LabelOffset   float64 // distance of the axis name past the end point
	LabelSize     float64
	TickLabelSize float64
}

// DefaultAxisStyle returns black one-unit strokes with the reference label sizes
func DefaultAxisStyle() AxisStyle {
	return AxisStyle{
		Color:         color.RGBA{A: 255},
		StrokeWidth:   1,
		TickLength:    3,
		LabelOffset:   15,
		LabelSize:     12,
		TickLabelSize: 10,
	}
}

// AxisSpecs builds the X, Y and Z axes spanning the extents. Each axis
// runs along its own coordinate and sits at zero on the other two.
func AxisSpecs(extents geometry.BoundingBox, tickCount int) [3]AxisSpec {
	lo, hi := extents.Min, extents.Max
	return [3]AxisSpec{
		{Start: geometry.NewVector3(lo.X, 0, 0), End: geometry.NewVector3(hi.X, 0, 0), Label: "X", TickCount: tickCount},
		{Start: geometry.NewVector3(0, lo.Y, 0), End: geometry.NewVector3(0, hi.Y, 0), Label: "Y", TickCount: tickCount},
		{Start: geometry.NewVector3(0, 0, lo.Z), End: geometry.NewVector3(0, 0, hi.Z), Label: "Z", TickCount: tickCount},
	}
}

// tickDirection is the screen-space direction of tick marks for an axis
func tickDirection(label string, length float64) Point2 {
	switch label {
	case "X":
		return Point2{X: 0, Y: length}
	case "Y":
		return Point2{X: length, Y: 0}
	default:
		return Point2{X: length, Y: length}
	}
}

// TickLabel formats the value shown at tick i. It depends only on the
// tick index and the zoom scale, not on the axis extent.
func TickLabel(i, tickCount int, scale float64) string {
	value := (float64(i) - float64(tickCount)/2) * scale
	return fmt.Sprintf("%.1f", value)
}

// BuildAxis returns the primitives for one axis: the axis line, its name,
// then a mark and a value label for each of the TickCount+1 ticks.
// Anything that projects onto the camera plane is left out.
func (pr Projector) BuildAxis(spec AxisSpec, style AxisStyle) []Primitive {
	start := pr.Project(spec.Start)
	end := pr.Project(spec.End)

	primitives := make([]Primitive, 0, 2+2*(spec.TickCount+1))
	if !start.Clipped && !end.Clipped {
		primitives = append(primitives, Line{
			From:  start.Pos(),
			To:    end.Pos(),
			Color: style.Color,
			Width: style.StrokeWidth,
			Kind:  LineAxis,
		})
	}
	if !end.Clipped {
		primitives = append(primitives, Text{
			Pos:     Point2{X: end.X + style.LabelOffset, Y: end.Y},
			Anchor:  AnchorStart,
			Content: spec.Label,
			Size:    style.LabelSize,
			Bold:    true,
			Color:   style.Color,
			Kind:    TextAxisLabel,
		})
	}

	if spec.TickCount <= 0 {
		return primitives
	}

	d := tickDirection(spec.Label, style.TickLength)
	for i := 0; i <= spec.TickCount; i++ {
		ratio := float64(i) / float64(spec.TickCount)
		tick := pr.Project(spec.Start.Lerp(spec.End, ratio))
		if tick.Clipped {
			continue
		}

		primitives = append(primitives,
			Line{
				From:  Point2{X: tick.X - d.X, Y: tick.Y - d.Y},
				To:    Point2{X: tick.X + d.X, Y: tick.Y + d.Y},
				Color: style.Color,
				Width: style.StrokeWidth,
				Kind:  LineTick,
			},
			Text{
				Pos:     Point2{X: tick.X + d.X*1.5, Y: tick.Y + d.Y*1.5},
				Anchor:  AnchorMiddle,
				Content: TickLabel(i, spec.TickCount, pr.Camera.Scale),
				Size:    style.TickLabelSize,
				Color:   style.Color,
				Kind:    TextTickLabel,
			},
		)
	}

	return primitives
}
