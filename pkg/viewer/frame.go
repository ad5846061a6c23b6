package viewer

import (
	"image/color"

	"github.com/mikeyj777/detailed-modeling-data-analysis/pkg/geometry"
	"github.com/mikeyj777/detailed-modeling-data-analysis/pkg/grid"
)

// ExtentsPadding is the margin added around the point cloud when sizing axes
const ExtentsPadding = 0.5

// Options configures frame composition
type Options struct {
	Viewport    Viewport
	Axis        AxisStyle
	TickCount   int
	PointRadius float64
	Padding     float64
	Background  color.RGBA
}

// DefaultOptions reproduces the reference 400x400 rendering
func DefaultOptions() Options {
	return Options{
		Viewport:    DefaultViewport(),
		Axis:        DefaultAxisStyle(),
		TickCount:   DefaultTickCount,
		PointRadius: 2,
		Padding:     ExtentsPadding,
		Background:  color.RGBA{R: 255, G: 255, B: 255, A: 255},
	}
}

// Frame is the ordered list of primitives for one picture. Earlier
// primitives are drawn beneath later ones.
type Frame struct {
	Width      float64
	Height     float64
	Background color.RGBA
	Primitives []Primitive
}

// FrameStats counts the primitives of a frame by role
type FrameStats struct {
	Points     int
	AxisLines  int
	TickMarks  int
	AxisLabels int
	TickLabels int
}

// ComputeExtents returns the padded bounding box of the point cloud.
// Points with a non-finite position are ignored.
func ComputeExtents(points []grid.Point3D, padding float64) geometry.BoundingBox {
	bbox := geometry.NewBoundingBox()
	for _, p := range points {
		if !finite(p.Position.X) || !finite(p.Position.Y) || !finite(p.Position.Z) {
			continue
		}
		bbox.Extend(p.Position)
	}
	return bbox.Padded(padding)
}

// Render composes one frame for the camera and grid: the three axes first,
// then one filled circle per grid cell in far-to-near order. It reads but
// never modifies its inputs.
func Render(camera Camera, g *grid.Grid, opts Options) Frame {
	projector := NewProjector(camera, opts.Viewport)
	points := g.PointCloud(camera.Scale)
	extents := ComputeExtents(points, opts.Padding)

	frame := Frame{
		Width:      opts.Viewport.Width,
		Height:     opts.Viewport.Height,
		Background: opts.Background,
		Primitives: make([]Primitive, 0, len(points)+3*(2+2*(opts.TickCount+1))),
	}

	for _, spec := range AxisSpecs(extents, opts.TickCount) {
		frame.Primitives = append(frame.Primitives, projector.BuildAxis(spec, opts.Axis)...)
	}

	for _, p := range projector.DepthSort(points) {
		if p.Screen.Clipped {
			continue
		}
		frame.Primitives = append(frame.Primitives, Circle{
			Center: p.Screen.Pos(),
			Radius: opts.PointRadius,
			Fill:   p.Color,
		})
	}

	return frame
}

// Stats counts the primitives in the frame
func (f Frame) Stats() FrameStats {
	var s FrameStats
	for _, p := range f.Primitives {
		switch v := p.(type) {
		case Circle:
			s.Points++
		case Line:
			if v.Kind == LineAxis {
				s.AxisLines++
			} else {
				s.TickMarks++
			}
		case Text:
			if v.Kind == TextAxisLabel {
				s.AxisLabels++
			} else {
				s.TickLabels++
			}
		}
	}
	return s
}
