package viewer

import (
	"math"

	"github.com/mikeyj777/detailed-modeling-data-analysis/pkg/geometry"
)

// singularityEpsilon bounds |distance + z| below which a point is clipped
const singularityEpsilon = 1e-9

// Camera holds the viewing transform: rotation angles in degrees applied
// X, then Y, then Z, and the zoom scale applied to the point cloud
type Camera struct {
	RotationX float64
	RotationY float64
	RotationZ float64
	Scale     float64
}

// DefaultCamera returns the initial view
func DefaultCamera() Camera {
	return Camera{RotationX: 45, RotationY: 45, RotationZ: 0, Scale: 1}
}

// Rotate applies the camera rotation to p. Each rotation acts on the
// output of the previous one: about X first, then Y, then Z.
func (c Camera) Rotate(p geometry.Vector3) geometry.Vector3 {
	return p.
		RotateX(geometry.Radians(c.RotationX)).
		RotateY(geometry.Radians(c.RotationY)).
		RotateZ(geometry.Radians(c.RotationZ))
}

// Viewport describes the drawing surface the projection maps onto
type Viewport struct {
	Width         float64
	Height        float64
	CenterX       float64
	CenterY       float64
	Magnification float64
	Distance      float64 // camera distance used by the perspective divide
}

// DefaultViewport returns the 400x400 reference surface
func DefaultViewport() Viewport {
	return Viewport{
		Width:         400,
		Height:        400,
		CenterX:       200,
		CenterY:       200,
		Magnification: 20,
		Distance:      10,
	}
}

// Fit returns the viewport resized to width x height, centred, with the
// magnification scaled so the reference surface fills the shorter side
func (v Viewport) Fit(width, height float64) Viewport {
	ref := math.Min(v.Width, v.Height)
	target := math.Min(width, height)
	if ref <= 0 || target <= 0 {
		return v
	}
	v.Magnification *= target / ref
	v.Width = width
	v.Height = height
	v.CenterX = width / 2
	v.CenterY = height / 2
	return v
}

// ScreenPoint is a projected point. Depth is the rotated z before the
// perspective divide and is only meaningful for ordering.
type ScreenPoint struct {
	X       float64
	Y       float64
	Depth   float64
	Clipped bool // true when the point sits on the camera plane
}

// Pos returns the 2D position of the projected point
func (s ScreenPoint) Pos() Point2 {
	return Point2{X: s.X, Y: s.Y}
}

// Projector maps 3D points onto a viewport through a camera
type Projector struct {
	Camera   Camera
	Viewport Viewport
}

// NewProjector creates a projector for the given camera and viewport
func NewProjector(camera Camera, viewport Viewport) Projector {
	return Projector{Camera: camera, Viewport: viewport}
}

// Project rotates p, applies the perspective divide and maps the result to
// viewport coordinates. Points whose rotated z cancels the camera distance,
// and points that overflow to a non-finite position, are returned at the
// viewport centre with Clipped set.
func (pr Projector) Project(p geometry.Vector3) ScreenPoint {
	r := pr.Camera.Rotate(p)
	vp := pr.Viewport

	denom := vp.Distance + r.Z
	if math.Abs(denom) < singularityEpsilon {
		return ScreenPoint{X: vp.CenterX, Y: vp.CenterY, Depth: r.Z, Clipped: true}
	}

	perspective := vp.Distance / denom
	sp := ScreenPoint{
		X:     r.X*perspective*vp.Magnification + vp.CenterX,
		Y:     r.Y*perspective*vp.Magnification + vp.CenterY,
		Depth: r.Z,
	}
	if !finite(sp.X) || !finite(sp.Y) || !finite(sp.Depth) {
		return ScreenPoint{X: vp.CenterX, Y: vp.CenterY, Depth: 0, Clipped: true}
	}
	return sp
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Project maps p through camera onto the reference viewport
func Project(p geometry.Vector3, camera Camera) ScreenPoint {
	return NewProjector(camera, DefaultViewport()).Project(p)
}
