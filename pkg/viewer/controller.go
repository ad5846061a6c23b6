package viewer

import (
	"math"

	"github.com/mikeyj777/detailed-modeling-data-analysis/pkg/grid"
)

// InteractionSettings tunes how pointer input maps onto the camera
type InteractionSettings struct {
	RotateSpeed float64 // degrees per unit of pointer travel
	ZoomStep    float64
	MinScale    float64
	MaxScale    float64
}

// DefaultInteractionSettings returns half a degree per unit of drag and
// zoom steps of 0.1 within [0.5, 2]
func DefaultInteractionSettings() InteractionSettings {
	return InteractionSettings{
		RotateSpeed: 0.5,
		ZoomStep:    0.1,
		MinScale:    0.5,
		MaxScale:    2.0,
	}
}

func (s InteractionSettings) clampScale(scale float64) float64 {
	return math.Min(math.Max(s.MinScale, scale), s.MaxScale)
}

// Controller turns pointer, wheel, paste and edit events into camera and
// grid updates. It is not safe for concurrent use: every handler is meant
// to run to completion on the goroutine that owns the controller.
type Controller struct {
	camera   Camera
	home     Camera
	grid     *grid.Grid
	settings InteractionSettings

	dragging    bool
	lastPointer Point2
	revision    uint64
}

// NewController creates a controller owning camera and editing g. The
// camera scale is clamped to the configured range.
func NewController(g *grid.Grid, camera Camera, settings InteractionSettings) *Controller {
	camera.Scale = settings.clampScale(camera.Scale)
	return &Controller{
		camera:   camera,
		home:     camera,
		grid:     g,
		settings: settings,
	}
}

// Camera returns the current camera
func (c *Controller) Camera() Camera {
	return c.camera
}

// Grid returns the grid being edited
func (c *Controller) Grid() *grid.Grid {
	return c.grid
}

// Dragging reports whether a rotate gesture is in progress
func (c *Controller) Dragging() bool {
	return c.dragging
}

// Revision changes whenever the camera or the grid changes; frontends
// compare it against the last value they drew
func (c *Controller) Revision() uint64 {
	return c.revision
}

// OnPointerDown starts a rotate gesture at pos
func (c *Controller) OnPointerDown(pos Point2) {
	c.dragging = true
	c.lastPointer = pos
}

// OnPointerMove rotates the camera by the pointer travel since the last
// event. Vertical travel turns about X, horizontal travel about Y.
func (c *Controller) OnPointerMove(pos Point2) {
	if !c.dragging {
		return
	}

	delta := pos.Sub(c.lastPointer)
	c.lastPointer = pos
	if delta.X == 0 && delta.Y == 0 {
		return
	}

	c.camera.RotationX = math.Mod(c.camera.RotationX+delta.Y*c.settings.RotateSpeed, 360)
	c.camera.RotationY = math.Mod(c.camera.RotationY+delta.X*c.settings.RotateSpeed, 360)
	c.revision++
}

// OnPointerUp ends the rotate gesture
func (c *Controller) OnPointerUp() {
	c.dragging = false
}

// OnPointerLeave ends the rotate gesture when the pointer leaves the surface
func (c *Controller) OnPointerLeave() {
	c.dragging = false
}

// OnWheel zooms out for positive deltaY and in otherwise, clamped to the
// configured scale range. It always returns true: the wheel belongs to the
// surface and callers should suppress default scrolling.
func (c *Controller) OnWheel(deltaY float64) bool {
	step := c.settings.ZoomStep
	if deltaY > 0 {
		step = -step
	}

	scale := c.settings.clampScale(c.camera.Scale + step)
	if scale != c.camera.Scale {
		c.camera.Scale = scale
		c.revision++
	}
	return true
}

// OnPaste replaces the grid with pasted tabular text. The camera is left
// alone. It reports whether the grid was replaced.
func (c *Controller) OnPaste(text string) bool {
	if !c.grid.ReplaceFromPastedText(text) {
		return false
	}
	c.revision++
	return true
}

// OnCellEdit stores raw at row, col
func (c *Controller) OnCellEdit(row, col int, raw string) bool {
	if !c.grid.SetCell(row, col, raw) {
		return false
	}
	c.revision++
	return true
}

// LoadGrid swaps in a grid read from elsewhere, such as a reloaded file
func (c *Controller) LoadGrid(g *grid.Grid) {
	c.grid = g
	c.revision++
}

// ResetView restores the camera the controller was created with
func (c *Controller) ResetView() {
	c.camera = c.home
	c.dragging = false
	c.revision++
}

// SetCamera jumps to a preset view. The home camera used by ResetView
// is unchanged.
func (c *Controller) SetCamera(camera Camera) {
	camera.Scale = c.settings.clampScale(camera.Scale)
	c.camera = camera
	c.revision++
}

// Frame renders the current state
func (c *Controller) Frame(opts Options) Frame {
	return Render(c.camera, c.grid, opts)
}
