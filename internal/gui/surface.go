package gui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"github.com/mikeyj777/detailed-modeling-data-analysis/pkg/viewer"
)

// Surface draws a controller's frames and forwards mouse input to it
type Surface struct {
	widget.BaseWidget
	controller *viewer.Controller
	options    viewer.Options
	frame      viewer.Frame
	revision   uint64
	size       fyne.Size
	onChange   func()
}

// NewSurface creates a surface widget for the controller
func NewSurface(c *viewer.Controller, opts viewer.Options) *Surface {
	s := &Surface{
		controller: c,
		options:    opts,
	}
	s.ExtendBaseWidget(s)
	s.rebuild()
	return s
}

// SetOnChange sets a callback run after the controller changed through
// this widget
func (s *Surface) SetOnChange(callback func()) {
	s.onChange = callback
}

// Frame returns the frame currently on screen
func (s *Surface) Frame() viewer.Frame {
	return s.frame
}

// Update redraws the surface if the controller changed since the last draw
func (s *Surface) Update() {
	if s.revision == s.controller.Revision() {
		return
	}
	s.rebuild()
	s.Refresh()
	if s.onChange != nil {
		s.onChange()
	}
}

func (s *Surface) rebuild() {
	s.frame = s.controller.Frame(s.options)
	s.revision = s.controller.Revision()
}

func (s *Surface) resize(size fyne.Size) {
	if size == s.size || size.Width <= 0 || size.Height <= 0 {
		return
	}
	s.size = size
	s.options.Viewport = s.options.Viewport.Fit(float64(size.Width), float64(size.Height))
	s.rebuild()
}

// MouseDown starts a rotate gesture on the primary button
func (s *Surface) MouseDown(event *desktop.MouseEvent) {
	if event.Button != desktop.MouseButtonPrimary {
		return
	}
	s.controller.OnPointerDown(toPoint(event.Position))
}

// MouseUp ends the rotate gesture
func (s *Surface) MouseUp(event *desktop.MouseEvent) {
	s.controller.OnPointerUp()
}

// MouseIn is required by desktop.Hoverable
func (s *Surface) MouseIn(event *desktop.MouseEvent) {}

// MouseMoved rotates the camera while a gesture is active
func (s *Surface) MouseMoved(event *desktop.MouseEvent) {
	s.controller.OnPointerMove(toPoint(event.Position))
	s.Update()
}

// MouseOut ends the rotate gesture when the pointer leaves the widget
func (s *Surface) MouseOut() {
	s.controller.OnPointerLeave()
}

// Scrolled zooms. fyne reports scrolling up as positive DY, the
// controller expects positive values for scrolling down.
func (s *Surface) Scrolled(event *fyne.ScrollEvent) {
	if event.Scrolled.DY == 0 {
		return
	}
	s.controller.OnWheel(-float64(event.Scrolled.DY))
	s.Update()
}

// CreateRenderer creates the renderer for the widget
func (s *Surface) CreateRenderer() fyne.WidgetRenderer {
	bg := canvas.NewRectangle(s.frame.Background)
	return &surfaceRenderer{surface: s, background: bg}
}

func toPoint(p fyne.Position) viewer.Point2 {
	return viewer.Point2{X: float64(p.X), Y: float64(p.Y)}
}

// surfaceRenderer implements fyne.WidgetRenderer
type surfaceRenderer struct {
	surface    *Surface
	background *canvas.Rectangle
	objects    []fyne.CanvasObject
}

func (r *surfaceRenderer) Layout(size fyne.Size) {
	r.surface.resize(size)
	r.background.Resize(size)
	r.build()
}

func (r *surfaceRenderer) MinSize() fyne.Size {
	return fyne.NewSize(float32(viewer.DefaultViewport().Width), float32(viewer.DefaultViewport().Height))
}

func (r *surfaceRenderer) Refresh() {
	r.build()
	canvas.Refresh(r.surface)
}

func (r *surfaceRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *surfaceRenderer) Destroy() {}

// build converts the frame's primitives into canvas objects in draw order
func (r *surfaceRenderer) build() {
	frame := r.surface.frame
	r.background.FillColor = frame.Background

	objects := make([]fyne.CanvasObject, 0, len(frame.Primitives)+1)
	objects = append(objects, r.background)

	for _, p := range frame.Primitives {
		switch v := p.(type) {
		case viewer.Line:
			line := canvas.NewLine(v.Color)
			line.StrokeWidth = float32(v.Width)
			line.Position1 = fyne.NewPos(float32(v.From.X), float32(v.From.Y))
			line.Position2 = fyne.NewPos(float32(v.To.X), float32(v.To.Y))
			objects = append(objects, line)
		case viewer.Circle:
			circle := canvas.NewCircle(v.Fill)
			d := float32(2 * v.Radius)
			circle.Resize(fyne.NewSize(d, d))
			circle.Move(fyne.NewPos(float32(v.Center.X-v.Radius), float32(v.Center.Y-v.Radius)))
			objects = append(objects, circle)
		case viewer.Text:
			objects = append(objects, newLabel(v))
		}
	}

	r.objects = objects
}

// newLabel places a text primitive. Primitive positions are baselines,
// fyne positions text by its top left corner.
func newLabel(t viewer.Text) *canvas.Text {
	text := canvas.NewText(t.Content, color.Color(t.Color))
	text.TextSize = float32(t.Size)
	text.TextStyle = fyne.TextStyle{Bold: t.Bold}

	size := fyne.MeasureText(t.Content, text.TextSize, text.TextStyle)
	x := float32(t.Pos.X)
	switch t.Anchor {
	case viewer.AnchorMiddle:
		x -= size.Width / 2
	case viewer.AnchorEnd:
		x -= size.Width
	}
	text.Resize(size)
	text.Move(fyne.NewPos(x, float32(t.Pos.Y)-size.Height*0.8))
	return text
}
