// Package tui draws the surface in a terminal with tcell. Every terminal
// cell is treated as one unit wide and two units tall so the surface keeps
// its proportions.
package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/mikeyj777/detailed-modeling-data-analysis/internal/source"
	"github.com/mikeyj777/detailed-modeling-data-analysis/pkg/config"
	"github.com/mikeyj777/detailed-modeling-data-analysis/pkg/grid"
	"github.com/mikeyj777/detailed-modeling-data-analysis/pkg/viewer"
	"github.com/mikeyj777/detailed-modeling-data-analysis/pkg/watcher"
)

// arrowStep is how far one arrow key press drags the surface
const arrowStep = 10

// Options configures the terminal viewer
type Options struct {
	Settings config.Settings
	Source   source.Source
	Watch    bool
}

// Viewer owns a screen and the controller drawn on it
type Viewer struct {
	screen     tcell.Screen
	controller *viewer.Controller
	options    viewer.Options
	caption    string

	buttonDown bool
	pasting    bool
	pasteBuf   strings.Builder
	status     string
	drawn      uint64
	dirty      bool
}

// New creates a viewer drawing on an initialized screen
func New(screen tcell.Screen, c *viewer.Controller, opts viewer.Options, caption string) *Viewer {
	return &Viewer{
		screen:     screen,
		controller: c,
		options:    opts,
		caption:    caption,
		dirty:      true,
	}
}

// Run opens the terminal viewer and blocks until the user quits
func Run(opts Options) error {
	g, err := opts.Source.Load()
	if err != nil {
		return err
	}

	s, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("screen init failed: %w", err)
	}
	if err := s.Init(); err != nil {
		return fmt.Errorf("screen start failed: %w", err)
	}
	defer s.Fini()
	s.EnableMouse()
	s.EnablePaste()

	c := viewer.NewController(g, opts.Settings.CameraValue(), opts.Settings.InteractionValue())
	v := New(s, c, opts.Settings.Options(), opts.Source.Describe())

	var changes <-chan string
	if opts.Watch && opts.Source.Watchable() {
		fw, err := watcher.NewFileWatcher(500 * time.Millisecond)
		if err != nil {
			return fmt.Errorf("failed to create file watcher: %w", err)
		}
		defer fw.Close()
		if err := fw.Watch(opts.Source.Path); err != nil {
			return fmt.Errorf("failed to watch files: %w", err)
		}
		fw.Start()
		changes = fw.Changes()
	}

	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	go s.ChannelEvents(events, quit)

	type loaded struct {
		grid *grid.Grid
		err  error
	}
	reloads := make(chan loaded, 1)

	ticker := time.NewTicker(40 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case ev, ok := <-events:
			if !ok || v.HandleEvent(ev) {
				return nil
			}
		case <-changes:
			go func() {
				g, err := opts.Source.Load()
				reloads <- loaded{grid: g, err: err}
			}()
		case r := <-reloads:
			if r.err != nil {
				v.status = r.err.Error()
			} else {
				c.LoadGrid(r.grid)
				v.status = fmt.Sprintf("Reloaded %d x %d grid", r.grid.Rows(), r.grid.Cols())
			}
			v.dirty = true
		case <-ticker.C:
			v.Draw()
		}
	}
}

// HandleEvent applies one terminal event and reports whether the viewer
// should quit
func (v *Viewer) HandleEvent(ev tcell.Event) bool {
	c := v.controller

	switch ev := ev.(type) {
	case *tcell.EventPaste:
		if ev.Start() {
			v.pasting = true
			v.pasteBuf.Reset()
			return false
		}
		v.pasting = false
		if c.OnPaste(v.pasteBuf.String()) {
			g := c.Grid()
			v.status = fmt.Sprintf("Pasted %d x %d grid", g.Rows(), g.Cols())
		} else {
			v.status = "Nothing to paste"
		}
		v.dirty = true

	case *tcell.EventKey:
		if v.pasting {
			v.collectPaste(ev)
			return false
		}
		return v.handleKey(ev)

	case *tcell.EventMouse:
		v.handleMouse(ev)

	case *tcell.EventResize:
		v.screen.Sync()
		v.dirty = true
	}

	return false
}

func (v *Viewer) collectPaste(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyRune:
		v.pasteBuf.WriteRune(ev.Rune())
	case tcell.KeyTab:
		v.pasteBuf.WriteByte('\t')
	case tcell.KeyEnter, tcell.KeyLF:
		v.pasteBuf.WriteByte('\n')
	}
}

func (v *Viewer) handleKey(ev *tcell.EventKey) bool {
	c := v.controller

	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyHome:
		c.ResetView()
	case tcell.KeyUp:
		v.nudge(0, -arrowStep)
	case tcell.KeyDown:
		v.nudge(0, arrowStep)
	case tcell.KeyLeft:
		v.nudge(-arrowStep, 0)
	case tcell.KeyRight:
		v.nudge(arrowStep, 0)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return true
		case 'r':
			c.ResetView()
		case '+', '=':
			c.OnWheel(-1)
		case '-', '_':
			c.OnWheel(1)
		}
	}
	return false
}

// nudge replays a short drag so keyboard rotation follows the pointer rules
func (v *Viewer) nudge(dx, dy float64) {
	c := v.controller
	c.OnPointerDown(viewer.Point2{})
	c.OnPointerMove(viewer.Point2{X: dx, Y: dy})
	c.OnPointerUp()
}

func (v *Viewer) handleMouse(ev *tcell.EventMouse) {
	c := v.controller
	x, y := ev.Position()
	pos := viewer.Point2{X: float64(x), Y: float64(2 * y)}
	buttons := ev.Buttons()

	if buttons&tcell.WheelUp != 0 {
		c.OnWheel(-1)
	}
	if buttons&tcell.WheelDown != 0 {
		c.OnWheel(1)
	}

	down := buttons&tcell.Button1 != 0
	switch {
	case down && !v.buttonDown:
		c.OnPointerDown(pos)
	case down:
		c.OnPointerMove(pos)
	case v.buttonDown:
		c.OnPointerUp()
	}
	v.buttonDown = down
}

// Draw repaints the screen when the controller changed since the last paint
func (v *Viewer) Draw() {
	if !v.dirty && v.drawn == v.controller.Revision() {
		return
	}
	v.dirty = false
	v.drawn = v.controller.Revision()

	s := v.screen
	s.Clear()
	w, h := s.Size()
	if w <= 15 || h <= 8 {
		s.Show()
		return
	}

	opts := v.options
	opts.Viewport = opts.Viewport.Fit(float64(w), float64(2*(h-2)))
	opts.PointRadius = 0
	frame := v.controller.Frame(opts)

	// frame units covered by the screen, one column and two units per row
	maxX, maxY := float64(w), float64(2*h)
	for _, p := range frame.Primitives {
		switch p := p.(type) {
		case viewer.Line:
			from, to, ok := viewer.ClipSegment(p.From, p.To, 0, 0, maxX, maxY)
			if !ok {
				continue
			}
			style := tcell.StyleDefault.Foreground(tcell.ColorGray)
			ch := '·'
			if p.Kind == viewer.LineTick {
				ch = '+'
			}
			viewer.TraceLine(cell(from.X), cell(from.Y/2), cell(to.X), cell(to.Y/2), func(x, y int) {
				s.SetContent(x, y, ch, nil, style)
			})
		case viewer.Text:
			m := float64(len([]rune(p.Content)))
			if !p.Pos.In(-m, 0, maxX+m, maxY) {
				continue
			}
			drawLabel(s, p)
		case viewer.Circle:
			if !p.Center.In(0, 0, maxX, maxY) {
				continue
			}
			style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(p.Fill.R), int32(p.Fill.G), int32(p.Fill.B)))
			s.SetContent(cell(p.Center.X), cell(p.Center.Y/2), '●', nil, style)
		}
	}

	camera := v.controller.Camera()
	info := fmt.Sprintf("%s | rot %.0f, %.0f | scale %.1f", v.caption, camera.RotationX, camera.RotationY, camera.Scale)
	drawText(s, 1, h-2, tcell.StyleDefault.Foreground(tcell.ColorDarkGray), info)
	help := "drag/arrows: rotate  wheel/+/-: zoom  r: reset  paste: replace grid  q: quit"
	if v.status != "" {
		help = v.status
	}
	drawText(s, 1, h-1, tcell.StyleDefault.Foreground(tcell.ColorDarkGray), help)

	s.Show()
}

func drawLabel(s tcell.Screen, t viewer.Text) {
	x := cell(t.Pos.X)
	n := len([]rune(t.Content))
	switch t.Anchor {
	case viewer.AnchorMiddle:
		x -= n / 2
	case viewer.AnchorEnd:
		x -= n
	}

	style := tcell.StyleDefault
	if t.Bold {
		style = style.Bold(true)
	}
	drawText(s, x, cell(t.Pos.Y/2), style, t.Content)
}

func drawText(s tcell.Screen, x, y int, style tcell.Style, str string) {
	i := 0
	for _, r := range str {
		s.SetContent(x+i, y, r, nil, style)
		i++
	}
}

func cell(v float64) int {
	return int(math.Floor(v))
}
