package tui

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/mikeyj777/detailed-modeling-data-analysis/pkg/grid"
	"github.com/mikeyj777/detailed-modeling-data-analysis/pkg/viewer"
)

func newTestViewer(t *testing.T) (*Viewer, tcell.SimulationScreen) {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("screen init failed: %v", err)
	}
	t.Cleanup(s.Fini)
	s.SetSize(80, 40)

	c := viewer.NewController(grid.Default(2), viewer.DefaultCamera(), viewer.DefaultInteractionSettings())
	return New(s, c, viewer.DefaultOptions(), "test"), s
}

func TestMouseDragRotates(t *testing.T) {
	v, _ := newTestViewer(t)

	v.HandleEvent(tcell.NewEventMouse(10, 10, tcell.Button1, tcell.ModNone))
	v.HandleEvent(tcell.NewEventMouse(20, 15, tcell.Button1, tcell.ModNone))
	v.HandleEvent(tcell.NewEventMouse(20, 15, tcell.ButtonNone, tcell.ModNone))

	camera := v.controller.Camera()
	// one row is two units tall
	if camera.RotationX != 50 || camera.RotationY != 50 {
		t.Errorf("drag failed: got %+v", camera)
	}
	if v.controller.Dragging() {
		t.Error("release should end the drag")
	}
}

func TestWheelZooms(t *testing.T) {
	v, _ := newTestViewer(t)

	v.HandleEvent(tcell.NewEventMouse(0, 0, tcell.WheelDown, tcell.ModNone))
	if got := v.controller.Camera().Scale; got != 0.9 {
		t.Errorf("wheel down failed: expected 0.9, got %v", got)
	}
	v.HandleEvent(tcell.NewEventMouse(0, 0, tcell.WheelUp, tcell.ModNone))
	v.HandleEvent(tcell.NewEventMouse(0, 0, tcell.WheelUp, tcell.ModNone))
	if got := v.controller.Camera().Scale; got < 1.09 || got > 1.11 {
		t.Errorf("wheel up failed: expected 1.1, got %v", got)
	}
}

func TestBracketedPaste(t *testing.T) {
	v, _ := newTestViewer(t)

	events := []tcell.Event{
		tcell.NewEventPaste(true),
		tcell.NewEventKey(tcell.KeyRune, '1', tcell.ModNone),
		tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone),
		tcell.NewEventKey(tcell.KeyRune, '2', tcell.ModNone),
		tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone),
		tcell.NewEventKey(tcell.KeyRune, '3', tcell.ModNone),
		tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone),
		tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone),
		tcell.NewEventPaste(false),
	}
	for _, ev := range events {
		if v.HandleEvent(ev) {
			t.Fatal("keys inside a paste must not quit")
		}
	}

	g := v.controller.Grid()
	if g.Rows() != 2 || g.Cols() != 2 || g.Size() != 0 {
		t.Fatalf("paste failed: %dx%d size %d", g.Rows(), g.Cols(), g.Size())
	}
	if g.Value(1, 0) != 3 || g.Value(1, 1) != 0 {
		t.Errorf("cells failed: got %v", g.Values())
	}
}

func TestKeys(t *testing.T) {
	v, _ := newTestViewer(t)

	v.HandleEvent(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone))
	if got := v.controller.Camera().RotationY; got != 50 {
		t.Errorf("right arrow failed: expected 50, got %v", got)
	}
	v.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone))
	if v.controller.Camera() != viewer.DefaultCamera() {
		t.Error("r should reset the view")
	}
	if !v.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)) {
		t.Error("q should quit")
	}
	if !v.HandleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)) {
		t.Error("Escape should quit")
	}
}

func TestDrawPlotsPoints(t *testing.T) {
	v, s := newTestViewer(t)
	v.Draw()

	cells, w, h := s.GetContents()
	points, bold := 0, false
	for _, c := range cells {
		if len(c.Runes) == 0 {
			continue
		}
		if c.Runes[0] == '●' {
			points++
		}
		if c.Runes[0] == 'X' {
			_, _, attrs := c.Style.Decompose()
			bold = bold || attrs&tcell.AttrBold != 0
		}
	}
	if w != 80 || h != 40 {
		t.Fatalf("unexpected screen size %dx%d", w, h)
	}
	if points == 0 {
		t.Error("no points drawn")
	}
	if !bold {
		t.Error("axis label X should be bold")
	}
}

func TestDrawNearSingularGrid(t *testing.T) {
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("screen init failed: %v", err)
	}
	t.Cleanup(s.Fini)
	s.SetSize(80, 40)

	g, err := grid.FromRows([][]float64{{-19.49999998}})
	if err != nil {
		t.Fatal(err)
	}
	c := viewer.NewController(g, viewer.DefaultCamera(), viewer.DefaultInteractionSettings())
	v := New(s, c, viewer.DefaultOptions(), "near")

	// lines reaching far off screen are clipped before they are traced
	v.Draw()

	cells, _, _ := s.GetContents()
	status := false
	for _, c := range cells {
		if len(c.Runes) > 0 && c.Runes[0] == 'n' {
			status = true
		}
	}
	if !status {
		t.Error("status line with the caption should be drawn")
	}
}
