package server

import (
	"fmt"
	"image/color"

	"github.com/mikeyj777/detailed-modeling-data-analysis/pkg/viewer"
)

// Client message types
const (
	MsgPointerDown  = "pointerdown"
	MsgPointerMove  = "pointermove"
	MsgPointerUp    = "pointerup"
	MsgPointerLeave = "pointerleave"
	MsgWheel        = "wheel"
	MsgPaste        = "paste"
	MsgEdit         = "edit"
	MsgReset        = "reset"
)

// Server message types
const (
	MsgSession = "session"
	MsgFrame   = "frame"
	MsgResult  = "result"
	MsgError   = "error"
)

// ClientMessage is an input event sent by the browser
type ClientMessage struct {
	Type   string  `json:"type"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	DeltaY float64 `json:"deltaY,omitempty"`
	Text   string  `json:"text,omitempty"`
	Row    int     `json:"row,omitempty"`
	Col    int     `json:"col,omitempty"`
	Value  string  `json:"value,omitempty"`
}

// ServerMessage is sent to the browser
type ServerMessage struct {
	Type      string     `json:"type"`
	SessionID string     `json:"sessionId,omitempty"`
	Frame     *WireFrame `json:"frame,omitempty"`
	Request   string     `json:"request,omitempty"` // client message type a result answers
	Handled   bool       `json:"handled,omitempty"`
	Error     string     `json:"error,omitempty"`
}

// WireFrame is a frame flattened for JSON. Items keep their draw order.
type WireFrame struct {
	Revision   uint64     `json:"revision"`
	Width      float64    `json:"width"`
	Height     float64    `json:"height"`
	Background string     `json:"background"`
	Camera     WireCamera `json:"camera"`
	Rows       int        `json:"rows"`
	Cols       int        `json:"cols"`
	Items      []WireItem `json:"items"`
}

// WireCamera mirrors viewer.Camera
type WireCamera struct {
	RotationX float64 `json:"rotationX"`
	RotationY float64 `json:"rotationY"`
	RotationZ float64 `json:"rotationZ"`
	Scale     float64 `json:"scale"`
}

// WireItem is one primitive. Kind is "line", "text" or "circle" and
// selects which of the remaining fields are set.
type WireItem struct {
	Kind   string  `json:"kind"`
	X1     float64 `json:"x1,omitempty"`
	Y1     float64 `json:"y1,omitempty"`
	X2     float64 `json:"x2,omitempty"`
	Y2     float64 `json:"y2,omitempty"`
	Width  float64 `json:"width,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	R      float64 `json:"r,omitempty"`
	Text   string  `json:"text,omitempty"`
	Anchor string  `json:"anchor,omitempty"`
	Size   float64 `json:"size,omitempty"`
	Bold   bool    `json:"bold,omitempty"`
	Color  string  `json:"color"`
}

// encodeFrame converts a controller's frame for the wire
func encodeFrame(c *viewer.Controller, f viewer.Frame) *WireFrame {
	cam := c.Camera()
	wf := &WireFrame{
		Revision:   c.Revision(),
		Width:      f.Width,
		Height:     f.Height,
		Background: cssColor(f.Background),
		Camera: WireCamera{
			RotationX: cam.RotationX,
			RotationY: cam.RotationY,
			RotationZ: cam.RotationZ,
			Scale:     cam.Scale,
		},
		Rows:  c.Grid().Rows(),
		Cols:  c.Grid().Cols(),
		Items: make([]WireItem, 0, len(f.Primitives)),
	}

	for _, p := range f.Primitives {
		switch v := p.(type) {
		case viewer.Line:
			wf.Items = append(wf.Items, WireItem{
				Kind: "line", X1: v.From.X, Y1: v.From.Y, X2: v.To.X, Y2: v.To.Y,
				Width: v.Width, Color: cssColor(v.Color),
			})
		case viewer.Text:
			wf.Items = append(wf.Items, WireItem{
				Kind: "text", X: v.Pos.X, Y: v.Pos.Y, Text: v.Content,
				Anchor: v.Anchor.String(), Size: v.Size, Bold: v.Bold, Color: cssColor(v.Color),
			})
		case viewer.Circle:
			wf.Items = append(wf.Items, WireItem{
				Kind: "circle", X: v.Center.X, Y: v.Center.Y, R: v.Radius, Color: cssColor(v.Fill),
			})
		}
	}
	return wf
}

func cssColor(c color.RGBA) string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}
