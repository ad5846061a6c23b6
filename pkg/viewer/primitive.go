package viewer

import "image/color"

// Point2 is a position on the drawing surface
type Point2 struct {
	X, Y float64
}

// Sub returns the difference between two positions
func (p Point2) Sub(other Point2) Point2 {
	return Point2{X: p.X - other.X, Y: p.Y - other.Y}
}

// Finite reports whether both coordinates are finite numbers
func (p Point2) Finite() bool {
	return finite(p.X) && finite(p.Y)
}

// In reports whether p lies inside the rectangle, edges included
func (p Point2) In(minX, minY, maxX, maxY float64) bool {
	return p.X >= minX && p.X <= maxX && p.Y >= minY && p.Y <= maxY
}

// Primitive is one drawable element of a frame: a Line, Text or Circle
type Primitive interface {
	primitive()
}

// LineKind tells axis lines from tick marks
type LineKind int

const (
	LineAxis LineKind = iota
	LineTick
)

// Line is a straight stroke between two positions
type Line struct {
	From  Point2
	To    Point2
	Color color.RGBA
	Width float64
	Kind  LineKind
}

// Anchor is the horizontal alignment of a text label relative to its position
type Anchor int

const (
	AnchorStart Anchor = iota
	AnchorMiddle
	AnchorEnd
)

func (a Anchor) String() string {
	switch a {
	case AnchorMiddle:
		return "middle"
	case AnchorEnd:
		return "end"
	default:
		return "start"
	}
}

// TextKind tells axis names from tick values
type TextKind int

const (
	TextAxisLabel TextKind = iota
	TextTickLabel
)

// Text is a label whose Pos marks the baseline at the anchor
type Text struct {
	Pos     Point2
	Anchor  Anchor
	Content string
	Size    float64
	Bold    bool
	Color   color.RGBA
	Kind    TextKind
}

// Circle is a filled disc
type Circle struct {
	Center Point2
	Radius float64
	Fill   color.RGBA
}

func (Line) primitive()   {}
func (Text) primitive()   {}
func (Circle) primitive() {}
