package viewer

import (
	"bytes"
	"image/color"
	"image/png"
	"math"
	"strings"
	"testing"

	"github.com/mikeyj777/detailed-modeling-data-analysis/pkg/grid"
)

func TestTraceLine(t *testing.T) {
	var points [][2]int
	TraceLine(0, 0, 3, 1, func(x, y int) {
		points = append(points, [2]int{x, y})
	})

	if len(points) != 4 {
		t.Fatalf("TraceLine failed: expected 4 points, got %v", points)
	}
	if points[0] != [2]int{0, 0} || points[3] != [2]int{3, 1} {
		t.Errorf("TraceLine endpoints failed: got %v", points)
	}
}

func TestRasterize(t *testing.T) {
	red := color.RGBA{R: 255, A: 255}
	frame := Frame{
		Width:      100,
		Height:     100,
		Background: color.RGBA{R: 255, G: 255, B: 255, A: 255},
		Primitives: []Primitive{
			Circle{Center: Point2{X: 50, Y: 50}, Radius: 5, Fill: red},
			Line{From: Point2{X: 0, Y: 90}, To: Point2{X: 99, Y: 90}, Color: color.RGBA{A: 255}, Width: 1},
		},
	}

	img := Rasterize(frame, 200, 200)
	if got := img.RGBAAt(100, 100); got != red {
		t.Errorf("circle centre failed: expected %v, got %v", red, got)
	}
	if got := img.RGBAAt(5, 5); got != frame.Background {
		t.Errorf("background failed: expected %v, got %v", frame.Background, got)
	}
	if got := img.RGBAAt(50, 180); got != (color.RGBA{A: 255}) {
		t.Errorf("line pixel failed: got %v", got)
	}
}

func TestWritePNG(t *testing.T) {
	frame := Render(DefaultCamera(), grid.Default(5), DefaultOptions())

	var buf bytes.Buffer
	if err := WritePNG(&buf, frame, 400, 400); err != nil {
		t.Fatalf("WritePNG failed: %v", err)
	}

	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
	if img.Bounds().Dx() != 400 || img.Bounds().Dy() != 400 {
		t.Errorf("size failed: got %v", img.Bounds())
	}
}

func TestWriteSVG(t *testing.T) {
	frame := Render(DefaultCamera(), grid.Default(5), DefaultOptions())

	var buf bytes.Buffer
	if err := WriteSVG(&buf, frame); err != nil {
		t.Fatalf("WriteSVG failed: %v", err)
	}
	out := buf.String()

	if n := strings.Count(out, "<circle"); n != 121 {
		t.Errorf("circles failed: expected 121, got %d", n)
	}
	if n := strings.Count(out, "<line"); n != 3+21 {
		t.Errorf("lines failed: expected 24, got %d", n)
	}
	if !strings.Contains(out, `font-weight="bold">X</text>`) {
		t.Error("missing bold X axis label")
	}
	if !strings.HasPrefix(out, "<svg") || !strings.HasSuffix(out, "</svg>\n") {
		t.Error("output is not a complete SVG document")
	}
}

func TestWriteSVGEscapesText(t *testing.T) {
	frame := Frame{Width: 10, Height: 10, Primitives: []Primitive{Text{Content: "a<b"}}}

	var buf bytes.Buffer
	if err := WriteSVG(&buf, frame); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "a&lt;b") {
		t.Errorf("label not escaped: %s", buf.String())
	}
}

func TestClipSegment(t *testing.T) {
	from, to, ok := ClipSegment(Point2{X: -1e12, Y: 200}, Point2{X: 1e12, Y: 200}, 0, 0, 400, 400)
	if !ok {
		t.Fatal("horizontal line through the box should be kept")
	}
	// the clip parameters are relative to a 2e12 long segment
	if math.Abs(from.X) > 1e-3 || math.Abs(to.X-400) > 1e-3 || from.Y != 200 || to.Y != 200 {
		t.Errorf("ClipSegment failed: got %v -> %v", from, to)
	}

	from, to, ok = ClipSegment(Point2{X: 10, Y: 20}, Point2{X: 30, Y: 40}, 0, 0, 400, 400)
	if !ok || from != (Point2{X: 10, Y: 20}) || to != (Point2{X: 30, Y: 40}) {
		t.Errorf("inside segment should be unchanged, got %v -> %v", from, to)
	}

	if _, _, ok := ClipSegment(Point2{X: -2e11, Y: 2.8e11}, Point2{X: -3600, Y: 5574}, 0, 0, 400, 400); ok {
		t.Error("segment left of the box should be dropped")
	}
	if _, _, ok := ClipSegment(Point2{X: math.NaN(), Y: 0}, Point2{X: 10, Y: 10}, 0, 0, 400, 400); ok {
		t.Error("NaN endpoint should be dropped")
	}
	if _, _, ok := ClipSegment(Point2{X: -1.7e308, Y: 0}, Point2{X: 1.7e308, Y: 0}, 0, 0, 400, 400); ok {
		t.Error("segment whose length overflows should be dropped")
	}
}

func TestRasterizeClipsFarLines(t *testing.T) {
	black := color.RGBA{A: 255}
	frame := Frame{
		Width:      400,
		Height:     400,
		Background: color.RGBA{R: 255, G: 255, B: 255, A: 255},
		Primitives: []Primitive{
			Line{From: Point2{X: -2e11, Y: 2.8e11}, To: Point2{X: -3600, Y: 5574}, Color: black, Width: 1},
			Line{From: Point2{X: -1e12, Y: 200}, To: Point2{X: 1e12, Y: 200}, Color: black, Width: 1},
			Circle{Center: Point2{X: 1e300, Y: -1e300}, Radius: 2, Fill: black},
			Text{Pos: Point2{X: -1e300, Y: 1e300}, Content: "Z", Size: 12, Color: black},
		},
	}

	var buf bytes.Buffer
	if err := WritePNG(&buf, frame, 400, 400); err != nil {
		t.Fatalf("WritePNG failed: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if r, g, b, _ := img.At(200, 200).RGBA(); r != 0 || g != 0 || b != 0 {
		t.Errorf("clipped line should cross the centre, got %v", img.At(200, 200))
	}
	if r, _, _, _ := img.At(10, 10).RGBA(); r == 0 {
		t.Error("background expected away from the line")
	}
}
