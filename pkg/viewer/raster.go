package viewer

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Rasterize draws the frame into a width x height image, scaling frame
// units to pixels. Lines are clipped to the image and primitives that fall
// outside it are skipped.
func Rasterize(f Frame, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(f.Background), image.Point{}, draw.Src)

	sx, sy := 1.0, 1.0
	if f.Width > 0 && f.Height > 0 {
		sx = float64(width) / f.Width
		sy = float64(height) / f.Height
	}

	w, h := float64(width), float64(height)
	for _, p := range f.Primitives {
		switch v := p.(type) {
		case Line:
			thickness := int(math.Round(v.Width * math.Min(sx, sy)))
			m := float64(thickness)
			from, to, ok := ClipSegment(
				Point2{X: v.From.X * sx, Y: v.From.Y * sy},
				Point2{X: v.To.X * sx, Y: v.To.Y * sy},
				-m, -m, w+m, h+m,
			)
			if !ok {
				continue
			}
			TraceLine(
				int(math.Round(from.X)), int(math.Round(from.Y)),
				int(math.Round(to.X)), int(math.Round(to.Y)),
				func(x, y int) { plotSquare(img, x, y, thickness, v.Color) },
			)
		case Circle:
			center := Point2{X: v.Center.X * sx, Y: v.Center.Y * sy}
			r := v.Radius * math.Min(sx, sy)
			if !center.In(-r, -r, w+r, h+r) {
				continue
			}
			fillCircle(img, center.X, center.Y, r, v.Fill)
		case Text:
			pos := Point2{X: v.Pos.X * sx, Y: v.Pos.Y * sy}
			m := float64(basicfont.Face7x13.Advance*len(v.Content) + basicfont.Face7x13.Height)
			if !pos.In(-m, -m, w+m, h+m) {
				continue
			}
			drawText(img, v, pos.X, pos.Y)
		}
	}

	return img
}

// WritePNG encodes the rasterized frame as PNG
func WritePNG(w io.Writer, f Frame, width, height int) error {
	if err := png.Encode(w, Rasterize(f, width, height)); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}

// ClipSegment clips the segment a-b to the rectangle [minX, maxX] x
// [minY, maxY] (Liang-Barsky). It reports false when no part of the
// segment lies inside or an endpoint is not finite.
func ClipSegment(a, b Point2, minX, minY, maxX, maxY float64) (Point2, Point2, bool) {
	dx, dy := b.X-a.X, b.Y-a.Y
	if !a.Finite() || !b.Finite() || !finite(dx) || !finite(dy) {
		return a, b, false
	}

	t0, t1 := 0.0, 1.0
	edges := [4][2]float64{
		{-dx, a.X - minX},
		{dx, maxX - a.X},
		{-dy, a.Y - minY},
		{dy, maxY - a.Y},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return a, b, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return a, b, false
			}
			t0 = math.Max(t0, r)
		} else {
			if r < t0 {
				return a, b, false
			}
			t1 = math.Min(t1, r)
		}
	}

	from := Point2{X: a.X + t0*dx, Y: a.Y + t0*dy}
	to := Point2{X: a.X + t1*dx, Y: a.Y + t1*dy}
	return from, to, true
}

// TraceLine walks the integer points between two positions using
// Bresenham's algorithm, calling plot for each one. The walk is as long as
// the segment, so callers clip with ClipSegment first.
func TraceLine(x1, y1, x2, y2 int, plot func(x, y int)) {
	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	var sx, sy int
	if x1 < x2 {
		sx = 1
	} else {
		sx = -1
	}
	if y1 < y2 {
		sy = 1
	} else {
		sy = -1
	}

	err := dx - dy

	for {
		plot(x1, y1)

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// plotSquare sets a size x size block of pixels centred on x, y
func plotSquare(img *image.RGBA, x, y, size int, col color.RGBA) {
	bounds := img.Bounds()
	if size < 1 {
		size = 1
	}
	half := size / 2
	for py := y - half; py < y-half+size; py++ {
		for px := x - half; px < x-half+size; px++ {
			if image.Pt(px, py).In(bounds) {
				img.SetRGBA(px, py, col)
			}
		}
	}
}

// fillCircle fills every pixel whose centre lies inside the disc
func fillCircle(img *image.RGBA, cx, cy, r float64, col color.RGBA) {
	bounds := img.Bounds()
	minY := int(math.Max(float64(bounds.Min.Y), math.Floor(cy-r)))
	maxY := int(math.Min(float64(bounds.Max.Y-1), math.Ceil(cy+r)))
	minX := int(math.Max(float64(bounds.Min.X), math.Floor(cx-r)))
	maxX := int(math.Min(float64(bounds.Max.X-1), math.Ceil(cx+r)))

	for y := minY; y <= maxY; y++ {
		fy := float64(y) + 0.5 - cy
		for x := minX; x <= maxX; x++ {
			fx := float64(x) + 0.5 - cx
			if fx*fx+fy*fy <= r*r {
				img.SetRGBA(x, y, col)
			}
		}
	}
}

// drawText draws a label with its baseline at y, aligned by its anchor.
// Bold labels are drawn twice, one pixel apart.
func drawText(img *image.RGBA, t Text, x, y float64) {
	face := basicfont.Face7x13
	width := font.MeasureString(face, t.Content).Ceil()

	left := int(math.Round(x))
	switch t.Anchor {
	case AnchorMiddle:
		left -= width / 2
	case AnchorEnd:
		left -= width
	}

	passes := 1
	if t.Bold {
		passes = 2
	}
	for i := 0; i < passes; i++ {
		d := &font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(t.Color),
			Face: face,
			Dot:  fixed.P(left+i, int(math.Round(y))),
		}
		d.DrawString(t.Content)
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
