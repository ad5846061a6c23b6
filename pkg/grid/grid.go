package grid

import (
	"errors"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/mikeyj777/detailed-modeling-data-analysis/pkg/geometry"
)

// DefaultSize is the half-extent of the grid shown on startup
const DefaultSize = 5

// ErrEmpty is returned when tabular input holds no rows
var ErrEmpty = errors.New("grid has no rows")

// Sample is one cell of the height field
type Sample struct {
	Row   int
	Col   int
	Value float64
}

// Point3D is a grid cell placed in 3D space with its display color
type Point3D struct {
	Position geometry.Vector3
	Color    color.RGBA
}

// Grid is a dense row-major height field.
// Every row holds the same number of columns.
type Grid struct {
	values [][]float64
	size   int
}

// Default creates a (2*size+1)² grid sampled from sin(row)*cos(col)
// over [-size, size] on both axes
func Default(size int) *Grid {
	if size < 0 {
		size = 0
	}
	values := make([][]float64, 0, 2*size+1)
	for x := -size; x <= size; x++ {
		row := make([]float64, 0, 2*size+1)
		for y := -size; y <= size; y++ {
			row = append(row, math.Sin(float64(x))*math.Cos(float64(y)))
		}
		values = append(values, row)
	}
	return &Grid{values: values, size: size}
}

// FromRows builds a grid from raw rows. Short rows are padded with zeros,
// non-finite values become 0 and the half-extent is derived from the row
// count.
func FromRows(rows [][]float64) (*Grid, error) {
	g := &Grid{}
	if err := g.replace(rows); err != nil {
		return nil, err
	}
	return g, nil
}

// Size returns the half-extent used to centre row and column indices
func (g *Grid) Size() int {
	return g.size
}

// Rows returns the number of rows
func (g *Grid) Rows() int {
	return len(g.values)
}

// Cols returns the number of columns
func (g *Grid) Cols() int {
	if len(g.values) == 0 {
		return 0
	}
	return len(g.values[0])
}

// Value returns the cell at row, col
func (g *Grid) Value(row, col int) float64 {
	return g.values[row][col]
}

// Values returns a copy of all cells
func (g *Grid) Values() [][]float64 {
	out := make([][]float64, len(g.values))
	for i, row := range g.values {
		out[i] = append([]float64(nil), row...)
	}
	return out
}

// Samples returns every cell in row-major order
func (g *Grid) Samples() []Sample {
	samples := make([]Sample, 0, g.Rows()*g.Cols())
	for i, row := range g.values {
		for j, v := range row {
			samples = append(samples, Sample{Row: i, Col: j, Value: v})
		}
	}
	return samples
}

// SetCell parses raw and stores it at row, col. Input that is not a
// number stores 0. It reports false when the indices are out of range.
func (g *Grid) SetCell(row, col int, raw string) bool {
	if row < 0 || row >= g.Rows() || col < 0 || col >= g.Cols() {
		return false
	}
	g.values[row][col] = ParseValue(raw)
	return true
}

// ReplaceFromPastedText replaces the whole grid with tab-separated,
// newline-delimited text and resets the half-extent from the new row count.
// An empty first line leaves the grid untouched and reports false.
func (g *Grid) ReplaceFromPastedText(text string) bool {
	rows := parseRows(text)
	if len(rows) == 0 {
		return false
	}
	return g.replace(rows) == nil
}

// Format renders the grid as tab-separated rows, the same shape
// ReplaceFromPastedText accepts
func (g *Grid) Format() string {
	var b strings.Builder
	for i, row := range g.values {
		if i > 0 {
			b.WriteByte('\n')
		}
		for j, v := range row {
			if j > 0 {
				b.WriteByte('\t')
			}
			b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		}
	}
	return b.String()
}

// PointCloud flattens every cell into a 3D point scaled by scale
func (g *Grid) PointCloud(scale float64) []Point3D {
	points := make([]Point3D, 0, g.Rows()*g.Cols())
	for i, row := range g.values {
		for j, v := range row {
			points = append(points, Point3D{
				Position: geometry.NewVector3(
					float64(i-g.size)*scale,
					float64(j-g.size)*scale,
					v*scale,
				),
				Color: RampColor(v),
			})
		}
	}
	return points
}

// RampColor maps a cell value to the blue-white ramp: -1 is pure blue,
// +1 is white. Channels outside the byte range saturate.
func RampColor(value float64) color.RGBA {
	c := math.Floor((value + 1) * 127.5)
	switch {
	case math.IsNaN(c) || c < 0:
		c = 0
	case c > 255:
		c = 255
	}
	return color.RGBA{R: uint8(c), G: uint8(c), B: 255, A: 255}
}

// ParseValue converts user input to a cell value. Anything that is not a
// finite number becomes 0.
func ParseValue(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func (g *Grid) replace(rows [][]float64) error {
	if len(rows) == 0 {
		return ErrEmpty
	}
	width := 0
	for _, row := range rows {
		width = max(width, len(row))
	}
	if width == 0 {
		return ErrEmpty
	}
	values := make([][]float64, len(rows))
	for i, row := range rows {
		values[i] = make([]float64, width)
		for j, v := range row {
			if !math.IsNaN(v) && !math.IsInf(v, 0) {
				values[i][j] = v
			}
		}
	}
	g.values = values
	g.size = (len(rows) - 1) / 2
	return nil
}

// parseRows splits pasted text into rows of cells. Trailing line breaks
// are ignored; an empty first line yields nil. A first line of only
// blanks or tabs is a row of zeros.
func parseRows(text string) [][]float64 {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.TrimRight(text, "\n")

	lines := strings.Split(text, "\n")
	if lines[0] == "" {
		return nil
	}

	rows := make([][]float64, 0, len(lines))
	for _, line := range lines {
		cells := strings.Split(line, "\t")
		row := make([]float64, len(cells))
		for j, cell := range cells {
			row[j] = ParseValue(cell)
		}
		rows = append(rows, row)
	}
	return rows
}
