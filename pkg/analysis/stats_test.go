package analysis

import (
	"math"
	"testing"

	"github.com/mikeyj777/detailed-modeling-data-analysis/pkg/geometry"
	"github.com/mikeyj777/detailed-modeling-data-analysis/pkg/grid"
)

func TestAnalyzeGrid(t *testing.T) {
	g, err := grid.FromRows([][]float64{
		{1, 2, 3},
		{4, 5, 6},
		{7, 8, 9},
	})
	if err != nil {
		t.Fatal(err)
	}

	stats := AnalyzeGrid(g, 1)

	if stats.Rows != 3 || stats.Cols != 3 || stats.HalfExtent != 1 || stats.CellCount != 9 {
		t.Errorf("shape failed: got %+v", stats)
	}
	if stats.Min.Value != 1 || stats.Min.Row != 0 || stats.Min.Col != 0 {
		t.Errorf("Min failed: got %+v", stats.Min)
	}
	if stats.Max.Value != 9 || stats.Max.Row != 2 || stats.Max.Col != 2 {
		t.Errorf("Max failed: got %+v", stats.Max)
	}
	if math.Abs(stats.Mean-5) > 1e-10 {
		t.Errorf("Mean failed: expected 5, got %v", stats.Mean)
	}
	if math.Abs(stats.StdDev-math.Sqrt(60.0/9)) > 1e-10 {
		t.Errorf("StdDev failed: got %v", stats.StdDev)
	}

	expected := geometry.NewVector3(2, 2, 8)
	if stats.Dimensions != expected {
		t.Errorf("Dimensions failed: expected %v, got %v", expected, stats.Dimensions)
	}
}

func TestAnalyzeGridScale(t *testing.T) {
	stats := AnalyzeGrid(grid.Default(5), 2)

	if stats.Extents.Min.X != -10 || stats.Extents.Max.X != 10 {
		t.Errorf("X extents failed: got [%v, %v]", stats.Extents.Min.X, stats.Extents.Max.X)
	}
	if stats.CellCount != 121 {
		t.Errorf("CellCount failed: expected 121, got %d", stats.CellCount)
	}
}

func TestFindExtremeCells(t *testing.T) {
	g, _ := grid.FromRows([][]float64{{3, -1}, {7, 0}})

	high := FindHighestCells(g, 2)
	if len(high) != 2 || high[0].Value != 7 || high[1].Value != 3 {
		t.Errorf("FindHighestCells failed: got %v", high)
	}

	low := FindLowestCells(g, 10)
	if len(low) != 4 || low[0].Value != -1 {
		t.Errorf("FindLowestCells failed: got %v", low)
	}
}

func TestFormatSample(t *testing.T) {
	got := FormatSample(grid.Sample{Row: 1, Col: 2, Value: 0.5})
	if got != "[1, 2] = 0.500000" {
		t.Errorf("FormatSample failed: got %q", got)
	}
}
