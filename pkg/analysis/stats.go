package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/mikeyj777/detailed-modeling-data-analysis/pkg/geometry"
	"github.com/mikeyj777/detailed-modeling-data-analysis/pkg/grid"
)

// GridStats summarizes a height field and the point cloud it produces
type GridStats struct {
	Rows       int
	Cols       int
	HalfExtent int
	CellCount  int
	Min        grid.Sample
	Max        grid.Sample
	Mean       float64
	StdDev     float64
	Extents    geometry.BoundingBox
	Dimensions geometry.Vector3
}

// AnalyzeGrid computes value statistics and the extents of the point cloud
// at the given scale
func AnalyzeGrid(g *grid.Grid, scale float64) *GridStats {
	result := &GridStats{
		Rows:       g.Rows(),
		Cols:       g.Cols(),
		HalfExtent: g.Size(),
		Extents:    geometry.NewBoundingBox(),
	}

	samples := g.Samples()
	result.CellCount = len(samples)
	if result.CellCount == 0 {
		return result
	}

	result.Min = samples[0]
	result.Max = samples[0]
	total := 0.0
	for _, s := range samples {
		total += s.Value
		if s.Value < result.Min.Value {
			result.Min = s
		}
		if s.Value > result.Max.Value {
			result.Max = s
		}
	}
	result.Mean = total / float64(result.CellCount)

	variance := 0.0
	for _, s := range samples {
		d := s.Value - result.Mean
		variance += d * d
	}
	result.StdDev = math.Sqrt(variance / float64(result.CellCount))

	for _, p := range g.PointCloud(scale) {
		result.Extents.Extend(p.Position)
	}
	result.Dimensions = result.Extents.Size()

	return result
}

// FindHighestCells returns the count cells with the largest values
func FindHighestCells(g *grid.Grid, count int) []grid.Sample {
	samples := g.Samples()
	sort.Slice(samples, func(i, j int) bool {
		return samples[i].Value > samples[j].Value
	})
	return firstN(samples, count)
}

// FindLowestCells returns the count cells with the smallest values
func FindLowestCells(g *grid.Grid, count int) []grid.Sample {
	samples := g.Samples()
	sort.Slice(samples, func(i, j int) bool {
		return samples[i].Value < samples[j].Value
	})
	return firstN(samples, count)
}

func firstN(samples []grid.Sample, count int) []grid.Sample {
	if count < 0 {
		count = 0
	}
	if count > len(samples) {
		count = len(samples)
	}
	return samples[:count]
}

// FormatSample formats a cell as "[row, col] = value"
func FormatSample(s grid.Sample) string {
	return fmt.Sprintf("[%d, %d] = %.6f", s.Row, s.Col, s.Value)
}

// FormatVector formats a 3D vector
func FormatVector(v geometry.Vector3) string {
	return fmt.Sprintf("(%.6f, %.6f, %.6f)", v.X, v.Y, v.Z)
}
