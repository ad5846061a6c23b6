package viewer

import (
	"sort"

	"github.com/mikeyj777/detailed-modeling-data-analysis/pkg/grid"
)

// ProjectedPoint pairs a point of the cloud with its screen position
type ProjectedPoint struct {
	grid.Point3D
	Screen ScreenPoint
}

// DepthSort projects every point and orders them far to near, so that
// drawing in order lets nearer points cover farther ones. Ties keep no
// particular order.
func (pr Projector) DepthSort(points []grid.Point3D) []ProjectedPoint {
	projected := make([]ProjectedPoint, len(points))
	for i, p := range points {
		projected[i] = ProjectedPoint{Point3D: p, Screen: pr.Project(p.Position)}
	}

	sort.Slice(projected, func(i, j int) bool {
		return projected[i].Screen.Depth > projected[j].Screen.Depth
	})

	return projected
}
