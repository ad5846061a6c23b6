package viewer

import (
	"math"
	"testing"

	"github.com/mikeyj777/detailed-modeling-data-analysis/pkg/geometry"
)

func closeTo(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestProjectIdentity(t *testing.T) {
	camera := Camera{Scale: 1}
	p := geometry.NewVector3(1, 2, 3)

	result := Project(p, camera)

	perspective := 10.0 / 13.0
	expectedX := 1*perspective*20 + 200
	expectedY := 2*perspective*20 + 200
	if !closeTo(result.X, expectedX) || !closeTo(result.Y, expectedY) {
		t.Errorf("Project failed: expected (%v, %v), got (%v, %v)", expectedX, expectedY, result.X, result.Y)
	}
	if !closeTo(result.Depth, 3) {
		t.Errorf("Depth failed: expected 3, got %v", result.Depth)
	}
	if result.Clipped {
		t.Error("point should not be clipped")
	}
}

func TestProjectOrigin(t *testing.T) {
	result := Project(geometry.Vector3{}, DefaultCamera())
	if !closeTo(result.X, 200) || !closeTo(result.Y, 200) {
		t.Errorf("origin should map to the viewport centre, got (%v, %v)", result.X, result.Y)
	}
}

func TestProjectPeriodic(t *testing.T) {
	points := []geometry.Vector3{
		geometry.NewVector3(1, 2, 3),
		geometry.NewVector3(-4, 0.5, -1),
		geometry.NewVector3(5, -5, 0.8),
	}
	cameras := []Camera{
		{RotationX: 45, RotationY: 45, Scale: 1},
		{RotationX: -30, RotationY: 170, RotationZ: 12, Scale: 1},
		{RotationX: 359, RotationY: -90, RotationZ: 200, Scale: 1},
	}

	for _, c := range cameras {
		for _, p := range points {
			base := Project(p, c)
			shifted := []Camera{
				{RotationX: c.RotationX + 360, RotationY: c.RotationY, RotationZ: c.RotationZ},
				{RotationX: c.RotationX, RotationY: c.RotationY + 360, RotationZ: c.RotationZ},
				{RotationX: c.RotationX, RotationY: c.RotationY, RotationZ: c.RotationZ + 360},
			}
			for _, s := range shifted {
				got := Project(p, s)
				if !closeTo(got.X, base.X) || !closeTo(got.Y, base.Y) || !closeTo(got.Depth, base.Depth) {
					t.Errorf("Project not periodic for %v at %+v: %+v vs %+v", p, s, got, base)
				}
			}
		}
	}
}

func TestProjectRotationOrder(t *testing.T) {
	// X first sends (0,1,0) to (0,0,1); Y then sends it to (1,0,0).
	// Rotating about Y first would leave the point at depth 1.
	camera := Camera{RotationX: 90, RotationY: 90, Scale: 1}
	result := Project(geometry.NewVector3(0, 1, 0), camera)

	if !closeTo(result.Depth, 0) {
		t.Errorf("Depth failed: expected 0, got %v", result.Depth)
	}
	if !closeTo(result.X, 220) || !closeTo(result.Y, 200) {
		t.Errorf("Project failed: expected (220, 200), got (%v, %v)", result.X, result.Y)
	}
}

func TestProjectSingularity(t *testing.T) {
	result := Project(geometry.NewVector3(0, 0, -10), Camera{Scale: 1})

	if !result.Clipped {
		t.Fatal("point on the camera plane should be clipped")
	}
	if math.IsNaN(result.X) || math.IsInf(result.X, 0) || math.IsNaN(result.Y) || math.IsInf(result.Y, 0) {
		t.Errorf("clipped point has non-finite position (%v, %v)", result.X, result.Y)
	}
}

func TestViewportFit(t *testing.T) {
	vp := DefaultViewport().Fit(800, 600)

	if vp.CenterX != 400 || vp.CenterY != 300 {
		t.Errorf("centre failed: expected (400, 300), got (%v, %v)", vp.CenterX, vp.CenterY)
	}
	if !closeTo(vp.Magnification, 30) {
		t.Errorf("Magnification failed: expected 30, got %v", vp.Magnification)
	}
	if vp.Distance != 10 {
		t.Errorf("Distance should be kept, got %v", vp.Distance)
	}
}

func TestProjectNonFiniteIsClipped(t *testing.T) {
	for _, p := range []geometry.Vector3{
		geometry.NewVector3(math.Inf(1), 0, 0),
		geometry.NewVector3(0, math.NaN(), 0),
		geometry.NewVector3(0, 0, math.Inf(-1)),
	} {
		sp := Project(p, DefaultCamera())
		if !sp.Clipped {
			t.Errorf("Project(%v) should be clipped, got %+v", p, sp)
		}
		if sp.X != 200 || sp.Y != 200 {
			t.Errorf("clipped point should sit at the centre, got %+v", sp)
		}
	}
}
