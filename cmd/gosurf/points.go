package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mikeyj777/detailed-modeling-data-analysis/cmd"
	"github.com/mikeyj777/detailed-modeling-data-analysis/pkg/analysis"
	"github.com/mikeyj777/detailed-modeling-data-analysis/pkg/viewer"
)

var (
	pointsInputs cmd.Inputs
	pointsLimit  int
)

var pointsCmd = &cobra.Command{
	Use:   "points [file]",
	Short: "List the points of a grid in draw order",
	Long:  "Project the point cloud with the configured camera and print it far to near, as the renderer draws it.",
	Args:  cobra.MaximumNArgs(1),
	Run:   runPoints,
}

func init() {
	pointsInputs.Register(pointsCmd)
	pointsCmd.Flags().IntVarP(&pointsLimit, "limit", "n", 0, "print at most n points (0 for all)")
	rootCmd.AddCommand(pointsCmd)
}

func runPoints(c *cobra.Command, args []string) {
	settings, src, err := pointsInputs.Resolve(c, args)
	if err != nil {
		fail("resolving input: %v", err)
	}

	g, err := src.Load()
	if err != nil {
		fail("loading grid: %v", err)
	}

	camera := settings.CameraValue()
	pr := viewer.NewProjector(camera, settings.Options().Viewport)
	sorted := pr.DepthSort(g.PointCloud(camera.Scale))

	fmt.Printf("Draw order for %s\n", src.Describe())
	fmt.Printf("Camera: rx=%.1f ry=%.1f rz=%.1f scale=%.2f\n\n", camera.RotationX, camera.RotationY, camera.RotationZ, camera.Scale)

	count := len(sorted)
	if pointsLimit > 0 && pointsLimit < count {
		count = pointsLimit
	}

	for i, p := range sorted[:count] {
		clipped := ""
		if p.Screen.Clipped {
			clipped = "  clipped"
		}
		fmt.Printf("%4d  %s  screen (%.2f, %.2f)  depth %.4f%s\n",
			i+1, analysis.FormatVector(p.Position), p.Screen.X, p.Screen.Y, p.Screen.Depth, clipped)
	}

	if count < len(sorted) {
		fmt.Printf("... %d more\n", len(sorted)-count)
	}
}
