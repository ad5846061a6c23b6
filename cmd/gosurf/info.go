package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mikeyj777/detailed-modeling-data-analysis/cmd"
	"github.com/mikeyj777/detailed-modeling-data-analysis/pkg/analysis"
)

var infoInputs cmd.Inputs

var infoTop int

var infoCmd = &cobra.Command{
	Use:   "info [file]",
	Short: "Display statistics about a grid",
	Long:  "Show the grid shape, value range, mean and the extents of the point cloud at the configured scale.",
	Args:  cobra.MaximumNArgs(1),
	Run:   runInfo,
}

func init() {
	infoInputs.Register(infoCmd)
	infoCmd.Flags().IntVar(&infoTop, "top", 3, "number of highest and lowest cells to list")
	rootCmd.AddCommand(infoCmd)
}

func runInfo(c *cobra.Command, args []string) {
	settings, src, err := infoInputs.Resolve(c, args)
	if err != nil {
		fail("resolving input: %v", err)
	}

	g, err := src.Load()
	if err != nil {
		fail("loading grid: %v", err)
	}

	scale := settings.Camera.Scale
	result := analysis.AnalyzeGrid(g, scale)

	fmt.Println("Grid Information")
	fmt.Println("================")
	fmt.Printf("Source: %s\n\n", src.Describe())

	fmt.Println("Shape:")
	fmt.Printf("  Rows: %d\n", result.Rows)
	fmt.Printf("  Columns: %d\n", result.Cols)
	fmt.Printf("  Half-extent: %d\n", result.HalfExtent)
	fmt.Printf("  Cells: %d\n\n", result.CellCount)

	if result.CellCount == 0 {
		return
	}

	fmt.Println("Values:")
	fmt.Printf("  Minimum: %s\n", analysis.FormatSample(result.Min))
	fmt.Printf("  Maximum: %s\n", analysis.FormatSample(result.Max))
	fmt.Printf("  Mean: %.6f\n", result.Mean)
	fmt.Printf("  Std dev: %.6f\n\n", result.StdDev)

	fmt.Printf("Extents (scale %.2f):\n", scale)
	fmt.Printf("  Min: %s\n", analysis.FormatVector(result.Extents.Min))
	fmt.Printf("  Max: %s\n", analysis.FormatVector(result.Extents.Max))
	fmt.Printf("  Size: %s\n", analysis.FormatVector(result.Dimensions))

	if infoTop <= 0 {
		return
	}

	fmt.Println("\nHighest cells:")
	for _, s := range analysis.FindHighestCells(g, infoTop) {
		fmt.Printf("  %s\n", analysis.FormatSample(s))
	}
	fmt.Println("Lowest cells:")
	for _, s := range analysis.FindLowestCells(g, infoTop) {
		fmt.Printf("  %s\n", analysis.FormatSample(s))
	}
}
