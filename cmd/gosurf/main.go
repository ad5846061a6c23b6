package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mikeyj777/detailed-modeling-data-analysis/version"
)

var rootCmd = &cobra.Command{
	Use:   "gosurf",
	Short: "Inspect, render and serve height-field grids as 3D surfaces",
	Long: `gosurf turns a grid of values into a rotatable surface plot.
Grids come from tab separated text, CSV files, or test case records pivoted
over two of their fields. Surfaces can be viewed in a terminal or a browser,
exported as SVG or PNG, or inspected as numbers.`,
	Version: version.GetFullVersion(),
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error "+format+"\n", args...)
	os.Exit(1)
}
