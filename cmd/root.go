package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mikeyj777/detailed-modeling-data-analysis/internal/app"
	"github.com/mikeyj777/detailed-modeling-data-analysis/version"
)

var rootInputs Inputs

var rootCmd = &cobra.Command{
	Use:   "gosurf-view [file]",
	Short: "Interactive 3D surface viewer for height-field grids",
	Long: `gosurf-view opens a window showing a grid of values as a rotatable surface.
Drag to rotate, scroll to zoom, paste tab separated text to replace the grid.
Without a file a sin(x)·cos(y) grid is shown.`,
	Version: version.GetFullVersion(),
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, src, err := rootInputs.Resolve(cmd, args)
		if err != nil {
			return err
		}
		return app.Run(app.Options{Settings: settings, Source: src, Watch: rootInputs.Watch})
	},
	SilenceUsage: true,
}

func init() {
	rootInputs.Register(rootCmd)
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
