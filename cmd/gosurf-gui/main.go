package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mikeyj777/detailed-modeling-data-analysis/cmd"
	"github.com/mikeyj777/detailed-modeling-data-analysis/internal/gui"
	"github.com/mikeyj777/detailed-modeling-data-analysis/version"
)

var inputs cmd.Inputs

var rootCmd = &cobra.Command{
	Use:   "gosurf-gui [file]",
	Short: "Surface viewer with a data editor",
	Long: `gosurf-gui shows the surface next to an editable table of the grid.
Edit single cells or paste tab separated text to replace the whole grid.`,
	Version:      version.GetFullVersion(),
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE: func(c *cobra.Command, args []string) error {
		settings, src, err := inputs.Resolve(c, args)
		if err != nil {
			return err
		}
		return gui.Run(gui.Options{Settings: settings, Source: src, Watch: inputs.Watch})
	},
}

func init() {
	inputs.Register(rootCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
