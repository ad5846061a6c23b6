package main

import (
	"github.com/spf13/cobra"

	"github.com/mikeyj777/detailed-modeling-data-analysis/cmd"
	"github.com/mikeyj777/detailed-modeling-data-analysis/internal/tui"
)

var tuiInputs cmd.Inputs

var tuiCmd = &cobra.Command{
	Use:   "tui [file]",
	Short: "View a grid in the terminal",
	Long: `Draw the surface with terminal cells. Drag with the mouse or use the arrow
keys to rotate, scroll or press +/- to zoom, paste tab separated text to
replace the grid, r to reset the view and q to quit.`,
	Args: cobra.MaximumNArgs(1),
	Run:  runTUI,
}

func init() {
	tuiInputs.Register(tuiCmd)
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(c *cobra.Command, args []string) {
	settings, src, err := tuiInputs.Resolve(c, args)
	if err != nil {
		fail("resolving input: %v", err)
	}

	if err := tui.Run(tui.Options{Settings: settings, Source: src, Watch: tuiInputs.Watch}); err != nil {
		fail("running terminal viewer: %v", err)
	}
}
