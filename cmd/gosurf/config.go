package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mikeyj777/detailed-modeling-data-analysis/pkg/config"
)

var configFlags config.Flags

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective settings as TOML",
	Long:  "Print the built-in defaults merged with --config and the other flags. The output is a valid settings file.",
	Args:  cobra.NoArgs,
	Run:   runConfig,
}

func init() {
	configFlags.Register(configCmd.Flags())
	rootCmd.AddCommand(configCmd)
}

func runConfig(c *cobra.Command, args []string) {
	settings, err := configFlags.Resolve(c.Flags())
	if err != nil {
		fail("reading settings: %v", err)
	}

	text, err := settings.Encode()
	if err != nil {
		fail("encoding settings: %v", err)
	}
	fmt.Print(text)
}
