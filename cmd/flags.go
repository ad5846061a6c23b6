package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mikeyj777/detailed-modeling-data-analysis/internal/source"
	"github.com/mikeyj777/detailed-modeling-data-analysis/pkg/config"
)

// Inputs bundles the flags every viewer command accepts
type Inputs struct {
	Settings config.Flags
	Source   source.Flags
	Watch    bool
}

// Register adds the input flags to the command
func (in *Inputs) Register(cmd *cobra.Command) {
	fs := cmd.Flags()
	in.Settings.Register(fs)
	in.Source.Register(fs)
	fs.BoolVar(&in.Watch, "watch", false, "reload the grid when the file changes")
}

// Resolve reads the settings and picks the data source for the optional
// file argument. Without an argument the settings file may name one.
func (in *Inputs) Resolve(cmd *cobra.Command, args []string) (config.Settings, source.Source, error) {
	fs := cmd.Flags()
	settings, err := in.Settings.Resolve(fs)
	if err != nil {
		return settings, source.Source{}, err
	}

	if len(args) == 0 && settings.Grid.File != "" {
		args = []string{settings.Grid.File}
	}

	src, err := in.Source.Build(fs, args, settings.Grid.Size)
	return settings, src, err
}
