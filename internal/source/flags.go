package source

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/mikeyj777/detailed-modeling-data-analysis/pkg/records"
)

// Flags select records mode on the command line
type Flags struct {
	Plot          string
	Concentration float64
}

// Register adds the flags to fs
func (f *Flags) Register(fs *pflag.FlagSet) {
	fs.StringVar(&f.Plot, "plot", "", `read the file as test case records and pivot area over two fields, e.g. "tempC,elevM"`)
	fs.Float64Var(&f.Concentration, "conc", 0, "with --plot, only use records at this concentration (ppm)")
}

// Build returns the source for the optional file argument
func (f *Flags) Build(fs *pflag.FlagSet, args []string, defaultSize int) (Source, error) {
	src := Source{DefaultSize: defaultSize}
	if len(args) > 0 {
		src.Path = args[0]
	}

	if f.Plot == "" {
		if fs.Changed("conc") {
			return src, fmt.Errorf("--conc requires --plot")
		}
		return src, nil
	}
	if src.Path == "" {
		return src, fmt.Errorf("--plot requires a records file")
	}

	plot, err := ParsePlot(f.Plot)
	if err != nil {
		return src, err
	}
	src.Plot = &plot

	if fs.Changed("conc") {
		conc := f.Concentration
		src.Concentration = &conc
	}
	return src, nil
}

// ParsePlot reads "xField,yField"
func ParsePlot(s string) (records.Plot, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return records.Plot{}, fmt.Errorf("invalid plot %q: expected two fields separated by a comma", s)
	}

	x, err := records.ParseField(strings.TrimSpace(parts[0]))
	if err != nil {
		return records.Plot{}, err
	}
	y, err := records.ParseField(strings.TrimSpace(parts[1]))
	if err != nil {
		return records.Plot{}, err
	}
	return records.Plot{X: x, Y: y}, nil
}
