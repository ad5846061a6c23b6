// Package source resolves what a viewer should display: a grid file, a
// pivot of a records file, or the generated default grid.
package source

import (
	"fmt"

	"github.com/mikeyj777/detailed-modeling-data-analysis/pkg/grid"
	"github.com/mikeyj777/detailed-modeling-data-analysis/pkg/records"
)

// Source describes where grid data comes from
type Source struct {
	Path string // empty for the generated grid

	// Plot selects records mode: the file is read as test case records and
	// AreaM2 is pivoted over the two fields
	Plot *records.Plot

	// Concentration restricts records mode to one ConcPpm group
	Concentration *float64

	// DefaultSize is the half-extent of the generated grid
	DefaultSize int
}

// Load reads the grid the source points at
func (s Source) Load() (*grid.Grid, error) {
	if s.Path == "" {
		return grid.Default(s.DefaultSize), nil
	}

	if s.Plot == nil {
		g, err := grid.ParseFile(s.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to load grid: %w", err)
		}
		return g, nil
	}

	recs, err := records.Load(s.Path)
	if err != nil {
		return nil, err
	}

	if s.Concentration != nil {
		recs = selectGroup(recs, *s.Concentration)
		if len(recs) == 0 {
			return nil, fmt.Errorf("no records at %g ppm: %w", *s.Concentration, records.ErrNoRecords)
		}
	}

	return records.ToGrid(recs, *s.Plot)
}

// Watchable reports whether the source is backed by a file
func (s Source) Watchable() bool {
	return s.Path != ""
}

// Describe returns a short caption for window titles and status lines
func (s Source) Describe() string {
	switch {
	case s.Path == "":
		return fmt.Sprintf("sin(x)·cos(y), half-extent %d", s.DefaultSize)
	case s.Plot == nil:
		return s.Path
	case s.Concentration != nil:
		return fmt.Sprintf("%s: %s at %g ppm", s.Path, s.Plot.Title(), *s.Concentration)
	default:
		return fmt.Sprintf("%s: %s", s.Path, s.Plot.Title())
	}
}

func selectGroup(recs []records.Record, conc float64) []records.Record {
	for _, g := range records.GroupByConcentration(recs) {
		if g.ConcPpm == conc {
			return g.Records
		}
	}
	return nil
}
