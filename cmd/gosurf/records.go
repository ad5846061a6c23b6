package main

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mikeyj777/detailed-modeling-data-analysis/pkg/config"
	"github.com/mikeyj777/detailed-modeling-data-analysis/pkg/records"
	"github.com/mikeyj777/detailed-modeling-data-analysis/pkg/viewer"
)

var (
	recordsFlags  config.Flags
	recordsExport string
	recordsFormat string
)

var recordsCmd = &cobra.Command{
	Use:   "records <file>",
	Short: "Summarize a test case records file",
	Long: `List the concentration groups of a records CSV file with the range of each field.
With --export, render the standard plots (area over temperature and elevation,
temperature and molecular weight, elevation and molecular weight) for every
concentration into the given directory.`,
	Args: cobra.ExactArgs(1),
	Run:  runRecords,
}

func init() {
	recordsFlags.Register(recordsCmd.Flags())
	recordsCmd.Flags().StringVar(&recordsExport, "export", "", "directory to write one image per concentration and plot")
	recordsCmd.Flags().StringVar(&recordsFormat, "format", "svg", "export format: svg or png")
	rootCmd.AddCommand(recordsCmd)
}

func runRecords(c *cobra.Command, args []string) {
	filename := args[0]

	settings, err := recordsFlags.Resolve(c.Flags())
	if err != nil {
		fail("reading settings: %v", err)
	}

	recs, err := records.Load(filename)
	if err != nil {
		fail("loading records: %v", err)
	}

	groups := records.GroupByConcentration(recs)

	fmt.Println("Records Information")
	fmt.Println("===================")
	fmt.Printf("File: %s\n", filename)
	fmt.Printf("Records: %d\n", len(recs))
	fmt.Printf("Concentrations: %d\n\n", len(groups))

	for _, g := range groups {
		fmt.Printf("%g ppm: %d records\n", g.ConcPpm, len(g.Records))
		for _, f := range []records.Field{records.AreaM2, records.TempC, records.ElevM, records.AveMwVap} {
			lo, hi := fieldRange(g.Records, f)
			fmt.Printf("  %-22s %.4f .. %.4f\n", f.Label()+":", lo, hi)
		}
	}

	if recordsExport == "" {
		return
	}

	format, err := imageFormat(recordsFormat, "")
	if err != nil {
		fail("%v", err)
	}
	if err := os.MkdirAll(recordsExport, 0o755); err != nil {
		fail("creating export directory: %v", err)
	}

	written := 0
	for _, g := range groups {
		for _, p := range records.DefaultPlots {
			grid, err := records.ToGrid(g.Records, p)
			if err != nil {
				fail("pivoting %g ppm: %v", g.ConcPpm, err)
			}

			name := fmt.Sprintf("area_%s_%s_%gppm.%s", p.X, p.Y, g.ConcPpm, format)
			path := filepath.Join(recordsExport, name)
			if err := exportFrame(path, viewer.Render(settings.CameraValue(), grid, settings.Options()), settings, format); err != nil {
				fail("writing %s: %v", path, err)
			}
			written++
		}
	}
	fmt.Printf("\nWrote %d images to %s\n", written, recordsExport)
}

func exportFrame(path string, frame viewer.Frame, settings config.Settings, format string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := writeImage(file, frame, settings, format); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func fieldRange(recs []records.Record, f records.Field) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, r := range recs {
		v := f.Value(r)
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}
