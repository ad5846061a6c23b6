package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mikeyj777/detailed-modeling-data-analysis/cmd"
	"github.com/mikeyj777/detailed-modeling-data-analysis/pkg/config"
	"github.com/mikeyj777/detailed-modeling-data-analysis/pkg/viewer"
)

var (
	renderInputs cmd.Inputs
	renderOutput string
	renderFormat string
)

var renderCmd = &cobra.Command{
	Use:   "render [file]",
	Short: "Render a grid to an SVG or PNG image",
	Long: `Render one frame of the surface with the configured camera.
The format follows the output file extension unless --format is given.
Without --output the image is written to stdout.`,
	Args: cobra.MaximumNArgs(1),
	Run:  runRender,
}

func init() {
	renderInputs.Register(renderCmd)
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "output file (default stdout)")
	renderCmd.Flags().StringVar(&renderFormat, "format", "", "image format: svg or png")
	rootCmd.AddCommand(renderCmd)
}

func runRender(c *cobra.Command, args []string) {
	settings, src, err := renderInputs.Resolve(c, args)
	if err != nil {
		fail("resolving input: %v", err)
	}

	format, err := imageFormat(renderFormat, renderOutput)
	if err != nil {
		fail("%v", err)
	}

	g, err := src.Load()
	if err != nil {
		fail("loading grid: %v", err)
	}

	frame := viewer.Render(settings.CameraValue(), g, settings.Options())

	var out io.Writer = os.Stdout
	if renderOutput != "" {
		file, err := os.Create(renderOutput)
		if err != nil {
			fail("creating output: %v", err)
		}
		defer file.Close()
		out = file
	}

	if err := writeImage(out, frame, settings, format); err != nil {
		fail("writing %s: %v", format, err)
	}

	if renderOutput != "" {
		stats := frame.Stats()
		fmt.Printf("Wrote %s (%d points, %d axis lines)\n", renderOutput, stats.Points, stats.AxisLines)
	}
}

// imageFormat picks the format from the flag, then the file extension
func imageFormat(flag, output string) (string, error) {
	format := strings.ToLower(flag)
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(output)), ".")
	}
	if format == "" {
		format = "svg"
	}

	switch format {
	case "svg", "png":
		return format, nil
	default:
		return "", fmt.Errorf("unsupported format %q (expected svg or png)", format)
	}
}

func writeImage(w io.Writer, frame viewer.Frame, settings config.Settings, format string) error {
	if format == "png" {
		return viewer.WritePNG(w, frame, int(settings.Viewport.Width), int(settings.Viewport.Height))
	}
	return viewer.WriteSVG(w, frame)
}
