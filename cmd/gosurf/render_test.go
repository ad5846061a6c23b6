package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mikeyj777/detailed-modeling-data-analysis/pkg/config"
	"github.com/mikeyj777/detailed-modeling-data-analysis/pkg/grid"
	"github.com/mikeyj777/detailed-modeling-data-analysis/pkg/viewer"
)

func TestImageFormat(t *testing.T) {
	tests := []struct {
		flag, output, want string
	}{
		{"", "", "svg"},
		{"", "out.PNG", "png"},
		{"svg", "out.png", "svg"},
		{"PNG", "", "png"},
	}

	for _, tt := range tests {
		got, err := imageFormat(tt.flag, tt.output)
		if err != nil {
			t.Errorf("imageFormat(%q, %q) failed: %v", tt.flag, tt.output, err)
			continue
		}
		if got != tt.want {
			t.Errorf("imageFormat(%q, %q): expected %s, got %s", tt.flag, tt.output, tt.want, got)
		}
	}

	if _, err := imageFormat("", "out.jpg"); err == nil {
		t.Error("expected jpg to be rejected")
	}
}

func TestWriteImage(t *testing.T) {
	settings := config.Default()
	frame := viewer.Render(settings.CameraValue(), grid.Default(2), settings.Options())

	var svg bytes.Buffer
	if err := writeImage(&svg, frame, settings, "svg"); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(svg.String(), "<svg") {
		t.Error("expected svg output")
	}

	var png bytes.Buffer
	if err := writeImage(&png, frame, settings, "png"); err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(png.Bytes(), []byte("\x89PNG")) {
		t.Error("expected png signature")
	}
}
