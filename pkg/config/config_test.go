package config

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mikeyj777/detailed-modeling-data-analysis/pkg/viewer"
)

func TestDefaultMatchesViewer(t *testing.T) {
	s := Default()

	if s.CameraValue() != viewer.DefaultCamera() {
		t.Errorf("CameraValue failed: expected %+v, got %+v", viewer.DefaultCamera(), s.CameraValue())
	}
	if s.InteractionValue() != viewer.DefaultInteractionSettings() {
		t.Errorf("InteractionValue failed: got %+v", s.InteractionValue())
	}
	if s.Options() != viewer.DefaultOptions() {
		t.Errorf("Options failed: expected %+v, got %+v", viewer.DefaultOptions(), s.Options())
	}
	if err := s.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gosurf.toml")
	content := `
[viewport]
width = 800
height = 600

[camera]
rotation_x = 10
scale = 1.5

[render]
background = "#102030"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if s.Camera.RotationX != 10 || s.Camera.RotationY != 45 || s.Camera.Scale != 1.5 {
		t.Errorf("camera failed: got %+v", s.Camera)
	}

	opts := s.Options()
	if opts.Viewport.CenterX != 400 || opts.Viewport.CenterY != 300 {
		t.Errorf("viewport centre failed: got %v, %v", opts.Viewport.CenterX, opts.Viewport.CenterY)
	}
	if opts.Viewport.Magnification != 30 {
		t.Errorf("magnification failed: expected 30, got %v", opts.Viewport.Magnification)
	}
	expected := color.RGBA{R: 0x10, G: 0x20, B: 0x30, A: 255}
	if opts.Background != expected {
		t.Errorf("background failed: expected %v, got %v", expected, opts.Background)
	}
}

func TestLoadRejectsUnknownFormat(t *testing.T) {
	_, err := Load("settings.yaml")
	if !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("expected ErrUnknownFormat, got %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err == nil || !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected a not-exist error, got %v", err)
	}
}

func TestDecodeRejectsUnknownKeys(t *testing.T) {
	s := Default()
	err := Decode("[camera]\nroll = 3\n", &s)
	if err == nil || !strings.Contains(err.Error(), "camera.roll") {
		t.Errorf("expected unknown key error, got %v", err)
	}
}

func TestDecodeValidates(t *testing.T) {
	s := Default()
	if err := Decode("[interaction]\nmin_scale = 3\n", &s); err == nil {
		t.Error("expected invalid scale range to be rejected")
	}

	for _, text := range []string{"[camera]\nscale = 5\n", "[camera]\nscale = 0\n", "[camera]\nscale = -1\n"} {
		s := Default()
		if err := Decode(text, &s); err == nil {
			t.Errorf("Decode(%q): expected camera scale outside [0.5, 2] to be rejected", text)
		}
	}

	s = Default()
	if err := Decode("[camera]\nscale = 2\n", &s); err != nil {
		t.Errorf("scale at the upper bound should be accepted: %v", err)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	text, err := Default().Encode()
	if err != nil {
		t.Fatal(err)
	}

	s := Settings{}
	if err := Decode(text, &s); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if s != Default() {
		t.Errorf("round trip failed: got %+v", s)
	}
}

func TestParseColor(t *testing.T) {
	if _, err := ParseColor("red"); err == nil {
		t.Error("expected error for named color")
	}
	c, err := ParseColor("#ff8000")
	if err != nil || c != (color.RGBA{R: 255, G: 128, A: 255}) {
		t.Errorf("ParseColor failed: got %v, %v", c, err)
	}
}
