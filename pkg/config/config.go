package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/mikeyj777/detailed-modeling-data-analysis/pkg/grid"
	"github.com/mikeyj777/detailed-modeling-data-analysis/pkg/viewer"
)

// ErrUnknownFormat is returned for settings files that are not TOML
var ErrUnknownFormat = errors.New("unknown settings file format")

// Settings holds the defaults every frontend starts from
type Settings struct {
	Viewport    ViewportSettings    `toml:"viewport"`
	Render      RenderSettings      `toml:"render"`
	Camera      CameraSettings      `toml:"camera"`
	Interaction InteractionSettings `toml:"interaction"`
	Grid        GridSettings        `toml:"grid"`
}

// ViewportSettings sizes the drawing surface
type ViewportSettings struct {
	Width         float64 `toml:"width"`
	Height        float64 `toml:"height"`
	Magnification float64 `toml:"magnification"`
	Distance      float64 `toml:"distance"`
}

// RenderSettings controls frame composition
type RenderSettings struct {
	TickCount   int     `toml:"tick_count"`
	PointRadius float64 `toml:"point_radius"`
	Padding     float64 `toml:"padding"`
	Background  string  `toml:"background"`
}

// CameraSettings is the initial view
type CameraSettings struct {
	RotationX float64 `toml:"rotation_x"`
	RotationY float64 `toml:"rotation_y"`
	RotationZ float64 `toml:"rotation_z"`
	Scale     float64 `toml:"scale"`
}

// InteractionSettings tunes pointer handling
type InteractionSettings struct {
	RotateSpeed float64 `toml:"rotate_speed"`
	ZoomStep    float64 `toml:"zoom_step"`
	MinScale    float64 `toml:"min_scale"`
	MaxScale    float64 `toml:"max_scale"`
}

// GridSettings picks the startup data
type GridSettings struct {
	Size int    `toml:"size"`
	File string `toml:"file"`
}

// Default returns the settings of the reference 400x400 view
func Default() Settings {
	vp := viewer.DefaultViewport()
	opts := viewer.DefaultOptions()
	cam := viewer.DefaultCamera()
	in := viewer.DefaultInteractionSettings()

	return Settings{
		Viewport: ViewportSettings{
			Width:         vp.Width,
			Height:        vp.Height,
			Magnification: vp.Magnification,
			Distance:      vp.Distance,
		},
		Render: RenderSettings{
			TickCount:   opts.TickCount,
			PointRadius: opts.PointRadius,
			Padding:     opts.Padding,
			Background:  "#ffffff",
		},
		Camera: CameraSettings{
			RotationX: cam.RotationX,
			RotationY: cam.RotationY,
			RotationZ: cam.RotationZ,
			Scale:     cam.Scale,
		},
		Interaction: InteractionSettings{
			RotateSpeed: in.RotateSpeed,
			ZoomStep:    in.ZoomStep,
			MinScale:    in.MinScale,
			MaxScale:    in.MaxScale,
		},
		Grid: GridSettings{
			Size: grid.DefaultSize,
		},
	}
}

// Load reads a TOML settings file on top of the defaults.
// Keys missing from the file keep their default values.
func Load(path string) (Settings, error) {
	settings := Default()

	if ext := strings.ToLower(filepath.Ext(path)); ext != ".toml" {
		return settings, fmt.Errorf("%s: %w", path, ErrUnknownFormat)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return settings, fmt.Errorf("failed to read settings: %w", err)
	}

	if err := Decode(string(data), &settings); err != nil {
		return settings, fmt.Errorf("%s: %w", path, err)
	}
	return settings, nil
}

// Decode parses TOML text into settings, rejecting unknown keys
func Decode(text string, settings *Settings) error {
	md, err := toml.Decode(text, settings)
	if err != nil {
		return fmt.Errorf("failed to parse settings: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("unknown setting %q", undecoded[0].String())
	}
	return settings.Validate()
}

// Validate checks ranges that would break rendering
func (s Settings) Validate() error {
	if s.Viewport.Width <= 0 || s.Viewport.Height <= 0 {
		return fmt.Errorf("viewport must have a positive size, got %vx%v", s.Viewport.Width, s.Viewport.Height)
	}
	if s.Interaction.MinScale <= 0 || s.Interaction.MinScale > s.Interaction.MaxScale {
		return fmt.Errorf("invalid scale range [%v, %v]", s.Interaction.MinScale, s.Interaction.MaxScale)
	}
	if s.Camera.Scale < s.Interaction.MinScale || s.Camera.Scale > s.Interaction.MaxScale {
		return fmt.Errorf("camera scale %v outside [%v, %v]", s.Camera.Scale, s.Interaction.MinScale, s.Interaction.MaxScale)
	}
	if s.Render.TickCount < 0 {
		return fmt.Errorf("tick_count must not be negative, got %d", s.Render.TickCount)
	}
	if s.Grid.Size < 0 {
		return fmt.Errorf("grid size must not be negative, got %d", s.Grid.Size)
	}
	if _, err := ParseColor(s.Render.Background); err != nil {
		return err
	}
	return nil
}

// Encode writes the settings as TOML
func (s Settings) Encode() (string, error) {
	var b strings.Builder
	if err := toml.NewEncoder(&b).Encode(s); err != nil {
		return "", fmt.Errorf("failed to encode settings: %w", err)
	}
	return b.String(), nil
}

// CameraValue returns the configured initial camera
func (s Settings) CameraValue() viewer.Camera {
	return viewer.Camera{
		RotationX: s.Camera.RotationX,
		RotationY: s.Camera.RotationY,
		RotationZ: s.Camera.RotationZ,
		Scale:     s.Camera.Scale,
	}
}

// InteractionValue returns the configured pointer settings
func (s Settings) InteractionValue() viewer.InteractionSettings {
	return viewer.InteractionSettings{
		RotateSpeed: s.Interaction.RotateSpeed,
		ZoomStep:    s.Interaction.ZoomStep,
		MinScale:    s.Interaction.MinScale,
		MaxScale:    s.Interaction.MaxScale,
	}
}

// Options returns the frame options for the configured viewport
func (s Settings) Options() viewer.Options {
	opts := viewer.DefaultOptions()

	vp := viewer.DefaultViewport()
	vp.Magnification = s.Viewport.Magnification
	vp.Distance = s.Viewport.Distance
	opts.Viewport = vp.Fit(s.Viewport.Width, s.Viewport.Height)

	opts.TickCount = s.Render.TickCount
	opts.PointRadius = s.Render.PointRadius
	opts.Padding = s.Render.Padding
	if bg, err := ParseColor(s.Render.Background); err == nil {
		opts.Background = bg
	}
	return opts
}

// ParseColor parses "#rrggbb"
func ParseColor(s string) (color.RGBA, error) {
	var c color.RGBA
	if len(s) != 7 || s[0] != '#' {
		return c, fmt.Errorf("invalid color %q: expected #rrggbb", s)
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return c, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}
