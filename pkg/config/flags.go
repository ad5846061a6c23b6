package config

import (
	"github.com/spf13/pflag"
)

// Flags are the command line overrides shared by every frontend
type Flags struct {
	ConfigPath string
	GridSize   int
	RotationX  float64
	RotationY  float64
	RotationZ  float64
	Scale      float64
	Width      float64
	Height     float64
}

// Register adds the flags to fs with the built-in defaults
func (f *Flags) Register(fs *pflag.FlagSet) {
	d := Default()
	fs.StringVar(&f.ConfigPath, "config", "", "TOML settings file")
	fs.IntVar(&f.GridSize, "grid-size", d.Grid.Size, "half-extent of the generated grid")
	fs.Float64Var(&f.RotationX, "rx", d.Camera.RotationX, "initial rotation about X in degrees")
	fs.Float64Var(&f.RotationY, "ry", d.Camera.RotationY, "initial rotation about Y in degrees")
	fs.Float64Var(&f.RotationZ, "rz", d.Camera.RotationZ, "initial rotation about Z in degrees")
	fs.Float64Var(&f.Scale, "scale", d.Camera.Scale, "initial zoom")
	fs.Float64Var(&f.Width, "width", d.Viewport.Width, "surface width")
	fs.Float64Var(&f.Height, "height", d.Viewport.Height, "surface height")
}

// Resolve loads the settings file, if any, and applies the flags the
// user set explicitly on top of it
func (f *Flags) Resolve(fs *pflag.FlagSet) (Settings, error) {
	settings := Default()
	if f.ConfigPath != "" {
		loaded, err := Load(f.ConfigPath)
		if err != nil {
			return settings, err
		}
		settings = loaded
	}

	if fs.Changed("grid-size") {
		settings.Grid.Size = f.GridSize
	}
	if fs.Changed("rx") {
		settings.Camera.RotationX = f.RotationX
	}
	if fs.Changed("ry") {
		settings.Camera.RotationY = f.RotationY
	}
	if fs.Changed("rz") {
		settings.Camera.RotationZ = f.RotationZ
	}
	if fs.Changed("scale") {
		settings.Camera.Scale = f.Scale
	}
	if fs.Changed("width") {
		settings.Viewport.Width = f.Width
	}
	if fs.Changed("height") {
		settings.Viewport.Height = f.Height
	}

	return settings, settings.Validate()
}
