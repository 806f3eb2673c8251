// Package config handles terrain tool configuration loading and management.
package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned by Validate for out-of-range settings.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds all terrain tool settings.
type Config struct {
	Terrain TerrainConfig `yaml:"terrain"`
	Viewer  ViewerConfig  `yaml:"viewer"`
	Preview PreviewConfig `yaml:"preview"`
	Logging LoggingConfig `yaml:"logging"`
}

// TerrainConfig holds mesh generation settings.
type TerrainConfig struct {
	Resolution       float32    `yaml:"resolution"`  // World units between samples
	WallHeight       float32    `yaml:"wall_height"` // Extrusion depth below the floor
	Up               [3]float32 `yaml:"up"`
	SimplifyOutlines bool       `yaml:"simplify_outlines"`
	GridFile         string     `yaml:"grid_file"` // Grid loaded when none is given on the command line
}

// ViewerConfig holds display and rendering settings for terrainview.
type ViewerConfig struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	Fullscreen bool    `yaml:"fullscreen"`
	VSync      bool    `yaml:"vsync"`
	Wireframe  bool    `yaml:"wireframe"`
	FOV        float32 `yaml:"fov"` // Vertical field of view in degrees

	SunAzimuth    float32 `yaml:"sun_azimuth"`   // Degrees around Y from +Z
	SunElevation  float32 `yaml:"sun_elevation"` // Degrees above the horizon
	ShowBounds    bool    `yaml:"show_bounds"`
	ScreenshotDir string  `yaml:"screenshot_dir"`
}

// PreviewConfig holds terminal preview settings.
type PreviewConfig struct {
	ShowSamples  bool     `yaml:"show_samples"`
	ShowOutlines bool     `yaml:"show_outlines"`
	Palette      []string `yaml:"palette"` // Outline colors, cycled per loop
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Terrain: TerrainConfig{
			Resolution:       5,
			WallHeight:       50,
			Up:               [3]float32{0, 1, 0},
			SimplifyOutlines: false,
		},
		Viewer: ViewerConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			Wireframe:  false,
			FOV:        45,

			SunAzimuth:    135,
			SunElevation:  60,
			ScreenshotDir: "screenshots",
		},
		Preview: PreviewConfig{
			ShowSamples:  true,
			ShowOutlines: true,
			Palette:      []string{"yellow", "aqua", "fuchsia", "lime"},
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	t := c.Terrain
	if t.Resolution <= 0 {
		return fmt.Errorf("%w: terrain.resolution must be positive, got %g", ErrInvalidConfig, t.Resolution)
	}
	if t.WallHeight < 0 {
		return fmt.Errorf("%w: terrain.wall_height must not be negative, got %g", ErrInvalidConfig, t.WallHeight)
	}
	if t.Up == [3]float32{} {
		return fmt.Errorf("%w: terrain.up must be non-zero", ErrInvalidConfig)
	}

	if c.Viewer.Width <= 0 || c.Viewer.Height <= 0 {
		return fmt.Errorf("%w: viewer size %dx%d", ErrInvalidConfig, c.Viewer.Width, c.Viewer.Height)
	}
	if c.Viewer.FOV <= 0 || c.Viewer.FOV >= 180 {
		return fmt.Errorf("%w: viewer.fov must be in (0, 180), got %g", ErrInvalidConfig, c.Viewer.FOV)
	}
	if c.Viewer.SunElevation < -90 || c.Viewer.SunElevation > 90 {
		return fmt.Errorf("%w: viewer.sun_elevation must be in [-90, 90], got %g", ErrInvalidConfig, c.Viewer.SunElevation)
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, c.Logging.Level)
	}
	return nil
}
