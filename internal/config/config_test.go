package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/grubs-terrain/internal/engine/terrain"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Test terrain defaults
	if cfg.Terrain.Resolution != terrain.DefaultResolution {
		t.Errorf("expected resolution %v, got %v", terrain.DefaultResolution, cfg.Terrain.Resolution)
	}
	if cfg.Terrain.WallHeight != terrain.DefaultWallHeight {
		t.Errorf("expected wall height %v, got %v", terrain.DefaultWallHeight, cfg.Terrain.WallHeight)
	}
	if cfg.Terrain.Up != [3]float32{0, 1, 0} {
		t.Errorf("expected up (0,1,0), got %v", cfg.Terrain.Up)
	}
	if cfg.Terrain.SimplifyOutlines {
		t.Error("expected outline simplification to be off by default")
	}

	// Test viewer defaults
	if cfg.Viewer.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Viewer.Width)
	}
	if cfg.Viewer.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Viewer.Height)
	}
	if !cfg.Viewer.VSync {
		t.Error("expected vsync to be true by default")
	}
	if cfg.Viewer.SunElevation != 60 || cfg.Viewer.ScreenshotDir != "screenshots" {
		t.Errorf("unexpected sun/screenshot defaults: %+v", cfg.Viewer)
	}

	// Test preview defaults
	if len(cfg.Preview.Palette) == 0 {
		t.Error("expected a default outline palette")
	}

	// Test logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero resolution", func(c *Config) { c.Terrain.Resolution = 0 }},
		{"negative wall height", func(c *Config) { c.Terrain.WallHeight = -5 }},
		{"zero up", func(c *Config) { c.Terrain.Up = [3]float32{} }},
		{"zero width", func(c *Config) { c.Viewer.Width = 0 }},
		{"fov out of range", func(c *Config) { c.Viewer.FOV = 180 }},
		{"sun below nadir", func(c *Config) { c.Viewer.SunElevation = -91 }},
		{"unknown level", func(c *Config) { c.Logging.Level = "verbose" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
terrain:
  resolution: 2.5
  wall_height: 30
  up: [0, 0, 1]
  simplify_outlines: true
  grid_file: "maps/island.tgrd"

viewer:
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false
  wireframe: true

preview:
  show_samples: false
  palette: ["red"]

logging:
  level: "debug"
  log_file: "terrain.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Load config
	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Verify values were loaded
	if cfg.Terrain.Resolution != 2.5 {
		t.Errorf("expected resolution 2.5, got %v", cfg.Terrain.Resolution)
	}
	if cfg.Terrain.WallHeight != 30 {
		t.Errorf("expected wall height 30, got %v", cfg.Terrain.WallHeight)
	}
	if cfg.Terrain.Up != [3]float32{0, 0, 1} {
		t.Errorf("expected up (0,0,1), got %v", cfg.Terrain.Up)
	}
	if !cfg.Terrain.SimplifyOutlines {
		t.Error("expected simplify_outlines to be true")
	}
	if cfg.Terrain.GridFile != "maps/island.tgrd" {
		t.Errorf("expected grid file maps/island.tgrd, got %s", cfg.Terrain.GridFile)
	}

	if cfg.Viewer.Width != 1920 {
		t.Errorf("expected width 1920, got %d", cfg.Viewer.Width)
	}
	if !cfg.Viewer.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Viewer.VSync {
		t.Error("expected vsync to be false")
	}
	if cfg.Viewer.FOV != 45 {
		t.Errorf("expected fov to keep default 45, got %v", cfg.Viewer.FOV)
	}

	if cfg.Preview.ShowSamples {
		t.Error("expected show_samples to be false")
	}
	if !cfg.Preview.ShowOutlines {
		t.Error("expected show_outlines to keep default true")
	}
	if len(cfg.Preview.Palette) != 1 || cfg.Preview.Palette[0] != "red" {
		t.Errorf("expected palette [red], got %v", cfg.Preview.Palette)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "terrain.log" {
		t.Errorf("expected log file 'terrain.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	// Create temporary config file with invalid YAML
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
terrain:
  resolution: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Try to load - should error
	cfg := Default()
	err := loadFromFile(cfg, configPath)
	if err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestLoadFile(t *testing.T) {
	tmpDir := t.TempDir()

	good := filepath.Join(tmpDir, "good.yaml")
	if err := os.WriteFile(good, []byte("terrain:\n  resolution: 8\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	cfg, err := LoadFile(good)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if cfg.Terrain.Resolution != 8 {
		t.Errorf("expected resolution 8, got %v", cfg.Terrain.Resolution)
	}

	bad := filepath.Join(tmpDir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("terrain:\n  wall_height: -1\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	if _, err := LoadFile(bad); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	// Just verify it returns a non-empty path
	// Actual path depends on OS
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}

	// Verify path is absolute
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	// Save current directory
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	// Create temp directory and change to it
	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))

	// No config file exists - should return empty
	path := findConfigFile()
	if path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	// Create terrain.yaml in current directory
	configPath := filepath.Join(tmpDir, "terrain.yaml")
	if err := os.WriteFile(configPath, []byte("viewer:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	// Should find it now
	path = findConfigFile()
	if path == "" {
		t.Error("expected to find terrain.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*Config)
		teardown func()
	}{
		{
			name: "debug flag",
			setup: func() {
				*flagDebug = true
			},
			verify: func(cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() {
				*flagDebug = false
			},
		},
		{
			name: "grid flag",
			setup: func() {
				*flagGrid = "caves.txt"
			},
			verify: func(cfg *Config) {
				if cfg.Terrain.GridFile != "caves.txt" {
					t.Errorf("expected grid file caves.txt, got %s", cfg.Terrain.GridFile)
				}
			},
			teardown: func() {
				*flagGrid = ""
			},
		},
		{
			name: "terrain flags",
			setup: func() {
				*flagResolution = 10
				*flagWallHeight = 0
				*flagSimplify = true
			},
			verify: func(cfg *Config) {
				if cfg.Terrain.Resolution != 10 {
					t.Errorf("expected resolution 10, got %v", cfg.Terrain.Resolution)
				}
				if cfg.Terrain.WallHeight != 0 {
					t.Errorf("expected wall height 0, got %v", cfg.Terrain.WallHeight)
				}
				if !cfg.Terrain.SimplifyOutlines {
					t.Error("expected simplification enabled with simplify flag")
				}
			},
			teardown: func() {
				*flagResolution = 0
				*flagWallHeight = -1
				*flagSimplify = false
			},
		},
		{
			name: "fullscreen flag",
			setup: func() {
				*flagFullscreen = true
			},
			verify: func(cfg *Config) {
				if !cfg.Viewer.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() {
				*flagFullscreen = false
			},
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(cfg *Config) {
				if cfg.Viewer.Width != 2560 {
					t.Errorf("expected width 2560, got %d", cfg.Viewer.Width)
				}
				if cfg.Viewer.Height != 1440 {
					t.Errorf("expected height 1440, got %d", cfg.Viewer.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			tt.setup()
			defer tt.teardown()

			// Apply flags to default config
			cfg := Default()
			applyFlags(cfg)

			// Verify
			tt.verify(cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
terrain:
  resolution: 4
  wall_height: 20
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Set flag to override config file
	*flagConfig = configPath
	*flagResolution = 6
	defer func() {
		*flagConfig = ""
		*flagResolution = 0
	}()

	// Load config
	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Resolution should be from flag (6), not file (4)
	if cfg.Terrain.Resolution != 6 {
		t.Errorf("expected resolution 6 from flag, got %v", cfg.Terrain.Resolution)
	}

	// Wall height should be from file (20) since no flag override
	if cfg.Terrain.WallHeight != 20 {
		t.Errorf("expected wall height 20 from file, got %v", cfg.Terrain.WallHeight)
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Terrain.WallHeight = 12
	cfg.Preview.Palette = []string{"white"}
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to reload saved config: %v", err)
	}
	if loaded.Terrain.WallHeight != 12 {
		t.Errorf("expected wall height 12, got %v", loaded.Terrain.WallHeight)
	}
	if len(loaded.Preview.Palette) != 1 || loaded.Preview.Palette[0] != "white" {
		t.Errorf("expected palette [white], got %v", loaded.Preview.Palette)
	}
}

func TestSaveToRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := Default()
	cfg.Terrain.Resolution = 0
	if err := cfg.SaveTo(path); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("invalid config should not be written")
	}
}

func TestSave(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("APPDATA", t.TempDir())

	path, err := Default().Save()
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if filepath.Dir(path) != ConfigDir() {
		t.Errorf("expected file in %s, got %s", ConfigDir(), path)
	}
	if _, err := LoadFile(path); err != nil {
		t.Errorf("saved config does not load: %v", err)
	}
}

func TestBuilderOptions(t *testing.T) {
	cfg := Default()
	cfg.Terrain.Resolution = 3
	cfg.Terrain.WallHeight = 7

	grid, err := terrain.NewFilledGrid(2, 2)
	if err != nil {
		t.Fatalf("NewFilledGrid failed: %v", err)
	}
	b, err := terrain.NewBuilder(grid, cfg.Terrain.BuilderOptions(nil)...)
	if err != nil {
		t.Fatalf("NewBuilder failed: %v", err)
	}
	if b.Resolution() != 3 {
		t.Errorf("expected resolution 3, got %v", b.Resolution())
	}
	if b.WallHeight() != 7 {
		t.Errorf("expected wall height 7, got %v", b.WallHeight())
	}
}
