package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagGrid       = flag.String("grid", "", "Terrain grid file (.tgrd or text)")
	flagResolution = flag.Float64("resolution", 0, "World units between grid samples")
	flagWallHeight = flag.Float64("wall-height", -1, "Wall extrusion height")
	flagSimplify   = flag.Bool("simplify", false, "Drop collinear outline points before extrusion")
	flagWireframe  = flag.Bool("wireframe", false, "Start in wireframe mode")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// Args returns the positional arguments left after flag parsing.
func Args() []string {
	return flag.Args()
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagGrid != "" {
		cfg.Terrain.GridFile = *flagGrid
	}
	if *flagResolution > 0 {
		cfg.Terrain.Resolution = float32(*flagResolution)
	}
	if *flagWallHeight >= 0 {
		cfg.Terrain.WallHeight = float32(*flagWallHeight)
	}
	if *flagSimplify {
		cfg.Terrain.SimplifyOutlines = true
	}
	if *flagWireframe {
		cfg.Viewer.Wireframe = true
	}
	if *flagWindowed {
		cfg.Viewer.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Viewer.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Viewer.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Viewer.Height = *flagHeight
	}
}
