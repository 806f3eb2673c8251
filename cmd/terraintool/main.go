// terraintool is a CLI utility for inspecting, converting and exporting terrain grids.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/Faultbox/grubs-terrain/internal/config"
	"github.com/Faultbox/grubs-terrain/internal/engine/terrain"
	"github.com/Faultbox/grubs-terrain/internal/logger"
	"github.com/Faultbox/grubs-terrain/internal/preview"
	"github.com/Faultbox/grubs-terrain/pkg/formats"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "info":
		cmdInfo(args)
	case "outlines", "ol":
		cmdOutlines(args)
	case "obj", "export":
		cmdOBJ(args)
	case "preview", "view":
		cmdPreview(args)
	case "convert":
		cmdConvert(args)
	case "config":
		cmdConfig(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`terraintool - terrain grid utility

Usage:
  terraintool <command> [options] <grid>

Commands:
  info <grid>                  Show grid and mesh statistics
  outlines <grid>              Print traced outline loops
  obj <grid> [output.obj]      Export floor and walls as Wavefront OBJ
  preview <grid>               Browse the grid and outlines in the terminal
  convert <input> <output>     Convert between text and .tgrd grids
  config [-o file]             Write the effective config (default: user config dir)

Mesh options (info, outlines, obj, preview, config):
  -config <file>               Config file (default: ./terrain.yaml)
  -resolution <n>              World units between grid samples
  -wall-height <n>             Wall extrusion height
  -simplify                    Drop collinear outline points
  -debug                       Enable debug logging

Examples:
  terraintool info level.tgrd
  terraintool outlines -simplify level.txt
  terraintool obj -wall-height 20 level.tgrd level.obj
  terraintool convert level.txt level.tgrd
  terraintool config -simplify -o terrain.yaml`)
}

// meshFlags are the options shared by every command that builds meshes.
type meshFlags struct {
	fs         *flag.FlagSet
	config     *string
	resolution *float64
	wallHeight *float64
	simplify   *bool
	debug      *bool
}

func newMeshFlags(name string) *meshFlags {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	return &meshFlags{
		fs:         fs,
		config:     fs.String("config", "", "Path to config file"),
		resolution: fs.Float64("resolution", 0, "World units between grid samples"),
		wallHeight: fs.Float64("wall-height", -1, "Wall extrusion height"),
		simplify:   fs.Bool("simplify", false, "Drop collinear outline points before extrusion"),
		debug:      fs.Bool("debug", false, "Enable debug logging"),
	}
}

// loadConfig merges the config file with the command's overrides.
func (m *meshFlags) loadConfig() *config.Config {
	cfg, err := config.LoadFile(*m.config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if *m.resolution > 0 {
		cfg.Terrain.Resolution = float32(*m.resolution)
	}
	if *m.wallHeight >= 0 {
		cfg.Terrain.WallHeight = float32(*m.wallHeight)
	}
	if *m.simplify {
		cfg.Terrain.SimplifyOutlines = true
	}
	if *m.debug {
		cfg.Logging.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// build loads a grid and runs both mesh passes.
func build(path string, cfg *config.Config) (*terrain.BoolGrid, *terrain.Builder, *terrain.Mesh, *terrain.Mesh) {
	grid, err := terrain.LoadGridFile(path)
	if err != nil {
		fatal(err)
	}
	logger.Debug("grid loaded",
		zap.String("path", path),
		zap.Int("width", grid.Width()),
		zap.Int("height", grid.Height()),
		zap.Int("solid", grid.SolidCount()),
	)
	b, err := terrain.NewBuilder(grid, cfg.Terrain.BuilderOptions(logger.Named("terrain"))...)
	if err != nil {
		fatal(err)
	}
	floor, walls, err := b.Rebuild()
	if err != nil {
		fatal(err)
	}
	if skipped := b.Stats().SkippedOutline; skipped > 0 {
		logger.Warn("degenerate outlines skipped", zap.Int("count", skipped))
	}
	return grid, b, floor, walls
}

func initConsoleLogger(cfg *config.Config) {
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func cmdInfo(args []string) {
	m := newMeshFlags("info")
	m.fs.Parse(args)

	if m.fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: terraintool info [options] <grid>")
		os.Exit(1)
	}

	cfg := m.loadConfig()
	initConsoleLogger(cfg)
	defer logger.Sync()

	path := m.fs.Arg(0)
	grid, b, floor, walls := build(path, cfg)
	stats := b.Stats()

	total := grid.Width() * grid.Height()
	fmt.Printf("Grid:        %s\n", path)
	fmt.Printf("Size:        %d x %d\n", grid.Width(), grid.Height())
	fmt.Printf("Solid:       %d / %d (%.1f%%)\n", grid.SolidCount(), total, 100*float64(grid.SolidCount())/float64(total))
	fmt.Printf("Resolution:  %g\n", b.Resolution())
	fmt.Printf("Wall height: %g\n", b.WallHeight())
	fmt.Println()
	fmt.Println("Floor:")
	fmt.Printf("  Vertices:  %d (%d enclosed)\n", floor.VertexCount(), stats.Enclosed)
	fmt.Printf("  Triangles: %d\n", floor.TriangleCount())
	fmt.Printf("  Bounds:    %v - %v\n", floor.Bounds.Min, floor.Bounds.Max)
	fmt.Println("Walls:")
	fmt.Printf("  Outlines:  %d\n", stats.Outlines)
	fmt.Printf("  Vertices:  %d\n", walls.VertexCount())
	fmt.Printf("  Triangles: %d\n", walls.TriangleCount())
	if stats.SkippedOutline > 0 {
		fmt.Printf("  Skipped:   %d degenerate outline(s)\n", stats.SkippedOutline)
	}
}

func cmdOutlines(args []string) {
	m := newMeshFlags("outlines")
	indices := m.fs.Bool("indices", false, "Print floor vertex indices instead of positions")
	m.fs.Parse(args)

	if m.fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: terraintool outlines [options] <grid>")
		os.Exit(1)
	}

	cfg := m.loadConfig()
	initConsoleLogger(cfg)
	defer logger.Sync()

	_, b, _, _ := build(m.fs.Arg(0), cfg)

	if *indices {
		for i, loop := range b.Outlines() {
			parts := make([]string, len(loop))
			for j, v := range loop {
				parts[j] = fmt.Sprint(v)
			}
			fmt.Printf("loop %d (%d entries): %s\n", i, len(loop), strings.Join(parts, " "))
		}
		return
	}

	for i, loop := range b.OutlinePositions() {
		fmt.Printf("loop %d (%d entries)\n", i, len(loop))
		for _, p := range loop {
			fmt.Printf("  %g %g %g\n", p.X, p.Y, p.Z)
		}
	}
}

func cmdOBJ(args []string) {
	m := newMeshFlags("obj")
	floorOnly := m.fs.Bool("floor-only", false, "Skip the wall mesh")
	m.fs.Parse(args)

	if m.fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: terraintool obj [options] <grid> [output.obj]")
		os.Exit(1)
	}

	cfg := m.loadConfig()
	initConsoleLogger(cfg)
	defer logger.Sync()

	input := m.fs.Arg(0)
	output := m.fs.Arg(1)
	if output == "" {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + ".obj"
	}

	_, _, floor, walls := build(input, cfg)

	groups := []formats.OBJGroup{objGroup("floor", floor)}
	if !*floorOnly {
		groups = append(groups, objGroup("walls", walls))
	}

	f, err := os.Create(output)
	if err != nil {
		fatal(err)
	}
	if err := formats.WriteOBJ(f, groups...); err != nil {
		f.Close()
		fatal(err)
	}
	if err := f.Close(); err != nil {
		fatal(err)
	}

	logger.Info("exported mesh",
		zap.String("path", output),
		zap.Int("floor_triangles", floor.TriangleCount()),
		zap.Int("wall_triangles", walls.TriangleCount()),
	)
	fmt.Fprintf(os.Stderr, "Wrote %s\n", output)
}

func objGroup(name string, m *terrain.Mesh) formats.OBJGroup {
	positions := make([][3]float32, len(m.Render.Vertices))
	for i, v := range m.Render.Vertices {
		positions[i] = v.Position
	}
	return formats.OBJGroup{Name: name, Positions: positions, Indices: m.Render.Indices}
}

func cmdPreview(args []string) {
	m := newMeshFlags("preview")
	m.fs.Parse(args)

	if m.fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: terraintool preview [options] <grid>")
		os.Exit(1)
	}

	cfg := m.loadConfig()
	// The terminal belongs to the preview, so only the log file gets output.
	if err := logger.InitWithFileConfig(cfg.Logging.Level, logger.DefaultFileConfig(cfg.Logging.LogFile), false); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	palette, err := preview.ParsePalette(cfg.Preview.Palette)
	if err != nil {
		fatal(err)
	}
	grid, b, _, _ := build(m.fs.Arg(0), cfg)

	screen, err := tcell.NewScreen()
	if err != nil {
		fatal(err)
	}
	if err := screen.Init(); err != nil {
		fatal(err)
	}
	defer screen.Fini()

	v := preview.New(screen, preview.Options{
		ShowSamples:  cfg.Preview.ShowSamples,
		ShowOutlines: cfg.Preview.ShowOutlines,
		Palette:      palette,
	})
	v.SetTerrain(grid, b)
	preview.Run(screen, v)
}

func cmdConvert(args []string) {
	fs := flag.NewFlagSet("convert", flag.ExitOnError)
	fs.Parse(args)

	if fs.NArg() < 2 {
		fmt.Fprintln(os.Stderr, "Usage: terraintool convert <input> <output>")
		os.Exit(1)
	}
	input, output := fs.Arg(0), fs.Arg(1)

	grid, err := formats.ParseGridFile(input)
	if err != nil {
		fatal(err)
	}

	var data []byte
	if strings.EqualFold(filepath.Ext(output), ".tgrd") {
		data, err = formats.EncodeTGRD(grid)
		if err != nil {
			fatal(err)
		}
	} else {
		data = formats.FormatGridText(grid)
	}

	if err := os.WriteFile(output, data, 0o644); err != nil {
		fatal(err)
	}
	fmt.Fprintf(os.Stderr, "Converted %s -> %s (%dx%d, %d solid)\n", input, output, grid.Width, grid.Height, grid.CountSolid())
}

func cmdConfig(args []string) {
	m := newMeshFlags("config")
	output := m.fs.String("o", "", "Output file (default: user config dir)")
	m.fs.Parse(args)

	cfg := m.loadConfig()

	path := *output
	var err error
	if path == "" {
		path, err = cfg.Save()
	} else {
		err = cfg.SaveTo(path)
	}
	if err != nil {
		fatal(err)
	}
	fmt.Fprintf(os.Stderr, "Wrote %s\n", path)
}
