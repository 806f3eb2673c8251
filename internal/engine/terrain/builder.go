package terrain

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/grubs-terrain/pkg/math"
)

// Builder contract errors.
var (
	ErrMissingAdjacency = errors.New("wall model requested before a floor rebuild")
	ErrStaleAdjacency   = errors.New("grid changed since the last floor rebuild")
	ErrInvalidOption    = errors.New("invalid builder option")
)

// Defaults used when no option overrides them.
const (
	DefaultResolution float32 = 5
	DefaultWallHeight float32 = 50
)

// DefaultUp is the default extrusion axis; walls hang along -DefaultUp.
var DefaultUp = math.Vec3{X: 0, Y: 1, Z: 0}

// Option configures a Builder.
type Option func(*Builder)

// WithResolution sets the world size of one grid cell.
func WithResolution(r float32) Option {
	return func(b *Builder) { b.resolution = r }
}

// WithWallHeight sets how far walls extend below the floor.
func WithWallHeight(h float32) Option {
	return func(b *Builder) { b.wallHeight = h }
}

// WithUp sets the up direction. It is normalized by NewBuilder.
func WithUp(up math.Vec3) Option {
	return func(b *Builder) { b.up = up }
}

// WithOutlineSimplification drops collinear outline points before extrusion.
func WithOutlineSimplification(enabled bool) Option {
	return func(b *Builder) { b.simplify = enabled }
}

// WithLogger sets the logger used for rebuild diagnostics.
func WithLogger(log *zap.Logger) Option {
	return func(b *Builder) {
		if log != nil {
			b.log = log
		}
	}
}

// Builder rebuilds floor and wall meshes from a grid source.
//
// A Builder is not safe for concurrent use. Rebuilds mutate its buffers in place
// and must be serialized by the caller, normally on the simulation thread.
type Builder struct {
	grid       Grid
	resolution float32
	wallHeight float32
	up         math.Vec3
	simplify   bool
	log        *zap.Logger

	floor    *floorData
	snapshot uint64
	loops    [][]int
	stats    Stats
}

// NewBuilder creates a builder reading from grid.
func NewBuilder(grid Grid, opts ...Option) (*Builder, error) {
	b := &Builder{
		grid:       grid,
		resolution: DefaultResolution,
		wallHeight: DefaultWallHeight,
		up:         DefaultUp,
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}

	if b.resolution <= 0 {
		return nil, fmt.Errorf("%w: resolution %v", ErrInvalidOption, b.resolution)
	}
	if b.wallHeight < 0 {
		return nil, fmt.Errorf("%w: wall height %v", ErrInvalidOption, b.wallHeight)
	}
	if b.up.IsZero() {
		return nil, fmt.Errorf("%w: zero up vector", ErrInvalidOption)
	}
	b.up = b.up.Normalize()

	return b, nil
}

// Resolution returns the world size of one grid cell.
func (b *Builder) Resolution() float32 { return b.resolution }

// WallHeight returns the wall extrusion height.
func (b *Builder) WallHeight() float32 { return b.wallHeight }

// GenerateFloorModel discards all previous state and triangulates the current grid.
// The returned mesh is owned by the caller.
func (b *Builder) GenerateFloorModel() (*Mesh, error) {
	b.floor = nil
	b.loops = nil
	b.stats = Stats{}

	if err := validateGrid(b.grid); err != nil {
		return nil, err
	}

	width, height := b.grid.Width(), b.grid.Height()
	floor := march(b.grid, b.resolution)

	b.floor = floor
	b.snapshot = fingerprint(b.grid)
	b.stats = Stats{
		GridWidth:  width,
		GridHeight: height,
		Vertices:   len(floor.vertices),
		Triangles:  len(floor.triangles),
		Enclosed:   floor.EnclosedCount(),
	}

	b.log.Debug("floor rebuilt",
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Int("vertices", b.stats.Vertices),
		zap.Int("triangles", b.stats.Triangles),
		zap.Int("enclosed", b.stats.Enclosed),
	)

	return assembleMesh(floor.vertices, floor.triangles, floorBounds(width, height, b.resolution)), nil
}

// GenerateWallModel traces the outline of the last floor rebuild and extrudes it.
// It fails with ErrMissingAdjacency when no floor rebuild happened and with
// ErrStaleAdjacency when the grid changed since then.
func (b *Builder) GenerateWallModel() (*Mesh, error) {
	if b.floor == nil {
		return nil, ErrMissingAdjacency
	}
	if err := validateGrid(b.grid); err != nil {
		return nil, err
	}
	if fingerprint(b.grid) != b.snapshot {
		return nil, ErrStaleAdjacency
	}

	loops := traceOutlines(b.floor)
	if b.simplify {
		for i, loop := range loops {
			loops[i] = simplifyOutline(loop, b.floor.vertices)
		}
	}
	b.loops = loops

	walls := extrudeWalls(loops, b.floor.vertices, b.up, b.wallHeight)
	if walls.skipped > 0 {
		b.log.Debug("skipped degenerate outlines", zap.Int("count", walls.skipped))
	}

	b.stats.Outlines = len(loops)
	b.stats.WallVertices = len(walls.vertices)
	b.stats.WallTriangles = len(walls.triangles)
	b.stats.SkippedOutline = walls.skipped

	b.log.Debug("walls rebuilt",
		zap.Int("outlines", len(loops)),
		zap.Int("vertices", len(walls.vertices)),
		zap.Int("triangles", len(walls.triangles)),
	)

	bounds := wallBounds(b.grid.Width(), b.grid.Height(), b.resolution, b.up, b.wallHeight)
	return assembleMesh(walls.vertices, walls.triangles, bounds), nil
}

// Rebuild regenerates the floor and then the walls of the current grid.
func (b *Builder) Rebuild() (floor, walls *Mesh, err error) {
	floor, err = b.GenerateFloorModel()
	if err != nil {
		return nil, nil, fmt.Errorf("floor: %w", err)
	}
	walls, err = b.GenerateWallModel()
	if err != nil {
		return nil, nil, fmt.Errorf("walls: %w", err)
	}
	return floor, walls, nil
}

// Outlines returns the loops traced by the last GenerateWallModel call.
// Each loop is a list of floor vertex indices whose first entry is repeated last.
func (b *Builder) Outlines() [][]int {
	out := make([][]int, len(b.loops))
	for i, loop := range b.loops {
		out[i] = append([]int(nil), loop...)
	}
	return out
}

// OutlinePositions returns the world positions of each traced loop.
func (b *Builder) OutlinePositions() [][]math.Vec3 {
	if b.floor == nil {
		return nil
	}
	out := make([][]math.Vec3, len(b.loops))
	for i, loop := range b.loops {
		pts := make([]math.Vec3, len(loop))
		for j, v := range loop {
			pts[j] = b.floor.vertices[v]
		}
		out[i] = pts
	}
	return out
}

// Stats returns counters from the most recent rebuild.
func (b *Builder) Stats() Stats {
	return b.stats
}
