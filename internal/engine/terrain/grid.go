package terrain

import (
	"errors"
	"fmt"
	"hash/fnv"
)

// Grid errors.
var (
	ErrInvalidGrid = errors.New("invalid terrain grid")
)

// Grid is a read-only occupancy snapshot. Solid reports whether the sample at (x, z)
// is terrain. Callers only ask for x in [0, Width) and z in [0, Height); a read
// outside that range is a caller bug and implementations may answer anything.
type Grid interface {
	Width() int
	Height() int
	Solid(x, z int) bool
}

// BoolGrid is an in-memory Grid stored row-major by z.
type BoolGrid struct {
	width  int
	height int
	cells  []bool
}

// NewBoolGrid creates an empty grid of the given size.
func NewBoolGrid(width, height int) (*BoolGrid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: dimensions %dx%d", ErrInvalidGrid, width, height)
	}
	return &BoolGrid{
		width:  width,
		height: height,
		cells:  make([]bool, width*height),
	}, nil
}

// NewFilledGrid creates a grid with every sample set to solid.
func NewFilledGrid(width, height int) (*BoolGrid, error) {
	g, err := NewBoolGrid(width, height)
	if err != nil {
		return nil, err
	}
	for i := range g.cells {
		g.cells[i] = true
	}
	return g, nil
}

// Width returns the number of samples along X.
func (g *BoolGrid) Width() int { return g.width }

// Height returns the number of samples along Z.
func (g *BoolGrid) Height() int { return g.height }

// Solid returns the sample at (x, z). Out-of-range reads report empty; use At
// where the coordinates are not known to be valid.
func (g *BoolGrid) Solid(x, z int) bool {
	if !g.inBounds(x, z) {
		return false
	}
	return g.cells[z*g.width+x]
}

// At returns the sample at (x, z), failing with ErrInvalidGrid outside the grid.
func (g *BoolGrid) At(x, z int) (bool, error) {
	if !g.inBounds(x, z) {
		return false, fmt.Errorf("%w: sample (%d,%d) outside %dx%d", ErrInvalidGrid, x, z, g.width, g.height)
	}
	return g.cells[z*g.width+x], nil
}

// Set changes the sample at (x, z).
func (g *BoolGrid) Set(x, z int, solid bool) error {
	if !g.inBounds(x, z) {
		return fmt.Errorf("%w: sample (%d,%d) outside %dx%d", ErrInvalidGrid, x, z, g.width, g.height)
	}
	g.cells[z*g.width+x] = solid
	return nil
}

// SolidCount returns the number of solid samples.
func (g *BoolGrid) SolidCount() int {
	n := 0
	for _, c := range g.cells {
		if c {
			n++
		}
	}
	return n
}

func (g *BoolGrid) inBounds(x, z int) bool {
	return x >= 0 && z >= 0 && x < g.width && z < g.height
}

// validateGrid checks the dimensions a rebuild relies on.
func validateGrid(g Grid) error {
	if g == nil {
		return fmt.Errorf("%w: nil grid", ErrInvalidGrid)
	}
	if g.Width() <= 0 || g.Height() <= 0 {
		return fmt.Errorf("%w: dimensions %dx%d", ErrInvalidGrid, g.Width(), g.Height())
	}
	return nil
}

// fingerprint hashes the dimensions and occupancy of a grid snapshot.
func fingerprint(g Grid) uint64 {
	h := fnv.New64a()
	w, ht := g.Width(), g.Height()
	h.Write([]byte{byte(w), byte(w >> 8), byte(w >> 16), byte(w >> 24),
		byte(ht), byte(ht >> 8), byte(ht >> 16), byte(ht >> 24)})

	var packed byte
	var bits uint
	for z := range ht {
		for x := range w {
			if g.Solid(x, z) {
				packed |= 1 << bits
			}
			bits++
			if bits == 8 {
				h.Write([]byte{packed})
				packed, bits = 0, 0
			}
		}
	}
	if bits > 0 {
		h.Write([]byte{packed})
	}
	return h.Sum64()
}
