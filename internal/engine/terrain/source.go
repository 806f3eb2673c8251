package terrain

import (
	"fmt"

	"github.com/Faultbox/grubs-terrain/pkg/formats"
)

// FromTerrainGrid copies a parsed grid file into a BoolGrid.
func FromTerrainGrid(tg *formats.TerrainGrid) (*BoolGrid, error) {
	if tg == nil {
		return nil, fmt.Errorf("%w: nil grid file", ErrInvalidGrid)
	}
	g, err := NewBoolGrid(int(tg.Width), int(tg.Height))
	if err != nil {
		return nil, err
	}
	if len(tg.Cells) != len(g.cells) {
		return nil, fmt.Errorf("%w: %d cells for %dx%d", ErrInvalidGrid, len(tg.Cells), tg.Width, tg.Height)
	}
	copy(g.cells, tg.Cells)
	return g, nil
}

// ToTerrainGrid snapshots any Grid into the file representation.
func ToTerrainGrid(g Grid) (*formats.TerrainGrid, error) {
	if err := validateGrid(g); err != nil {
		return nil, err
	}
	tg, err := formats.NewTerrainGrid(uint32(g.Width()), uint32(g.Height()))
	if err != nil {
		return nil, err
	}
	for z := range g.Height() {
		for x := range g.Width() {
			tg.Cells[z*g.Width()+x] = g.Solid(x, z)
		}
	}
	return tg, nil
}

// LoadGridFile reads a .tgrd or text grid from disk.
func LoadGridFile(path string) (*BoolGrid, error) {
	tg, err := formats.ParseGridFile(path)
	if err != nil {
		return nil, err
	}
	return FromTerrainGrid(tg)
}
