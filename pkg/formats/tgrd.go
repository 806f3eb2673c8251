package formats

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// TGRD format errors.
var (
	ErrInvalidTGRDMagic       = errors.New("invalid TGRD magic: expected 'TGRD'")
	ErrUnsupportedTGRDVersion = errors.New("unsupported TGRD version")
	ErrTruncatedTGRDData      = errors.New("truncated TGRD data")
	ErrInvalidGridDimensions  = errors.New("invalid grid dimensions")
)

const (
	tgrdMagic      = "TGRD"
	tgrdHeaderSize = 14 // magic + version + width + height
	maxGridSide    = 8192
)

// TGRDVersion represents the TGRD file version.
type TGRDVersion struct {
	Major uint8
	Minor uint8
}

// String returns the version as "Major.Minor".
func (v TGRDVersion) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// CurrentTGRDVersion is written by EncodeTGRD.
var CurrentTGRDVersion = TGRDVersion{Major: 1, Minor: 0}

// TerrainGrid is a parsed occupancy grid. Cells are stored row-major by Z.
type TerrainGrid struct {
	Version TGRDVersion
	Width   uint32
	Height  uint32
	Cells   []bool
}

// NewTerrainGrid allocates an empty grid.
func NewTerrainGrid(width, height uint32) (*TerrainGrid, error) {
	if err := checkDimensions(width, height); err != nil {
		return nil, err
	}
	return &TerrainGrid{
		Version: CurrentTGRDVersion,
		Width:   width,
		Height:  height,
		Cells:   make([]bool, int(width)*int(height)),
	}, nil
}

// IsSolid returns the cell at (x, z). Out-of-range cells are empty.
func (g *TerrainGrid) IsSolid(x, z int) bool {
	if x < 0 || z < 0 || x >= int(g.Width) || z >= int(g.Height) {
		return false
	}
	return g.Cells[z*int(g.Width)+x]
}

// CountSolid returns the number of solid cells.
func (g *TerrainGrid) CountSolid() int {
	n := 0
	for _, c := range g.Cells {
		if c {
			n++
		}
	}
	return n
}

func checkDimensions(width, height uint32) error {
	if width == 0 || height == 0 || width > maxGridSide || height > maxGridSide {
		return fmt.Errorf("%w: %dx%d", ErrInvalidGridDimensions, width, height)
	}
	return nil
}

// rowBytes is the packed size of one row, one bit per cell, LSB first.
func rowBytes(width uint32) int {
	return int(width+7) / 8
}

// ParseTGRD parses a TGRD file from raw bytes.
func ParseTGRD(data []byte) (*TerrainGrid, error) {
	if len(data) < tgrdHeaderSize {
		return nil, ErrTruncatedTGRDData
	}

	if string(data[0:4]) != tgrdMagic {
		return nil, ErrInvalidTGRDMagic
	}

	// Version is stored as [major, minor]
	version := TGRDVersion{
		Major: data[4],
		Minor: data[5],
	}
	if version.Major != 1 {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedTGRDVersion, version)
	}

	r := bytes.NewReader(data[6:])

	var width, height uint32
	if err := binary.Read(r, binary.LittleEndian, &width); err != nil {
		return nil, fmt.Errorf("%w: reading width", ErrTruncatedTGRDData)
	}
	if err := binary.Read(r, binary.LittleEndian, &height); err != nil {
		return nil, fmt.Errorf("%w: reading height", ErrTruncatedTGRDData)
	}

	grid, err := NewTerrainGrid(width, height)
	if err != nil {
		return nil, err
	}
	grid.Version = version

	row := make([]byte, rowBytes(width))
	for z := range int(height) {
		if _, err := io.ReadFull(r, row); err != nil {
			return nil, fmt.Errorf("%w: reading row %d", ErrTruncatedTGRDData, z)
		}
		for x := range int(width) {
			grid.Cells[z*int(width)+x] = row[x/8]&(1<<(x%8)) != 0
		}
	}

	return grid, nil
}

// ParseTGRDFile parses a TGRD file from disk.
func ParseTGRDFile(path string) (*TerrainGrid, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading TGRD file: %w", err)
	}
	return ParseTGRD(data)
}

// EncodeTGRD serializes a grid in the current TGRD version.
func EncodeTGRD(g *TerrainGrid) ([]byte, error) {
	if err := checkDimensions(g.Width, g.Height); err != nil {
		return nil, err
	}
	if len(g.Cells) != int(g.Width)*int(g.Height) {
		return nil, fmt.Errorf("%w: %d cells for %dx%d", ErrInvalidGridDimensions, len(g.Cells), g.Width, g.Height)
	}

	buf := new(bytes.Buffer)
	buf.WriteString(tgrdMagic)
	buf.WriteByte(CurrentTGRDVersion.Major)
	buf.WriteByte(CurrentTGRDVersion.Minor)
	binary.Write(buf, binary.LittleEndian, g.Width)
	binary.Write(buf, binary.LittleEndian, g.Height)

	row := make([]byte, rowBytes(g.Width))
	for z := range int(g.Height) {
		clear(row)
		for x := range int(g.Width) {
			if g.Cells[z*int(g.Width)+x] {
				row[x/8] |= 1 << (x % 8)
			}
		}
		buf.Write(row)
	}

	return buf.Bytes(), nil
}

// ParseGridFile loads a grid, choosing the parser by extension:
// .tgrd is binary, anything else is read as a text grid.
func ParseGridFile(path string) (*TerrainGrid, error) {
	if strings.EqualFold(filepath.Ext(path), ".tgrd") {
		return ParseTGRDFile(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading grid file: %w", err)
	}
	return ParseGridText(data)
}
