package formats

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidGridText is returned for malformed text grids.
var ErrInvalidGridText = errors.New("invalid text grid")

// ParseGridText parses a text grid. Each non-empty line is one Z row; '#' and '1'
// are solid, '.' and '0' are empty. Lines starting with ';' are comments.
func ParseGridText(data []byte) (*TerrainGrid, error) {
	var rows []string
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, ";") {
			continue
		}
		rows = append(rows, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidGridText, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrInvalidGridText)
	}

	width := len(rows[0])
	grid, err := NewTerrainGrid(uint32(width), uint32(len(rows)))
	if err != nil {
		return nil, err
	}

	for z, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d cells, expected %d", ErrInvalidGridText, z, len(row), width)
		}
		for x := range width {
			switch row[x] {
			case '#', '1':
				grid.Cells[z*width+x] = true
			case '.', '0':
			default:
				return nil, fmt.Errorf("%w: unexpected %q at (%d,%d)", ErrInvalidGridText, row[x], x, z)
			}
		}
	}

	return grid, nil
}

// FormatGridText renders a grid in the text format accepted by ParseGridText.
func FormatGridText(g *TerrainGrid) []byte {
	var buf bytes.Buffer
	for z := range int(g.Height) {
		for x := range int(g.Width) {
			if g.IsSolid(x, z) {
				buf.WriteByte('#')
			} else {
				buf.WriteByte('.')
			}
		}
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}
