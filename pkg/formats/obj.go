package formats

import (
	"bufio"
	"fmt"
	"io"
)

// OBJGroup is one named object of a Wavefront OBJ export.
type OBJGroup struct {
	Name      string
	Positions [][3]float32
	Indices   []uint32 // triangle list, zero-based
}

// WriteOBJ writes the groups as a single Wavefront OBJ file. Face indices are
// rebased so every group keeps its own vertex range.
func WriteOBJ(w io.Writer, groups ...OBJGroup) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "# terrain export")

	base := uint32(1) // OBJ indices are one-based
	for _, g := range groups {
		if len(g.Indices)%3 != 0 {
			return fmt.Errorf("group %q: index count %d is not a multiple of 3", g.Name, len(g.Indices))
		}
		fmt.Fprintf(bw, "o %s\n", g.Name)
		for _, p := range g.Positions {
			fmt.Fprintf(bw, "v %g %g %g\n", p[0], p[1], p[2])
		}
		for i := 0; i < len(g.Indices); i += 3 {
			a, b, c := g.Indices[i], g.Indices[i+1], g.Indices[i+2]
			if int(max(a, b, c)) >= len(g.Positions) {
				return fmt.Errorf("group %q: face %d references missing vertex", g.Name, i/3)
			}
			fmt.Fprintf(bw, "f %d %d %d\n", a+base, b+base, c+base)
		}
		base += uint32(len(g.Positions))
	}

	return bw.Flush()
}
