package terrain

import (
	"github.com/Faultbox/grubs-terrain/pkg/math"
)

// cellPoint names one of the 8 candidate points of a cell.
type cellPoint uint8

const (
	pointTopLeft cellPoint = iota
	pointTopRight
	pointBottomRight
	pointBottomLeft
	pointMiddleTop
	pointMiddleRight
	pointMiddleBottom
	pointMiddleLeft
)

// latticeOffset places each candidate point on the doubled lattice, where samples
// sit on even coordinates and edge midpoints on odd ones.
var latticeOffset = [8][2]int{
	pointTopLeft:      {0, 0},
	pointTopRight:     {2, 0},
	pointBottomRight:  {2, 2},
	pointBottomLeft:   {0, 2},
	pointMiddleTop:    {1, 0},
	pointMiddleRight:  {2, 1},
	pointMiddleBottom: {1, 2},
	pointMiddleLeft:   {0, 1},
}

// caseTable lists the fan of candidate points emitted for each case code.
var caseTable = [16][]cellPoint{
	0: nil,
	1: {pointMiddleLeft, pointMiddleBottom, pointBottomLeft},
	2: {pointBottomRight, pointMiddleBottom, pointMiddleRight},
	3: {pointMiddleRight, pointBottomRight, pointBottomLeft, pointMiddleLeft},
	4: {pointTopRight, pointMiddleRight, pointMiddleTop},
	5: {pointMiddleTop, pointTopRight, pointMiddleRight, pointMiddleBottom, pointBottomLeft, pointMiddleLeft},
	6: {pointMiddleTop, pointTopRight, pointBottomRight, pointMiddleBottom},
	7: {pointMiddleTop, pointTopRight, pointBottomRight, pointBottomLeft, pointMiddleLeft},
	8: {pointTopLeft, pointMiddleTop, pointMiddleLeft},
	9: {pointTopLeft, pointMiddleTop, pointMiddleBottom, pointBottomLeft},
	10: {pointTopLeft, pointMiddleTop, pointMiddleRight, pointBottomRight, pointMiddleBottom, pointMiddleLeft},
	11: {pointTopLeft, pointMiddleTop, pointMiddleRight, pointBottomRight, pointBottomLeft},
	12: {pointTopLeft, pointTopRight, pointMiddleRight, pointMiddleLeft},
	13: {pointTopLeft, pointTopRight, pointMiddleRight, pointMiddleBottom, pointBottomLeft},
	14: {pointTopLeft, pointTopRight, pointBottomRight, pointMiddleBottom, pointMiddleLeft},
	15: {pointTopLeft, pointTopRight, pointBottomRight, pointBottomLeft},
}

// CasePoints returns the number of fan points the table emits for a case code.
func CasePoints(code int) int {
	if code < 0 || code >= len(caseTable) {
		return 0
	}
	return len(caseTable[code])
}

// fullCellsForInterior is the number of fully-solid cells that must share a corner
// before the corner can have no outline edge.
const fullCellsForInterior = 4

// floorData is the output of one march: the floor buffers plus the adjacency
// state the outline tracer consumes.
type floorData struct {
	vertices  []math.Vec3
	triangles []Triangle
	adjacency [][]int // vertex index -> triangle indices in creation order
	enclosed  []bool  // vertex index -> excluded from tracing
}

// EnclosedCount returns the number of vertices excluded from outline tracing.
func (f *floorData) EnclosedCount() int {
	n := 0
	for _, e := range f.enclosed {
		if e {
			n++
		}
	}
	return n
}

// marcher holds the per-rebuild dedup state.
type marcher struct {
	resolution float32
	latticeW   int
	slots      []int // lattice key -> vertex index, -1 until assigned
	fullCells  []uint8
	out        *floorData
}

// march triangulates every cell of the grid. The grid must already be validated.
func march(g Grid, resolution float32) *floorData {
	width, height := g.Width(), g.Height()
	latticeW := 2*width - 1
	latticeH := 2*height - 1

	m := &marcher{
		resolution: resolution,
		latticeW:   latticeW,
		slots:      make([]int, latticeW*latticeH),
		out:        &floorData{},
	}
	for i := range m.slots {
		m.slots[i] = -1
	}

	var fan [6]int
	for x := 0; x < width-1; x++ {
		for z := 0; z < height-1; z++ {
			code := Classify(
				g.Solid(x, z),
				g.Solid(x+1, z),
				g.Solid(x+1, z+1),
				g.Solid(x, z+1),
			)
			points := caseTable[code]
			if len(points) == 0 {
				continue
			}

			indices := fan[:len(points)]
			for i, p := range points {
				indices[i] = m.vertex(x, z, p)
			}
			m.fanTriangles(indices)

			if code == CaseFull {
				for _, v := range indices {
					m.fullCells[v]++
				}
			}
		}
	}

	m.out.enclosed = make([]bool, len(m.out.vertices))
	for v, n := range m.fullCells {
		m.out.enclosed[v] = n >= fullCellsForInterior
	}
	return m.out
}

// vertex returns the vertex index of candidate point p of cell (x, z), appending
// the position to the vertex buffer the first time its lattice location is seen.
func (m *marcher) vertex(x, z int, p cellPoint) int {
	off := latticeOffset[p]
	lx := 2*x + off[0]
	lz := 2*z + off[1]
	key := lz*m.latticeW + lx

	if idx := m.slots[key]; idx != -1 {
		return idx
	}

	half := m.resolution * 0.5
	idx := len(m.out.vertices)
	m.out.vertices = append(m.out.vertices, math.Vec3{
		X: float32(lx) * half,
		Y: 0,
		Z: float32(lz) * half,
	})
	m.out.adjacency = append(m.out.adjacency, nil)
	m.fullCells = append(m.fullCells, 0)
	m.slots[key] = idx
	return idx
}

// fanTriangles emits (p0,p1,p2), (p0,p2,p3), ... for an ordered point list.
func (m *marcher) fanTriangles(indices []int) {
	for i := 2; i < len(indices); i++ {
		m.addTriangle(Triangle{indices[0], indices[i-1], indices[i]})
	}
}

func (m *marcher) addTriangle(t Triangle) {
	ti := len(m.out.triangles)
	m.out.triangles = append(m.out.triangles, t)
	for _, v := range t {
		m.out.adjacency[v] = append(m.out.adjacency[v], ti)
	}
}
