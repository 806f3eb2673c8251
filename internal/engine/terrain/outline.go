package terrain

import (
	"github.com/Faultbox/grubs-terrain/pkg/math"
)

// noVertex marks a failed neighbour search.
const noVertex = -1

// collinearEpsilon is the tolerance used when dropping straight-run outline points.
const collinearEpsilon = 1e-4

// tracer walks the vertex/triangle adjacency of one floor rebuild.
type tracer struct {
	floor   *floorData
	checked []bool
}

func newTracer(floor *floorData) *tracer {
	checked := make([]bool, len(floor.vertices))
	copy(checked, floor.enclosed)
	return &tracer{floor: floor, checked: checked}
}

// traceOutlines extracts the closed boundary loops of the floor. Each loop starts and
// ends with the same vertex index.
func traceOutlines(floor *floorData) [][]int {
	t := newTracer(floor)

	var loops [][]int
	for v := range floor.vertices {
		if t.checked[v] {
			continue
		}

		next := t.connectedOutlineVertex(v)
		t.checked[v] = true
		if next == noVertex {
			continue
		}

		loop := []int{v}
		for next != noVertex {
			loop = append(loop, next)
			t.checked[next] = true
			next = t.connectedOutlineVertex(next)
		}
		loops = append(loops, append(loop, v))
	}
	return loops
}

// connectedOutlineVertex returns the first unchecked vertex sharing an outline edge
// with v, scanning v's triangles in creation order and each triangle's corners in
// stored order. It returns noVertex when there is none.
func (t *tracer) connectedOutlineVertex(v int) int {
	for _, ti := range t.floor.adjacency[v] {
		for _, w := range t.floor.triangles[ti] {
			if w == v || t.checked[w] {
				continue
			}
			if t.floor.isOutlineEdge(v, w) {
				return w
			}
		}
	}
	return noVertex
}

// isOutlineEdge reports whether exactly one triangle contains both a and b.
func (f *floorData) isOutlineEdge(a, b int) bool {
	shared := 0
	for _, ti := range f.adjacency[a] {
		if f.triangles[ti].Contains(b) {
			shared++
			if shared > 1 {
				return false
			}
		}
	}
	return shared == 1
}

// simplifyOutline drops loop points lying on a straight run between their neighbours.
// The result is still closed. Loops that would collapse below a triangle are
// returned unchanged.
func simplifyOutline(loop []int, vertices []math.Vec3) []int {
	n := len(loop) - 1 // distinct points, closing duplicate excluded
	if n < 3 {
		return loop
	}

	kept := make([]int, 0, n+1)
	for i := range n {
		prev := loop[(i+n-1)%n]
		next := loop[(i+1)%n]
		if !math.Collinear(vertices[prev], vertices[loop[i]], vertices[next], collinearEpsilon) {
			kept = append(kept, loop[i])
		}
	}
	if len(kept) < 3 {
		return loop
	}
	return append(kept, kept[0])
}
