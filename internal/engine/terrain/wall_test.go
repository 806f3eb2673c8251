package terrain

import (
	"testing"

	"github.com/Faultbox/grubs-terrain/pkg/math"
)

func TestExtrudeWalls_Counts(t *testing.T) {
	vertices := []math.Vec3{
		{X: 0, Z: 0},
		{X: 5, Z: 0},
		{X: 5, Z: 5},
		{X: 0, Z: 5},
	}

	tests := []struct {
		name      string
		loops     [][]int
		vertices  int
		triangles int
		skipped   int
	}{
		{"closed square", [][]int{{0, 1, 2, 3, 0}}, 16, 8, 0},
		{"two loops", [][]int{{0, 1, 2, 0}, {0, 2, 3, 0}}, 24, 12, 0},
		{"single segment", [][]int{{0, 1}}, 4, 2, 0},
		{"degenerate", [][]int{{0}, {}}, 0, 0, 2},
		{"no loops", nil, 0, 0, 0},
	}

	for _, tc := range tests {
		w := extrudeWalls(tc.loops, vertices, DefaultUp, DefaultWallHeight)
		if len(w.vertices) != tc.vertices {
			t.Errorf("%s: expected %d vertices, got %d", tc.name, tc.vertices, len(w.vertices))
		}
		if len(w.triangles) != tc.triangles {
			t.Errorf("%s: expected %d triangles, got %d", tc.name, tc.triangles, len(w.triangles))
		}
		if w.skipped != tc.skipped {
			t.Errorf("%s: expected %d skipped, got %d", tc.name, tc.skipped, w.skipped)
		}
	}
}

func TestExtrudeWalls_SegmentLayout(t *testing.T) {
	vertices := []math.Vec3{
		{X: 0, Y: 0, Z: 0},
		{X: 5, Y: 0, Z: 0},
	}

	w := extrudeWalls([][]int{{0, 1}}, vertices, DefaultUp, 20)

	expected := []math.Vec3{
		{X: 0, Y: 0, Z: 0},   // top i
		{X: 5, Y: 0, Z: 0},   // top i+1
		{X: 0, Y: -20, Z: 0}, // bottom i
		{X: 5, Y: -20, Z: 0}, // bottom i+1
	}
	for i, want := range expected {
		if w.vertices[i] != want {
			t.Errorf("vertex %d: expected %v, got %v", i, want, w.vertices[i])
		}
	}

	// (top_i, bottom_i, bottom_i+1) and (bottom_i+1, top_i+1, top_i)
	if w.triangles[0] != (Triangle{0, 2, 3}) {
		t.Errorf("expected first triangle {0 2 3}, got %v", w.triangles[0])
	}
	if w.triangles[1] != (Triangle{3, 1, 0}) {
		t.Errorf("expected second triangle {3 1 0}, got %v", w.triangles[1])
	}
}

func TestExtrudeWalls_CustomUp(t *testing.T) {
	vertices := []math.Vec3{{X: 1, Y: 2, Z: 3}, {X: 4, Y: 2, Z: 3}}
	up := math.Vec3{X: 1}

	w := extrudeWalls([][]int{{0, 1}}, vertices, up, 10)

	if got, want := w.vertices[2], (math.Vec3{X: -9, Y: 2, Z: 3}); got != want {
		t.Errorf("expected bottom %v, got %v", want, got)
	}
}

func TestExtrudeWalls_IndexSpaceIndependent(t *testing.T) {
	floor := march(randomGrid(t, 12, 12, 2), DefaultResolution)
	loops := traceOutlines(floor)
	w := extrudeWalls(loops, floor.vertices, DefaultUp, DefaultWallHeight)

	segments := 0
	for _, loop := range loops {
		segments += len(loop) - 1
	}
	if len(w.vertices) != segments*4 {
		t.Errorf("expected %d wall vertices, got %d", segments*4, len(w.vertices))
	}
	for ti, tri := range w.triangles {
		for _, v := range tri {
			if v < 0 || v >= len(w.vertices) {
				t.Fatalf("wall triangle %d references vertex %d of %d", ti, v, len(w.vertices))
			}
		}
	}
}
