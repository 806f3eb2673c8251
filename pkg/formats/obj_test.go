package formats

import (
	"bytes"
	"strings"
	"testing"
)

func TestWriteOBJ(t *testing.T) {
	floor := OBJGroup{
		Name:      "floor",
		Positions: [][3]float32{{0, 0, 0}, {5, 0, 0}, {5, 0, 5}},
		Indices:   []uint32{0, 1, 2},
	}
	walls := OBJGroup{
		Name:      "walls",
		Positions: [][3]float32{{0, 0, 0}, {5, 0, 0}, {0, -50, 0}, {5, -50, 0}},
		Indices:   []uint32{0, 2, 3, 3, 1, 0},
	}

	var buf bytes.Buffer
	if err := WriteOBJ(&buf, floor, walls); err != nil {
		t.Fatalf("WriteOBJ failed: %v", err)
	}
	out := buf.String()

	if strings.Count(out, "\nv ") != 7 {
		t.Errorf("expected 7 vertex lines, got output:\n%s", out)
	}
	if !strings.Contains(out, "o floor\n") || !strings.Contains(out, "o walls\n") {
		t.Error("expected both object names")
	}
	if !strings.Contains(out, "f 1 2 3\n") {
		t.Error("expected floor face with one-based indices")
	}
	// Wall indices follow the three floor vertices.
	if !strings.Contains(out, "f 4 6 7\n") || !strings.Contains(out, "f 7 5 4\n") {
		t.Errorf("expected rebased wall faces, got output:\n%s", out)
	}
	if !strings.Contains(out, "v 0 -50 0\n") {
		t.Error("expected wall base vertex")
	}
}

func TestWriteOBJ_InvalidIndices(t *testing.T) {
	tests := []OBJGroup{
		{Name: "partial", Positions: [][3]float32{{0, 0, 0}}, Indices: []uint32{0, 0}},
		{Name: "missing", Positions: [][3]float32{{0, 0, 0}}, Indices: []uint32{0, 0, 4}},
	}

	for _, g := range tests {
		var buf bytes.Buffer
		if err := WriteOBJ(&buf, g); err == nil {
			t.Errorf("%s: expected error", g.Name)
		}
	}
}
