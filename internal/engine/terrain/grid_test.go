package terrain

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/grubs-terrain/pkg/formats"
)

func TestNewBoolGrid_InvalidDimensions(t *testing.T) {
	for _, dims := range [][2]int{{0, 1}, {1, 0}, {-3, 4}} {
		if _, err := NewBoolGrid(dims[0], dims[1]); !errors.Is(err, ErrInvalidGrid) {
			t.Errorf("%v: expected ErrInvalidGrid, got %v", dims, err)
		}
	}
}

func TestBoolGrid_SetAndSolid(t *testing.T) {
	g, err := NewBoolGrid(4, 3)
	if err != nil {
		t.Fatalf("NewBoolGrid failed: %v", err)
	}

	if err := g.Set(3, 2, true); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if !g.Solid(3, 2) {
		t.Error("expected (3,2) to be solid")
	}
	if g.Solid(2, 3) {
		t.Error("expected out-of-range (2,3) to be empty")
	}
	if g.SolidCount() != 1 {
		t.Errorf("expected 1 solid sample, got %d", g.SolidCount())
	}

	if err := g.Set(4, 0, true); !errors.Is(err, ErrInvalidGrid) {
		t.Errorf("expected ErrInvalidGrid for out-of-range Set, got %v", err)
	}
	if err := g.Set(0, -1, true); !errors.Is(err, ErrInvalidGrid) {
		t.Errorf("expected ErrInvalidGrid for negative Set, got %v", err)
	}
}

func TestBoolGrid_At(t *testing.T) {
	g, err := NewBoolGrid(4, 3)
	if err != nil {
		t.Fatalf("NewBoolGrid failed: %v", err)
	}
	if err := g.Set(1, 2, true); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	solid, err := g.At(1, 2)
	if err != nil {
		t.Fatalf("At failed: %v", err)
	}
	if !solid {
		t.Error("expected (1,2) to be solid")
	}

	for _, p := range [][2]int{{4, 0}, {0, 3}, {-1, 1}, {2, -1}} {
		if _, err := g.At(p[0], p[1]); !errors.Is(err, ErrInvalidGrid) {
			t.Errorf("%v: expected ErrInvalidGrid, got %v", p, err)
		}
	}
}

func TestFingerprint(t *testing.T) {
	a := filledGrid(t, 9, 7)
	b := filledGrid(t, 9, 7)
	if fingerprint(a) != fingerprint(b) {
		t.Error("identical grids should share a fingerprint")
	}

	if err := b.Set(8, 6, false); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if fingerprint(a) == fingerprint(b) {
		t.Error("changed grid should change the fingerprint")
	}

	c := filledGrid(t, 7, 9)
	if fingerprint(a) == fingerprint(c) {
		t.Error("transposed dimensions should change the fingerprint")
	}
}

func TestTerrainGridRoundTrip(t *testing.T) {
	g := randomGrid(t, 13, 6, 99)

	tg, err := ToTerrainGrid(g)
	if err != nil {
		t.Fatalf("ToTerrainGrid failed: %v", err)
	}
	back, err := FromTerrainGrid(tg)
	if err != nil {
		t.Fatalf("FromTerrainGrid failed: %v", err)
	}
	if fingerprint(g) != fingerprint(back) {
		t.Error("grid changed after conversion")
	}
}

func TestFromTerrainGrid_Invalid(t *testing.T) {
	if _, err := FromTerrainGrid(nil); !errors.Is(err, ErrInvalidGrid) {
		t.Errorf("expected ErrInvalidGrid for nil, got %v", err)
	}
	bad := &formats.TerrainGrid{Width: 3, Height: 3, Cells: make([]bool, 4)}
	if _, err := FromTerrainGrid(bad); !errors.Is(err, ErrInvalidGrid) {
		t.Errorf("expected ErrInvalidGrid for short cells, got %v", err)
	}
}

func TestLoadGridFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "island.txt")
	content := "; test island\n.....\n.###.\n.....\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write grid: %v", err)
	}

	g, err := LoadGridFile(path)
	if err != nil {
		t.Fatalf("LoadGridFile failed: %v", err)
	}
	if g.Width() != 5 || g.Height() != 3 {
		t.Errorf("expected 5x3, got %dx%d", g.Width(), g.Height())
	}
	if g.SolidCount() != 3 {
		t.Errorf("expected 3 solid samples, got %d", g.SolidCount())
	}
}
