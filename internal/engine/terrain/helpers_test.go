package terrain

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/Faultbox/grubs-terrain/pkg/formats"
)

// gridFromRows builds a grid from text rows ('#' solid, '.' empty).
func gridFromRows(t *testing.T, rows ...string) *BoolGrid {
	t.Helper()
	tg, err := formats.ParseGridText([]byte(strings.Join(rows, "\n")))
	if err != nil {
		t.Fatalf("ParseGridText failed: %v", err)
	}
	g, err := FromTerrainGrid(tg)
	if err != nil {
		t.Fatalf("FromTerrainGrid failed: %v", err)
	}
	return g
}

// randomGrid fills roughly half of the samples using a fixed seed.
func randomGrid(t *testing.T, width, height int, seed int64) *BoolGrid {
	t.Helper()
	g, err := NewBoolGrid(width, height)
	if err != nil {
		t.Fatalf("NewBoolGrid failed: %v", err)
	}
	rng := rand.New(rand.NewSource(seed))
	for z := range height {
		for x := range width {
			if err := g.Set(x, z, rng.Intn(2) == 0); err != nil {
				t.Fatalf("Set failed: %v", err)
			}
		}
	}
	return g
}

func filledGrid(t *testing.T, width, height int) *BoolGrid {
	t.Helper()
	g, err := NewFilledGrid(width, height)
	if err != nil {
		t.Fatalf("NewFilledGrid failed: %v", err)
	}
	return g
}

func newTestBuilder(t *testing.T, g Grid, opts ...Option) *Builder {
	t.Helper()
	b, err := NewBuilder(g, opts...)
	if err != nil {
		t.Fatalf("NewBuilder failed: %v", err)
	}
	return b
}
