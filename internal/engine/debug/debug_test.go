package debug

import (
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Faultbox/grubs-terrain/internal/engine/terrain"
)

func TestBoundsLines(t *testing.T) {
	b := terrain.Bounds{Min: [3]float32{0, -10, 0}, Max: [3]float32{20, 0, 15}}

	lines := BoundsLines(b, 1)
	if len(lines) != BoundsVertexCount*3 {
		t.Fatalf("expected %d floats, got %d", BoundsVertexCount*3, len(lines))
	}

	for i := 0; i < len(lines); i += 3 {
		x, y, z := lines[i], lines[i+1], lines[i+2]
		if (x != -1 && x != 21) || (y != -11 && y != 1) || (z != -1 && z != 16) {
			t.Errorf("vertex %d (%v, %v, %v) is not a padded corner", i/3, x, y, z)
		}
	}
}

func fixedCapture(dir string) *ScreenshotCapture {
	sc := NewScreenshotCapture(dir, "terrain")
	sc.now = func() time.Time { return time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC) }
	return sc
}

func TestScreenshotFilename(t *testing.T) {
	sc := fixedCapture("shots")
	want := filepath.Join("shots", "terrain_2024-03-09_14-05-07.png")
	if got := sc.Filename(); got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestCaptureFromPixels(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	sc := fixedCapture(dir)

	// 1x2 image: bottom row red, top row blue in GL order.
	pixels := []byte{
		255, 0, 0, 255,
		0, 0, 255, 255,
	}
	path, err := sc.CaptureFromPixels(pixels, 1, 2)
	if err != nil {
		t.Fatalf("CaptureFromPixels failed: %v", err)
	}
	if !strings.HasPrefix(path, dir) {
		t.Errorf("expected file in %s, got %s", dir, path)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening screenshot: %v", err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decoding screenshot: %v", err)
	}
	if r, _, b, _ := img.At(0, 0).RGBA(); r != 0 || b == 0 {
		t.Error("expected the top row to be blue after flipping")
	}
	if r, _, b, _ := img.At(0, 1).RGBA(); r == 0 || b != 0 {
		t.Error("expected the bottom row to be red after flipping")
	}
}

func TestCaptureFromPixelsSizeMismatch(t *testing.T) {
	sc := fixedCapture(t.TempDir())
	if _, err := sc.CaptureFromPixels(make([]byte, 7), 1, 2); err == nil {
		t.Error("expected size mismatch error")
	}
}
