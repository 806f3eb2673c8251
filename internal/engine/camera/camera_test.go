package camera

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/grubs-terrain/internal/engine/terrain"
	"github.com/Faultbox/grubs-terrain/pkg/math"
)

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func TestPositionDistance(t *testing.T) {
	c := NewOrbitCamera()
	c.Center = math.Vec3{X: 10, Y: 0, Z: -4}

	d := c.Position().Sub(c.Center).Length()
	if abs(d-c.Distance) > 1e-3 {
		t.Errorf("expected camera %f from center, got %f", c.Distance, d)
	}
}

func TestFitToBounds(t *testing.T) {
	c := NewOrbitCamera()
	b := terrain.Bounds{Min: [3]float32{0, -50, 0}, Max: [3]float32{100, 0, 100}}
	fov := float32(gomath.Pi / 4)

	c.FitToBounds(b, fov)

	if c.Center != (math.Vec3{X: 50, Y: -25, Z: 50}) {
		t.Errorf("expected center (50,-25,50), got %v", c.Center)
	}

	radius := float32(75) // half of the (100,50,100) diagonal
	want := radius / float32(gomath.Sin(float64(fov)/2))
	if abs(c.Distance-want) > 1e-2 {
		t.Errorf("expected distance %f, got %f", want, c.Distance)
	}

	near, far := c.ClipPlanes()
	if near <= 0 || near >= c.Distance-radius {
		t.Errorf("near plane %f should sit in front of the scene", near)
	}
	if far <= c.Distance+radius {
		t.Errorf("far plane %f should sit behind the scene", far)
	}
}

func TestFitToBoundsFlat(t *testing.T) {
	c := NewOrbitCamera()
	c.FitToBounds(terrain.Bounds{}, float32(gomath.Pi/4))

	if c.Distance <= 0 {
		t.Errorf("expected positive distance for empty bounds, got %f", c.Distance)
	}
}

func TestHandleZoomClamped(t *testing.T) {
	c := NewOrbitCamera()

	for range 100 {
		c.HandleZoom(1)
	}
	if c.Distance != c.MinDistance {
		t.Errorf("expected distance clamped to %f, got %f", c.MinDistance, c.Distance)
	}

	for range 200 {
		c.HandleZoom(-1)
	}
	if c.Distance != c.MaxDistance {
		t.Errorf("expected distance clamped to %f, got %f", c.MaxDistance, c.Distance)
	}
}

func TestHandleDragPitchClamped(t *testing.T) {
	c := NewOrbitCamera()

	c.HandleDrag(0, 10000)
	if c.RotationX != c.MaxPitch {
		t.Errorf("expected pitch clamped to %f, got %f", c.MaxPitch, c.RotationX)
	}
	c.HandleDrag(0, -20000)
	if c.RotationX != c.MinPitch {
		t.Errorf("expected pitch clamped to %f, got %f", c.MinPitch, c.RotationX)
	}
}

func TestHandleMovementForward(t *testing.T) {
	c := NewOrbitCamera()
	c.RotationY = 0 // camera sits on +Z looking toward -Z
	c.Distance = 100

	c.HandleMovement(1, 0)

	if abs(c.Center.X) > 1e-5 {
		t.Errorf("expected no sideways motion, got X=%f", c.Center.X)
	}
	if c.Center.Z >= 0 {
		t.Errorf("expected forward to move toward -Z, got Z=%f", c.Center.Z)
	}
}
