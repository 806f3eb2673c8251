// Package camera provides the orbit camera used by the terrain viewer.
package camera

import (
	gomath "math"

	"github.com/Faultbox/grubs-terrain/internal/engine/terrain"
	"github.com/Faultbox/grubs-terrain/pkg/math"
)

// OrbitCamera orbits around a center point.
type OrbitCamera struct {
	Center math.Vec3

	// Spherical coordinates
	Distance  float32 // Distance from center
	RotationX float32 // Pitch (vertical angle, radians)
	RotationY float32 // Yaw (horizontal angle, radians)

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32

	// Radius of the fitted bounds, used for clip planes.
	sceneRadius float32
}

// NewOrbitCamera creates a new orbit camera with default settings.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Distance:        200,
		RotationX:       0.7,
		RotationY:       0.6,
		MinDistance:     5,
		MaxDistance:     5000,
		MinPitch:        -1.5,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
		sceneRadius:     100,
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	pitch, yaw := float64(c.RotationX), float64(c.RotationY)
	offset := math.Vec3{
		X: float32(gomath.Cos(pitch) * gomath.Sin(yaw)),
		Y: float32(gomath.Sin(pitch)),
		Z: float32(gomath.Cos(pitch) * gomath.Cos(yaw)),
	}
	return c.Center.Add(offset.Scale(c.Distance))
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position(), c.Center, math.Vec3{Y: 1})
}

// ProjectionMatrix returns a perspective projection whose clip planes enclose
// the fitted scene from the current distance.
func (c *OrbitCamera) ProjectionMatrix(fovY, aspect float32) math.Mat4 {
	near, far := c.ClipPlanes()
	return math.Perspective(fovY, aspect, near, far)
}

// ClipPlanes returns the near and far distances for the current orbit.
func (c *OrbitCamera) ClipPlanes() (near, far float32) {
	near = max(c.Distance-2*c.sceneRadius, c.Distance*0.01, 0.1)
	far = c.Distance + 2*c.sceneRadius
	return near, far
}

// HandleDrag updates rotation based on mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.RotationY -= deltaX * c.DragSensitivity
	c.RotationX = clamp(c.RotationX+deltaY*c.DragSensitivity, c.MinPitch, c.MaxPitch)
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance = clamp(c.Distance-delta*c.Distance*c.ZoomSensitivity, c.MinDistance, c.MaxDistance)
}

// HandleMovement pans the center on the XZ plane relative to the view yaw.
func (c *OrbitCamera) HandleMovement(forward, right float32) {
	speed := c.Distance * 0.01
	sin := float32(gomath.Sin(float64(c.RotationY)))
	cos := float32(gomath.Cos(float64(c.RotationY)))

	// Forward moves away from the camera.
	c.Center.X += (-sin*forward + cos*right) * speed
	c.Center.Z += (-cos*forward - sin*right) * speed
}

// FitToBounds centers the camera on b and backs off until the bounding sphere
// fills the vertical field of view.
func (c *OrbitCamera) FitToBounds(b terrain.Bounds, fovY float32) {
	c.Center = b.Center()

	radius := math.Vec3FromArray(b.Max).Sub(math.Vec3FromArray(b.Min)).Length() / 2
	if radius <= 0 {
		radius = 1
	}
	c.sceneRadius = radius

	c.Distance = radius / float32(gomath.Sin(float64(fovY)/2))
	c.MinDistance = radius * 0.05
	c.MaxDistance = c.Distance * 10
}

func clamp(v, lo, hi float32) float32 {
	return min(max(v, lo), hi)
}
