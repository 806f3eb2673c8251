// Package scene renders terrain meshes for the viewer and answers picking queries.
package scene

import (
	gomath "math"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/grubs-terrain/internal/engine/camera"
	"github.com/Faultbox/grubs-terrain/internal/engine/lighting"
	"github.com/Faultbox/grubs-terrain/internal/engine/picking"
	"github.com/Faultbox/grubs-terrain/internal/engine/terrain"
	"github.com/Faultbox/grubs-terrain/pkg/math"
)

// RenderOptions selects what the terrain renderer draws.
type RenderOptions struct {
	Wireframe    bool
	ShowFloor    bool
	ShowWalls    bool
	ShowOutlines bool
	ShowBounds   bool
}

// Config contains scene configuration options.
type Config struct {
	Width  int32
	Height int32
	FOV    float32 // Vertical field of view in degrees

	// Sun position in degrees, see lighting.SunDirection.
	SunAzimuth   float32
	SunElevation float32
}

// Scene holds the camera and GPU state for one loaded terrain.
type Scene struct {
	config Config

	Camera  *camera.OrbitCamera
	Options RenderOptions

	renderer *TerrainRenderer
	floor    *terrain.Mesh
	walls    *terrain.Mesh
}

// New creates a scene. A GL context must be current.
func New(cfg Config) (*Scene, error) {
	renderer, err := NewTerrainRenderer()
	if err != nil {
		return nil, err
	}
	renderer.LightDir = lighting.LightDirection(cfg.SunAzimuth, cfg.SunElevation)
	return &Scene{
		config:   cfg,
		Camera:   camera.NewOrbitCamera(),
		Options:  RenderOptions{ShowFloor: true, ShowWalls: true, ShowOutlines: true},
		renderer: renderer,
	}, nil
}

// SetTerrain uploads a rebuild. When refit is set the camera frames the new bounds.
func (s *Scene) SetTerrain(floor, walls *terrain.Mesh, outlines [][]math.Vec3, refit bool) {
	s.floor, s.walls = floor, walls
	s.renderer.LoadTerrain(floor, walls, outlines)
	if refit {
		s.Camera.FitToBounds(s.renderer.Bounds, s.fovRadians())
	}
}

// Resize updates the viewport size.
func (s *Scene) Resize(width, height int32) {
	s.config.Width, s.config.Height = width, height
}

func (s *Scene) fovRadians() float32 {
	return s.config.FOV * gomath.Pi / 180
}

// ViewProj returns the combined camera matrix.
func (s *Scene) ViewProj() math.Mat4 {
	return viewProjection(s.Camera, s.fovRadians(), s.config.Width, s.config.Height)
}

func viewProjection(cam *camera.OrbitCamera, fovY float32, width, height int32) math.Mat4 {
	aspect := float32(1)
	if width > 0 && height > 0 {
		aspect = float32(width) / float32(height)
	}
	return cam.ProjectionMatrix(fovY, aspect).Mul(cam.ViewMatrix())
}

// Render clears the viewport and draws the terrain.
func (s *Scene) Render() {
	gl.Viewport(0, 0, s.config.Width, s.config.Height)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	s.renderer.Render(s.ViewProj(), s.Options)
}

// Pick casts a ray through a pixel and returns the nearest floor or wall hit.
func (s *Scene) Pick(screenX, screenY float32) (terrain.Hit, bool) {
	ray := picking.ScreenToRay(screenX, screenY, float32(s.config.Width), float32(s.config.Height), s.ViewProj().Inverse())
	return terrain.NearestHit(ray, s.floor, s.walls)
}

// Close releases GPU resources.
func (s *Scene) Close() {
	s.renderer.Close()
}
