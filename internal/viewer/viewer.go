// Package viewer implements the terrainview main loop: it owns the window,
// rebuilds meshes from grid files and forwards input to the camera.
package viewer

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/grubs-terrain/internal/config"
	"github.com/Faultbox/grubs-terrain/internal/engine/debug"
	"github.com/Faultbox/grubs-terrain/internal/engine/input"
	"github.com/Faultbox/grubs-terrain/internal/engine/renderer"
	"github.com/Faultbox/grubs-terrain/internal/engine/scene"
	"github.com/Faultbox/grubs-terrain/internal/engine/terrain"
	"github.com/Faultbox/grubs-terrain/internal/engine/window"
)

const title = "terrainview"

// Viewer is the interactive terrain viewer.
type Viewer struct {
	cfg     *config.Config
	log     *zap.Logger
	running bool

	window *window.Window
	input  *input.Input
	scene  *scene.Scene

	gridPath    string
	screenshots *debug.ScreenshotCapture
	capture     bool // read back the next frame before it is presented
}

// New opens the window, initializes GL and loads gridPath if it is not empty.
func New(cfg *config.Config, gridPath string, log *zap.Logger) (*Viewer, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log.Info("initializing viewer",
		zap.Int("width", cfg.Viewer.Width),
		zap.Int("height", cfg.Viewer.Height),
	)

	v := &Viewer{cfg: cfg, log: log}

	var err error
	v.window, err = window.New(window.Config{
		Title:      title,
		Width:      cfg.Viewer.Width,
		Height:     cfg.Viewer.Height,
		Fullscreen: cfg.Viewer.Fullscreen,
		VSync:      cfg.Viewer.VSync,
	}, log.Named("window"))
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// GL calls are only valid once the window owns a context.
	if _, err := renderer.Init(log.Named("gl")); err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to init renderer: %w", err)
	}

	w, h := v.window.DrawableSize()
	v.scene, err = scene.New(scene.Config{
		Width:        w,
		Height:       h,
		FOV:          cfg.Viewer.FOV,
		SunAzimuth:   cfg.Viewer.SunAzimuth,
		SunElevation: cfg.Viewer.SunElevation,
	})
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create scene: %w", err)
	}
	v.scene.Options.Wireframe = cfg.Viewer.Wireframe
	v.scene.Options.ShowBounds = cfg.Viewer.ShowBounds
	v.screenshots = debug.NewScreenshotCapture(cfg.Viewer.ScreenshotDir, "terrain")

	v.input = input.New()

	if gridPath != "" {
		if err := v.Load(gridPath); err != nil {
			v.Close()
			return nil, err
		}
	}

	log.Info("viewer initialized")
	return v, nil
}

// Load reads a grid file, rebuilds both meshes and frames the camera on them.
func (v *Viewer) Load(path string) error {
	if err := v.load(path, true); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	v.gridPath = path
	return nil
}

// Reload re-reads the current grid file, keeping the camera where it is.
func (v *Viewer) Reload() error {
	if v.gridPath == "" {
		return nil
	}
	if err := v.load(v.gridPath, false); err != nil {
		return fmt.Errorf("reloading %s: %w", v.gridPath, err)
	}
	return nil
}

func (v *Viewer) load(path string, refit bool) error {
	start := time.Now()

	grid, err := terrain.LoadGridFile(path)
	if err != nil {
		return err
	}
	b, err := terrain.NewBuilder(grid, v.cfg.Terrain.BuilderOptions(v.log.Named("terrain"))...)
	if err != nil {
		return err
	}
	floor, walls, err := b.Rebuild()
	if err != nil {
		return err
	}
	v.scene.SetTerrain(floor, walls, b.OutlinePositions(), refit)
	v.window.SetTitle(fmt.Sprintf("%s - %s (%dx%d)", title, filepath.Base(path), grid.Width(), grid.Height()))

	stats := b.Stats()
	v.log.Info("terrain loaded",
		zap.String("path", path),
		zap.Int("grid_width", stats.GridWidth),
		zap.Int("grid_height", stats.GridHeight),
		zap.Int("vertices", stats.Vertices),
		zap.Int("triangles", stats.Triangles),
		zap.Int("outlines", stats.Outlines),
		zap.Int("wall_triangles", stats.WallTriangles),
		zap.Duration("took", time.Since(start)),
	)
	return nil
}

// Run starts the main loop and returns when the window is closed.
func (v *Viewer) Run() error {
	v.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	v.log.Info("starting main loop")

	for v.running {
		now := time.Now()
		dt := float32(now.Sub(lastTime).Seconds())
		lastTime = now

		if v.input.Update() {
			v.running = false
			break
		}
		for _, event := range v.input.Events() {
			v.handleEvent(event)
		}
		v.handleMovement(dt)

		v.scene.Render()
		if err := renderer.CheckError("render"); err != nil {
			return err
		}
		if v.capture {
			v.screenshot()
			v.capture = false
		}
		v.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			v.log.Debug("fps", zap.Int("count", frameCount), zap.Float32("dt_ms", dt*1000))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (v *Viewer) handleEvent(event input.Event) {
	cam := v.scene.Camera
	opts := &v.scene.Options

	switch event.Type {
	case input.EventWindowResize:
		v.scene.Resize(v.window.DrawableSize())

	case input.EventMouseDrag:
		cam.HandleDrag(event.DX, event.DY)

	case input.EventMouseWheel:
		cam.HandleZoom(event.DY)

	case input.EventMouseClick:
		v.pick(event.X, event.Y)

	case input.EventFileDrop:
		if err := v.Load(event.Path); err != nil {
			v.log.Error("failed to load dropped file", zap.String("path", event.Path), zap.Error(err))
		}

	case input.EventKeyDown:
		switch event.Key {
		case sdl.K_ESCAPE:
			v.running = false
		case sdl.K_f:
			opts.Wireframe = !opts.Wireframe
		case sdl.K_o:
			opts.ShowOutlines = !opts.ShowOutlines
		case sdl.K_g:
			opts.ShowFloor = !opts.ShowFloor
		case sdl.K_h:
			opts.ShowWalls = !opts.ShowWalls
		case sdl.K_b:
			opts.ShowBounds = !opts.ShowBounds
		case sdl.K_p:
			v.capture = true
		case sdl.K_r:
			if err := v.Reload(); err != nil {
				v.log.Error("reload failed", zap.Error(err))
			}
		}
	}
}

func (v *Viewer) handleMovement(dt float32) {
	var forward, right float32
	if v.input.IsKeyHeld(sdl.SCANCODE_W) {
		forward++
	}
	if v.input.IsKeyHeld(sdl.SCANCODE_S) {
		forward--
	}
	if v.input.IsKeyHeld(sdl.SCANCODE_D) {
		right++
	}
	if v.input.IsKeyHeld(sdl.SCANCODE_A) {
		right--
	}
	if forward != 0 || right != 0 {
		// Movement speed is tuned for 60 frames per second.
		scale := dt * 60
		v.scene.Camera.HandleMovement(forward*scale, right*scale)
	}
}

// pick converts window coordinates to drawable pixels and logs the hit.
func (v *Viewer) pick(x, y int) {
	ww, wh := v.window.Size()
	dw, dh := v.window.DrawableSize()
	sx, sy := float32(x), float32(y)
	if ww > 0 && wh > 0 {
		sx *= float32(dw) / float32(ww)
		sy *= float32(dh) / float32(wh)
	}

	hit, ok := v.scene.Pick(sx, sy)
	if !ok {
		v.log.Debug("pick missed", zap.Int("x", x), zap.Int("y", y))
		return
	}
	v.log.Info("pick",
		zap.Float32("x", hit.Point.X),
		zap.Float32("y", hit.Point.Y),
		zap.Float32("z", hit.Point.Z),
		zap.Float32("distance", hit.Distance),
		zap.Int("triangle", hit.Triangle),
	)
}

// screenshot saves the frame in the back buffer.
func (v *Viewer) screenshot() {
	w, h := v.window.DrawableSize()
	path, err := v.screenshots.CaptureFromPixels(renderer.ReadPixels(w, h), int(w), int(h))
	if err != nil {
		v.log.Error("screenshot failed", zap.Error(err))
		return
	}
	v.log.Info("screenshot saved", zap.String("path", path))
}

// Close releases GL and window resources.
func (v *Viewer) Close() {
	v.log.Info("closing viewer")

	if v.scene != nil {
		v.scene.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}
