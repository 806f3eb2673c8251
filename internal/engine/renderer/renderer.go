// Package renderer sets up OpenGL state shared by every frame.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"
)

// Info describes the active GL implementation.
type Info struct {
	Version  string
	Renderer string
	GLSL     string
}

// Init loads GL function pointers and sets the default state.
// IMPORTANT: Must be called AFTER the OpenGL context is created!
func Init(log *zap.Logger) (Info, error) {
	if err := gl.Init(); err != nil {
		return Info{}, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	info := Info{
		Version:  gl.GoStr(gl.GetString(gl.VERSION)),
		Renderer: gl.GoStr(gl.GetString(gl.RENDERER)),
		GLSL:     gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION)),
	}
	if log != nil {
		log.Info("OpenGL initialized",
			zap.String("version", info.Version),
			zap.String("renderer", info.Renderer),
			zap.String("glsl", info.GLSL),
		)
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.MULTISAMPLE)
	// Wall winding follows the traced loop direction, so both faces are drawn.
	gl.Disable(gl.CULL_FACE)
	gl.ClearColor(0.1, 0.1, 0.15, 1.0)

	return info, nil
}

// CheckError returns the first pending GL error, if any.
func CheckError(op string) error {
	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("%s: GL error 0x%x", op, code)
	}
	return nil
}

// ReadPixels reads the back buffer as RGBA rows, bottom row first.
func ReadPixels(width, height int32) []byte {
	pixels := make([]byte, int(width)*int(height)*4)
	if len(pixels) == 0 {
		return pixels
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, width, height, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels
}
