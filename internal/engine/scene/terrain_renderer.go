package scene

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/grubs-terrain/internal/engine/debug"
	"github.com/Faultbox/grubs-terrain/internal/engine/scene/shaders"
	"github.com/Faultbox/grubs-terrain/internal/engine/shader"
	"github.com/Faultbox/grubs-terrain/internal/engine/terrain"
	"github.com/Faultbox/grubs-terrain/pkg/math"
)

var (
	floorColor   = [3]float32{0.42, 0.58, 0.31}
	wallColor    = [3]float32{0.52, 0.40, 0.29}
	outlineColor = [3]float32{1.0, 0.84, 0.2}
	boundsColor  = [3]float32{0.8, 0.8, 0.8}
)

// meshBuffers holds the GPU objects of one indexed triangle mesh.
type meshBuffers struct {
	vao, vbo, ebo uint32
	count         int32
}

// lineBuffers holds outline loops drawn as line strips.
type lineBuffers struct {
	vao, vbo uint32
	firsts   []int32
	counts   []int32
}

// TerrainRenderer draws the floor and wall meshes of one rebuild.
type TerrainRenderer struct {
	program *shader.Program

	floor    meshBuffers
	walls    meshBuffers
	outlines lineBuffers
	box      lineBuffers

	// Bounds of everything loaded
	Bounds terrain.Bounds

	// LightDir is the direction light travels.
	LightDir math.Vec3
}

// NewTerrainRenderer compiles the terrain shader. A GL context must be current.
func NewTerrainRenderer() (*TerrainRenderer, error) {
	program, err := shader.Compile(shaders.TerrainVertexShader, shaders.TerrainFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("terrain shader: %w", err)
	}
	return &TerrainRenderer{
		program:  program,
		LightDir: math.Vec3{X: -0.4, Y: -1, Z: -0.3},
	}, nil
}

// LoadTerrain replaces the uploaded meshes.
func (tr *TerrainRenderer) LoadTerrain(floor, walls *terrain.Mesh, outlines [][]math.Vec3) {
	tr.clearTerrain()

	tr.floor = uploadMesh(floor.Render)
	tr.walls = uploadMesh(walls.Render)
	tr.outlines = uploadLines(outlines)
	tr.Bounds = floor.Bounds.Union(walls.Bounds)
	tr.box = uploadSegments(debug.BoundsLines(tr.Bounds, 0))
}

func uploadMesh(mesh terrain.RenderMesh) meshBuffers {
	var b meshBuffers
	if len(mesh.Vertices) == 0 || len(mesh.Indices) == 0 {
		return b
	}

	gl.GenVertexArrays(1, &b.vao)
	gl.BindVertexArray(b.vao)

	gl.GenBuffers(1, &b.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	vertexSize := int(unsafe.Sizeof(terrain.Vertex{}))
	gl.BufferData(gl.ARRAY_BUFFER, len(mesh.Vertices)*vertexSize, unsafe.Pointer(&mesh.Vertices[0]), gl.STATIC_DRAW)

	// Position
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, int32(vertexSize), 0)
	gl.EnableVertexAttribArray(0)

	gl.GenBuffers(1, &b.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(mesh.Indices)*4, unsafe.Pointer(&mesh.Indices[0]), gl.STATIC_DRAW)

	gl.BindVertexArray(0)

	b.count = int32(len(mesh.Indices))
	return b
}

func uploadLines(loops [][]math.Vec3) lineBuffers {
	data, firsts, counts := packLines(loops)
	return uploadPositions(data, firsts, counts)
}

// uploadSegments uploads independent line segments drawn with gl.LINES.
func uploadSegments(data []float32) lineBuffers {
	return uploadPositions(data, []int32{0}, []int32{int32(len(data) / 3)})
}

func uploadPositions(data []float32, firsts, counts []int32) lineBuffers {
	b := lineBuffers{firsts: firsts, counts: counts}
	if len(data) == 0 {
		b.firsts, b.counts = nil, nil
		return b
	}

	gl.GenVertexArrays(1, &b.vao)
	gl.BindVertexArray(b.vao)

	gl.GenBuffers(1, &b.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, unsafe.Pointer(&data[0]), gl.STATIC_DRAW)

	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 12, 0)
	gl.EnableVertexAttribArray(0)

	gl.BindVertexArray(0)
	return b
}

// packLines flattens loops into one position stream with per-strip ranges.
// Loops with fewer than two points cannot form a line and are dropped.
func packLines(loops [][]math.Vec3) (data []float32, firsts, counts []int32) {
	var n int32
	for _, loop := range loops {
		if len(loop) < 2 {
			continue
		}
		firsts = append(firsts, n)
		counts = append(counts, int32(len(loop)))
		for _, p := range loop {
			data = append(data, p.X, p.Y, p.Z)
		}
		n += int32(len(loop))
	}
	return data, firsts, counts
}

// Render draws the loaded terrain with the given view-projection matrix.
func (tr *TerrainRenderer) Render(viewProj math.Mat4, opts RenderOptions) {
	tr.program.Use()
	tr.program.SetMat4("uViewProj", viewProj)
	tr.program.SetVec3("uLightDir", tr.LightDir.Array())

	shade := float32(1)
	if opts.Wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
		shade = 0
	}
	tr.program.SetFloat("uShade", shade)

	if opts.ShowFloor {
		tr.drawMesh(tr.floor, floorColor)
	}
	if opts.ShowWalls {
		tr.drawMesh(tr.walls, wallColor)
	}

	if opts.Wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}

	if opts.ShowOutlines && len(tr.outlines.counts) > 0 {
		// Outlines sit on the floor plane; draw them on top.
		gl.Disable(gl.DEPTH_TEST)
		tr.program.SetFloat("uShade", 0)
		tr.program.SetVec3("uColor", outlineColor)
		gl.BindVertexArray(tr.outlines.vao)
		gl.MultiDrawArrays(gl.LINE_STRIP, &tr.outlines.firsts[0], &tr.outlines.counts[0], int32(len(tr.outlines.counts)))
		gl.Enable(gl.DEPTH_TEST)
	}

	if opts.ShowBounds && len(tr.box.counts) > 0 {
		tr.program.SetFloat("uShade", 0)
		tr.program.SetVec3("uColor", boundsColor)
		gl.BindVertexArray(tr.box.vao)
		gl.DrawArrays(gl.LINES, 0, tr.box.counts[0])
	}

	gl.BindVertexArray(0)
}

func (tr *TerrainRenderer) drawMesh(b meshBuffers, color [3]float32) {
	if b.count == 0 {
		return
	}
	tr.program.SetVec3("uColor", color)
	gl.BindVertexArray(b.vao)
	gl.DrawElementsWithOffset(gl.TRIANGLES, b.count, gl.UNSIGNED_INT, 0)
}

func (b *meshBuffers) release() {
	if b.vao != 0 {
		gl.DeleteVertexArrays(1, &b.vao)
	}
	if b.vbo != 0 {
		gl.DeleteBuffers(1, &b.vbo)
	}
	if b.ebo != 0 {
		gl.DeleteBuffers(1, &b.ebo)
	}
	*b = meshBuffers{}
}

func (b *lineBuffers) release() {
	if b.vao != 0 {
		gl.DeleteVertexArrays(1, &b.vao)
	}
	if b.vbo != 0 {
		gl.DeleteBuffers(1, &b.vbo)
	}
	*b = lineBuffers{}
}

func (tr *TerrainRenderer) clearTerrain() {
	tr.floor.release()
	tr.walls.release()
	tr.outlines.release()
	tr.box.release()
}

// Close releases GPU resources.
func (tr *TerrainRenderer) Close() {
	tr.clearTerrain()
	if tr.program != nil {
		tr.program.Delete()
	}
}
