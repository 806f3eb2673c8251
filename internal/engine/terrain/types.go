// Package terrain turns a destructible terrain occupancy grid into floor and wall meshes.
//
// The floor is triangulated with marching squares. Its boundary is traced into closed
// outline loops which are then extruded into vertical walls. Every rebuild starts from a
// full grid snapshot; nothing is updated incrementally.
package terrain

import (
	"github.com/Faultbox/grubs-terrain/pkg/math"
)

// Triangle holds three vertex indices into the vertex buffer of the same rebuild.
type Triangle [3]int

// Contains reports whether the triangle references vertex v.
func (t Triangle) Contains(v int) bool {
	return t[0] == v || t[1] == v || t[2] == v
}

// Vertex is the render vertex layout: a single position attribute.
type Vertex struct {
	Position [3]float32
}

// RenderMesh is the GPU-facing representation of a mesh.
type RenderMesh struct {
	Vertices []Vertex
	Indices  []uint32
}

// CollisionMesh is the physics-facing representation, built from the same raw
// positions and indices as the render mesh.
type CollisionMesh struct {
	Positions []math.Vec3
	Indices   []int
	Bounds    Bounds
}

// Mesh bundles the render and collision representations of one model.
type Mesh struct {
	Render    RenderMesh
	Collision CollisionMesh
	Bounds    Bounds
}

// VertexCount returns the number of vertices in the mesh.
func (m *Mesh) VertexCount() int {
	return len(m.Collision.Positions)
}

// TriangleCount returns the number of triangles in the mesh.
func (m *Mesh) TriangleCount() int {
	return len(m.Collision.Indices) / 3
}

// Bounds holds an axis-aligned bounding box.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// Union returns the smallest box containing both b and other.
func (b Bounds) Union(other Bounds) Bounds {
	lo := math.Vec3FromArray(b.Min).Min(math.Vec3FromArray(other.Min))
	hi := math.Vec3FromArray(b.Max).Max(math.Vec3FromArray(other.Max))
	return Bounds{Min: lo.Array(), Max: hi.Array()}
}

// Offset returns the box translated by d.
func (b Bounds) Offset(d math.Vec3) Bounds {
	return Bounds{
		Min: math.Vec3FromArray(b.Min).Add(d).Array(),
		Max: math.Vec3FromArray(b.Max).Add(d).Array(),
	}
}

// Center returns the midpoint of the box.
func (b Bounds) Center() math.Vec3 {
	return math.Vec3FromArray(b.Min).Add(math.Vec3FromArray(b.Max)).Scale(0.5)
}

// Stats summarises the most recent rebuild.
type Stats struct {
	GridWidth      int
	GridHeight     int
	Vertices       int
	Triangles      int
	Enclosed       int
	Outlines       int
	WallVertices   int
	WallTriangles  int
	SkippedOutline int
}
