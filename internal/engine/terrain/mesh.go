package terrain

import (
	"slices"

	"github.com/Faultbox/grubs-terrain/pkg/math"
)

// assembleMesh packages raw positions and triangles into render and collision
// representations built from the same data. The mesh owns its buffers; positions
// stays with the builder.
func assembleMesh(positions []math.Vec3, triangles []Triangle, bounds Bounds) *Mesh {
	vertices := make([]Vertex, len(positions))
	for i, p := range positions {
		vertices[i] = Vertex{Position: p.Array()}
	}

	indices := make([]uint32, 0, len(triangles)*3)
	collision := make([]int, 0, len(triangles)*3)
	for _, t := range triangles {
		indices = append(indices, uint32(t[0]), uint32(t[1]), uint32(t[2]))
		collision = append(collision, t[0], t[1], t[2])
	}

	return &Mesh{
		Render: RenderMesh{
			Vertices: vertices,
			Indices:  indices,
		},
		Collision: CollisionMesh{
			Positions: slices.Clone(positions),
			Indices:   collision,
			Bounds:    bounds,
		},
		Bounds: bounds,
	}
}

// floorBounds spans width*R by height*R in the grid plane.
func floorBounds(width, height int, resolution float32) Bounds {
	return Bounds{
		Min: [3]float32{0, 0, 0},
		Max: [3]float32{float32(width) * resolution, 0, float32(height) * resolution},
	}
}

// wallBounds extends the floor box down to the wall base.
func wallBounds(width, height int, resolution float32, up math.Vec3, wallHeight float32) Bounds {
	floor := floorBounds(width, height, resolution)
	return floor.Union(floor.Offset(up.Scale(-wallHeight)))
}
