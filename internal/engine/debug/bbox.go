// Package debug provides viewer debugging aids: bounds wireframes and screenshots.
package debug

import "github.com/Faultbox/grubs-terrain/internal/engine/terrain"

// BoundsVertexCount is the number of line vertices BoundsLines returns.
const BoundsVertexCount = 24

// BoundsLines creates line vertices for a wireframe box around b.
// Returns 12 edges as endpoint pairs, format: [x, y, z] per vertex.
// padding expands the box on all sides.
func BoundsLines(b terrain.Bounds, padding float32) []float32 {
	minX, minY, minZ := b.Min[0]-padding, b.Min[1]-padding, b.Min[2]-padding
	maxX, maxY, maxZ := b.Max[0]+padding, b.Max[1]+padding, b.Max[2]+padding

	return []float32{
		// Bottom face
		minX, minY, minZ, maxX, minY, minZ,
		maxX, minY, minZ, maxX, minY, maxZ,
		maxX, minY, maxZ, minX, minY, maxZ,
		minX, minY, maxZ, minX, minY, minZ,
		// Top face
		minX, maxY, minZ, maxX, maxY, minZ,
		maxX, maxY, minZ, maxX, maxY, maxZ,
		maxX, maxY, maxZ, minX, maxY, maxZ,
		minX, maxY, maxZ, minX, maxY, minZ,
		// Vertical edges
		minX, minY, minZ, minX, maxY, minZ,
		maxX, minY, minZ, maxX, maxY, minZ,
		maxX, minY, maxZ, maxX, maxY, maxZ,
		minX, minY, maxZ, minX, maxY, maxZ,
	}
}
