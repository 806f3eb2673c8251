package terrain

import (
	"github.com/Faultbox/grubs-terrain/internal/engine/picking"
	"github.com/Faultbox/grubs-terrain/pkg/math"
)

// boundsSlack keeps zero-thickness floor boxes hittable by the slab test.
const boundsSlack = 1e-3

// Hit describes the closest triangle a ray struck.
type Hit struct {
	Triangle int
	Distance float32
	Point    math.Vec3
}

// Raycast returns the nearest triangle hit by ray, if any.
func (c *CollisionMesh) Raycast(ray picking.Ray) (Hit, bool) {
	if len(c.Indices) == 0 {
		return Hit{}, false
	}

	box := picking.NewAABB(math.Vec3FromArray(c.Bounds.Min), math.Vec3FromArray(c.Bounds.Max))
	if _, ok := ray.IntersectAABB(box.Expand(boundsSlack)); !ok {
		return Hit{}, false
	}

	best := Hit{Triangle: -1}
	for i := 0; i+2 < len(c.Indices); i += 3 {
		a := c.Positions[c.Indices[i]]
		b := c.Positions[c.Indices[i+1]]
		p := c.Positions[c.Indices[i+2]]

		t, ok := ray.IntersectTriangle(a, b, p)
		if !ok {
			continue
		}
		if best.Triangle == -1 || t < best.Distance {
			best = Hit{Triangle: i / 3, Distance: t}
		}
	}

	if best.Triangle == -1 {
		return Hit{}, false
	}
	best.Point = ray.At(best.Distance)
	return best, true
}

// IsSolidAt reports whether a vertical probe at world (x, z) hits the mesh.
func (c *CollisionMesh) IsSolidAt(x, z float32) bool {
	top := c.Bounds.Max[1] + 1
	ray := picking.NewRay(math.Vec3{X: x, Y: top, Z: z}, math.Vec3{Y: -1})
	_, ok := c.Raycast(ray)
	return ok
}

// NearestHit casts ray against every mesh and returns the closest hit.
// Nil meshes are skipped.
func NearestHit(ray picking.Ray, meshes ...*Mesh) (Hit, bool) {
	var best Hit
	found := false
	for _, m := range meshes {
		if m == nil {
			continue
		}
		if hit, ok := m.Collision.Raycast(ray); ok && (!found || hit.Distance < best.Distance) {
			best, found = hit, true
		}
	}
	return best, found
}
