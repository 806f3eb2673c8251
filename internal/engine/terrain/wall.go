package terrain

import (
	"github.com/Faultbox/grubs-terrain/pkg/math"
)

// wallData holds extruded wall geometry in its own index space.
type wallData struct {
	vertices  []math.Vec3
	triangles []Triangle
	skipped   int // loops too short to extrude
}

// extrudeWalls builds one quad per consecutive loop pair, hanging height units
// below the outline along -up. The closing pair of each loop is included.
func extrudeWalls(loops [][]int, vertices []math.Vec3, up math.Vec3, height float32) *wallData {
	drop := up.Scale(height)
	w := &wallData{}

	for _, loop := range loops {
		if len(loop) < 2 {
			w.skipped++
			continue
		}

		for i := 0; i < len(loop)-1; i++ {
			top0 := vertices[loop[i]]
			top1 := vertices[loop[i+1]]

			base := len(w.vertices)
			w.vertices = append(w.vertices,
				top0,
				top1,
				top0.Sub(drop),
				top1.Sub(drop),
			)
			w.triangles = append(w.triangles,
				Triangle{base + 0, base + 2, base + 3},
				Triangle{base + 3, base + 1, base + 0},
			)
		}
	}
	return w
}
