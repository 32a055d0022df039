package terrain

import (
	"github.com/Faultbox/wildmere/internal/engine/geom"
	"github.com/Faultbox/wildmere/pkg/math"
)

// GroundConfig describes the tessellated ground square.
type GroundConfig struct {
	HalfExtent float32 // Ground spans [-HalfExtent, HalfExtent] on X and Z
	Cells      int     // Quads per side
	UVScale    float32 // World units per texture repeat
}

// BuildGround tessellates the ground into Cells x Cells quads. Each vertex
// takes its height and normal from the height field; each cell is tagged
// dirt when its center is on a path and grass otherwise.
func BuildGround(cfg GroundConfig) (*geom.Mesh, GroundStats) {
	cells := cfg.Cells
	if cells < 1 {
		cells = 1
	}
	uvScale := cfg.UVScale
	if uvScale <= 0 {
		uvScale = 1
	}
	size := cfg.HalfExtent * 2 / float32(cells)

	// Sample every grid corner once; neighbouring cells share corners.
	corners := make([]Sample, (cells+1)*(cells+1))
	coord := func(i int) float32 { return -cfg.HalfExtent + float32(i)*size }
	for j := 0; j <= cells; j++ {
		for i := 0; i <= cells; i++ {
			corners[j*(cells+1)+i] = SampleAt(coord(i), coord(j))
		}
	}

	mesh := geom.NewMesh(cells * cells * 6)
	stats := GroundStats{Cells: cells * cells}

	vertex := func(i, j int, mat geom.Material) geom.Vertex {
		s := corners[j*(cells+1)+i]
		x, z := coord(i), coord(j)
		return geom.Vertex{
			Position: math.Vec3{X: x, Y: s.Elevation, Z: z},
			Normal:   s.Normal,
			UV:       math.Vec2{X: x / uvScale, Y: z / uvScale},
			Material: mat,
		}
	}

	for j := 0; j < cells; j++ {
		for i := 0; i < cells; i++ {
			cx := coord(i) + size/2
			cz := coord(j) + size/2
			mat := geom.MaterialGrass
			if IsOnPath(cx, cz) {
				mat = geom.MaterialDirt
				stats.PathCells++
			}

			v00 := vertex(i, j, mat)
			v10 := vertex(i+1, j, mat)
			v01 := vertex(i, j+1, mat)
			v11 := vertex(i+1, j+1, mat)

			// Counter-clockwise seen from above: +Z edge first, then +X.
			mesh.AddTriangle(v00, v01, v11)
			mesh.AddTriangle(v00, v11, v10)
		}
	}

	return mesh, stats
}
