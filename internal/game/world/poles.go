package world

import (
	"github.com/Faultbox/wildmere/internal/engine/geom"
	"github.com/Faultbox/wildmere/internal/engine/terrain"
	"github.com/Faultbox/wildmere/internal/game/collision"
	"github.com/Faultbox/wildmere/pkg/math"
)

const (
	poleRadius    = 0.15
	poleHeight    = 2.2
	poleCollider  = 0.2
	poleFootprint = 0.5
	boundaryStep  = 12.0
	markerOffset  = 3.5
)

// markerDistances are the distances along each cross path arm that get a
// marker pole.
var markerDistances = []float32{15, 30, 45, 60, 85}

// PoleSites returns the fixed pole layout for a world of the given half
// extent: a boundary ring just inside the edge, then markers beside the
// cross paths.
func PoleSites(halfExtent float32) []math.Vec2 {
	var sites []math.Vec2
	edge := halfExtent - 4
	steps := int(2 * edge / boundaryStep)
	for i := 0; i <= steps; i++ {
		t := -edge + float32(i)*boundaryStep
		sites = append(sites,
			math.Vec2{X: t, Y: -edge},
			math.Vec2{X: t, Y: edge})
		if i > 0 && i < steps {
			sites = append(sites,
				math.Vec2{X: -edge, Y: t},
				math.Vec2{X: edge, Y: t})
		}
	}
	for _, d := range markerDistances {
		sites = append(sites,
			math.Vec2{X: d, Y: markerOffset},
			math.Vec2{X: -d, Y: -markerOffset},
			math.Vec2{X: markerOffset, Y: -d},
			math.Vec2{X: -markerOffset, Y: d})
	}
	return sites
}

func generatePoles(b *Builder) int {
	mesh := b.Mesh(GroupProps)
	placed := 0
	for _, s := range PoleSites(b.Params.HalfExtent) {
		if terrain.IsOnPath(s.X, s.Y) {
			continue
		}
		if !b.Registry.Claim(s.X, s.Y, poleFootprint) {
			continue
		}
		BuildPole(mesh, s.XZ(terrain.Elevation(s.X, s.Y)-0.1))
		b.AddCollider(collision.Circle(s, poleCollider))
		placed++
	}
	return placed
}

// BuildPole appends a wooden pole with a hexagonal cap standing on base.
func BuildPole(mesh *geom.Mesh, base math.Vec3) {
	mesh.Cylinder(base, poleRadius, poleHeight, 6, geom.MaterialWood)
	top := base.Add(math.Vec3{Y: poleHeight})
	mesh.Disc(top, poleCollider, 6, true, geom.MaterialWood)
	mesh.Disc(top, poleCollider, 6, false, geom.MaterialWood)
}
