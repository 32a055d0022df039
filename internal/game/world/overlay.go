package world

import (
	"github.com/Faultbox/wildmere/internal/engine/geom"
	"github.com/Faultbox/wildmere/internal/engine/terrain"
	"github.com/Faultbox/wildmere/internal/game/collision"
	"github.com/Faultbox/wildmere/pkg/math"
)

const (
	overlaySegments = 12
	// overlayHeight is how tall flat colliders are drawn.
	overlayHeight = 2.0
	// overlayPad keeps the overlay just outside the geometry it covers.
	overlayPad = 0.02
)

// ColliderOverlay builds a solid debug overlay of the world's colliders:
// circles as open cylinders, boxes as rotated boxes and climbables as
// cylinders up to their top.
func (w *World) ColliderOverlay() *geom.Mesh {
	return colliderMesh(w.Colliders.All())
}

func colliderMesh(colliders []collision.Collider) *geom.Mesh {
	m := geom.NewMesh(len(colliders) * overlaySegments * 6)
	for _, c := range colliders {
		base := terrain.Elevation(c.Center.X, c.Center.Y)
		switch c.Kind {
		case collision.KindCircle:
			m.Cylinder(math.Vec3{X: c.Center.X, Y: base, Z: c.Center.Y},
				c.Radius+overlayPad, overlayHeight, overlaySegments, geom.MaterialMetal)
		case collision.KindClimbable:
			m.Cylinder(math.Vec3{X: c.Center.X, Y: c.Base, Z: c.Center.Y},
				c.Radius+overlayPad, max(c.Height, overlayPad), overlaySegments, geom.MaterialMetal)
		case collision.KindBox:
			half := math.Vec3{X: c.HalfExtents.X + overlayPad, Y: overlayHeight / 2, Z: c.HalfExtents.Y + overlayPad}
			box := geom.NewMesh(36)
			box.Box(math.Vec3{Y: half.Y}, half, geom.MaterialMetal)
			m.Append(box.Transformed(c.Rotation, math.Vec3{X: c.Center.X, Y: base, Z: c.Center.Y}))
		}
	}
	return m
}
