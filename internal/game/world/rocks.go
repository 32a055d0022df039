package world

import (
	"github.com/Faultbox/wildmere/internal/engine/geom"
	"github.com/Faultbox/wildmere/internal/engine/terrain"
	"github.com/Faultbox/wildmere/internal/game/collision"
	"github.com/Faultbox/wildmere/pkg/math"
)

// rockRatios are the unscaled hull corners: a bottom ring and a narrower,
// uneven top ring.
var rockRatios = [8]math.Vec3{
	{X: -0.9, Y: 0, Z: -0.8},
	{X: 0.85, Y: 0, Z: -0.9},
	{X: 0.95, Y: 0, Z: 0.8},
	{X: -0.8, Y: 0, Z: 0.9},
	{X: -0.6, Y: 1.0, Z: -0.55},
	{X: 0.55, Y: 0.9, Z: -0.65},
	{X: 0.7, Y: 1.1, Z: 0.5},
	{X: -0.5, Y: 0.95, Z: 0.6},
}

// rockFaces splits the six quads of the hull into twelve triangles.
var rockFaces = [][3]int{
	{0, 1, 2}, {0, 2, 3},
	{4, 5, 6}, {4, 6, 7},
	{0, 1, 5}, {0, 5, 4},
	{1, 2, 6}, {1, 6, 5},
	{2, 3, 7}, {2, 7, 6},
	{3, 0, 4}, {3, 4, 7},
}

// Rock holds the sampled shape of one rock.
type Rock struct {
	Center math.Vec3
	Size   float32
	Shape  [3]float32
}

// Height is the standable height of the rock above its base.
func (r Rock) Height() float32 {
	return r.Size * 1.2
}

// Points returns the eight hull corners in world space.
func (r Rock) Points() []math.Vec3 {
	sx := r.Size * (0.8 + 0.4*r.Shape[0])
	sy := r.Height() / 1.1 * (0.85 + 0.15*r.Shape[1])
	sz := r.Size * (0.8 + 0.4*r.Shape[2])
	twist := (r.Shape[1] - 0.5) * 0.6
	sink := math.Vec3{Y: -0.15 * r.Size}

	pts := make([]math.Vec3, len(rockRatios))
	for i, q := range rockRatios {
		p := math.Vec3{X: q.X * sx, Y: q.Y * sy, Z: q.Z * sz}
		if i >= 4 {
			p = p.RotateY(twist)
		}
		pts[i] = r.Center.Add(p).Add(sink)
	}
	return pts
}

func generateRocks(b *Builder) int {
	p := b.Params
	rng := p.Stream(saltRocks)
	limit := p.HalfExtent - 4
	mesh := b.Mesh(GroupRocks)

	placed := 0
	for i := 0; i < p.RockAttempts; i++ {
		x := rng.Range(-limit, limit)
		z := rng.Range(-limit, limit)
		size := 0.6 + rng.Next()*1.6
		shape := [3]float32{rng.Next(), rng.Next(), rng.Next()}

		if terrain.NearPath(x, z, size) {
			continue
		}
		if !b.Registry.Claim(x, z, size+0.5) {
			continue
		}

		r := Rock{Center: math.Vec3{X: x, Y: terrain.Elevation(x, z), Z: z}, Size: size, Shape: shape}
		BuildRock(mesh, r)
		b.AddCollider(collision.Climbable(math.Vec2{X: x, Y: z}, size, r.Height(), r.Center.Y))
		placed++
	}
	return placed
}

// BuildRock appends the flat-shaded hull of r.
func BuildRock(mesh *geom.Mesh, r Rock) {
	pts := r.Points()
	var c math.Vec3
	for _, p := range pts {
		c = c.Add(p)
	}
	c = c.Scale(1 / float32(len(pts)))
	mesh.Hull(c, pts, rockFaces, geom.MaterialRock)
}
