package world

import (
	"github.com/Faultbox/wildmere/internal/engine/geom"
	"github.com/Faultbox/wildmere/internal/engine/terrain"
	"github.com/Faultbox/wildmere/internal/game/collision"
	"github.com/Faultbox/wildmere/pkg/math"
)

// Chest dimensions.
var (
	chestHalf = math.Vec3{X: 0.5, Y: 0.3, Z: 0.35}
	chestLid  = math.Vec3{X: 0.52, Y: 0.08, Z: 0.37}
)

// MaxChestTier is the highest loot tier.
const MaxChestTier = 3

func generateChests(b *Builder) int {
	p := b.Params
	rng := p.Stream(saltChests)
	limit := p.HalfExtent * 0.8
	mesh := b.Mesh(GroupProps)

	placed := 0
	for i := 0; i < p.ChestAttempts && placed < p.MaxChests; i++ {
		x := rng.Range(-limit, limit)
		z := rng.Range(-limit, limit)
		tier := 1 + min(int(rng.Next()*MaxChestTier), MaxChestTier-1)

		if terrain.IsOnPath(x, z) {
			continue
		}
		if !b.Registry.Claim(x, z, 1.2) {
			continue
		}

		// Face the spawn so the lock is visible on approach.
		yaw := math.Atan2(-x, -z)
		pos := math.Vec3{X: x, Y: terrain.Elevation(x, z), Z: z}
		mesh.Append(BuildChest().Transformed(yaw, pos))
		b.AddCollider(collision.Collider{
			Kind:        collision.KindBox,
			Center:      math.Vec2{X: x, Y: z},
			HalfExtents: math.Vec2{X: chestHalf.X, Y: chestHalf.Z},
			Rotation:    yaw,
		})
		b.AddChest(pos, yaw, tier)
		placed++
	}
	return placed
}

// BuildChest returns a chest mesh in local space, resting on y=0 and facing
// +Z.
func BuildChest() *geom.Mesh {
	m := geom.NewMesh(0)
	m.Box(math.Vec3{Y: chestHalf.Y}, chestHalf, geom.MaterialWood)
	m.Box(math.Vec3{Y: 2*chestHalf.Y + chestLid.Y}, chestLid, geom.MaterialWood)
	for _, x := range []float32{-0.3, 0.3} {
		m.Box(math.Vec3{X: x, Y: chestHalf.Y + 0.03},
			math.Vec3{X: 0.05, Y: chestHalf.Y + 0.03, Z: chestHalf.Z + 0.01}, geom.MaterialMetal)
	}
	m.Box(math.Vec3{Y: 2 * chestHalf.Y, Z: chestHalf.Z + 0.02},
		math.Vec3{X: 0.07, Y: 0.09, Z: 0.02}, geom.MaterialMetal)
	return m
}
