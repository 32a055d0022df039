package world

import (
	gomath "math"

	"github.com/Faultbox/wildmere/internal/engine/geom"
	"github.com/Faultbox/wildmere/internal/engine/terrain"
	"github.com/Faultbox/wildmere/internal/game/collision"
	"github.com/Faultbox/wildmere/pkg/hashrand"
	"github.com/Faultbox/wildmere/pkg/math"
)

// Fixed structure sites. They sit clear of every path band.
var (
	houseSites = []math.Vec2{
		{X: 18, Y: -20},
		{X: -24, Y: -18},
		{X: 22, Y: 24},
		{X: -20, Y: 24},
	}
	ruinSite  = math.Vec2{X: 30, Y: -52}
	towerSite = math.Vec2{X: -20, Y: -55}

	// The bridge spans the winding path along z = 45.
	bridgeFrom = math.Vec2{X: -46, Y: 45}
	bridgeTo   = math.Vec2{X: -32, Y: 45}
)

const (
	houseWallHeight = 3.0
	houseRoofHeight = 1.8
	houseEave       = 0.4
	ruinSide        = 8.0
	ruinWallHalf    = 3.2
	ruinThickness   = 0.25
	bridgeWidth     = 3.0
	bridgeClearance = 0.6
	towerRadius     = 1.5
	towerHeight     = 6.0
)

func generateStructures(b *Builder) int {
	rng := b.Params.Stream(saltStructures)
	placed := 0
	for _, site := range houseSites {
		if placeHouse(b, rng, site) {
			placed++
		}
	}
	if placeRuin(b, rng, ruinSite) {
		placed++
	}
	if placeBridge(b, bridgeFrom, bridgeTo) {
		placed++
	}
	if placeTower(b, towerSite) {
		placed++
	}
	return placed
}

func placeHouse(b *Builder, rng *hashrand.Stream, site math.Vec2) bool {
	w := rng.Range(5, 7)
	d := rng.Range(4, 6)
	if !b.Registry.Claim(site.X, site.Y, float32(gomath.Hypot(float64(w), float64(d)))/2+1) {
		return false
	}

	mesh := b.Mesh(GroupStructures)
	base := terrain.Elevation(site.X, site.Y) - 0.3
	hw, hd := w/2, d/2

	mesh.Box(math.Vec3{X: site.X, Y: base + houseWallHeight/2, Z: site.Y},
		math.Vec3{X: hw, Y: houseWallHeight / 2, Z: hd}, geom.MaterialPlaster)
	mesh.Box(math.Vec3{X: site.X, Y: base + 1.2, Z: site.Y + hd + 0.05},
		math.Vec3{X: 0.5, Y: 1, Z: 0.05}, geom.MaterialWood)

	roofGable(mesh, site, base+houseWallHeight, hw, hd)

	b.AddCollider(collision.Circle(site, max(hw, hd)))
	return true
}

// roofGable builds a ridge along X with two sloped quads and two gable
// triangles on the end walls.
func roofGable(mesh *geom.Mesh, site math.Vec2, top, hw, hd float32) {
	x0, x1 := site.X-hw, site.X+hw
	ze := hd + houseEave
	ridge := top + houseRoofHeight

	a := math.Vec3{X: x0, Y: top, Z: site.Y - ze}
	bb := math.Vec3{X: x1, Y: top, Z: site.Y - ze}
	c := math.Vec3{X: x1, Y: top, Z: site.Y + ze}
	d := math.Vec3{X: x0, Y: top, Z: site.Y + ze}
	r0 := math.Vec3{X: x0, Y: ridge, Z: site.Y}
	r1 := math.Vec3{X: x1, Y: ridge, Z: site.Y}

	mesh.Quad(a, r0, r1, bb, geom.MaterialRoof)
	mesh.Quad(d, c, r1, r0, geom.MaterialRoof)

	mesh.Triangle(
		math.Vec3{X: x0, Y: top, Z: site.Y - hd},
		math.Vec3{X: x0, Y: top, Z: site.Y + hd},
		r0, geom.MaterialPlaster)
	mesh.Triangle(
		math.Vec3{X: x1, Y: top, Z: site.Y - hd},
		r1,
		math.Vec3{X: x1, Y: top, Z: site.Y + hd}, geom.MaterialPlaster)
}

func placeRuin(b *Builder, rng *hashrand.Stream, site math.Vec2) bool {
	var heights [4]float32
	for i := range heights {
		heights[i] = rng.Range(0.8, 2.6)
	}
	if !b.Registry.Claim(site.X, site.Y, ruinSide/2*gomath.Sqrt2+1) {
		return false
	}

	mesh := b.Mesh(GroupStructures)
	base := terrain.Elevation(site.X, site.Y) - 0.2
	const off = ruinSide / 2
	walls := [4]struct {
		offset math.Vec2
		half   math.Vec2
	}{
		{math.Vec2{Y: off}, math.Vec2{X: ruinWallHalf, Y: ruinThickness}},
		{math.Vec2{Y: -off}, math.Vec2{X: ruinWallHalf, Y: ruinThickness}},
		{math.Vec2{X: off}, math.Vec2{X: ruinThickness, Y: ruinWallHalf}},
		{math.Vec2{X: -off}, math.Vec2{X: ruinThickness, Y: ruinWallHalf}},
	}
	for i, wall := range walls {
		c := site.Add(wall.offset)
		h := heights[i]
		mesh.Box(math.Vec3{X: c.X, Y: base + h/2, Z: c.Y},
			math.Vec3{X: wall.half.X, Y: h / 2, Z: wall.half.Y}, geom.MaterialStone)
		b.AddCollider(collision.Box(c, wall.half))
	}
	return true
}

func placeBridge(b *Builder, from, to math.Vec2) bool {
	center := from.Add(to).Scale(0.5)
	span := to.X - from.X
	if !b.Registry.Claim(center.X, center.Y, span/2+0.5) {
		return false
	}

	mesh := b.Mesh(GroupStructures)
	deckY := max(terrain.Elevation(from.X, from.Y), terrain.Elevation(to.X, to.Y)) + bridgeClearance
	hw := float32(bridgeWidth / 2)

	mesh.Box(math.Vec3{X: center.X, Y: deckY, Z: center.Y},
		math.Vec3{X: span / 2, Y: 0.15, Z: hw}, geom.MaterialWood)

	// Supports stand outside the path band under the deck.
	for _, x := range []float32{from.X + 1, from.X + 4, to.X - 3.5, to.X - 1} {
		for _, side := range []float32{-1, 1} {
			p := math.Vec2{X: x, Y: center.Y + side*(hw-0.3)}
			ground := terrain.Elevation(p.X, p.Y) - 0.3
			mesh.Cylinder(p.XZ(ground), 0.25, deckY-ground, 8, geom.MaterialWood)
			b.AddCollider(collision.Circle(p, 0.25))
		}
	}

	// Railing posts with a rail on each side.
	const postH = 0.9
	for _, side := range []float32{-1, 1} {
		z := center.Y + side*(hw-0.1)
		for x := from.X; x <= to.X+0.01; x += 2 {
			mesh.Cylinder(math.Vec3{X: x, Y: deckY + 0.15, Z: z}, 0.06, postH, 6, geom.MaterialWood)
		}
		mesh.BranchTo(
			math.Vec3{X: from.X, Y: deckY + 0.15 + postH, Z: z},
			math.Vec3{X: to.X, Y: deckY + 0.15 + postH, Z: z},
			0.05, 0.05, 6, geom.MaterialWood)
	}
	return true
}

func placeTower(b *Builder, site math.Vec2) bool {
	if !b.Registry.Claim(site.X, site.Y, towerRadius+2) {
		return false
	}

	mesh := b.Mesh(GroupStructures)
	base := terrain.Elevation(site.X, site.Y) - 0.3
	mesh.Cylinder(site.XZ(base), towerRadius, towerHeight+0.3, 12, geom.MaterialStone)

	// Platform.
	floor := base + towerHeight
	mesh.Cylinder(site.XZ(floor), 2.2, 0.3, 12, geom.MaterialWood)
	mesh.Disc(site.XZ(floor+0.3), 2.2, 12, true, geom.MaterialWood)
	mesh.Disc(site.XZ(floor), 2.2, 12, false, geom.MaterialWood)

	// Corner posts hold the roof.
	for i := 0; i < 4; i++ {
		a := float64(i)*gomath.Pi/2 + gomath.Pi/4
		p := math.Vec2{X: site.X + float32(gomath.Cos(a))*1.9, Y: site.Y + float32(gomath.Sin(a))*1.9}
		mesh.Cylinder(p.XZ(floor+0.3), 0.1, 2, 6, geom.MaterialWood)
	}

	roof := floor + 2.3
	mesh.Cone(site.XZ(roof), 2.6, 2, 12, geom.MaterialRoof)
	mesh.Disc(site.XZ(roof), 2.6, 12, false, geom.MaterialRoof)

	b.AddCollider(collision.Circle(site, towerRadius))
	return true
}
