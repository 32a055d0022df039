package world

import (
	gomath "math"

	"github.com/Faultbox/wildmere/internal/engine/geom"
	"github.com/Faultbox/wildmere/internal/engine/terrain"
	"github.com/Faultbox/wildmere/internal/game/collision"
	"github.com/Faultbox/wildmere/pkg/hashrand"
	"github.com/Faultbox/wildmere/pkg/math"
)

// Species selects a tree builder.
type Species uint8

const (
	SpeciesOak Species = iota
	SpeciesPine
	SpeciesBirch
	SpeciesWillow
	SpeciesDeadwood
)

// String returns the species name.
func (s Species) String() string {
	switch s {
	case SpeciesOak:
		return "oak"
	case SpeciesPine:
		return "pine"
	case SpeciesBirch:
		return "birch"
	case SpeciesWillow:
		return "willow"
	case SpeciesDeadwood:
		return "deadwood"
	}
	return "unknown"
}

// SpeciesFor maps a [0,1) sample onto a species.
func SpeciesFor(v float32) Species {
	switch {
	case v < 0.30:
		return SpeciesOak
	case v < 0.55:
		return SpeciesPine
	case v < 0.72:
		return SpeciesBirch
	case v < 0.85:
		return SpeciesWillow
	default:
		return SpeciesDeadwood
	}
}

// trunkScale is the trunk radius of each species at size 1.
var trunkScale = [...]float32{
	SpeciesOak:      0.35,
	SpeciesPine:     0.28,
	SpeciesBirch:    0.18,
	SpeciesWillow:   0.32,
	SpeciesDeadwood: 0.25,
}

// Tree holds the parameters one tree is built from.
type Tree struct {
	Species Species
	Base    math.Vec3
	Size    float32
	Trunk   float32
}

// FootprintRadius is the ground a tree claims.
func (t Tree) FootprintRadius() float32 {
	return t.Trunk*3 + 1
}

func generateTrees(b *Builder) int {
	p := b.Params
	rng := p.Stream(saltTrees)
	spacing := p.TreeSpacing
	n := int((2*p.HalfExtent - spacing) / spacing)
	origin := -p.HalfExtent + spacing
	mesh := b.Mesh(GroupTrees)

	placed := 0
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			slot := rng.Counter()
			jx, jz := rng.Next(), rng.Next()
			keep := rng.Next()
			kind := rng.Next()
			size := rng.Next()

			if keep >= p.TreeDensity {
				continue
			}
			x := origin + float32(i)*spacing + (jx-0.5)*spacing*0.6
			z := origin + float32(j)*spacing + (jz-0.5)*spacing*0.6
			if terrain.NearPath(x, z, 2) {
				continue
			}

			t := Tree{Species: SpeciesFor(kind), Size: 0.8 + size*0.6}
			t.Trunk = trunkScale[t.Species] * t.Size
			if !b.Registry.Claim(x, z, t.FootprintRadius()) {
				continue
			}
			t.Base = math.Vec3{X: x, Y: terrain.Elevation(x, z) - 0.2, Z: z}

			BuildTree(mesh, t, hashrand.Derive(slot))
			b.AddCollider(collision.Circle(math.Vec2{X: x, Y: z}, t.Trunk))
			placed++
		}
	}
	return placed
}

// BuildTree appends the mesh for t, drawing detail from rng.
func BuildTree(mesh *geom.Mesh, t Tree, rng *hashrand.Stream) {
	switch t.Species {
	case SpeciesOak:
		buildOak(mesh, t, rng)
	case SpeciesPine:
		buildPine(mesh, t, rng)
	case SpeciesBirch:
		buildBirch(mesh, t, rng)
	case SpeciesWillow:
		buildWillow(mesh, t, rng)
	default:
		buildDeadwood(mesh, t, rng)
	}
}

func above(base math.Vec3, y float32) math.Vec3 {
	return base.Add(math.Vec3{Y: y})
}

// heading returns a unit direction at yaw tilted up by pitch.
func heading(yaw, pitch float32) math.Vec3 {
	sy, cy := gomath.Sincos(float64(yaw))
	sp, cp := gomath.Sincos(float64(pitch))
	return math.Vec3{X: float32(sy * cp), Y: float32(sp), Z: float32(cy * cp)}
}

func buildOak(mesh *geom.Mesh, t Tree, rng *hashrand.Stream) {
	s := t.Size
	trunkH := 3 * s
	mesh.Branch(t.Base, math.Up, trunkH, t.Trunk, t.Trunk*0.6, 8, geom.MaterialBark)

	crown := above(t.Base, trunkH+0.6*s)
	mesh.Sphere(crown, 1.8*s, 4, 7, geom.MaterialLeaves)

	for k := 0; k < 4; k++ {
		yaw := float32(k)*gomath.Pi/2 + rng.Range(-0.4, 0.4)
		dir := heading(yaw, gomath.Pi/4)
		start := above(t.Base, 2.2*s)
		length := 1.4 * s
		mesh.Branch(start, dir, length, t.Trunk*0.45, t.Trunk*0.2, 5, geom.MaterialBark)

		tip := start.Add(dir.Scale(length))
		mesh.Sphere(above(tip, 0.3*s), 1.1*s*rng.Range(0.8, 1.1), 3, 6, geom.MaterialLeaves)
	}
}

func buildPine(mesh *geom.Mesh, t Tree, rng *hashrand.Stream) {
	s := t.Size
	mesh.TaperedCylinder(t.Base, t.Trunk, t.Trunk*0.3, 5*s, 6, geom.MaterialBark)

	for l := 0; l < 4; l++ {
		y := (1.5 + float32(l)*1.1) * s
		r := (2.2 - float32(l)*0.45) * s * rng.Range(0.9, 1.1)
		base := above(t.Base, y)
		mesh.Cone(base, r, 1.8*s, 8, geom.MaterialNeedles)
		mesh.Disc(base, r, 8, false, geom.MaterialNeedles)
	}
}

func buildBirch(mesh *geom.Mesh, t Tree, rng *hashrand.Stream) {
	s := t.Size
	lean := math.Vec3{X: rng.Range(-0.08, 0.08), Y: 1, Z: rng.Range(-0.08, 0.08)}.Normalize()
	trunkH := 4.5 * s
	mesh.Branch(t.Base, lean, trunkH, t.Trunk, t.Trunk*0.5, 6, geom.MaterialBirchBark)

	top := t.Base.Add(lean.Scale(trunkH))
	for k := 0; k < 6; k++ {
		a := rng.Range(0, math.TwoPi)
		r := rng.Range(0.2, 1.0) * s
		h := rng.Range(-1.3, 0.3) * s
		c := top.Add(math.Vec3{X: math.Cos(a) * r, Y: h, Z: math.Sin(a) * r})
		mesh.Sphere(c, 0.7*s, 3, 6, geom.MaterialLeaves)
	}
}

func buildWillow(mesh *geom.Mesh, t Tree, rng *hashrand.Stream) {
	s := t.Size
	trunkH := 2.8 * s
	mesh.Branch(t.Base, math.Up, trunkH, t.Trunk, t.Trunk*0.7, 8, geom.MaterialBark)

	top := above(t.Base, trunkH)
	mesh.Sphere(above(top, 0.4*s), 1.6*s, 4, 7, geom.MaterialLeaves)

	// Strands droop along a parabola with shrinking spheres.
	const strands, beads = 8, 5
	for k := 0; k < strands; k++ {
		a := float32(k)*math.TwoPi/strands + rng.Range(-0.2, 0.2)
		out := math.Vec3{X: math.Cos(a), Z: math.Sin(a)}
		start := top.Add(out.Scale(1.2 * s)).Add(math.Vec3{Y: 0.3 * s})
		reach := rng.Range(0.8, 1.2) * s
		for i := 0; i < beads; i++ {
			f := float32(i) / (beads - 1)
			c := start.Add(out.Scale(f * reach)).Add(math.Vec3{Y: -2.2 * s * f * f})
			mesh.Sphere(c, (0.45-0.08*float32(i))*s, 3, 5, geom.MaterialLeaves)
		}
	}
}

func buildDeadwood(mesh *geom.Mesh, t Tree, rng *hashrand.Stream) {
	s := t.Size
	mesh.Branch(t.Base, math.Up, 3*s, t.Trunk, t.Trunk*0.4, 6, geom.MaterialBark)

	for k := 0; k < 5; k++ {
		yaw := rng.Range(0, math.TwoPi)
		dir := heading(yaw, rng.Range(0.2, 0.9))
		start := above(t.Base, rng.Range(1.2, 2.6)*s)
		length := rng.Range(0.8, 1.6) * s
		mesh.Branch(start, dir, length, t.Trunk*0.35, 0.03, 5, geom.MaterialBark)

		// One twig forks off each branch tip.
		tip := start.Add(dir.Scale(length))
		twig := heading(yaw+rng.Range(-0.8, 0.8), rng.Range(0.3, 1.1))
		mesh.BranchTo(tip, tip.Add(twig.Scale(0.5*s)), 0.03, 0.01, 4, geom.MaterialBark)
	}
}
