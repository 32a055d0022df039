// Package geom builds flat triangle-list meshes from procedural primitives.
//
// Every primitive winds counter-clockwise when seen from the side its normals
// point to, so cross(b-a, c-a) of each emitted triangle agrees with the stored
// vertex normals.
package geom

import "github.com/Faultbox/wildmere/pkg/math"

// Material tags a vertex with the surface treatment the renderer applies.
type Material uint8

const (
	MaterialGrass Material = iota
	MaterialDirt
	MaterialBark
	MaterialBirchBark
	MaterialLeaves
	MaterialNeedles
	MaterialRock
	MaterialStone
	MaterialWood
	MaterialPlaster
	MaterialRoof
	MaterialMetal
	MaterialSkin
	MaterialHair
	MaterialTunic
	MaterialMail
	MaterialTrousers
	MaterialBoots

	MaterialCount
)

var materialNames = [MaterialCount]string{
	"grass", "dirt", "bark", "birch_bark", "leaves", "needles", "rock", "stone",
	"wood", "plaster", "roof", "metal", "skin", "hair", "tunic", "mail",
	"trousers", "boots",
}

// String returns the material name.
func (m Material) String() string {
	if m < MaterialCount {
		return materialNames[m]
	}
	return "unknown"
}

// Vertex is one corner of a triangle.
type Vertex struct {
	Position math.Vec3
	Normal   math.Vec3
	Tangent  math.Vec3
	UV       math.Vec2
	Material Material
}

// Floats per vertex in Interleave output:
// position(3) normal(3) tangent(3) uv(2) material(1).
const VertexStride = 12

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}
