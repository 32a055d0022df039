package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/wildmere/pkg/math"
)

// checkWinding asserts that every triangle's face normal lies in the same
// hemisphere as its stored vertex normals, and that normals and tangents are
// unit length and orthogonal.
func checkWinding(t *testing.T, name string, m *Mesh) {
	t.Helper()
	require.Zero(t, m.Len()%3, "%s: vertex count not a multiple of 3", name)
	for i := 0; i < m.TriangleCount(); i++ {
		face := m.FaceNormal(i)
		for k := 0; k < 3; k++ {
			v := m.Vertices[i*3+k]
			if face.Dot(v.Normal) <= 0 {
				t.Fatalf("%s: triangle %d vertex %d is wound against its normal (face %v, normal %v)",
					name, i, k, face, v.Normal)
			}
			assert.InDelta(t, 1.0, v.Normal.Length(), 1e-4, "%s: normal length", name)
			assert.InDelta(t, 1.0, v.Tangent.Length(), 1e-4, "%s: tangent length", name)
			assert.InDelta(t, 0.0, v.Normal.Dot(v.Tangent), 1e-4, "%s: tangent not orthogonal", name)
		}
	}
}

func TestPrimitiveWinding(t *testing.T) {
	origin := math.Vec3{X: 1, Y: 2, Z: -3}
	tests := []struct {
		name  string
		build func(m *Mesh)
	}{
		{"cylinder", func(m *Mesh) { m.Cylinder(origin, 0.5, 2, 8, MaterialWood) }},
		{"tapered", func(m *Mesh) { m.TaperedCylinder(origin, 0.5, 0.2, 3, 7, MaterialBark) }},
		{"tapered_to_point", func(m *Mesh) { m.TaperedCylinder(origin, 0.5, 0, 1, 6, MaterialBark) }},
		{"cone", func(m *Mesh) { m.Cone(origin, 1.5, 2, 9, MaterialNeedles) }},
		{"disc_up", func(m *Mesh) { m.Disc(origin, 1, 6, true, MaterialMetal) }},
		{"disc_down", func(m *Mesh) { m.Disc(origin, 1, 6, false, MaterialMetal) }},
		{"box", func(m *Mesh) { m.Box(origin, math.Vec3{X: 1, Y: 0.5, Z: 2}, MaterialStone) }},
		{"sphere", func(m *Mesh) { m.Sphere(origin, 0.7, 6, 8, MaterialLeaves) }},
		{"small_sphere", func(m *Mesh) { m.Sphere(origin, 0.05, 4, 6, MaterialSkin) }},
		{"branch_diagonal", func(m *Mesh) { m.Branch(origin, math.Vec3{X: 1, Y: 1, Z: -0.5}, 2, 0.2, 0.1, 6, MaterialBark) }},
		{"branch_down", func(m *Mesh) { m.Branch(origin, math.Vec3{Y: -1}, 1, 0.1, 0.1, 5, MaterialBark) }},
		{"branch_horizontal", func(m *Mesh) { m.Branch(origin, math.Vec3{Z: 1}, 1, 0.1, 0.05, 5, MaterialBark) }},
		{"triangle", func(m *Mesh) {
			m.Triangle(math.Vec3{}, math.Vec3{X: 1}, math.Vec3{Y: 1}, MaterialPlaster)
		}},
		{"quad", func(m *Mesh) {
			m.Quad(math.Vec3{}, math.Vec3{X: 1}, math.Vec3{X: 1, Y: 1}, math.Vec3{Y: 1}, MaterialRoof)
		}},
		{"hull", func(m *Mesh) {
			pts := []math.Vec3{
				{X: -1, Y: 0, Z: -1}, {X: 1, Y: 0, Z: -1}, {X: 1, Y: 0, Z: 1}, {X: -1, Y: 0, Z: 1},
				{X: -0.8, Y: 1, Z: -0.7}, {X: 0.9, Y: 1.1, Z: -0.8}, {X: 0.7, Y: 0.9, Z: 0.8}, {X: -0.6, Y: 1.2, Z: 0.9},
			}
			faces := [][3]int{
				{0, 1, 2}, {0, 2, 3}, {4, 6, 5}, {4, 7, 6},
				{0, 5, 1}, {0, 4, 5}, {1, 6, 2}, {1, 5, 6},
				{2, 7, 3}, {2, 6, 7}, {3, 4, 0}, {3, 7, 4},
			}
			m.Hull(math.Vec3{Y: 0.5}, pts, faces, MaterialRock)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMesh(0)
			tt.build(m)
			require.NotZero(t, m.Len())
			checkWinding(t, tt.name, m)
		})
	}
}

func TestBoxNormalsPointOutward(t *testing.T) {
	m := NewMesh(36)
	center := math.Vec3{X: 5, Y: 1, Z: 5}
	m.Box(center, math.Vec3{X: 1, Y: 1, Z: 1}, MaterialStone)
	require.Equal(t, 36, m.Len())
	for _, v := range m.Vertices {
		assert.Greater(t, v.Normal.Dot(v.Position.Sub(center)), float32(0))
	}
}

func TestSphereNormalsRadial(t *testing.T) {
	m := NewMesh(0)
	center := math.Vec3{X: -2, Y: 3}
	m.Sphere(center, 2, 5, 7, MaterialLeaves)
	// Pole rows give one triangle per longitude segment, the rest two.
	assert.Equal(t, 7*2+7*2*3, m.TriangleCount())
	for _, v := range m.Vertices {
		radial := v.Position.Sub(center).Normalize()
		assert.InDelta(t, 1.0, radial.Dot(v.Normal), 1e-4)
	}
}

func TestConeIsFlatShaded(t *testing.T) {
	m := NewMesh(0)
	m.Cone(math.Vec3{}, 1, 1, 6, MaterialRoof)
	require.Equal(t, 6, m.TriangleCount())
	for i := 0; i < m.TriangleCount(); i++ {
		n := m.Vertices[i*3].Normal
		assert.Equal(t, n, m.Vertices[i*3+1].Normal)
		assert.Equal(t, n, m.Vertices[i*3+2].Normal)
	}
}

func TestBasisForFallbacks(t *testing.T) {
	tests := []struct {
		name string
		dir  math.Vec3
		want math.Vec3
	}{
		{"zero", math.Vec3{}, math.Up},
		{"vertical", math.Vec3{Y: 3}, math.Up},
		{"down", math.Vec3{Y: -1}, math.Up.Neg()},
		{"side", math.Vec3{X: 2}, math.Vec3{X: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := BasisFor(tt.dir)
			assert.InDelta(t, 1.0, b.Forward.Dot(tt.want), 1e-5)
			assert.InDelta(t, 1.0, b.Right.Length(), 1e-5)
			assert.InDelta(t, 1.0, b.Up.Length(), 1e-5)
			assert.InDelta(t, 0.0, b.Right.Dot(b.Forward), 1e-5)
			assert.InDelta(t, 0.0, b.Up.Dot(b.Forward), 1e-5)
			assert.InDelta(t, 0.0, b.Up.Dot(b.Right), 1e-5)
		})
	}
}

func TestDegenerateTrianglesDropped(t *testing.T) {
	m := NewMesh(0)
	p := math.Vec3{X: 1, Y: 1, Z: 1}
	m.Triangle(p, p, p, MaterialStone)
	m.Triangle(math.Vec3{}, math.Vec3{X: 1}, math.Vec3{X: 2}, MaterialStone)
	assert.Zero(t, m.Len())
}

func TestTangentFallbackOnFlatUV(t *testing.T) {
	m := NewMesh(0)
	n := math.Vec3{Y: 1}
	same := math.Vec2{X: 0.3, Y: 0.3}
	m.AddTriangle(
		Vertex{Position: math.Vec3{}, Normal: n, UV: same},
		Vertex{Position: math.Vec3{Z: 1}, Normal: n, UV: same},
		Vertex{Position: math.Vec3{X: 1}, Normal: n, UV: same},
	)
	require.Equal(t, 3, m.Len())
	for _, v := range m.Vertices {
		assert.InDelta(t, 1.0, v.Tangent.Length(), 1e-5)
		assert.InDelta(t, 0.0, v.Tangent.Dot(n), 1e-5)
	}
}

func TestTransformedRotatesNormals(t *testing.T) {
	m := NewMesh(0)
	m.Box(math.Vec3{}, math.Vec3{X: 1, Y: 1, Z: 1}, MaterialWood)
	moved := m.Transformed(1.2, math.Vec3{X: 10})
	require.Equal(t, m.Len(), moved.Len())
	checkWinding(t, "transformed", moved)
}

func TestInterleaveStride(t *testing.T) {
	m := NewMesh(0)
	m.Triangle(math.Vec3{}, math.Vec3{X: 1}, math.Vec3{Y: 1}, MaterialMail)
	flat := m.Interleave()
	require.Len(t, flat, 3*VertexStride)
	assert.Equal(t, float32(MaterialMail), flat[VertexStride-1])
}
