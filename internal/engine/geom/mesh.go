package geom

import (
	gomath "math"

	"github.com/Faultbox/wildmere/pkg/math"
)

// degenerateArea is the cross-product length below which a triangle has no
// usable face normal and is dropped.
const degenerateArea = 1e-9

// uvEpsilon guards the UV determinant used in tangent derivation.
const uvEpsilon = 1e-8

// Mesh accumulates triangles. Three consecutive vertices form one triangle.
type Mesh struct {
	Vertices []Vertex
}

// NewMesh creates an empty mesh with room for n vertices.
func NewMesh(n int) *Mesh {
	return &Mesh{Vertices: make([]Vertex, 0, n)}
}

// Len returns the vertex count.
func (m *Mesh) Len() int {
	return len(m.Vertices)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Vertices) / 3
}

// Append copies all triangles from other into m.
func (m *Mesh) Append(other *Mesh) {
	if other == nil {
		return
	}
	m.Vertices = append(m.Vertices, other.Vertices...)
}

// Reset empties the mesh and keeps its capacity.
func (m *Mesh) Reset() {
	m.Vertices = m.Vertices[:0]
}

// Transformed returns a copy rotated by yaw around Y and translated.
func (m *Mesh) Transformed(yaw float32, offset math.Vec3) *Mesh {
	out := NewMesh(len(m.Vertices))
	for _, v := range m.Vertices {
		v.Position = v.Position.RotateY(yaw).Add(offset)
		v.Normal = v.Normal.RotateY(yaw)
		v.Tangent = v.Tangent.RotateY(yaw)
		out.Vertices = append(out.Vertices, v)
	}
	return out
}

// Bounds returns the bounding box of all vertices.
func (m *Mesh) Bounds() Bounds {
	if len(m.Vertices) == 0 {
		return Bounds{}
	}
	b := Bounds{Min: m.Vertices[0].Position, Max: m.Vertices[0].Position}
	for _, v := range m.Vertices[1:] {
		p := v.Position
		b.Min = math.Vec3{X: min(b.Min.X, p.X), Y: min(b.Min.Y, p.Y), Z: min(b.Min.Z, p.Z)}
		b.Max = math.Vec3{X: max(b.Max.X, p.X), Y: max(b.Max.Y, p.Y), Z: max(b.Max.Z, p.Z)}
	}
	return b
}

// CountByMaterial returns the vertex count per material.
func (m *Mesh) CountByMaterial() map[Material]int {
	counts := make(map[Material]int)
	for _, v := range m.Vertices {
		counts[v.Material]++
	}
	return counts
}

// Interleave flattens the mesh for GPU upload, VertexStride floats per vertex.
func (m *Mesh) Interleave() []float32 {
	out := make([]float32, 0, len(m.Vertices)*VertexStride)
	for _, v := range m.Vertices {
		out = append(out,
			v.Position.X, v.Position.Y, v.Position.Z,
			v.Normal.X, v.Normal.Y, v.Normal.Z,
			v.Tangent.X, v.Tangent.Y, v.Tangent.Z,
			v.UV.X, v.UV.Y,
			float32(v.Material),
		)
	}
	return out
}

// FaceNormal returns the unnormalised cross(b-a, c-a) of triangle i.
func (m *Mesh) FaceNormal(i int) math.Vec3 {
	a := m.Vertices[i*3].Position
	b := m.Vertices[i*3+1].Position
	c := m.Vertices[i*3+2].Position
	return b.Sub(a).Cross(c.Sub(a))
}

// AddTriangle appends a triangle whose normals and UVs are already set and
// fills in tangents. Triangles with no area are dropped.
func (m *Mesh) AddTriangle(a, b, c Vertex) {
	e1 := b.Position.Sub(a.Position)
	e2 := c.Position.Sub(a.Position)
	if e1.Cross(e2).Length() < degenerateArea {
		return
	}

	du1, dv1 := b.UV.X-a.UV.X, b.UV.Y-a.UV.Y
	du2, dv2 := c.UV.X-a.UV.X, c.UV.Y-a.UV.Y
	det := du1*dv2 - du2*dv1

	var faceTangent math.Vec3
	haveTangent := false
	if gomath.Abs(float64(det)) > uvEpsilon {
		faceTangent = e1.Scale(dv2).Sub(e2.Scale(dv1)).Scale(1 / det)
		haveTangent = true
	}

	for _, v := range []*Vertex{&a, &b, &c} {
		v.Tangent = orthoTangent(v.Normal, faceTangent, haveTangent)
	}
	m.Vertices = append(m.Vertices, a, b, c)
}

// addFlat appends a triangle with a face normal derived from its winding.
func (m *Mesh) addFlat(p0, p1, p2 math.Vec3, uv0, uv1, uv2 math.Vec2, mat Material) {
	n := p1.Sub(p0).Cross(p2.Sub(p0))
	if n.Length() < degenerateArea {
		return
	}
	n = n.Normalize()
	m.AddTriangle(
		Vertex{Position: p0, Normal: n, UV: uv0, Material: mat},
		Vertex{Position: p1, Normal: n, UV: uv1, Material: mat},
		Vertex{Position: p2, Normal: n, UV: uv2, Material: mat},
	)
}

// orthoTangent projects t onto the plane of n. When no usable t exists a
// tangent is derived from n alone.
func orthoTangent(n, t math.Vec3, ok bool) math.Vec3 {
	if ok {
		p := t.Sub(n.Scale(n.Dot(t)))
		if p.Length() > 1e-6 {
			return p.Normalize()
		}
	}
	return TangentFromNormal(n)
}

// TangentFromNormal returns a unit vector orthogonal to n.
func TangentFromNormal(n math.Vec3) math.Vec3 {
	ref := math.Vec3{X: 1}
	if math.Abs(n.X) > 0.9 {
		ref = math.Vec3{Z: 1}
	}
	return ref.Sub(n.Scale(n.Dot(ref))).Normalize()
}
