package geom

import (
	gomath "math"

	"github.com/Faultbox/wildmere/pkg/math"
)

// MinSegments is the smallest ring resolution any round primitive uses.
const MinSegments = 3

// Basis is an orthonormal frame built around a direction.
type Basis struct {
	Forward math.Vec3
	Right   math.Vec3
	Up      math.Vec3
}

// BasisFor builds a right-handed frame around dir. A zero-length dir falls
// back to +Y, and a near-vertical dir switches the up reference to +X.
func BasisFor(dir math.Vec3) Basis {
	f := dir.NormalizeOr(math.Up, 1e-6)
	ref := math.Up
	if math.Abs(f.Y) > 0.99 {
		ref = math.Vec3{X: 1}
	}
	r := f.Cross(ref).Normalize()
	u := r.Cross(f)
	return Basis{Forward: f, Right: r, Up: u}
}

// ring returns the offset of angle theta on a unit ring in the basis plane.
func (b Basis) ring(theta float64) math.Vec3 {
	s, c := gomath.Sincos(theta)
	return b.Right.Scale(float32(c)).Add(b.Up.Scale(float32(s)))
}

func clampSegments(n int) int {
	if n < MinSegments {
		return MinSegments
	}
	return n
}

// Branch sweeps a tapered tube of the given length from start along dir.
// Side normals tilt with the taper so lighting follows the slope.
func (m *Mesh) Branch(start, dir math.Vec3, length, r0, r1 float32, segments int, mat Material) {
	segments = clampSegments(segments)
	basis := BasisFor(dir)
	end := start.Add(basis.Forward.Scale(length))
	step := 2 * gomath.Pi / float64(segments)

	for i := 0; i < segments; i++ {
		ra := basis.ring(float64(i) * step)
		rb := basis.ring(float64(i+1) * step)

		b0 := start.Add(ra.Scale(r0))
		b1 := start.Add(rb.Scale(r0))
		t0 := end.Add(ra.Scale(r1))
		t1 := end.Add(rb.Scale(r1))

		na := ra.Scale(length).Add(basis.Forward.Scale(r0 - r1)).Normalize()
		nb := rb.Scale(length).Add(basis.Forward.Scale(r0 - r1)).Normalize()

		u0 := float32(i) / float32(segments)
		u1 := float32(i+1) / float32(segments)

		m.AddTriangle(
			Vertex{Position: b0, Normal: na, UV: math.Vec2{X: u0, Y: 0}, Material: mat},
			Vertex{Position: t0, Normal: na, UV: math.Vec2{X: u0, Y: 1}, Material: mat},
			Vertex{Position: b1, Normal: nb, UV: math.Vec2{X: u1, Y: 0}, Material: mat},
		)
		m.AddTriangle(
			Vertex{Position: b1, Normal: nb, UV: math.Vec2{X: u1, Y: 0}, Material: mat},
			Vertex{Position: t0, Normal: na, UV: math.Vec2{X: u0, Y: 1}, Material: mat},
			Vertex{Position: t1, Normal: nb, UV: math.Vec2{X: u1, Y: 1}, Material: mat},
		)
	}
}

// BranchTo sweeps a tapered tube between two points.
func (m *Mesh) BranchTo(from, to math.Vec3, r0, r1 float32, segments int, mat Material) {
	d := to.Sub(from)
	m.Branch(from, d, d.Length(), r0, r1, segments, mat)
}

// Cylinder builds the side of an upright cylinder standing on base.
func (m *Mesh) Cylinder(base math.Vec3, radius, height float32, segments int, mat Material) {
	m.TaperedCylinder(base, radius, radius, height, segments, mat)
}

// TaperedCylinder builds the side of an upright cylinder whose radius goes
// from bottom at base to top at base+height.
func (m *Mesh) TaperedCylinder(base math.Vec3, bottom, top, height float32, segments int, mat Material) {
	m.Branch(base, math.Up, height, bottom, top, segments, mat)
}

// Disc builds a flat fan facing +Y when up is true, -Y otherwise.
func (m *Mesh) Disc(center math.Vec3, radius float32, segments int, up bool, mat Material) {
	segments = clampSegments(segments)
	step := 2 * gomath.Pi / float64(segments)
	uvC := math.Vec2{X: 0.5, Y: 0.5}
	for i := 0; i < segments; i++ {
		pa, uva := discPoint(center, radius, float64(i)*step)
		pb, uvb := discPoint(center, radius, float64(i+1)*step)
		if up {
			m.addFlat(center, pb, pa, uvC, uvb, uva, mat)
		} else {
			m.addFlat(center, pa, pb, uvC, uva, uvb, mat)
		}
	}
}

func discPoint(center math.Vec3, radius float32, theta float64) (math.Vec3, math.Vec2) {
	s, c := gomath.Sincos(theta)
	p := math.Vec3{X: center.X + float32(c)*radius, Y: center.Y, Z: center.Z + float32(s)*radius}
	uv := math.Vec2{X: 0.5 + 0.5*float32(c), Y: 0.5 + 0.5*float32(s)}
	return p, uv
}

// Cone builds a flat-shaded upright cone: one triangle per segment from the
// base ring to the apex, each with its own face normal. The base is open.
func (m *Mesh) Cone(base math.Vec3, radius, height float32, segments int, mat Material) {
	segments = clampSegments(segments)
	step := 2 * gomath.Pi / float64(segments)
	apex := base.Add(math.Vec3{Y: height})
	for i := 0; i < segments; i++ {
		pa, _ := discPoint(base, radius, float64(i)*step)
		pb, _ := discPoint(base, radius, float64(i+1)*step)
		u0 := float32(i) / float32(segments)
		u1 := float32(i+1) / float32(segments)
		m.addFlat(pa, apex, pb,
			math.Vec2{X: u0, Y: 0}, math.Vec2{X: (u0 + u1) / 2, Y: 1}, math.Vec2{X: u1, Y: 0}, mat)
	}
}

// Box builds an axis-aligned box with one normal per face.
func (m *Mesh) Box(center, half math.Vec3, mat Material) {
	x := math.Vec3{X: half.X}
	y := math.Vec3{Y: half.Y}
	z := math.Vec3{Z: half.Z}

	// Each face is (normal offset, s, t) with cross(s, t) along the normal.
	faces := [6][3]math.Vec3{
		{x, y, z},
		{x.Neg(), z, y},
		{y, z, x},
		{y.Neg(), x, z},
		{z, x, y},
		{z.Neg(), y, x},
	}
	for _, f := range faces {
		c := center.Add(f[0])
		s, t := f[1], f[2]
		a := c.Sub(s).Sub(t)
		b := c.Add(s).Sub(t)
		cc := c.Add(s).Add(t)
		d := c.Sub(s).Add(t)
		m.quadUV(a, b, cc, d, s.Length()*2, t.Length()*2, mat)
	}
}

// Quad builds two triangles (a,b,c) and (a,c,d). The corners must be listed
// counter-clockwise as seen from the front.
func (m *Mesh) Quad(a, b, c, d math.Vec3, mat Material) {
	m.quadUV(a, b, c, d, 1, 1, mat)
}

func (m *Mesh) quadUV(a, b, c, d math.Vec3, su, sv float32, mat Material) {
	uva := math.Vec2{}
	uvb := math.Vec2{X: su}
	uvc := math.Vec2{X: su, Y: sv}
	uvd := math.Vec2{Y: sv}
	m.addFlat(a, b, c, uva, uvb, uvc, mat)
	m.addFlat(a, c, d, uva, uvc, uvd, mat)
}

// Triangle builds a single flat triangle from three explicit points.
func (m *Mesh) Triangle(a, b, c math.Vec3, mat Material) {
	m.addFlat(a, b, c, math.Vec2{}, math.Vec2{X: 1}, math.Vec2{X: 0.5, Y: 1}, mat)
}

// Sphere builds a latitude/longitude sphere with normals pointing away from
// center. Pole rows emit one triangle per segment.
func (m *Mesh) Sphere(center math.Vec3, radius float32, latSegments, lonSegments int, mat Material) {
	latSegments = max(latSegments, 2)
	lonSegments = clampSegments(lonSegments)

	dir := func(lat, lon int) math.Vec3 {
		switch lat {
		case 0:
			return math.Up
		case latSegments:
			return math.Up.Neg()
		}
		theta := gomath.Pi * float64(lat) / float64(latSegments)
		phi := 2 * gomath.Pi * float64(lon) / float64(lonSegments)
		st, ct := gomath.Sincos(theta)
		sp, cp := gomath.Sincos(phi)
		return math.Vec3{X: float32(st * cp), Y: float32(ct), Z: float32(st * sp)}
	}
	vert := func(lat, lon int) Vertex {
		n := dir(lat, lon)
		return Vertex{
			Position: center.Add(n.Scale(radius)),
			Normal:   n,
			UV:       math.Vec2{X: float32(lon) / float32(lonSegments), Y: float32(lat) / float32(latSegments)},
			Material: mat,
		}
	}

	for i := 0; i < latSegments; i++ {
		for j := 0; j < lonSegments; j++ {
			up0, up1 := vert(i, j), vert(i, j+1)
			lo0, lo1 := vert(i+1, j), vert(i+1, j+1)
			if i != latSegments-1 {
				m.AddTriangle(lo0, up0, lo1)
			}
			if i != 0 {
				m.AddTriangle(lo1, up0, up1)
			}
		}
	}
}

// Hull builds flat faces over points, turning each face so its normal points
// away from center. Faces index into points.
func (m *Mesh) Hull(center math.Vec3, points []math.Vec3, faces [][3]int, mat Material) {
	for _, f := range faces {
		a, b, c := points[f[0]], points[f[1]], points[f[2]]
		n := b.Sub(a).Cross(c.Sub(a))
		centroid := a.Add(b).Add(c).Scale(1.0 / 3)
		if n.Dot(centroid.Sub(center)) < 0 {
			b, c = c, b
		}
		m.addFlat(a, b, c, math.Vec2{X: a.X, Y: a.Z}, math.Vec2{X: b.X, Y: b.Z}, math.Vec2{X: c.X, Y: c.Z}, mat)
	}
}
