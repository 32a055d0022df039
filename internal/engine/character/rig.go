package character

import (
	"github.com/Faultbox/wildmere/internal/engine/geom"
	"github.com/Faultbox/wildmere/pkg/math"
)

// Body proportions in meters. Feet rest on y=0 when standing still.
const (
	HipHeight     = 0.95
	HipSpread     = 0.11
	ThighLength   = 0.45
	ShinLength    = 0.42
	ShoulderWidth = 0.27
	UpperArm      = 0.32
	Forearm       = 0.28
	HeadRadius    = 0.15
)

var (
	torsoHalf = math.Vec3{X: 0.22, Y: 0.3, Z: 0.13}
	footHalf  = math.Vec3{X: 0.06, Y: 0.04, Z: 0.12}
)

// Appearance selects materials and attachments driven by equipment.
type Appearance struct {
	Armored bool // body armor: mail torso
	Helmet  bool
	Weapon  bool
}

// Rig owns the per-frame character mesh.
type Rig struct {
	Appearance Appearance
	mesh       *geom.Mesh
}

// NewRig creates a rig with an empty mesh buffer.
func NewRig() *Rig {
	return &Rig{mesh: geom.NewMesh(4096)}
}

// limbDir points down, rotated toward +Z by angle.
func limbDir(angle float32) math.Vec3 {
	return math.Vec3{Y: -math.Cos(angle), Z: math.Sin(angle)}
}

// Build regenerates the rig in local space for phase. The returned mesh is
// reused by the next Build.
func (r *Rig) Build(phase float32, jumping bool) *geom.Mesh {
	pose := PoseFor(phase, jumping)
	m := r.mesh
	m.Reset()

	hipY := float32(HipHeight) + pose.Bob
	torso := geom.MaterialTunic
	if r.Appearance.Armored {
		torso = geom.MaterialMail
	}

	// Left is +X when facing +Z.
	r.leg(m, math.Vec3{X: HipSpread, Y: hipY}, pose.LeftLeg)
	r.leg(m, math.Vec3{X: -HipSpread, Y: hipY}, pose.RightLeg)

	m.Box(math.Vec3{Y: hipY + torsoHalf.Y}, torsoHalf, torso)

	shoulderY := hipY + 2*torsoHalf.Y - 0.05
	r.arm(m, math.Vec3{X: ShoulderWidth, Y: shoulderY}, pose.LeftArm, torso, false)
	r.arm(m, math.Vec3{X: -ShoulderWidth, Y: shoulderY}, pose.RightArm, torso, r.Appearance.Weapon)

	neckBase := math.Vec3{Y: hipY + 2*torsoHalf.Y}
	head := math.Vec3{Y: neckBase.Y + 0.1 + HeadRadius}
	m.BranchTo(neckBase, neckBase.Add(math.Vec3{Y: 0.12}), 0.06, 0.055, 8, geom.MaterialSkin)
	m.Sphere(head, HeadRadius, 6, 10, geom.MaterialSkin)
	m.BranchTo(head.Add(math.Vec3{Y: 0.03, Z: -HeadRadius + 0.01}),
		head.Add(math.Vec3{Y: -0.17, Z: -HeadRadius - 0.06}), 0.05, 0.02, 6, geom.MaterialHair)

	if r.Appearance.Helmet {
		brim := head.Add(math.Vec3{Y: 0.04})
		m.Cone(brim, HeadRadius+0.02, 0.2, 10, geom.MaterialMetal)
		m.Disc(brim, HeadRadius+0.02, 10, false, geom.MaterialMetal)
	}
	return m
}

func (r *Rig) leg(m *geom.Mesh, hip math.Vec3, l Limb) {
	knee := hip.Add(limbDir(l.Swing).Scale(ThighLength))
	ankle := knee.Add(limbDir(l.Swing - l.Bend).Scale(ShinLength))

	m.Sphere(hip, 0.08, 4, 8, geom.MaterialTrousers)
	m.BranchTo(hip, knee, 0.08, 0.065, 8, geom.MaterialTrousers)
	m.Sphere(knee, 0.065, 4, 8, geom.MaterialTrousers)
	m.BranchTo(knee, ankle, 0.06, 0.045, 8, geom.MaterialTrousers)

	foot := ankle.Add(math.Vec3{Y: -footHalf.Y, Z: 0.05})
	m.Box(foot, footHalf, geom.MaterialBoots)
}

func (r *Rig) arm(m *geom.Mesh, shoulder math.Vec3, l Limb, sleeve geom.Material, weapon bool) {
	elbow := shoulder.Add(limbDir(l.Swing).Scale(UpperArm))
	hand := elbow.Add(limbDir(l.Swing + l.Bend).Scale(Forearm))

	m.Sphere(shoulder, 0.07, 4, 8, sleeve)
	m.BranchTo(shoulder, elbow, 0.06, 0.05, 8, sleeve)
	m.Sphere(elbow, 0.05, 4, 8, geom.MaterialSkin)
	m.BranchTo(elbow, hand, 0.05, 0.04, 8, geom.MaterialSkin)
	m.Sphere(hand, 0.06, 4, 8, geom.MaterialSkin)

	if weapon {
		m.Box(hand.Add(math.Vec3{Z: 0.4}), math.Vec3{X: 0.02, Y: 0.03, Z: 0.35}, geom.MaterialMetal)
	}
}

// Place returns a copy of m turned to yaw and moved to position.
func (r *Rig) Place(m *geom.Mesh, position math.Vec3, yaw float32) *geom.Mesh {
	return m.Transformed(yaw, position)
}
