// Package character builds the procedural humanoid rig: limb angles from a
// walk phase, then a full mesh from primitives every frame.
package character

import (
	gomath "math"

	"github.com/Faultbox/wildmere/pkg/math"
)

// Walk cycle tuning. Angles are in radians; positive limb angles swing
// toward +Z (forward).
const (
	LegSwing  = 0.5
	ArmSwing  = 0.45
	KneeBase  = 0.05
	KneeLift  = 0.7
	ElbowBase = 0.25
	ElbowLift = 0.2
	Bob       = 0.05
)

// Jump pose. The jump never blends with the walk cycle.
const (
	JumpLegTuck  = 0.6
	JumpKneeBend = 1.2
	JumpArmRaise = 2.4
	JumpElbow    = 0.3
)

// Limb holds the swing of a limb's upper segment and the bend of its
// middle joint.
type Limb struct {
	Swing float32
	Bend  float32
}

// Pose is the set of joint angles for one frame.
type Pose struct {
	LeftLeg, RightLeg Limb
	LeftArm, RightArm Limb
	Bob               float32
	Jumping           bool
}

// PoseFor computes joint angles for walk phase, or the fixed jump pose.
func PoseFor(phase float32, jumping bool) Pose {
	if jumping {
		leg := Limb{Swing: JumpLegTuck, Bend: JumpKneeBend}
		arm := Limb{Swing: JumpArmRaise, Bend: JumpElbow}
		return Pose{LeftLeg: leg, RightLeg: leg, LeftArm: arm, RightArm: arm, Jumping: true}
	}

	s := math.Sin(phase)
	return Pose{
		LeftLeg:  leg(s),
		RightLeg: leg(-s),
		// Arms swing against the leg on the same side.
		LeftArm:  arm(-s),
		RightArm: arm(s),
		Bob:      float32(gomath.Abs(gomath.Sin(2*float64(phase)))) * Bob,
	}
}

// leg returns the leg pose at forward fraction f in [-1, 1]. The knee only
// lifts while the leg swings forward.
func leg(f float32) Limb {
	return Limb{Swing: f * LegSwing, Bend: KneeBase + max(0, f)*KneeLift}
}

func arm(f float32) Limb {
	return Limb{Swing: f * ArmSwing, Bend: ElbowBase + max(0, f)*ElbowLift}
}
