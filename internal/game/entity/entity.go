// Package entity holds the player actor and the integrator that moves it.
package entity

import (
	"github.com/Faultbox/wildmere/pkg/math"
)

// Kinematics is the motion state of an actor. Only the Integrator mutates
// it during play.
type Kinematics struct {
	Position  math.Vec3 `yaml:"position" json:"position"`
	Velocity  math.Vec3 `yaml:"velocity" json:"velocity"`
	Yaw       float32   `yaml:"yaw" json:"yaw"`
	TargetYaw float32   `yaml:"target_yaw" json:"target_yaw"`
	WalkPhase float32   `yaml:"walk_phase" json:"walk_phase"`
	Moving    bool      `yaml:"moving" json:"moving"`
	Grounded  bool      `yaml:"grounded" json:"grounded"`
}

// Intent is one frame of player input after key mapping. Move.X strafes
// right and Move.Y walks forward, both relative to LookYaw.
type Intent struct {
	Move            math.Vec2
	LookYaw         float32
	Jump            bool
	Interact        bool
	Attack          bool
	Run             bool
	ToggleInventory bool
	QuickSave       bool
}

// DefaultRadius is the player's collision radius.
const DefaultRadius = 0.3

// Player is the controlled character.
type Player struct {
	Name   string
	Radius float32
	Kinematics
}

// NewPlayer creates a grounded player standing at position.
func NewPlayer(name string, position math.Vec3) *Player {
	return &Player{
		Name:   name,
		Radius: DefaultRadius,
		Kinematics: Kinematics{
			Position: position,
			Grounded: true,
		},
	}
}

// Jumping reports whether the player is airborne.
func (p *Player) Jumping() bool {
	return !p.Grounded
}

// Speed returns the horizontal speed.
func (p *Player) Speed() float32 {
	return p.Velocity.XZ().Length()
}
