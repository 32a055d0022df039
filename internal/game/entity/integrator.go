package entity

import (
	"github.com/Faultbox/wildmere/internal/engine/terrain"
	"github.com/Faultbox/wildmere/internal/game/collision"
	"github.com/Faultbox/wildmere/pkg/math"
)

// Tuning holds movement constants.
type Tuning struct {
	WalkSpeed   float32 `yaml:"walk_speed"`
	RunSpeed    float32 `yaml:"run_speed"`
	Accel       float32 `yaml:"accel"`
	Decel       float32 `yaml:"decel"`
	TurnRate    float32 `yaml:"turn_rate"`
	StridePhase float32 `yaml:"stride_phase"`
	JumpSpeed   float32 `yaml:"jump_speed"`
	Gravity     float32 `yaml:"gravity"`
}

// DefaultTuning returns the standard movement feel.
func DefaultTuning() Tuning {
	return Tuning{
		WalkSpeed:   4.5,
		RunSpeed:    8,
		Accel:       20,
		Decel:       25,
		TurnRate:    10,
		StridePhase: 1.8,
		JumpSpeed:   6.5,
		Gravity:     20,
	}
}

const (
	// MaxStep caps dt so a stalled frame cannot tunnel through colliders.
	MaxStep = 0.1
	// movingSpeed is the horizontal speed below which the player counts
	// as standing still.
	movingSpeed = 0.1
	// fallGap is how far the ground may drop under a grounded player
	// before it starts falling instead of snapping down.
	fallGap = 0.35
	// collisionDamping scales horizontal velocity after a push-out.
	collisionDamping = 0.5
)

// Ground reports the height an actor stands on.
type Ground interface {
	GroundHeight(p math.Vec2, feetY, stepHeight float32) float32
}

// terrainGround is the bare height field.
type terrainGround struct{}

func (terrainGround) GroundHeight(p math.Vec2, _, _ float32) float32 {
	return terrain.Elevation(p.X, p.Y)
}

// StepResult reports what happened during one Step.
type StepResult struct {
	Collided bool
	Jumped   bool
	Landed   bool
}

// Integrator advances a player by one frame: input to velocity, facing,
// walk phase, gravity, collision and ground following.
type Integrator struct {
	Tuning    Tuning
	Resolver  *collision.Resolver
	Colliders collision.Source
	Ground    Ground
	Bound     float32 // actors are clamped to [-Bound, Bound] on X and Z
}

// NewIntegrator creates an integrator against colliders and ground. A nil
// ground follows the bare height field.
func NewIntegrator(t Tuning, colliders collision.Source, ground Ground, bound float32) *Integrator {
	if ground == nil {
		ground = terrainGround{}
	}
	return &Integrator{
		Tuning:    t,
		Resolver:  collision.NewResolver(),
		Colliders: colliders,
		Ground:    ground,
		Bound:     bound,
	}
}

// MoveDirection turns a camera-relative move axis into a world direction on
// the XZ plane. The result is at most unit length.
func MoveDirection(move math.Vec2, lookYaw float32) math.Vec3 {
	if move.Length() > 1 {
		move = move.Normalize()
	}
	forward := math.Vec3{Z: 1}.RotateY(lookYaw)
	right := forward.Cross(math.Up)
	return forward.Scale(move.Y).Add(right.Scale(move.X))
}

// approach moves v toward target by at most maxDelta.
func approach(v, target math.Vec2, maxDelta float32) math.Vec2 {
	d := target.Sub(v)
	l := d.Length()
	if l <= maxDelta || l == 0 {
		return target
	}
	return v.Add(d.Scale(maxDelta / l))
}

// Step advances p by dt seconds.
func (it *Integrator) Step(p *Player, in Intent, dt float32) StepResult {
	var res StepResult
	dt = math.Clamp(dt, 0, MaxStep)
	k := &p.Kinematics
	tn := it.Tuning

	// Horizontal velocity.
	dir := MoveDirection(in.Move, in.LookYaw)
	speed := tn.WalkSpeed
	if in.Run {
		speed = tn.RunSpeed
	}
	target := dir.XZ().Scale(speed)
	rate := tn.Accel
	if in.Move.Length() == 0 {
		rate = tn.Decel
	}
	vh := approach(k.Velocity.XZ(), target, rate*dt)

	// Facing follows velocity, turned at a capped rate.
	hs := vh.Length()
	k.Moving = hs > movingSpeed
	if k.Moving {
		k.TargetYaw = math.WrapAngle(math.Atan2(vh.X, vh.Y))
	}
	turn := math.Clamp(math.AngleDiff(k.Yaw, k.TargetYaw), -tn.TurnRate*dt, tn.TurnRate*dt)
	k.Yaw = math.WrapAngle(k.Yaw + turn)

	k.WalkPhase = math.WrapAngle(k.WalkPhase + hs*dt*tn.StridePhase)

	// Vertical.
	vy := k.Velocity.Y
	if in.Jump && k.Grounded {
		vy = tn.JumpSpeed
		k.Grounded = false
		res.Jumped = true
	} else if !k.Grounded {
		vy -= tn.Gravity * dt
	}

	proposed := k.Position.Add(math.Vec3{X: vh.X * dt, Y: vy * dt, Z: vh.Y * dt})

	if it.Resolver != nil && it.Colliders != nil {
		r := it.Resolver.Resolve(proposed, p.Radius, it.Colliders)
		proposed = r.Position
		if r.Collided {
			vh = vh.Scale(collisionDamping)
			res.Collided = true
		}
	}
	if it.Bound > 0 {
		proposed = collision.ClampBounds(proposed, it.Bound)
	}

	// Ground following.
	step := float32(collision.DefaultStepHeight)
	if it.Resolver != nil {
		step = it.Resolver.StepHeight
	}
	ground := it.Ground.GroundHeight(proposed.XZ(), proposed.Y, step)
	if k.Grounded {
		if proposed.Y-ground > fallGap {
			k.Grounded = false
			vy = 0
		} else {
			proposed.Y = ground
			vy = 0
		}
	} else if proposed.Y <= ground && vy <= 0 {
		proposed.Y = ground
		vy = 0
		k.Grounded = true
		res.Landed = true
	}

	k.Position = proposed
	k.Velocity = math.Vec3{X: vh.X, Y: vy, Z: vh.Y}
	return res
}
