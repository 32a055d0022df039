package entity

import (
	gomath "math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/wildmere/internal/game/collision"
	"github.com/Faultbox/wildmere/pkg/math"
)

type flatGround float32

func (g flatGround) GroundHeight(math.Vec2, float32, float32) float32 { return float32(g) }

func newTestIntegrator(src collision.Source) *Integrator {
	return NewIntegrator(DefaultTuning(), src, flatGround(0), 98)
}

func run(it *Integrator, p *Player, in Intent, steps int) (collided, landed bool) {
	for i := 0; i < steps; i++ {
		r := it.Step(p, in, 0.05)
		collided = collided || r.Collided
		landed = landed || r.Landed
	}
	return collided, landed
}

func TestStepAcceleratesToWalkSpeed(t *testing.T) {
	it := newTestIntegrator(nil)
	p := NewPlayer("test", math.Vec3{})

	it.Step(p, Intent{Move: math.Vec2{Y: 1}}, 0.05)
	assert.InDelta(t, 1.0, p.Speed(), 1e-5, "accel 20 for 50ms")

	run(it, p, Intent{Move: math.Vec2{Y: 1}}, 20)
	assert.InDelta(t, 4.5, p.Speed(), 1e-4)
	assert.Greater(t, p.Position.Z, float32(3))
	assert.InDelta(t, 0, p.Position.X, 1e-5)
	assert.True(t, p.Moving)

	run(it, p, Intent{Move: math.Vec2{Y: 1}, Run: true}, 20)
	assert.InDelta(t, 8, p.Speed(), 1e-4)
}

func TestStepDecelerates(t *testing.T) {
	it := newTestIntegrator(nil)
	p := NewPlayer("test", math.Vec3{})
	run(it, p, Intent{Move: math.Vec2{Y: 1}}, 20)

	it.Step(p, Intent{}, 0.05)
	assert.InDelta(t, 4.5-25*0.05, p.Speed(), 1e-4)

	run(it, p, Intent{}, 10)
	assert.Zero(t, p.Speed())
	assert.False(t, p.Moving)
}

func TestStepIsCameraRelative(t *testing.T) {
	it := newTestIntegrator(nil)
	p := NewPlayer("test", math.Vec3{})
	run(it, p, Intent{Move: math.Vec2{Y: 1}, LookYaw: gomath.Pi / 2}, 10)

	assert.Greater(t, p.Position.X, float32(1))
	assert.InDelta(t, 0, p.Position.Z, 1e-4)
	assert.InDelta(t, gomath.Pi/2, p.TargetYaw, 1e-4)
}

func TestStepTurnRateIsCapped(t *testing.T) {
	it := newTestIntegrator(nil)
	p := NewPlayer("test", math.Vec3{})

	it.Step(p, Intent{Move: math.Vec2{Y: -1}}, 0.05)
	assert.InDelta(t, gomath.Pi, p.TargetYaw, 1e-4)
	assert.InDelta(t, 0.5, math.Abs(math.AngleDiff(0, p.Yaw)), 1e-4)

	run(it, p, Intent{Move: math.Vec2{Y: -1}}, 10)
	assert.InDelta(t, 0, math.AngleDiff(p.Yaw, gomath.Pi), 1e-4)
}

func TestWalkPhaseWraps(t *testing.T) {
	it := newTestIntegrator(nil)
	p := NewPlayer("test", math.Vec3{})
	for i := 0; i < 200; i++ {
		it.Step(p, Intent{Move: math.Vec2{X: 1}, Run: true}, 0.05)
		require.GreaterOrEqual(t, p.WalkPhase, float32(0))
		require.Less(t, p.WalkPhase, math.TwoPi)
	}
}

func TestJumpAndLand(t *testing.T) {
	it := newTestIntegrator(nil)
	p := NewPlayer("test", math.Vec3{})

	r := it.Step(p, Intent{Jump: true}, 0.05)
	require.True(t, r.Jumped)
	assert.True(t, p.Jumping())
	assert.InDelta(t, 6.5, p.Velocity.Y, 1e-5)

	// Jump is ignored while airborne.
	r = it.Step(p, Intent{Jump: true}, 0.05)
	assert.False(t, r.Jumped)

	_, landed := run(it, p, Intent{}, 40)
	assert.True(t, landed)
	assert.False(t, p.Jumping())
	assert.Zero(t, p.Position.Y)
	assert.Zero(t, p.Velocity.Y)
}

func TestStepCollidesAndDamps(t *testing.T) {
	post := collision.List{collision.Circle(math.Vec2{Y: 3}, 1)}
	it := newTestIntegrator(post)
	p := NewPlayer("test", math.Vec3{})

	collided, _ := run(it, p, Intent{Move: math.Vec2{Y: 1}}, 40)
	assert.True(t, collided)
	d := p.Position.XZ().Distance(math.Vec2{Y: 3})
	assert.GreaterOrEqual(t, d, float32(1.3-1e-3))
	assert.Less(t, p.Speed(), float32(4.5))
}

func TestStepClampsToBounds(t *testing.T) {
	it := newTestIntegrator(nil)
	p := NewPlayer("test", math.Vec3{X: 97.9})
	run(it, p, Intent{Move: math.Vec2{X: -1}, Run: true}, 20)
	assert.Equal(t, float32(98), p.Position.X)
}

func TestStepFallsOffLedge(t *testing.T) {
	it := NewIntegrator(DefaultTuning(), nil, flatGround(0), 0)
	p := NewPlayer("test", math.Vec3{Y: 2})

	it.Step(p, Intent{}, 0.05)
	assert.True(t, p.Jumping(), "ground too far below to snap")

	_, landed := run(it, p, Intent{}, 40)
	assert.True(t, landed)
	assert.Zero(t, p.Position.Y)
}

func TestMoveDirection(t *testing.T) {
	d := MoveDirection(math.Vec2{X: 1, Y: 1}, 0)
	assert.InDelta(t, 1, d.Length(), 1e-5)
	assert.Less(t, d.X, float32(0), "strafing right while facing +Z moves toward -X")
	assert.Greater(t, d.Z, float32(0))
	assert.Zero(t, MoveDirection(math.Vec2{}, 1).Length())
}
