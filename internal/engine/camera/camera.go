// Package camera provides the third-person follow camera.
package camera

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/wildmere/pkg/math"
)

// Follow trails a target from behind at a fixed height. Yaw 0 looks toward
// +Z, matching the character's facing convention.
type Follow struct {
	Yaw        float32 // Horizontal angle the camera looks along (radians)
	Distance   float32 // Horizontal distance behind the target
	Height     float32 // Eye height above the target's feet
	LookHeight float32 // Look-at point above the target's feet

	MinDistance float32
	MaxDistance float32

	YawSensitivity  float32
	ZoomSensitivity float32

	FOV  float32 // Vertical field of view (degrees)
	Near float32
	Far  float32

	// Eye is the last computed position, cached for HUD and audio.
	Eye math.Vec3
}

// NewFollow creates a follow camera with gameplay defaults.
func NewFollow() *Follow {
	return &Follow{
		Distance:        8,
		Height:          4,
		LookHeight:      1.2,
		MinDistance:     3,
		MaxDistance:     20,
		YawSensitivity:  0.005,
		ZoomSensitivity: 0.1,
		FOV:             60,
		Near:            0.1,
		Far:             400,
	}
}

// Forward returns the unit look direction on the XZ plane.
func (c *Follow) Forward() math.Vec3 {
	s, co := gomath.Sincos(float64(c.Yaw))
	return math.Vec3{X: float32(s), Z: float32(co)}
}

// Right returns the unit right direction on the XZ plane.
func (c *Follow) Right() math.Vec3 {
	return c.Forward().Cross(math.Up)
}

// Position places the eye behind target along the camera yaw.
func (c *Follow) Position(target math.Vec3) math.Vec3 {
	c.Eye = target.Sub(c.Forward().Scale(c.Distance)).Add(math.Vec3{Y: c.Height})
	return c.Eye
}

// LookAt returns the point the camera aims at.
func (c *Follow) LookAt(target math.Vec3) math.Vec3 {
	return target.Add(math.Vec3{Y: c.LookHeight})
}

// ViewMatrix returns the view matrix for following target.
func (c *Follow) ViewMatrix(target math.Vec3) mgl32.Mat4 {
	eye := c.Position(target)
	at := c.LookAt(target)
	return mgl32.LookAtV(toGL(eye), toGL(at), mgl32.Vec3{0, 1, 0})
}

// Projection returns the perspective matrix for aspect (width/height).
func (c *Follow) Projection(aspect float32) mgl32.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), aspect, c.Near, c.Far)
}

// HandleYaw turns the camera around its target from a mouse drag.
func (c *Follow) HandleYaw(deltaX float32) {
	c.Yaw = math.WrapAngle(c.Yaw - deltaX*c.YawSensitivity)
}

// HandleZoom changes the follow distance from a scroll delta.
func (c *Follow) HandleZoom(delta float32) {
	c.Distance = math.Clamp(c.Distance-delta*c.Distance*c.ZoomSensitivity, c.MinDistance, c.MaxDistance)
}

func toGL(v math.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{v.X, v.Y, v.Z}
}
