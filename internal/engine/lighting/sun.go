// Package lighting holds the light and surface colour parameters the
// renderer uploads each frame.
package lighting

import (
	gomath "math"

	"github.com/Faultbox/wildmere/pkg/math"
)

// Sun is a directional light given as compass angles in degrees.
// Azimuth rotates around Y starting at +Z; elevation is above the horizon.
type Sun struct {
	Azimuth   float32
	Elevation float32
	Color     math.Vec3
	Ambient   math.Vec3
}

// DefaultSun is a warm late-morning sun.
func DefaultSun() Sun {
	return Sun{
		Azimuth:   135,
		Elevation: 50,
		Color:     math.Vec3{X: 1.0, Y: 0.95, Z: 0.85},
		Ambient:   math.Vec3{X: 0.35, Y: 0.38, Z: 0.45},
	}
}

// Direction returns the unit vector pointing towards the sun.
func (s Sun) Direction() math.Vec3 {
	return SunDirection(s.Azimuth, s.Elevation)
}

// SunDirection converts azimuth/elevation degrees to a unit direction.
func SunDirection(azimuth, elevation float32) math.Vec3 {
	az := float64(azimuth) * gomath.Pi / 180
	el := float64(elevation) * gomath.Pi / 180
	return math.Vec3{
		X: float32(gomath.Cos(el) * gomath.Sin(az)),
		Y: float32(gomath.Sin(el)),
		Z: float32(gomath.Cos(el) * gomath.Cos(az)),
	}
}
