package terrain

import (
	gomath "math"

	"github.com/Faultbox/wildmere/pkg/math"
)

// Height field constants. Ground mesh, placement and collision all sample
// the field independently, so these must not drift between callers.
const (
	// FlattenRadius is the distance from the origin at which the spawn
	// flattening stops.
	FlattenRadius = 20.0
	// FlattenStrength is the fraction of height removed at the origin.
	FlattenStrength = 0.8
	// NormalEpsilon is the finite-difference step used by Normal.
	NormalEpsilon = 0.1
)

// Term amplitudes, largest first.
const (
	ampHills   = 1.5
	ampRolling = 0.8
	ampMedium  = 0.4
	ampSmall   = 0.2
	ampBumps   = 0.1
)

// MaxAmplitude bounds the absolute height of the unflattened field.
const MaxAmplitude = ampHills + ampRolling + ampMedium + ampSmall + ampBumps

// Elevation returns the terrain height at (x, z).
func Elevation(x, z float32) float32 {
	return float32(elevation(float64(x), float64(z)))
}

func elevation(x, z float64) float64 {
	h := ampHills * gomath.Sin(x*0.02) * gomath.Cos(z*0.025)
	h += ampRolling * gomath.Sin(x*0.05+1.3) * gomath.Sin(z*0.04+0.7)
	h += ampMedium * gomath.Sin((x+z)*0.08)
	h += ampSmall * gomath.Cos(x*0.15-z*0.11)
	h += ampBumps * gomath.Sin(x*0.3+2.1) * gomath.Cos(z*0.27)

	flatten := gomath.Max(0, 1-gomath.Hypot(x, z)/FlattenRadius)
	return h * (1 - flatten*FlattenStrength)
}

// Normal returns the unit surface normal at (x, z) from central differences.
func Normal(x, z float32) math.Vec3 {
	fx, fz := float64(x), float64(z)
	const e = NormalEpsilon
	dx := (elevation(fx+e, fz) - elevation(fx-e, fz)) / (2 * e)
	dz := (elevation(fx, fz+e) - elevation(fx, fz-e)) / (2 * e)
	l := gomath.Sqrt(dx*dx + 1 + dz*dz)
	return math.Vec3{X: float32(-dx / l), Y: float32(1 / l), Z: float32(-dz / l)}
}

// SampleAt returns elevation and normal together.
func SampleAt(x, z float32) Sample {
	return Sample{Elevation: Elevation(x, z), Normal: Normal(x, z)}
}
