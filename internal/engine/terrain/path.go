package terrain

import (
	gomath "math"
)

// PathKind names the path band a point falls in.
type PathKind uint8

const (
	PathNone PathKind = iota
	PathCross
	PathDiagonal
	PathWinding
	PathRing
)

// Path layout constants.
const (
	CrossHalfWidth    = 2.5
	DiagonalHalfWidth = 2.0
	DiagonalMin       = 35.0
	DiagonalMax       = 100.0
	WindingHalfWidth  = 2.0
	WindingOffset     = -45.0
	WindingAmplitude  = 8.0
	WindingFrequency  = 0.05
	RingRadius        = 70.0
	RingHalfWidth     = 2.0
)

// WindingCenter returns the x coordinate of the winding path at z.
func WindingCenter(z float32) float32 {
	return float32(WindingOffset + WindingAmplitude*gomath.Sin(float64(z)*WindingFrequency))
}

// PathKindAt classifies (x, z). Bands are tested in a fixed order and the
// first match wins.
func PathKindAt(x, z float32) PathKind {
	fx, fz := float64(x), float64(z)

	if gomath.Abs(fx) < CrossHalfWidth || gomath.Abs(fz) < CrossHalfWidth {
		return PathCross
	}
	if fx >= DiagonalMin && fx <= DiagonalMax && fz >= DiagonalMin && fz <= DiagonalMax &&
		gomath.Abs(fx-fz)/gomath.Sqrt2 < DiagonalHalfWidth {
		return PathDiagonal
	}
	if gomath.Abs(fx-float64(WindingCenter(z))) < WindingHalfWidth {
		return PathWinding
	}
	if gomath.Abs(gomath.Hypot(fx, fz)-RingRadius) < RingHalfWidth {
		return PathRing
	}
	return PathNone
}

// IsOnPath reports whether (x, z) lies on any path.
func IsOnPath(x, z float32) bool {
	return PathKindAt(x, z) != PathNone
}

// NearPath reports whether a circle of radius r around (x, z) touches a path,
// sampled at the center and eight points on the rim.
func NearPath(x, z, r float32) bool {
	if IsOnPath(x, z) {
		return true
	}
	for i := 0; i < 8; i++ {
		s, c := gomath.Sincos(float64(i) * gomath.Pi / 4)
		if IsOnPath(x+float32(c)*r, z+float32(s)*r) {
			return true
		}
	}
	return false
}
