package math

import "math"

// Pi is half a turn in radians.
const Pi = float32(math.Pi)

// TwoPi is a full turn in radians.
const TwoPi = float32(2 * math.Pi)

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Lerp interpolates between a and b.
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// Abs returns |v|.
func Abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

// Sin is a float32 sine.
func Sin(v float32) float32 {
	return float32(math.Sin(float64(v)))
}

// Cos is a float32 cosine.
func Cos(v float32) float32 {
	return float32(math.Cos(float64(v)))
}

// Sqrt is a float32 square root.
func Sqrt(v float32) float32 {
	return float32(math.Sqrt(float64(v)))
}

// Atan2 is a float32 arctangent of y/x.
func Atan2(y, x float32) float32 {
	return float32(math.Atan2(float64(y), float64(x)))
}

// WrapAngle wraps a into [0, 2π).
func WrapAngle(a float32) float32 {
	w := float32(math.Mod(float64(a), float64(TwoPi)))
	if w < 0 {
		w += TwoPi
	}
	if w >= TwoPi {
		w = 0
	}
	return w
}

// AngleDiff returns the signed shortest rotation from a to b in (-π, π].
func AngleDiff(a, b float32) float32 {
	d := WrapAngle(b - a)
	if d > math.Pi {
		d -= TwoPi
	}
	return d
}
