// Package hashrand provides a stateless seeded sampler used for world
// generation. The same seed always maps to the same value, so replaying a
// seed sequence reproduces a world exactly.
package hashrand

import "math"

// Hash constants. Changing any of them changes every generated world.
const (
	mulA  = 12.9898
	mulB  = 78.233
	scale = 43758.5453
)

// maxBelowOne is the largest float32 strictly less than 1.
const maxBelowOne = float32(0.99999994)

// Sample maps seed to a float in [0, 1).
func Sample(seed int64) float32 {
	s := float64(seed)
	v := math.Sin(s*mulA+s*mulB) * scale
	f := float32(v - math.Floor(v))
	if f >= 1 {
		return maxBelowOne
	}
	if f < 0 {
		return 0
	}
	return f
}

// Stream draws successive samples from a running counter.
type Stream struct {
	next int64
}

// NewStream starts a stream at the given counter value.
func NewStream(start int64) *Stream {
	return &Stream{next: start}
}

// Next returns the sample for the current slot and advances the counter.
func (s *Stream) Next() float32 {
	v := Sample(s.next)
	s.next++
	return v
}

// Range returns a sample mapped to [lo, hi).
func (s *Stream) Range(lo, hi float32) float32 {
	return lo + s.Next()*(hi-lo)
}

// Skip advances the counter by n slots without sampling.
func (s *Stream) Skip(n int) {
	s.next += int64(n)
}

// Counter reports the next slot to be consumed.
func (s *Stream) Counter() int64 {
	return s.next
}

// Derive returns an independent stream keyed on a parent slot. Detail
// generation draws from derived streams so the parent slot schedule stays
// fixed no matter how many detail samples an object needs.
func Derive(slot int64) *Stream {
	return NewStream(slot*7919 + 104729)
}
