package collision

import (
	"errors"
	gomath "math"
	"slices"

	"github.com/Faultbox/wildmere/pkg/math"
)

// DefaultCellSize is the bucket size of the set's spatial index.
const DefaultCellSize = 8.0

// ErrFrozen is returned when adding to a set that has been frozen.
var ErrFrozen = errors.New("collider set is frozen")

// Source yields the colliders that may touch a circle.
type Source interface {
	Candidates(center math.Vec2, radius float32, dst []Collider) []Collider
}

// List is a Source that returns every collider it holds.
type List []Collider

// Candidates appends all colliders in l to dst.
func (l List) Candidates(_ math.Vec2, _ float32, dst []Collider) []Collider {
	return append(dst, l...)
}

type cellKey struct{ x, z int32 }

// Set holds the static colliders of a world. Colliders are added during
// generation, then Freeze builds a bucket index and the set becomes
// read-only. A frozen set is safe for concurrent readers.
type Set struct {
	colliders []Collider
	cellSize  float32
	cells     map[cellKey][]int32
	frozen    bool
}

// NewSet creates an empty set.
func NewSet() *Set {
	return &Set{cellSize: DefaultCellSize}
}

// Add appends a collider after validating it.
func (s *Set) Add(c Collider) error {
	if s.frozen {
		return ErrFrozen
	}
	if err := c.Validate(); err != nil {
		return err
	}
	s.colliders = append(s.colliders, c)
	return nil
}

// Freeze builds the spatial index. Further Adds fail.
func (s *Set) Freeze() {
	if s.frozen {
		return
	}
	s.cells = make(map[cellKey][]int32)
	for i, c := range s.colliders {
		r := c.BoundingRadius()
		x0, z0 := s.cell(c.Center.X-r, c.Center.Y-r)
		x1, z1 := s.cell(c.Center.X+r, c.Center.Y+r)
		for z := z0; z <= z1; z++ {
			for x := x0; x <= x1; x++ {
				k := cellKey{x, z}
				s.cells[k] = append(s.cells[k], int32(i))
			}
		}
	}
	s.frozen = true
}

// Frozen reports whether Freeze has run.
func (s *Set) Frozen() bool {
	return s.frozen
}

// Len returns the number of colliders.
func (s *Set) Len() int {
	return len(s.colliders)
}

// All returns a copy of every collider in insertion order.
func (s *Set) All() []Collider {
	return slices.Clone(s.colliders)
}

// CountByKind tallies colliders per kind.
func (s *Set) CountByKind() map[Kind]int {
	out := make(map[Kind]int)
	for _, c := range s.colliders {
		out[c.Kind]++
	}
	return out
}

// Candidates appends the colliders whose buckets a circle at center with
// radius touches, in insertion order. Before Freeze every collider is a
// candidate.
func (s *Set) Candidates(center math.Vec2, radius float32, dst []Collider) []Collider {
	if !s.frozen {
		return append(dst, s.colliders...)
	}
	x0, z0 := s.cell(center.X-radius, center.Y-radius)
	x1, z1 := s.cell(center.X+radius, center.Y+radius)

	var buf [64]int32
	ids := buf[:0]
	for z := z0; z <= z1; z++ {
		for x := x0; x <= x1; x++ {
			ids = append(ids, s.cells[cellKey{x, z}]...)
		}
	}
	slices.Sort(ids)
	ids = slices.Compact(ids)
	for _, i := range ids {
		dst = append(dst, s.colliders[i])
	}
	return dst
}

// GroundHeight returns the height an actor at (x, z) with feet at feetY
// stands on: the highest climbable top within reach, or terrainY.
func (s *Set) GroundHeight(p math.Vec2, feetY, terrainY, stepHeight float32) float32 {
	ground := terrainY
	var buf [16]Collider
	for _, c := range s.Candidates(p, 0, buf[:0]) {
		if c.Kind != KindClimbable {
			continue
		}
		if p.Distance(c.Center) >= c.Radius {
			continue
		}
		if top := c.Top(); feetY >= top-stepHeight && top > ground {
			ground = top
		}
	}
	return ground
}

func (s *Set) cell(x, z float32) (int32, int32) {
	return int32(gomath.Floor(float64(x / s.cellSize))), int32(gomath.Floor(float64(z / s.cellSize)))
}
