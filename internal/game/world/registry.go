package world

import gomath "math"

// DefaultSpawnExclusionRadius keeps every placement this far from the origin.
const DefaultSpawnExclusionRadius = 8.0

// Footprint is a committed circular claim on the ground.
type Footprint struct {
	X      float32 `yaml:"x" json:"x"`
	Z      float32 `yaml:"z" json:"z"`
	Radius float32 `yaml:"radius" json:"radius"`
}

// Registry tracks footprints claimed during one world generation pass.
// It is not safe for concurrent use; generators run one after another.
type Registry struct {
	spawnExclusion float32
	footprints     []Footprint
}

// NewRegistry creates an empty registry with the given spawn exclusion.
func NewRegistry(spawnExclusion float32) *Registry {
	return &Registry{spawnExclusion: spawnExclusion}
}

// IsClear reports whether a circle at (x, z) with radius r stays outside the
// spawn area and does not overlap any committed footprint.
func (r *Registry) IsClear(x, z, radius float32) bool {
	if dist(x, z, 0, 0) < r.spawnExclusion+radius {
		return false
	}
	for _, f := range r.footprints {
		if dist(x, z, f.X, f.Z) < radius+f.Radius {
			return false
		}
	}
	return true
}

// MarkOccupied commits a footprint. Callers check IsClear first.
func (r *Registry) MarkOccupied(x, z, radius float32) {
	r.footprints = append(r.footprints, Footprint{X: x, Z: z, Radius: radius})
}

// Claim commits the footprint when it is clear and reports whether it did.
func (r *Registry) Claim(x, z, radius float32) bool {
	if !r.IsClear(x, z, radius) {
		return false
	}
	r.MarkOccupied(x, z, radius)
	return true
}

// Clear forgets every footprint.
func (r *Registry) Clear() {
	r.footprints = r.footprints[:0]
}

// Len returns the number of committed footprints.
func (r *Registry) Len() int {
	return len(r.footprints)
}

// Footprints returns a copy of the committed footprints in commit order.
func (r *Registry) Footprints() []Footprint {
	out := make([]Footprint, len(r.footprints))
	copy(out, r.footprints)
	return out
}

// SpawnExclusion returns the configured spawn exclusion radius.
func (r *Registry) SpawnExclusion() float32 {
	return r.spawnExclusion
}

func dist(x0, z0, x1, z1 float32) float32 {
	return float32(gomath.Hypot(float64(x1-x0), float64(z1-z0)))
}
