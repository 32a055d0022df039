package world

import (
	"fmt"

	"github.com/Faultbox/wildmere/internal/engine/geom"
	"github.com/Faultbox/wildmere/internal/engine/terrain"
	"github.com/Faultbox/wildmere/pkg/math"
)

// Tolerances used by Check.
const (
	normalTolerance  = 1e-4
	tangentTolerance = 1e-3
)

// Violation is one failed invariant.
type Violation struct {
	Check  string `yaml:"check" json:"check"`
	Detail string `yaml:"detail" json:"detail"`
}

func (v Violation) String() string {
	return v.Check + ": " + v.Detail
}

// Check verifies the generated world: footprints never overlap or enter the
// spawn exclusion, every triangle winds with its normals, and normals and
// tangents are unit length. An empty result means the world is valid.
func Check(w *World) []Violation {
	var out []Violation
	add := func(check, format string, args ...any) {
		out = append(out, Violation{Check: check, Detail: fmt.Sprintf(format, args...)})
	}

	fps := w.Footprints
	for i, a := range fps {
		if d := dist(a.X, a.Z, 0, 0); d < w.Params.SpawnExclusion+a.Radius {
			add("spawn_exclusion", "footprint %d at (%.2f, %.2f) is %.2f from spawn", i, a.X, a.Z, d)
		}
		for j := i + 1; j < len(fps); j++ {
			b := fps[j]
			if d := dist(a.X, a.Z, b.X, b.Z); d < a.Radius+b.Radius {
				add("footprint_overlap", "footprints %d and %d overlap by %.3f", i, j, a.Radius+b.Radius-d)
			}
		}
	}

	for _, g := range DrawGroups() {
		if n := checkMesh(w.Mesh(g)); n > 0 {
			add("winding", "group %s has %d bad vertices", g, n)
		}
	}

	for _, c := range w.Chests {
		if terrain.IsOnPath(c.Position.X, c.Position.Z) {
			add("chest_on_path", "chest %d sits on a path", c.ID)
		}
	}
	return out
}

// checkMesh counts vertices whose normal disagrees with the face winding or
// whose normal or tangent is not unit length.
func checkMesh(m *geom.Mesh) int {
	bad := 0
	for i := 0; i < m.TriangleCount(); i++ {
		fn := m.FaceNormal(i)
		for k := 0; k < 3; k++ {
			v := m.Vertices[i*3+k]
			switch {
			case fn.Dot(v.Normal) <= 0:
				bad++
			case math.Abs(v.Normal.Length()-1) > normalTolerance:
				bad++
			case math.Abs(v.Tangent.Length()-1) > tangentTolerance:
				bad++
			}
		}
	}
	return bad
}

// Summary is a serialisable description of a generated world.
type Summary struct {
	Seed       int64               `yaml:"seed" json:"seed"`
	HalfExtent float32             `yaml:"half_extent" json:"half_extent"`
	Vertices   map[string]int      `yaml:"vertices" json:"vertices"`
	Colliders  map[string]int      `yaml:"colliders" json:"colliders"`
	Footprints int                 `yaml:"footprints" json:"footprints"`
	Ground     terrain.GroundStats `yaml:"ground" json:"ground"`
	Steps      []StepReport        `yaml:"steps" json:"steps"`
	Chests     []Chest             `yaml:"chests" json:"chests"`
	Violations []Violation         `yaml:"violations,omitempty" json:"violations,omitempty"`
}

// Summarize describes w and runs Check on it.
func Summarize(w *World) Summary {
	s := Summary{
		Seed:       w.Params.Seed,
		HalfExtent: w.Params.HalfExtent,
		Vertices:   make(map[string]int, groupCount),
		Colliders:  make(map[string]int),
		Footprints: len(w.Footprints),
		Ground:     w.Ground,
		Steps:      w.Steps,
		Chests:     w.Chests,
		Violations: Check(w),
	}
	for _, g := range DrawGroups() {
		s.Vertices[g.String()] = w.Mesh(g).Len()
	}
	for k, n := range w.Colliders.CountByKind() {
		s.Colliders[k.String()] = n
	}
	return s
}
