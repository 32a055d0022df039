// Package world generates the static scene: ground, vegetation, rocks,
// structures and props, together with their colliders and footprints.
// Generation is deterministic per seed and runs once per world load.
package world

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/wildmere/internal/engine/geom"
	"github.com/Faultbox/wildmere/internal/engine/terrain"
	"github.com/Faultbox/wildmere/internal/game/collision"
	"github.com/Faultbox/wildmere/internal/logger"
	"github.com/Faultbox/wildmere/pkg/hashrand"
	"github.com/Faultbox/wildmere/pkg/math"
)

// DrawGroup batches meshes that share a render pass.
type DrawGroup uint8

const (
	GroupGround DrawGroup = iota
	GroupTrees
	GroupRocks
	GroupStructures
	GroupProps

	groupCount
)

// DrawGroups lists every group in draw order.
func DrawGroups() []DrawGroup {
	return []DrawGroup{GroupGround, GroupTrees, GroupRocks, GroupStructures, GroupProps}
}

// String returns the group name.
func (g DrawGroup) String() string {
	switch g {
	case GroupGround:
		return "ground"
	case GroupTrees:
		return "trees"
	case GroupRocks:
		return "rocks"
	case GroupStructures:
		return "structures"
	case GroupProps:
		return "props"
	}
	return fmt.Sprintf("group(%d)", uint8(g))
}

// StreamStride separates the sample streams of neighbouring seeds.
const StreamStride = 100000

// MaxSeed bounds the magnitude of a world seed. Stream counters must stay
// exactly representable as float64 for neighbouring slots to hash apart.
const MaxSeed = 1 << 31

// ErrSeedRange is returned for seeds outside [-MaxSeed, MaxSeed].
var ErrSeedRange = errors.New("world seed out of range")

// ValidateSeed rejects seeds whose sample streams would collapse.
func ValidateSeed(seed int64) error {
	if seed > MaxSeed || seed < -MaxSeed {
		return fmt.Errorf("%w: %d (limit %d)", ErrSeedRange, seed, int64(MaxSeed))
	}
	return nil
}

// Per-generator stream offsets inside one seed's stride.
const (
	saltStructures = 1000
	saltTrees      = 20000
	saltRocks      = 60000
	saltChests     = 80000
)

// Params controls generation. Zero values fall back to defaults in Build.
type Params struct {
	Seed           int64   `yaml:"seed"`
	HalfExtent     float32 `yaml:"half_extent"`
	GroundCells    int     `yaml:"ground_cells"`
	GroundUVScale  float32 `yaml:"ground_uv_scale"`
	SpawnExclusion float32 `yaml:"spawn_exclusion"`
	TreeSpacing    float32 `yaml:"tree_spacing"`
	TreeDensity    float32 `yaml:"tree_density"`
	RockAttempts   int     `yaml:"rock_attempts"`
	ChestAttempts  int     `yaml:"chest_attempts"`
	MaxChests      int     `yaml:"max_chests"`
}

// DefaultParams returns the standard world for seed.
func DefaultParams(seed int64) Params {
	return Params{
		Seed:           seed,
		HalfExtent:     100,
		GroundCells:    100,
		GroundUVScale:  4,
		SpawnExclusion: DefaultSpawnExclusionRadius,
		TreeSpacing:    8,
		TreeDensity:    0.55,
		RockAttempts:   40,
		ChestAttempts:  24,
		MaxChests:      8,
	}
}

func (p Params) withDefaults() Params {
	d := DefaultParams(p.Seed)
	if p.HalfExtent <= 0 {
		p.HalfExtent = d.HalfExtent
	}
	if p.GroundCells <= 0 {
		p.GroundCells = d.GroundCells
	}
	if p.GroundUVScale <= 0 {
		p.GroundUVScale = d.GroundUVScale
	}
	if p.SpawnExclusion <= 0 {
		p.SpawnExclusion = d.SpawnExclusion
	}
	if p.TreeSpacing <= 0 {
		p.TreeSpacing = d.TreeSpacing
	}
	if p.TreeDensity < 0 {
		p.TreeDensity = 0
	}
	if p.RockAttempts < 0 {
		p.RockAttempts = 0
	}
	if p.ChestAttempts < 0 {
		p.ChestAttempts = 0
	}
	return p
}

// Stream returns the sample stream a generator with salt starts from.
func (p Params) Stream(salt int64) *hashrand.Stream {
	return hashrand.NewStream(p.Seed*StreamStride + salt)
}

// Chest is a loot container placed by generation.
type Chest struct {
	ID       int       `yaml:"id" json:"id"`
	Position math.Vec3 `yaml:"position" json:"position"`
	Yaw      float32   `yaml:"yaw" json:"yaw"`
	Tier     int       `yaml:"tier" json:"tier"`
}

// StepReport records what one plan step produced.
type StepReport struct {
	Name   string `yaml:"name" json:"name"`
	Placed int    `yaml:"placed" json:"placed"`
}

// World is the immutable result of generation.
type World struct {
	Params     Params
	Groups     map[DrawGroup]*geom.Mesh
	Colliders  *collision.Set
	Footprints []Footprint
	Chests     []Chest
	Ground     terrain.GroundStats
	Steps      []StepReport
}

// Mesh returns the mesh of group, never nil.
func (w *World) Mesh(g DrawGroup) *geom.Mesh {
	if m := w.Groups[g]; m != nil {
		return m
	}
	return geom.NewMesh(0)
}

// VertexCount sums vertices over every group.
func (w *World) VertexCount() int {
	n := 0
	for _, m := range w.Groups {
		n += m.Len()
	}
	return n
}

// Bound returns the half extent actors are clamped to.
func (w *World) Bound() float32 {
	return w.Params.HalfExtent - 2
}

// GroundHeight returns the height an actor at p with feet at feetY stands on.
func (w *World) GroundHeight(p math.Vec2, feetY, stepHeight float32) float32 {
	return w.Colliders.GroundHeight(p, feetY, terrain.Elevation(p.X, p.Y), stepHeight)
}

// Chest returns the chest with id.
func (w *World) Chest(id int) (Chest, bool) {
	for _, c := range w.Chests {
		if c.ID == id {
			return c, true
		}
	}
	return Chest{}, false
}

// Builder carries the shared state generators write into.
type Builder struct {
	Params   Params
	Registry *Registry
	log      *zap.Logger

	groups    [groupCount]*geom.Mesh
	colliders *collision.Set
	chests    []Chest
	err       error
}

func newBuilder(p Params) *Builder {
	b := &Builder{
		Params:    p,
		Registry:  NewRegistry(p.SpawnExclusion),
		log:       logger.Named("world"),
		colliders: collision.NewSet(),
	}
	for i := range b.groups {
		b.groups[i] = geom.NewMesh(0)
	}
	return b
}

// Mesh returns the mesh generators append to for g.
func (b *Builder) Mesh(g DrawGroup) *geom.Mesh {
	return b.groups[g]
}

// AddCollider records c. The first invalid collider fails the build.
func (b *Builder) AddCollider(c collision.Collider) {
	if err := b.colliders.Add(c); err != nil && b.err == nil {
		b.err = err
	}
}

// AddChest records a chest and returns its id.
func (b *Builder) AddChest(pos math.Vec3, yaw float32, tier int) int {
	id := len(b.chests) + 1
	b.chests = append(b.chests, Chest{ID: id, Position: pos, Yaw: yaw, Tier: tier})
	return id
}

// Step is one named generator in a plan. Run returns how many objects it
// placed.
type Step struct {
	Name string
	Run  func(b *Builder) int
}

// Plan is the ordered list of generator steps.
type Plan []Step

// DefaultPlan places structures before vegetation so buildings always win
// their footprints.
func DefaultPlan() Plan {
	return Plan{
		{Name: "structures", Run: generateStructures},
		{Name: "trees", Run: generateTrees},
		{Name: "rocks", Run: generateRocks},
		{Name: "poles", Run: generatePoles},
		{Name: "chests", Run: generateChests},
	}
}

// Build generates a world with the default plan.
func Build(p Params) (*World, error) {
	return BuildPlan(p, DefaultPlan())
}

// BuildPlan generates the ground and then runs plan in order.
func BuildPlan(p Params, plan Plan) (*World, error) {
	if err := ValidateSeed(p.Seed); err != nil {
		return nil, err
	}
	p = p.withDefaults()
	b := newBuilder(p)

	ground, stats := terrain.BuildGround(terrain.GroundConfig{
		HalfExtent: p.HalfExtent,
		Cells:      p.GroundCells,
		UVScale:    p.GroundUVScale,
	})
	b.groups[GroupGround] = ground

	steps := make([]StepReport, 0, len(plan))
	for _, s := range plan {
		n := s.Run(b)
		steps = append(steps, StepReport{Name: s.Name, Placed: n})
		b.log.Debug("generator step",
			zap.String("step", s.Name),
			zap.Int("placed", n),
			zap.Int("footprints", b.Registry.Len()))
		if b.err != nil {
			return nil, fmt.Errorf("world step %s: %w", s.Name, b.err)
		}
	}
	b.colliders.Freeze()

	w := &World{
		Params:     p,
		Groups:     make(map[DrawGroup]*geom.Mesh, groupCount),
		Colliders:  b.colliders,
		Footprints: b.Registry.Footprints(),
		Chests:     b.chests,
		Ground:     stats,
		Steps:      steps,
	}
	for _, g := range DrawGroups() {
		w.Groups[g] = b.groups[g]
	}

	b.log.Info("world generated",
		zap.Int64("seed", p.Seed),
		zap.Int("vertices", w.VertexCount()),
		zap.Int("colliders", w.Colliders.Len()),
		zap.Int("chests", len(w.Chests)))
	return w, nil
}
