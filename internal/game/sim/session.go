// Package sim runs one play session on top of a generated world: it turns
// intents into movement, handles loot and saves, and rebuilds the player
// rig every frame.
package sim

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/wildmere/internal/engine/camera"
	"github.com/Faultbox/wildmere/internal/engine/character"
	"github.com/Faultbox/wildmere/internal/engine/geom"
	"github.com/Faultbox/wildmere/internal/engine/terrain"
	"github.com/Faultbox/wildmere/internal/game/collision"
	"github.com/Faultbox/wildmere/internal/game/entity"
	"github.com/Faultbox/wildmere/internal/game/save"
	"github.com/Faultbox/wildmere/internal/game/sheet"
	"github.com/Faultbox/wildmere/internal/game/world"
	"github.com/Faultbox/wildmere/internal/logger"
	"github.com/Faultbox/wildmere/pkg/hashrand"
	"github.com/Faultbox/wildmere/pkg/math"
)

const (
	// lootSalt offsets the loot roll streams from the generator streams.
	lootSalt       = 90000
	attackDuration = 0.4
	goldPerTier    = 10
	goldRoll       = 10
	xpPerTier      = 40
)

var (
	ErrSeedMismatch = errors.New("save belongs to a different world")
	ErrNoSavePath   = errors.New("no save path configured")
)

// Options configures a session.
type Options struct {
	PlayerName    string
	Tuning        entity.Tuning
	SavePath      string
	InteractRange float32
	DiscoverRange float32
	// Resolver overrides the default collision tuning when set.
	Resolver      *collision.Resolver
}

// DefaultOptions returns the standard session options.
func DefaultOptions() Options {
	return Options{
		PlayerName:    "Wanderer",
		Tuning:        entity.DefaultTuning(),
		InteractRange: 2,
		DiscoverRange: 8,
	}
}

// Session is the mutable game state layered over an immutable world.
type Session struct {
	World         *world.World
	Player        *entity.Player
	Sheet         *sheet.Sheet
	Camera        *camera.Follow
	InventoryOpen bool

	opts        Options
	integrator  *entity.Integrator
	rig         *character.Rig
	mesh        *geom.Mesh
	looted      map[int]bool
	discovered  map[int]bool
	attackTimer float32
	frame       uint64
	now         func() time.Time
	log         *zap.Logger
}

// New starts a fresh session at the spawn point of w.
func New(w *world.World, opts Options) *Session {
	d := DefaultOptions()
	if opts.PlayerName == "" {
		opts.PlayerName = d.PlayerName
	}
	if opts.Tuning == (entity.Tuning{}) {
		opts.Tuning = d.Tuning
	}
	if opts.InteractRange <= 0 {
		opts.InteractRange = d.InteractRange
	}
	if opts.DiscoverRange <= 0 {
		opts.DiscoverRange = d.DiscoverRange
	}

	spawn := math.Vec3{Y: terrain.Elevation(0, 0)}
	s := &Session{
		World:      w,
		Player:     entity.NewPlayer(opts.PlayerName, spawn),
		Sheet:      sheet.New(),
		Camera:     camera.NewFollow(),
		opts:       opts,
		integrator: entity.NewIntegrator(opts.Tuning, w.Colliders, w, w.Bound()),
		rig:        character.NewRig(),
		looted:     make(map[int]bool),
		discovered: make(map[int]bool),
		now:        time.Now,
		log:        logger.Named("sim"),
	}
	if opts.Resolver != nil {
		s.integrator.Resolver = opts.Resolver
	}
	s.rebuildRig()
	return s
}

// Restore replaces the mutable state with a saved snapshot.
func (s *Session) Restore(snap *save.Snapshot) error {
	if snap.Seed != s.World.Params.Seed {
		return fmt.Errorf("%w: save seed %d, world seed %d", ErrSeedMismatch, snap.Seed, s.World.Params.Seed)
	}
	s.Player.Kinematics = snap.Kinematics
	s.Sheet = snap.Sheet.Clone()
	s.looted = make(map[int]bool, len(snap.Looted))
	s.discovered = make(map[int]bool, len(snap.Looted))
	for _, id := range snap.Looted {
		s.looted[id] = true
		s.discovered[id] = true
	}
	s.rebuildRig()
	s.log.Info("session restored",
		zap.Int("level", s.Sheet.Level),
		zap.Int("looted", len(s.looted)))
	return nil
}

// SaveSnapshot captures the persistent part of the session.
func (s *Session) SaveSnapshot() *save.Snapshot {
	looted := make([]int, 0, len(s.looted))
	for id := range s.looted {
		looted = append(looted, id)
	}
	snap := &save.Snapshot{
		Version:    save.Version,
		Seed:       s.World.Params.Seed,
		SavedAt:    s.now().UTC(),
		Kinematics: s.Player.Kinematics,
		Sheet:      *s.Sheet.Clone(),
		Looted:     looted,
	}
	snap.Normalize()
	return snap
}

// Save writes the session to the configured save path.
func (s *Session) Save() (string, error) {
	if s.opts.SavePath == "" {
		return "", ErrNoSavePath
	}
	if err := save.Write(s.opts.SavePath, s.SaveSnapshot()); err != nil {
		return s.opts.SavePath, err
	}
	return s.opts.SavePath, nil
}

// Frame returns the number of ticks run.
func (s *Session) Frame() uint64 {
	return s.frame
}

// Mesh returns the player mesh in world space for the current frame.
func (s *Session) Mesh() *geom.Mesh {
	return s.mesh
}

// Looted reports whether chest id has been emptied.
func (s *Session) Looted(id int) bool {
	return s.looted[id]
}

// Tick advances the session by dt seconds and returns the events raised.
func (s *Session) Tick(in entity.Intent, dt float32) []Event {
	var events []Event

	if in.ToggleInventory {
		s.InventoryOpen = !s.InventoryOpen
	}

	in.LookYaw = s.Camera.Yaw
	s.integrator.Step(s.Player, in, dt)

	if in.Attack && s.attackTimer <= 0 {
		s.attackTimer = attackDuration
	} else if s.attackTimer > 0 {
		s.attackTimer = max(s.attackTimer-dt, 0)
	}

	events = s.discover(events)
	if in.Interact {
		events = s.interact(events)
	}
	if in.QuickSave {
		path, err := s.Save()
		if err != nil {
			s.log.Error("quick save failed", zap.Error(err))
		} else {
			s.log.Info("game saved", zap.String("path", path))
		}
		events = append(events, Event{Kind: Saved, Path: path, Err: err})
	}

	s.rebuildRig()
	s.frame++
	return events
}

func (s *Session) discover(events []Event) []Event {
	p := s.Player.Position.XZ()
	for _, c := range s.World.Chests {
		if s.discovered[c.ID] {
			continue
		}
		if p.Distance(c.Position.XZ()) <= s.opts.DiscoverRange {
			s.discovered[c.ID] = true
			events = append(events, Event{Kind: LootDiscovered, ChestID: c.ID})
		}
	}
	return events
}

// nearestChest returns the closest unlooted chest within interact range.
func (s *Session) nearestChest() (world.Chest, bool) {
	p := s.Player.Position.XZ()
	var best world.Chest
	bestDist := s.opts.InteractRange
	found := false
	for _, c := range s.World.Chests {
		if s.looted[c.ID] {
			continue
		}
		if d := p.Distance(c.Position.XZ()); d <= bestDist {
			best, bestDist, found = c, d, true
		}
	}
	return best, found
}

func (s *Session) interact(events []Event) []Event {
	c, ok := s.nearestChest()
	if !ok {
		return events
	}
	s.looted[c.ID] = true
	s.discovered[c.ID] = true

	rng := hashrand.Derive(s.World.Params.Seed*world.StreamStride + lootSalt + int64(c.ID))
	gold := goldPerTier*c.Tier + int(rng.Range(0, goldRoll))
	s.Sheet.AddGold(gold)

	item, _ := sheet.LootItem(c.Tier, rng.Next())
	if item != "" {
		if err := s.Sheet.AddItem(item); err != nil {
			s.log.Warn("loot item lost", zap.String("item", string(item)), zap.Error(err))
			item = ""
		}
	}

	xp := xpPerTier * c.Tier
	events = append(events, Event{Kind: LootTaken, ChestID: c.ID, Item: item, Gold: gold, XP: xp})
	s.log.Debug("chest looted",
		zap.Int("chest", c.ID),
		zap.Int("tier", c.Tier),
		zap.Int("gold", gold),
		zap.String("item", string(item)))

	if gained := s.Sheet.GainXP(xp); gained > 0 {
		events = append(events, Event{Kind: LevelUp, Level: s.Sheet.Level})
		s.log.Info("level up", zap.Int("level", s.Sheet.Level))
	}
	return events
}

func (s *Session) rebuildRig() {
	eq := s.Sheet.Equipped
	s.rig.Appearance = character.Appearance{
		Armored: eq.Body != "",
		Helmet:  eq.Head != "",
		Weapon:  eq.Weapon != "",
	}
	local := s.rig.Build(s.Player.WalkPhase, s.Player.Jumping())
	s.mesh = s.rig.Place(local, s.Player.Position, s.Player.Yaw)
}
