package sim

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/wildmere/internal/engine/geom"
	"github.com/Faultbox/wildmere/internal/engine/terrain"
	"github.com/Faultbox/wildmere/internal/game/entity"
	"github.com/Faultbox/wildmere/internal/game/save"
	"github.com/Faultbox/wildmere/internal/game/sheet"
	"github.com/Faultbox/wildmere/internal/game/world"
	"github.com/Faultbox/wildmere/pkg/math"
)

const frame = float32(1.0 / 60)

var testWorld *world.World

func buildWorld(t *testing.T) *world.World {
	t.Helper()
	if testWorld == nil {
		w, err := world.Build(world.DefaultParams(42))
		require.NoError(t, err)
		testWorld = w
	}
	return testWorld
}

func newSession(t *testing.T, opts Options) *Session {
	t.Helper()
	return New(buildWorld(t), opts)
}

// standBy moves the player next to chest c.
func standBy(s *Session, c world.Chest) {
	p := c.Position.Add(math.Vec3{X: 1})
	p.Y = terrain.Elevation(p.X, p.Z)
	s.Player.Kinematics = entity.Kinematics{Position: p, Grounded: true}
}

func hasKind(events []Event, k EventKind) bool {
	for _, e := range events {
		if e.Kind == k {
			return true
		}
	}
	return false
}

func TestNewSpawnsAtOrigin(t *testing.T) {
	s := newSession(t, Options{})

	assert.Equal(t, "Wanderer", s.Player.Name)
	assert.InDelta(t, terrain.Elevation(0, 0), s.Player.Position.Y, 1e-6)
	assert.True(t, s.Player.Grounded)
	assert.NotZero(t, s.Mesh().Len())
	assert.Equal(t, uint64(0), s.Frame())
}

func TestTickMovesAlongCamera(t *testing.T) {
	s := newSession(t, Options{})

	for i := 0; i < 30; i++ {
		s.Tick(entity.Intent{Move: math.Vec2{Y: 1}}, frame)
	}
	assert.Equal(t, uint64(30), s.Frame())
	assert.Greater(t, s.Player.Position.Z, float32(0.5))
	assert.InDelta(t, 0, s.Player.Position.X, 1e-3)
	assert.True(t, s.Snapshot().Moving)

	s.Camera.Yaw = math.Pi / 2
	start := s.Player.Position
	for i := 0; i < 60; i++ {
		s.Tick(entity.Intent{Move: math.Vec2{Y: 1}}, frame)
	}
	assert.Greater(t, s.Player.Position.X, start.X+0.5)
}

func TestToggleInventory(t *testing.T) {
	s := newSession(t, Options{})

	s.Tick(entity.Intent{ToggleInventory: true}, frame)
	assert.True(t, s.Snapshot().InventoryOpen)
	s.Tick(entity.Intent{}, frame)
	assert.True(t, s.Snapshot().InventoryOpen)
	s.Tick(entity.Intent{ToggleInventory: true}, frame)
	assert.False(t, s.Snapshot().InventoryOpen)
}

func TestAttackTimer(t *testing.T) {
	s := newSession(t, Options{})

	s.Tick(entity.Intent{Attack: true}, frame)
	assert.True(t, s.Snapshot().Attacking)
	for i := 0; i < 30; i++ {
		s.Tick(entity.Intent{}, frame)
	}
	assert.False(t, s.Snapshot().Attacking)
}

func TestLootChest(t *testing.T) {
	s := newSession(t, Options{})
	require.NotEmpty(t, s.World.Chests)
	c := s.World.Chests[0]

	standBy(s, c)
	events := s.Tick(entity.Intent{Interact: true}, frame)

	require.True(t, hasKind(events, LootTaken))
	assert.True(t, hasKind(events, LootDiscovered))
	var taken Event
	for _, e := range events {
		if e.Kind == LootTaken {
			taken = e
		}
	}
	assert.Equal(t, c.ID, taken.ChestID)
	assert.GreaterOrEqual(t, taken.Gold, goldPerTier*c.Tier)
	assert.Less(t, taken.Gold, goldPerTier*c.Tier+goldRoll)
	assert.Equal(t, xpPerTier*c.Tier, taken.XP)
	assert.Equal(t, taken.Gold, s.Sheet.Gold)
	assert.Contains(t, s.Sheet.Inventory, taken.Item)
	assert.Equal(t, c.Tier >= 3, hasKind(events, LevelUp))
	assert.True(t, s.Looted(c.ID))

	again := s.Tick(entity.Intent{Interact: true}, frame)
	for _, e := range again {
		assert.NotEqual(t, c.ID, e.ChestID)
	}
	assert.Equal(t, 1, s.Snapshot().Looted)
}

func TestLootIsDeterministic(t *testing.T) {
	a := newSession(t, Options{})
	b := newSession(t, Options{})
	c := a.World.Chests[0]

	standBy(a, c)
	standBy(b, c)
	ea := a.Tick(entity.Intent{Interact: true}, frame)
	eb := b.Tick(entity.Intent{Interact: true}, frame)

	assert.Equal(t, ea, eb)
	assert.Equal(t, a.Sheet, b.Sheet)
}

func TestInteractOutOfRange(t *testing.T) {
	s := newSession(t, Options{})

	events := s.Tick(entity.Intent{Interact: true}, frame)
	assert.False(t, hasKind(events, LootTaken))
	assert.Zero(t, s.Sheet.Gold)
}

func TestDiscoveryFiresOnce(t *testing.T) {
	s := newSession(t, Options{})
	c := s.World.Chests[0]

	standBy(s, c)
	first := s.Tick(entity.Intent{}, frame)
	second := s.Tick(entity.Intent{}, frame)

	count := 0
	for _, e := range append(first, second...) {
		if e.Kind == LootDiscovered && e.ChestID == c.ID {
			count++
		}
	}
	assert.Equal(t, 1, count)
	assert.False(t, s.Looted(c.ID))
}

func TestQuickSaveAndRestore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saves", "quick.yaml")
	s := newSession(t, Options{SavePath: path})
	c := s.World.Chests[0]

	standBy(s, c)
	s.Tick(entity.Intent{Interact: true}, frame)
	events := s.Tick(entity.Intent{QuickSave: true}, frame)

	require.True(t, hasKind(events, Saved))
	for _, e := range events {
		if e.Kind == Saved {
			require.NoError(t, e.Err)
			assert.Equal(t, path, e.Path)
		}
	}

	snap, err := save.Read(path)
	require.NoError(t, err)
	assert.Equal(t, int64(42), snap.Seed)
	assert.Equal(t, []int{c.ID}, snap.Looted)

	r := newSession(t, Options{})
	require.NoError(t, r.Restore(snap))
	assert.Equal(t, s.Player.Position, r.Player.Position)
	assert.Equal(t, s.Sheet.Gold, r.Sheet.Gold)
	assert.Equal(t, s.Sheet.Inventory, r.Sheet.Inventory)
	assert.True(t, r.Looted(c.ID))

	standBy(r, c)
	after := r.Tick(entity.Intent{Interact: true}, frame)
	for _, e := range after {
		assert.NotEqual(t, c.ID, e.ChestID)
	}
}

func TestQuickSaveWithoutPath(t *testing.T) {
	s := newSession(t, Options{})

	events := s.Tick(entity.Intent{QuickSave: true}, frame)
	require.Len(t, events, 1)
	assert.Equal(t, Saved, events[0].Kind)
	assert.ErrorIs(t, events[0].Err, ErrNoSavePath)
}

func TestRestoreRejectsOtherSeed(t *testing.T) {
	s := newSession(t, Options{})

	err := s.Restore(&save.Snapshot{Version: save.Version, Seed: 7})
	assert.ErrorIs(t, err, ErrSeedMismatch)
}

func TestSnapshotIsACopy(t *testing.T) {
	s := newSession(t, Options{})
	require.NoError(t, s.Sheet.AddItem("rusty_sword"))

	snap := s.Snapshot()
	snap.Inventory[0] = "knight_blade"
	assert.Equal(t, sheet.ItemID("rusty_sword"), s.Sheet.Inventory[0])
	assert.Equal(t, 100, snap.XPToNext)
}

func TestEquipmentChangesAppearance(t *testing.T) {
	s := newSession(t, Options{})
	assert.Zero(t, s.Mesh().CountByMaterial()[geom.MaterialMail])

	require.NoError(t, s.Sheet.AddItem("chain_mail"))
	require.NoError(t, s.Sheet.Equip("chain_mail"))
	s.Tick(entity.Intent{}, frame)
	assert.NotZero(t, s.Mesh().CountByMaterial()[geom.MaterialMail])
}

func TestEventKindText(t *testing.T) {
	text, err := LevelUp.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "level_up", string(text))
	assert.Equal(t, "unknown", EventKind(0).String())
}

func TestStartFromSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	s := newSession(t, Options{SavePath: path})
	s.Player.Position = math.Vec3{X: 3, Y: terrain.Elevation(3, 4), Z: 4}
	s.Sheet.AddGold(17)
	_, err := s.Save()
	require.NoError(t, err)

	// The save's seed wins over the requested one.
	r, err := Start(world.DefaultParams(5), Options{}, path)
	require.NoError(t, err)
	assert.Equal(t, int64(42), r.World.Params.Seed)
	assert.Equal(t, 17, r.Sheet.Gold)
	assert.Equal(t, float32(3), r.Player.Position.X)
}

func TestStartMissingSave(t *testing.T) {
	_, err := Start(world.DefaultParams(1), Options{}, filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
