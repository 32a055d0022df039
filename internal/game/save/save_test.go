package save

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/wildmere/internal/game/entity"
	"github.com/Faultbox/wildmere/internal/game/sheet"
	"github.com/Faultbox/wildmere/internal/game/world"
	"github.com/Faultbox/wildmere/pkg/math"
)

func TestWriteRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "save.yaml")

	sh := sheet.New()
	sh.GainXP(150)
	require.NoError(t, sh.AddItem("iron_helm"))
	require.NoError(t, sh.Equip("iron_helm"))
	snap := &Snapshot{
		Seed: 1234,
		Kinematics: entity.Kinematics{
			Position: math.Vec3{X: 12.5, Y: 0.75, Z: -3},
			Yaw:      1.25,
			Grounded: true,
		},
		Sheet:  *sh,
		Looted: []int{3, 1, 3},
	}
	require.NoError(t, Write(path, snap))

	got, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, Version, got.Version)
	assert.Equal(t, int64(1234), got.Seed)
	assert.Equal(t, snap.Kinematics, got.Kinematics)
	assert.Equal(t, 2, got.Sheet.Level)
	assert.Equal(t, sheet.ItemID("iron_helm"), got.Sheet.Equipped.Head)
	assert.Equal(t, []int{1, 3}, got.Looted)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file cleaned up")
}

func TestReadRejectsVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "save.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version: 7\nseed: 1\n"), 0644))

	_, err := Read(path)
	assert.ErrorIs(t, err, ErrVersion)
}

func TestReadRejectsSeedOutOfRange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "save.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version: 1\nseed: 1099511627776\n"), 0644))

	_, err := Read(path)
	assert.ErrorIs(t, err, world.ErrSeedRange)
}

func TestReadMissing(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "save.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version: [1"), 0644))

	_, err := Read(path)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "decoding save"))
}
