// Package save persists a play session as YAML. Only the seed and mutable
// state are stored; the world is regenerated from the seed on load.
package save

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/wildmere/internal/game/entity"
	"github.com/Faultbox/wildmere/internal/game/sheet"
	"github.com/Faultbox/wildmere/internal/game/world"
)

// Version is the current save format.
const Version = 1

// ErrVersion is returned for saves written by an unknown format version.
var ErrVersion = errors.New("unsupported save version")

// Snapshot is everything needed to resume a session.
type Snapshot struct {
	Version    int               `yaml:"version"`
	Seed       int64             `yaml:"seed"`
	SavedAt    time.Time         `yaml:"saved_at"`
	Kinematics entity.Kinematics `yaml:"kinematics"`
	Sheet      sheet.Sheet       `yaml:"sheet"`
	Looted     []int             `yaml:"looted"`
}

// Normalize sorts and dedups the looted chest ids.
func (s *Snapshot) Normalize() {
	slices.Sort(s.Looted)
	s.Looted = slices.Compact(s.Looted)
}

// Write stores snap at path, creating parent directories. The file is
// replaced atomically.
func Write(path string, snap *Snapshot) error {
	if snap.Version == 0 {
		snap.Version = Version
	}
	snap.Normalize()

	data, err := yaml.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encoding save: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating save dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".save-*.yaml")
	if err != nil {
		return fmt.Errorf("creating temp save: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing save: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing save: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing save: %w", err)
	}
	return nil
}

// Read loads a snapshot from path.
func Read(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading save: %w", err)
	}
	var snap Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decoding save %s: %w", path, err)
	}
	if snap.Version != Version {
		return nil, fmt.Errorf("%w: %d", ErrVersion, snap.Version)
	}
	if err := world.ValidateSeed(snap.Seed); err != nil {
		return nil, fmt.Errorf("save %s: %w", path, err)
	}
	if snap.Sheet.Level < 1 {
		snap.Sheet.Level = 1
	}
	snap.Normalize()
	return &snap, nil
}
