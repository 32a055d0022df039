package sim

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/wildmere/internal/game/save"
	"github.com/Faultbox/wildmere/internal/game/world"
	"github.com/Faultbox/wildmere/internal/logger"
)

// Start generates the world for params and opens a session on it. When
// loadPath is set the save is read first and its seed replaces params.Seed.
func Start(params world.Params, opts Options, loadPath string) (*Session, error) {
	var snap *save.Snapshot
	if loadPath != "" {
		var err error
		if snap, err = save.Read(loadPath); err != nil {
			return nil, err
		}
		params.Seed = snap.Seed
	}

	began := time.Now()
	w, err := world.Build(params)
	if err != nil {
		return nil, fmt.Errorf("generating world: %w", err)
	}
	logger.Named("sim").Info("world ready",
		zap.Int64("seed", params.Seed),
		zap.Duration("took", time.Since(began)))

	s := New(w, opts)
	if snap != nil {
		if err := s.Restore(snap); err != nil {
			return nil, err
		}
	}
	return s, nil
}
