package config

import (
	"github.com/Faultbox/wildmere/internal/engine/camera"
	"github.com/Faultbox/wildmere/internal/game/collision"
	"github.com/Faultbox/wildmere/internal/game/sim"
	"github.com/Faultbox/wildmere/internal/game/world"
)

// WorldParams returns the generation parameters for the configured world.
func (c *Config) WorldParams() world.Params {
	p := world.DefaultParams(c.World.Seed)
	p.HalfExtent = c.World.HalfExtent
	p.TreeDensity = c.World.TreeDensity
	p.RockAttempts = c.World.RockAttempts
	p.ChestAttempts = c.World.ChestAttempts
	p.MaxChests = c.World.MaxChests
	return p
}

// Resolver returns a collision resolver with the configured tuning.
func (c *Config) Resolver() *collision.Resolver {
	r := collision.NewResolver()
	r.Passes = c.Collision.Passes
	r.Buffer = c.Collision.Buffer
	r.StepHeight = c.Collision.StepHeight
	return r
}

// SessionOptions returns the options for a new play session.
func (c *Config) SessionOptions() sim.Options {
	return sim.Options{
		PlayerName:    c.Player.Name,
		Tuning:        c.Player.Movement,
		SavePath:      c.SavePath(),
		InteractRange: c.Player.InteractRange,
		DiscoverRange: c.Player.DiscoverRange,
		Resolver:      c.Resolver(),
	}
}

// ApplyCamera copies the camera settings onto f.
func (c *Config) ApplyCamera(f *camera.Follow) {
	if c.Camera.Distance > 0 {
		f.Distance = c.Camera.Distance
	}
	if c.Camera.Height > 0 {
		f.Height = c.Camera.Height
	}
	if c.Camera.FOV > 0 {
		f.FOV = c.Camera.FOV
	}
	if c.Camera.YawSensitivity > 0 {
		f.YawSensitivity = c.Camera.YawSensitivity
	}
	if c.Camera.ZoomSensitivity > 0 {
		f.ZoomSensitivity = c.Camera.ZoomSensitivity
	}
}
