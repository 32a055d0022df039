// Package config handles game configuration loading and management.
package config

import (
	"github.com/Faultbox/wildmere/internal/game/entity"
)

// Config holds all game settings.
type Config struct {
	Window    WindowConfig    `yaml:"window"`
	World     WorldConfig     `yaml:"world"`
	Player    PlayerConfig    `yaml:"player"`
	Camera    CameraConfig    `yaml:"camera"`
	Collision CollisionConfig `yaml:"collision"`
	Saves     SaveConfig      `yaml:"save"`
	Feed      FeedConfig      `yaml:"feed"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
	FPSLimit   int    `yaml:"fps_limit"`
	ShowFPS    bool   `yaml:"show_fps"`
}

// WorldConfig selects and sizes the generated world.
type WorldConfig struct {
	Seed          int64   `yaml:"seed"`
	HalfExtent    float32 `yaml:"half_extent"`
	TreeDensity   float32 `yaml:"tree_density"`
	RockAttempts  int     `yaml:"rock_attempts"`
	ChestAttempts int     `yaml:"chest_attempts"`
	MaxChests     int     `yaml:"max_chests"`
}

// PlayerConfig holds the player's name and movement feel.
type PlayerConfig struct {
	Name          string        `yaml:"name"`
	Movement      entity.Tuning `yaml:"movement"`
	InteractRange float32       `yaml:"interact_range"`
	DiscoverRange float32       `yaml:"discover_range"`
}

// CameraConfig holds follow camera settings.
type CameraConfig struct {
	Distance        float32 `yaml:"distance"`
	Height          float32 `yaml:"height"`
	FOV             float32 `yaml:"fov"`
	YawSensitivity  float32 `yaml:"yaw_sensitivity"`
	ZoomSensitivity float32 `yaml:"zoom_sensitivity"`
}

// CollisionConfig tunes the collision resolver.
type CollisionConfig struct {
	Passes     int     `yaml:"passes"`
	Buffer     float32 `yaml:"buffer"`
	StepHeight float32 `yaml:"step_height"`
}

// SaveConfig holds save file settings.
type SaveConfig struct {
	Dir  string `yaml:"dir"`  // empty means <config dir>/saves
	Slot string `yaml:"slot"` // file name without extension
	Load string `yaml:"-"`    // save to resume, set by -load
}

// FeedConfig holds the snapshot feed settings. An empty Listen disables it.
type FeedConfig struct {
	Listen      string `yaml:"listen"`
	EveryFrames int    `yaml:"every_frames"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "Wildmere",
			Width:  1280,
			Height: 720,
			VSync:  true,
		},
		World: WorldConfig{
			Seed:          1,
			HalfExtent:    100,
			TreeDensity:   0.55,
			RockAttempts:  40,
			ChestAttempts: 24,
			MaxChests:     8,
		},
		Player: PlayerConfig{
			Name:          "Wanderer",
			Movement:      entity.DefaultTuning(),
			InteractRange: 2,
			DiscoverRange: 8,
		},
		Camera: CameraConfig{
			Distance:        8,
			Height:          4,
			FOV:             60,
			YawSensitivity:  0.005,
			ZoomSensitivity: 0.1,
		},
		Collision: CollisionConfig{
			Passes:     3,
			Buffer:     0.01,
			StepHeight: 0.3,
		},
		Saves: SaveConfig{
			Slot: "quicksave",
		},
		Feed: FeedConfig{
			EveryFrames: 6,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
