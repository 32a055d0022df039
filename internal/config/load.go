package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/wildmere/internal/game/world"
)

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	cfg := Default()

	// An explicit path takes priority over the standard locations.
	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	applyFlags(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./config.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "Wildmere")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "Wildmere")
	default: // Linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "wildmere")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "wildmere")
	}
}

// SavePath returns the file quick saves are written to.
func (c *Config) SavePath() string {
	dir := c.Saves.Dir
	if dir == "" {
		dir = filepath.Join(ConfigDir(), "saves")
	}
	slot := c.Saves.Slot
	if slot == "" {
		slot = "quicksave"
	}
	return filepath.Join(dir, slot+".yaml")
}

// Validate rejects settings the game cannot start with.
func (c *Config) Validate() error {
	if err := world.ValidateSeed(c.World.Seed); err != nil {
		return err
	}
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("invalid window size %dx%d", c.Window.Width, c.Window.Height)
	case c.World.HalfExtent < 20:
		return fmt.Errorf("world half_extent %.1f is too small", c.World.HalfExtent)
	case c.Collision.Passes < 1:
		return fmt.Errorf("collision passes must be at least 1, got %d", c.Collision.Passes)
	case c.Feed.Listen != "" && c.Feed.EveryFrames < 1:
		return fmt.Errorf("feed every_frames must be at least 1, got %d", c.Feed.EveryFrames)
	}
	return nil
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}
