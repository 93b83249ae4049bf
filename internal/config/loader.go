package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the search directories.
const FileName = "snake.yaml"

// Load loads Snake configuration and validates it.
// Search order: customPath -> ~/.snake/configs/snake.yaml -> ./configs/snake.yaml -> embedded default
func Load(customPath string) (SnakeConfig, error) {
	cfg := DefaultSnakeConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	// Try user config directory
	if userCfgPath := userConfigPath(FileName); userCfgPath != "" {
		if c, ok := tryFile(userCfgPath); ok {
			return c, c.Validate()
		}
	}

	// Try local configs directory
	if c, ok := tryFile(filepath.Join("configs", FileName)); ok {
		return c, c.Validate()
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultSnakeYAML, &cfg); err != nil {
		return DefaultSnakeConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, cfg.Validate()
}

// tryFile parses path on top of the defaults. Missing or broken files are
// skipped so the next search location can be tried.
func tryFile(path string) (SnakeConfig, bool) {
	cfg := DefaultSnakeConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, false
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	dir := UserDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "configs", filename)
}

// UserDir returns ~/.snake, or empty if home is unavailable.
func UserDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".snake")
}

// Validate clamps values the engine cannot work with and rejects the rest.
func (c *SnakeConfig) Validate() error {
	if c.Grid.Width < 1 || c.Grid.Height < 1 {
		return fmt.Errorf("config: grid must be at least 1x1, got %dx%d", c.Grid.Width, c.Grid.Height)
	}
	if c.Snake.InitialLength < 1 {
		c.Snake.InitialLength = 1
	}
	if c.Snake.InitialDirection == "" {
		c.Snake.InitialDirection = "right"
	}
	// The starting body lies along the heading and must not wrap onto itself.
	switch strings.ToLower(strings.TrimSpace(c.Snake.InitialDirection)) {
	case "up", "down":
		c.Snake.InitialLength = min(c.Snake.InitialLength, c.Grid.Height)
	case "left", "right":
		c.Snake.InitialLength = min(c.Snake.InitialLength, c.Grid.Width)
	default:
		return fmt.Errorf("config: unknown initial_direction %q", c.Snake.InitialDirection)
	}
	if c.Scoring.Unit < 0 {
		c.Scoring.Unit = 0
	}
	if c.Speed.MinIntervalMS < 1 {
		c.Speed.MinIntervalMS = 1
	}
	if c.Speed.BaseIntervalMS < c.Speed.MinIntervalMS {
		c.Speed.BaseIntervalMS = c.Speed.MinIntervalMS
	}
	if c.Speed.StepMS < 0 {
		c.Speed.StepMS = 0
	}
	if c.Rules.MaxInitials < 1 {
		c.Rules.MaxInitials = 3
	}
	return nil
}
