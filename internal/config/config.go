// Package config provides YAML-based game configuration loading for the
// snake game: grid size, scoring, the linear speed-up and rule toggles.
package config

import "time"

// SnakeConfig contains all configuration for the Snake game.
type SnakeConfig struct {
	Grid    GridConfig    `yaml:"grid"`
	Snake   ActorConfig   `yaml:"snake"`
	Scoring ScoringConfig `yaml:"scoring"`
	Speed   SpeedConfig   `yaml:"speed"`
	Rules   RulesConfig   `yaml:"rules"`
}

// GridConfig defines the toroidal playfield.
type GridConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// ActorConfig defines the snake spawned when a session begins.
type ActorConfig struct {
	InitialLength    int    `yaml:"initial_length"`
	InitialDirection string `yaml:"initial_direction"` // up, down, left, right
}

// ScoringConfig defines points awarded per food.
type ScoringConfig struct {
	Unit int `yaml:"unit"`
}

// SpeedConfig defines the tick interval and its linear decrease per food.
type SpeedConfig struct {
	BaseIntervalMS int `yaml:"base_interval_ms"`
	StepMS         int `yaml:"step_ms"`
	MinIntervalMS  int `yaml:"min_interval_ms"`
}

// RulesConfig holds behavior toggles.
type RulesConfig struct {
	BlockReversal bool `yaml:"block_reversal"`
	MaxInitials   int  `yaml:"max_initials"`
}

// BaseInterval returns the starting tick interval.
func (s SpeedConfig) BaseInterval() time.Duration {
	return time.Duration(s.BaseIntervalMS) * time.Millisecond
}

// Step returns the interval decrease applied per food.
func (s SpeedConfig) Step() time.Duration {
	return time.Duration(s.StepMS) * time.Millisecond
}

// MinInterval returns the interval floor.
func (s SpeedConfig) MinInterval() time.Duration {
	return time.Duration(s.MinIntervalMS) * time.Millisecond
}
