package config

import (
	"fmt"
	"strings"
)

// DifficultyPreset represents a named difficulty level. A preset only picks
// the constants of the linear speed-up; it never changes the rules.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParseDifficulty converts a flag value to a preset. Empty means normal.
func ParseDifficulty(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// ApplyPreset modifies the speed section of cfg for a difficulty preset.
// Normal keeps whatever the loaded file says.
func ApplyPreset(cfg *SnakeConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Speed = SpeedConfig{BaseIntervalMS: 140, StepMS: 2, MinIntervalMS: 80}
	case DifficultyHard:
		cfg.Speed = SpeedConfig{BaseIntervalMS: 80, StepMS: 3, MinIntervalMS: 40}
	case DifficultyFixed:
		// No speed-up at all.
		cfg.Speed.StepMS = 0
	}
}
