package config

import (
	_ "embed"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// DefaultSnakeConfig returns the default Snake configuration.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		Grid: GridConfig{
			Width:  20,
			Height: 20,
		},
		Snake: ActorConfig{
			InitialLength:    1,
			InitialDirection: "right",
		},
		Scoring: ScoringConfig{
			Unit: 10,
		},
		Speed: SpeedConfig{
			BaseIntervalMS: 100,
			StepMS:         2,
			MinIntervalMS:  50,
		},
		Rules: RulesConfig{
			BlockReversal: true,
			MaxInitials:   3,
		},
	}
}
