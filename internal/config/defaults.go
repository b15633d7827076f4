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
			Size:           20,
			ObstacleMargin: 2,
		},
		Scoring: ScoringConfig{
			FoodPoints: 10,
			Multiplier: 2,
		},
		Modes: ModesConfig{
			Classic: ModeConfig{IntervalMS: 100},
			Speed: ModeConfig{
				IntervalMS:    150,
				SpeedStepMS:   3,
				MinIntervalMS: 50,
			},
			Obstacles: ModeConfig{
				IntervalMS:   100,
				ObstaclesMin: 8,
				ObstaclesMax: 15,
			},
			TimeAttack: ModeConfig{
				IntervalMS:   100,
				TimeLimitSec: 120, // 2 minutes
			},
			Zen: ModeConfig{IntervalMS: 120},
		},
		Powerups: PowerupConfig{
			SpawnChance:   0.15,
			MaxOnGrid:     2,
			DecayChance:   0.01,
			DurationTicks: 100,
			BoostMinMS:    30,
			SlowMaxMS:     300,
		},
		Ledger: LedgerConfig{
			Keep: 10,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultSnakeYAML
}
