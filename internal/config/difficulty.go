package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParseDifficulty converts a flag value into a preset. Empty means normal.
func ParseDifficulty(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s), nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// intervalScalePercent returns how base intervals are scaled for a preset.
// Larger intervals mean a slower snake.
func intervalScalePercent(preset DifficultyPreset) int {
	switch preset {
	case DifficultyEasy:
		return 130
	case DifficultyHard:
		return 75
	default:
		return 100
	}
}

// ApplySnakePreset modifies the config based on a difficulty preset.
// Only tick intervals change; spawn chances and obstacle counts stay as
// configured.
// Fixed keeps the configured intervals but turns off the Speed mode ramp.
func ApplySnakePreset(cfg *SnakeConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Modes.Speed.SpeedStepMS = 0
		return
	}

	pct := intervalScalePercent(preset)
	scale := func(ms int) int {
		return max(1, ms*pct/100)
	}

	cfg.Modes.Classic.IntervalMS = scale(cfg.Modes.Classic.IntervalMS)
	cfg.Modes.Speed.IntervalMS = scale(cfg.Modes.Speed.IntervalMS)
	cfg.Modes.Speed.MinIntervalMS = min(scale(cfg.Modes.Speed.MinIntervalMS), cfg.Modes.Speed.IntervalMS)
	cfg.Modes.Obstacles.IntervalMS = scale(cfg.Modes.Obstacles.IntervalMS)
	cfg.Modes.TimeAttack.IntervalMS = scale(cfg.Modes.TimeAttack.IntervalMS)
	cfg.Modes.Zen.IntervalMS = scale(cfg.Modes.Zen.IntervalMS)
}
