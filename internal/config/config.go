// Package config provides YAML-based configuration loading and difficulty
// presets for the snake game.
package config

import (
	"errors"
	"fmt"
	"time"
)

// SnakeConfig contains all tunable parameters of the snake simulation.
type SnakeConfig struct {
	Grid     GridConfig    `yaml:"grid"`
	Scoring  ScoringConfig `yaml:"scoring"`
	Modes    ModesConfig   `yaml:"modes"`
	Powerups PowerupConfig `yaml:"powerups"`
	Ledger   LedgerConfig  `yaml:"ledger"`
}

// GridConfig defines the playing field.
type GridConfig struct {
	Size           int `yaml:"size"`            // N for an N×N grid
	ObstacleMargin int `yaml:"obstacle_margin"` // Obstacles keep this many cells from the edge
}

// ScoringConfig defines how food is scored.
type ScoringConfig struct {
	FoodPoints int `yaml:"food_points"`
	Multiplier int `yaml:"multiplier"` // Applied while ScoreMultiplier is active
}

// ModesConfig holds the numeric parameters of every game mode.
type ModesConfig struct {
	Classic    ModeConfig `yaml:"classic"`
	Speed      ModeConfig `yaml:"speed"`
	Obstacles  ModeConfig `yaml:"obstacles"`
	TimeAttack ModeConfig `yaml:"time_attack"`
	Zen        ModeConfig `yaml:"zen"`
}

// ModeConfig defines per-mode numbers. Which of them a mode uses is decided
// by the mode policy, not by the file.
type ModeConfig struct {
	IntervalMS    int `yaml:"interval_ms"`
	SpeedStepMS   int `yaml:"speed_step_ms,omitempty"`
	MinIntervalMS int `yaml:"min_interval_ms,omitempty"`
	ObstaclesMin  int `yaml:"obstacles_min,omitempty"`
	ObstaclesMax  int `yaml:"obstacles_max,omitempty"`
	TimeLimitSec  int `yaml:"time_limit_sec,omitempty"`
}

// Interval returns the base tick interval.
func (m ModeConfig) Interval() time.Duration {
	return time.Duration(m.IntervalMS) * time.Millisecond
}

// PowerupConfig defines powerup spawning, decay and effect strength.
type PowerupConfig struct {
	SpawnChance   float64 `yaml:"spawn_chance"`
	MaxOnGrid     int     `yaml:"max_on_grid"`
	DecayChance   float64 `yaml:"decay_chance"`
	DurationTicks int     `yaml:"duration_ticks"`
	BoostMinMS    int     `yaml:"boost_min_ms"` // SpeedBoost never goes below this
	SlowMaxMS     int     `yaml:"slow_max_ms"`  // SlowDown never goes above this
}

// LedgerConfig defines high-score retention.
type LedgerConfig struct {
	Keep int `yaml:"keep"`
}

// Validation errors.
var (
	ErrInvalidGrid     = errors.New("config: invalid grid")
	ErrInvalidMode     = errors.New("config: invalid mode parameters")
	ErrInvalidPowerups = errors.New("config: invalid powerup parameters")
)

// Validate reports every problem found in the configuration.
func (c SnakeConfig) Validate() error {
	var errs []error

	if c.Grid.Size < 5 {
		errs = append(errs, fmt.Errorf("%w: size %d is below 5", ErrInvalidGrid, c.Grid.Size))
	}
	if c.Grid.ObstacleMargin < 0 || 2*c.Grid.ObstacleMargin >= c.Grid.Size {
		errs = append(errs, fmt.Errorf("%w: obstacle margin %d does not fit size %d",
			ErrInvalidGrid, c.Grid.ObstacleMargin, c.Grid.Size))
	}
	if c.Scoring.FoodPoints <= 0 || c.Scoring.Multiplier < 1 {
		errs = append(errs, fmt.Errorf("%w: scoring must be positive", ErrInvalidMode))
	}

	modes := map[string]ModeConfig{
		"classic":     c.Modes.Classic,
		"speed":       c.Modes.Speed,
		"obstacles":   c.Modes.Obstacles,
		"time_attack": c.Modes.TimeAttack,
		"zen":         c.Modes.Zen,
	}
	for name, m := range modes {
		if m.IntervalMS <= 0 {
			errs = append(errs, fmt.Errorf("%w: %s interval_ms must be positive", ErrInvalidMode, name))
		}
	}
	if c.Modes.Speed.MinIntervalMS <= 0 || c.Modes.Speed.MinIntervalMS > c.Modes.Speed.IntervalMS {
		errs = append(errs, fmt.Errorf("%w: speed min_interval_ms must be in (0, interval_ms]", ErrInvalidMode))
	}
	if c.Modes.Speed.SpeedStepMS < 0 {
		errs = append(errs, fmt.Errorf("%w: speed speed_step_ms must not be negative", ErrInvalidMode))
	}
	if o := c.Modes.Obstacles; o.ObstaclesMin < 0 || o.ObstaclesMax < o.ObstaclesMin {
		errs = append(errs, fmt.Errorf("%w: obstacles_min/max out of order", ErrInvalidMode))
	}
	if c.Modes.TimeAttack.TimeLimitSec <= 0 {
		errs = append(errs, fmt.Errorf("%w: time_attack time_limit_sec must be positive", ErrInvalidMode))
	}

	p := c.Powerups
	if p.SpawnChance < 0 || p.SpawnChance > 1 || p.DecayChance < 0 || p.DecayChance > 1 {
		errs = append(errs, fmt.Errorf("%w: chances must be within [0, 1]", ErrInvalidPowerups))
	}
	if p.MaxOnGrid < 0 || p.DurationTicks <= 0 {
		errs = append(errs, fmt.Errorf("%w: max_on_grid/duration_ticks out of range", ErrInvalidPowerups))
	}
	if p.BoostMinMS <= 0 || p.SlowMaxMS < p.BoostMinMS {
		errs = append(errs, fmt.Errorf("%w: boost_min_ms/slow_max_ms out of range", ErrInvalidPowerups))
	}

	if c.Ledger.Keep <= 0 {
		errs = append(errs, fmt.Errorf("config: ledger keep must be positive"))
	}

	return errors.Join(errs...)
}
