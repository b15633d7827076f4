package snake

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vovakirdan/snake-arcade/internal/config"
)

// Mode represents the game mode.
type Mode int

const (
	ModeClassic Mode = iota
	ModeSpeed
	ModeObstacles
	ModeTimeAttack
	ModeZen
)

// ErrUnknownMode is returned by ParseMode for unrecognized names.
var ErrUnknownMode = errors.New("snake: unknown mode")

// Modes returns all modes in menu order.
func Modes() []Mode {
	return []Mode{ModeClassic, ModeSpeed, ModeObstacles, ModeTimeAttack, ModeZen}
}

// ID returns the short identifier used on the command line.
func (m Mode) ID() string {
	switch m {
	case ModeClassic:
		return "classic"
	case ModeSpeed:
		return "speed"
	case ModeObstacles:
		return "obstacles"
	case ModeTimeAttack:
		return "time_attack"
	case ModeZen:
		return "zen"
	default:
		return "unknown"
	}
}

// String returns the display name. It is also the key high scores are
// stored under, which keeps existing score files readable.
func (m Mode) String() string {
	switch m {
	case ModeClassic:
		return "Classic"
	case ModeSpeed:
		return "Speed Mode"
	case ModeObstacles:
		return "Obstacles"
	case ModeTimeAttack:
		return "Time Attack"
	case ModeZen:
		return "Zen Mode"
	default:
		return "Unknown"
	}
}

// Description returns the one-line menu blurb.
func (m Mode) Description() string {
	switch m {
	case ModeClassic:
		return "Traditional snake gameplay"
	case ModeSpeed:
		return "Increases speed over time"
	case ModeObstacles:
		return "Avoid random obstacles"
	case ModeTimeAttack:
		return "Score max in 2 minutes"
	case ModeZen:
		return "No walls, just relax"
	default:
		return ""
	}
}

// ParseMode accepts either the ID ("time_attack") or the display name
// ("Time Attack"), case-insensitively.
func ParseMode(s string) (Mode, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for _, m := range Modes() {
		if needle == m.ID() || needle == strings.ToLower(m.String()) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownMode, s)
}

// Policy is what a mode changes about the rules.
type Policy struct {
	Interval    time.Duration // Initial tick interval
	Wrap        bool          // Edges wrap around instead of killing
	Obstacles   bool          // Obstacles are placed at run start
	SpeedRamp   bool          // Each food shortens the interval
	SpeedStep   time.Duration
	MinInterval time.Duration
	TimeLimit   time.Duration // Zero when not timed
}

// Timed reports whether the mode ends on a clock.
func (p Policy) Timed() bool {
	return p.TimeLimit > 0
}

// PolicyFor maps a mode to its rules. Numbers come from the config, the
// shape of each mode is fixed here.
func PolicyFor(mode Mode, cfg config.SnakeConfig) Policy {
	switch mode {
	case ModeSpeed:
		m := cfg.Modes.Speed
		return Policy{
			Interval:    m.Interval(),
			SpeedRamp:   m.SpeedStepMS > 0,
			SpeedStep:   time.Duration(m.SpeedStepMS) * time.Millisecond,
			MinInterval: time.Duration(m.MinIntervalMS) * time.Millisecond,
		}
	case ModeObstacles:
		return Policy{
			Interval:  cfg.Modes.Obstacles.Interval(),
			Obstacles: true,
		}
	case ModeTimeAttack:
		m := cfg.Modes.TimeAttack
		return Policy{
			Interval:  m.Interval(),
			TimeLimit: time.Duration(m.TimeLimitSec) * time.Second,
		}
	case ModeZen:
		return Policy{
			Interval: cfg.Modes.Zen.Interval(),
			Wrap:     true,
		}
	default:
		return Policy{
			Interval: cfg.Modes.Classic.Interval(),
		}
	}
}
