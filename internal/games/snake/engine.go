// Package snake implements the rules of the snake game: the entity model,
// the per-mode policy, the spawner and the one-tick simulation step.
// It has no notion of screens, timers or terminals.
package snake

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/snake-arcade/internal/config"
	"github.com/vovakirdan/snake-arcade/internal/core"
)

// Collision names what the head ran into.
type Collision int

const (
	CollisionNone Collision = iota
	CollisionWall
	CollisionSelf
	CollisionObstacle
)

func (c Collision) String() string {
	switch c {
	case CollisionNone:
		return "none"
	case CollisionWall:
		return "wall"
	case CollisionSelf:
		return "self"
	case CollisionObstacle:
		return "obstacle"
	default:
		return "unknown"
	}
}

// Outcome describes everything that happened during one tick.
// Several facts may be set at once; only Collision and TimeExpired end a run.
type Outcome struct {
	Collision      Collision // Fatal collision, CollisionNone if the snake survived
	Absorbed       Collision // Collision ignored because Invincible was active
	FoodEaten      bool
	PowerupSpawned bool
	Collected      PowerupKind
	HasCollected   bool
	Expired        PowerupKind // Effect that ran out this tick
	HasExpired     bool
	TimeExpired    bool
}

// Terminal reports whether the run is over.
func (o Outcome) Terminal() bool {
	return o.Collision != CollisionNone || o.TimeExpired
}

// Reason returns a short description of why a terminal tick ended the run.
func (o Outcome) Reason() string {
	switch {
	case o.Collision != CollisionNone:
		return "hit " + o.Collision.String()
	case o.TimeExpired:
		return "time up"
	default:
		return ""
	}
}

// Engine advances worlds tick by tick. It owns the random source, so two
// engines built with the same seed and clock produce the same runs.
type Engine struct {
	cfg     config.SnakeConfig
	rng     *rand.Rand
	spawner *Spawner
	now     func() time.Time
}

// Option customizes an Engine.
type Option func(*Engine)

// WithClock replaces the wall clock used for Time Attack.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// NewEngine creates an engine for the given configuration and seed.
func NewEngine(cfg config.SnakeConfig, seed int64, opts ...Option) *Engine {
	rng := rand.New(rand.NewSource(seed))
	e := &Engine{
		cfg:     cfg,
		rng:     rng,
		spawner: NewSpawner(rng, cfg),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Config returns the configuration the engine was built with.
func (e *Engine) Config() config.SnakeConfig {
	return e.cfg
}

// Policy returns the rules of the given mode under this engine's config.
func (e *Engine) Policy(mode Mode) Policy {
	return PolicyFor(mode, e.cfg)
}

// Now returns the engine's current time.
func (e *Engine) Now() time.Time {
	return e.now()
}

// NewWorld initializes a run: counters reset, a three-cell snake in the
// middle of the board heading right, mode policy applied, obstacles placed
// when the mode has them, and the first food spawned with the usual chance
// of a powerup.
func (e *Engine) NewWorld(mode Mode) (World, error) {
	pol := PolicyFor(mode, e.cfg)
	size := e.cfg.Grid.Size
	cx, cy := size/2, size/2

	w := World{
		Mode: mode,
		Size: size,
		Snake: []Point{
			{X: cx, Y: cy}, // Head
			{X: cx - 1, Y: cy},
			{X: cx - 2, Y: cy},
		},
		Dir:          DirRight,
		Queued:       DirRight,
		Obstacles:    make(map[Point]bool),
		Multiplier:   1,
		Interval:     pol.Interval,
		BaseInterval: pol.Interval,
		StartedAt:    e.now(),
		TimeLimit:    pol.TimeLimit,
		TimeLeft:     pol.TimeLimit,
	}

	if pol.Obstacles {
		if err := e.spawner.Obstacles(&w); err != nil {
			return w, err
		}
	}
	if err := e.spawner.Food(&w); err != nil {
		return w, err
	}
	e.spawner.MaybePowerup(&w)
	return w, nil
}

// Step advances the world by exactly one tick and returns the new world.
// The input world is not modified. An error means the board ran out of free
// cells for food; the returned world is still consistent.
func (e *Engine) Step(w World) (World, Outcome, error) {
	next := w.Clone()
	pol := PolicyFor(next.Mode, e.cfg)
	var out Outcome

	next.Tick++
	next.Moves++

	// Apply buffered direction
	next.Dir = next.Queued

	candidate := nextHead(next, next.Dir, pol)

	var err error
	if hit := collisionAt(next, candidate, pol); hit != CollisionNone {
		if !next.Active(KindInvincible) {
			out.Collision = hit
			return next, out, nil
		}
		// Invincible: the snake holds position and heading for this tick
		out.Absorbed = hit
		next.Dir = w.Dir
	} else {
		err = e.advance(&next, candidate, pol, &out)
	}

	e.tickEffect(&next, &out)
	e.spawner.Decay(&next)

	if pol.Timed() {
		left := pol.TimeLimit - e.now().Sub(next.StartedAt)
		next.TimeLeft = max(0, left)
		if next.TimeLeft <= 0 {
			out.TimeExpired = true
		}
	}

	return next, out, err
}

// nextHead returns the cell the head moves to when heading d.
func nextHead(w World, d Direction, pol Policy) Point {
	p := w.Head().Add(d.Delta())
	if pol.Wrap {
		p = Point{
			X: core.Wrap(p.X, w.Size),
			Y: core.Wrap(p.Y, w.Size),
		}
	}
	return p
}

// collisionAt checks a candidate head against walls, the body and obstacles.
func collisionAt(w World, p Point, pol Policy) Collision {
	if !pol.Wrap && !w.InBounds(p) {
		return CollisionWall
	}

	// The tail leaves its cell this tick, so moving onto it is safe
	body := w.Snake[:len(w.Snake)-1]
	for _, seg := range body {
		if seg == p {
			return CollisionSelf
		}
	}

	if w.Obstacles[p] {
		return CollisionObstacle
	}
	return CollisionNone
}

// advance moves the snake onto p and resolves food and powerup pickups.
func (e *Engine) advance(w *World, p Point, pol Policy, out *Outcome) error {
	w.Snake = append([]Point{p}, w.Snake...)

	var err error
	if w.HasFood && p == w.Food {
		out.FoodEaten = true
		w.FoodEaten++
		w.Score += e.cfg.Scoring.FoodPoints * w.Multiplier

		err = e.spawner.Food(w)
		if err == nil {
			out.PowerupSpawned = e.spawner.MaybePowerup(w)
		}

		if pol.SpeedRamp {
			e.rampSpeed(w, pol)
		}
	} else {
		w.Snake = w.Snake[:len(w.Snake)-1]
	}

	if i := w.PowerupAt(p); i >= 0 {
		kind := w.Powerups[i].Kind
		w.Powerups = append(w.Powerups[:i], w.Powerups[i+1:]...)
		e.activate(w, kind)
		out.Collected = kind
		out.HasCollected = true
	}

	return err
}

// rampSpeed shortens the base interval after each food in Speed mode.
// While a speed-changing effect is active it keeps control of the current
// interval and restores the ramped base when it expires.
func (e *Engine) rampSpeed(w *World, pol Policy) {
	w.BaseInterval = max(pol.MinInterval, w.BaseInterval-pol.SpeedStep)
	if !w.Active(KindSpeedBoost) && !w.Active(KindSlowDown) {
		w.Interval = w.BaseInterval
	}
}

// activate applies a collected powerup, replacing any active effect.
func (e *Engine) activate(w *World, kind PowerupKind) {
	if w.Effect != nil {
		e.revert(w)
	}

	pc := e.cfg.Powerups
	switch kind {
	case KindSpeedBoost:
		w.Interval = max(time.Duration(pc.BoostMinMS)*time.Millisecond, w.Interval/2)
	case KindSlowDown:
		w.Interval = min(time.Duration(pc.SlowMaxMS)*time.Millisecond, w.Interval*2)
	case KindScoreMultiplier:
		w.Multiplier = e.cfg.Scoring.Multiplier
	case KindInvincible:
		// Collisions are checked against the active effect
	}

	w.Effect = &Effect{
		Kind:      kind,
		Remaining: pc.DurationTicks,
		Duration:  pc.DurationTicks,
	}
}

// revert undoes the active effect and clears it.
func (e *Engine) revert(w *World) {
	switch w.Effect.Kind {
	case KindSpeedBoost, KindSlowDown:
		w.Interval = w.BaseInterval
	case KindScoreMultiplier:
		w.Multiplier = 1
	}
	w.Effect = nil
}

// tickEffect counts down the active effect and expires it at zero.
func (e *Engine) tickEffect(w *World, out *Outcome) {
	if w.Effect == nil {
		return
	}
	w.Effect.Remaining--
	if w.Effect.Remaining <= 0 {
		out.Expired = w.Effect.Kind
		out.HasExpired = true
		e.revert(w)
	}
}
