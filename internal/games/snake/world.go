package snake

import (
	"fmt"
	"time"
)

// Direction represents the snake's movement direction.
type Direction int

const (
	DirRight Direction = iota
	DirDown
	DirLeft
	DirUp
)

// Opposite returns the direction pointing the other way.
func (d Direction) Opposite() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	default:
		return DirLeft
	}
}

// Delta returns the one-cell offset for the direction.
func (d Direction) Delta() Point {
	switch d {
	case DirUp:
		return Point{X: 0, Y: -1}
	case DirDown:
		return Point{X: 0, Y: 1}
	case DirLeft:
		return Point{X: -1, Y: 0}
	default:
		return Point{X: 1, Y: 0}
	}
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// Point represents a grid cell (column, row).
type Point struct {
	X, Y int
}

// Add returns p shifted by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Adjacent reports whether q is one orthogonal step from p.
func (p Point) Adjacent(q Point) bool {
	dx, dy := p.X-q.X, p.Y-q.Y
	return (dx == 0 && (dy == 1 || dy == -1)) || (dy == 0 && (dx == 1 || dx == -1))
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// PowerupKind identifies what a powerup does when collected.
type PowerupKind int

const (
	KindSpeedBoost PowerupKind = iota
	KindSlowDown
	KindScoreMultiplier
	KindInvincible
)

// PowerupKinds lists every kind in spawn order.
func PowerupKinds() []PowerupKind {
	return []PowerupKind{KindSpeedBoost, KindSlowDown, KindScoreMultiplier, KindInvincible}
}

func (k PowerupKind) String() string {
	switch k {
	case KindSpeedBoost:
		return "Speed Boost"
	case KindSlowDown:
		return "Slow Motion"
	case KindScoreMultiplier:
		return "2x Score"
	case KindInvincible:
		return "Invincible"
	default:
		return "Unknown"
	}
}

// Powerup is an uncollected pickup lying on the grid.
type Powerup struct {
	Pos  Point
	Kind PowerupKind
}

// Effect is the powerup currently applied to the snake.
type Effect struct {
	Kind      PowerupKind
	Remaining int // Ticks left
	Duration  int // Ticks granted on collection
}

// Fraction returns the remaining share of the effect in [0, 1].
func (e Effect) Fraction() float64 {
	if e.Duration <= 0 {
		return 0
	}
	return float64(e.Remaining) / float64(e.Duration)
}

// World is the complete state of one run. It is a plain value: the engine
// takes a World and returns the next one, so callers own their copies.
type World struct {
	Mode Mode
	Size int // Grid is Size×Size

	Snake  []Point // Head at index 0
	Dir    Direction
	Queued Direction // Buffered direction for next tick

	Food      Point
	HasFood   bool
	Obstacles map[Point]bool // Immutable after run start
	Powerups  []Powerup
	Effect    *Effect // nil when no effect is active

	Score      int
	Multiplier int
	FoodEaten  int
	Moves      int
	Tick       uint64

	Interval     time.Duration // Current tick interval
	BaseInterval time.Duration // Mode base interval, restored when effects expire

	StartedAt time.Time
	TimeLimit time.Duration // Zero when the mode is not timed
	TimeLeft  time.Duration
}

// Head returns the snake's head cell.
func (w World) Head() Point {
	return w.Snake[0]
}

// Clone returns a deep copy of the mutable parts of the world.
// Obstacles are shared because they never change after run start.
func (w World) Clone() World {
	c := w
	c.Snake = append([]Point(nil), w.Snake...)
	c.Powerups = append([]Powerup(nil), w.Powerups...)
	if w.Effect != nil {
		e := *w.Effect
		c.Effect = &e
	}
	return c
}

// Queue buffers a direction for the next tick. A direction exactly opposite
// to the current heading is rejected and reported as false.
func (w *World) Queue(d Direction) bool {
	if d == w.Dir.Opposite() {
		return false
	}
	w.Queued = d
	return true
}

// InBounds reports whether p lies on the grid.
func (w World) InBounds(p Point) bool {
	return p.X >= 0 && p.X < w.Size && p.Y >= 0 && p.Y < w.Size
}

// IsSnakeAt checks if the snake occupies the given point.
func (w World) IsSnakeAt(p Point) bool {
	for _, seg := range w.Snake {
		if seg == p {
			return true
		}
	}
	return false
}

// PowerupAt returns the index of the powerup on p, or -1.
func (w World) PowerupAt(p Point) int {
	for i, pu := range w.Powerups {
		if pu.Pos == p {
			return i
		}
	}
	return -1
}

// Active reports whether the given effect kind is currently applied.
func (w World) Active(k PowerupKind) bool {
	return w.Effect != nil && w.Effect.Kind == k
}
