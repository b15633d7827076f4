package snake

import (
	"sort"
	"time"
)

// Snapshot is the read-only view of a world handed to the rendering layer
// after every tick. All slices are copies.
type Snapshot struct {
	Tick      uint64
	Mode      Mode
	Size      int
	Snake     []Point // Head first
	Dir       Direction
	Food      Point
	HasFood   bool
	Obstacles []Point // Row-major order
	Powerups  []Powerup

	Score      int
	Multiplier int
	Length     int
	FoodEaten  int
	Moves      int
	Interval   time.Duration

	Timed    bool
	TimeLeft time.Duration

	HasEffect      bool
	Effect         PowerupKind
	EffectFraction float64 // Remaining share of the effect, for progress bars
}

// Snapshot returns the current world snapshot.
func (w World) Snapshot() Snapshot {
	obstacles := make([]Point, 0, len(w.Obstacles))
	for p := range w.Obstacles {
		obstacles = append(obstacles, p)
	}
	sort.Slice(obstacles, func(i, j int) bool {
		if obstacles[i].Y != obstacles[j].Y {
			return obstacles[i].Y < obstacles[j].Y
		}
		return obstacles[i].X < obstacles[j].X
	})

	snap := Snapshot{
		Tick:       w.Tick,
		Mode:       w.Mode,
		Size:       w.Size,
		Snake:      append([]Point(nil), w.Snake...),
		Dir:        w.Dir,
		Food:       w.Food,
		HasFood:    w.HasFood,
		Obstacles:  obstacles,
		Powerups:   append([]Powerup(nil), w.Powerups...),
		Score:      w.Score,
		Multiplier: w.Multiplier,
		Length:     len(w.Snake),
		FoodEaten:  w.FoodEaten,
		Moves:      w.Moves,
		Interval:   w.Interval,
		Timed:      w.TimeLimit > 0,
		TimeLeft:   w.TimeLeft,
	}

	if w.Effect != nil {
		snap.HasEffect = true
		snap.Effect = w.Effect.Kind
		snap.EffectFraction = w.Effect.Fraction()
	}

	return snap
}
