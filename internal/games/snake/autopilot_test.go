package snake

import (
	"testing"

	"github.com/vovakirdan/snake-arcade/internal/config"
	"github.com/vovakirdan/snake-arcade/internal/core"
)

func TestSteerAvoidsWall(t *testing.T) {
	e := NewEngine(quietConfig(), 20)
	w := newTestWorld(t, e, ModeClassic)
	w.Snake = []Point{{X: 19, Y: 10}, {X: 18, Y: 10}, {X: 17, Y: 10}}
	w.Food = Point{X: 19, Y: 0}

	if d := Steer(w, e.Policy(ModeClassic)); d != DirUp {
		t.Errorf("Steer() = %v, expected up", d)
	}
}

func TestSteerHeadsForFood(t *testing.T) {
	e := NewEngine(quietConfig(), 21)
	w := newTestWorld(t, e, ModeClassic)
	w.Food = Point{X: 10, Y: 15}

	if d := Steer(w, e.Policy(ModeClassic)); d != DirDown {
		t.Errorf("Steer() = %v, expected down", d)
	}
}

func TestSteerNeverReverses(t *testing.T) {
	e := NewEngine(quietConfig(), 22)
	w := newTestWorld(t, e, ModeClassic)
	w.Food = Point{X: 0, Y: 10} // Straight behind

	d := Steer(w, e.Policy(ModeClassic))
	if d == DirLeft {
		t.Error("Steer() chose a reversal")
	}
	if !w.Queue(d) {
		t.Errorf("Queue(%v) rejected", d)
	}
}

// Drives every mode with the autopilot and checks the world stays
// consistent after each tick.
func TestWorldInvariantsUnderAutopilot(t *testing.T) {
	for _, mode := range Modes() {
		t.Run(mode.ID(), func(t *testing.T) {
			clock := newClock()
			e := NewEngine(config.DefaultSnakeConfig(), 99, WithClock(clock.Now))
			w := newTestWorld(t, e, mode)
			pol := e.Policy(mode)
			obstacles := len(w.Obstacles)

			for range 500 {
				w.Queue(Steer(w, pol))
				next, out, err := e.Step(w)
				if err != nil {
					t.Fatalf("Step() failed: %v", err)
				}
				if out.Terminal() {
					break
				}
				checkWorld(t, next, pol)

				if len(next.Obstacles) != obstacles {
					t.Fatalf("obstacle count changed to %d", len(next.Obstacles))
				}
				if len(next.Powerups) > e.Config().Powerups.MaxOnGrid {
					t.Fatalf("%d powerups exceed cap", len(next.Powerups))
				}
				if next.Moves != w.Moves+1 {
					t.Fatalf("moves = %d, expected %d", next.Moves, w.Moves+1)
				}
				w = next
				clock.Advance(pol.Interval)
			}
		})
	}
}

func checkWorld(t *testing.T, w World, pol Policy) {
	t.Helper()

	if len(w.Snake) != 3+w.FoodEaten {
		t.Fatalf("length %d with %d food eaten", len(w.Snake), w.FoodEaten)
	}

	seen := make(map[Point]bool, len(w.Snake))
	for i, seg := range w.Snake {
		if !w.InBounds(seg) {
			t.Fatalf("segment %d out of bounds: %v", i, seg)
		}
		if seen[seg] {
			t.Fatalf("segment %v repeated", seg)
		}
		seen[seg] = true
		if w.Obstacles[seg] {
			t.Fatalf("segment %v on obstacle", seg)
		}
		if i > 0 && !neighbours(w.Snake[i-1], seg, w.Size, pol.Wrap) {
			t.Fatalf("segments %v and %v not adjacent", w.Snake[i-1], seg)
		}
	}

	if w.HasFood && (seen[w.Food] || w.Obstacles[w.Food]) {
		t.Fatalf("food %v on an occupied cell", w.Food)
	}
	for _, pu := range w.Powerups {
		if w.Obstacles[pu.Pos] {
			t.Fatalf("powerup %v on obstacle", pu.Pos)
		}
	}
}

func neighbours(a, b Point, size int, wrap bool) bool {
	if a.Adjacent(b) {
		return true
	}
	if !wrap {
		return false
	}
	dx, dy := core.Abs(a.X-b.X), core.Abs(a.Y-b.Y)
	return (dx == size-1 && dy == 0) || (dy == size-1 && dx == 0)
}
