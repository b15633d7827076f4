package snake

import (
	"errors"
	"math/rand"

	"github.com/vovakirdan/snake-arcade/internal/config"
)

// ErrBoardFull is returned when no free cell is left for a spawn.
var ErrBoardFull = errors.New("snake: no free cell left on the board")

// Spawner places food, obstacles and powerups on free cells.
// Free cells are enumerated up front, so a spawn never loops.
type Spawner struct {
	rng  *rand.Rand
	cfg  config.SnakeConfig
	kind []PowerupKind
}

// NewSpawner creates a spawner drawing from rng.
func NewSpawner(rng *rand.Rand, cfg config.SnakeConfig) *Spawner {
	return &Spawner{
		rng:  rng,
		cfg:  cfg,
		kind: PowerupKinds(),
	}
}

// freeCells collects the cells within [lo, hi] on both axes that hold no
// snake segment, obstacle, food or powerup.
func (s *Spawner) freeCells(w World, lo, hi int) []Point {
	var cells []Point
	for y := lo; y <= hi; y++ {
		for x := lo; x <= hi; x++ {
			p := Point{X: x, Y: y}
			if w.Obstacles[p] || w.IsSnakeAt(p) || (w.HasFood && w.Food == p) || w.PowerupAt(p) >= 0 {
				continue
			}
			cells = append(cells, p)
		}
	}
	return cells
}

// pick returns a uniformly random free cell in the given square.
func (s *Spawner) pick(w World, lo, hi int) (Point, error) {
	cells := s.freeCells(w, lo, hi)
	if len(cells) == 0 {
		return Point{X: -1, Y: -1}, ErrBoardFull
	}
	return cells[s.rng.Intn(len(cells))], nil
}

// Food places the food on a random free cell.
func (s *Spawner) Food(w *World) error {
	// The old food cell is being replaced, so it does not block itself.
	w.HasFood = false
	p, err := s.pick(*w, 0, w.Size-1)
	if err != nil {
		return err
	}
	w.Food = p
	w.HasFood = true
	return nil
}

// Obstacles fills the interior of the board with a random number of
// obstacles. It is called once, before the first food is placed.
func (s *Spawner) Obstacles(w *World) error {
	oc := s.cfg.Modes.Obstacles
	count := oc.ObstaclesMin
	if oc.ObstaclesMax > oc.ObstaclesMin {
		count += s.rng.Intn(oc.ObstaclesMax - oc.ObstaclesMin + 1)
	}

	if w.Obstacles == nil {
		w.Obstacles = make(map[Point]bool, count)
	}
	margin := s.cfg.Grid.ObstacleMargin
	for range count {
		p, err := s.pick(*w, margin, w.Size-1-margin)
		if err != nil {
			return err
		}
		w.Obstacles[p] = true
	}
	return nil
}

// MaybePowerup rolls the spawn chance and, if fewer than the maximum are
// on the grid, drops a powerup of a random kind. A full board simply means
// no powerup this time.
func (s *Spawner) MaybePowerup(w *World) bool {
	pc := s.cfg.Powerups
	if s.rng.Float64() >= pc.SpawnChance || len(w.Powerups) >= pc.MaxOnGrid {
		return false
	}
	p, err := s.pick(*w, 0, w.Size-1)
	if err != nil {
		return false
	}
	w.Powerups = append(w.Powerups, Powerup{
		Pos:  p,
		Kind: s.kind[s.rng.Intn(len(s.kind))],
	})
	return true
}

// Decay removes each uncollected powerup with an independent chance.
// Returns the number removed.
func (s *Spawner) Decay(w *World) int {
	kept := w.Powerups[:0]
	removed := 0
	for _, pu := range w.Powerups {
		if s.rng.Float64() < s.cfg.Powerups.DecayChance {
			removed++
			continue
		}
		kept = append(kept, pu)
	}
	w.Powerups = kept
	return removed
}
