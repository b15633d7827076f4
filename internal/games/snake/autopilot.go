package snake

import "github.com/vovakirdan/snake-arcade/internal/core"

// Steer picks a direction for a computer-controlled snake: among the moves
// that do not collide it takes the one closest to the food, preferring cells
// with more open neighbours on ties. With no safe move it keeps going.
func Steer(w World, pol Policy) Direction {
	best := w.Dir
	bestDist, bestRoom := -1, -1

	for _, d := range []Direction{w.Dir, turnLeft(w.Dir), turnRight(w.Dir)} {
		p := nextHead(w, d, pol)
		if collisionAt(w, p, pol) != CollisionNone {
			continue
		}

		dist := 0
		if w.HasFood {
			dist = distance(p, w.Food, w.Size, pol.Wrap)
		}
		room := openNeighbours(w, p, pol)

		if bestDist < 0 || dist < bestDist || (dist == bestDist && room > bestRoom) {
			best, bestDist, bestRoom = d, dist, room
		}
	}

	return best
}

func turnLeft(d Direction) Direction {
	switch d {
	case DirUp:
		return DirLeft
	case DirLeft:
		return DirDown
	case DirDown:
		return DirRight
	default:
		return DirUp
	}
}

func turnRight(d Direction) Direction {
	return turnLeft(d).Opposite()
}

// distance is the Manhattan distance, measured around the edges when the
// board wraps.
func distance(a, b Point, size int, wrap bool) int {
	dx, dy := core.Abs(a.X-b.X), core.Abs(a.Y-b.Y)
	if wrap {
		dx = core.Min(dx, size-dx)
		dy = core.Min(dy, size-dy)
	}
	return dx + dy
}

// openNeighbours counts the cells around p the head could still enter.
func openNeighbours(w World, p Point, pol Policy) int {
	probe := w
	probe.Snake = append([]Point{p}, w.Snake...)

	n := 0
	for _, d := range []Direction{DirUp, DirDown, DirLeft, DirRight} {
		if collisionAt(probe, nextHead(probe, d, pol), pol) == CollisionNone {
			n++
		}
	}
	return n
}
