package ghost

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/tui-pacman/internal/core"
)

// Walker is the part of the maze a ghost needs for steering.
type Walker interface {
	IsGhostWalkable(p core.Point, canUseDoor bool) bool
	WrapPosition(p core.Point) core.Point
}

// options returns the legal directions from pos, excluding the reverse of
// facing. Order follows core.Directions.
func options(w Walker, pos core.Point, facing core.Direction, canUseDoor bool) []core.Direction {
	out := make([]core.Direction, 0, 4)
	back := facing.Opposite()
	for _, d := range core.Directions {
		if facing != core.DirNone && d == back {
			continue
		}
		if w.IsGhostWalkable(w.WrapPosition(pos.Step(d, 1)), canUseDoor) {
			out = append(out, d)
		}
	}
	return out
}

func reverseIfOpen(w Walker, pos core.Point, facing core.Direction, canUseDoor bool) core.Direction {
	back := facing.Opposite()
	if back != core.DirNone && w.IsGhostWalkable(w.WrapPosition(pos.Step(back, 1)), canUseDoor) {
		return back
	}
	return core.DirNone
}

// NextDirection picks the step that leaves a ghost closest (by straight-line
// distance) to target. Ghosts never turn around voluntarily; ties go to the
// earlier entry of core.Directions. In a dead end the ghost reverses, and
// DirNone means it is boxed in.
func NextDirection(w Walker, pos core.Point, facing core.Direction, target core.Point, canUseDoor bool) core.Direction {
	best := core.DirNone
	bestDist := math.MaxInt
	for _, d := range options(w, pos, facing, canUseDoor) {
		next := w.WrapPosition(pos.Step(d, 1))
		if dist := next.DistanceSq(target); dist < bestDist {
			best, bestDist = d, dist
		}
	}
	if best == core.DirNone {
		return reverseIfOpen(w, pos, facing, canUseDoor)
	}
	return best
}

// RandomDirection picks a uniformly random legal step, as frightened ghosts
// do at every junction.
func RandomDirection(w Walker, pos core.Point, facing core.Direction, canUseDoor bool, rng *rand.Rand) core.Direction {
	opts := options(w, pos, facing, canUseDoor)
	if len(opts) == 0 {
		return reverseIfOpen(w, pos, facing, canUseDoor)
	}
	return opts[rng.Intn(len(opts))]
}

// ElroyLevel returns how far Red has sped up for the pellets left:
// 0 normal, 1 after the first threshold, 2 after the second.
func ElroyLevel(pelletsLeft, threshold1, threshold2 int) int {
	switch {
	case pelletsLeft <= threshold2:
		return 2
	case pelletsLeft <= threshold1:
		return 1
	default:
		return 0
	}
}
