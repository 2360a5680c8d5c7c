package astar

import (
	"math"

	"github.com/katalvlaran/placegrid/gridmap"
)

// Manhattan returns the smallest |Δrow|+|Δcol| from p to any goal, or 0
// when goals is empty.
func Manhattan(p gridmap.Position, goals []gridmap.Position) float64 {
	if len(goals) == 0 {
		return 0
	}
	best := math.Inf(1)
	for _, g := range goals {
		if d := p.Manhattan(g); d < best {
			best = d
		}
	}
	return best
}

// Scaled returns Manhattan multiplied by factor. With factor equal to the
// cheapest edge cost the estimate never exceeds the true remaining cost.
func Scaled(factor float64) Heuristic {
	return func(p gridmap.Position, goals []gridmap.Position) float64 {
		return factor * Manhattan(p, goals)
	}
}
