package gridmap

import (
	"fmt"
	"math"
)

// NewEdge returns the canonical Edge between a and b (From precedes To in
// row-major order). It does not check adjacency.
func NewEdge(a, b Position) Edge {
	if b.Row < a.Row || (b.Row == a.Row && b.Col < a.Col) {
		a, b = b, a
	}
	return Edge{From: a, To: b}
}

// Edges returns every lattice edge exactly once: first the edges between
// consecutive corner rows, then the edges between consecutive corner columns.
func (m *Map) Edges() []Edge {
	out := make([]Edge, 0, 2*m.rows*m.cols+m.rows+m.cols)
	for r := 0; r < m.rows; r++ {
		for c := 0; c <= m.cols; c++ {
			out = append(out, Edge{
				From: Position{Row: float64(r), Col: float64(c)},
				To:   Position{Row: float64(r + 1), Col: float64(c)},
			})
		}
	}
	for r := 0; r <= m.rows; r++ {
		for c := 0; c < m.cols; c++ {
			out = append(out, Edge{
				From: Position{Row: float64(r), Col: float64(c)},
				To:   Position{Row: float64(r), Col: float64(c + 1)},
			})
		}
	}
	return out
}

// EdgeCost derives the cost of the edge between corners a and b from the
// places beside it, caches it and returns it.
//
//  1. The candidate places sit half a step either side of the edge midpoint,
//     across the edge direction.
//  2. A candidate outside the grid contributes nothing.
//  3. One candidate: the edge costs that place's cost.
//  4. Two candidates: the edge costs their mean, and is Blocked when that
//     mean equals the cost of the blocking category.
//
// Returns ErrNotAdjacent if a and b are not axis-adjacent corners of m.
// Complexity: O(1).
func (m *Map) EdgeCost(a, b Position) (EdgeCost, error) {
	if _, ok := m.cornerIndex(a); !ok {
		return EdgeCost{}, fmt.Errorf("%w: %s is not a corner", ErrNotAdjacent, a)
	}
	if _, ok := m.cornerIndex(b); !ok {
		return EdgeCost{}, fmt.Errorf("%w: %s is not a corner", ErrNotAdjacent, b)
	}
	if a.Manhattan(b) != 1 {
		return EdgeCost{}, fmt.Errorf("%w: %s-%s", ErrNotAdjacent, a, b)
	}

	mid := Position{Row: (a.Row + b.Row) / 2, Col: (a.Col + b.Col) / 2}
	var first, second Position
	if a.Col == b.Col {
		first = Position{Row: mid.Row, Col: mid.Col + 0.5}
		second = Position{Row: mid.Row, Col: mid.Col - 0.5}
	} else {
		first = Position{Row: mid.Row + 0.5, Col: mid.Col}
		second = Position{Row: mid.Row - 0.5, Col: mid.Col}
	}
	p1, ok1 := m.Place(first)
	p2, ok2 := m.Place(second)

	var cost EdgeCost
	switch {
	case ok1 && ok2:
		cost.Value = (p1.Cost + p2.Cost) / 2
		if blockAt, ok := m.costs.get(m.blocking); ok && cost.Value == blockAt {
			cost = EdgeCost{Value: math.Inf(1), Blocked: true}
		}
	case ok1:
		cost.Value = p1.Cost
	case ok2:
		cost.Value = p2.Cost
	}

	m.mu.Lock()
	m.edgeCosts[NewEdge(a, b)] = cost
	m.mu.Unlock()

	return cost, nil
}

// CachedEdgeCost returns the last cost computed for the edge a-b, if any.
func (m *Map) CachedEdgeCost(a, b Position) (EdgeCost, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.edgeCosts[NewEdge(a, b)]
	return c, ok
}

// EdgeCosts computes the cost of every edge and returns a copy of the cache.
// Complexity: O(R×C).
func (m *Map) EdgeCosts() map[Edge]EdgeCost {
	for _, e := range m.Edges() {
		// lattice edges are always adjacent corners
		_, _ = m.EdgeCost(e.From, e.To)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[Edge]EdgeCost, len(m.edgeCosts))
	for e, c := range m.edgeCosts {
		out[e] = c
	}
	return out
}
