package gridmap

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/katalvlaran/placegrid/labels"
)

// Map is the grid graph: (R+1)×(C+1) corners joined by lattice edges, plus
// R×C places that price those edges. Everything except the edge-cost cache
// is fixed at construction.
type Map struct {
	rows, cols int
	costs      CostTable
	blocking   string
	logger     *slog.Logger

	corners []Corner            // row-major
	places  []Place             // row-major, places[i].Index == i+1
	byLabel map[string]Position // normalized label → position

	mu        sync.RWMutex
	edgeCosts map[Edge]EdgeCost

	compOnce sync.Once
	compID   []int // corner index → component number
	comps    [][]Position
}

// New builds a Map of rows×cols cells. categories maps a 1-based place index
// (see PlaceOrder) to its category; unmapped indices, indices outside
// [1, rows×cols] and blank categories leave the place at DefaultCategory.
// Returns ErrBadDimensions, or a CostTable.Validate error.
// Complexity: O(R×C) time and memory.
func New(rows, cols int, costs CostTable, categories map[int]string, opts ...Option) (*Map, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	// 1) Validate inputs before allocating anything.
	if rows < 1 || cols < 1 {
		return nil, fmt.Errorf("%w: got %d×%d", ErrBadDimensions, rows, cols)
	}
	if err := costs.Validate(); err != nil {
		return nil, err
	}

	m := &Map{
		rows:      rows,
		cols:      cols,
		costs:     make(CostTable, len(costs)),
		blocking:  cfg.BlockingCategory,
		logger:    cfg.Logger,
		corners:   make([]Corner, 0, (rows+1)*(cols+1)),
		places:    make([]Place, 0, rows*cols),
		byLabel:   make(map[string]Position, (rows+1)*(cols+1)+rows*cols),
		edgeCosts: make(map[Edge]EdgeCost, 2*rows*cols+rows+cols),
	}
	for k, v := range costs {
		m.costs[k] = v
	}

	// 2) Report mapping entries that can never apply.
	m.reportIgnored(categories)

	// 3) Corners, row-major.
	for r := 0; r <= rows; r++ {
		for c := 0; c <= cols; c++ {
			pos := Position{Row: float64(r), Col: float64(c)}
			label := labels.Alphabetic(len(m.corners) + 1)
			m.corners = append(m.corners, Corner{Pos: pos, Label: label})
			m.byLabel[label] = pos
		}
	}

	// 4) Places, row-major over interior cells.
	for _, pos := range m.PlaceOrder() {
		idx := len(m.places) + 1
		p := Place{Pos: pos, Index: idx, Category: DefaultCategory}
		if cat := labels.Normalize(categories[idx]); cat != "" {
			p.Category = cat
			p.Label = labels.Place(cat, idx)
		} else {
			p.Label = labels.Place("", idx)
		}
		cost, err := m.costs.Lookup(p.Category)
		if err != nil {
			return nil, err
		}
		p.Cost = cost
		if prev, dup := m.byLabel[p.Label]; dup {
			m.logger.Warn("gridmap: duplicate place label, keeping first",
				"label", p.Label, "kept", prev.String(), "dropped", pos.String())
		} else {
			m.byLabel[p.Label] = pos
		}
		m.places = append(m.places, p)
	}

	m.logger.Debug("gridmap: built",
		"rows", rows, "cols", cols,
		"corners", len(m.corners), "places", len(m.places),
		"blocking", m.blocking)

	return m, nil
}

// reportIgnored logs every mapping entry with an out-of-range index or a blank category.
func (m *Map) reportIgnored(categories map[int]string) {
	idxs := make([]int, 0, len(categories))
	for i := range categories {
		idxs = append(idxs, i)
	}
	sort.Ints(idxs)
	for _, i := range idxs {
		switch {
		case i < 1 || i > m.rows*m.cols:
			m.logger.Warn("gridmap: place index out of range, ignored",
				"index", i, "category", categories[i], "places", m.rows*m.cols)
		case labels.Normalize(categories[i]) == "":
			m.logger.Warn("gridmap: blank category, using default", "index", i)
		}
	}
}

// Rows returns the number of cell rows R.
func (m *Map) Rows() int { return m.rows }

// Cols returns the number of cell columns C.
func (m *Map) Cols() int { return m.cols }

// Costs returns a copy of the cost table.
func (m *Map) Costs() CostTable {
	out := make(CostTable, len(m.costs))
	for k, v := range m.costs {
		out[k] = v
	}
	return out
}

// BlockingCategory returns the category whose cost blocks interior edges.
func (m *Map) BlockingCategory() string { return m.blocking }

// Corners returns all corners in row-major (label) order.
func (m *Map) Corners() []Corner {
	out := make([]Corner, len(m.corners))
	copy(out, m.corners)
	return out
}

// Places returns all places in index order.
func (m *Map) Places() []Place {
	out := make([]Place, len(m.places))
	copy(out, m.places)
	return out
}

// PlaceOrder returns the interior cell positions in place-index order:
// element i is the position of the place with index i+1. It depends only
// on the dimensions, so callers can build a category mapping from it.
func (m *Map) PlaceOrder() []Position {
	out := make([]Position, 0, m.rows*m.cols)
	for r := 1; r <= m.rows; r++ {
		for c := 1; c <= m.cols; c++ {
			out = append(out, Position{Row: float64(r) - 0.5, Col: float64(c) - 0.5})
		}
	}
	return out
}

// InBounds reports whether p is a corner or place of this grid.
func (m *Map) InBounds(p Position) bool {
	_, ok := m.cornerIndex(p)
	if ok {
		return true
	}
	_, ok = m.placeIndex(p)
	return ok
}

// Corner returns the corner at p, if any.
func (m *Map) Corner(p Position) (Corner, bool) {
	i, ok := m.cornerIndex(p)
	if !ok {
		return Corner{}, false
	}
	return m.corners[i], true
}

// Place returns the place at p, if any.
func (m *Map) Place(p Position) (Place, bool) {
	i, ok := m.placeIndex(p)
	if !ok {
		return Place{}, false
	}
	return m.places[i], true
}

// PlaceByIndex returns the place with the given 1-based index.
func (m *Map) PlaceByIndex(index int) (Place, bool) {
	if index < 1 || index > len(m.places) {
		return Place{}, false
	}
	return m.places[index-1], true
}

// Label returns the label of the corner or place at p.
func (m *Map) Label(p Position) (string, bool) {
	if c, ok := m.Corner(p); ok {
		return c.Label, true
	}
	if pl, ok := m.Place(p); ok {
		return pl.Label, true
	}
	return "", false
}

// Resolve returns the position carrying label. Matching is exact after
// labels.Normalize. Returns ErrUnknownLabel if nothing matches.
func (m *Map) Resolve(label string) (Position, error) {
	p, ok := m.byLabel[labels.Normalize(label)]
	if !ok {
		return Position{}, fmt.Errorf("%w: %q", ErrUnknownLabel, label)
	}
	return p, nil
}

// LabelsOfCategory returns, in index order, the labels of every place whose
// category matches (case-insensitive). Use it to search towards the nearest
// place of a category.
func (m *Map) LabelsOfCategory(category string) []string {
	want := labels.Normalize(category)
	var out []string
	for _, p := range m.places {
		if labels.Normalize(p.Category) == want {
			out = append(out, p.Label)
		}
	}
	return out
}

// Neighbors returns the corners adjacent to corner p in the fixed order
// up, down, left, right. Returns nil if p is not a corner of the grid.
func (m *Map) Neighbors(p Position) []Position {
	if _, ok := m.cornerIndex(p); !ok {
		return nil
	}
	out := make([]Position, 0, 4)
	var q Position
	for _, d := range neighborOffsets {
		q = Position{Row: p.Row + d[0], Col: p.Col + d[1]}
		if _, ok := m.cornerIndex(q); ok {
			out = append(out, q)
		}
	}
	return out
}

// neighborOffsets lists (Δrow, Δcol) as up, down, left, right.
var neighborOffsets = [4][2]float64{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// cornerIndex maps an in-bounds corner to its row-major index.
func (m *Map) cornerIndex(p Position) (int, bool) {
	if !p.IsCorner() || p.Row < 0 || p.Col < 0 || p.Row > float64(m.rows) || p.Col > float64(m.cols) {
		return 0, false
	}
	return int(p.Row)*(m.cols+1) + int(p.Col), true
}

// placeIndex maps an in-bounds place to its zero-based index.
func (m *Map) placeIndex(p Position) (int, bool) {
	if !p.IsPlace() || p.Row < 0 || p.Col < 0 || p.Row > float64(m.rows) || p.Col > float64(m.cols) {
		return 0, false
	}
	r, c := int(p.Row-0.5), int(p.Col-0.5)
	return r*m.cols + c, true
}
