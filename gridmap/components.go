package gridmap

// Components partitions the corners into regions connected by non-blocked
// edges. Components are discovered in row-major order and each component
// lists its corners in BFS order from its first corner.
// Time: O(R×C) on first call, then cached. Memory: O(R×C).
func (m *Map) Components() [][]Position {
	m.compOnce.Do(m.computeComponents)
	out := make([][]Position, len(m.comps))
	for i, comp := range m.comps {
		out[i] = make([]Position, len(comp))
		copy(out[i], comp)
	}
	return out
}

// Connected reports whether corners a and b lie in the same component.
// Returns false if either is not a corner of m.
func (m *Map) Connected(a, b Position) bool {
	ia, okA := m.cornerIndex(a)
	ib, okB := m.cornerIndex(b)
	if !okA || !okB {
		return false
	}
	m.compOnce.Do(m.computeComponents)
	return m.compID[ia] == m.compID[ib]
}

// computeComponents labels every corner with a component number via BFS.
func (m *Map) computeComponents() {
	m.compID = make([]int, len(m.corners))
	for i := range m.compID {
		m.compID[i] = -1
	}

	for i0, start := range m.corners {
		if m.compID[i0] >= 0 {
			continue
		}
		id := len(m.comps)
		m.compID[i0] = id
		queue := []Position{start.Pos}

		for qi := 0; qi < len(queue); qi++ {
			u := queue[qi]
			for _, v := range m.Neighbors(u) {
				vi, _ := m.cornerIndex(v)
				if m.compID[vi] >= 0 {
					continue
				}
				cost, err := m.EdgeCost(u, v)
				if err != nil || cost.Blocked {
					continue
				}
				m.compID[vi] = id
				queue = append(queue, v)
			}
		}
		m.comps = append(m.comps, queue)
	}
}
