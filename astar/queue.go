package astar

import "github.com/katalvlaran/placegrid/gridmap"

// frontierItem is one heap entry. A node may own several entries; only the
// one carrying its current f is live, the rest are skipped once it is visited.
type frontierItem struct {
	pos gridmap.Position
	f   float64
	seq int // node's first-insertion order, shared by all its entries
}

// frontier is a min-heap ordered by f, then by seq.
type frontier []*frontierItem

func (pq frontier) Len() int { return len(pq) }

func (pq frontier) Less(i, j int) bool {
	if pq[i].f != pq[j].f {
		return pq[i].f < pq[j].f
	}
	return pq[i].seq < pq[j].seq
}

func (pq frontier) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

// Push is called by heap.Push; x must be a *frontierItem.
func (pq *frontier) Push(x interface{}) { *pq = append(*pq, x.(*frontierItem)) }

// Pop is called by heap.Pop.
func (pq *frontier) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*pq = old[:n-1]

	return item
}
