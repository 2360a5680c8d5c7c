package astar

import (
	"container/heap"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/katalvlaran/placegrid/gridmap"
)

// Search runs A* over m from the start label to the nearest of the goal labels.
//
// Preconditions and validation (in order):
//  1. m must be non-nil (ErrNilMap).
//  2. goals must be non-empty (ErrNoGoal).
//  3. start and every goal must resolve (ErrUnknownLabel).
//
// Labels are case-insensitive. Place labels are replaced by the corner up and
// to the right of the place. The map itself is never modified apart from its
// idempotent edge-cost cache.
//
// Complexity:
//
//   - Time:  O((V + E) log V)
//   - Space: O(V + E)
func Search(m *gridmap.Map, start string, goals []string, opts ...Option) (*Result, error) {
	// 1) Build options.
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	r := &runner{
		m:       m,
		options: cfg,
		began:   time.Now(),
		res:     &Result{RunID: uuid.NewString()},
	}

	// 2) Validate inputs.
	if m == nil {
		return nil, ErrNilMap
	}
	if len(goals) == 0 {
		r.finish(OutcomeNoGoal)
		return nil, ErrNoGoal
	}
	if err := r.resolve(start, goals); err != nil {
		r.finish(OutcomeUnknownLabel)
		return nil, err
	}

	// 3) Pick the heuristic.
	r.h = cfg.Heuristic
	if r.h == nil {
		r.h = Manhattan
	}
	if cfg.Admissible {
		r.h = Scaled(m.Costs().Min())
	}

	// 4) Optional component pre-check.
	if cfg.Reachability && !r.reachable() {
		r.finish(OutcomeNoPath)
		return r.res, fmt.Errorf("%w: start %s is walled off from every goal", ErrNoPath, r.res.Start)
	}

	// 5) Main loop.
	r.init()
	if err := r.process(); err != nil {
		return r.res, err
	}

	return r.res, nil
}

// runner holds the mutable state of one Search call.
type runner struct {
	m       *gridmap.Map
	options Options
	h       Heuristic
	began   time.Time

	goalSet map[gridmap.Position]bool
	states  map[gridmap.Position]*NodeState
	pq      frontier
	seq     int

	res *Result
}

// resolve maps the start and goal labels to corners.
func (r *runner) resolve(start string, goals []string) error {
	pos, err := r.m.Resolve(start)
	if err != nil {
		return fmt.Errorf("%w: start: %w", ErrUnknownLabel, err)
	}
	r.res.Start = pos.UpRightCorner()

	r.goalSet = make(map[gridmap.Position]bool, len(goals))
	for _, g := range goals {
		pos, err = r.m.Resolve(g)
		if err != nil {
			return fmt.Errorf("%w: goal: %w", ErrUnknownLabel, err)
		}
		pos = pos.UpRightCorner()
		if !r.goalSet[pos] {
			r.goalSet[pos] = true
			r.res.Goals = append(r.res.Goals, pos)
		}
	}

	return nil
}

// reachable reports whether any goal shares the start's component.
func (r *runner) reachable() bool {
	for _, g := range r.res.Goals {
		if r.m.Connected(r.res.Start, g) {
			return true
		}
	}
	return false
}

// init seeds the state table and the frontier with the start corner.
func (r *runner) init() {
	r.states = make(map[gridmap.Position]*NodeState)
	r.pq = make(frontier, 0, 4*len(r.m.Corners()))
	heap.Init(&r.pq)

	h := r.h(r.res.Start, r.res.Goals)
	r.push(r.res.Start, &NodeState{G: 0, H: h, F: h, seq: r.nextSeq()})
}

// process pops corners in (f, seq) order until a goal is popped, the heap
// drains or the expansion cap is hit.
func (r *runner) process() error {
	var item *frontierItem
	var st *NodeState
	for r.pq.Len() > 0 {
		// 1) Pop the best entry; skip it if its node is already finalized.
		item = heap.Pop(&r.pq).(*frontierItem)
		st = r.states[item.pos]
		if st.Visited {
			continue
		}

		// 2) A popped goal is optimal.
		if r.goalSet[item.pos] {
			r.found(item.pos)
			r.finish(OutcomeFound)
			return nil
		}

		// 3) Respect the expansion cap before doing more work.
		if r.options.MaxExpansions > 0 && r.res.Expanded >= r.options.MaxExpansions {
			r.finish(OutcomeLimit)
			return fmt.Errorf("%w: %d corners finalized", ErrExpansionLimit, r.res.Expanded)
		}

		// 4) Relax neighbours, then finalize.
		if err := r.relax(item.pos, st); err != nil {
			return err
		}
		st.Visited = true
		r.res.Expanded++
	}

	r.finish(OutcomeNoPath)
	return fmt.Errorf("%w: %d corners finalized", ErrNoPath, r.res.Expanded)
}

// relax improves every unfinalized neighbour of u reachable over a
// non-blocked edge, pushing a fresh frontier entry for each improvement.
func (r *runner) relax(u gridmap.Position, su *NodeState) error {
	for _, v := range r.m.Neighbors(u) {
		sv, seen := r.states[v]
		if seen && sv.Visited {
			continue
		}

		cost, err := r.m.EdgeCost(u, v)
		if err != nil {
			return fmt.Errorf("astar: edge %s-%s: %w", u, v, err)
		}
		if cost.Blocked {
			continue
		}

		// Only a strict improvement rewrites prev, so prev never forms a cycle.
		g := su.G + cost.Value
		if seen && g >= sv.G {
			continue
		}
		if !seen {
			sv = &NodeState{seq: r.nextSeq()}
		}
		sv.G = g
		sv.H = r.h(v, r.res.Goals)
		sv.F = sv.G + sv.H
		sv.Prev, sv.HasPrev = u, true
		r.push(v, sv)
	}

	return nil
}

// push records st for p and adds a frontier entry with its current f.
func (r *runner) push(p gridmap.Position, st *NodeState) {
	r.states[p] = st
	heap.Push(&r.pq, &frontierItem{pos: p, f: st.F, seq: st.seq})
}

func (r *runner) nextSeq() int {
	r.seq++
	return r.seq - 1
}

// found rebuilds the path by following prev links back from goal.
func (r *runner) found(goal gridmap.Position) {
	var path []gridmap.Position
	for p := goal; ; {
		path = append(path, p)
		st := r.states[p]
		if !st.HasPrev {
			break
		}
		p = st.Prev
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	r.res.Goal = goal
	r.res.Path = path
	r.res.Cost = r.states[goal].F
	r.res.Labels = make([]string, len(path))
	for i, p := range path {
		r.res.Labels[i], _ = r.m.Label(p)
	}
}

// finish snapshots the state table, logs and notifies the observer.
func (r *runner) finish(outcome string) {
	if r.states != nil {
		r.res.States = make(map[gridmap.Position]NodeState, len(r.states))
		for p, st := range r.states {
			r.res.States[p] = *st
		}
	}

	elapsed := time.Since(r.began)
	r.options.Logger.Debug("astar: search finished",
		"run", r.res.RunID,
		"outcome", outcome,
		"start", r.res.Start.String(),
		"goals", len(r.res.Goals),
		"path", r.res.PathString(),
		"cost", r.res.Cost,
		"expanded", r.res.Expanded,
		"elapsed", elapsed)

	if r.options.Observer != nil {
		r.options.Observer.ObserveSearch(outcome, r.res.Expanded, r.res.Cost, elapsed)
	}
}
