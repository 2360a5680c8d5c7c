// Package astar finds a minimum-cost corner path across a gridmap.Map from a
// labelled start to the nearest of one or more labelled goals.
//
// Overview:
//
//   - Labels are resolved through the map; a place label stands for the corner
//     immediately up and to the right of that place.
//   - The frontier is a min-heap keyed by (f, seq), where seq is the order in
//     which a node first entered the frontier. Among equal f the earliest
//     entrant wins.
//   - Relaxation pushes a fresh entry instead of decreasing a key. Entries for
//     nodes that are already finalized are dropped when popped.
//   - Blocked edges are never relaxed.
//   - Search state (g, h, f, prev) lives in a table owned by one call, so a Map
//     can be searched repeatedly or concurrently without any reset.
//
// Heuristic:
//
//   - Default: Manhattan distance to the closest goal corner. It is admissible
//     only when every edge costs at least 1.
//   - WithAdmissibleHeuristic scales it by the cheapest cost in the table
//     (zero turns the search into Dijkstra).
//
// Errors (sentinel):
//
//   - ErrNilMap:         the map pointer is nil.
//   - ErrNoGoal:         the goal list is empty.
//   - ErrUnknownLabel:   start or a goal matches no node (also matches gridmap.ErrUnknownLabel).
//   - ErrNoPath:         every reachable corner was finalized without reaching a goal.
//   - ErrExpansionLimit: WithMaxExpansions was reached first.
//
// On ErrNoPath and ErrExpansionLimit the returned *Result is non-nil and holds
// the explored States for inspection.
//
// Complexity:
//
//   - Time:  O((V + E) log V), V = corners, E = lattice edges.
//   - Space: O(V + E) for the state table and the lazy heap.
package astar
