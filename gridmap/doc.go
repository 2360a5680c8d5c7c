// Package gridmap models an R×C cell grid as a cost-weighted graph of two
// interleaved node kinds.
//
// What:
//
//   - Corners stand at cell intersections, integral positions (row, col) with
//     row ∈ [0,R] and col ∈ [0,C]. They are the only traversable nodes and are
//     joined by axis-adjacent edges (no diagonals).
//   - Places stand inside cells, half-integral positions (row+0.5, col+0.5).
//     Each carries a category, a 1-based index and a cost from the CostTable.
//     Places are never edge endpoints; they only price the edges beside them.
//
// Enumeration order (a contract; callers build index→category maps from it):
//
//   - Corners row-major, row 0..R then col 0..C, labelled "A", "B", …, "Z", "AA", ….
//   - Places row-major over interior cells, receiving index 1, 2, …; see PlaceOrder.
//
// Edge cost:
//
//   - The one or two places beside an edge are found from its midpoint.
//   - One place (boundary edge): its cost. Two places: the mean of both.
//   - An interior edge whose mean equals the cost of the blocking category
//     ("P" by default) is Blocked. This compares values, not categories.
//
// Errors:
//
//   - ErrBadDimensions:     rows or cols < 1.
//   - ErrMissingDefault:    cost table has no "Default" entry (configuration error).
//   - ErrNegativeCost:      a cost table entry is negative or NaN.
//   - ErrDuplicateCategory: two cost table keys differ only by case.
//   - ErrUnknownLabel:      Resolve found no node with that label.
//   - ErrNotAdjacent:       EdgeCost called on a pair that is not a lattice edge.
//
// Complexity:
//
//   - New:         O(R×C) time and memory.
//   - Resolve:     O(1) average.
//   - EdgeCost:    O(1), cached per edge.
//   - Components:  O(R×C) once, then cached.
//
// A Map is safe for concurrent use once built.
package gridmap
