// Package placegrid finds least-cost paths across a grid of typed cells.
//
// A grid of R×C cells is modelled as two interleaved node kinds:
//
//	A───B───C        corners (letters) are walked;
//	│ 1 │ Q2│        places (category+index) sit inside cells and price
//	D───E───F        the edges beside them.
//
// Subpackages:
//
//	labels/   alphabetic corner labels and place labels
//	gridmap/  the corner lattice, places, cost table and edge-cost rule
//	astar/    A* search from a start label to the nearest goal label
//	config/   YAML grid definitions
//	metrics/  Prometheus counters and histograms for searches
//
// Quick start:
//
//	m, _ := gridmap.New(4, 4, gridmap.CostTable{"Q": 0, "P": 3, "Default": 1}, map[int]string{6: "Q"})
//	res, err := astar.Search(m, "A", []string{"U"})
//	fmt.Println(res.PathString(), res.Cost)
package placegrid
