package gridmap

import (
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/placegrid/labels"
)

// CostTable maps a place category to its traversal cost. Keys are matched
// case-insensitively; the "Default" entry is mandatory.
type CostTable map[string]float64

// Validate checks the table is usable: "Default" present, every cost a
// non-negative number, and no two keys equal after normalization.
func (t CostTable) Validate() error {
	if _, ok := t.get(DefaultCategory); !ok {
		return ErrMissingDefault
	}
	seen := make(map[string]string, len(t))
	for _, k := range t.keys() {
		v := t[k]
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s=%v", ErrNegativeCost, k, v)
		}
		n := labels.Normalize(k)
		if prev, dup := seen[n]; dup {
			return fmt.Errorf("%w: %q and %q", ErrDuplicateCategory, prev, k)
		}
		seen[n] = k
	}

	return nil
}

// Lookup returns the cost of category, falling back to the "Default" cost
// when the category is absent. Fails with ErrMissingDefault only when the
// fallback is needed and missing.
func (t CostTable) Lookup(category string) (float64, error) {
	if c, ok := t.get(category); ok {
		return c, nil
	}
	if c, ok := t.get(DefaultCategory); ok {
		return c, nil
	}

	return 0, ErrMissingDefault
}

// Min returns the smallest cost in the table, or 0 for an empty table.
func (t CostTable) Min() float64 {
	first := true
	var lowest float64
	for _, v := range t {
		if first || v < lowest {
			lowest, first = v, false
		}
	}
	return lowest
}

// get resolves an exact key first, then a case-insensitive match.
func (t CostTable) get(category string) (float64, bool) {
	if c, ok := t[category]; ok {
		return c, true
	}
	want := labels.Normalize(category)
	for _, k := range t.keys() {
		if labels.Normalize(k) == want {
			return t[k], true
		}
	}
	return 0, false
}

// keys returns the table keys sorted, so scans are deterministic.
func (t CostTable) keys() []string {
	ks := make([]string, 0, len(t))
	for k := range t {
		ks = append(ks, k)
	}
	sort.Strings(ks)
	return ks
}
