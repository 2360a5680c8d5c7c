package astar_test

import (
	"bytes"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/placegrid/astar"
	"github.com/katalvlaran/placegrid/gridmap"
)

//----------------------------------------------------------------------------//
// Fixtures
//----------------------------------------------------------------------------//

// referenceMap is the 4×4 map with costs {Q:0, V:2, P:3, Default:1}.
func referenceMap(t testing.TB) *gridmap.Map {
	t.Helper()
	m, err := gridmap.New(4, 4,
		gridmap.CostTable{"Q": 0, "V": 2, "P": 3, "Default": 1},
		map[int]string{
			2: "V", 5: "V", 1: "V", 12: "V",
			6: "Q", 11: "Q", 8: "Q",
			3: "P", 9: "P", 14: "P", 15: "P",
		})
	require.NoError(t, err)
	return m
}

func pos(r, c float64) gridmap.Position { return gridmap.Position{Row: r, Col: c} }

// recorder is an Observer that remembers every call.
type recorder struct {
	mu       sync.Mutex
	outcomes []string
	expanded []int
	costs    []float64
}

func (r *recorder) ObserveSearch(outcome string, expanded int, cost float64, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, outcome)
	r.expanded = append(r.expanded, expanded)
	r.costs = append(r.costs, cost)
}

//----------------------------------------------------------------------------//
// 1. Validation
//----------------------------------------------------------------------------//

func TestSearch_NilMap(t *testing.T) {
	res, err := astar.Search(nil, "A", []string{"B"})
	assert.ErrorIs(t, err, astar.ErrNilMap)
	assert.Nil(t, res)
}

func TestSearch_NoGoal(t *testing.T) {
	m := referenceMap(t)
	obs := &recorder{}

	res, err := astar.Search(m, "A", nil, astar.WithObserver(obs))
	assert.ErrorIs(t, err, astar.ErrNoGoal)
	assert.Nil(t, res)
	assert.Equal(t, []string{astar.OutcomeNoGoal}, obs.outcomes)

	_, err = astar.Search(m, "A", []string{})
	assert.ErrorIs(t, err, astar.ErrNoGoal)
}

func TestSearch_UnknownLabel(t *testing.T) {
	m := referenceMap(t)

	cases := []struct {
		name  string
		start string
		goals []string
	}{
		{"UnknownGoal", "A", []string{"Z"}},
		{"UnknownStart", "Q7", []string{"U"}},
		{"OneBadGoalAmongMany", "A", []string{"U", "AA"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := astar.Search(m, tc.start, tc.goals)
			assert.ErrorIs(t, err, astar.ErrUnknownLabel)
			assert.ErrorIs(t, err, gridmap.ErrUnknownLabel)
			assert.Nil(t, res)
		})
	}
}

//----------------------------------------------------------------------------//
// 2. Reference paths
//----------------------------------------------------------------------------//

// TestSearch_ReferenceRuns replays every start of the reference scenario
// against goal "U" plus a few multi-goal and place-label searches.
func TestSearch_ReferenceRuns(t *testing.T) {
	m := referenceMap(t)

	cases := []struct {
		start string
		goals []string
		path  string
		cost  float64
	}{
		{"P", []string{"U"}, "PU", 1},
		{"Q", []string{"U"}, "QVU", 3},
		{"V", []string{"U"}, "VU", 1},
		{"K", []string{"U"}, "KPU", 4},
		{"L", []string{"U"}, "LQVU", 5},
		{"M", []string{"U"}, "MRQVU", 5.5},
		{"R", []string{"U"}, "RQVU", 5},
		{"W", []string{"U"}, "WVU", 4},
		{"F", []string{"U"}, "FKPU", 6},
		{"G", []string{"U"}, "GLQVU", 6},
		{"H", []string{"U"}, "HMRQVU", 6},
		{"I", []string{"U"}, "INMRQVU", 6.5},
		{"N", []string{"U"}, "NMRQVU", 6},
		{"S", []string{"U"}, "SRQVU", 6.5},
		{"X", []string{"U"}, "XWVU", 7},
		{"A", []string{"U"}, "AFKPU", 8},
		{"B", []string{"U"}, "BGLQVU", 8},
		{"C", []string{"U"}, "CHMRQVU", 8.5},
		{"D", []string{"U"}, "DINMRQVU", 8.5},
		{"E", []string{"U"}, "EJONMRQVU", 8},
		{"J", []string{"U"}, "JONMRQVU", 7},
		{"O", []string{"U"}, "ONMRQVU", 7},
		{"T", []string{"U"}, "TSRQVU", 8},
		{"Y", []string{"U"}, "YXWVU", 8},
		{"A", []string{"Y"}, "AFGLMNSTY", 9.5},
		{"Y", []string{"A"}, "YTSNMHGBA", 9.5},
		{"a", []string{"p14", "Q6"}, "AFGH", 5},
		{"V1", []string{"Y"}, "BGLMNSTY", 7.5},
		{"A", m.LabelsOfCategory("P"), "AFGL", 5},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.start+"→"+tc.path, func(t *testing.T) {
			res, err := astar.Search(m, tc.start, tc.goals)
			require.NoError(t, err)
			assert.Equal(t, tc.path, res.PathString())
			assert.Equal(t, tc.cost, res.Cost)
			assert.Equal(t, res.Path[len(res.Path)-1], res.Goal)
			assert.Len(t, res.Labels, len(res.Path))
			assert.NotEmpty(t, res.RunID)
		})
	}
}

// TestSearch_StartIsGoal checks the immediate-termination case on a 1×1 grid.
func TestSearch_StartIsGoal(t *testing.T) {
	m, err := gridmap.New(1, 1, gridmap.CostTable{"Default": 1}, nil)
	require.NoError(t, err)

	res, err := astar.Search(m, "b", []string{"B"})
	require.NoError(t, err)
	assert.Equal(t, []gridmap.Position{pos(0, 1)}, res.Path)
	assert.Equal(t, 0.0, res.Cost)
	assert.Equal(t, 0, res.Expanded)

	// the only place maps to its up-right corner, which is B as well
	res, err = astar.Search(m, "1", []string{"B"})
	require.NoError(t, err)
	assert.Equal(t, "B", res.PathString())
}

func TestSearch_PlaceLabelsResolveUpRight(t *testing.T) {
	m := referenceMap(t)

	res, err := astar.Search(m, "Q6", []string{"P15"})
	require.NoError(t, err)
	assert.Equal(t, pos(1, 2), res.Start)
	assert.Equal(t, []gridmap.Position{pos(3, 3)}, res.Goals)
	assert.Equal(t, "H", res.Labels[0])
	assert.Equal(t, "S", res.Labels[len(res.Labels)-1])
}

func TestSearch_DuplicateGoalsCollapse(t *testing.T) {
	m := referenceMap(t)

	// P3 resolves to corner D, so all three goals are the same corner.
	res, err := astar.Search(m, "A", []string{"D", "d", "P3"})
	require.NoError(t, err)
	assert.Equal(t, []gridmap.Position{pos(0, 3)}, res.Goals)
}

//----------------------------------------------------------------------------//
// 3. Failures that explore
//----------------------------------------------------------------------------//

// walledCenter returns a 2×2 map of P places: corner E (1,1) is cut off.
func walledCenter(t *testing.T) *gridmap.Map {
	t.Helper()
	m, err := gridmap.New(2, 2,
		gridmap.CostTable{"P": 3, "Default": 1},
		map[int]string{1: "P", 2: "P", 3: "P", 4: "P"})
	require.NoError(t, err)
	return m
}

func TestSearch_NoPath(t *testing.T) {
	m := walledCenter(t)
	obs := &recorder{}

	res, err := astar.Search(m, "E", []string{"A"}, astar.WithObserver(obs))
	assert.ErrorIs(t, err, astar.ErrNoPath)
	require.NotNil(t, res)
	assert.Nil(t, res.Path)
	assert.Equal(t, 1, res.Expanded)
	require.Contains(t, res.States, pos(1, 1))
	assert.True(t, res.States[pos(1, 1)].Visited)
	assert.Equal(t, []string{astar.OutcomeNoPath}, obs.outcomes)

	// and the other way round: the whole ring is explored
	res, err = astar.Search(m, "A", []string{"E"})
	assert.ErrorIs(t, err, astar.ErrNoPath)
	assert.Equal(t, 8, res.Expanded)
	assert.NotContains(t, res.States, pos(1, 1))
}

func TestSearch_ReachabilityCheckFailsFast(t *testing.T) {
	m := walledCenter(t)

	res, err := astar.Search(m, "A", []string{"E"}, astar.WithReachabilityCheck())
	assert.ErrorIs(t, err, astar.ErrNoPath)
	require.NotNil(t, res)
	assert.Equal(t, 0, res.Expanded)

	// a reachable goal among unreachable ones still searches
	res, err = astar.Search(m, "A", []string{"E", "I"}, astar.WithReachabilityCheck())
	require.NoError(t, err)
	assert.Equal(t, pos(2, 2), res.Goal)
}

func TestSearch_ExpansionLimit(t *testing.T) {
	m := referenceMap(t)
	obs := &recorder{}

	res, err := astar.Search(m, "A", []string{"Y"}, astar.WithMaxExpansions(3), astar.WithObserver(obs))
	assert.ErrorIs(t, err, astar.ErrExpansionLimit)
	require.NotNil(t, res)
	assert.Equal(t, 3, res.Expanded)
	assert.Equal(t, []string{astar.OutcomeLimit}, obs.outcomes)

	res, err = astar.Search(m, "A", []string{"Y"}, astar.WithMaxExpansions(1000))
	require.NoError(t, err)
	assert.Equal(t, "AFGLMNSTY", res.PathString())
}

//----------------------------------------------------------------------------//
// 4. Heuristics and options
//----------------------------------------------------------------------------//

// TestSearch_AdmissibleHeuristic shows the plain Manhattan estimate
// overshooting next to zero-cost Q cells, and the scaled estimate fixing it.
func TestSearch_AdmissibleHeuristic(t *testing.T) {
	m := referenceMap(t)

	plain, err := astar.Search(m, "C", []string{"I"})
	require.NoError(t, err)
	assert.Equal(t, "CHI", plain.PathString())
	assert.Equal(t, 4.5, plain.Cost)

	scaled, err := astar.Search(m, "C", []string{"I"}, astar.WithAdmissibleHeuristic())
	require.NoError(t, err)
	assert.Equal(t, "CHMNI", scaled.PathString())
	assert.Equal(t, 4.0, scaled.Cost)
}

func TestSearch_CustomHeuristic(t *testing.T) {
	m := referenceMap(t)
	calls := 0
	zero := func(gridmap.Position, []gridmap.Position) float64 {
		calls++
		return 0
	}

	res, err := astar.Search(m, "C", []string{"I"}, astar.WithHeuristic(zero))
	require.NoError(t, err)
	assert.Equal(t, 4.0, res.Cost)
	assert.Positive(t, calls)
}

func TestManhattan(t *testing.T) {
	goals := []gridmap.Position{pos(0, 0), pos(4, 4)}
	assert.Equal(t, 2.0, astar.Manhattan(pos(3, 3), goals))
	assert.Equal(t, 0.0, astar.Manhattan(pos(0, 0), goals))
	assert.Equal(t, 0.0, astar.Manhattan(pos(1, 1), nil))
	assert.Equal(t, 1.0, astar.Scaled(0.5)(pos(3, 3), goals))
}

func TestOptions_PanicOnInvalid(t *testing.T) {
	assert.Panics(t, func() { astar.WithMaxExpansions(0) })
	assert.Panics(t, func() { astar.WithHeuristic(nil) })
	assert.Panics(t, func() { astar.WithLogger(nil) })
	assert.Panics(t, func() { astar.WithObserver(nil) })
}

//----------------------------------------------------------------------------//
// 5. State ownership
//----------------------------------------------------------------------------//

// TestSearch_RepeatedSearchesNeedNoReset runs different goal sets back to
// back on one map; each result must match a fresh map.
func TestSearch_RepeatedSearchesNeedNoReset(t *testing.T) {
	shared := referenceMap(t)

	for _, goal := range []string{"U", "Y", "A", "U", "M"} {
		got, err := astar.Search(shared, "E", []string{goal})
		require.NoError(t, err)
		want, err := astar.Search(referenceMap(t), "E", []string{goal})
		require.NoError(t, err)

		assert.Equal(t, want.Path, got.Path, goal)
		assert.Equal(t, want.Cost, got.Cost, goal)
		assert.Equal(t, want.Expanded, got.Expanded, goal)
		assert.NotEqual(t, want.RunID, got.RunID)
	}
}

func TestSearch_ConcurrentSearches(t *testing.T) {
	m := referenceMap(t)
	want, err := astar.Search(m, "A", []string{"Y"})
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := astar.Search(m, "A", []string{"Y"})
			if err != nil {
				errs <- err
				return
			}
			if res.PathString() != want.PathString() || res.Cost != want.Cost {
				errs <- errors.New("concurrent search diverged: " + res.PathString())
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

func TestSearch_StatesHoldInvariants(t *testing.T) {
	m := referenceMap(t)

	res, err := astar.Search(m, "A", []string{"Y"})
	require.NoError(t, err)

	for p, st := range res.States {
		assert.Equal(t, st.G+st.H, st.F, p.String())
		if p == res.Start {
			assert.False(t, st.HasPrev)
			continue
		}
		require.True(t, st.HasPrev, p.String())
		// following prev must reach the start without revisiting a node
		seen := map[gridmap.Position]bool{p: true}
		for q := st.Prev; q != res.Start; q = res.States[q].Prev {
			require.False(t, seen[q], "cycle through %s", q)
			seen[q] = true
		}
	}
}

func TestSearch_LogsSummary(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	res, err := astar.Search(referenceMap(t), "A", []string{"U"}, astar.WithLogger(logger))
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "astar: search finished")
	assert.Contains(t, out, "outcome=found")
	assert.Contains(t, out, "path=AFKPU")
	assert.Contains(t, out, "run="+res.RunID)
}
