package astar

import (
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/katalvlaran/placegrid/gridmap"
)

// Sentinel errors returned by Search.
var (
	// ErrNilMap indicates a nil *gridmap.Map.
	ErrNilMap = errors.New("astar: map is nil")

	// ErrNoGoal indicates an empty goal list.
	ErrNoGoal = errors.New("astar: there is no goal")

	// ErrUnknownLabel indicates the start or a goal label matches no node.
	ErrUnknownLabel = errors.New("astar: unknown label")

	// ErrNoPath indicates the search space was exhausted without reaching a goal.
	ErrNoPath = errors.New("astar: no path found")

	// ErrExpansionLimit indicates the search stopped at the MaxExpansions cap.
	ErrExpansionLimit = errors.New("astar: expansion limit reached")
)

// Outcome labels reported to an Observer.
const (
	OutcomeFound        = "found"
	OutcomeNoGoal       = "no_goal"
	OutcomeUnknownLabel = "unknown_label"
	OutcomeNoPath       = "no_path"
	OutcomeLimit        = "expansion_limit"
)

// Observer receives one call per finished Search. metrics.Registry implements it.
type Observer interface {
	ObserveSearch(outcome string, expanded int, cost float64, elapsed time.Duration)
}

// NodeState is the per-search record of one corner.
type NodeState struct {
	G, H, F float64          // cost so far, estimate to goal, G+H
	Prev    gridmap.Position // predecessor on the best known path
	HasPrev bool             // false for the start corner
	Visited bool             // finalized
	seq     int              // first-insertion order in the frontier
}

// Result describes one search.
type Result struct {
	RunID    string             // unique per Search call
	Start    gridmap.Position   // resolved start corner
	Goals    []gridmap.Position // resolved goal corners, deduplicated, input order
	Goal     gridmap.Position   // goal corner reached (zero on failure)
	Path     []gridmap.Position // start..goal inclusive (nil on failure)
	Labels   []string           // corner labels along Path
	Cost     float64            // f of the reached goal
	Expanded int                // corners finalized
	States   map[gridmap.Position]NodeState
}

// PathString concatenates the labels along the path, e.g. "AFKPU".
func (r *Result) PathString() string {
	return strings.Join(r.Labels, "")
}

// Heuristic estimates the remaining cost from p to the closest of goals.
type Heuristic func(p gridmap.Position, goals []gridmap.Position) float64

// Options configures Search.
//
// MaxExpansions - stop with ErrExpansionLimit after this many finalized corners (0 = no cap).
// Heuristic     - estimate function; nil means Manhattan.
// Admissible    - scale Manhattan by the cheapest cost of the map's table.
// Reachability  - fail fast with ErrNoPath when no goal shares the start's component.
type Options struct {
	MaxExpansions int
	Heuristic     Heuristic
	Admissible    bool
	Reachability  bool
	Logger        *slog.Logger
	Observer      Observer
}

// Option is a functional option for Search.
type Option func(*Options)

// WithMaxExpansions caps the number of finalized corners.
// Panics if n <= 0.
func WithMaxExpansions(n int) Option {
	if n <= 0 {
		panic("astar: WithMaxExpansions: n must be positive")
	}
	return func(o *Options) { o.MaxExpansions = n }
}

// WithHeuristic replaces the Manhattan estimate. The caller is responsible
// for its admissibility. Panics if h is nil.
func WithHeuristic(h Heuristic) Option {
	if h == nil {
		panic("astar: WithHeuristic: heuristic must not be nil")
	}
	return func(o *Options) { o.Heuristic = h }
}

// WithAdmissibleHeuristic scales Manhattan distance by the cheapest cost in
// the map's table, keeping the estimate admissible for costs below 1.
func WithAdmissibleHeuristic() Option {
	return func(o *Options) { o.Admissible = true }
}

// WithReachabilityCheck consults gridmap.Map.Connected before searching.
func WithReachabilityCheck() Option {
	return func(o *Options) { o.Reachability = true }
}

// WithLogger sets the logger for per-search diagnostics. Panics if l is nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("astar: WithLogger: logger must not be nil")
	}
	return func(o *Options) { o.Logger = l }
}

// WithObserver registers an Observer notified when Search returns.
// Panics if obs is nil.
func WithObserver(obs Observer) Option {
	if obs == nil {
		panic("astar: WithObserver: observer must not be nil")
	}
	return func(o *Options) { o.Observer = obs }
}

// DefaultOptions returns the defaults: no cap, Manhattan, no pre-check,
// discarding logger, no observer.
func DefaultOptions() Options {
	return Options{
		Heuristic: Manhattan,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}
