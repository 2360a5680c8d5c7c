package gridmap

import (
	"errors"
	"io"
	"log/slog"
	"math"
	"strconv"

	"github.com/katalvlaran/placegrid/labels"
)

// Sentinel errors for gridmap operations.
var (
	// ErrBadDimensions indicates rows or cols is smaller than 1.
	ErrBadDimensions = errors.New("gridmap: rows and cols must be at least 1")
	// ErrMissingDefault indicates the cost table lacks the mandatory "Default" entry.
	ErrMissingDefault = errors.New("gridmap: cost table must define a \"Default\" cost")
	// ErrNegativeCost indicates a negative or NaN cost in the table.
	ErrNegativeCost = errors.New("gridmap: costs must be non-negative numbers")
	// ErrDuplicateCategory indicates two cost table keys that normalize to the same category.
	ErrDuplicateCategory = errors.New("gridmap: duplicate category in cost table")
	// ErrUnknownLabel indicates no corner or place carries the requested label.
	ErrUnknownLabel = errors.New("gridmap: unknown label")
	// ErrNotAdjacent indicates the two positions are not axis-adjacent corners of the grid.
	ErrNotAdjacent = errors.New("gridmap: positions are not adjacent corners")
)

const (
	// DefaultCategory is the category of unmapped places and the fallback cost key.
	DefaultCategory = "Default"
	// DefaultBlockingCategory is the category whose cost marks interior edges as Blocked.
	DefaultBlockingCategory = "P"
)

// Position identifies a node. Corners have integral coordinates, places
// have coordinates of the form k+0.5. Half-integers are exact in float64,
// so Position is safe to compare and to use as a map key.
type Position struct {
	Row, Col float64
}

// IsCorner reports whether both coordinates are integral.
func (p Position) IsCorner() bool {
	return p.Row == math.Trunc(p.Row) && p.Col == math.Trunc(p.Col)
}

// IsPlace reports whether both coordinates are half-integral.
func (p Position) IsPlace() bool {
	return p.Row-math.Floor(p.Row) == 0.5 && p.Col-math.Floor(p.Col) == 0.5
}

// UpRightCorner maps a place to the corner immediately up and to the right
// of it, (row-0.5, col+0.5). Any other position is returned unchanged.
func (p Position) UpRightCorner() Position {
	if !p.IsPlace() {
		return p
	}
	return Position{Row: p.Row - 0.5, Col: p.Col + 0.5}
}

// Manhattan returns |Δrow| + |Δcol|.
func (p Position) Manhattan(q Position) float64 {
	return math.Abs(p.Row-q.Row) + math.Abs(p.Col-q.Col)
}

// String formats the position as "(row,col)".
func (p Position) String() string {
	return "(" + strconv.FormatFloat(p.Row, 'g', -1, 64) + "," + strconv.FormatFloat(p.Col, 'g', -1, 64) + ")"
}

// Corner is a traversable grid intersection.
type Corner struct {
	Pos   Position
	Label string // "A", "B", … in row-major order
}

// Place is an interior cell. It is never traversed.
type Place struct {
	Pos      Position
	Index    int     // 1-based, row-major
	Category string  // normalized category, DefaultCategory when unmapped
	Label    string  // category+index, or the bare index when unmapped
	Cost     float64 // CostTable lookup of Category
}

// Edge is an unordered pair of axis-adjacent corners, stored with From < To
// in row-major order.
type Edge struct {
	From, To Position
}

// EdgeCost is the derived traversal cost of an Edge. Value is +Inf when
// Blocked is set.
type EdgeCost struct {
	Value   float64
	Blocked bool
}

// String renders the cost, or "block" for a Blocked edge.
func (c EdgeCost) String() string {
	if c.Blocked {
		return "block"
	}
	return strconv.FormatFloat(c.Value, 'g', -1, 64)
}

// Options configures Map construction.
type Options struct {
	// Logger receives construction diagnostics. Defaults to a discarding logger.
	Logger *slog.Logger
	// BlockingCategory names the category whose cost marks interior edges as Blocked.
	BlockingCategory string
}

// Option is a functional option for New.
type Option func(*Options)

// WithLogger sets the logger used for construction diagnostics.
// Panics if l is nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("gridmap: WithLogger: logger must not be nil")
	}
	return func(o *Options) { o.Logger = l }
}

// WithBlockingCategory overrides the blocking category ("P" by default).
// Panics if category is blank.
func WithBlockingCategory(category string) Option {
	if labels.Normalize(category) == "" {
		panic("gridmap: WithBlockingCategory: category must not be blank")
	}
	return func(o *Options) { o.BlockingCategory = labels.Normalize(category) }
}

// DefaultOptions returns the construction defaults: a discarding logger and
// DefaultBlockingCategory.
func DefaultOptions() Options {
	return Options{
		Logger:           slog.New(slog.NewTextHandler(io.Discard, nil)),
		BlockingCategory: DefaultBlockingCategory,
	}
}
