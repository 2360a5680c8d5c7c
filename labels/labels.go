// Package labels generates and parses the deterministic node names used by
// gridmap: alphabetic corner labels ("A", "B", …, "Z", "AA", …) and place
// labels built from a category and a 1-based place index ("Q6", or "7" when
// the place has no category).
//
// Corner labels are a bijective base-26 numeral system: there is no zero
// digit, so 26→"Z" and 27→"AA" rather than a carry into "BA".
//
// Complexity:
//
//   - Alphabetic, ParseAlphabetic: O(k) time, k = number of letters ≈ log₂₆(n).
//   - Place, Normalize: O(len) time.
package labels

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Sentinel errors for label parsing.
var (
	// ErrBadLabel indicates the input is empty or contains a non-letter rune.
	ErrBadLabel = errors.New("labels: label must be a non-empty run of letters A-Z")

	// ErrLabelOverflow indicates the label encodes a number larger than math.MaxInt.
	ErrLabelOverflow = errors.New("labels: label value overflows int")
)

// alphabet is the numeral base of corner labels.
const alphabet = 26

// Alphabetic returns the corner label for the 1-based sequence number n,
// e.g. 1→"A", 26→"Z", 27→"AA", 52→"AZ", 53→"BA", 702→"ZZ", 703→"AAA".
// Panics if n < 1.
func Alphabetic(n int) string {
	if n < 1 {
		panic(fmt.Sprintf("labels: Alphabetic: n must be ≥ 1, got %d", n))
	}
	// build letters least-significant first
	var runes []rune
	for i := n; i > 0; i = (i - 1) / alphabet {
		runes = append(runes, rune('A'+(i-1)%alphabet))
	}
	// reverse in-place to correct order
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}

	return string(runes)
}

// ParseAlphabetic is the inverse of Alphabetic. Matching is case-insensitive.
// Returns ErrBadLabel for empty or non-alphabetic input and ErrLabelOverflow
// when the value does not fit in an int.
func ParseAlphabetic(s string) (int, error) {
	if s == "" {
		return 0, ErrBadLabel
	}
	n := 0
	for _, r := range strings.ToUpper(s) {
		if r < 'A' || r > 'Z' {
			return 0, fmt.Errorf("%w: %q", ErrBadLabel, s)
		}
		digit := int(r-'A') + 1
		if n > (math.MaxInt-digit)/alphabet {
			return 0, fmt.Errorf("%w: %q", ErrLabelOverflow, s)
		}
		n = n*alphabet + digit
	}

	return n, nil
}

// Place returns the label of the place with the given 1-based index:
// the uppercased category followed by the index, or the bare index when
// category is empty. Place("q", 6) == "Q6", Place("", 7) == "7".
func Place(category string, index int) string {
	return Normalize(category) + strconv.Itoa(index)
}

// Normalize trims surrounding whitespace and uppercases a label or category.
// Every label comparison in gridmap goes through Normalize.
func Normalize(label string) string {
	return strings.ToUpper(strings.TrimSpace(label))
}
