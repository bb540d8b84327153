package symdiff

import (
	"fmt"

	"github.com/codalotl/symdiff/internal/q/uni"
)

// DiffType classifies one symbol of either input.
type DiffType int

// Classifications of a symbol.
const (
	DiffNotChanged DiffType = iota // on the longest common chain; present in both inputs in the same relative order
	DiffMoved                      // present in both inputs, but off the chain
	DiffDeleted                    // only in A
	DiffAdded                      // only in B
)

var diffTypeNames = [...]string{
	DiffNotChanged: "not_changed",
	DiffMoved:      "moved",
	DiffDeleted:    "deleted",
	DiffAdded:      "added",
}

// String returns "not_changed", "moved", "deleted", or "added".
func (t DiffType) String() string {
	if t < 0 || int(t) >= len(diffTypeNames) {
		return fmt.Sprintf("DiffType(%d)", int(t))
	}
	return diffTypeNames[t]
}

// MarshalText encodes t as its String form.
func (t DiffType) MarshalText() ([]byte, error) {
	if t < 0 || int(t) >= len(diffTypeNames) {
		return nil, fmt.Errorf("symdiff: unknown diff type %d", int(t))
	}
	return []byte(diffTypeNames[t]), nil
}

// UnmarshalText decodes the String form of a DiffType.
func (t *DiffType) UnmarshalText(text []byte) error {
	for i, name := range diffTypeNames {
		if name == string(text) {
			*t = DiffType(i)
			return nil
		}
	}
	return fmt.Errorf("symdiff: unknown diff type %q", text)
}

// Diff is the classification of a single symbol.
type Diff struct {
	Index int      `json:"index"` // symbol index in its input
	Value string   `json:"value"` // the symbol
	Type  DiffType `json:"type"`
}

// GroupedDiff is a maximal run of consecutive symbols that share a DiffType. From and To are inclusive symbol indices.
type GroupedDiff struct {
	From  int      `json:"from"`
	To    int      `json:"to"`
	Type  DiffType `json:"type"`
	Value string   `json:"value"` // concatenation of the run's symbols
}

// Result holds the grouped diffs of both inputs.
//
// Invariants (see Validate):
//   - ADiffs ordered by From partition A's symbols exactly: no gaps, no overlaps. Likewise BDiffs for B.
//   - DiffDeleted only appears in ADiffs; DiffAdded only in BDiffs.
//   - The DiffNotChanged symbols of A, in order, equal those of B. The DiffMoved symbols of A and B are the same multiset.
type Result struct {
	ADiffs []GroupedDiff `json:"aDiffs"`
	BDiffs []GroupedDiff `json:"bDiffs"`

	aSymbols []string
	bSymbols []string
}

// SymbolDiffs expands the grouped diffs into one Diff per symbol, for A and for B.
func (r Result) SymbolDiffs() (aDiffs []Diff, bDiffs []Diff) {
	return expand(r.ADiffs, r.aSymbols), expand(r.BDiffs, r.bSymbols)
}

func expand(groups []GroupedDiff, symbols []string) []Diff {
	out := make([]Diff, 0, len(symbols))
	for _, g := range groups {
		for i := g.From; i <= g.To && i < len(symbols); i++ {
			out = append(out, Diff{Index: i, Value: symbols[i], Type: g.Type})
		}
	}
	return out
}

// Granularity selects what a symbol is.
type Granularity int

const (
	GranularityRune     Granularity = iota // one symbol per Unicode code point (default)
	GranularityGrapheme                    // one symbol per user-perceived character (UAX #29 grapheme cluster)
	GranularityByte                        // one symbol per byte; indices equal byte offsets
)

func (g Granularity) split(s string) []string {
	switch g {
	case GranularityRune:
		return uni.Runes(s)
	case GranularityGrapheme:
		return uni.Graphemes(s)
	case GranularityByte:
		return uni.Bytes(s)
	default:
		panic(fmt.Sprintf("symdiff: unknown granularity %d", int(g)))
	}
}

// Options configure CompareWithOptions. A nil *Options means the defaults.
type Options struct {
	Granularity Granularity
}
