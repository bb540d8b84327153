package symdiff

import (
	"fmt"
	"slices"
	"strings"
)

// Validate checks the Result invariants against the symbols it was computed from and returns an error on the first violation.
func (r Result) Validate() error {
	if err := validateSide("aDiffs", r.ADiffs, r.aSymbols, DiffAdded); err != nil {
		return err
	}
	if err := validateSide("bDiffs", r.BDiffs, r.bSymbols, DiffDeleted); err != nil {
		return err
	}

	aKept, bKept := collect(r.ADiffs, r.aSymbols, DiffNotChanged), collect(r.BDiffs, r.bSymbols, DiffNotChanged)
	if !slices.Equal(aKept, bKept) {
		return fmt.Errorf("result: not_changed symbols differ: %q vs %q", strings.Join(aKept, ""), strings.Join(bKept, ""))
	}

	aMoved, bMoved := collect(r.ADiffs, r.aSymbols, DiffMoved), collect(r.BDiffs, r.bSymbols, DiffMoved)
	slices.Sort(aMoved)
	slices.Sort(bMoved)
	if !slices.Equal(aMoved, bMoved) {
		return fmt.Errorf("result: moved symbols differ: %q vs %q", aMoved, bMoved)
	}
	return nil
}

// validateSide checks that groups partition symbols exactly and that forbidden never appears.
func validateSide(side string, groups []GroupedDiff, symbols []string, forbidden DiffType) error {
	next := 0
	for gi, g := range groups {
		switch g.Type {
		case DiffNotChanged, DiffMoved, DiffDeleted, DiffAdded:
		default:
			return fmt.Errorf("%s[%d]: unknown type %d", side, gi, int(g.Type))
		}
		if g.Type == forbidden {
			return fmt.Errorf("%s[%d]: %s is not allowed on this side", side, gi, g.Type)
		}
		if g.From != next {
			return fmt.Errorf("%s[%d]: From is %d, want %d", side, gi, g.From, next)
		}
		if g.To < g.From {
			return fmt.Errorf("%s[%d]: To (%d) < From (%d)", side, gi, g.To, g.From)
		}
		if g.To >= len(symbols) {
			return fmt.Errorf("%s[%d]: To (%d) is past the last symbol (%d)", side, gi, g.To, len(symbols)-1)
		}
		if gi > 0 && groups[gi-1].Type == g.Type {
			return fmt.Errorf("%s[%d]: same type as previous group (%s)", side, gi, g.Type)
		}
		if want := strings.Join(symbols[g.From:g.To+1], ""); g.Value != want {
			return fmt.Errorf("%s[%d]: Value is %q, want %q", side, gi, g.Value, want)
		}
		next = g.To + 1
	}
	if next != len(symbols) {
		return fmt.Errorf("%s: groups cover %d of %d symbols", side, next, len(symbols))
	}
	return nil
}

// collect returns the symbols of every group of type t, in order.
func collect(groups []GroupedDiff, symbols []string, t DiffType) []string {
	var out []string
	for _, g := range groups {
		if g.Type == t {
			out = append(out, symbols[g.From:g.To+1]...)
		}
	}
	return out
}
