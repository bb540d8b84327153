// Package symdiff classifies every symbol of two strings as not changed, moved, deleted, or added, and groups the classifications into runs.
//
// This package re-exports the engine in internal/symdiff; see there for the algorithm and invariants.
package symdiff

import (
	"github.com/codalotl/symdiff/internal/q/uni"
	"github.com/codalotl/symdiff/internal/symdiff"
)

type (
	DiffType    = symdiff.DiffType
	Diff        = symdiff.Diff
	GroupedDiff = symdiff.GroupedDiff
	Result      = symdiff.Result
	Options     = symdiff.Options
	Granularity = symdiff.Granularity

	// WidthOptions configure display widths for Result.RenderColumns.
	WidthOptions = uni.Options
)

const (
	DiffNotChanged = symdiff.DiffNotChanged
	DiffMoved      = symdiff.DiffMoved
	DiffDeleted    = symdiff.DiffDeleted
	DiffAdded      = symdiff.DiffAdded

	GranularityRune     = symdiff.GranularityRune
	GranularityGrapheme = symdiff.GranularityGrapheme
	GranularityByte     = symdiff.GranularityByte
)

// Compare diffs a against b one code point at a time. It never fails.
func Compare(a, b string) Result {
	return symdiff.Compare(a, b)
}

// CompareWithOptions diffs a against b using opts (nil means defaults).
func CompareWithOptions(a, b string, opts *Options) Result {
	return symdiff.CompareWithOptions(a, b, opts)
}
