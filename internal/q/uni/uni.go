// Package uni splits text into comparable symbols and measures how wide text is in a terminal.
package uni

import (
	"unicode/utf8"

	"github.com/clipperhouse/uax29/v2/graphemes"
	"github.com/mattn/go-runewidth"
)

// Options control width calculation in TextWidth.
//
// Currently only relevant for East Asian code points and their locale.
type Options struct {
	EastAsianWidth   bool // if true, treats certain East Asian code points as 2 wide (e.g., Chinese, Japanese, Korean). Use if the locale is one of CJK.
	TreatEmojiAsWide bool // Only considered if EastAsianWidth. If true, treats emoji as wide (2 columns).
}

// TextWidth returns the text width of str for monospace fonts in terminals. If opts is nil, locale is assumed to be non-East Asian.
func TextWidth(str string, opts *Options) int {
	return conditionFromOptions(opts).StringWidth(str)
}

// PadRight pads str with spaces until it is width columns wide. Text already at least width wide is returned unchanged.
func PadRight(str string, width int, opts *Options) string {
	cond := conditionFromOptions(opts)
	return cond.FillRight(str, width)
}

// Bytes splits str into one symbol per byte. Symbols that are not valid UTF-8 on their own are still returned as-is.
func Bytes(str string) []string {
	out := make([]string, len(str))
	for i := 0; i < len(str); i++ {
		out[i] = str[i : i+1]
	}
	return out
}

// Runes splits str into one symbol per code point. Invalid UTF-8 bytes each become their own symbol, so concatenating the result always reproduces str.
func Runes(str string) []string {
	out := make([]string, 0, utf8.RuneCountInString(str))
	for i := 0; i < len(str); {
		_, size := utf8.DecodeRuneInString(str[i:])
		out = append(out, str[i:i+size])
		i += size
	}
	return out
}

// Graphemes splits str into user-perceived characters (extended grapheme clusters, UAX #29).
func Graphemes(str string) []string {
	var out []string
	iter := graphemes.FromString(str)
	for iter.Next() {
		out = append(out, iter.Value())
	}
	return out
}

func conditionFromOptions(opts *Options) *runewidth.Condition {
	cond := runewidth.NewCondition()
	cond.EastAsianWidth = false
	cond.StrictEmojiNeutral = true

	if opts == nil {
		return cond
	}

	cond.EastAsianWidth = opts.EastAsianWidth
	if opts.EastAsianWidth && opts.TreatEmojiAsWide {
		cond.StrictEmojiNeutral = false
	}

	return cond
}
