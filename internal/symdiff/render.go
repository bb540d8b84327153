package symdiff

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/codalotl/symdiff/internal/q/uni"
)

// RenderPretty returns a colorized, human-oriented rendering of r: a "-" line holding A and a "+" line holding B. Unchanged groups are printed as-is; deleted,
// added, and moved groups are highlighted with pink, green, and yellow backgrounds respectively. A side with no symbols is omitted, so comparing two empty
// strings renders as "".
//
// Symbol values are written verbatim (including any '\n'). The output contains ANSI 256-color escape sequences and is intended for terminals.
func (r Result) RenderPretty() string {
	const (
		reset     = "\x1b[0m"
		blackFG   = "\x1b[30m"
		pinkSpan  = "\x1b[48;5;217m" // deleted
		greenSpan = "\x1b[48;5;114m" // added
		yellow    = "\x1b[48;5;229m" // moved
	)

	renderLine := func(tag byte, groups []GroupedDiff) string {
		var b strings.Builder
		b.WriteByte(tag)
		for _, g := range groups {
			var bg string
			switch g.Type {
			case DiffDeleted:
				bg = pinkSpan
			case DiffAdded:
				bg = greenSpan
			case DiffMoved:
				bg = yellow
			default:
				b.WriteString(g.Value)
				continue
			}
			b.WriteString(blackFG)
			b.WriteString(bg)
			b.WriteString(g.Value)
			b.WriteString(reset)
		}
		return b.String()
	}

	var out []string
	if len(r.ADiffs) > 0 {
		out = append(out, renderLine('-', r.ADiffs))
	}
	if len(r.BDiffs) > 0 {
		out = append(out, renderLine('+', r.BDiffs))
	}
	return strings.Join(out, "\n")
}

// RenderColumns returns a plain-text, two-column listing of the groups: A's groups on the left, B's on the right, one group per row. Each cell reads
// `<from>-<to> <type> <quoted value>`; values are quoted with strconv.Quote so control characters stay visible. The left column is padded to the display width
// of its widest cell (per opts; nil means a non-East Asian locale). Rows are joined with '\n' and have no trailing spaces.
func (r Result) RenderColumns(opts *uni.Options) string {
	cell := func(g GroupedDiff) string {
		return fmt.Sprintf("%d-%d %s %s", g.From, g.To, g.Type, strconv.Quote(g.Value))
	}

	rows := max(len(r.ADiffs), len(r.BDiffs))
	left := make([]string, rows)
	right := make([]string, rows)
	leftWidth := 0
	for i, g := range r.ADiffs {
		left[i] = cell(g)
		leftWidth = max(leftWidth, uni.TextWidth(left[i], opts))
	}
	for i, g := range r.BDiffs {
		right[i] = cell(g)
	}

	lines := make([]string, rows)
	for i := range rows {
		if right[i] == "" {
			lines[i] = left[i]
			continue
		}
		lines[i] = uni.PadRight(left[i], leftWidth, opts) + " | " + right[i]
	}
	return strings.Join(lines, "\n")
}
