package symdiff

import (
	"cmp"
	"errors"
	"fmt"
	"strings"

	"github.com/codalotl/symdiff/internal/q/indextree"
	"github.com/codalotl/symdiff/internal/q/pairkey"
	"github.com/codalotl/symdiff/internal/simplelogger"
)

// ErrNotEqualSymbols is returned when asked to store a pair of positions whose symbols differ.
var ErrNotEqualSymbols = errors.New("symdiff: symbols are not equal")

// Compare diffs a against b one code point at a time. It never fails, and it is deterministic.
func Compare(a, b string) Result {
	return CompareWithOptions(a, b, nil)
}

// CompareWithOptions diffs a against b using opts (nil means defaults). It panics if opts.Granularity is not one of the declared values.
//
// Cost is at least quadratic in the length of the region between the common prefix and suffix; callers that need bounded latency should cap input length.
func CompareWithOptions(a, b string, opts *Options) Result {
	var granularity Granularity
	if opts != nil {
		granularity = opts.Granularity
	}

	c := newComparer(granularity.split(a), granularity.split(b))
	res := c.diffs()

	if simplelogger.Enabled() {
		simplelogger.Log("symdiff: compared %d/%d symbols: %d tree nodes, %d not changed, %d moved", len(c.a), len(c.b), c.tree.Len(), c.notChanged.Len(), c.moved.Len())
	}

	if err := res.Validate(); err != nil {
		panic(fmt.Errorf("CompareWithOptions: validate failed with %v", err))
	}
	return res
}

// payload is one matched position pair. The root holds (-1, -1) and is never a real match.
type payload struct {
	indexA int
	indexB int
	value  string
}

func (p payload) isRoot() bool {
	return p.indexA < 0
}

func (p payload) pair() pairkey.Pair {
	return pairkey.New(p.indexA, p.indexB)
}

// comparer performs exactly one comparison. Each node in tree is an equal-symbol pair whose parent chain is a strictly increasing (in both coordinates) chain
// of equal symbols, so a node's depth is the length of that chain.
type comparer struct {
	a []string
	b []string

	tree       *indextree.Tree[payload]
	notChanged *pairkey.Set
	moved      *pairkey.Set
}

func newComparer(a, b []string) *comparer {
	return &comparer{
		a:          a,
		b:          b,
		tree:       indextree.New(payload{indexA: -1, indexB: -1}),
		notChanged: pairkey.NewSet(),
		moved:      pairkey.NewSet(),
	}
}

// diffs runs every phase and returns the grouped result.
func (c *comparer) diffs() Result {
	c.buildTree()
	c.markNotChanged()
	c.markMoved()
	aDiffs, bDiffs := c.symbolDiffs()
	return Result{
		ADiffs:   groupDiffs(aDiffs),
		BDiffs:   groupDiffs(bDiffs),
		aSymbols: c.a,
		bSymbols: c.b,
	}
}

// prefixSuffix marks the common prefix and the common suffix as not changed. It returns the prefix length (start) and the suffix length (end); the two never
// overlap.
func (c *comparer) prefixSuffix() (start int, end int) {
	n := min(len(c.a), len(c.b))
	for start < n && c.a[start] == c.b[start] {
		c.notChanged.Add(pairkey.New(start, start))
		start++
	}
	for end < n-start {
		ia, ib := len(c.a)-end-1, len(c.b)-end-1
		if c.a[ia] != c.b[ib] {
			break
		}
		c.notChanged.Add(pairkey.New(ia, ib))
		end++
	}
	return start, end
}

// buildTree stores every equal-symbol pair in the window between the common prefix and suffix. The loop nesting (B outer, A inner) fixes the insertion order,
// which is what tie-breaks depend on.
func (c *comparer) buildTree() {
	start, end := c.prefixSuffix()
	for indexB := start; indexB < len(c.b)-end; indexB++ {
		for indexA := start; indexA < len(c.a)-end; indexA++ {
			if c.a[indexA] != c.b[indexB] {
				continue
			}
			if err := c.storeEqualSymbols(indexA, indexB); err != nil {
				panic(fmt.Errorf("buildTree: %w", err))
			}
		}
	}
}

// storeEqualSymbols attaches (indexA, indexB) under the deepest node that strictly precedes it in both strings.
func (c *comparer) storeEqualSymbols(indexA, indexB int) error {
	if indexA < 0 || indexA >= len(c.a) || indexB < 0 || indexB >= len(c.b) {
		return fmt.Errorf("symdiff: position (%d, %d) is out of range", indexA, indexB)
	}
	if c.a[indexA] != c.b[indexB] {
		return fmt.Errorf("%w: a[%d]=%q, b[%d]=%q", ErrNotEqualSymbols, indexA, c.a[indexA], indexB, c.b[indexB])
	}
	parent := c.deepestNodeInArea(indexA, indexB)
	_, err := c.tree.Attach(payload{indexA: indexA, indexB: indexB, value: c.a[indexA]}, parent.Ref)
	return err
}

// deepestNodeInArea returns the deepest node with indexA < maxIndexA and indexB < maxIndexB. Among equally deep nodes, the one with the largest indexA+indexB
// (the closest to the limits) wins. The root qualifies whenever both limits are non-negative.
func (c *comparer) deepestNodeInArea(maxIndexA, maxIndexB int) indextree.Node[payload] {
	inArea := func(n indextree.Node[payload]) bool {
		return n.Payload.indexA < maxIndexA && n.Payload.indexB < maxIndexB
	}
	return c.tree.Best(func(x, y indextree.Node[payload]) int {
		xIn, yIn := inArea(x), inArea(y)
		switch {
		case !xIn && !yIn:
			return 0
		case xIn && !yIn:
			return -1
		case !xIn && yIn:
			return 1
		}
		if x.Depth != y.Depth {
			return cmp.Compare(y.Depth, x.Depth)
		}
		return cmp.Compare(y.Payload.indexA+y.Payload.indexB, x.Payload.indexA+x.Payload.indexB)
	})
}

// markNotChanged marks the chain from the deepest node up to (excluding) the root. It is a longest chain of equal symbols increasing in both strings.
func (c *comparer) markNotChanged() {
	leaf := c.tree.Deepest()
	c.tree.Ancestors(leaf.Ref, func(n indextree.Node[payload]) {
		if n.Payload.isRoot() {
			return
		}
		c.notChanged.Add(n.Payload.pair())
	})
}

// markMoved walks every node in preorder and marks it moved unless one of its indices is already claimed by a not-changed or a moved pair. The first
// unclaimed candidate in preorder wins.
func (c *comparer) markMoved() {
	c.tree.Preorder(func(n indextree.Node[payload]) {
		if n.Payload.isRoot() {
			return
		}
		p := n.Payload.pair()
		if c.notChanged.Conflicts(p) || c.moved.Conflicts(p) {
			return
		}
		c.moved.Add(p)
	})
}

// symbolDiffs classifies every symbol of a and b.
func (c *comparer) symbolDiffs() (aDiffs []Diff, bDiffs []Diff) {
	classify := func(symbols []string, notChanged, moved func(int) bool, otherwise DiffType) []Diff {
		out := make([]Diff, len(symbols))
		for i, s := range symbols {
			t := otherwise
			switch {
			case notChanged(i):
				t = DiffNotChanged
			case moved(i):
				t = DiffMoved
			}
			out[i] = Diff{Index: i, Value: s, Type: t}
		}
		return out
	}
	aDiffs = classify(c.a, c.notChanged.HasA, c.moved.HasA, DiffDeleted)
	bDiffs = classify(c.b, c.notChanged.HasB, c.moved.HasB, DiffAdded)
	return aDiffs, bDiffs
}

// groupDiffs folds per-symbol diffs into maximal runs of one type. Empty input yields an empty, non-nil slice.
func groupDiffs(diffs []Diff) []GroupedDiff {
	groups := []GroupedDiff{}
	var value strings.Builder
	for i, d := range diffs {
		if i > 0 && d.Type == groups[len(groups)-1].Type {
			groups[len(groups)-1].To = d.Index
			value.WriteString(d.Value)
			continue
		}
		if i > 0 {
			groups[len(groups)-1].Value = value.String()
			value.Reset()
		}
		groups = append(groups, GroupedDiff{From: d.Index, To: d.Index, Type: d.Type})
		value.WriteString(d.Value)
	}
	if len(groups) > 0 {
		groups[len(groups)-1].Value = value.String()
	}
	return groups
}
