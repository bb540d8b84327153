package symdiff

import (
	"errors"
	"testing"

	"github.com/codalotl/symdiff/internal/q/indextree"
	"github.com/codalotl/symdiff/internal/q/pairkey"
	"github.com/codalotl/symdiff/internal/q/uni"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestComparer(a, b string) *comparer {
	return newComparer(uni.Runes(a), uni.Runes(b))
}

func TestPrefixSuffix(t *testing.T) {
	tests := []struct {
		name      string
		a         string
		b         string
		wantStart int
		wantEnd   int
	}{
		{name: "common prefix and suffix", a: "ABCDE++++++++++XYZ", b: "ABCDE----------XYZ", wantStart: 5, wantEnd: 3},
		{name: "identical", a: "abc", b: "abc", wantStart: 3, wantEnd: 0},
		{name: "nothing shared", a: "abc", b: "xyz", wantStart: 0, wantEnd: 0},
		{name: "a is prefix of b", a: "ab", b: "abab", wantStart: 2, wantEnd: 0},
		{name: "suffix bounded by prefix", a: "aXa", b: "aXaXa", wantStart: 3, wantEnd: 0},
		{name: "empty", a: "", b: "abc", wantStart: 0, wantEnd: 0},
		{name: "suffix only", a: "xbc", b: "ybc", wantStart: 0, wantEnd: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestComparer(tt.a, tt.b)
			start, end := c.prefixSuffix()
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
			assert.Equal(t, start+end, c.notChanged.Len())
			assert.LessOrEqual(t, start+end, min(len(c.a), len(c.b)))
		})
	}
}

func TestPrefixSuffix_MarksPairs(t *testing.T) {
	c := newTestComparer("ABCDE++XYZ", "ABCDE---XYZ")
	c.prefixSuffix()
	for i := range 5 {
		assert.True(t, c.notChanged.Has(pairkey.New(i, i)))
	}
	assert.True(t, c.notChanged.Has(pairkey.New(7, 8)))
	assert.True(t, c.notChanged.Has(pairkey.New(9, 10)))
}

func TestBuildTree_StoresOnlyEqualSymbols(t *testing.T) {
	// A, D, and K are the only shared symbols.
	c := newTestComparer("AbcDefgijK", "lhmnAoqrDtuvxKyz")
	c.buildTree()
	assert.Equal(t, 4, c.tree.Len()) // root + 3
}

func TestStoreEqualSymbols_ChainsInOrder(t *testing.T) {
	c := newTestComparer("AbcDefgijK", "lhmnAoqrDtuvxKyz")
	expected := []struct {
		indexA int
		indexB int
		value  string
		depth  int
	}{
		{indexA: 0, indexB: 4, value: "A", depth: 1},
		{indexA: 3, indexB: 8, value: "D", depth: 2},
		{indexA: 9, indexB: 13, value: "K", depth: 3},
	}
	for _, e := range expected {
		require.NoError(t, c.storeEqualSymbols(e.indexA, e.indexB))
		deepest := c.tree.Deepest()
		assert.Equal(t, payload{indexA: e.indexA, indexB: e.indexB, value: e.value}, deepest.Payload)
		assert.Equal(t, e.depth, deepest.Depth)
	}
}

func TestStoreEqualSymbols_MixedOrder(t *testing.T) {
	// A, B, and C are the only shared symbols; B and C cross, so neither extends the other.
	c := newTestComparer("bAcBefC", "AhmCoqrdtuvxByz")
	expected := []struct {
		indexA int
		indexB int
		depth  int
	}{
		{indexA: 1, indexB: 0, depth: 1},
		{indexA: 3, indexB: 12, depth: 2},
		{indexA: 6, indexB: 3, depth: 2},
	}
	for _, e := range expected {
		require.NoError(t, c.storeEqualSymbols(e.indexA, e.indexB))
		assert.Equal(t, e.depth, c.tree.Deepest().Depth)
	}
}

func TestStoreEqualSymbols_Errors(t *testing.T) {
	c := newTestComparer("bAcBefC", "AhmCoqrdtuvxByz")

	err := c.storeEqualSymbols(0, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotEqualSymbols))

	assert.Error(t, c.storeEqualSymbols(100, 0))
	assert.Error(t, c.storeEqualSymbols(0, -1))
	assert.Equal(t, 1, c.tree.Len())
}

func attachTestNode(t *testing.T, c *comparer, indexA, indexB int, value string) {
	t.Helper()
	_, err := c.tree.Attach(payload{indexA: indexA, indexB: indexB, value: value}, c.tree.Root().Ref)
	require.NoError(t, err)
}

func TestDeepestNodeInArea(t *testing.T) {
	c := newTestComparer("abc", "xyz")
	attachTestNode(t, c, 2, 3, "A")
	attachTestNode(t, c, 6, 8, "B")
	attachTestNode(t, c, 3, 8, "c")
	assert.Equal(t, "A", c.deepestNodeInArea(5, 5).Payload.value)

	// Same depth: the node closer to the limits wins.
	attachTestNode(t, c, 3, 4, "D")
	assert.Equal(t, "D", c.deepestNodeInArea(5, 5).Payload.value)
}

func TestDeepestNodeInArea_PrefersDepthThenDistance(t *testing.T) {
	c := newTestComparer("abc", "xyz")
	attachTestNode(t, c, 2, 3, "A")
	attachTestNode(t, c, 3, 4, "B")
	assert.Equal(t, "B", c.deepestNodeInArea(5, 5).Payload.value)

	// A deeper node inside the area beats a closer shallow one.
	a := c.tree.Children(c.tree.Root().Ref)[0]
	_, err := c.tree.Attach(payload{indexA: 2, indexB: 4, value: "E"}, a.Ref)
	require.NoError(t, err)
	assert.Equal(t, "E", c.deepestNodeInArea(5, 5).Payload.value)

	// Nodes on the limits are outside the area.
	assert.Equal(t, "A", c.deepestNodeInArea(3, 4).Payload.value)

	// Nothing is in the area but the root.
	root := c.deepestNodeInArea(0, 0)
	assert.True(t, root.Payload.isRoot())
	assert.Equal(t, 0, root.Depth)
}

func TestMarkNotChanged(t *testing.T) {
	c := newTestComparer("qAweBrtCyu", "sdAfgBhjCkl")
	c.buildTree()
	c.markNotChanged()
	assert.Equal(t, []pairkey.Pair{pairkey.New(1, 2), pairkey.New(4, 5), pairkey.New(7, 8)}, c.notChanged.Sorted())
}

func TestMarkNotChanged_EmptyTree(t *testing.T) {
	c := newTestComparer("abc", "xyz")
	c.markNotChanged()
	assert.Equal(t, 0, c.notChanged.Len())
	c.markMoved()
	assert.Equal(t, 0, c.moved.Len())
}

func TestMarkMoved(t *testing.T) {
	// Shared symbols a, b, c, in reverse order in b.
	c := newTestComparer("123cba456", "7a8b90c")
	c.buildTree()
	c.markNotChanged()
	c.markMoved()

	// All three nodes hang off the root at depth 1; the first one ((5,1): "a") becomes the chain.
	assert.Equal(t, []pairkey.Pair{pairkey.New(5, 1)}, c.notChanged.Sorted())
	assert.Equal(t, []pairkey.Pair{pairkey.New(3, 6), pairkey.New(4, 3)}, c.moved.Sorted())
}

func TestMarkMoved_SkipsClaimedIndices(t *testing.T) {
	t.Run("claimed by not changed", func(t *testing.T) {
		c := newTestComparer("123cba456", "7a8b90c")
		c.buildTree()
		c.markNotChanged()
		c.notChanged.Add(pairkey.New(4, 999))
		c.markMoved()
		assert.False(t, c.moved.Has(pairkey.New(4, 3)))
		assert.True(t, c.moved.Has(pairkey.New(3, 6)))
	})
	t.Run("claimed by moved", func(t *testing.T) {
		c := newTestComparer("123cba456", "7a8b90c")
		c.buildTree()
		c.markNotChanged()
		c.moved.Add(pairkey.New(999, 3))
		c.markMoved()
		assert.False(t, c.moved.Has(pairkey.New(4, 3)))
	})
}

func TestMarkMoved_FirstCandidateInPreorderWins(t *testing.T) {
	// "ab" vs "ba": nodes (1,0) "b" and (0,1) "a" are both depth 1 under the root. (1,0) is inserted first, so it is the chain; (0,1) is moved.
	c := newTestComparer("ab", "ba")
	c.buildTree()
	c.markNotChanged()
	c.markMoved()
	assert.Equal(t, []pairkey.Pair{pairkey.New(1, 0)}, c.notChanged.Sorted())
	assert.Equal(t, []pairkey.Pair{pairkey.New(0, 1)}, c.moved.Sorted())
}

func TestChainIsStrictlyIncreasing(t *testing.T) {
	c := newTestComparer("the quick brown fox", "a quick fox, brown")
	c.buildTree()

	c.tree.Preorder(func(n indextree.Node[payload]) {
		parent, ok := c.tree.Parent(n.Ref)
		if !ok {
			return
		}
		assert.Less(t, parent.Payload.indexA, n.Payload.indexA)
		assert.Less(t, parent.Payload.indexB, n.Payload.indexB)
		assert.Equal(t, parent.Depth+1, n.Depth)
		assert.Equal(t, c.a[n.Payload.indexA], c.b[n.Payload.indexB])
	})
}

func TestGroupDiffs(t *testing.T) {
	assert.Equal(t, []GroupedDiff{}, groupDiffs(nil))

	diffs := []Diff{
		{Index: 0, Value: "a", Type: DiffNotChanged},
		{Index: 1, Value: "b", Type: DiffNotChanged},
		{Index: 2, Value: "c", Type: DiffDeleted},
		{Index: 3, Value: "d", Type: DiffNotChanged},
		{Index: 4, Value: "e", Type: DiffMoved},
		{Index: 5, Value: "f", Type: DiffMoved},
	}
	assert.Equal(t, []GroupedDiff{
		{From: 0, To: 1, Type: DiffNotChanged, Value: "ab"},
		{From: 2, To: 2, Type: DiffDeleted, Value: "c"},
		{From: 3, To: 3, Type: DiffNotChanged, Value: "d"},
		{From: 4, To: 5, Type: DiffMoved, Value: "ef"},
	}, groupDiffs(diffs))
}
