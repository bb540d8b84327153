// Package indextree is a rooted, parent-linked tree with an unlimited number of ordered children per node, used as a search index.
//
// Nodes live in an arena owned by the Tree and are addressed by NodeRef handles. A NodeRef remembers which Tree issued it, so attaching under a node from another
// tree (or a made-up ref) fails with ErrUnknownParent. Nodes are never detached or mutated after creation.
//
// Traversals are iterative, so deep trees (one node per matched symbol along a chain) do not grow the goroutine stack.
package indextree

import (
	"cmp"
	"errors"
	"fmt"
	"sync/atomic"
)

// ErrUnknownParent is returned by Attach when the parent was not issued by the tree.
var ErrUnknownParent = errors.New("indextree: parent is not in tree")

// generations distinguishes trees so that refs cannot cross between them.
var generations atomic.Uint64

// NodeRef identifies a node within the Tree that issued it. The zero NodeRef belongs to no tree.
type NodeRef struct {
	gen uint64
	id  int
}

// ID returns the node's sequential id. The root is 0; each Attach issues the next id.
func (r NodeRef) ID() int {
	return r.id
}

// Node is a read-only view of one node.
type Node[T any] struct {
	Ref     NodeRef
	Depth   int // root is 0; otherwise parent's Depth + 1
	Payload T
}

type entry[T any] struct {
	parent   int // -1 for the root
	depth    int
	children []int
	payload  T
}

// Tree is a generic rooted tree. It is not safe for concurrent mutation.
type Tree[T any] struct {
	gen   uint64
	nodes []entry[T]
}

// New returns a tree holding only a root with rootPayload.
func New[T any](rootPayload T) *Tree[T] {
	return &Tree[T]{
		gen:   generations.Add(1),
		nodes: []entry[T]{{parent: -1, payload: rootPayload}},
	}
}

// Root returns the root node.
func (t *Tree[T]) Root() Node[T] {
	return t.node(0)
}

// Len returns the number of nodes, including the root.
func (t *Tree[T]) Len() int {
	return len(t.nodes)
}

// Contains reports whether ref was issued by t.
func (t *Tree[T]) Contains(ref NodeRef) bool {
	return ref.gen == t.gen && ref.id >= 0 && ref.id < len(t.nodes)
}

// Attach adds a node with payload as the last child of parent and returns it.
func (t *Tree[T]) Attach(payload T, parent NodeRef) (Node[T], error) {
	if !t.Contains(parent) {
		return Node[T]{}, fmt.Errorf("%w: node %d", ErrUnknownParent, parent.id)
	}
	id := len(t.nodes)
	t.nodes = append(t.nodes, entry[T]{
		parent:  parent.id,
		depth:   t.nodes[parent.id].depth + 1,
		payload: payload,
	})
	t.nodes[parent.id].children = append(t.nodes[parent.id].children, id)
	return t.node(id), nil
}

// Get returns the node for ref. It panics if ref was not issued by t.
func (t *Tree[T]) Get(ref NodeRef) Node[T] {
	t.mustContain(ref)
	return t.node(ref.id)
}

// Parent returns the parent of ref, or false for the root.
func (t *Tree[T]) Parent(ref NodeRef) (Node[T], bool) {
	t.mustContain(ref)
	p := t.nodes[ref.id].parent
	if p < 0 {
		return Node[T]{}, false
	}
	return t.node(p), true
}

// Children returns the children of ref in insertion order.
func (t *Tree[T]) Children(ref NodeRef) []Node[T] {
	t.mustContain(ref)
	kids := t.nodes[ref.id].children
	out := make([]Node[T], len(kids))
	for i, id := range kids {
		out[i] = t.node(id)
	}
	return out
}

// Preorder calls visit for the root, then for each child subtree in insertion order, depth-first.
func (t *Tree[T]) Preorder(visit func(Node[T])) {
	stack := []int{0}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		visit(t.node(id))
		kids := t.nodes[id].children
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, kids[i])
		}
	}
}

// Ancestors calls visit for start, then its parent, and so on up to and including the root.
func (t *Tree[T]) Ancestors(start NodeRef, visit func(Node[T])) {
	t.mustContain(start)
	for id := start.id; id >= 0; id = t.nodes[id].parent {
		visit(t.node(id))
	}
}

// Best returns the node ranked first by compare, where compare(x, y) < 0 means x ranks before y. compare must be a strict weak order.
//
// The winner is folded bottom-up: a node's winner is chosen among [winner of each child in insertion order..., the node itself], keeping the earliest candidate
// among equally ranked ones.
func (t *Tree[T]) Best(compare func(x, y Node[T]) int) Node[T] {
	winners := make([]int, len(t.nodes))
	// Children always have larger ids than their parent, so descending ids visit every child before its parent.
	for id := len(t.nodes) - 1; id >= 0; id-- {
		best := -1
		for _, c := range t.nodes[id].children {
			if best < 0 || compare(t.node(winners[c]), t.node(best)) < 0 {
				best = winners[c]
			}
		}
		if best < 0 || compare(t.node(id), t.node(best)) < 0 {
			best = id
		}
		winners[id] = best
	}
	return t.node(winners[0])
}

// Deepest returns a node of maximum depth. With a single-node tree, that is the root.
func (t *Tree[T]) Deepest() Node[T] {
	return t.Best(func(x, y Node[T]) int {
		return cmp.Compare(y.Depth, x.Depth)
	})
}

func (t *Tree[T]) node(id int) Node[T] {
	e := &t.nodes[id]
	return Node[T]{
		Ref:     NodeRef{gen: t.gen, id: id},
		Depth:   e.depth,
		Payload: e.payload,
	}
}

func (t *Tree[T]) mustContain(ref NodeRef) {
	if !t.Contains(ref) {
		panic(fmt.Sprintf("indextree: node %d is not in tree", ref.id))
	}
}
