// Package symdiff computes a symbol-level alignment between two strings, A and B.
//
// Every symbol of both inputs is classified:
//   - DiffNotChanged: on a longest chain of equal symbols that appear in the same relative order in A and B.
//   - DiffMoved: equal to a symbol of the other input, but off that chain.
//   - DiffDeleted: only in A.
//   - DiffAdded: only in B.
//
// Consecutive symbols with the same classification are grouped into GroupedDiff runs. For each input, the groups ordered by From partition the input exactly.
//
// Getting a diff:
//
//	res := symdiff.Compare("My ==removed part== string", "My string")
//	// res.ADiffs: {0 2 not_changed "My "} {3 19 deleted "==removed part== "} {20 25 not_changed "string"}
//	// res.BDiffs: {0 8 not_changed "My string"}
//	fmt.Println(res.RenderPretty())
//
// Algorithm: the common prefix and suffix are marked unchanged in linear time. In the remaining window, every pair of positions (i in A, j in B) holding equal
// symbols becomes a node in an indextree.Tree, attached under the deepest existing node that strictly precedes it in both strings (ties go to the larger i+j).
// A node's depth is therefore the length of the longest increasing chain ending at it, and the path from the deepest node to the root is marked unchanged.
// Every other node, in preorder, is marked moved unless one of its positions is already claimed. Insertion order (B outer, A inner) and preorder are the
// tie-breaks, so results are deterministic.
//
// Cost: the tree search makes comparison at least quadratic in the size of the window between the common prefix and suffix. Callers needing bounded latency
// should cap input length.
//
// Symbols: by default a symbol is a Unicode code point. Options.Granularity can select grapheme clusters or bytes instead; GroupedDiff indices count symbols
// of the chosen granularity.
package symdiff
