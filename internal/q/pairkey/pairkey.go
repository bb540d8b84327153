// Package pairkey holds an ordered pair of non-negative integers and its canonical string token.
//
// A Pair is comparable, so it can be used directly as a map key (e.g. map[Pair]struct{} as a set). The token form ("3__7") exists for logs, fixtures, and
// callers that need a scalar key. Decode(Encode(p)) == p for every valid p.
package pairkey

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Separator joins the two integers of a token. It never occurs in the decimal form of a non-negative integer.
const Separator = "__"

// ErrInvalidKey is returned (wrapped) by Decode for any malformed token.
var ErrInvalidKey = errors.New("pairkey: invalid key")

// Pair is an ordered pair of non-negative integers.
type Pair struct {
	A int
	B int
}

// New returns the pair (a, b). It panics if either is negative.
func New(a, b int) Pair {
	if a < 0 || b < 0 {
		panic(fmt.Sprintf("pairkey: negative element in (%d, %d)", a, b))
	}
	return Pair{A: a, B: b}
}

// Encode returns the canonical token for p.
func (p Pair) Encode() string {
	return strconv.Itoa(p.A) + Separator + strconv.Itoa(p.B)
}

// String implements fmt.Stringer using the token form.
func (p Pair) String() string {
	return p.Encode()
}

// SharesCoordinate reports whether p and q agree on A or on B.
func (p Pair) SharesCoordinate(q Pair) bool {
	return p.A == q.A || p.B == q.B
}

// Compare orders pairs by A, then by B. It returns -1, 0, or +1.
func Compare(x, y Pair) int {
	if c := cmp.Compare(x.A, y.A); c != 0 {
		return c
	}
	return cmp.Compare(x.B, y.B)
}

// Decode parses a token produced by Encode. The token must contain exactly one Separator, and both parts must be canonical non-negative decimal integers
// (no sign, no leading zeros other than "0" itself). Errors wrap ErrInvalidKey.
func Decode(key string) (Pair, error) {
	if !strings.Contains(key, Separator) {
		return Pair{}, fmt.Errorf("%w: %q does not contain separator %q", ErrInvalidKey, key, Separator)
	}
	parts := strings.Split(key, Separator)
	if len(parts) != 2 {
		return Pair{}, fmt.Errorf("%w: %q must have exactly two elements, has %d", ErrInvalidKey, key, len(parts))
	}
	var out [2]int
	for i, part := range parts {
		n, err := parseElement(part)
		if err != nil {
			return Pair{}, fmt.Errorf("%w: %q: element %d: %v", ErrInvalidKey, key, i, err)
		}
		out[i] = n
	}
	return Pair{A: out[0], B: out[1]}, nil
}

// parseElement parses a canonical non-negative decimal integer, so that every token maps back to exactly one pair and vice versa.
func parseElement(s string) (int, error) {
	if s == "" {
		return 0, errors.New("empty element")
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("%q is not a number", s)
		}
	}
	if len(s) > 1 && s[0] == '0' {
		return 0, fmt.Errorf("%q has leading zeros", s)
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	return n, nil
}

// Set is a membership set of pairs, indexed by each coordinate so that conflict checks are O(1). The zero value is not usable; use NewSet.
type Set struct {
	members map[Pair]struct{}
	byA     map[int]int // A -> number of members with that A
	byB     map[int]int
}

// NewSet returns an empty set.
func NewSet() *Set {
	return &Set{
		members: make(map[Pair]struct{}),
		byA:     make(map[int]int),
		byB:     make(map[int]int),
	}
}

// Add inserts p. Adding an existing member is a no-op.
func (s *Set) Add(p Pair) {
	if _, ok := s.members[p]; ok {
		return
	}
	s.members[p] = struct{}{}
	s.byA[p.A]++
	s.byB[p.B]++
}

// Has reports whether p is in s.
func (s *Set) Has(p Pair) bool {
	_, ok := s.members[p]
	return ok
}

// Len returns the number of members.
func (s *Set) Len() int {
	return len(s.members)
}

// HasA reports whether some member has first coordinate a.
func (s *Set) HasA(a int) bool {
	return s.byA[a] > 0
}

// HasB reports whether some member has second coordinate b.
func (s *Set) HasB(b int) bool {
	return s.byB[b] > 0
}

// Conflicts reports whether any member of s shares a coordinate with p.
func (s *Set) Conflicts(p Pair) bool {
	return s.HasA(p.A) || s.HasB(p.B)
}

// Sorted returns the members of s ordered by Compare.
func (s *Set) Sorted() []Pair {
	out := make([]Pair, 0, len(s.members))
	for p := range s.members {
		out = append(out, p)
	}
	slices.SortFunc(out, Compare)
	return out
}
