package ssa

import "sort"

// blockSet is a deterministically ordered set of basic block ids. The
// original C implementation (original_source/lang/src/opt.c) rolls a
// hand-written red-black tree (BBSetNode) to get sorted, duplicate-free
// iteration for predecessor sets and dominance frontiers; a sorted Go
// slice with an insertion-point search is the idiomatic equivalent for
// the small cardinalities a single function's CFG ever reaches (see
// DESIGN.md's blockset.go entry and spec.md §9's determinism note).
type blockSet struct {
	ids []int
}

// insert adds id if not already present, keeping ids sorted.
func (s *blockSet) insert(id int) {
	i := sort.SearchInts(s.ids, id)
	if i < len(s.ids) && s.ids[i] == id {
		return
	}
	s.ids = append(s.ids, 0)
	copy(s.ids[i+1:], s.ids[i:])
	s.ids[i] = id
}

func (s *blockSet) contains(id int) bool {
	i := sort.SearchInts(s.ids, id)
	return i < len(s.ids) && s.ids[i] == id
}

func (s *blockSet) count() int {
	return len(s.ids)
}

// forEach visits ids in ascending order, the deterministic iteration
// order spec.md §5 requires of predecessor/dominance-frontier traversal.
func (s *blockSet) forEach(f func(id int)) {
	for _, id := range s.ids {
		f(id)
	}
}
