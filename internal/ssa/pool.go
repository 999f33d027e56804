package ssa

// poolPageSize is the number of elements allocated per underlying page,
// matching the teacher's ssa/pool.go sizing.
const poolPageSize = 128

// pool is a paged arena allocator for T: once allocated, an element's
// address is stable until the pool is reset, and individual elements are
// never freed, per spec.md §5's "arena-based memory, never free
// individual objects" rule.
type pool[T any] struct {
	pages     []*[poolPageSize]T
	allocated int
}

func newPool[T any]() pool[T] {
	return pool[T]{pages: []*[poolPageSize]T{new([poolPageSize]T)}}
}

// allocate returns a pointer to a fresh zero-valued T.
func (p *pool[T]) allocate() *T {
	pageIndex := p.allocated / poolPageSize
	for pageIndex >= len(p.pages) {
		p.pages = append(p.pages, new([poolPageSize]T))
	}
	page := p.pages[pageIndex]
	elem := &page[p.allocated%poolPageSize]
	p.allocated++
	var zero T
	*elem = zero
	return elem
}

// reset reclaims every page for reuse without freeing them, so a Function
// can be rebuilt for the next compilation without reallocating storage.
func (p *pool[T]) reset() {
	p.allocated = 0
}

// scratchPool hands out one of a small fixed set of scratch arenas,
// avoiding any arena already in use by the caller. This mirrors
// original_source/lang/src/core.h's Scratch get_scratch(conflicts, count)
// contract: a caller passes the arenas it already holds, and gets back one
// that doesn't alias them, so two in-flight scratch computations never
// clobber each other's storage.
type scratchPool struct {
	arenas [2]pool[byte]
	inUse  [2]bool
}

// scratch is a lease on one of scratchPool's backing arenas.
type scratch struct {
	owner *scratchPool
	index int
}

// get returns a scratch arena not present in conflicts, panicking if the
// caller holds every arena already (spec.md §5's budget-exceeded case).
func (sp *scratchPool) get(conflicts ...*scratch) *scratch {
	held := make(map[int]bool, len(conflicts))
	for _, c := range conflicts {
		if c != nil && c.owner == sp {
			held[c.index] = true
		}
	}
	for i := range sp.arenas {
		if !sp.inUse[i] && !held[i] {
			sp.inUse[i] = true
			sp.arenas[i].reset()
			return &scratch{owner: sp, index: i}
		}
	}
	panic("BUG: scratch arena budget exceeded")
}

// release returns the scratch arena to the pool.
func (s *scratch) release() {
	if s == nil {
		return
	}
	s.owner.inUse[s.index] = false
}
