package ssa

// CFG holds the control-flow metadata computed over a Function's basic
// blocks: a reverse postorder, predecessors, the dominator tree, and
// dominance frontiers. Grounded on the teacher's pass_cfg.go
// (postorder/calculateDominators/intersect, citing Cooper, Harvey &
// Kennedy's "A Simple, Fast Dominance Algorithm") merged with
// original_source/lang/src/opt.c's explicit dominance-frontier
// computation, which the teacher's own SSA variant never needs.
type CFG struct {
	fn *Function

	blocks        []*BasicBlock
	reversePostOrder []*BasicBlock
	postOrderIndex  map[int]int // block id -> position in reversePostOrder

	frontiers map[int]*blockSet
}

// BuildCFG computes predecessors, dominators, and dominance frontiers
// for fn, per spec.md §4.4.1-§4.4.3.
func BuildCFG(fn *Function) *CFG {
	c := &CFG{fn: fn, frontiers: make(map[int]*blockSet)}
	c.blocks = fn.Blocks()

	clearMetadata(c.blocks)
	c.computePredecessors()
	c.computeReversePostOrder()
	c.calculateDominators()
	c.computeDomChildren()
	c.computeDominanceFrontiers()
	return c
}

func clearMetadata(blocks []*BasicBlock) {
	for _, b := range blocks {
		b.preds = blockSet{}
		b.idom = nil
		b.doms = nil
	}
}

func (c *CFG) computePredecessors() {
	for _, b := range c.blocks {
		for _, s := range b.Successors() {
			s.preds.insert(b.ID)
		}
	}
}

// computeReversePostOrder performs an explicit iterative DFS from the
// entry block, building a true postorder and then reversing it, the
// same two-step shape as the teacher's
// passCalculateImmediateDominators.
func (c *CFG) computeReversePostOrder() {
	entry := c.fn.EntryBlock()
	if entry == nil {
		return
	}

	byID := make(map[int]*BasicBlock, len(c.blocks))
	for _, b := range c.blocks {
		byID[b.ID] = b
	}

	visited := make(map[int]bool)
	var postOrder []*BasicBlock

	type frame struct {
		b        *BasicBlock
		succs    []*BasicBlock
		succIdx  int
	}
	var stack []*frame

	visited[entry.ID] = true
	stack = append(stack, &frame{b: entry, succs: entry.Successors()})

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if top.succIdx < len(top.succs) {
			next := top.succs[top.succIdx]
			top.succIdx++
			if !visited[next.ID] {
				visited[next.ID] = true
				stack = append(stack, &frame{b: next, succs: next.Successors()})
			}
			continue
		}
		postOrder = append(postOrder, top.b)
		stack = stack[:len(stack)-1]
	}

	c.reversePostOrder = make([]*BasicBlock, len(postOrder))
	for i, b := range postOrder {
		c.reversePostOrder[len(postOrder)-1-i] = b
	}

	c.postOrderIndex = make(map[int]int, len(c.reversePostOrder))
	for i, b := range c.reversePostOrder {
		c.postOrderIndex[b.ID] = i
	}
}

// calculateDominators is the Cooper-Harvey-Kennedy iterative
// fixed-point algorithm: "A Simple, Fast Dominance Algorithm",
// rice.edu/~keith/EMBED/dom.pdf. Ported from the teacher's
// pass_cfg.go, which computes the identical dominator tree the
// original opt.c's first_common_dominator loop does.
func (c *CFG) calculateDominators() {
	entry := c.fn.EntryBlock()
	if entry == nil {
		return
	}
	// entry.idom is set to itself as the fixed point for the iteration
	// below and is deliberately never reset to nil afterward (spec.md
	// §4.4.2 has the entry's idom end up nil); doms-children construction
	// skips the entry explicitly, and each dominance-frontier walk stops
	// at its join block's own idom before it can reach the entry, so the
	// self-loop is harmless and avoids a special-cased clearing pass.
	entry.idom = entry

	changed := true
	for changed {
		changed = false
		for _, b := range c.reversePostOrder {
			if b == entry {
				continue
			}
			var newIdom *BasicBlock
			b.preds.forEach(func(predID int) {
				pred := c.blockByID(predID)
				if pred == nil || pred.idom == nil {
					return // unreachable predecessor, skip
				}
				if newIdom == nil {
					newIdom = pred
					return
				}
				newIdom = c.intersect(newIdom, pred)
			})
			if newIdom != nil && b.idom != newIdom {
				b.idom = newIdom
				changed = true
			}
		}
	}
}

// intersect walks two candidate dominators up their idom chains until
// they meet, using reverse-postorder position as the "finger" height
// comparison, exactly as the teacher's intersect does.
func (c *CFG) intersect(a, b *BasicBlock) *BasicBlock {
	for a != b {
		for c.postOrderIndex[a.ID] > c.postOrderIndex[b.ID] {
			a = a.idom
		}
		for c.postOrderIndex[b.ID] > c.postOrderIndex[a.ID] {
			b = b.idom
		}
	}
	return a
}

// blockByID is an O(1) lookup: block ids are assigned densely from 0 in
// placement order, so a block's id is exactly its index in c.blocks.
func (c *CFG) blockByID(id int) *BasicBlock {
	if id < 0 || id >= len(c.blocks) {
		return nil
	}
	return c.blocks[id]
}

func (c *CFG) computeDomChildren() {
	entry := c.fn.EntryBlock()
	for _, b := range c.blocks {
		if b == entry || b.idom == nil {
			continue
		}
		b.idom.doms = append(b.idom.doms, b)
	}
}

// computeDominanceFrontiers is opt.c's classic loop: for every block n
// with at least two predecessors, walk each predecessor's idom chain up
// to (but not including) n's own immediate dominator, adding n to every
// block passed along the way.
func (c *CFG) computeDominanceFrontiers() {
	for _, b := range c.blocks {
		c.frontiers[b.ID] = &blockSet{}
	}

	for _, n := range c.blocks {
		if n.preds.count() <= 1 || n.idom == nil {
			continue
		}
		n.preds.forEach(func(predID int) {
			runner := c.blockByID(predID)
			for runner != nil && runner != n.idom {
				c.frontiers[runner.ID].insert(n.ID)
				runner = runner.idom
			}
		})
	}
}

// Frontier returns b's dominance frontier.
func (c *CFG) Frontier(b *BasicBlock) *blockSet {
	return c.frontiers[b.ID]
}

// Blocks returns the blocks this CFG was built over, in program order.
func (c *CFG) Blocks() []*BasicBlock {
	return c.blocks
}
