package ssa

import "fmt"

// BasicBlock is a contiguous run of instructions over the function's
// shared instruction list, identified by its start instruction and
// length rather than owning its own instruction slice. This mirrors
// original_source/lang/src/ir.h's IRBasicBlock{id,next,start,end,len}
// and the teacher's basicBlock (id, rootInstr/currentInstr) — both
// represent a block as a window into one linked list instead of a
// separate per-block container.
type BasicBlock struct {
	ID  int
	end *Instruction

	start *Instruction
	len   int

	next *BasicBlock

	idom  *BasicBlock
	preds blockSet
	doms  []*BasicBlock // children in the dominator tree
}

// String implements fmt.Stringer, spelling a block reference the way
// spec.md §6 requires: `bb.ID`.
func (b *BasicBlock) String() string {
	return fmt.Sprintf("bb.%d", b.ID)
}

// updateEnd recomputes b.end by walking len-1 instructions forward from
// b.start, matching ir.c's bb_update_end.
func (b *BasicBlock) updateEnd() {
	if b.start == nil {
		b.end = nil
		return
	}
	in := b.start
	for i := 0; i < b.len-1; i++ {
		in = in.next
	}
	b.end = in
}

// Successors returns b's successor blocks, derived from its terminating
// instruction, per ir.c's bb_get_succ: Ret has none, Jmp has its target,
// Branch has both arms, and a block with no terminating instruction
// falls through to the block that begins right after it in program
// order. A still-empty block (len==0) has no instruction of its own to
// inspect; its successor is whichever block owns the instruction its
// start pointer was absorbed into — the "absorbed placeholder" case
// spec.md §4.1 describes, where several empty blocks placed back to
// back all point at the one real instruction emitted after them.
func (b *BasicBlock) Successors() []*BasicBlock {
	if b.len == 0 {
		if b.start != nil {
			return []*BasicBlock{b.start.Block}
		}
		return nil
	}

	last := b.end
	switch last.Op {
	case OpRet:
		return nil
	case OpJmp:
		return []*BasicBlock{last.Jmp}
	case OpBranch:
		return []*BasicBlock{last.Then, last.Else}
	default:
		if last.next != nil {
			return []*BasicBlock{last.next.Block}
		}
		return nil
	}
}

// Instructions returns b's instructions in order.
func (b *BasicBlock) Instructions() []*Instruction {
	if b.len == 0 {
		return nil
	}
	out := make([]*Instruction, 0, b.len)
	in := b.start
	for i := 0; i < b.len; i++ {
		out = append(out, in)
		in = in.next
	}
	return out
}
