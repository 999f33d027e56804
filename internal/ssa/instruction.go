package ssa

// PhiParam is one incoming edge of a phi instruction: the predecessor
// block it comes from, and the register carrying the value along that
// edge. Newly inserted phis start every param's Reg at RegEmpty until the
// mem2reg renaming walk fills it in, per spec.md §4.4.5.
type PhiParam struct {
	Block *BasicBlock
	Reg   Reg
}

// Instruction is one IR instruction. It carries every opcode's operand
// fields directly (rather than through an interface per opcode) so the
// doubly linked list machinery in this file can stay opcode-agnostic,
// mirroring original_source/lang/src/ir.h's tagged-union IRInstr.
type Instruction struct {
	Op   Opcode
	Type Type
	Dest Reg

	// Arg0/Arg1 hold the two general operands for Imm (Arg0=literal),
	// Copy/Load (Arg0=source), Store (Arg0=loc, Arg1=src), binary ops
	// (Arg0=L, Arg1=R), casts (Arg0=source value), and Ret (Arg0=value).
	Arg0 Value
	Arg1 Value

	// TypeSrc is the source type of a Sext/Zext/Trunc; Type is the
	// destination type in that case.
	TypeSrc Type

	Phi PhiParam
	// Params, beyond Phi, hold the remaining phi incoming edges: the
	// builder and mem2reg always treat Phi and Params[0:] together as
	// one param list; Phi is kept as a dedicated first slot only to
	// mirror ir.h's `a` field shape, Params holds the rest.
	Params []PhiParam

	Jmp    *BasicBlock
	Then   *BasicBlock
	Else   *BasicBlock
	Branch Value

	Block *BasicBlock
	prev  *Instruction
	next  *Instruction
}

// phiParams returns every incoming edge of a phi instruction in order.
func (in *Instruction) phiParams() []PhiParam {
	if in.Op != OpPhi {
		return nil
	}
	all := make([]PhiParam, 0, 1+len(in.Params))
	if in.Phi.Block != nil {
		all = append(all, in.Phi)
	}
	all = append(all, in.Params...)
	return all
}

// setPhiParams replaces a phi instruction's incoming edges.
func (in *Instruction) setPhiParams(params []PhiParam) {
	if len(params) == 0 {
		in.Phi = PhiParam{}
		in.Params = nil
		return
	}
	in.Phi = params[0]
	in.Params = append([]PhiParam(nil), params[1:]...)
}

// remove unlinks in from its function's instruction list and from its
// block, repairing the block's start/len bookkeeping exactly as
// original_source/lang/src/ir.c's remove_ir_instr does: if in was a
// block's start instruction, every block whose start pointed at in is
// repointed at in's successor.
func (f *Function) removeInstruction(in *Instruction) {
	b := in.Block

	if in.prev != nil {
		in.prev.next = in.next
	}
	if in.next != nil {
		in.next.prev = in.prev
	}
	if f.firstInstr == in {
		f.firstInstr = in.next
	}

	if b.start == in {
		for blk := f.firstBlock; blk != nil; blk = blk.next {
			if blk.start == in {
				blk.start = in.next
			}
		}
	}
	b.len--
	b.updateEnd()

	in.prev, in.next, in.Block = nil, nil, nil
}

// insertInstructionBefore splices in immediately before after, joining
// in's block to after's, per ir.c's insert_ir_instr_before.
func (f *Function) insertInstructionBefore(in, after *Instruction) {
	in.Block = after.Block

	if after.Block.start == after {
		for blk := f.firstBlock; blk != nil; blk = blk.next {
			if blk.start == after {
				blk.start = in
			}
		}
	}

	in.prev = after.prev
	in.next = after
	if after.prev != nil {
		after.prev.next = in
	} else {
		f.firstInstr = in
	}
	after.prev = in

	in.Block.len++
	in.Block.updateEnd()
}

// insertInstructionAtBlockStart inserts in as b's new first instruction.
// When b already contains instructions this splices before the current
// start. When b is still an empty placeholder block, in is appended to
// the very end of the function's instruction list, and — because several
// empty blocks may all currently share the same (absent) start pointer —
// every block whose start matches b's former start is repointed at in.
// This is the same linear all-blocks scan as ir.c's
// insert_ir_instr_at_block_start; spec.md §9 flags it as quadratic in
// pathological programs with many trailing empty blocks, and elects not
// to optimize it, so it is kept exactly as the original does it.
func (f *Function) insertInstructionAtBlockStart(in *Instruction, b *BasicBlock) {
	in.Block = b

	if b.start != nil {
		f.insertInstructionBefore(in, b.start)
		return
	}

	oldStart := b.start // nil
	var tail *Instruction
	for t := f.firstInstr; t != nil; t = t.next {
		tail = t
	}
	in.prev = tail
	in.next = nil
	if tail != nil {
		tail.next = in
	} else {
		f.firstInstr = in
	}

	for blk := f.firstBlock; blk != nil; blk = blk.next {
		if blk.start == oldStart && blk.len == 0 {
			blk.start = in
		}
	}

	b.len++
	b.updateEnd()
}
