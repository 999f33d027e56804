package ssa

// Function is the full IR for one compiled function body: a linked list
// of instructions, a linked list of basic blocks, and a linked list of
// stack slots, plus the virtual-register counters. Grounded on
// original_source/lang/src/ir.h's IR{first_instr,first_block,
// first_allocation,next_reg,num_regs} and the teacher's builder's
// arena-backed state, per spec.md §3.
type Function struct {
	firstInstr *Instruction
	firstBlock *BasicBlock
	firstSlot  *Slot

	nextReg Reg
	numRegs int

	instrPool pool[Instruction]
	blockPool pool[BasicBlock]
	slotPool  pool[Slot]
	scratch   scratchPool

	nextBlockID int
	nextSlotID  int
}

// NewFunction allocates a fresh, empty Function. Register 0 is reserved
// (per spec.md §3, "0 = none"), so the first real register allocated is
// 1.
func NewFunction() *Function {
	f := &Function{
		instrPool: newPool[Instruction](),
		blockPool: newPool[BasicBlock](),
		slotPool:  newPool[Slot](),
	}
	f.nextReg = 1
	return f
}

// Reset reclaims a Function's arenas for a new compilation, following
// the teacher's builder.Reset() pattern of zeroing pools rather than
// reallocating them.
func (f *Function) Reset() {
	f.instrPool.reset()
	f.blockPool.reset()
	f.slotPool.reset()
	f.firstInstr = nil
	f.firstBlock = nil
	f.firstSlot = nil
	f.nextReg = 1
	f.numRegs = 0
	f.nextBlockID = 0
	f.nextSlotID = 0
}

// allocReg returns a fresh virtual register id.
func (f *Function) allocReg() Reg {
	r := f.nextReg
	f.nextReg++
	return r
}

// Blocks returns every basic block in program order.
func (f *Function) Blocks() []*BasicBlock {
	var out []*BasicBlock
	for b := f.firstBlock; b != nil; b = b.next {
		out = append(out, b)
	}
	return out
}

// Slots returns every stack slot in declaration order.
func (f *Function) Slots() []*Slot {
	var out []*Slot
	for s := f.firstSlot; s != nil; s = s.next {
		out = append(out, s)
	}
	return out
}

// EntryBlock returns the function's entry block, always block id 0 per
// spec.md §3.
func (f *Function) EntryBlock() *BasicBlock {
	return f.firstBlock
}

// NumRegs returns the next register id to be allocated: one more than the
// number of registers allocated so far, since register 0 is reserved. It
// bounds every register id in fn, and fold.go sizes its hash table at
// 2*NumRegs per spec.md §4.3.
func (f *Function) NumRegs() int {
	return int(f.nextReg)
}
