package ssa

// mem2reg holds the working state of one promote-to-SSA run: per-block
// per-slot liveness bitsets, the dominance-frontier-driven phi worklist,
// and the dominator-tree renaming walk. Grounded directly on
// original_source/lang/src/opt.c's mem2reg/promote_allocations.
type mem2reg struct {
	fn     *Function
	cfg    *CFG
	blocks []*BasicBlock
	slots  []*Slot

	varKill []bitset
	ueVar   []bitset
	liveOut []bitset

	// phiSlot records which Slot each inserted Phi instruction promotes,
	// bookkeeping opt.c keeps via the phi's `a` (allocation) field
	// directly on IRInstr; kept as a side table here since Instruction
	// only needs to carry this transiently, during construction.
	phiSlot map[*Instruction]*Slot
	hasPhi  map[int]map[int]*Instruction // block id -> slot id -> phi instr

	curRegs []Reg
}

// PromoteToSSA runs mem-to-reg promotion over every stack slot in fn,
// per spec.md §4.4: computing per-slot liveness, inserting pruned phi
// nodes at dominance-frontier blocks that need them, and renaming every
// Load/Store into direct register references via a dominator-tree walk.
func PromoteToSSA(fn *Function) {
	slots := fn.Slots()
	if len(slots) == 0 {
		return
	}

	cfg := BuildCFG(fn)
	m := &mem2reg{
		fn:      fn,
		cfg:     cfg,
		blocks:  cfg.Blocks(),
		slots:   slots,
		phiSlot: make(map[*Instruction]*Slot),
		hasPhi:  make(map[int]map[int]*Instruction),
	}

	m.computeLiveness()
	m.insertPhis()

	m.curRegs = make([]Reg, len(slots))
	for i := range m.curRegs {
		m.curRegs[i] = RegEmpty
	}
	m.rename(fn.EntryBlock())
}

func (m *mem2reg) slotIndex(s *Slot) int {
	for i, sl := range m.slots {
		if sl == s {
			return i
		}
	}
	panic("BUG: slot not registered with this mem2reg pass")
}

// computeLiveness computes var_kill/ue_var per block (a single linear
// scan of each block's instructions) and then the live_out fixed point
// over the whole CFG, per spec.md §4.4.4.
func (m *mem2reg) computeLiveness() {
	n := len(m.blocks)
	numSlots := len(m.slots)

	m.varKill = make([]bitset, n)
	m.ueVar = make([]bitset, n)
	m.liveOut = make([]bitset, n)
	for i := 0; i < n; i++ {
		m.varKill[i] = newBitset(numSlots)
		m.ueVar[i] = newBitset(numSlots)
		m.liveOut[i] = newBitset(numSlots)
	}

	for _, b := range m.blocks {
		vk := &m.varKill[b.ID]
		ue := &m.ueVar[b.ID]
		for _, in := range b.Instructions() {
			switch in.Op {
			case OpLoad:
				if in.Arg0.Kind == ValueSlotAddress {
					idx := m.slotIndex(in.Arg0.Slot)
					if !vk.get(idx) {
						ue.set(idx)
					}
				}
			case OpStore:
				if in.Arg0.Kind == ValueSlotAddress {
					idx := m.slotIndex(in.Arg0.Slot)
					vk.set(idx)
				}
			}
		}
	}

	changed := true
	for changed {
		changed = false
		for _, b := range m.blocks {
			newOut := newBitset(numSlots)
			for _, s := range b.Successors() {
				liveIn := newBitset(numSlots)
				orAndNot(&liveIn, &m.ueVar[s.ID], &m.liveOut[s.ID], &m.varKill[s.ID])
				for i := range newOut.words {
					newOut.words[i] |= liveIn.words[i]
				}
			}
			if !bitsetEqual(&newOut, &m.liveOut[b.ID]) {
				m.liveOut[b.ID] = newOut
				changed = true
			}
		}
	}
}

func bitsetEqual(a, b *bitset) bool {
	for i := range a.words {
		if a.words[i] != b.words[i] {
			return false
		}
	}
	return true
}

// insertPhis is the classic Cytron worklist algorithm, pruned by
// liveness: a phi is only inserted at a dominance-frontier block d when
// the slot is live out of d or used upward-exposed within d itself,
// matching opt.c's `phi_needed` check.
func (m *mem2reg) insertPhis() {
	for slotIdx, slot := range m.slots {
		var worklist []*BasicBlock
		inWorklist := make(map[int]bool)

		for _, b := range m.blocks {
			if m.varKill[b.ID].get(slotIdx) {
				worklist = append(worklist, b)
				inWorklist[b.ID] = true
			}
		}

		for len(worklist) > 0 {
			n := worklist[len(worklist)-1]
			worklist = worklist[:len(worklist)-1]

			m.cfg.Frontier(n).forEach(func(dID int) {
				d := m.blocks[dID]
				if m.hasPhi[d.ID] != nil && m.hasPhi[d.ID][slotIdx] != nil {
					return
				}
				phiNeeded := m.liveOut[d.ID].get(slotIdx) || m.ueVar[d.ID].get(slotIdx)
				if !phiNeeded {
					return
				}
				m.insertPhi(d, slot, slotIdx)
				if !inWorklist[d.ID] {
					inWorklist[d.ID] = true
					worklist = append(worklist, d)
				}
			})
		}
	}
}

// insertPhi inserts a new phi instruction for slot at the start of d,
// with one parameter per predecessor (in sorted predecessor order for
// determinism, per spec.md §5), registers left at RegEmpty until
// renaming fills them in.
func (m *mem2reg) insertPhi(d *BasicBlock, slot *Slot, slotIdx int) {
	params := make([]PhiParam, 0, d.preds.count())
	d.preds.forEach(func(predID int) {
		params = append(params, PhiParam{Block: m.blocks[predID], Reg: RegEmpty})
	})

	phi := &Instruction{Op: OpPhi, Type: slot.Type}
	phi.setPhiParams(params)

	m.fn.insertInstructionAtBlockStart(phi, d)

	m.phiSlot[phi] = slot
	if m.hasPhi[d.ID] == nil {
		m.hasPhi[d.ID] = make(map[int]*Instruction)
	}
	m.hasPhi[d.ID][slotIdx] = phi
}

// rename is promote_allocations: a dominator-tree-walk that assigns
// fresh registers to every phi and slot write, rewrites Store/Load into
// Copy instructions carrying the slot's current SSA value, patches
// successors' phi parameters, then recurses into dominator-tree
// children before restoring m.curRegs on the way back up.
func (m *mem2reg) rename(b *BasicBlock) {
	saved := append([]Reg(nil), m.curRegs...)

	if b.len > 0 {
		in := b.start
		for i := 0; i < b.len; i++ {
			next := in.next
			m.renameInstruction(b, in)
			in = next
		}
	}

	for _, s := range b.Successors() {
		if s.len == 0 {
			continue
		}
		for _, in := range s.Instructions() {
			if in.Op != OpPhi {
				break
			}
			slot := m.phiSlot[in]
			if slot == nil {
				continue
			}
			params := in.phiParams()
			for i := range params {
				if params[i].Block == b {
					params[i].Reg = m.curRegs[m.slotIndex(slot)]
				}
			}
			in.setPhiParams(params)
		}
	}

	for _, child := range b.doms {
		m.rename(child)
	}

	m.curRegs = saved
}

func (m *mem2reg) renameInstruction(b *BasicBlock, in *Instruction) {
	switch in.Op {
	case OpPhi:
		slot := m.phiSlot[in]
		if slot == nil {
			return
		}
		dest := m.fn.allocReg()
		in.Dest = dest
		m.curRegs[m.slotIndex(slot)] = dest

	case OpStore:
		if in.Arg0.Kind != ValueSlotAddress {
			return
		}
		slot := in.Arg0.Slot
		src := in.Arg1
		dest := m.fn.allocReg()
		in.Op = OpCopy
		in.Type = slot.Type
		in.Dest = dest
		in.Arg0 = src
		in.Arg1 = Value{}
		m.curRegs[m.slotIndex(slot)] = dest

	case OpLoad:
		if in.Arg0.Kind != ValueSlotAddress {
			return
		}
		slot := in.Arg0.Slot
		in.Op = OpCopy
		in.Arg0 = RegValue(m.curRegs[m.slotIndex(slot)])
		in.Arg1 = Value{}
	}
}
