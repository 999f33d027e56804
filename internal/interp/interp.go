// Package interp implements a small tree-walking-style interpreter over
// internal/ssa's IR: a register file indexed by virtual-register id and
// stack-slot storage keyed by slot identity, walking basic blocks via
// their derived successor sets. Grounded on spec.md §2 step 7 / §6's
// "external interfaces" contract (no original_source/lang interpreter
// source was retained, so this is built directly from the spec — see
// SPEC_FULL.md §13).
package interp

import (
	"github.com/pkg/errors"

	"github.com/smokesugar/minic/internal/ssa"
)

// Interp holds one interpretation run's mutable state: the register file
// and the stack-slot store. Slots are still present when Run is handed
// pre-mem2reg IR (Load/Store of a slot not yet promoted); after mem2reg
// the slot map is simply never touched.
type Interp struct {
	fn    *ssa.Function
	regs  []int64
	slots map[*ssa.Slot]int64
}

// Run executes fn from its entry block to its first Ret instruction and
// returns the returned value. fn may be in any stage of the pipeline
// (raw builder output, folded, or fully promoted to SSA) since the
// interpreter only depends on the Instruction/BasicBlock contracts
// spec.md §3/§6 fix, not on any particular pass having run.
func Run(fn *ssa.Function) (int64, error) {
	it := &Interp{
		fn:    fn,
		regs:  make([]int64, fn.NumRegs()+1),
		slots: make(map[*ssa.Slot]int64),
	}
	return it.run()
}

func (it *Interp) run() (int64, error) {
	cur := it.fn.EntryBlock()
	var prev *ssa.BasicBlock

	for {
		ret, done, next, err := it.runBlock(cur, prev)
		if err != nil {
			return 0, err
		}
		if done {
			return ret, nil
		}
		prev, cur = cur, next
	}
}

// runBlock executes cur's instructions in order until it hits a
// terminator (or falls off the end of an empty/placeholder block), using
// prev to select the incoming edge of any leading Phi instructions.
func (it *Interp) runBlock(cur, prev *ssa.BasicBlock) (ret int64, done bool, next *ssa.BasicBlock, err error) {
	for _, in := range cur.Instructions() {
		switch in.Op {
		case ssa.OpPhi:
			it.regs[in.Dest] = it.selectPhi(in, prev)

		case ssa.OpRet:
			return it.readValue(in.Arg0), true, nil, nil

		case ssa.OpJmp:
			return 0, false, in.Jmp, nil

		case ssa.OpBranch:
			if it.readValue(in.Branch) != 0 {
				return 0, false, in.Then, nil
			}
			return 0, false, in.Else, nil

		default:
			if err := it.exec(in); err != nil {
				return 0, false, nil, err
			}
		}
	}

	succs := cur.Successors()
	if len(succs) == 0 {
		return 0, false, nil, errors.Errorf("%s has no terminator and no successor", cur)
	}
	return 0, false, succs[0], nil
}

// selectPhi picks the phi parameter whose predecessor block matches prev,
// combining Instruction.Phi and Instruction.Params the way printer.go's
// phiParams walk does, but from outside the ssa package using only its
// exported fields.
func (it *Interp) selectPhi(in *ssa.Instruction, prev *ssa.BasicBlock) int64 {
	if in.Phi.Block == prev {
		return it.regs[in.Phi.Reg]
	}
	for _, p := range in.Params {
		if p.Block == prev {
			return it.regs[p.Reg]
		}
	}
	panic("BUG: phi has no parameter for the incoming edge")
}

// exec executes one non-terminator, non-phi instruction, writing its
// result (if any) into the register file or slot store.
func (it *Interp) exec(in *ssa.Instruction) error {
	switch in.Op {
	case ssa.OpImm:
		it.regs[in.Dest] = truncate(in.Arg0.Integer, in.Type)

	case ssa.OpCopy:
		it.regs[in.Dest] = it.readValue(in.Arg0)

	case ssa.OpLoad:
		it.regs[in.Dest] = it.slots[in.Arg0.Slot]

	case ssa.OpStore:
		it.slots[in.Arg0.Slot] = it.readValue(in.Arg1)

	case ssa.OpSext:
		it.regs[in.Dest] = signExtend(it.readValue(in.Arg0), in.TypeSrc)

	case ssa.OpZext:
		it.regs[in.Dest] = zeroExtend(it.readValue(in.Arg0), in.TypeSrc)

	case ssa.OpTrunc:
		it.regs[in.Dest] = truncate(it.readValue(in.Arg0), in.Type)

	case ssa.OpAdd:
		l, r := it.readValue(in.Arg0), it.readValue(in.Arg1)
		it.regs[in.Dest] = truncate(l+r, in.Type)

	case ssa.OpSub:
		l, r := it.readValue(in.Arg0), it.readValue(in.Arg1)
		it.regs[in.Dest] = truncate(l-r, in.Type)

	case ssa.OpMul:
		l, r := it.readValue(in.Arg0), it.readValue(in.Arg1)
		it.regs[in.Dest] = truncate(l*r, in.Type)

	case ssa.OpDiv:
		l, r := it.readValue(in.Arg0), it.readValue(in.Arg1)
		if r == 0 {
			return errors.New("division by zero")
		}
		it.regs[in.Dest] = truncate(l/r, in.Type)

	case ssa.OpLess:
		it.regs[in.Dest] = boolInt(it.readValue(in.Arg0) < it.readValue(in.Arg1))
	case ssa.OpLequal:
		it.regs[in.Dest] = boolInt(it.readValue(in.Arg0) <= it.readValue(in.Arg1))
	case ssa.OpNequal:
		it.regs[in.Dest] = boolInt(it.readValue(in.Arg0) != it.readValue(in.Arg1))
	case ssa.OpEqual:
		it.regs[in.Dest] = boolInt(it.readValue(in.Arg0) == it.readValue(in.Arg1))

	default:
		panic("BUG: unexpected opcode reached the interpreter's non-terminator dispatch")
	}
	return nil
}

// readValue resolves an operand Value to its runtime int64, per spec.md
// §3's tagged-union Value contract: a register reads the register file,
// an integer literal is itself, and a slot address is never a general
// operand (it only ever appears as Load/Store's dedicated loc field).
func (it *Interp) readValue(v ssa.Value) int64 {
	switch v.Kind {
	case ssa.ValueRegister:
		return it.regs[v.Reg]
	case ssa.ValueInteger:
		return v.Integer
	default:
		panic("BUG: slot address used as a general operand")
	}
}

func boolInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

// truncate narrows v to ty's bit width and sign-extends back to int64,
// matching the Trunc instruction's runtime behavior.
func truncate(v int64, ty ssa.Type) int64 {
	bits := uint(ty.Size()) * 8
	if bits >= 64 {
		return v
	}
	shift := 64 - bits
	return (v << shift) >> shift
}

// signExtend widens a value from a narrower type by replicating its sign
// bit, matching the Sext instruction.
func signExtend(v int64, from ssa.Type) int64 {
	return truncate(v, from)
}

// zeroExtend widens a value from a narrower type by masking off any bits
// above its width, matching the Zext instruction.
func zeroExtend(v int64, from ssa.Type) int64 {
	bits := uint(from.Size()) * 8
	if bits >= 64 {
		return v
	}
	return v & (int64(1)<<bits - 1)
}
