package ssa

import "fmt"

// Reg is a virtual register id. Register 0 is reserved (never assigned to
// a real definition) and RegEmpty marks an as-yet-unfilled operand slot
// (a phi parameter awaiting renaming), per spec.md §3 and
// original_source/lang/src/ir.h's `IR_EMPTY_REG = UINT32_MAX`.
type Reg uint32

// RegEmpty is the placeholder register written into a freshly inserted
// phi parameter before the renaming pass fills it in.
const RegEmpty Reg = 1<<32 - 1

// ValueKind discriminates Value's tagged union.
type ValueKind byte

const (
	ValueIllegal ValueKind = iota
	// ValueRegister holds the result of some earlier instruction.
	ValueRegister
	// ValueInteger is an immediate literal operand.
	ValueInteger
	// ValueSlotAddress names a stack slot directly, used only as the
	// `loc` operand of Load/Store.
	ValueSlotAddress
)

// Value is a tagged union over an instruction operand: a register
// reference, an integer literal, or a stack slot address. spec.md §3
// requires a true tagged union here (unlike the teacher's vs.go, which
// packs a type tag into a uint64 register id) because literal operands
// and slot addresses must be representable directly, not just through an
// indirection into another instruction.
type Value struct {
	Kind    ValueKind
	Reg     Reg
	Integer int64
	Slot    *Slot
}

// RegValue wraps a register as a Value.
func RegValue(r Reg) Value {
	return Value{Kind: ValueRegister, Reg: r}
}

// IntegerValue wraps an integer literal as a Value.
func IntegerValue(v int64) Value {
	return Value{Kind: ValueInteger, Integer: v}
}

// SlotValue wraps a stack slot address as a Value.
func SlotValue(s *Slot) Value {
	return Value{Kind: ValueSlotAddress, Slot: s}
}

// String renders a Value in spec.md §6's textual format: `%reg`, a bare
// decimal literal, or the slot's name.
func (v Value) String() string {
	switch v.Kind {
	case ValueRegister:
		return fmt.Sprintf("%%%d", v.Reg)
	case ValueInteger:
		return fmt.Sprintf("%d", v.Integer)
	case ValueSlotAddress:
		return v.Slot.String()
	default:
		panic("BUG: illegal Value")
	}
}
