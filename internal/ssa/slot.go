package ssa

import "fmt"

// Slot is a stack allocation that mem-to-reg attempts to promote into
// registers, grounded on original_source/lang/src/ir.h's
// IRAllocation{id,next,type,_val}. Every local variable declaration
// lowers to exactly one Slot (spec.md §4.1's AST_VAR_DECL rule); its Type
// is the declared type's machine type, set when the slot is created, and
// every store to the slot uses that type.
type Slot struct {
	ID   int
	Type Type
	next *Slot
}

// String renders a slot the way spec.md §6 spells a SlotAddress operand:
// `[alloca N]` using the slot's id.
func (s *Slot) String() string {
	return fmt.Sprintf("[alloca %d]", s.ID)
}
