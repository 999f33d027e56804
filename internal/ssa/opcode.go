package ssa

// Type is a first-class IR machine type: a fixed-width integer. This is
// the complete type set spec.md §3 defines; unlike the teacher's
// ssa/types.go (which also carries TypeF32/TypeF64 for Wasm's float
// lanes), this language is integer-only so the floating types are
// dropped.
type Type byte

const (
	TypeI8 Type = 1 + iota
	TypeI16
	TypeI32
	TypeI64
)

// String implements fmt.Stringer, spelling types exactly as spec.md §6's
// textual IR format requires.
func (t Type) String() string {
	switch t {
	case TypeI8:
		return "i8"
	case TypeI16:
		return "i16"
	case TypeI32:
		return "i32"
	case TypeI64:
		return "i64"
	default:
		panic("BUG: invalid Type")
	}
}

// Size returns the type's width in bytes.
func (t Type) Size() int {
	switch t {
	case TypeI8:
		return 1
	case TypeI16:
		return 2
	case TypeI32:
		return 4
	case TypeI64:
		return 8
	default:
		panic("BUG: invalid Type")
	}
}

// Opcode identifies the operation an Instruction performs. The set and
// the textual spellings below are taken directly from
// original_source/lang/src/ir.h's IROpCode enum and ir.c's print_ir,
// per spec.md §3/§6. Doc-comment density per opcode follows the
// teacher's ssa/instructions.go convention of a one-line backtick
// signature per opcode.
type Opcode int

const (
	OpIllegal Opcode = iota

	// OpImm materializes an integer literal: `%reg = imm TYPE VALUE`.
	OpImm
	// OpPhi selects a value based on which predecessor block control
	// arrived from: `%reg = phi TYPE [%reg, bb.ID], ...`.
	OpPhi
	// OpCopy aliases a value under a new register: `%reg = copy TYPE VALUE`.
	OpCopy
	// OpLoad reads a stack slot: `%reg = load TYPE VALUE`.
	OpLoad
	// OpStore writes a stack slot: `store TYPE LOC, SRC`.
	OpStore
	// OpSext sign-extends: `%reg = sext TYPE_SRC VALUE to TYPE_DEST`.
	OpSext
	// OpZext zero-extends: `%reg = zext TYPE_SRC VALUE to TYPE_DEST`.
	OpZext
	// OpTrunc narrows: `%reg = trunc TYPE_SRC VALUE to TYPE_DEST`.
	OpTrunc
	// OpAdd: `%reg = add TYPE L, R`.
	OpAdd
	// OpSub: `%reg = sub TYPE L, R`.
	OpSub
	// OpMul: `%reg = mul TYPE L, R`.
	OpMul
	// OpDiv: `%reg = div TYPE L, R`.
	OpDiv
	// OpLess: `%reg = cmp lt TYPE L, R`.
	OpLess
	// OpLequal: `%reg = cmp le TYPE L, R`.
	OpLequal
	// OpNequal: `%reg = cmp ne TYPE L, R`.
	OpNequal
	// OpEqual: `%reg = cmp eq TYPE L, R`.
	OpEqual
	// OpRet terminates the function: `ret TYPE VALUE`.
	OpRet
	// OpJmp is an unconditional terminator: `jmp bb.ID`.
	OpJmp
	// OpBranch is a conditional terminator: `branch TYPE COND, bb.ID, bb.ID`.
	OpBranch
)

var opcodeNames = map[Opcode]string{
	OpImm: "imm", OpPhi: "phi", OpCopy: "copy", OpLoad: "load", OpStore: "store",
	OpSext: "sext", OpZext: "zext", OpTrunc: "trunc",
	OpAdd: "add", OpSub: "sub", OpMul: "mul", OpDiv: "div",
	OpLess: "lt", OpLequal: "le", OpNequal: "ne", OpEqual: "eq",
	OpRet: "ret", OpJmp: "jmp", OpBranch: "branch",
}

// String implements fmt.Stringer.
func (op Opcode) String() string {
	if s, ok := opcodeNames[op]; ok {
		return s
	}
	return "illegal"
}

// IsTerminator reports whether op ends a basic block, per spec.md §3's
// basic-block successor-derivation rule.
func (op Opcode) IsTerminator() bool {
	return op == OpRet || op == OpJmp || op == OpBranch
}

// HasResult reports whether op defines a register result.
func (op Opcode) HasResult() bool {
	switch op {
	case OpImm, OpPhi, OpCopy, OpLoad, OpSext, OpZext, OpTrunc,
		OpAdd, OpSub, OpMul, OpDiv, OpLess, OpLequal, OpNequal, OpEqual:
		return true
	default:
		return false
	}
}
