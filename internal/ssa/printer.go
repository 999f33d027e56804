package ssa

import (
	"fmt"
	"strings"
)

// Print renders fn's instructions in the textual format spec.md §6 fixes
// exactly: a `bb.ID:` header precedes each non-empty block's first
// instruction (empty blocks are printed last), one instruction per line,
// and two trailing newlines end the output. Grounded on
// original_source/lang/src/ir.c's print_ir and the teacher builder's own
// Format, which walks blocks then instructions the same way.
func Print(fn *Function) string {
	str := strings.Builder{}

	var nonEmpty, empty []*BasicBlock
	for _, b := range fn.Blocks() {
		if b.len > 0 {
			nonEmpty = append(nonEmpty, b)
		} else {
			empty = append(empty, b)
		}
	}

	for _, b := range nonEmpty {
		str.WriteString(b.String())
		str.WriteByte(':')
		str.WriteByte('\n')
		for _, in := range b.Instructions() {
			str.WriteString("  ")
			str.WriteString(formatInstruction(in))
			str.WriteByte('\n')
		}
	}
	for _, b := range empty {
		str.WriteString(b.String())
		str.WriteByte(':')
		str.WriteByte('\n')
	}

	str.WriteByte('\n')
	str.WriteByte('\n')
	return str.String()
}

func formatInstruction(in *Instruction) string {
	switch in.Op {
	case OpImm:
		return fmt.Sprintf("%%%d = imm %s %s", in.Dest, in.Type, in.Arg0)

	case OpPhi:
		var parts []string
		for _, p := range in.phiParams() {
			parts = append(parts, fmt.Sprintf("[%%%d, %s]", p.Reg, p.Block))
		}
		return fmt.Sprintf("%%%d = phi %s %s", in.Dest, in.Type, strings.Join(parts, ", "))

	case OpCopy:
		return fmt.Sprintf("%%%d = copy %s %s", in.Dest, in.Type, in.Arg0)

	case OpLoad:
		return fmt.Sprintf("%%%d = load %s %s", in.Dest, in.Type, in.Arg0)

	case OpStore:
		return fmt.Sprintf("store %s %s, %s", in.Type, in.Arg0, in.Arg1)

	case OpSext:
		return fmt.Sprintf("%%%d = sext %s %s to %s", in.Dest, in.TypeSrc, in.Arg0, in.Type)
	case OpZext:
		return fmt.Sprintf("%%%d = zext %s %s to %s", in.Dest, in.TypeSrc, in.Arg0, in.Type)
	case OpTrunc:
		return fmt.Sprintf("%%%d = trunc %s %s to %s", in.Dest, in.TypeSrc, in.Arg0, in.Type)

	case OpAdd, OpSub, OpMul, OpDiv:
		return fmt.Sprintf("%%%d = %s %s %s, %s", in.Dest, in.Op, in.Type, in.Arg0, in.Arg1)

	case OpLess, OpLequal, OpNequal, OpEqual:
		return fmt.Sprintf("%%%d = cmp %s %s %s, %s", in.Dest, in.Op, in.Type, in.Arg0, in.Arg1)

	case OpRet:
		return fmt.Sprintf("ret %s %s", in.Type, in.Arg0)
	case OpJmp:
		return fmt.Sprintf("jmp %s", in.Jmp)
	case OpBranch:
		return fmt.Sprintf("branch %s %s, %s, %s", in.Type, in.Branch, in.Then, in.Else)

	default:
		panic("BUG: illegal opcode in formatInstruction")
	}
}

// PrintGraphviz renders the CFG as a Graphviz digraph, one edge per CFG
// edge, blocks in list order and successors in natural order, per
// spec.md §6's Graphviz emitter contract.
func PrintGraphviz(fn *Function) string {
	str := strings.Builder{}
	str.WriteString("digraph G {\n")
	for _, b := range fn.Blocks() {
		for _, s := range b.Successors() {
			str.WriteString(fmt.Sprintf("\t%s -> %s;\n", b, s))
		}
	}
	str.WriteString("}\n")
	return str.String()
}
