package ssa

import (
	"github.com/smokesugar/minic/internal/ast"
	"github.com/smokesugar/minic/internal/types"
)

// Builder lowers a resolved AST into a Function's IR, following
// original_source/lang/src/ir_gen.c's G{arena,cur_instr,cur_block,
// first_block_to_be_placed,cur_allocation,next_reg,next_block_id} state
// machine almost field for field.
type Builder struct {
	fn       *Function
	curBlock *BasicBlock

	// pending is the run of most-recently placed blocks that have not
	// yet absorbed a first instruction — ir_gen.c's
	// first_block_to_be_placed. The next emit() call gives every block
	// in this run the same start instruction, the "placeholder
	// absorption" spec.md §4.1 describes.
	pending []*BasicBlock

	slots map[*ast.Symbol]*Slot
}

func irType(t *types.Type) Type {
	switch t.Size {
	case 1:
		return TypeI8
	case 2:
		return TypeI16
	case 4:
		return TypeI32
	case 8:
		return TypeI64
	default:
		panic("BUG: unsupported source type size")
	}
}

// NewBuilder creates a Builder over a fresh Function with a single entry
// block, block id 0, per spec.md §3.
func NewBuilder() *Builder {
	fn := NewFunction()
	b := &Builder{fn: fn, slots: make(map[*ast.Symbol]*Slot)}
	entry := b.newBlock()
	b.placeBlock(entry)
	return b
}

// Function returns the Function under construction.
func (b *Builder) Function() *Function {
	return b.fn
}

func (b *Builder) newBlock() *BasicBlock {
	return b.fn.blockPool.allocate()
}

// placeBlock assigns blk the next block id, links it as the new tail of
// the block list and makes it current, registering it as pending a first
// instruction, per ir_gen.c's place_block.
func (b *Builder) placeBlock(blk *BasicBlock) {
	blk.ID = b.fn.nextBlockID
	b.fn.nextBlockID++

	if b.fn.firstBlock == nil {
		b.fn.firstBlock = blk
	} else {
		tail := b.fn.firstBlock
		for tail.next != nil {
			tail = tail.next
		}
		tail.next = blk
	}
	b.curBlock = blk
	b.pending = append(b.pending, blk)
}

// emit appends in to the function's instruction list, absorbing any
// pending placeholder blocks, per ir_gen.c's emit.
func (b *Builder) emit(in *Instruction) {
	var tail *Instruction
	for t := b.fn.firstInstr; t != nil; t = t.next {
		tail = t
	}
	if tail == nil {
		b.fn.firstInstr = in
	} else {
		tail.next = in
		in.prev = tail
	}

	for _, blk := range b.pending {
		blk.start = in
	}
	b.pending = b.pending[:0]

	in.Block = b.curBlock
	b.curBlock.len++
	b.curBlock.updateEnd()
}

func (b *Builder) newReg() Reg {
	return b.fn.allocReg()
}

// newSlot allocates a stack slot of the given type and appends it to the
// function's slot list, per ir.h's IRAllocation chain.
func (b *Builder) newSlot(ty Type) *Slot {
	s := b.fn.slotPool.allocate()
	s.ID = b.fn.nextSlotID
	b.fn.nextSlotID++
	s.Type = ty

	if b.fn.firstSlot == nil {
		b.fn.firstSlot = s
	} else {
		tail := b.fn.firstSlot
		for tail.next != nil {
			tail = tail.next
		}
		tail.next = s
	}
	return s
}

// Build lowers body (an ast.Block, the whole function) into the
// Function under construction.
func (b *Builder) Build(body *ast.Node) *Function {
	b.lowerBlock(body)
	b.fn.numRegs = int(b.fn.nextReg) - 1
	return b.fn
}

func (b *Builder) lowerBlock(n *ast.Node) {
	for _, stmt := range n.Stmts {
		b.lowerStmt(stmt)
	}
}

func (b *Builder) lowerStmt(n *ast.Node) {
	switch n.Kind {
	case ast.VarDecl:
		slot := b.newSlot(irType(n.DeclType))
		b.slots[n.Sym] = slot
		v := b.lowerExpr(n.Init)
		b.emit(&Instruction{Op: OpStore, Type: slot.Type, Arg0: SlotValue(slot), Arg1: v})

	case ast.Return:
		v := b.lowerExpr(n.ReturnValue)
		b.emit(&Instruction{Op: OpRet, Type: irType(n.ReturnValue.Type), Arg0: v})
		b.placeBlock(b.newBlock())

	case ast.If:
		b.lowerIf(n)

	case ast.While:
		b.lowerWhile(n)

	case ast.Block:
		b.lowerBlock(n)

	default:
		// An expression used as a statement; its value is discarded.
		b.lowerExpr(n)
	}
}

func (b *Builder) lowerIf(n *ast.Node) {
	cond := b.lowerExpr(n.Cond)
	thenBlk := b.newBlock()

	if n.Else != nil {
		elsBlk := b.newBlock()
		endBlk := b.newBlock()
		b.emit(&Instruction{Op: OpBranch, Type: irType(n.Cond.Type), Branch: cond, Then: thenBlk, Else: elsBlk})

		b.placeBlock(thenBlk)
		b.lowerBlock(n.Then)
		b.emit(&Instruction{Op: OpJmp, Jmp: endBlk})

		b.placeBlock(elsBlk)
		if n.Else.Kind == ast.If {
			b.lowerStmt(n.Else)
		} else {
			b.lowerBlock(n.Else)
		}

		b.placeBlock(endBlk)
	} else {
		endBlk := b.newBlock()
		b.emit(&Instruction{Op: OpBranch, Type: irType(n.Cond.Type), Branch: cond, Then: thenBlk, Else: endBlk})

		b.placeBlock(thenBlk)
		b.lowerBlock(n.Then)

		b.placeBlock(endBlk)
	}
}

func (b *Builder) lowerWhile(n *ast.Node) {
	startBlk := b.newBlock()
	bodyBlk := b.newBlock()
	endBlk := b.newBlock()

	b.placeBlock(startBlk)
	cond := b.lowerExpr(n.Cond)
	b.emit(&Instruction{Op: OpBranch, Type: irType(n.Cond.Type), Branch: cond, Then: bodyBlk, Else: endBlk})

	b.placeBlock(bodyBlk)
	b.lowerBlock(n.Then)
	b.emit(&Instruction{Op: OpJmp, Jmp: startBlk})

	b.placeBlock(endBlk)
}

func (b *Builder) lowerExpr(n *ast.Node) Value {
	switch n.Kind {
	case ast.Int:
		dest := b.newReg()
		b.emit(&Instruction{Op: OpImm, Type: irType(n.Type), Dest: dest, Arg0: IntegerValue(n.IntValue)})
		return RegValue(dest)

	case ast.Var:
		slot := b.slots[n.Sym]
		dest := b.newReg()
		b.emit(&Instruction{Op: OpLoad, Type: slot.Type, Dest: dest, Arg0: SlotValue(slot)})
		return RegValue(dest)

	case ast.Cast:
		return b.lowerCast(n)

	case ast.Add, ast.Sub, ast.Mul, ast.Div, ast.Less, ast.Lequal, ast.Nequal, ast.Equal:
		return b.lowerBinOp(n)

	case ast.Assign:
		v := b.lowerExpr(n.Rhs)
		slot := b.slots[n.Lhs.Sym]
		b.emit(&Instruction{Op: OpStore, Type: slot.Type, Arg0: SlotValue(slot), Arg1: v})
		return v

	default:
		panic("BUG: node is not an expression")
	}
}

func (b *Builder) lowerCast(n *ast.Node) Value {
	v := b.lowerExpr(n.CastExpr)
	srcTy := irType(n.CastExpr.Type)
	dstTy := irType(n.Type)

	if srcTy.Size() == dstTy.Size() {
		return v
	}

	dest := b.newReg()
	op := OpTrunc
	if dstTy.Size() > srcTy.Size() {
		if n.CastExpr.Type.Signed {
			op = OpSext
		} else {
			op = OpZext
		}
	}
	b.emit(&Instruction{Op: op, Type: dstTy, TypeSrc: srcTy, Dest: dest, Arg0: v})
	return RegValue(dest)
}

func (b *Builder) lowerBinOp(n *ast.Node) Value {
	l := b.lowerExpr(n.Lhs)
	r := b.lowerExpr(n.Rhs)

	op := binOpcode(n.Kind)
	dest := b.newReg()
	b.emit(&Instruction{Op: op, Type: irType(n.Lhs.Type), Dest: dest, Arg0: l, Arg1: r})
	return RegValue(dest)
}

func binOpcode(k ast.Kind) Opcode {
	switch k {
	case ast.Add:
		return OpAdd
	case ast.Sub:
		return OpSub
	case ast.Mul:
		return OpMul
	case ast.Div:
		return OpDiv
	case ast.Less:
		return OpLess
	case ast.Lequal:
		return OpLequal
	case ast.Nequal:
		return OpNequal
	case ast.Equal:
		return OpEqual
	default:
		panic("BUG: not a binary operator kind")
	}
}
