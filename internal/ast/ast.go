// Package ast defines the typed abstract syntax tree produced by
// internal/parser and annotated by internal/sema. Node kinds follow
// original_source/lang/src/ast.h's ASTKind enum, supplemented with the
// If/While/Cast node shapes that a later revision of ast.h clearly
// carried (original_source/lang/src/ir_gen.c's lowering switch consumes
// ast->conditional.cond/.then/.els and ast->cast.expr, which the captured
// ast.h snapshot predates — see SPEC_FULL.md §13).
package ast

import (
	"github.com/smokesugar/minic/internal/token"
	"github.com/smokesugar/minic/internal/types"
)

// Kind discriminates Node's tagged union.
type Kind int

const (
	Illegal Kind = iota
	Int
	Var
	Cast
	Add
	Sub
	Mul
	Div
	Less
	Lequal
	Nequal
	Equal
	Assign
	Block
	Return
	VarDecl
	If
	While
)

// Symbol is what a Var node resolves to: the declaration it refers to
// and that declaration's slot-bearing Type.
type Symbol struct {
	Name string
	Type *types.Type
}

// Node is a single AST node, used both for the parser's raw output and
// for the tree internal/sema annotates in place. A Var node starts life
// with only Name set (the parser doesn't know scoping); sema fills in Sym
// and Type once it resolves the reference. Int and Cast nodes carry their
// Type from construction (literal default type, or the type named by the
// cast); sema sets the Type of binary-operator and assignment nodes, and
// a VarDecl carries its declared type in DeclType. Per spec.md §6's
// "analyzer input contract", the builder only ever sees fully resolved
// nodes.
type Node struct {
	Kind Kind
	Tok  token.Token
	Type *types.Type

	// Int
	IntValue int64

	// Var: Name is set by the parser; Sym is filled in by sema.
	Name string
	Sym  *Symbol

	// Cast
	CastExpr *Node

	// Add/Sub/Mul/Div/Less/Lequal/Nequal/Equal/Assign
	Lhs *Node
	Rhs *Node

	// Block
	Stmts []*Node

	// Return
	ReturnValue *Node

	// VarDecl: DeclType is the declared type spelled in source; Sym is
	// filled in by sema once the symbol is entered into scope.
	DeclType *types.Type
	Init     *Node

	// If/While
	Cond *Node
	Then *Node
	Else *Node // nil when there is no else clause (If only)
}

// NewInt builds an integer literal node.
func NewInt(tok token.Token, v int64, ty *types.Type) *Node {
	return &Node{Kind: Int, Tok: tok, Type: ty, IntValue: v}
}

// NewVarRef builds an unresolved variable-reference node; sema fills in
// Sym and Type.
func NewVarRef(tok token.Token, name string) *Node {
	return &Node{Kind: Var, Tok: tok, Name: name}
}

// NewCast builds an explicit or implicit cast node.
func NewCast(tok token.Token, expr *Node, ty *types.Type) *Node {
	return &Node{Kind: Cast, Tok: tok, Type: ty, CastExpr: expr}
}

// NewBinOp builds a binary-operator node; its Type is left nil until sema
// resolves operand promotion.
func NewBinOp(kind Kind, tok token.Token, lhs, rhs *Node) *Node {
	return &Node{Kind: kind, Tok: tok, Lhs: lhs, Rhs: rhs}
}

// NewAssign builds an assignment node.
func NewAssign(tok token.Token, lhs, rhs *Node) *Node {
	return &Node{Kind: Assign, Tok: tok, Lhs: lhs, Rhs: rhs}
}

// NewBlock builds a block node from its statement list.
func NewBlock(tok token.Token, stmts []*Node) *Node {
	return &Node{Kind: Block, Tok: tok, Stmts: stmts}
}

// NewReturn builds a return statement node.
func NewReturn(tok token.Token, value *Node) *Node {
	return &Node{Kind: Return, Tok: tok, ReturnValue: value}
}

// NewVarDecl builds an unresolved local variable declaration node; name
// is the declared identifier and declType the type named in source.
// sema fills in Sym once the symbol is entered into scope.
func NewVarDecl(tok token.Token, name string, declType *types.Type, init *Node) *Node {
	return &Node{Kind: VarDecl, Tok: tok, Name: name, DeclType: declType, Init: init}
}

// NewIf builds an if/else statement node; els is nil when there is no
// else clause.
func NewIf(tok token.Token, cond, then, els *Node) *Node {
	return &Node{Kind: If, Tok: tok, Cond: cond, Then: then, Else: els}
}

// NewWhile builds a while-loop statement node.
func NewWhile(tok token.Token, cond, body *Node) *Node {
	return &Node{Kind: While, Tok: tok, Cond: cond, Then: body}
}
