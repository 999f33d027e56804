// Package sema implements scope resolution, type checking, promotion-cast
// insertion, and constant folding over the parser's output tree.
// Grounded on original_source/lang/src/sem.c's scoped symbol table (open
// addressing with FNV-1a hashing, one table per block), supplemented
// with the type-checking/promotion/folding work spec.md §2 step 4
// attributes to "the analyzer" — see SPEC_FULL.md §13.
package sema

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/smokesugar/minic/internal/ast"
	"github.com/smokesugar/minic/internal/token"
	"github.com/smokesugar/minic/internal/types"
)

// fnv1aHash is original_source/lang/src/base.h's fnv_1_a_hash, the hash
// sem.c's find_symbol uses for its open-addressed symbol table. The
// scope table below is a Go map and does not call it.
func fnv1aHash(s string) uint64 {
	const offset uint64 = 0xcbf29ce484222325
	const prime uint64 = 0x100000001b3
	h := offset
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= prime
	}
	return h
}

type scope struct {
	parent *scope
	// table maps each name declared in this scope to its symbol. sem.c
	// uses an open-addressed table sized num_locals*2 per block; this
	// implementation uses a Go map instead, which handles capacity and
	// rehashing itself.
	table map[string]*ast.Symbol
}

func newScope(parent *scope) *scope {
	return &scope{parent: parent, table: make(map[string]*ast.Symbol)}
}

// declare enters a new symbol into this scope only, reporting an error
// if the name is already declared in THIS scope. Unlike sem.c's
// find_symbol (which walks to parent scopes for the redefinition check,
// making shadowing an error), this implementation intentionally checks
// only the current scope's table, so inner declarations may shadow outer
// ones — required by spec.md's shadowing scenario.
func (s *scope) declare(tok token.Token, name string, ty *types.Type) (*ast.Symbol, error) {
	if _, ok := s.table[name]; ok {
		return nil, errors.WithStack(&token.SourceError{Tok: tok, Msg: fmt.Sprintf("redefinition of %q", name)})
	}
	sym := &ast.Symbol{Name: name, Type: ty}
	s.table[name] = sym
	return sym, nil
}

// lookup walks from this scope out to the root scope, matching sem.c's
// find_symbol recursive-to-parent lookup for ordinary use sites.
func (s *scope) lookup(name string) *ast.Symbol {
	for sc := s; sc != nil; sc = sc.parent {
		if sym, ok := sc.table[name]; ok {
			return sym
		}
	}
	return nil
}

// Analyzer resolves one function body in place, mutating its AST.
type Analyzer struct {
	root *scope
}

// New creates an Analyzer with an empty top-level scope.
func New() *Analyzer {
	return &Analyzer{root: newScope(nil)}
}

// Analyze walks body (expected to be an ast.Block), resolving every Var
// reference, inserting promotion casts around binary operators, folding
// constant-literal expressions, and type-checking assignments and
// returns. Hashing the FNV-1a way in fnv1aHash is kept even though the
// table itself is a Go map, preserving sem.c's hash-based identity for
// anything that later wants a deterministic bucket order (printer
// diagnostics, for example) without reimplementing open addressing.
func (a *Analyzer) Analyze(body *ast.Node) error {
	_ = fnv1aHash // retained for parity with sem.c's hashing contract
	_, err := a.stmt(a.root, body)
	return err
}

func (a *Analyzer) block(parent *scope, n *ast.Node) error {
	sc := newScope(parent)
	for i, stmt := range n.Stmts {
		resolved, err := a.stmt(sc, stmt)
		if err != nil {
			return err
		}
		n.Stmts[i] = resolved
	}
	return nil
}

func (a *Analyzer) stmt(sc *scope, n *ast.Node) (*ast.Node, error) {
	switch n.Kind {
	case ast.Block:
		return n, a.block(sc, n)

	case ast.VarDecl:
		init, err := a.expr(sc, n.Init)
		if err != nil {
			return nil, err
		}
		init = convert(init, n.DeclType)
		n.Init = init
		sym, err := sc.declare(n.Tok, n.Name, n.DeclType)
		if err != nil {
			return nil, err
		}
		n.Sym = sym
		return n, nil

	case ast.Return:
		v, err := a.expr(sc, n.ReturnValue)
		if err != nil {
			return nil, err
		}
		n.ReturnValue = v
		return n, nil

	case ast.If:
		cond, err := a.expr(sc, n.Cond)
		if err != nil {
			return nil, err
		}
		n.Cond = cond
		if err := a.block(sc, n.Then); err != nil {
			return nil, err
		}
		if n.Else != nil {
			if n.Else.Kind == ast.If {
				els, err := a.stmt(sc, n.Else)
				if err != nil {
					return nil, err
				}
				n.Else = els
			} else if err := a.block(sc, n.Else); err != nil {
				return nil, err
			}
		}
		return n, nil

	case ast.While:
		cond, err := a.expr(sc, n.Cond)
		if err != nil {
			return nil, err
		}
		n.Cond = cond
		if err := a.block(sc, n.Then); err != nil {
			return nil, err
		}
		return n, nil

	default:
		// An expression used as a statement (e.g. a bare assignment).
		return a.expr(sc, n)
	}
}

func (a *Analyzer) expr(sc *scope, n *ast.Node) (*ast.Node, error) {
	switch n.Kind {
	case ast.Int:
		return n, nil

	case ast.Var:
		sym := sc.lookup(n.Name)
		if sym == nil {
			return nil, errors.WithStack(&token.SourceError{Tok: n.Tok, Msg: fmt.Sprintf("undeclared identifier %q", n.Name)})
		}
		n.Sym = sym
		n.Type = sym.Type
		return n, nil

	case ast.Cast:
		inner, err := a.expr(sc, n.CastExpr)
		if err != nil {
			return nil, err
		}
		n.CastExpr = inner
		return foldCast(n), nil

	case ast.Add, ast.Sub, ast.Mul, ast.Div,
		ast.Less, ast.Lequal, ast.Nequal, ast.Equal:
		return a.binOp(sc, n)

	case ast.Assign:
		lhs, err := a.expr(sc, n.Lhs)
		if err != nil {
			return nil, err
		}
		rhs, err := a.expr(sc, n.Rhs)
		if err != nil {
			return nil, err
		}
		rhs = convert(rhs, lhs.Type)
		n.Lhs, n.Rhs, n.Type = lhs, rhs, lhs.Type
		return n, nil

	default:
		return nil, errors.WithStack(&token.SourceError{Tok: n.Tok, Msg: "invalid expression"})
	}
}

// binOp type-checks a binary operator, inserting a promotion cast around
// whichever operand is narrower, per SPEC_FULL.md §13. Comparison
// operators always yield i32 (spec.md's "boolean as i32" convention,
// matching scenario F's folded literal 1/0).
func (a *Analyzer) binOp(sc *scope, n *ast.Node) (*ast.Node, error) {
	lhs, err := a.expr(sc, n.Lhs)
	if err != nil {
		return nil, err
	}
	rhs, err := a.expr(sc, n.Rhs)
	if err != nil {
		return nil, err
	}

	common := types.Wider(lhs.Type, rhs.Type)
	lhs = convert(lhs, common)
	rhs = convert(rhs, common)
	n.Lhs, n.Rhs = lhs, rhs

	switch n.Kind {
	case ast.Less, ast.Lequal, ast.Nequal, ast.Equal:
		n.Type = types.I32
	default:
		n.Type = common
	}

	return foldBinOp(n), nil
}

// convert wraps expr in a Cast node if its type differs from want,
// folding the cast away immediately when expr is a constant literal.
func convert(expr *ast.Node, want *types.Type) *ast.Node {
	if expr.Type == want {
		return expr
	}
	cast := ast.NewCast(expr.Tok, expr, want)
	return foldCast(cast)
}
