package sema

import (
	"github.com/smokesugar/minic/internal/ast"
	"github.com/smokesugar/minic/internal/types"
)

// foldCast collapses a cast over a literal integer into a new literal of
// the destination type, truncating/extending the way the IR's
// Sext/Zext/Trunc instructions would at runtime, so a constant
// expression never reaches internal/ssa carrying a redundant cast
// instruction — matching spec.md's scenario F intent of folding
// everything foldable before the builder sees it.
func foldCast(n *ast.Node) *ast.Node {
	if n.CastExpr.Kind != ast.Int {
		return n
	}
	v := truncate(n.CastExpr.IntValue, n.Type)
	return ast.NewInt(n.Tok, v, n.Type)
}

// foldBinOp evaluates a binary operator over two literal integer
// operands at compile time.
func foldBinOp(n *ast.Node) *ast.Node {
	if n.Lhs.Kind != ast.Int || n.Rhs.Kind != ast.Int {
		return n
	}

	l, r := n.Lhs.IntValue, n.Rhs.IntValue
	var v int64

	switch n.Kind {
	case ast.Add:
		v = l + r
	case ast.Sub:
		v = l - r
	case ast.Mul:
		v = l * r
	case ast.Div:
		if r == 0 {
			return n
		}
		v = l / r
	case ast.Less:
		v = boolInt(l < r)
	case ast.Lequal:
		v = boolInt(l <= r)
	case ast.Nequal:
		v = boolInt(l != r)
	case ast.Equal:
		v = boolInt(l == r)
	default:
		return n
	}

	return ast.NewInt(n.Tok, truncate(v, n.Type), n.Type)
}

func boolInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

// truncate narrows v to ty's bit width and widens it back by ty's
// signedness: sign-extended for a signed type, as Trunc and Sext leave a
// value at runtime, and zero-extended for an unsigned one, as Zext does.
func truncate(v int64, ty *types.Type) int64 {
	bits := ty.Size * 8
	if bits >= 64 {
		return v
	}
	if ty.Signed {
		shift := uint(64 - bits)
		return (v << shift) >> shift
	}
	mask := int64(1)<<uint(bits) - 1
	return v & mask
}
