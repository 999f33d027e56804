package parser

import (
	"testing"

	"github.com/smokesugar/minic/internal/ast"
	"github.com/stretchr/testify/require"
)

func TestParseReturnLiteral(t *testing.T) {
	n, err := New("{ return 1 + 2 * 3; }").Parse()
	require.NoError(t, err)
	require.Equal(t, ast.Block, n.Kind)
	require.Len(t, n.Stmts, 1)

	ret := n.Stmts[0]
	require.Equal(t, ast.Return, ret.Kind)
	require.Equal(t, ast.Add, ret.ReturnValue.Kind)
	require.Equal(t, ast.Int, ret.ReturnValue.Lhs.Kind)
	require.Equal(t, ast.Mul, ret.ReturnValue.Rhs.Kind)
}

func TestParsePrecedenceAndAssociativity(t *testing.T) {
	n, err := New("{ return 1 - 2 - 3; }").Parse()
	require.NoError(t, err)
	ret := n.Stmts[0].ReturnValue
	require.Equal(t, ast.Sub, ret.Kind)
	require.Equal(t, ast.Sub, ret.Lhs.Kind)
	require.Equal(t, int64(1), ret.Lhs.Lhs.IntValue)
	require.Equal(t, int64(2), ret.Lhs.Rhs.IntValue)
	require.Equal(t, int64(3), ret.Rhs.IntValue)
}

func TestParseGreaterThanSwapsToLess(t *testing.T) {
	n, err := New("{ return a > b; }").Parse()
	require.NoError(t, err)
	cmp := n.Stmts[0].ReturnValue
	require.Equal(t, ast.Less, cmp.Kind)
	require.Equal(t, "b", cmp.Lhs.Name)
	require.Equal(t, "a", cmp.Rhs.Name)
}

func TestParseVarDecl(t *testing.T) {
	n, err := New("{ x : i32 = 5; return x; }").Parse()
	require.NoError(t, err)
	decl := n.Stmts[0]
	require.Equal(t, ast.VarDecl, decl.Kind)
	require.Equal(t, "x", decl.Name)
	require.Equal(t, "i32", decl.DeclType.Name)
}

func TestParseIfElse(t *testing.T) {
	n, err := New("{ if a < b { return 1; } else { return 2; } }").Parse()
	require.NoError(t, err)
	ifNode := n.Stmts[0]
	require.Equal(t, ast.If, ifNode.Kind)
	require.NotNil(t, ifNode.Else)
}

func TestParseWhile(t *testing.T) {
	n, err := New("{ while a < b { a = a + 1; } }").Parse()
	require.NoError(t, err)
	require.Equal(t, ast.While, n.Stmts[0].Kind)
}

func TestParseAssignRequiresLvalue(t *testing.T) {
	_, err := New("{ 1 = 2; }").Parse()
	require.Error(t, err)
}

func TestParseCast(t *testing.T) {
	n, err := New("{ return x as i8; }").Parse()
	require.NoError(t, err)
	cast := n.Stmts[0].ReturnValue
	require.Equal(t, ast.Cast, cast.Kind)
	require.Equal(t, "i8", cast.Type.Name)
}
