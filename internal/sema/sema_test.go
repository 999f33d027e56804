package sema

import (
	"testing"

	"github.com/smokesugar/minic/internal/ast"
	"github.com/smokesugar/minic/internal/parser"
	"github.com/smokesugar/minic/internal/types"
	"github.com/stretchr/testify/require"
)

func parseAndAnalyze(t *testing.T, src string) (*ast.Node, error) {
	t.Helper()
	n, err := parser.New(src).Parse()
	require.NoError(t, err)
	err = New().Analyze(n)
	return n, err
}

func TestSemaResolvesVar(t *testing.T) {
	n, err := parseAndAnalyze(t, "{ x : i32 = 1; return x; }")
	require.NoError(t, err)
	ret := n.Stmts[1].ReturnValue
	require.Equal(t, ast.Var, ret.Kind)
	require.NotNil(t, ret.Sym)
	require.Equal(t, types.I32, ret.Type)
}

func TestSemaUndeclaredIdentifier(t *testing.T) {
	_, err := parseAndAnalyze(t, "{ return x; }")
	require.Error(t, err)
}

func TestSemaShadowingAllowsDistinctSlots(t *testing.T) {
	n, err := parseAndAnalyze(t, `{
		x : i32 = 1;
		{
			x : i32 = 2;
			return x;
		}
	}`)
	require.NoError(t, err)

	outer := n.Stmts[0].Sym
	inner := n.Stmts[1].Stmts[0].Sym
	require.NotNil(t, outer)
	require.NotNil(t, inner)
	require.NotSame(t, outer, inner)
}

func TestSemaRedeclarationInSameScopeErrors(t *testing.T) {
	_, err := parseAndAnalyze(t, "{ x : i32 = 1; x : i32 = 2; return x; }")
	require.Error(t, err)
}

func TestSemaConstantFoldingOfComparison(t *testing.T) {
	n, err := parseAndAnalyze(t, "{ return 3 < 5; }")
	require.NoError(t, err)
	ret := n.Stmts[0].ReturnValue
	require.Equal(t, ast.Int, ret.Kind)
	require.Equal(t, int64(1), ret.IntValue)
}

func TestSemaPromotionInsertsCast(t *testing.T) {
	n, err := parseAndAnalyze(t, "{ a : i8 = 1; b : i64 = 2; return a + b; }")
	require.NoError(t, err)
	ret := n.Stmts[2].ReturnValue
	require.Equal(t, types.I64, ret.Type)
	require.Equal(t, ast.Cast, ret.Lhs.Kind)
	require.Equal(t, types.I64, ret.Lhs.Type)
}
