package ssa_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/smokesugar/minic/internal/parser"
	"github.com/smokesugar/minic/internal/sema"
	"github.com/smokesugar/minic/internal/ssa"
)

// build lexes, parses, and analyzes src, then lowers the result to IR
// with a fresh Builder, returning the unfolded, un-promoted Function.
func build(t *testing.T, src string) *ssa.Function {
	t.Helper()
	n, err := parser.New(src).Parse()
	require.NoError(t, err)
	require.NoError(t, sema.New().Analyze(n))
	return ssa.NewBuilder().Build(n)
}

// buildAndFold is build followed by FoldImmediates, the state spec.md's
// Scenario A/F illustrations are written against.
func buildAndFold(t *testing.T, src string) *ssa.Function {
	t.Helper()
	fn := build(t, src)
	ssa.FoldImmediates(fn)
	return fn
}

// buildAndPromote runs the full pre-interpreter pipeline: lower, fold,
// then promote every slot to SSA registers.
func buildAndPromote(t *testing.T, src string) *ssa.Function {
	t.Helper()
	fn := buildAndFold(t, src)
	ssa.PromoteToSSA(fn)
	return fn
}
